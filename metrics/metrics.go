package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "beautyboosters"

var (
	once sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Count of HTTP requests by route, method and status.",
		},
		[]string{"route", "method", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route and method.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)

	cartMutations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cart_mutations_total",
			Help:      "Count of cart mutations by operation.",
		},
		[]string{"op"},
	)

	reassignments = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "schedule_reassignments_total",
			Help:      "Count of drop reassignments by result.",
		},
		[]string{"result"},
	)

	giftCardsIssued = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "gift_cards_issued_total",
			Help:      "Count of gift cards issued by mode.",
		},
		[]string{"mode"},
	)

	titlesGenerated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "job_titles_generated_total",
			Help:      "Count of job-title generations by result.",
		},
		[]string{"result"},
	)

	emailsSent = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "emails_sent_total",
			Help:      "Count of outgoing emails by template and result.",
		},
		[]string{"template", "result"},
	)

	toastsEmitted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "chat_toasts_emitted_total",
			Help:      "Count of chat toasts delivered to subscribers.",
		},
	)

	feedSubscribers = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "chat_feed_subscribers",
			Help:      "Number of live chat-feed subscriptions.",
		},
	)
)

// Register registers metrics (idempotent).
func Register() {
	once.Do(func() {
		prometheus.MustRegister(
			httpRequests, httpDuration,
			cartMutations, reassignments, giftCardsIssued,
			titlesGenerated, emailsSent, toastsEmitted, feedSubscribers,
		)
	})
}

func ObserveHTTP(route, method, status string, seconds float64) {
	httpRequests.WithLabelValues(route, method, status).Inc()
	httpDuration.WithLabelValues(route, method).Observe(seconds)
}

func IncCartMutation(op string) {
	cartMutations.WithLabelValues(op).Inc()
}

func IncReassignment(result string) {
	reassignments.WithLabelValues(result).Inc()
}

func IncGiftCardIssued(mode string) {
	giftCardsIssued.WithLabelValues(mode).Inc()
}

func IncTitleGenerated(result string) {
	titlesGenerated.WithLabelValues(result).Inc()
}

func IncEmailSent(template, result string) {
	emailsSent.WithLabelValues(template, result).Inc()
}

func IncToastEmitted() {
	toastsEmitted.Inc()
}

func AddFeedSubscribers(delta float64) {
	feedSubscribers.Add(delta)
}

package notification

import (
	"context"
	"errors"
	"sync"

	"beautyboosters/metrics"
	"beautyboosters/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	toastDuration     = 5000
	previewRunes      = 50
	imagePreview      = "📷 Billede"
	defaultToastTitle = "Ny besked"
)

// Viewer is the identity a feed is opened for.
type Viewer struct {
	UserID string
	Role   string
}

// Sink receives toasts for one subscription.
type Sink func(models.Toast)

// EventSource delivers newly inserted job messages until ctx is cancelled.
type EventSource interface {
	Listen(ctx context.Context, handle func(models.JobMessage)) error
}

// JobLookup resolves the job a message belongs to.
type JobLookup interface {
	GetJob(ctx context.Context, jobID string) (*models.Job, error)
}

// Feed turns chat inserts into toasts for subscribed viewers.
type Feed struct {
	source EventSource
	jobs   JobLookup
	logger *zap.Logger
}

func NewFeed(source EventSource, jobs JobLookup, logger *zap.Logger) *Feed {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Feed{source: source, jobs: jobs, logger: logger}
}

// Subscription is a live feed. Unsubscribe must not be called from inside the sink.
type Subscription struct {
	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once
	err    error
}

// Unsubscribe stops the feed and waits for it to wind down. The sink is not called
// after Unsubscribe returns.
func (s *Subscription) Unsubscribe() {
	s.once.Do(func() {
		s.cancel()
		<-s.done
	})
}

// Done is closed when the feed stops, either by Unsubscribe or a source failure.
func (s *Subscription) Done() <-chan struct{} {
	return s.done
}

// Err reports why the feed stopped. Valid after Done is closed.
func (s *Subscription) Err() error {
	return s.err
}

// Subscribe starts delivering toasts for messages sent by anyone other than the viewer's role.
func (f *Feed) Subscribe(ctx context.Context, viewer Viewer, sink Sink) *Subscription {
	ctx, cancel := context.WithCancel(ctx)
	sub := &Subscription{cancel: cancel, done: make(chan struct{})}

	metrics.AddFeedSubscribers(1)
	go func() {
		defer close(sub.done)
		defer metrics.AddFeedSubscribers(-1)

		err := f.source.Listen(ctx, func(msg models.JobMessage) {
			if ctx.Err() != nil {
				return
			}
			toast, ok := f.toastFor(ctx, viewer, msg)
			if !ok {
				return
			}
			sink(toast)
			metrics.IncToastEmitted()
		})
		if err != nil && !errors.Is(err, context.Canceled) {
			f.logger.Warn("Chat feed stopped", zap.String("role", viewer.Role), zap.Error(err))
			sub.err = err
		}
	}()
	return sub
}

func (f *Feed) toastFor(ctx context.Context, viewer Viewer, msg models.JobMessage) (models.Toast, bool) {
	if msg.SenderRole == viewer.Role {
		return models.Toast{}, false
	}

	var job *models.Job
	if f.jobs != nil && msg.JobID != "" {
		j, err := f.jobs.GetJob(ctx, msg.JobID)
		if err != nil {
			f.logger.Debug("Job lookup for toast failed", zap.String("jobId", msg.JobID), zap.Error(err))
		} else {
			job = j
		}
	}
	return FormatToast(msg, job), true
}

// FormatToast builds the toast shown for a message.
func FormatToast(msg models.JobMessage, job *models.Job) models.Toast {
	id := msg.ID
	if id == "" {
		id = uuid.NewString()
	}
	return models.Toast{
		ID:         id,
		JobID:      msg.JobID,
		Title:      toastTitle(job),
		Message:    Preview(msg),
		DurationMs: toastDuration,
	}
}

func toastTitle(job *models.Job) string {
	if job == nil || job.Title == "" {
		return defaultToastTitle
	}
	title := defaultToastTitle + ": " + job.Title
	if job.ClientName != "" {
		title += " (" + job.ClientName + ")"
	}
	return title
}

// Preview is the toast body: the image marker, or the text cut at 50 characters.
func Preview(msg models.JobMessage) string {
	if msg.ImageURL != "" {
		return imagePreview
	}
	r := []rune(msg.Message)
	if len(r) <= previewRunes {
		return msg.Message
	}
	return string(r[:previewRunes]) + "..."
}

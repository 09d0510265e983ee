package email

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Standard-webhooks headers.
const (
	HeaderWebhookID        = "webhook-id"
	HeaderWebhookTimestamp = "webhook-timestamp"
	HeaderWebhookSignature = "webhook-signature"
)

var (
	ErrMissingSignature = errors.New("webhook signature headers missing")
	ErrStaleTimestamp   = errors.New("webhook timestamp outside tolerance")
	ErrBadSignature     = errors.New("webhook signature mismatch")
)

const defaultTolerance = 5 * time.Minute

// WebhookVerifier checks standard-webhooks HMAC-SHA256 signatures.
type WebhookVerifier struct {
	key       []byte
	tolerance time.Duration
	now       func() time.Time
}

// NewWebhookVerifier accepts a secret of the form "v1,whsec_<base64>".
func NewWebhookVerifier(secret string) (*WebhookVerifier, error) {
	s := strings.TrimPrefix(secret, "v1,")
	s = strings.TrimPrefix(s, "whsec_")
	if s == "" {
		return nil, errors.New("webhook secret is empty")
	}
	key, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("webhook secret is not base64: %w", err)
	}
	return &WebhookVerifier{key: key, tolerance: defaultTolerance, now: time.Now}, nil
}

// Sign computes the v1 signature of a payload.
func (v *WebhookVerifier) Sign(id string, ts time.Time, body []byte) string {
	mac := hmac.New(sha256.New, v.key)
	mac.Write([]byte(id + "." + strconv.FormatInt(ts.Unix(), 10) + "."))
	mac.Write(body)
	return "v1," + base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

// Verify checks the headers against body. The signature header may list several
// space-separated signatures; any v1 match is accepted.
func (v *WebhookVerifier) Verify(id, timestamp, signatures string, body []byte) error {
	if id == "" || timestamp == "" || signatures == "" {
		return ErrMissingSignature
	}
	sec, err := strconv.ParseInt(timestamp, 10, 64)
	if err != nil {
		return ErrStaleTimestamp
	}
	ts := time.Unix(sec, 0)
	if d := v.now().Sub(ts); d > v.tolerance || d < -v.tolerance {
		return ErrStaleTimestamp
	}

	expected := v.Sign(id, ts, body)
	for _, sig := range strings.Fields(signatures) {
		if !strings.HasPrefix(sig, "v1,") {
			continue
		}
		if hmac.Equal([]byte(sig), []byte(expected)) {
			return nil
		}
	}
	return ErrBadSignature
}

package email

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"beautyboosters/metrics"
	"beautyboosters/models"

	"go.uber.org/zap"
)

var (
	// ErrDelivery wraps provider failures.
	ErrDelivery         = errors.New("email delivery failed")
	ErrMissingRecipient = errors.New("email recipient missing")
)

// Service renders and sends auth and transactional emails.
type Service struct {
	mailer  Mailer
	siteURL string
	logger  *zap.Logger
}

func NewService(mailer Mailer, siteURL string, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{mailer: mailer, siteURL: strings.TrimRight(siteURL, "/"), logger: logger}
}

// SendAuthEmail handles the auth provider's send-email hook.
func (s *Service) SendAuthEmail(ctx context.Context, p models.AuthHookPayload) error {
	action := p.EmailData.EmailActionType
	to := p.User.Email
	if to == "" {
		return ErrMissingRecipient
	}

	rendered, err := RenderAuth(userLocale(p.User), action, s.verifyURL(p.EmailData), p.EmailData.Token)
	if err != nil {
		return err
	}
	return s.deliver(ctx, action, Message{To: to, Subject: rendered.Subject, HTML: rendered.HTML, Text: rendered.Text})
}

// SendTransactional sends one of the named transactional templates.
func (s *Service) SendTransactional(ctx context.Context, req models.TransactionalEmailRequest) error {
	if strings.TrimSpace(req.To) == "" {
		return ErrMissingRecipient
	}
	rendered, err := RenderTransactional(req.Locale, req.Template, req.Subject, req.Data, s.buttonURL(req.Template))
	if err != nil {
		return err
	}
	msg := Message{
		To:      req.To,
		Subject: rendered.Subject,
		HTML:    rendered.HTML,
		Text:    rendered.Text,
	}
	if name, ok := req.Data["customerName"].(string); ok {
		msg.ToName = name
	} else if name, ok := req.Data["toName"].(string); ok {
		msg.ToName = name
	}
	return s.deliver(ctx, req.Template, msg)
}

func (s *Service) deliver(ctx context.Context, template string, msg Message) error {
	if err := s.mailer.Send(ctx, msg); err != nil {
		metrics.IncEmailSent(template, "error")
		s.logger.Error("Failed to send email", zap.String("template", template), zap.Error(err))
		return fmt.Errorf("%w: %v", ErrDelivery, err)
	}
	metrics.IncEmailSent(template, "ok")
	return nil
}

// verifyURL builds the auth provider's verification link for the action.
func (s *Service) verifyURL(d models.AuthHookEmailData) string {
	base := strings.TrimRight(d.SiteURL, "/")
	if base == "" {
		base = s.siteURL
	}
	if base == "" || d.TokenHash == "" {
		return ""
	}
	q := url.Values{}
	q.Set("token", d.TokenHash)
	q.Set("type", d.EmailActionType)
	if d.RedirectTo != "" {
		q.Set("redirect_to", d.RedirectTo)
	}
	return base + "/auth/v1/verify?" + q.Encode()
}

func (s *Service) buttonURL(template string) string {
	if s.siteURL == "" {
		return ""
	}
	switch template {
	case TemplateBookingConfirmation:
		return s.siteURL + "/min-side/bookinger"
	case TemplateGiftCard:
		return s.siteURL + "/booking"
	}
	return s.siteURL
}

func userLocale(u models.AuthHookUser) string {
	for _, key := range []string{"locale", "language", "lang"} {
		if v, ok := u.UserMetadata[key].(string); ok && v != "" {
			return v
		}
	}
	return LocaleDanish
}

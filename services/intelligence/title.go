package intelligence

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"beautyboosters/metrics"
	"beautyboosters/models"

	"github.com/googleapis/gax-go/v2/apierror"
	"go.uber.org/zap"
	"google.golang.org/api/googleapi"
	"google.golang.org/grpc/codes"
)

const maxTitleRunes = 50

var (
	ErrNoServices      = errors.New("at least one service is required")
	ErrRateLimited     = errors.New("title generation rate limited")
	ErrBillingRequired = errors.New("title generation requires billing")
	ErrGeneration      = errors.New("title generation failed")
)

// TitleService generates short Danish job titles.
type TitleService struct {
	gen    Generator
	logger *zap.Logger
}

func NewTitleService(gen Generator, logger *zap.Logger) *TitleService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TitleService{gen: gen, logger: logger}
}

func (s *TitleService) Generate(ctx context.Context, req models.JobTitleRequest) (string, error) {
	services := nonEmpty(req.Services)
	if len(services) == 0 {
		return "", ErrNoServices
	}
	if s.gen == nil {
		metrics.IncTitleGenerated("error")
		return "", fmt.Errorf("%w: generator not configured", ErrGeneration)
	}

	raw, err := s.gen.GenerateContent(ctx, BuildPrompt(services, req.Location, req.ClientType))
	if err != nil {
		mapped := classify(err)
		metrics.IncTitleGenerated(resultLabel(mapped))
		s.logger.Warn("Job title generation failed", zap.Strings("services", services), zap.Error(err))
		return "", fmt.Errorf("%w: %v", mapped, err)
	}

	title := CleanTitle(raw)
	if title == "" {
		metrics.IncTitleGenerated("error")
		return "", fmt.Errorf("%w: empty title", ErrGeneration)
	}
	metrics.IncTitleGenerated("ok")
	return title, nil
}

// BuildPrompt renders the instruction sent to the model.
func BuildPrompt(services []string, location, clientType string) string {
	var sb strings.Builder
	sb.WriteString("Skriv en kort, professionel dansk titel (maks 50 tegn) til et beauty-job.\n")
	sb.WriteString("Ydelser: " + strings.Join(services, ", ") + "\n")
	if location != "" {
		sb.WriteString("Sted: " + location + "\n")
	}
	switch clientType {
	case models.ClientBusiness:
		sb.WriteString("Kunden er en virksomhed.\n")
	case models.ClientPrivate:
		sb.WriteString("Kunden er en privatperson.\n")
	}
	sb.WriteString("Svar kun med titlen, uden anførselstegn eller forklaring.")
	return sb.String()
}

// CleanTitle trims whitespace and surrounding quotes and caps the title at 50 characters.
func CleanTitle(raw string) string {
	t := strings.TrimSpace(raw)
	if i := strings.IndexByte(t, '\n'); i >= 0 {
		t = strings.TrimSpace(t[:i])
	}
	t = strings.Trim(t, "\"'`“”„«»")
	t = strings.TrimSpace(t)
	if r := []rune(t); len(r) > maxTitleRunes {
		t = strings.TrimSpace(string(r[:maxTitleRunes]))
	}
	return t
}

func classify(err error) error {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		switch gerr.Code {
		case http.StatusTooManyRequests:
			return ErrRateLimited
		case http.StatusPaymentRequired:
			return ErrBillingRequired
		}
	}

	var aerr *apierror.APIError
	if errors.As(err, &aerr) {
		switch {
		case aerr.HTTPCode() == http.StatusTooManyRequests:
			return ErrRateLimited
		case aerr.HTTPCode() == http.StatusPaymentRequired:
			return ErrBillingRequired
		case aerr.GRPCStatus() != nil && aerr.GRPCStatus().Code() == codes.ResourceExhausted:
			return ErrRateLimited
		}
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "429") || strings.Contains(msg, "rate limit") || strings.Contains(msg, "resource_exhausted"):
		return ErrRateLimited
	case strings.Contains(msg, "billing") || strings.Contains(msg, "payment required") || strings.Contains(msg, "quota"):
		return ErrBillingRequired
	}
	return ErrGeneration
}

func resultLabel(err error) string {
	switch err {
	case ErrRateLimited:
		return "rate_limited"
	case ErrBillingRequired:
		return "billing"
	}
	return "error"
}

func nonEmpty(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

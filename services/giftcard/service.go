package giftcard

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	giftcardRepo "beautyboosters/database/repository/giftcard"
	"beautyboosters/metrics"
	"beautyboosters/models"

	"go.uber.org/zap"
)

// ValidationError carries the user-facing (Danish) reason a request was rejected.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

var ErrStorage = errors.New("gift card storage failure")

const defaultValidity = 2 * 365 * 24 * time.Hour

// Service issues gift cards as single-use fixed-amount discount codes.
type Service struct {
	repo   giftcardRepo.DiscountCodeRepository
	logger *zap.Logger
	now    func() time.Time
	random func(int) (string, error)
}

func NewService(repo giftcardRepo.DiscountCodeRepository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, logger: logger, now: time.Now, random: RandomCode}
}

// Validate checks a request without touching storage.
func Validate(req models.GiftCardRequest) (float64, error) {
	if strings.TrimSpace(req.ToName) == "" || strings.TrimSpace(req.FromName) == "" {
		return 0, &ValidationError{Message: "Modtager og afsender skal udfyldes"}
	}
	switch req.Mode {
	case models.GiftCardModeAmount:
		if req.Amount == nil || *req.Amount <= 0 {
			return 0, &ValidationError{Message: "Beløbet skal være større end 0"}
		}
		return *req.Amount, nil
	case models.GiftCardModeService:
		if strings.TrimSpace(req.ServiceName) == "" {
			return 0, &ValidationError{Message: "Vælg en ydelse"}
		}
		if req.ServicePrice == nil || *req.ServicePrice <= 0 {
			return 0, &ValidationError{Message: "Ydelsens pris skal være større end 0"}
		}
		return *req.ServicePrice, nil
	default:
		return 0, &ValidationError{Message: "Ugyldig gavekorttype"}
	}
}

// Issue validates the request, mints a unique code and stores the discount record.
func (s *Service) Issue(ctx context.Context, req models.GiftCardRequest) (*models.DiscountCode, error) {
	amount, err := Validate(req)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	validTo := now.Add(defaultValidity)
	if req.ValidTo != "" {
		t, err := parseValidTo(req.ValidTo)
		if err != nil || !t.After(now) {
			return nil, &ValidationError{Message: "Ugyldig udløbsdato"}
		}
		validTo = t
	}

	code, err := uniqueCode(ctx, s.repo.CodeExists, s.random)
	if err != nil {
		s.logger.Error("Gift card code generation failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}

	dc := &models.DiscountCode{
		Code:           code,
		Type:           "fixed",
		Amount:         amount,
		Description:    description(req),
		ValidFrom:      now,
		ValidTo:        validTo,
		MaxRedemptions: 1,
		PerUserLimit:   1,
		Active:         true,
		GiftCard: &models.GiftCardDetails{
			ToName:      strings.TrimSpace(req.ToName),
			FromName:    strings.TrimSpace(req.FromName),
			Message:     req.Message,
			Mode:        req.Mode,
			ServiceName: req.ServiceName,
		},
		CreatedAt: now,
	}
	if err := s.repo.Create(ctx, dc); err != nil {
		s.logger.Error("Failed to store gift card", zap.String("code", code), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}

	metrics.IncGiftCardIssued(req.Mode)
	s.logger.Info("Gift card issued", zap.String("code", code), zap.String("mode", req.Mode), zap.Float64("amount", amount))
	return dc, nil
}

func description(req models.GiftCardRequest) string {
	if req.Mode == models.GiftCardModeService {
		return fmt.Sprintf("Gavekort: %s fra %s til %s", req.ServiceName, req.FromName, req.ToName)
	}
	return fmt.Sprintf("Gavekort fra %s til %s", req.FromName, req.ToName)
}

func parseValidTo(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, err
	}
	// a bare date is valid through the end of that day
	return t.Add(24*time.Hour - time.Second), nil
}

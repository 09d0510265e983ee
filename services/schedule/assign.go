package schedule

import (
	"context"
	"errors"
	"fmt"

	scheduleRepo "beautyboosters/database/repository/schedule"
	"beautyboosters/metrics"
	"beautyboosters/models"

	"go.uber.org/zap"
)

var (
	ErrSourceNotFound    = errors.New("source slot not found")
	ErrSourceHasNoJob    = errors.New("source slot has no job")
	ErrTargetNotFound    = errors.New("no availability at target")
	ErrTargetUnavailable = errors.New("target slot is not free")
	ErrSameSlot          = errors.New("source and target are the same slot")
)

// ReassignmentNotifier tells a booster about a job moved onto their calendar.
type ReassignmentNotifier interface {
	NotifyReassignment(ctx context.Context, booster models.Booster, result models.ReassignmentResult) error
}

// Assigner persists drop intents.
type Assigner struct {
	repo     scheduleRepo.ScheduleRepository
	notifier ReassignmentNotifier
	logger   *zap.Logger
}

func NewAssigner(repo scheduleRepo.ScheduleRepository, notifier ReassignmentNotifier, logger *zap.Logger) *Assigner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Assigner{repo: repo, notifier: notifier, logger: logger}
}

// Reassign validates the drop and moves the job onto the target slot.
func (a *Assigner) Reassign(ctx context.Context, ev models.DropEvent) (*models.ReassignmentResult, error) {
	result, err := a.reassign(ctx, ev)
	if err != nil {
		metrics.IncReassignment("rejected")
		return nil, err
	}
	metrics.IncReassignment("ok")

	if a.notifier != nil {
		a.notify(ctx, *result)
	}
	return result, nil
}

func (a *Assigner) reassign(ctx context.Context, ev models.DropEvent) (*models.ReassignmentResult, error) {
	source, err := a.repo.GetSlot(ctx, ev.Source.AvailabilityID)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrSlotNotFound) {
			return nil, ErrSourceNotFound
		}
		return nil, fmt.Errorf("load source slot: %w", err)
	}
	if source.Job == nil {
		return nil, ErrSourceHasNoJob
	}

	date := FormatDate(ev.Target.Date)
	target, err := a.repo.FindSlotAt(ctx, ev.Target.BoosterID, date, ev.Target.TimeSlot)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrSlotNotFound) {
			return nil, ErrTargetNotFound
		}
		return nil, fmt.Errorf("load target slot: %w", err)
	}
	if target.AvailabilityID == source.AvailabilityID {
		return nil, ErrSameSlot
	}
	if target.Status != models.SlotFree {
		return nil, ErrTargetUnavailable
	}

	result, err := a.repo.MoveAssignment(ctx, source.AvailabilityID, target.AvailabilityID)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrSlotConflict) {
			return nil, ErrTargetUnavailable
		}
		return nil, fmt.Errorf("move assignment: %w", err)
	}

	a.logger.Info("Job reassigned",
		zap.String("jobId", source.Job.ID),
		zap.String("from", source.AvailabilityID),
		zap.String("to", target.AvailabilityID),
		zap.String("boosterId", target.BoosterID),
		zap.String("date", date))
	return result, nil
}

func (a *Assigner) notify(ctx context.Context, result models.ReassignmentResult) {
	booster, err := a.repo.GetBooster(ctx, result.Target.BoosterID)
	if err != nil {
		a.logger.Warn("Reassignment notice skipped: booster lookup failed",
			zap.String("boosterId", result.Target.BoosterID), zap.Error(err))
		return
	}
	if err := a.notifier.NotifyReassignment(ctx, *booster, result); err != nil {
		a.logger.Warn("Failed to queue reassignment notice",
			zap.String("boosterId", booster.ID), zap.Error(err))
	}
}

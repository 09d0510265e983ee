// File: database/repository/schedule/interface.go
package scheduleRepo

import (
	"context"
	"errors"

	"beautyboosters/models"
)

var (
	ErrSlotNotFound    = errors.New("availability slot not found")
	ErrBoosterNotFound = errors.New("booster not found")
	// ErrSlotConflict is returned when a slot changed state between validation and write.
	ErrSlotConflict = errors.New("availability slot changed concurrently")
)

// ScheduleRepository is the persistence of boosters and their availability slots.
type ScheduleRepository interface {
	ListActiveBoosters(ctx context.Context) ([]models.Booster, error)
	GetBooster(ctx context.Context, boosterID string) (*models.Booster, error)
	ListSlotsByDate(ctx context.Context, date string) ([]models.AvailabilitySlot, error)
	GetSlot(ctx context.Context, availabilityID string) (*models.AvailabilitySlot, error)
	// FindSlotAt returns the booster's slot on date whose start time falls in the hourly
	// cell, preferring a free one.
	FindSlotAt(ctx context.Context, boosterID, date, timeSlot string) (*models.AvailabilitySlot, error)
	// MoveAssignment moves job and notes from source to target, freeing the source and
	// booking the target, atomically.
	MoveAssignment(ctx context.Context, sourceID, targetID string) (*models.ReassignmentResult, error)
}

package schedule

import (
	"context"
	"fmt"
	"time"

	scheduleRepo "beautyboosters/database/repository/schedule"
	"beautyboosters/models"
)

// DefaultTimeSlots are the hourly rows of the admin calendar.
var DefaultTimeSlots = []string{
	"08:00", "09:00", "10:00", "11:00", "12:00", "13:00", "14:00",
	"15:00", "16:00", "17:00", "18:00", "19:00", "20:00",
}

// Grid is the rendered calendar of one date.
type Grid struct {
	Date      string      `json:"date"`
	TimeSlots []string    `json:"timeSlots"`
	Rows      []GridRow   `json:"rows"`
	Unplaced  []TokenView `json:"unplaced,omitempty"`
}

type GridRow struct {
	BoosterID   string     `json:"boosterId"`
	BoosterName string     `json:"boosterName"`
	Cells       []GridCell `json:"cells"`
}

type GridCell struct {
	CellView
	Token *TokenView `json:"token,omitempty"`
}

// Board is a calendar date with its drag surface.
type Board struct {
	Surface *Surface

	date      time.Time
	timeSlots []string
	policy    StylePolicy
	boosters  []models.Booster
	placed    map[string]models.AvailabilitySlot // cell key -> slot
	unplaced  []models.AvailabilitySlot
}

// Render draws the board with the surface's current gesture state.
func (b *Board) Render() *Grid {
	g := &Grid{
		Date:      FormatDate(b.date),
		TimeSlots: b.timeSlots,
		Rows:      make([]GridRow, 0, len(b.boosters)),
	}
	for _, booster := range b.boosters {
		row := GridRow{BoosterID: booster.ID, BoosterName: booster.Name, Cells: make([]GridCell, 0, len(b.timeSlots))}
		for _, ts := range b.timeSlots {
			cell := models.CellData{BoosterID: booster.ID, TimeSlot: ts, Date: b.date}
			key := DroppableKey(booster.ID, ts, b.date)
			gc := GridCell{CellView: RenderCell(cell, b.Surface.IsArmed(key))}
			if slot, ok := b.placed[key]; ok {
				tv := RenderToken(slot, b.policy, b.Surface.IsDragging(DraggableKey(slot.AvailabilityID)))
				gc.Token = &tv
			}
			row.Cells = append(row.Cells, gc)
		}
		g.Rows = append(g.Rows, row)
	}
	for _, slot := range b.unplaced {
		g.Unplaced = append(g.Unplaced, RenderToken(slot, b.policy, b.Surface.IsDragging(DraggableKey(slot.AvailabilityID))))
	}
	return g
}

// GridBuilder loads a date from the repository and lays it out.
type GridBuilder struct {
	repo      scheduleRepo.ScheduleRepository
	policy    StylePolicy
	timeSlots []string
}

func NewGridBuilder(repo scheduleRepo.ScheduleRepository, policy StylePolicy, timeSlots []string) *GridBuilder {
	if len(timeSlots) == 0 {
		timeSlots = DefaultTimeSlots
	}
	return &GridBuilder{repo: repo, policy: policy, timeSlots: timeSlots}
}

// Build places each slot in the cell of its booster and start hour. A cell holds at
// most one token; the rest are listed as unplaced.
func (gb *GridBuilder) Build(ctx context.Context, date time.Time) (*Board, error) {
	boosters, err := gb.repo.ListActiveBoosters(ctx)
	if err != nil {
		return nil, fmt.Errorf("list boosters: %w", err)
	}
	slots, err := gb.repo.ListSlotsByDate(ctx, FormatDate(date))
	if err != nil {
		return nil, fmt.Errorf("list availability: %w", err)
	}

	b := &Board{
		Surface:   NewSurface(),
		date:      date,
		timeSlots: gb.timeSlots,
		policy:    gb.policy,
		boosters:  boosters,
		placed:    make(map[string]models.AvailabilitySlot),
	}

	known := make(map[string]bool, len(boosters))
	for _, booster := range boosters {
		known[booster.ID] = true
		for _, ts := range gb.timeSlots {
			b.Surface.RegisterCell(models.CellData{BoosterID: booster.ID, TimeSlot: ts, Date: date})
		}
	}

	for _, slot := range slots {
		b.Surface.RegisterToken(slot)
		key := DroppableKey(slot.BoosterID, SlotHour(slot.StartTime), date)
		if _, taken := b.placed[key]; taken || !known[slot.BoosterID] || !b.hasTimeSlot(SlotHour(slot.StartTime)) {
			b.unplaced = append(b.unplaced, slot)
			continue
		}
		b.placed[key] = slot
	}
	return b, nil
}

func (b *Board) hasTimeSlot(ts string) bool {
	for _, s := range b.timeSlots {
		if s == ts {
			return true
		}
	}
	return false
}

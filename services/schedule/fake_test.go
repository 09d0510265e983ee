package schedule

import (
	"context"
	"sort"
	"strings"
	"sync"

	scheduleRepo "beautyboosters/database/repository/schedule"
	"beautyboosters/models"
)

type fakeRepo struct {
	mu       sync.Mutex
	boosters []models.Booster
	slots    map[string]models.AvailabilitySlot
	moves    int
}

func newFakeRepo(boosters []models.Booster, slots ...models.AvailabilitySlot) *fakeRepo {
	r := &fakeRepo{boosters: boosters, slots: map[string]models.AvailabilitySlot{}}
	for _, s := range slots {
		r.slots[s.AvailabilityID] = s
	}
	return r
}

func (r *fakeRepo) ListActiveBoosters(context.Context) ([]models.Booster, error) {
	return r.boosters, nil
}

func (r *fakeRepo) GetBooster(_ context.Context, id string) (*models.Booster, error) {
	for _, b := range r.boosters {
		if b.ID == id {
			b := b
			return &b, nil
		}
	}
	return nil, scheduleRepo.ErrBoosterNotFound
}

func (r *fakeRepo) ListSlotsByDate(_ context.Context, date string) ([]models.AvailabilitySlot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.AvailabilitySlot
	for _, s := range r.slots {
		if s.Date == date {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].BoosterID != out[j].BoosterID {
			return out[i].BoosterID < out[j].BoosterID
		}
		return out[i].StartTime < out[j].StartTime
	})
	return out, nil
}

func (r *fakeRepo) GetSlot(_ context.Context, id string) (*models.AvailabilitySlot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.slots[id]
	if !ok {
		return nil, scheduleRepo.ErrSlotNotFound
	}
	return &s, nil
}

func (r *fakeRepo) FindSlotAt(_ context.Context, boosterID, date, timeSlot string) (*models.AvailabilitySlot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var found *models.AvailabilitySlot
	for _, s := range r.slots {
		if s.BoosterID != boosterID || s.Date != date || !strings.HasPrefix(s.StartTime, timeSlot[:2]+":") {
			continue
		}
		if s.Status == models.SlotFree {
			return &s, nil
		}
		if found == nil {
			found = &s
		}
	}
	if found == nil {
		return nil, scheduleRepo.ErrSlotNotFound
	}
	return found, nil
}

func (r *fakeRepo) MoveAssignment(_ context.Context, sourceID, targetID string) (*models.ReassignmentResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	src, tgt := r.slots[sourceID], r.slots[targetID]
	if src.Job == nil || tgt.Status != models.SlotFree {
		return nil, scheduleRepo.ErrSlotConflict
	}
	tgt.Job, tgt.Notes, tgt.Status = src.Job, src.Notes, models.SlotBooked
	src.Job, src.Notes, src.Status = nil, "", models.SlotFree
	r.slots[sourceID], r.slots[targetID] = src, tgt
	r.moves++
	return &models.ReassignmentResult{Source: src, Target: tgt}, nil
}

type recordingNotifier struct {
	calls []models.Booster
}

func (n *recordingNotifier) NotifyReassignment(_ context.Context, b models.Booster, _ models.ReassignmentResult) error {
	n.calls = append(n.calls, b)
	return nil
}

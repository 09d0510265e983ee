package schedule

import (
	"testing"
	"time"

	"beautyboosters/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var day = time.Date(2024, 6, 14, 0, 0, 0, 0, time.UTC)

func newSurfaceFixture() (*Surface, string, string) {
	s := NewSurface()
	token := s.RegisterToken(models.AvailabilitySlot{
		AvailabilityID: "a1",
		Job:            &models.Job{ID: "j1", Title: "Bryllup"},
	})
	cell := s.RegisterCell(models.CellData{BoosterID: "b2", TimeSlot: "10:00", Date: day})
	return s, token, cell
}

func TestKeys(t *testing.T) {
	assert.Equal(t, "availability-a1", DraggableKey("a1"))
	assert.Equal(t, "b2-10:00-2024-06-14", DroppableKey("b2", "10:00", day))

	id, ok := AvailabilityIDFromKey("availability-a1")
	assert.True(t, ok)
	assert.Equal(t, "a1", id)
	_, ok = AvailabilityIDFromKey("slot-a1")
	assert.False(t, ok)
}

func TestSurface_ReleaseOverCellProducesIntent(t *testing.T) {
	s, token, cell := newSurfaceFixture()

	require.True(t, s.BeginDrag(token))
	assert.True(t, s.IsDragging(token))
	s.Hover(cell)
	assert.True(t, s.IsArmed(cell))

	ev := s.Release()
	require.NotNil(t, ev)
	assert.Equal(t, "a1", ev.Source.AvailabilityID)
	assert.Equal(t, "j1", ev.Source.Job.ID)
	assert.Equal(t, "b2", ev.Target.BoosterID)
	assert.Equal(t, "10:00", ev.Target.TimeSlot)
	assert.True(t, day.Equal(ev.Target.Date))

	assert.False(t, s.IsArmed(cell))
	assert.False(t, s.IsDragging(token))
}

func TestSurface_ReleaseOverNothing(t *testing.T) {
	cases := map[string]func(s *Surface, cell string){
		"never hovered":   func(*Surface, string) {},
		"left the cell":   func(s *Surface, cell string) { s.Hover(cell); s.Hover("") },
		"unknown cell":    func(s *Surface, _ string) { s.Hover("b9-10:00-2024-06-14") },
		"hover then none": func(s *Surface, cell string) { s.Hover(cell); s.Hover("nowhere") },
	}
	for name, gesture := range cases {
		t.Run(name, func(t *testing.T) {
			s, token, cell := newSurfaceFixture()
			require.True(t, s.BeginDrag(token))
			gesture(s, cell)

			for _, k := range s.CellKeys() {
				assert.False(t, s.IsArmed(k), "cell %s armed", k)
			}
			assert.Nil(t, s.Release())
			for _, k := range s.CellKeys() {
				assert.False(t, s.IsArmed(k))
			}
		})
	}
}

func TestSurface_CancelClearsState(t *testing.T) {
	s, token, cell := newSurfaceFixture()
	require.True(t, s.BeginDrag(token))
	s.Hover(cell)

	s.Cancel()
	assert.False(t, s.IsArmed(cell))
	assert.False(t, s.IsDragging(token))
	assert.Nil(t, s.Release())
}

func TestSurface_UnknownTokenAndIdleHover(t *testing.T) {
	s, _, cell := newSurfaceFixture()
	assert.False(t, s.BeginDrag("availability-missing"))

	s.Hover(cell)
	assert.False(t, s.IsArmed(cell))
	assert.Nil(t, s.Release())
}

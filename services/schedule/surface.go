package schedule

import "beautyboosters/models"

// Surface tracks one drag gesture over registered tokens and cells. It only reports
// the intent; validation and persistence belong to the caller. Not safe for
// concurrent use.
type Surface struct {
	tokens map[string]models.TokenData
	cells  map[string]models.CellData

	active string
	over   string
}

func NewSurface() *Surface {
	return &Surface{
		tokens: make(map[string]models.TokenData),
		cells:  make(map[string]models.CellData),
	}
}

// RegisterToken makes a slot draggable and returns its key.
func (s *Surface) RegisterToken(slot models.AvailabilitySlot) string {
	key := DraggableKey(slot.AvailabilityID)
	s.tokens[key] = models.TokenData{AvailabilityID: slot.AvailabilityID, Job: slot.Job}
	return key
}

// RegisterCell makes a cell a drop target and returns its key.
func (s *Surface) RegisterCell(cell models.CellData) string {
	key := DroppableKey(cell.BoosterID, cell.TimeSlot, cell.Date)
	s.cells[key] = cell
	return key
}

// BeginDrag picks up a token. It reports false for an unknown key.
func (s *Surface) BeginDrag(key string) bool {
	if _, ok := s.tokens[key]; !ok {
		return false
	}
	s.active = key
	s.over = ""
	return true
}

// Hover moves the pointer over a cell. An empty or unknown key means no cell.
func (s *Surface) Hover(cellKey string) {
	if s.active == "" {
		return
	}
	if _, ok := s.cells[cellKey]; !ok {
		s.over = ""
		return
	}
	s.over = cellKey
}

// Release ends the gesture. It returns nil when no cell is under the pointer.
func (s *Surface) Release() *models.DropEvent {
	defer s.reset()

	if s.active == "" || s.over == "" {
		return nil
	}
	return &models.DropEvent{
		Source: s.tokens[s.active],
		Target: s.cells[s.over],
	}
}

// Cancel aborts the gesture without producing an intent.
func (s *Surface) Cancel() {
	s.reset()
}

// IsArmed reports whether a drag currently hovers the cell.
func (s *Surface) IsArmed(cellKey string) bool {
	return s.active != "" && s.over != "" && s.over == cellKey
}

// IsDragging reports whether the token is the one being dragged.
func (s *Surface) IsDragging(key string) bool {
	return s.active != "" && s.active == key
}

// CellKeys returns the keys of all registered cells.
func (s *Surface) CellKeys() []string {
	keys := make([]string, 0, len(s.cells))
	for k := range s.cells {
		keys = append(keys, k)
	}
	return keys
}

func (s *Surface) reset() {
	s.active = ""
	s.over = ""
}

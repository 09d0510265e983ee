package schedule

import (
	"beautyboosters/models"
)

// StatusStyle is the visual descriptor of a slot status.
type StatusStyle struct {
	Color string `json:"color"`
	Icon  string `json:"icon"`
}

// StylePolicy maps slot statuses to styles. Unknown statuses get the fallback.
type StylePolicy struct {
	styles   map[models.SlotStatus]StatusStyle
	fallback StatusStyle
}

func NewStylePolicy(styles map[models.SlotStatus]StatusStyle, fallback StatusStyle) StylePolicy {
	copied := make(map[models.SlotStatus]StatusStyle, len(styles))
	for k, v := range styles {
		copied[k] = v
	}
	return StylePolicy{styles: copied, fallback: fallback}
}

// DefaultStylePolicy is the admin calendar's palette.
func DefaultStylePolicy() StylePolicy {
	return NewStylePolicy(map[models.SlotStatus]StatusStyle{
		models.SlotFree:    {Color: "bg-green-100 border-green-300 text-green-800", Icon: "check-circle"},
		models.SlotBusy:    {Color: "bg-red-100 border-red-300 text-red-800", Icon: "x-circle"},
		models.SlotBooked:  {Color: "bg-blue-100 border-blue-300 text-blue-800", Icon: "calendar"},
		models.SlotBlocked: {Color: "bg-gray-200 border-gray-400 text-gray-700", Icon: "ban"},
		models.SlotPending: {Color: "bg-yellow-100 border-yellow-300 text-yellow-800", Icon: "clock"},
	}, StatusStyle{Color: "bg-gray-100 border-gray-300 text-gray-800", Icon: "alert-circle"})
}

func (p StylePolicy) Style(status models.SlotStatus) StatusStyle {
	if s, ok := p.styles[status]; ok {
		return s
	}
	return p.fallback
}

// Client iconography of a booked token.
const (
	ClientIconBusiness   = "business"
	ClientIconIndividual = "individual"
)

const (
	maxTitleLen    = 24
	maxClientLen   = 20
	maxLocationLen = 24
	ellipsis       = "…"
	dimmedOpacity  = 0.5
)

// JobView is the truncated job block of a token.
type JobView struct {
	Title      string `json:"title"`
	ClientName string `json:"clientName,omitempty"`
	Location   string `json:"location,omitempty"`
}

// TokenView is a rendered availability token.
type TokenView struct {
	Key            string            `json:"key"`
	AvailabilityID string            `json:"availabilityId"`
	Status         models.SlotStatus `json:"status"`
	Badge          StatusStyle       `json:"badge"`
	Dimmed         bool              `json:"dimmed"`
	Opacity        float64           `json:"opacity"`
	TimeRange      string            `json:"timeRange"`
	Job            *JobView          `json:"job,omitempty"`
	ClientIcon     string            `json:"clientIcon,omitempty"`
	Notes          string            `json:"notes,omitempty"`
}

// CellView is a rendered calendar cell.
type CellView struct {
	Key       string `json:"key"`
	BoosterID string `json:"boosterId"`
	TimeSlot  string `json:"timeSlot"`
	Date      string `json:"date"`
	Armed     bool   `json:"armed"`
}

// RenderToken renders a slot. The model keeps the untruncated values.
func RenderToken(slot models.AvailabilitySlot, policy StylePolicy, dragging bool) TokenView {
	view := TokenView{
		Key:            DraggableKey(slot.AvailabilityID),
		AvailabilityID: slot.AvailabilityID,
		Status:         slot.Status,
		Badge:          policy.Style(slot.Status),
		Dimmed:         dragging,
		Opacity:        1,
		TimeRange:      hhmm(slot.StartTime) + "-" + hhmm(slot.EndTime),
		Notes:          slot.Notes,
	}
	if dragging {
		view.Opacity = dimmedOpacity
	}

	if slot.Job != nil {
		view.Job = &JobView{
			Title:      truncate(slot.Job.Title, maxTitleLen),
			ClientName: truncate(slot.Job.ClientName, maxClientLen),
			Location:   truncate(slot.Job.Location, maxLocationLen),
		}
	}

	if slot.IsBooked() {
		if slot.Job.IsBusiness() {
			view.ClientIcon = ClientIconBusiness
		} else {
			view.ClientIcon = ClientIconIndividual
		}
	}
	return view
}

// RenderCell renders a drop target.
func RenderCell(cell models.CellData, armed bool) CellView {
	return CellView{
		Key:       DroppableKey(cell.BoosterID, cell.TimeSlot, cell.Date),
		BoosterID: cell.BoosterID,
		TimeSlot:  cell.TimeSlot,
		Date:      FormatDate(cell.Date),
		Armed:     armed,
	}
}

func hhmm(t string) string {
	if len(t) >= 5 {
		return t[:5]
	}
	return t
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + ellipsis
}

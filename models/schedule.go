package models

import "time"

// SlotStatus is the state of a booster's availability slot.
type SlotStatus string

const (
	SlotFree    SlotStatus = "free"
	SlotBusy    SlotStatus = "busy"
	SlotBooked  SlotStatus = "booked"
	SlotBlocked SlotStatus = "blocked"
	SlotPending SlotStatus = "pending"
)

// Client types of a job.
const (
	ClientPrivate  = "private"
	ClientBusiness = "business"
)

// Job is a scheduled service engagement, read-only from the calendar's perspective.
type Job struct {
	ID         string `bson:"id" json:"id"`
	Title      string `bson:"title" json:"title"`
	ClientName string `bson:"clientName,omitempty" json:"clientName,omitempty"`
	Location   string `bson:"location" json:"location"`
	ClientType string `bson:"clientType,omitempty" json:"clientType,omitempty"`
}

// IsBusiness reports whether the job's client is a business.
func (j *Job) IsBusiness() bool {
	return j != nil && j.ClientType == ClientBusiness
}

// AvailabilitySlot is a booster's calendar time block, optionally carrying a job.
type AvailabilitySlot struct {
	AvailabilityID string     `bson:"id" json:"availabilityId"`
	BoosterID      string     `bson:"boosterId" json:"boosterId"`
	Date           string     `bson:"date" json:"date"`           // YYYY-MM-DD
	StartTime      string     `bson:"startTime" json:"startTime"` // HH:MM:SS
	EndTime        string     `bson:"endTime" json:"endTime"`     // HH:MM:SS
	Status         SlotStatus `bson:"status" json:"status"`
	Job            *Job       `bson:"job,omitempty" json:"job,omitempty"`
	Notes          string     `bson:"notes,omitempty" json:"notes,omitempty"`
	UpdatedAt      time.Time  `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

// IsBooked reports whether the slot has an assigned job.
func (s *AvailabilitySlot) IsBooked() bool {
	return s.Status == SlotBooked && s.Job != nil
}

// Booster is a freelance provider shown as a calendar row.
type Booster struct {
	ID       string `bson:"id" json:"id"`
	Name     string `bson:"name" json:"name"`
	FCMToken string `bson:"fcmToken,omitempty" json:"-"`
	Active   bool   `bson:"active" json:"active"`
}

// TokenData is the payload carried by a draggable availability token.
type TokenData struct {
	AvailabilityID string `json:"availabilityId"`
	Job            *Job   `json:"job,omitempty"`
}

// CellData is the payload carried by a droppable calendar cell.
type CellData struct {
	BoosterID string    `json:"boosterId"`
	TimeSlot  string    `json:"timeSlot"`
	Date      time.Time `json:"date"`
}

// DropEvent is the reassignment intent handed to the host page on release.
type DropEvent struct {
	Source TokenData `json:"source"`
	Target CellData  `json:"target"`
}

// DropRequest replays a drag gesture: the token key picked up and the cell key released over.
type DropRequest struct {
	DraggableID string `json:"draggableId" binding:"required"`
	DroppableID string `json:"droppableId"`
	Date        string `json:"date" binding:"required"`
}

// ReassignmentResult describes a persisted move.
type ReassignmentResult struct {
	Source AvailabilitySlot `json:"source"`
	Target AvailabilitySlot `json:"target"`
}

// ReassignmentPayload is the queued push notice for a booster who received a job.
type ReassignmentPayload struct {
	BoosterID      string `json:"boosterId"`
	AvailabilityID string `json:"availabilityId"`
	JobID          string `json:"jobId"`
	JobTitle       string `json:"jobTitle"`
	Date           string `json:"date"`
	StartTime      string `json:"startTime"`
	EndTime        string `json:"endTime"`
}

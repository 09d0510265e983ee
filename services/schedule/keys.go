package schedule

import (
	"strings"
	"time"
)

const (
	draggablePrefix = "availability-"
	dateLayout      = "2006-01-02"
)

// DraggableKey is the identifier of an availability token.
func DraggableKey(availabilityID string) string {
	return draggablePrefix + availabilityID
}

// AvailabilityIDFromKey reverses DraggableKey.
func AvailabilityIDFromKey(key string) (string, bool) {
	if !strings.HasPrefix(key, draggablePrefix) || len(key) == len(draggablePrefix) {
		return "", false
	}
	return strings.TrimPrefix(key, draggablePrefix), true
}

// DroppableKey is the identifier of a booster/time/date cell.
func DroppableKey(boosterID, timeSlot string, date time.Time) string {
	return boosterID + "-" + timeSlot + "-" + date.Format(dateLayout)
}

// ParseDate parses a calendar date in YYYY-MM-DD form.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(dateLayout, s)
}

// FormatDate renders a calendar date in YYYY-MM-DD form.
func FormatDate(t time.Time) string {
	return t.Format(dateLayout)
}

// SlotHour maps an HH:MM:SS start time onto the hourly cell it is drawn in.
func SlotHour(startTime string) string {
	if len(startTime) < 2 {
		return ""
	}
	return startTime[:2] + ":00"
}

package model

import "time"

// TimeSlot mirrors the `time_slots` table. A slot belongs to exactly one
// facility and may only be created by that facility's creator. StartTime
// and EndTime are clock times within a day; reservations pick the date.
type TimeSlot struct {
	ID          uint64
	FacilityID  uint64
	StartTime   time.Time
	EndTime     time.Time
	CreatedByID string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

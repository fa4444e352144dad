// Package queue defines message payloads exchanged over the message broker
// and the background consumer that processes them.
package queue

// ReservationConfirmedEvent is published when a reservation is successfully
// created. It carries enough context for downstream consumers to log or
// notify without querying the primary database.
type ReservationConfirmedEvent struct {
	ReservationID uint64 `json:"reservation_id"`
	UserID        string `json:"user_id"`
	UserName      string `json:"user_name"`
	FacilityID    uint64 `json:"facility_id"`
	FacilityName  string `json:"facility_name"`
	TimeSlotID    uint64 `json:"time_slot_id"`
	StartTime     string `json:"start_time"`
	EndTime       string `json:"end_time"`
	Date          string `json:"date"`
	Participants  int    `json:"participants"`
	ConfirmedAt   string `json:"confirmed_at"`
}

package model

import "time"

// ReservationStatus tracks the lifecycle of a booking.
type ReservationStatus uint8

const (
	ReservationPending ReservationStatus = iota
	ReservationConfirmed
	ReservationCancelled
)

func (s ReservationStatus) String() string {
	switch s {
	case ReservationPending:
		return "Pending"
	case ReservationConfirmed:
		return "Confirmed"
	case ReservationCancelled:
		return "Cancelled"
	}
	return "Unknown"
}

// Reservation mirrors the `reservations` table. The owner of a reservation
// is the reserving user (UserID), not the owner of the facility the slot
// belongs to.
type Reservation struct {
	ID              uint64
	TimeSlotID      uint64
	UserID          string
	UserName        string // joined from users for read responses
	UserEmail       string // joined from users for read responses
	ReservationDate time.Time
	Participants    int
	Status          ReservationStatus
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

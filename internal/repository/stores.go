package repository

// Store interfaces decouple handlers and services from MySQL so tests can
// substitute in-memory fakes. The *Repo types below are the production
// implementations.

import (
	"context"
	"time"

	"github.com/courtside/facility-reservation/internal/model"
)

// UserStore persists users and their role assignments.
type UserStore interface {
	// Create inserts the user and its role assignments in one transaction;
	// a user with zero roles is an invalid state that must not be reachable.
	Create(ctx context.Context, u *model.User, roles []string) error
	GetByUserName(ctx context.Context, userName string) (*model.User, error)
	GetByID(ctx context.Context, id string) (*model.User, error)
}

// SessionStore persists login sessions. Rows are never deleted.
type SessionStore interface {
	Create(ctx context.Context, s *model.Session) error
	Get(ctx context.Context, id string) (*model.Session, error)
	// Swap atomically replaces the stored refresh-token hash and expiry,
	// but only while the row still holds oldHash and is not revoked. It
	// reports false when no row matched, which covers both a missing
	// session and a concurrent rotation that got there first.
	Swap(ctx context.Context, id, oldHash, newHash string, expiresAt time.Time) (bool, error)
	// Revoke flags the session revoked and reports whether a row changed.
	Revoke(ctx context.Context, id string) (bool, error)
}

// FacilityStore persists facilities.
type FacilityStore interface {
	Create(ctx context.Context, f *model.Facility) error
	GetByID(ctx context.Context, id uint64) (*model.Facility, error)
	List(ctx context.Context) ([]model.Facility, error)
	Update(ctx context.Context, f *model.Facility) error
	Delete(ctx context.Context, id uint64) error
}

// TimeSlotStore persists time slots scoped to their facility.
type TimeSlotStore interface {
	Create(ctx context.Context, ts *model.TimeSlot) error
	GetByID(ctx context.Context, facilityID, id uint64) (*model.TimeSlot, error)
	ListByFacility(ctx context.Context, facilityID uint64) ([]model.TimeSlot, error)
	Update(ctx context.Context, ts *model.TimeSlot) error
	Delete(ctx context.Context, id uint64) error
}

// ReservationStore persists reservations scoped to facility and time slot.
type ReservationStore interface {
	Create(ctx context.Context, r *model.Reservation) error
	GetByID(ctx context.Context, facilityID, timeSlotID, id uint64) (*model.Reservation, error)
	ListByTimeSlot(ctx context.Context, timeSlotID uint64) ([]model.Reservation, error)
	Update(ctx context.Context, r *model.Reservation) error
	Delete(ctx context.Context, id uint64) error
}

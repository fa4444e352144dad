// Package repository contains the data access layer. Sentinel errors are
// defined here so handlers can translate persistence failures into the
// right HTTP responses without string matching.
package repository

import "errors"

// ErrUserNameExists is returned when registration hits the unique index on
// users.user_name. Handlers translate this into a 400 with a problem detail.
var ErrUserNameExists = errors.New("user name already exists")

// ErrUserNotFound is returned when no user matches a lookup.
var ErrUserNotFound = errors.New("user not found")

// ErrSessionNotFound is returned when no session row matches a lookup or a
// compare-and-swap rotation finds no row with the expected hash.
var ErrSessionNotFound = errors.New("session not found")

// ErrFacilityNotFound is returned when a facility does not exist.
var ErrFacilityNotFound = errors.New("facility not found")

// ErrTimeSlotNotFound is returned when a time slot does not exist within
// the addressed facility.
var ErrTimeSlotNotFound = errors.New("time slot not found")

// ErrReservationNotFound is returned when a reservation does not exist
// within the addressed time slot.
var ErrReservationNotFound = errors.New("reservation not found")

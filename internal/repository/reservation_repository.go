package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/courtside/facility-reservation/internal/model"
)

// ReservationRepo is the MySQL implementation of ReservationStore.
// Reservations are addressed through their time slot and facility, so the
// single-row lookup joins time_slots to reject ids reached through the
// wrong URL. User name and email are joined in for read responses.
type ReservationRepo struct{ DB *sql.DB }

func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{DB: db} }

const reservationColumns = "r.id, r.time_slot_id, r.user_id, u.user_name, u.email, r.reservation_date, r.participants, r.status, r.created_at, r.updated_at"

// Create inserts a reservation and re-reads it with the user join.
func (r *ReservationRepo) Create(ctx context.Context, res *model.Reservation) error {
	ins, err := r.DB.ExecContext(ctx,
		"INSERT INTO reservations (time_slot_id, user_id, reservation_date, participants, status) VALUES (?,?,?,?,?)",
		res.TimeSlotID, res.UserID, res.ReservationDate, res.Participants, res.Status)
	if err != nil {
		return err
	}
	id, err := ins.LastInsertId()
	if err != nil {
		return err
	}
	res.ID = uint64(id)
	return r.DB.QueryRowContext(ctx,
		"SELECT "+reservationColumns+" FROM reservations r JOIN users u ON u.id=r.user_id WHERE r.id=?",
		res.ID).Scan(scanReservation(res)...)
}

// GetByID fetches a reservation by id, verifying that it belongs to the
// addressed time slot and that the slot belongs to the addressed facility.
func (r *ReservationRepo) GetByID(ctx context.Context, facilityID, timeSlotID, id uint64) (*model.Reservation, error) {
	var res model.Reservation
	err := r.DB.QueryRowContext(ctx,
		"SELECT "+reservationColumns+" FROM reservations r "+
			"JOIN users u ON u.id=r.user_id "+
			"JOIN time_slots ts ON ts.id=r.time_slot_id "+
			"WHERE r.id=? AND r.time_slot_id=? AND ts.facility_id=? LIMIT 1",
		id, timeSlotID, facilityID).Scan(scanReservation(&res)...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrReservationNotFound
		}
		return nil, err
	}
	return &res, nil
}

// ListByTimeSlot returns all reservations of a slot ordered by date.
func (r *ReservationRepo) ListByTimeSlot(ctx context.Context, timeSlotID uint64) ([]model.Reservation, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+reservationColumns+" FROM reservations r JOIN users u ON u.id=r.user_id WHERE r.time_slot_id=? ORDER BY r.reservation_date",
		timeSlotID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Reservation
	for rows.Next() {
		var res model.Reservation
		if err := rows.Scan(scanReservation(&res)...); err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	return out, rows.Err()
}

// Update rewrites the reservation's date and participant count.
func (r *ReservationRepo) Update(ctx context.Context, res *model.Reservation) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE reservations SET reservation_date=?, participants=? WHERE id=?",
		res.ReservationDate, res.Participants, res.ID)
	return err
}

// Delete removes a reservation row.
func (r *ReservationRepo) Delete(ctx context.Context, id uint64) error {
	_, err := r.DB.ExecContext(ctx, "DELETE FROM reservations WHERE id=?", id)
	return err
}

func scanReservation(res *model.Reservation) []interface{} {
	return []interface{}{
		&res.ID, &res.TimeSlotID, &res.UserID, &res.UserName, &res.UserEmail,
		&res.ReservationDate, &res.Participants, &res.Status, &res.CreatedAt, &res.UpdatedAt,
	}
}

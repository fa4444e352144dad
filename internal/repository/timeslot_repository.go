package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/courtside/facility-reservation/internal/model"
)

// TimeSlotRepo is the MySQL implementation of TimeSlotStore. Lookups are
// always scoped by facility id so a slot cannot be addressed through the
// wrong facility's URL.
type TimeSlotRepo struct{ DB *sql.DB }

func NewTimeSlotRepo(db *sql.DB) *TimeSlotRepo { return &TimeSlotRepo{DB: db} }

const timeSlotColumns = "id, facility_id, start_time, end_time, created_by_id, created_at, updated_at"

// Create inserts a time slot and re-reads the row for timestamps.
func (r *TimeSlotRepo) Create(ctx context.Context, ts *model.TimeSlot) error {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO time_slots (facility_id, start_time, end_time, created_by_id) VALUES (?,?,?,?)",
		ts.FacilityID, ts.StartTime, ts.EndTime, ts.CreatedByID)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	ts.ID = uint64(id)
	return r.DB.QueryRowContext(ctx,
		"SELECT "+timeSlotColumns+" FROM time_slots WHERE id=?", ts.ID).
		Scan(&ts.ID, &ts.FacilityID, &ts.StartTime, &ts.EndTime, &ts.CreatedByID, &ts.CreatedAt, &ts.UpdatedAt)
}

// GetByID fetches a slot by id within the given facility.
func (r *TimeSlotRepo) GetByID(ctx context.Context, facilityID, id uint64) (*model.TimeSlot, error) {
	var ts model.TimeSlot
	err := r.DB.QueryRowContext(ctx,
		"SELECT "+timeSlotColumns+" FROM time_slots WHERE id=? AND facility_id=? LIMIT 1",
		id, facilityID).
		Scan(&ts.ID, &ts.FacilityID, &ts.StartTime, &ts.EndTime, &ts.CreatedByID, &ts.CreatedAt, &ts.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTimeSlotNotFound
		}
		return nil, err
	}
	return &ts, nil
}

// ListByFacility returns all slots of a facility ordered by start time.
func (r *TimeSlotRepo) ListByFacility(ctx context.Context, facilityID uint64) ([]model.TimeSlot, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+timeSlotColumns+" FROM time_slots WHERE facility_id=? ORDER BY start_time",
		facilityID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.TimeSlot
	for rows.Next() {
		var ts model.TimeSlot
		if err := rows.Scan(&ts.ID, &ts.FacilityID, &ts.StartTime, &ts.EndTime, &ts.CreatedByID, &ts.CreatedAt, &ts.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, ts)
	}
	return out, rows.Err()
}

// Update rewrites the slot's time window.
func (r *TimeSlotRepo) Update(ctx context.Context, ts *model.TimeSlot) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE time_slots SET start_time=?, end_time=? WHERE id=?",
		ts.StartTime, ts.EndTime, ts.ID)
	return err
}

// Delete removes a time slot row.
func (r *TimeSlotRepo) Delete(ctx context.Context, id uint64) error {
	_, err := r.DB.ExecContext(ctx, "DELETE FROM time_slots WHERE id=?", id)
	return err
}

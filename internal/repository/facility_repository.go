package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/courtside/facility-reservation/internal/model"
)

// FacilityRepo is the MySQL implementation of FacilityStore.
type FacilityRepo struct{ DB *sql.DB }

func NewFacilityRepo(db *sql.DB) *FacilityRepo { return &FacilityRepo{DB: db} }

const facilityColumns = "id, name, address, description, picture_url, phone_number, email_address, max_participants, facility_type, created_by_id, created_at, updated_at"

// Create inserts a facility and re-reads the row so callers receive the
// database-assigned id and timestamps.
func (r *FacilityRepo) Create(ctx context.Context, f *model.Facility) error {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO facilities (name, address, description, picture_url, phone_number, email_address, max_participants, facility_type, created_by_id) VALUES (?,?,?,?,?,?,?,?,?)",
		f.Name, f.Address, f.Description, f.PictureURL, f.PhoneNumber, f.EmailAddress,
		f.MaxParticipants, f.FacilityType, f.CreatedByID)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	f.ID = uint64(id)
	return r.DB.QueryRowContext(ctx,
		"SELECT "+facilityColumns+" FROM facilities WHERE id=?", f.ID).
		Scan(scanFacility(f)...)
}

// GetByID fetches a facility by id regardless of owner; ownership is
// enforced by the caller, which must be able to distinguish 403 from 404.
func (r *FacilityRepo) GetByID(ctx context.Context, id uint64) (*model.Facility, error) {
	var f model.Facility
	err := r.DB.QueryRowContext(ctx,
		"SELECT "+facilityColumns+" FROM facilities WHERE id=? LIMIT 1", id).
		Scan(scanFacility(&f)...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrFacilityNotFound
		}
		return nil, err
	}
	return &f, nil
}

// List returns all facilities ordered by id.
func (r *FacilityRepo) List(ctx context.Context) ([]model.Facility, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+facilityColumns+" FROM facilities ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Facility
	for rows.Next() {
		var f model.Facility
		if err := rows.Scan(scanFacility(&f)...); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

// Update rewrites the mutable columns of a facility.
func (r *FacilityRepo) Update(ctx context.Context, f *model.Facility) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE facilities SET name=?, address=?, description=?, picture_url=?, phone_number=?, email_address=?, max_participants=?, facility_type=? WHERE id=?",
		f.Name, f.Address, f.Description, f.PictureURL, f.PhoneNumber, f.EmailAddress,
		f.MaxParticipants, f.FacilityType, f.ID)
	return err
}

// Delete removes a facility row.
func (r *FacilityRepo) Delete(ctx context.Context, id uint64) error {
	_, err := r.DB.ExecContext(ctx, "DELETE FROM facilities WHERE id=?", id)
	return err
}

func scanFacility(f *model.Facility) []interface{} {
	return []interface{}{
		&f.ID, &f.Name, &f.Address, &f.Description, &f.PictureURL, &f.PhoneNumber,
		&f.EmailAddress, &f.MaxParticipants, &f.FacilityType, &f.CreatedByID,
		&f.CreatedAt, &f.UpdatedAt,
	}
}

package database

import (
	"context"
	"database/sql"
	"errors"
	"log"

	"github.com/google/uuid"

	"github.com/courtside/facility-reservation/internal/auth"
	"github.com/courtside/facility-reservation/internal/model"
)

const (
	seedAdminUserName = "admin"
	seedAdminEmail    = "admin@reservations.com"
)

// roleCatalogue returns the role rows ensured at startup. Ids are fixed by
// position so re-running the seed against an existing database never
// renumbers roles.
func roleCatalogue() []model.Role {
	rows := make([]model.Role, 0, len(model.AllRoles))
	for i, name := range model.AllRoles {
		rows = append(rows, model.Role{ID: uint8(i + 1), Name: name})
	}
	return rows
}

// buildSeedAdmin assembles the bootstrap administrator account holding
// every role. Only the insert is left to the caller.
func buildSeedAdmin(bcryptCost int, password string) (*model.User, error) {
	hash, err := auth.HashPassword(password, bcryptCost)
	if err != nil {
		return nil, err
	}
	return &model.User{
		ID:           uuid.NewString(),
		UserName:     seedAdminUserName,
		Email:        seedAdminEmail,
		PasswordHash: hash,
		Roles:        append([]string(nil), model.AllRoles...),
	}, nil
}

// Seed ensures the role catalogue exists and creates the bootstrap admin
// account holding all roles. It is idempotent and safe to run on every
// startup. When adminPassword is empty the admin account is skipped,
// which is the expected setting everywhere except fresh environments.
func Seed(ctx context.Context, db *sql.DB, bcryptCost int, adminPassword string) error {
	for _, role := range roleCatalogue() {
		if _, err := db.ExecContext(ctx,
			"INSERT IGNORE INTO roles (id, name) VALUES (?,?)", role.ID, role.Name); err != nil {
			return err
		}
	}
	if adminPassword == "" {
		return nil
	}

	var existing string
	err := db.QueryRowContext(ctx,
		"SELECT id FROM users WHERE user_name=? LIMIT 1", seedAdminUserName).Scan(&existing)
	if err == nil {
		return nil // already seeded
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return err
	}

	admin, err := buildSeedAdmin(bcryptCost, adminPassword)
	if err != nil {
		return err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		"INSERT INTO users (id, user_name, email, password_hash) VALUES (?,?,?,?)",
		admin.ID, admin.UserName, admin.Email, admin.PasswordHash); err != nil {
		return err
	}
	for _, role := range admin.Roles {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO user_roles (user_id, role_id) SELECT ?, id FROM roles WHERE name=?",
			admin.ID, role); err != nil {
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	log.Printf("seed: created bootstrap admin user %q", seedAdminUserName)
	return nil
}

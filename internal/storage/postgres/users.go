package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"activityBooker/internal/models"
	"activityBooker/internal/storage"

	"github.com/google/uuid"
)

const userColumns = `id, name, mobile_number, email, password_hash, role, created_at`

func (s *Storage) SaveUser(ctx context.Context, user *models.User) (string, error) {
	const op = "storage.postgres.SaveUser"

	query := `
		INSERT INTO users (id, name, mobile_number, email, password_hash, role)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`

	role := user.Role
	if role == "" {
		role = models.RoleParticipant
	}

	var id string
	err := s.DB.QueryRowContext(ctx, query,
		uuid.NewString(),
		user.Name,
		user.MobileNumber,
		user.Email,
		user.PasswordHash,
		role,
	).Scan(&id, &user.CreatedAt)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, classify(err))
	}

	user.ID = id
	user.Role = role

	return id, nil
}

func (s *Storage) UserByEmail(ctx context.Context, email string) (*models.User, error) {
	const op = "storage.postgres.UserByEmail"

	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	user, err := scanUser(s.DB.QueryRowContext(ctx, query, email))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return user, nil
}

func (s *Storage) UserByID(ctx context.Context, id string) (*models.User, error) {
	const op = "storage.postgres.UserByID"

	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	user, err := scanUser(s.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return user, nil
}

func (s *Storage) UpdateUser(ctx context.Context, id string, patch models.UserPatch) (*models.User, error) {
	const op = "storage.postgres.UpdateUser"

	query := `
		UPDATE users SET
			name = COALESCE($2, name),
			mobile_number = COALESCE($3, mobile_number),
			email = COALESCE($4, email),
			password_hash = COALESCE($5, password_hash)
		WHERE id = $1
		RETURNING ` + userColumns

	user, err := scanUser(s.DB.QueryRowContext(ctx, query,
		id,
		patch.Name,
		patch.MobileNumber,
		patch.Email,
		patch.PasswordHash,
	))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return user, nil
}

// DeleteUser removes the account only. Activities and bookings referencing it are kept.
func (s *Storage) DeleteUser(ctx context.Context, id string) error {
	const op = "storage.postgres.DeleteUser"

	res, err := s.DB.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, classify(err))
	}

	if err = expectAffected(res); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func scanUser(row *sql.Row) (*models.User, error) {
	var user models.User

	err := row.Scan(
		&user.ID,
		&user.Name,
		&user.MobileNumber,
		&user.Email,
		&user.PasswordHash,
		&user.Role,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, classify(err)
	}

	return &user, nil
}

func expectAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return storage.ErrNotFound
	}

	return nil
}

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

const activityColumns = `a.id, a.organizer_id, a.title, a.description, a.location, a.date,
	a.activity_type, a.price::float8, a.total_seats, a.available_seats`

const activityWithOrganizer = `
	SELECT ` + activityColumns + `, u.id, u.name, u.email, u.mobile_number
	FROM activities a
	LEFT JOIN users u ON u.id = a.organizer_id`

type rowScanner interface {
	Scan(dest ...any) error
}

func (s *Storage) SaveActivity(ctx context.Context, activity *models.Activity) (string, error) {
	const op = "storage.postgres.SaveActivity"

	if err := activity.ValidatePricing(); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	query := `
		INSERT INTO activities (id, organizer_id, title, description, location, date, activity_type, price, total_seats, available_seats)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9)
		RETURNING id`

	var id string
	err := s.DB.QueryRowContext(ctx, query,
		uuid.NewString(),
		activity.OrganizerID,
		activity.Title,
		activity.Description,
		activity.Location,
		activity.Date,
		activity.ActivityType,
		activity.Price,
		activity.TotalSeats,
	).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, classify(err))
	}

	seats := activity.TotalSeats
	activity.ID = id
	activity.AvailableSeats = &seats

	return id, nil
}

func (s *Storage) ActivityByID(ctx context.Context, id string) (*models.Activity, error) {
	const op = "storage.postgres.ActivityByID"

	activity, err := scanActivityWithOrganizer(s.DB.QueryRowContext(ctx, activityWithOrganizer+` WHERE a.id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, classify(err))
	}

	return activity, nil
}

func (s *Storage) Activities(ctx context.Context) ([]models.Activity, error) {
	const op = "storage.postgres.Activities"

	rows, err := s.DB.QueryContext(ctx, activityWithOrganizer+` ORDER BY a.date, a.id`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, classify(err))
	}
	defer rows.Close()

	activities := make([]models.Activity, 0)
	for rows.Next() {
		activity, err := scanActivityWithOrganizer(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		activities = append(activities, *activity)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return activities, nil
}

// UpdateActivity merges the patch into the stored activity if organizerID owns it.
// Capacity and seat counters are not updatable.
func (s *Storage) UpdateActivity(ctx context.Context, id, organizerID string, patch models.ActivityPatch) (*models.Activity, error) {
	const op = "storage.postgres.UpdateActivity"

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to begin transaction: %w", op, err)
	}
	defer tx.Rollback()

	activity, err := lockOwnedActivity(ctx, tx, id, organizerID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	patch.Apply(activity)
	if err = activity.ValidatePricing(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	query := `
		UPDATE activities SET
			title = $2,
			description = $3,
			location = $4,
			date = $5,
			activity_type = $6,
			price = $7
		WHERE id = $1`

	_, err = tx.ExecContext(ctx, query,
		activity.ID,
		activity.Title,
		activity.Description,
		activity.Location,
		activity.Date,
		activity.ActivityType,
		activity.Price,
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, classify(err))
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, classify(err))
	}

	return activity, nil
}

// DeleteActivity removes the activity if organizerID owns it. Its bookings are kept.
func (s *Storage) DeleteActivity(ctx context.Context, id, organizerID string) error {
	const op = "storage.postgres.DeleteActivity"

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: failed to begin transaction: %w", op, err)
	}
	defer tx.Rollback()

	if _, err = lockOwnedActivity(ctx, tx, id, organizerID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if _, err = tx.ExecContext(ctx, `DELETE FROM activities WHERE id = $1`, id); err != nil {
		return fmt.Errorf("%s: %w", op, classify(err))
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%s: %w", op, classify(err))
	}

	return nil
}

func lockOwnedActivity(ctx context.Context, tx *sql.Tx, id, organizerID string) (*models.Activity, error) {
	activity, err := selectActivityForUpdate(ctx, tx, id)
	if err != nil {
		return nil, err
	}

	if activity.OrganizerID != organizerID {
		return nil, storage.ErrNotOwner
	}

	return activity, nil
}

func selectActivityForUpdate(ctx context.Context, tx *sql.Tx, id string) (*models.Activity, error) {
	query := `SELECT ` + activityColumns + ` FROM activities a WHERE a.id = $1 FOR UPDATE`

	activity, err := scanActivity(tx.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, classify(err)
	}

	return activity, nil
}

func scanActivity(row rowScanner) (*models.Activity, error) {
	var (
		activity  models.Activity
		available sql.NullInt64
	)

	err := row.Scan(
		&activity.ID,
		&activity.OrganizerID,
		&activity.Title,
		&activity.Description,
		&activity.Location,
		&activity.Date,
		&activity.ActivityType,
		&activity.Price,
		&activity.TotalSeats,
		&available,
	)
	if err != nil {
		return nil, err
	}

	if available.Valid {
		seats := int(available.Int64)
		activity.AvailableSeats = &seats
	}

	return &activity, nil
}

func scanActivityWithOrganizer(row rowScanner) (*models.Activity, error) {
	var (
		activity  models.Activity
		available sql.NullInt64
		orgID     sql.NullString
		orgName   sql.NullString
		orgEmail  sql.NullString
		orgMobile sql.NullString
	)

	err := row.Scan(
		&activity.ID,
		&activity.OrganizerID,
		&activity.Title,
		&activity.Description,
		&activity.Location,
		&activity.Date,
		&activity.ActivityType,
		&activity.Price,
		&activity.TotalSeats,
		&available,
		&orgID,
		&orgName,
		&orgEmail,
		&orgMobile,
	)
	if err != nil {
		return nil, err
	}

	if available.Valid {
		seats := int(available.Int64)
		activity.AvailableSeats = &seats
	}

	if orgID.Valid {
		activity.Organizer = &models.Organizer{
			ID:           orgID.String,
			Name:         orgName.String,
			Email:        orgEmail.String,
			MobileNumber: orgMobile.String,
		}
	}

	return &activity, nil
}

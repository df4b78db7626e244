package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"activityBooker/internal/models"
	"activityBooker/internal/storage"
)

// InTx runs fn inside one READ COMMITTED transaction. The transaction commits only if fn returns nil.
func (s *Storage) InTx(ctx context.Context, fn func(tx storage.BookingTx) error) error {
	const op = "storage.postgres.InTx"

	tx, err := s.DB.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return fmt.Errorf("%s: failed to begin transaction: %w", op, classify(err))
	}
	defer tx.Rollback()

	if err = fn(&bookingTx{tx: tx}); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%s: %w", op, classify(err))
	}

	return nil
}

type bookingTx struct {
	tx *sql.Tx
}

func (b *bookingTx) ActivityForUpdate(ctx context.Context, activityID string) (*models.Activity, error) {
	const op = "storage.postgres.ActivityForUpdate"

	activity, err := selectActivityForUpdate(ctx, b.tx, activityID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return activity, nil
}

func (b *bookingTx) BookingExists(ctx context.Context, userID, activityID string) (bool, error) {
	const op = "storage.postgres.BookingExists"

	query := `
		SELECT EXISTS(
			SELECT 1 FROM bookings
			WHERE user_id = $1 AND activity_id = $2
		)`

	var exists bool
	if err := b.tx.QueryRowContext(ctx, query, userID, activityID).Scan(&exists); err != nil {
		return false, fmt.Errorf("%s: %w", op, classify(err))
	}

	return exists, nil
}

func (b *bookingTx) CreateBooking(ctx context.Context, booking *models.Booking) error {
	const op = "storage.postgres.CreateBooking"

	query := `
		INSERT INTO bookings (id, user_id, activity_id, payment_status, booking_status, booked_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := b.tx.ExecContext(ctx, query,
		booking.ID,
		booking.UserID,
		booking.ActivityID,
		booking.PaymentStatus,
		booking.BookingStatus,
		booking.BookedAt,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, classify(err))
	}

	return nil
}

func (b *bookingTx) DecrementAvailableSeats(ctx context.Context, activityID string) error {
	const op = "storage.postgres.DecrementAvailableSeats"

	query := `
		UPDATE activities
		SET available_seats = COALESCE(available_seats, total_seats) - 1
		WHERE id = $1 AND COALESCE(available_seats, total_seats) > 0`

	res, err := b.tx.ExecContext(ctx, query, activityID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, classify(err))
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrSoldOut)
	}

	return nil
}

// BookingsByUser lists the user's bookings, newest first. Bookings whose activity
// or user no longer exists are left out.
func (s *Storage) BookingsByUser(ctx context.Context, userID string) ([]models.BookingDetails, error) {
	const op = "storage.postgres.BookingsByUser"

	query := `
		SELECT b.id, b.user_id, b.activity_id, b.payment_status, b.booking_status, b.booked_at,
			a.title, a.date, a.location, a.activity_type, a.price::float8,
			u.name, u.email
		FROM bookings b
		JOIN activities a ON a.id = b.activity_id
		JOIN users u ON u.id = b.user_id
		WHERE b.user_id = $1
		ORDER BY b.booked_at DESC`

	rows, err := s.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, classify(err))
	}
	defer rows.Close()

	bookings := make([]models.BookingDetails, 0)
	for rows.Next() {
		var d models.BookingDetails
		err = rows.Scan(
			&d.ID,
			&d.UserID,
			&d.ActivityID,
			&d.PaymentStatus,
			&d.BookingStatus,
			&d.BookedAt,
			&d.Activity.Title,
			&d.Activity.Date,
			&d.Activity.Location,
			&d.Activity.ActivityType,
			&d.Activity.Price,
			&d.User.Name,
			&d.User.Email,
		)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		bookings = append(bookings, d)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return bookings, nil
}

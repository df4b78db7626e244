package storage

import (
	"context"
	"errors"

	"activityBooker/internal/models"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrUserExists    = errors.New("user already exists")
	ErrNotOwner      = errors.New("activity belongs to another organizer")
	ErrAlreadyBooked = errors.New("activity already booked by user")
	ErrSoldOut       = errors.New("no available seats")
	// ErrTransient marks failures after which the whole transaction may be retried
	// (serialization failure, deadlock, lock timeout).
	ErrTransient = errors.New("transient storage failure")
)

// BookingTx is the view of the store inside a single booking transaction.
// Nothing written through it is visible to others until the transaction commits,
// and nothing survives if it rolls back.
type BookingTx interface {
	// ActivityForUpdate loads the activity and holds an exclusive lock on it
	// until the transaction ends.
	ActivityForUpdate(ctx context.Context, activityID string) (*models.Activity, error)
	BookingExists(ctx context.Context, userID, activityID string) (bool, error)
	CreateBooking(ctx context.Context, booking *models.Booking) error
	// DecrementAvailableSeats takes one seat, initialising an unset counter from
	// the total capacity first. Returns ErrSoldOut if no seat is left.
	DecrementAvailableSeats(ctx context.Context, activityID string) error
}

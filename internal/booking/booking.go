package booking

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"activityBooker/internal/config"
	"activityBooker/internal/lib/logger/sl"
	"activityBooker/internal/metrics"
	"activityBooker/internal/models"
	"activityBooker/internal/storage"

	"github.com/avast/retry-go"
	"github.com/google/uuid"
)

var (
	ErrPastActivity  = errors.New("activity has already taken place")
	ErrPaymentFailed = errors.New("payment failed")
)

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=Store
type Store interface {
	InTx(ctx context.Context, fn func(tx storage.BookingTx) error) error
}

// Settler takes payment for a paid activity inside the booking transaction.
// An error aborts the booking.
//
//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=Settler
type Settler interface {
	Settle(ctx context.Context, userID string, activity *models.Activity) error
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=Publisher
type Publisher interface {
	BookingCreated(ctx context.Context, booking *models.Booking) error
}

type Engine struct {
	log            *slog.Logger
	store          Store
	settler        Settler
	publisher      Publisher
	now            func() time.Time
	txTimeout      time.Duration
	publishTimeout time.Duration
	retry          config.Retry
	inflight       sync.WaitGroup
}

type Option func(*Engine)

func WithSettler(s Settler) Option {
	return func(e *Engine) {
		e.settler = s
	}
}

func WithPublisher(p Publisher) Option {
	return func(e *Engine) {
		e.publisher = p
	}
}

func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

func New(log *slog.Logger, store Store, cfg config.Booking, opts ...Option) *Engine {
	e := &Engine{
		log:            log,
		store:          store,
		settler:        noopSettler{},
		publisher:      noopPublisher{},
		now:            time.Now,
		txTimeout:      cfg.TxTimeout,
		publishTimeout: cfg.PublishTimeout,
		retry:          cfg.Retry,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Book reserves one seat of activityID for userID. The check, the booking row
// and the seat decrement commit together or not at all. Transient storage
// failures re-run the whole transaction. The booking event is published in the
// background after commit and never delays the result.
func (e *Engine) Book(ctx context.Context, userID, activityID string) (*models.Booking, error) {
	const op = "booking.Book"

	log := e.log.With(
		slog.String("op", op),
		slog.String("user_id", userID),
		slog.String("activity_id", activityID),
	)

	start := time.Now()
	defer func() {
		metrics.BookingDuration.Observe(time.Since(start).Seconds())
	}()

	if e.txTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.txTimeout)
		defer cancel()
	}

	attempts := e.retry.Attempts
	if attempts == 0 {
		attempts = 1
	}

	var booking *models.Booking

	err := retry.Do(
		func() error {
			b, err := e.attempt(ctx, userID, activityID)
			if err != nil {
				return err
			}
			booking = b
			return nil
		},
		retry.Attempts(attempts),
		retry.Delay(e.retry.Delay),
		retry.MaxDelay(e.retry.MaxDelay),
		retry.RetryIf(func(err error) bool {
			return errors.Is(err, storage.ErrTransient)
		}),
		retry.OnRetry(func(n uint, err error) {
			// retry-go also calls OnRetry after the final attempt.
			if n+1 >= attempts {
				return
			}
			log.Warn("booking transaction failed, retrying", slog.Uint64("attempt", uint64(n+1)), sl.Err(err))
		}),
		retry.Context(ctx),
		retry.LastErrorOnly(true),
	)

	metrics.BookingAttempts.WithLabelValues(resultLabel(err)).Inc()

	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("activity booked", slog.String("booking_id", booking.ID))

	e.publish(ctx, booking)

	return booking, nil
}

// Wait blocks until every booking event handed to the publisher has been dealt with.
func (e *Engine) Wait() {
	e.inflight.Wait()
}

func (e *Engine) publish(ctx context.Context, booking *models.Booking) {
	ctx = context.WithoutCancel(ctx)

	e.inflight.Add(1)
	go func() {
		defer e.inflight.Done()

		if e.publishTimeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, e.publishTimeout)
			defer cancel()
		}

		if err := e.publisher.BookingCreated(ctx, booking); err != nil {
			metrics.BookingEventsFailed.Inc()
			e.log.Error("failed to publish booking event",
				slog.String("op", "booking.publish"),
				slog.String("booking_id", booking.ID),
				sl.Err(err),
			)
		}
	}()
}

func (e *Engine) attempt(ctx context.Context, userID, activityID string) (*models.Booking, error) {
	startedAt := e.now()

	var booking *models.Booking

	err := e.store.InTx(ctx, func(tx storage.BookingTx) error {
		activity, err := tx.ActivityForUpdate(ctx, activityID)
		if err != nil {
			return err
		}

		if activity.Date.Before(startedAt) {
			return ErrPastActivity
		}

		if activity.AvailableSeats != nil && *activity.AvailableSeats <= 0 {
			return storage.ErrSoldOut
		}

		exists, err := tx.BookingExists(ctx, userID, activityID)
		if err != nil {
			return err
		}
		if exists {
			return storage.ErrAlreadyBooked
		}

		if activity.ActivityType == models.ActivityPaid {
			if err = e.settler.Settle(ctx, userID, activity); err != nil {
				return fmt.Errorf("%w: %w", ErrPaymentFailed, err)
			}
		}

		b := &models.Booking{
			ID:            uuid.NewString(),
			UserID:        userID,
			ActivityID:    activityID,
			PaymentStatus: models.PaymentPaid,
			BookingStatus: models.BookingConfirmed,
			BookedAt:      e.now().UTC(),
		}

		if err = tx.CreateBooking(ctx, b); err != nil {
			return err
		}

		if err = tx.DecrementAvailableSeats(ctx, activityID); err != nil {
			return err
		}

		booking = b

		return nil
	})
	if err != nil {
		return nil, err
	}

	return booking, nil
}

func resultLabel(err error) string {
	switch {
	case err == nil:
		return metrics.ResultConfirmed
	case errors.Is(err, storage.ErrSoldOut):
		return metrics.ResultSoldOut
	case errors.Is(err, storage.ErrAlreadyBooked):
		return metrics.ResultAlreadyBooked
	case errors.Is(err, ErrPastActivity):
		return metrics.ResultPast
	case errors.Is(err, storage.ErrNotFound):
		return metrics.ResultNotFound
	case errors.Is(err, ErrPaymentFailed):
		return metrics.ResultPaymentFailed
	default:
		return metrics.ResultError
	}
}

type noopSettler struct{}

func (noopSettler) Settle(context.Context, string, *models.Activity) error {
	return nil
}

type noopPublisher struct{}

func (noopPublisher) BookingCreated(context.Context, *models.Booking) error {
	return nil
}

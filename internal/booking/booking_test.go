package booking

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"activityBooker/internal/booking/mocks"
	"activityBooker/internal/config"
	"activityBooker/internal/lib/logger/handlers/slogdiscard"
	"activityBooker/internal/metrics"
	"activityBooker/internal/models"
	"activityBooker/internal/storage"
	"activityBooker/internal/storage/memory"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testCfg = config.Booking{
	TxTimeout: 5 * time.Second,
	Retry: config.Retry{
		Attempts: 3,
		Delay:    time.Millisecond,
		MaxDelay: 5 * time.Millisecond,
	},
}

func seedActivity(t *testing.T, s *memory.Storage, seats int, typ models.ActivityType, price float64, date time.Time) string {
	t.Helper()

	a := &models.Activity{
		OrganizerID:  "organizer",
		Title:        "Climbing",
		Description:  "Bouldering session",
		Location:     "Gym",
		Date:         date,
		ActivityType: typ,
		Price:        price,
		TotalSeats:   seats,
	}
	id, err := s.SaveActivity(context.Background(), a)
	require.NoError(t, err)

	return id
}

func availableSeats(t *testing.T, s *memory.Storage, id string) int {
	t.Helper()

	a, err := s.ActivityByID(context.Background(), id)
	require.NoError(t, err)

	return a.Available()
}

func bookingCount(t *testing.T, s *memory.Storage, activityID string, users ...string) int {
	t.Helper()

	n := 0
	for _, u := range users {
		bookings, err := s.BookingsByUser(context.Background(), u)
		require.NoError(t, err)
		for _, b := range bookings {
			if b.ActivityID == activityID {
				n++
			}
		}
	}

	return n
}

func TestBook_Success(t *testing.T) {
	t.Parallel()

	s := memory.New()
	id := seedActivity(t, s, 2, models.ActivityFree, 0, time.Now().Add(time.Hour))

	publisher := mocks.NewPublisher(t)
	publisher.On("BookingCreated", mock.Anything, mock.AnythingOfType("*models.Booking")).Return(nil).Once()

	e := New(slogdiscard.NewDiscardLogger(), s, testCfg, WithPublisher(publisher))

	b, err := e.Book(context.Background(), "user-1", id)
	require.NoError(t, err)
	e.Wait()

	assert.NotEmpty(t, b.ID)
	assert.Equal(t, "user-1", b.UserID)
	assert.Equal(t, id, b.ActivityID)
	assert.Equal(t, models.PaymentPaid, b.PaymentStatus)
	assert.Equal(t, models.BookingConfirmed, b.BookingStatus)
	assert.Equal(t, 1, availableSeats(t, s, id))
}

func TestBook_Errors(t *testing.T) {
	t.Parallel()

	future := time.Now().Add(time.Hour)

	tests := []struct {
		name         string
		seats        int
		past         bool
		prebook      []string
		activityID   string
		wantErr      error
		wantSeats    int
		wantBookings int
	}{
		{
			name:         "already booked",
			seats:        3,
			prebook:      []string{"user-1"},
			wantErr:      storage.ErrAlreadyBooked,
			wantSeats:    2,
			wantBookings: 1,
		},
		{
			name:         "sold out",
			seats:        1,
			prebook:      []string{"user-2"},
			wantErr:      storage.ErrSoldOut,
			wantSeats:    0,
			wantBookings: 1,
		},
		{
			name:         "past activity",
			seats:        3,
			past:         true,
			wantErr:      ErrPastActivity,
			wantSeats:    3,
			wantBookings: 0,
		},
		{
			name:         "unknown activity",
			seats:        3,
			activityID:   "missing",
			wantErr:      storage.ErrNotFound,
			wantSeats:    3,
			wantBookings: 0,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s := memory.New()
			id := seedActivity(t, s, tt.seats, models.ActivityFree, 0, future)
			e := New(slogdiscard.NewDiscardLogger(), s, testCfg)

			for _, u := range tt.prebook {
				_, err := e.Book(context.Background(), u, id)
				require.NoError(t, err)
			}

			if tt.past {
				e.now = func() time.Time { return future.Add(2 * time.Hour) }
			}

			target := id
			if tt.activityID != "" {
				target = tt.activityID
			}

			_, err := e.Book(context.Background(), "user-1", target)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, tt.wantSeats, availableSeats(t, s, id))
			assert.Equal(t, tt.wantBookings, bookingCount(t, s, id, "user-1", "user-2"))
		})
	}
}

func TestBook_PaidActivity(t *testing.T) {
	t.Parallel()

	t.Run("settled", func(t *testing.T) {
		s := memory.New()
		id := seedActivity(t, s, 2, models.ActivityPaid, 15, time.Now().Add(time.Hour))

		settler := mocks.NewSettler(t)
		settler.On("Settle", mock.Anything, "user-1", mock.AnythingOfType("*models.Activity")).Return(nil).Once()

		e := New(slogdiscard.NewDiscardLogger(), s, testCfg, WithSettler(settler))

		_, err := e.Book(context.Background(), "user-1", id)
		require.NoError(t, err)
		assert.Equal(t, 1, availableSeats(t, s, id))
	})

	t.Run("settlement failure rolls back", func(t *testing.T) {
		s := memory.New()
		id := seedActivity(t, s, 2, models.ActivityPaid, 15, time.Now().Add(time.Hour))

		declined := errors.New("card declined")
		settler := mocks.NewSettler(t)
		settler.On("Settle", mock.Anything, "user-1", mock.AnythingOfType("*models.Activity")).Return(declined).Once()

		e := New(slogdiscard.NewDiscardLogger(), s, testCfg, WithSettler(settler))

		failed := metrics.BookingAttempts.WithLabelValues(metrics.ResultPaymentFailed)
		before := testutil.ToFloat64(failed)

		_, err := e.Book(context.Background(), "user-1", id)
		assert.ErrorIs(t, err, ErrPaymentFailed)
		assert.Equal(t, before+1, testutil.ToFloat64(failed))
		assert.ErrorIs(t, err, declined)
		assert.Equal(t, 2, availableSeats(t, s, id))

		bookings, err := s.BookingsByUser(context.Background(), "user-1")
		require.NoError(t, err)
		assert.Empty(t, bookings)
	})

	t.Run("free activity skips settlement", func(t *testing.T) {
		s := memory.New()
		id := seedActivity(t, s, 2, models.ActivityFree, 0, time.Now().Add(time.Hour))

		settler := mocks.NewSettler(t)
		e := New(slogdiscard.NewDiscardLogger(), s, testCfg, WithSettler(settler))

		_, err := e.Book(context.Background(), "user-1", id)
		require.NoError(t, err)
		settler.AssertNotCalled(t, "Settle", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestBook_PublishFailureKeepsBooking(t *testing.T) {
	t.Parallel()

	s := memory.New()
	id := seedActivity(t, s, 1, models.ActivityFree, 0, time.Now().Add(time.Hour))

	publisher := mocks.NewPublisher(t)
	publisher.On("BookingCreated", mock.Anything, mock.Anything).Return(errors.New("broker down")).Once()

	e := New(slogdiscard.NewDiscardLogger(), s, testCfg, WithPublisher(publisher))

	before := testutil.ToFloat64(metrics.BookingEventsFailed)

	b, err := e.Book(context.Background(), "user-1", id)
	require.NoError(t, err)
	e.Wait()

	assert.NotNil(t, b)
	assert.Equal(t, 0, availableSeats(t, s, id))
	assert.Equal(t, before+1, testutil.ToFloat64(metrics.BookingEventsFailed))
}

func TestBook_DoesNotWaitForPublisher(t *testing.T) {
	t.Parallel()

	s := memory.New()
	id := seedActivity(t, s, 1, models.ActivityFree, 0, time.Now().Add(time.Hour))

	release := make(chan struct{})
	publisher := mocks.NewPublisher(t)
	publisher.On("BookingCreated", mock.Anything, mock.Anything).Run(func(mock.Arguments) {
		<-release
	}).Return(nil).Once()

	e := New(slogdiscard.NewDiscardLogger(), s, testCfg, WithPublisher(publisher))

	done := make(chan error, 1)
	go func() {
		_, err := e.Book(context.Background(), "user-1", id)
		done <- err
	}()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Book did not return while the publisher was blocked")
	}

	assert.Equal(t, 0, availableSeats(t, s, id))

	close(release)
	e.Wait()
}

func TestBook_PublishOutlivesRequestWithDeadline(t *testing.T) {
	t.Parallel()

	s := memory.New()
	id := seedActivity(t, s, 1, models.ActivityFree, 0, time.Now().Add(time.Hour))

	var (
		publishErr  error
		hasDeadline bool
	)

	publisher := mocks.NewPublisher(t)
	publisher.On("BookingCreated", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		ctx := args.Get(0).(context.Context)
		publishErr = ctx.Err()
		_, hasDeadline = ctx.Deadline()
	}).Return(nil).Once()

	cfg := testCfg
	cfg.PublishTimeout = time.Second
	e := New(slogdiscard.NewDiscardLogger(), s, cfg, WithPublisher(publisher))

	ctx, cancel := context.WithCancel(context.Background())
	_, err := e.Book(ctx, "user-1", id)
	cancel()
	require.NoError(t, err)

	e.Wait()

	assert.NoError(t, publishErr)
	assert.True(t, hasDeadline)
}

func TestBook_RetriesTransientFailures(t *testing.T) {
	t.Parallel()

	s := memory.New()
	id := seedActivity(t, s, 1, models.ActivityFree, 0, time.Now().Add(time.Hour))

	store := mocks.NewStore(t)
	store.On("InTx", mock.Anything, mock.Anything).Return(storage.ErrTransient).Twice()
	store.On("InTx", mock.Anything, mock.Anything).Return(func(ctx context.Context, fn func(storage.BookingTx) error) error {
		return s.InTx(ctx, fn)
	}).Once()

	e := New(slogdiscard.NewDiscardLogger(), store, testCfg)

	_, err := e.Book(context.Background(), "user-1", id)
	require.NoError(t, err)
	assert.Equal(t, 0, availableSeats(t, s, id))
}

func TestBook_GivesUpAfterAttempts(t *testing.T) {
	t.Parallel()

	store := mocks.NewStore(t)
	store.On("InTx", mock.Anything, mock.Anything).Return(storage.ErrTransient).Times(3)

	var buf bytes.Buffer
	log := slog.New(slog.NewJSONHandler(&buf, nil))

	e := New(log, store, testCfg)

	_, err := e.Book(context.Background(), "user-1", "activity")
	assert.ErrorIs(t, err, storage.ErrTransient)

	// three attempts, two retries
	assert.Equal(t, 2, strings.Count(buf.String(), "retrying"))
}

func TestBook_DoesNotRetryPermanentFailures(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	store := mocks.NewStore(t)
	store.On("InTx", mock.Anything, mock.Anything).Return(boom).Once()

	e := New(slogdiscard.NewDiscardLogger(), store, testCfg)

	_, err := e.Book(context.Background(), "user-1", "activity")
	assert.ErrorIs(t, err, boom)
}

func TestBook_ConcurrentCapacity(t *testing.T) {
	t.Parallel()

	const (
		seats   = 5
		bookers = 40
	)

	s := memory.New()
	id := seedActivity(t, s, seats, models.ActivityFree, 0, time.Now().Add(time.Hour))
	e := New(slogdiscard.NewDiscardLogger(), s, testCfg)

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		ok      int
		soldOut int
		other   []error
	)

	start := make(chan struct{})
	for i := 0; i < bookers; i++ {
		wg.Add(1)
		go func(user string) {
			defer wg.Done()
			<-start

			_, err := e.Book(context.Background(), user, id)

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				ok++
			case errors.Is(err, storage.ErrSoldOut):
				soldOut++
			default:
				other = append(other, err)
			}
		}(fmt.Sprintf("user-%d", i))
	}

	close(start)
	wg.Wait()

	assert.Empty(t, other)
	assert.Equal(t, seats, ok)
	assert.Equal(t, bookers-seats, soldOut)
	assert.Equal(t, 0, availableSeats(t, s, id))
}

// Package memory is a process-local store with the same contract as the postgres one.
// A single mutex serialises booking transactions, which gives them the same
// exclusive-lock semantics as SELECT ... FOR UPDATE.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"activityBooker/internal/models"
	"activityBooker/internal/storage"

	"github.com/google/uuid"
)

type Storage struct {
	mu         sync.RWMutex
	users      map[string]models.User
	activities map[string]models.Activity
	bookings   map[string]models.Booking
	now        func() time.Time
}

func New() *Storage {
	return &Storage{
		users:      make(map[string]models.User),
		activities: make(map[string]models.Activity),
		bookings:   make(map[string]models.Booking),
		now:        time.Now,
	}
}

func (s *Storage) SaveUser(_ context.Context, user *models.User) (string, error) {
	const op = "storage.memory.SaveUser"

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.emailTaken(user.Email, "") {
		return "", fmt.Errorf("%s: %w", op, storage.ErrUserExists)
	}

	if user.Role == "" {
		user.Role = models.RoleParticipant
	}
	user.ID = uuid.NewString()
	user.CreatedAt = s.now()

	s.users[user.ID] = *user

	return user.ID, nil
}

func (s *Storage) UserByEmail(_ context.Context, email string) (*models.User, error) {
	const op = "storage.memory.UserByEmail"

	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Email == email {
			return &u, nil
		}
	}

	return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
}

func (s *Storage) UserByID(_ context.Context, id string) (*models.User, error) {
	const op = "storage.memory.UserByID"

	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return &u, nil
}

func (s *Storage) UpdateUser(_ context.Context, id string, patch models.UserPatch) (*models.User, error) {
	const op = "storage.memory.UpdateUser"

	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	if patch.Email != nil && s.emailTaken(*patch.Email, id) {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrUserExists)
	}

	patch.Apply(&u)
	s.users[id] = u

	return &u, nil
}

func (s *Storage) DeleteUser(_ context.Context, id string) error {
	const op = "storage.memory.DeleteUser"

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[id]; !ok {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	delete(s.users, id)

	return nil
}

func (s *Storage) SaveActivity(_ context.Context, activity *models.Activity) (string, error) {
	const op = "storage.memory.SaveActivity"

	if err := activity.ValidatePricing(); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	a := copyActivity(*activity)
	seats := a.TotalSeats
	a.ID = uuid.NewString()
	a.AvailableSeats = &seats
	a.Organizer = nil

	s.activities[a.ID] = a
	activity.ID = a.ID
	activity.AvailableSeats = copyActivity(a).AvailableSeats

	return a.ID, nil
}

func (s *Storage) ActivityByID(_ context.Context, id string) (*models.Activity, error) {
	const op = "storage.memory.ActivityByID"

	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.activities[id]
	if !ok {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	a = s.withOrganizer(a)

	return &a, nil
}

func (s *Storage) Activities(_ context.Context) ([]models.Activity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	activities := make([]models.Activity, 0, len(s.activities))
	for _, a := range s.activities {
		activities = append(activities, s.withOrganizer(a))
	}

	sort.Slice(activities, func(i, j int) bool {
		if activities[i].Date.Equal(activities[j].Date) {
			return activities[i].ID < activities[j].ID
		}
		return activities[i].Date.Before(activities[j].Date)
	})

	return activities, nil
}

func (s *Storage) UpdateActivity(_ context.Context, id, organizerID string, patch models.ActivityPatch) (*models.Activity, error) {
	const op = "storage.memory.UpdateActivity"

	s.mu.Lock()
	defer s.mu.Unlock()

	a, err := s.ownedActivity(id, organizerID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	patch.Apply(&a)
	if err = a.ValidatePricing(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.activities[id] = a
	a = copyActivity(a)

	return &a, nil
}

func (s *Storage) DeleteActivity(_ context.Context, id, organizerID string) error {
	const op = "storage.memory.DeleteActivity"

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.ownedActivity(id, organizerID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	delete(s.activities, id)

	return nil
}

// InTx holds the write lock for the whole of fn. Writes are buffered in the
// transaction and applied only when fn returns nil.
func (s *Storage) InTx(ctx context.Context, fn func(tx storage.BookingTx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	tx := &bookingTx{
		s:         s,
		bookings:  make(map[string]models.Booking),
		available: make(map[string]int),
	}

	if err := fn(tx); err != nil {
		return err
	}

	for id, b := range tx.bookings {
		s.bookings[id] = b
	}
	for id, seats := range tx.available {
		a := s.activities[id]
		n := seats
		a.AvailableSeats = &n
		s.activities[id] = a
	}

	return nil
}

func (s *Storage) BookingsByUser(_ context.Context, userID string) ([]models.BookingDetails, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	res := make([]models.BookingDetails, 0)

	u, ok := s.users[userID]
	if !ok {
		return res, nil
	}

	for _, b := range s.bookings {
		if b.UserID != userID {
			continue
		}
		a, ok := s.activities[b.ActivityID]
		if !ok {
			continue
		}

		res = append(res, models.BookingDetails{
			Booking: b,
			Activity: models.BookedActivity{
				Title:        a.Title,
				Date:         a.Date,
				Location:     a.Location,
				ActivityType: a.ActivityType,
				Price:        a.Price,
			},
			User: models.BookedUser{
				Name:  u.Name,
				Email: u.Email,
			},
		})
	}

	sort.Slice(res, func(i, j int) bool {
		return res[i].BookedAt.After(res[j].BookedAt)
	})

	return res, nil
}

func (s *Storage) Ping(_ context.Context) error {
	return nil
}

func (s *Storage) Close() error {
	return nil
}

func (s *Storage) emailTaken(email, exceptID string) bool {
	for id, u := range s.users {
		if u.Email == email && id != exceptID {
			return true
		}
	}

	return false
}

func (s *Storage) ownedActivity(id, organizerID string) (models.Activity, error) {
	a, ok := s.activities[id]
	if !ok {
		return models.Activity{}, storage.ErrNotFound
	}
	if a.OrganizerID != organizerID {
		return models.Activity{}, storage.ErrNotOwner
	}

	return copyActivity(a), nil
}

func (s *Storage) withOrganizer(a models.Activity) models.Activity {
	a = copyActivity(a)

	if u, ok := s.users[a.OrganizerID]; ok {
		a.Organizer = &models.Organizer{
			ID:           u.ID,
			Name:         u.Name,
			Email:        u.Email,
			MobileNumber: u.MobileNumber,
		}
	}

	return a
}

func copyActivity(a models.Activity) models.Activity {
	if a.AvailableSeats != nil {
		n := *a.AvailableSeats
		a.AvailableSeats = &n
	}
	if a.Organizer != nil {
		o := *a.Organizer
		a.Organizer = &o
	}

	return a
}

// bookingTx reads through to the store, which the caller has locked, and buffers writes.
type bookingTx struct {
	s         *Storage
	bookings  map[string]models.Booking
	available map[string]int
}

func (t *bookingTx) ActivityForUpdate(_ context.Context, activityID string) (*models.Activity, error) {
	const op = "storage.memory.ActivityForUpdate"

	a, ok := t.s.activities[activityID]
	if !ok {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	a = copyActivity(a)
	if seats, ok := t.available[activityID]; ok {
		a.AvailableSeats = &seats
	}

	return &a, nil
}

func (t *bookingTx) BookingExists(_ context.Context, userID, activityID string) (bool, error) {
	for _, m := range []map[string]models.Booking{t.s.bookings, t.bookings} {
		for _, b := range m {
			if b.UserID == userID && b.ActivityID == activityID {
				return true, nil
			}
		}
	}

	return false, nil
}

func (t *bookingTx) CreateBooking(ctx context.Context, booking *models.Booking) error {
	const op = "storage.memory.CreateBooking"

	exists, _ := t.BookingExists(ctx, booking.UserID, booking.ActivityID)
	if exists {
		return fmt.Errorf("%s: %w", op, storage.ErrAlreadyBooked)
	}

	t.bookings[booking.ID] = *booking

	return nil
}

func (t *bookingTx) DecrementAvailableSeats(_ context.Context, activityID string) error {
	const op = "storage.memory.DecrementAvailableSeats"

	a, ok := t.s.activities[activityID]
	if !ok {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	seats, ok := t.available[activityID]
	if !ok {
		seats = a.Available()
	}
	if seats <= 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrSoldOut)
	}

	t.available[activityID] = seats - 1

	return nil
}

package bookActivity

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"activityBooker/internal/booking"
	"activityBooker/internal/http-server/middleware/auth"
	"activityBooker/internal/lib/api/response"
	"activityBooker/internal/lib/logger/sl"
	"activityBooker/internal/models"
	"activityBooker/internal/storage"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

type Response struct {
	response.Response
	Booking *models.Booking `json:"booking,omitempty"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=Booker
type Booker interface {
	Book(ctx context.Context, userID, activityID string) (*models.Booking, error)
}

func New(log *slog.Logger, booker Booker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.activity.bookActivity.New"

		log := log.With(slog.String("op", op))

		identity, ok := auth.IdentityFromContext(r.Context())
		if !ok {
			log.Error("identity missing from request context")
			render.Status(r, http.StatusUnauthorized)
			render.JSON(w, r, response.Error("please sign in"))
			return
		}

		activityID := chi.URLParam(r, "activityId")
		if activityID == "" {
			log.Error("activity id is required")
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("activity id is required"))
			return
		}

		log = log.With(
			slog.String("activity_id", activityID),
			slog.String("user_id", identity.UserID),
		)

		b, err := booker.Book(r.Context(), identity.UserID, activityID)
		if err != nil {
			status, msg := http.StatusInternalServerError, "failed to book activity"

			switch {
			case errors.Is(err, storage.ErrNotFound):
				status, msg = http.StatusNotFound, "activity not found"
			case errors.Is(err, storage.ErrSoldOut):
				status, msg = http.StatusBadRequest, "no seats available"
			case errors.Is(err, storage.ErrAlreadyBooked):
				status, msg = http.StatusBadRequest, "you have already booked this activity"
			case errors.Is(err, booking.ErrPastActivity):
				status, msg = http.StatusBadRequest, "cannot book a past activity"
			case errors.Is(err, booking.ErrPaymentFailed):
				status, msg = http.StatusBadRequest, "payment failed"
			}

			if status == http.StatusInternalServerError {
				log.Error("failed to book activity", sl.Err(err))
			} else {
				log.Info("booking rejected", slog.String("reason", msg))
			}

			render.Status(r, status)
			render.JSON(w, r, response.Error(msg))
			return
		}

		log.Info("activity booked", slog.String("booking_id", b.ID))

		render.Status(r, http.StatusCreated)
		render.JSON(w, r, Response{
			Response: response.OK(),
			Booking:  b,
		})
	}
}

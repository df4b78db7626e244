package userBookings

import (
	"context"
	"log/slog"
	"net/http"

	"activityBooker/internal/http-server/middleware/auth"
	"activityBooker/internal/lib/api/response"
	"activityBooker/internal/lib/logger/sl"
	"activityBooker/internal/models"

	"github.com/go-chi/render"
)

type Response struct {
	response.Response
	Bookings []models.BookingDetails `json:"bookings"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=BookingsProvider
type BookingsProvider interface {
	BookingsByUser(ctx context.Context, userID string) ([]models.BookingDetails, error)
}

func New(log *slog.Logger, bookingsProvider BookingsProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.activity.userBookings.New"

		log := log.With(slog.String("op", op))

		identity, ok := auth.IdentityFromContext(r.Context())
		if !ok {
			log.Error("identity missing from request context")
			render.Status(r, http.StatusUnauthorized)
			render.JSON(w, r, response.Error("please sign in"))
			return
		}

		bookings, err := bookingsProvider.BookingsByUser(r.Context(), identity.UserID)
		if err != nil {
			log.Error("failed to get bookings", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to get bookings"))
			return
		}

		if bookings == nil {
			bookings = []models.BookingDetails{}
		}

		render.JSON(w, r, Response{
			Response: response.OK(),
			Bookings: bookings,
		})
	}
}

package deleteUser

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"activityBooker/internal/http-server/middleware/auth"
	"activityBooker/internal/lib/api/response"
	"activityBooker/internal/lib/logger/sl"
	"activityBooker/internal/storage"

	"github.com/go-chi/render"
)

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=UserDeleter
type UserDeleter interface {
	DeleteUser(ctx context.Context, id string) error
}

// New deletes the caller's own account. Activities and bookings that reference it are left in place.
func New(log *slog.Logger, userDeleter UserDeleter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.user.deleteUser.New"

		log := log.With(slog.String("op", op))

		identity, ok := auth.IdentityFromContext(r.Context())
		if !ok {
			log.Error("identity missing from request context")
			render.Status(r, http.StatusUnauthorized)
			render.JSON(w, r, response.Error("please sign in"))
			return
		}

		log = log.With(slog.String("user_id", identity.UserID))

		err := userDeleter.DeleteUser(r.Context(), identity.UserID)
		if errors.Is(err, storage.ErrNotFound) {
			log.Info("user not found")
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("user not found"))
			return
		}
		if err != nil {
			log.Error("failed to delete user", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to delete user"))
			return
		}

		log.Info("user deleted")

		render.JSON(w, r, response.OK())
	}
}

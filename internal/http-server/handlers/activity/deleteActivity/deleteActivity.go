package deleteActivity

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"activityBooker/internal/http-server/middleware/auth"
	"activityBooker/internal/lib/api/response"
	"activityBooker/internal/lib/logger/sl"
	"activityBooker/internal/storage"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=ActivityDeleter
type ActivityDeleter interface {
	DeleteActivity(ctx context.Context, id, organizerID string) error
}

func New(log *slog.Logger, activityDeleter ActivityDeleter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.activity.deleteActivity.New"

		log := log.With(slog.String("op", op))

		identity, ok := auth.IdentityFromContext(r.Context())
		if !ok {
			log.Error("identity missing from request context")
			render.Status(r, http.StatusUnauthorized)
			render.JSON(w, r, response.Error("please sign in"))
			return
		}

		id := chi.URLParam(r, "id")
		if id == "" {
			log.Error("activity id is required")
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("activity id is required"))
			return
		}

		log = log.With(slog.String("activity_id", id))

		err := activityDeleter.DeleteActivity(r.Context(), id, identity.UserID)
		switch {
		case errors.Is(err, storage.ErrNotFound):
			log.Info("activity not found")
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, response.Error("activity not found"))
			return
		case errors.Is(err, storage.ErrNotOwner):
			log.Info("activity belongs to another organizer", slog.String("user_id", identity.UserID))
			render.Status(r, http.StatusForbidden)
			render.JSON(w, r, response.Error("you are not authorized to perform this action"))
			return
		case err != nil:
			log.Error("failed to delete activity", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to delete activity"))
			return
		}

		log.Info("activity deleted")

		render.JSON(w, r, response.OK())
	}
}

package getActivity

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"activityBooker/internal/lib/api/response"
	"activityBooker/internal/lib/logger/sl"
	"activityBooker/internal/models"
	"activityBooker/internal/storage"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

type Response struct {
	response.Response
	Activity *models.Activity `json:"activity,omitempty"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=ActivityProvider
type ActivityProvider interface {
	ActivityByID(ctx context.Context, id string) (*models.Activity, error)
}

func New(log *slog.Logger, activityProvider ActivityProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.activity.getActivity.New"

		log := log.With(slog.String("op", op))

		id := chi.URLParam(r, "id")
		if id == "" {
			log.Error("activity id is required")
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("activity id is required"))
			return
		}

		log = log.With(slog.String("activity_id", id))

		activity, err := activityProvider.ActivityByID(r.Context(), id)
		if errors.Is(err, storage.ErrNotFound) {
			log.Info("activity not found")
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, response.Error("activity not found"))
			return
		}
		if err != nil {
			log.Error("failed to get activity", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to get activity"))
			return
		}

		render.JSON(w, r, Response{
			Response: response.OK(),
			Activity: activity,
		})
	}
}

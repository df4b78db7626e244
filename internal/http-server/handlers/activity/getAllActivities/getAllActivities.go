package getAllActivities

import (
	"context"
	"log/slog"
	"net/http"

	"activityBooker/internal/lib/api/response"
	"activityBooker/internal/lib/logger/sl"
	"activityBooker/internal/models"

	"github.com/go-chi/render"
)

type Response struct {
	response.Response
	Activities []models.Activity `json:"activities"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=ActivitiesProvider
type ActivitiesProvider interface {
	Activities(ctx context.Context) ([]models.Activity, error)
}

func New(log *slog.Logger, activitiesProvider ActivitiesProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.activity.getAllActivities.New"

		log := log.With(slog.String("op", op))

		activities, err := activitiesProvider.Activities(r.Context())
		if err != nil {
			log.Error("failed to get activities", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to get activities"))
			return
		}

		if activities == nil {
			activities = []models.Activity{}
		}

		log.Info("activities retrieved", slog.Int("count", len(activities)))

		render.JSON(w, r, Response{
			Response:   response.OK(),
			Activities: activities,
		})
	}
}

package createActivity

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"activityBooker/internal/http-server/middleware/auth"
	"activityBooker/internal/lib/api/response"
	"activityBooker/internal/lib/logger/sl"
	"activityBooker/internal/models"

	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
)

// Request carries a new activity. Price must be zero for free activities and
// positive for paid ones; the pairing is checked on save.
type Request struct {
	Title        string  `json:"title" validate:"required"`
	Description  string  `json:"description" validate:"required"`
	Location     string  `json:"location" validate:"required"`
	Date         string  `json:"date" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
	ActivityType string  `json:"activityType" validate:"required,oneof=free paid"`
	Price        float64 `json:"price" validate:"gte=0"`
	TotalSeats   int     `json:"totalSeats" validate:"required,gte=1"`
}

type Response struct {
	response.Response
	Activity *models.Activity `json:"activity,omitempty"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=ActivitySaver
type ActivitySaver interface {
	SaveActivity(ctx context.Context, activity *models.Activity) (string, error)
}

func New(log *slog.Logger, activitySaver ActivitySaver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.activity.createActivity.New"

		log := log.With(slog.String("op", op))

		identity, ok := auth.IdentityFromContext(r.Context())
		if !ok {
			log.Error("identity missing from request context")
			render.Status(r, http.StatusUnauthorized)
			render.JSON(w, r, response.Error("please sign in"))
			return
		}

		var req Request

		err := render.DecodeJSON(r.Body, &req)
		if err != nil {
			log.Error("failed to decode request body", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("failed to decode request"))
			return
		}

		log.Info("request body decoded", slog.Any("request", req))

		if err = validator.New().Struct(req); err != nil {
			var validateErr validator.ValidationErrors
			errors.As(err, &validateErr)

			log.Error("invalid request", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.ValidationError(validateErr))
			return
		}

		date, err := time.Parse(time.RFC3339, req.Date)
		if err != nil {
			log.Error("invalid date format", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("field Date must be an RFC 3339 timestamp"))
			return
		}

		activity := &models.Activity{
			OrganizerID:  identity.UserID,
			Title:        req.Title,
			Description:  req.Description,
			Location:     req.Location,
			Date:         date,
			ActivityType: models.ActivityType(req.ActivityType),
			Price:        req.Price,
			TotalSeats:   req.TotalSeats,
		}

		id, err := activitySaver.SaveActivity(r.Context(), activity)
		if errors.Is(err, models.ErrInvalidPricing) {
			log.Info("invalid pricing", slog.Float64("price", activity.Price))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error(models.ErrInvalidPricing.Error()))
			return
		}
		if err != nil {
			log.Error("failed to create activity", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to create activity"))
			return
		}

		log.Info("activity created", slog.String("id", id))

		render.JSON(w, r, Response{
			Response: response.OK(),
			Activity: activity,
		})
	}
}

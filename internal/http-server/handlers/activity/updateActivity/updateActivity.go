package updateActivity

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
	"activityBooker/internal/storage"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
)

// Request is a partial update. TotalSeats is accepted only to reject it: capacity is fixed at creation.
type Request struct {
	Title        *string  `json:"title" validate:"omitempty,min=1"`
	Description  *string  `json:"description" validate:"omitempty,min=1"`
	Location     *string  `json:"location" validate:"omitempty,min=1"`
	Date         *string  `json:"date" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	ActivityType *string  `json:"activityType" validate:"omitempty,oneof=free paid"`
	Price        *float64 `json:"price" validate:"omitempty,gte=0"`
	TotalSeats   *int     `json:"totalSeats"`
}

type Response struct {
	response.Response
	Activity *models.Activity `json:"activity,omitempty"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=ActivityUpdater
type ActivityUpdater interface {
	UpdateActivity(ctx context.Context, id, organizerID string, patch models.ActivityPatch) (*models.Activity, error)
}

func New(log *slog.Logger, activityUpdater ActivityUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.activity.updateActivity.New"

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

		var req Request

		err := render.DecodeJSON(r.Body, &req)
		if err != nil {
			log.Error("failed to decode request body", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("failed to decode request"))
			return
		}

		if err = validator.New().Struct(req); err != nil {
			var validateErr validator.ValidationErrors
			errors.As(err, &validateErr)

			log.Error("invalid request", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.ValidationError(validateErr))
			return
		}

		if req.TotalSeats != nil {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("field TotalSeats cannot be changed"))
			return
		}

		patch := models.ActivityPatch{
			Title:       req.Title,
			Description: req.Description,
			Location:    req.Location,
			Price:       req.Price,
		}
		if req.Date != nil {
			date, err := time.Parse(time.RFC3339, *req.Date)
			if err != nil {
				log.Error("invalid date format", sl.Err(err))
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, response.Error("field Date must be an RFC 3339 timestamp"))
				return
			}
			patch.Date = &date
		}
		if req.ActivityType != nil {
			typ := models.ActivityType(*req.ActivityType)
			patch.ActivityType = &typ
		}

		activity, err := activityUpdater.UpdateActivity(r.Context(), id, identity.UserID, patch)
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
		case errors.Is(err, models.ErrInvalidPricing):
			log.Info("invalid pricing")
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error(models.ErrInvalidPricing.Error()))
			return
		case err != nil:
			log.Error("failed to update activity", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to update activity"))
			return
		}

		log.Info("activity updated")

		render.JSON(w, r, Response{
			Response: response.OK(),
			Activity: activity,
		})
	}
}

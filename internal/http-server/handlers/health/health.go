package health

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"activityBooker/internal/lib/api/response"
	"activityBooker/internal/lib/logger/sl"

	"github.com/go-chi/render"
)

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=Pinger
type Pinger interface {
	Ping(ctx context.Context) error
}

func New(log *slog.Logger, pinger Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.health.New"

		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := pinger.Ping(ctx); err != nil {
			log.With(slog.String("op", op)).Error("storage is unavailable", sl.Err(err))
			render.Status(r, http.StatusServiceUnavailable)
			render.JSON(w, r, response.Error("storage is unavailable"))
			return
		}

		render.JSON(w, r, response.OK())
	}
}

package logout

import (
	"log/slog"
	"net/http"

	"activityBooker/internal/config"
	"activityBooker/internal/http-server/middleware/auth"
	"activityBooker/internal/lib/api/response"

	"github.com/go-chi/render"
)

// New expires the credential cookie. Tokens are stateless, so nothing is revoked server side.
func New(log *slog.Logger, authCfg config.Auth) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.user.logout.New"

		log := log.With(slog.String("op", op))

		http.SetCookie(w, &http.Cookie{
			Name:     auth.CookieName,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			Secure:   !authCfg.InsecureCookie,
			SameSite: http.SameSiteNoneMode,
		})

		if identity, ok := auth.IdentityFromContext(r.Context()); ok {
			log.Info("user logged out", slog.String("id", identity.UserID))
		}

		render.JSON(w, r, response.OK())
	}
}

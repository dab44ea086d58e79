package authenticate

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"log/slog"

	"votebot/internal/lib/api/response"
	"votebot/internal/lib/sl"
)

// Authenticate checks the shared API key callers must present.
type Authenticate interface {
	CheckApiKey(key string) bool
}

// New builds the auth + request-logging middleware. The key is accepted as a
// bearer token or a `key` query parameter (webhook callers cannot always set
// headers).
func New(log *slog.Logger, auth Authenticate) func(next http.Handler) http.Handler {
	mod := sl.Module("middleware.authenticate")
	log.With(mod).Info("authenticate middleware initialized")

	return func(next http.Handler) http.Handler {

		fn := func(w http.ResponseWriter, r *http.Request) {
			id := middleware.GetReqID(r.Context())
			remote := r.RemoteAddr
			// if the request is coming from a proxy, use the X-Forwarded-For header
			xRemote := r.Header.Get("X-Forwarded-For")
			if xRemote != "" {
				remote = xRemote
			}
			logger := log.With(
				mod,
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("remote_addr", remote),
				slog.String("request_id", id),
			)
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			t1 := time.Now()
			defer func() {
				logger.With(
					slog.Int("status", ww.Status()),
					slog.Int("size", ww.BytesWritten()),
					slog.Float64("duration", time.Since(t1).Seconds()),
				).Info("incoming request")
			}()

			token := r.URL.Query().Get("key")
			if token == "" {
				header := r.Header.Get("Authorization")
				token = strings.TrimPrefix(header, "Bearer ")
			}
			if token == "" {
				logger = logger.With(sl.Err(fmt.Errorf("no api key presented")))
				authFailed(ww, r, "Authorization required")
				return
			}

			if !auth.CheckApiKey(token) {
				logger = logger.With(sl.Err(fmt.Errorf("invalid api key")))
				authFailed(ww, r, "Invalid API key")
				return
			}

			next.ServeHTTP(ww, r)
		}
		return http.HandlerFunc(fn)
	}
}

func authFailed(w http.ResponseWriter, r *http.Request, msg string) {
	render.Status(r, http.StatusUnauthorized)
	render.JSON(w, r, response.Error(msg))
}

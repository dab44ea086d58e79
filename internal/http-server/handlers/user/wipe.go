package user

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"votebot/internal/lib/api/response"
	"votebot/internal/lib/sl"
)

// Core is the application-service surface the user handlers need.
type Core interface {
	WipeUser(ctx context.Context, username string) error
}

// Wipe deletes a user and all of their conversation data.
func Wipe(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		username := chi.URLParam(r, "username")
		if username == "" {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("Please specify a username"))
			return
		}

		if err := handler.WipeUser(r.Context(), username); err != nil {
			log.Error("wiping user", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("Problem wiping that user's data"))
			return
		}

		render.JSON(w, r, response.Ok(true))
	}
}

package conversation

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"votebot/internal/lib/api/response"
	"votebot/internal/lib/sl"
)

type StartRequest struct {
	Username string `json:"username" validate:"required"`
	Step     string `json:"step"`
}

// Start opens a bot-initiated registration dialogue with a user, optionally
// positioned at a specific step.
func Start(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req StartRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("Invalid request body"))
			return
		}
		if err := validate.Struct(req); err != nil {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("Please specify a username"))
			return
		}

		convo, err := handler.StartConversation(r.Context(), req.Username, req.Step)
		if err != nil {
			log.Error("starting conversation", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("Problem starting conversation"))
			return
		}

		render.JSON(w, r, response.Ok(convo))
	}
}

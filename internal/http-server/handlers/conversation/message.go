package conversation

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"votebot/internal/lib/api/response"
	"votebot/internal/lib/sl"
)

type MessageRequest struct {
	Body string `json:"body" validate:"required"`
}

// NewMessage appends an operator message to an existing conversation.
func NewMessage(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conversationID := chi.URLParam(r, "id")

		var req MessageRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("Invalid request body"))
			return
		}
		if err := validate.Struct(req); err != nil {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("Please enter a message to send"))
			return
		}

		message, err := handler.SendMessage(r.Context(), "", conversationID, req.Body)
		if err != nil {
			log.Error("sending message", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("Problem sending message"))
			return
		}

		render.JSON(w, r, response.Ok(message))
	}
}

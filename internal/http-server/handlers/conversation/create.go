package conversation

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"votebot/internal/lib/api/response"
	"votebot/internal/lib/sl"
)

type recipient struct {
	Username string `json:"username" validate:"required"`
}

type CreateRequest struct {
	Type       string      `json:"type"`
	Recipients []recipient `json:"recipients" validate:"required,min=1,dive"`
	Message    struct {
		Body string `json:"body" validate:"required"`
	} `json:"message"`
}

var validate = validator.New()

// Create starts a person-to-person conversation. Each recipient also gets a
// referred registration dialogue.
func Create(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("Invalid request body"))
			return
		}
		if err := validate.Struct(req); err != nil {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("Please specify at least one recipient and a message to send"))
			return
		}

		usernames := make([]string, len(req.Recipients))
		for i, rec := range req.Recipients {
			usernames[i] = rec.Username
		}

		convo, err := handler.CreateConversation(r.Context(), "", usernames, req.Message.Body)
		if err != nil {
			log.Error("creating conversation", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("Problem starting conversation"))
			return
		}

		render.JSON(w, r, response.Ok(convo))
	}
}

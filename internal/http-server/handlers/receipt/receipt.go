package receipt

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"votebot/impl/core"
	"votebot/internal/lib/api/response"
	"votebot/internal/lib/sl"
)

// Core is the application-service surface the receipt handler needs.
type Core interface {
	HandleReceipt(ctx context.Context, receipt core.Receipt) error
}

var validate = validator.New()

// Create receives the forms service's submission report and moves the
// user's conversation to the matching outcome step.
func Create(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		username := chi.URLParam(r, "username")

		var receipt core.Receipt
		if err := json.NewDecoder(r.Body).Decode(&receipt); err != nil {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("Invalid request body"))
			return
		}
		receipt.Username = username

		if err := validate.Struct(receipt); err != nil {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("Invalid receipt"))
			return
		}

		log.Info("receipt received",
			slog.String("username", username),
			slog.String("status", receipt.Status),
			slog.String("form_class", receipt.FormClass),
		)

		if err := handler.HandleReceipt(r.Context(), receipt); err != nil {
			log.Error("applying receipt", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("Problem applying receipt"))
			return
		}

		render.JSON(w, r, response.Ok("receipt applied"))
	}
}

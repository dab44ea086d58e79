package conversation

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"votebot/entity"
	"votebot/internal/lib/api/response"
	"votebot/internal/lib/sl"
)

// Incoming is the SMS gateway webhook (Twilio-style form post). It always
// acknowledges with 200 so the gateway never retries a message we already
// saw; failures are an operator problem, not the gateway's.
func Incoming(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			render.JSON(w, r, response.Ok("thanks"))
			return
		}

		from := r.FormValue("From")
		body := r.FormValue("Body")

		log.Info("incoming sms",
			slog.String("from", from),
		)

		if from == "" {
			render.JSON(w, r, response.Ok("thanks"))
			return
		}

		if err := handler.IncomingMessage(r.Context(), from, body, entity.UserTypeSMS); err != nil {
			log.Error("handling incoming sms", sl.Err(err))
		}

		render.JSON(w, r, response.Ok("thanks"))
	}
}

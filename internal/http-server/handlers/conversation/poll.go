package conversation

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"votebot/internal/lib/api/response"
	"votebot/internal/lib/sl"
)

// Poll long-polls for messages newer than last_seq. Returns an empty list
// after the window elapses; clients simply poll again.
func Poll(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conversationID := chi.URLParam(r, "id")

		lastSeq, _ := strconv.ParseInt(r.URL.Query().Get("last_seq"), 10, 64)

		messages, err := handler.PollMessages(r.Context(), conversationID, lastSeq)
		if err != nil {
			log.Error("polling messages", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("Problem grabbing messages"))
			return
		}

		render.JSON(w, r, response.Ok(messages))
	}
}

package api

import (
	"fmt"
	"log/slog"
	"net"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"votebot/internal/config"
	"votebot/internal/http-server/handlers/conversation"
	"votebot/internal/http-server/handlers/errors"
	"votebot/internal/http-server/handlers/receipt"
	"votebot/internal/http-server/handlers/user"
	"votebot/internal/http-server/middleware/authenticate"
	"votebot/internal/http-server/middleware/timeout"
	"votebot/internal/lib/sl"
	"votebot/internal/ws"
)

type Server struct {
	conf       *config.Config
	httpServer *http.Server
	log        *slog.Logger
}

type Handler interface {
	authenticate.Authenticate
	conversation.Core
	receipt.Core
	user.Core
}

func New(conf *config.Config, log *slog.Logger, handler Handler, hub *ws.Hub) error {

	server := Server{
		conf: conf,
		log:  log.With(sl.Module("api.server")),
	}

	router := chi.NewRouter()
	router.Use(timeout.Timeout(35))
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)
	router.Use(render.SetContentType(render.ContentTypeJSON))

	router.NotFound(errors.NotFound(log))
	router.MethodNotAllowed(errors.NotAllowed(log))

	// the socket carries its own token; everything else goes through the
	// shared-key middleware
	router.Get("/ws", func(w http.ResponseWriter, r *http.Request) {
		ws.ServeWs(hub, conf.Listen.ApiKey, log, w, r)
	})

	router.Group(func(authed chi.Router) {
		authed.Use(authenticate.New(log, handler))

		authed.Route("/api/v1", func(v1 chi.Router) {
			v1.Route("/conversations", func(r chi.Router) {
				r.Post("/", conversation.Create(log, handler))
				r.Post("/start", conversation.Start(log, handler))
				r.Post("/incoming", conversation.Incoming(log, handler))
				r.Post("/{id}/messages", conversation.NewMessage(log, handler))
				r.Get("/{id}/new", conversation.Poll(log, handler))
			})
			v1.Route("/receipt", func(r chi.Router) {
				r.Post("/{username}", receipt.Create(log, handler))
			})
			v1.Route("/users", func(r chi.Router) {
				r.Delete("/{username}", user.Wipe(log, handler))
			})
		})
	})

	httpLog := slog.NewLogLogger(log.Handler(), slog.LevelError)
	server.httpServer = &http.Server{
		Handler:  router,
		ErrorLog: httpLog,
	}

	serverAddress := fmt.Sprintf("%s:%s", conf.Listen.BindIP, conf.Listen.Port)
	listener, err := net.Listen("tcp", serverAddress)
	if err != nil {
		return err
	}

	server.log.Info("starting api server", slog.String("address", serverAddress))

	return server.httpServer.Serve(listener)
}

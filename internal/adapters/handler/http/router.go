package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type RouterConfig struct {
	PollHandler    *PollHandler
	VoteHandler    *VoteHandler
	ResultHandler  *ResultHandler
	SessionHandler *SessionHandler
	JWTSecret      []byte
	AllowedOrigins []string
}

func NewHandler(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(CORS(cfg.AllowedOrigins))

	r.Route("/api", func(r chi.Router) {
		r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		})

		if cfg.SessionHandler != nil {
			r.Post("/session/refresh", cfg.SessionHandler.Refresh)
		}

		r.Route("/polls", func(r chi.Router) {
			r.Use(Authenticate(cfg.JWTSecret))

			r.Get("/", cfg.PollHandler.ListPolls)
			r.With(RequireUser).Post("/", cfg.PollHandler.CreatePoll)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", cfg.PollHandler.GetPoll)
				r.With(RequireUser).Put("/", cfg.PollHandler.UpdatePoll)
				r.With(RequireUser).Delete("/", cfg.PollHandler.DeletePoll)

				r.Post("/vote", cfg.VoteHandler.VoteOnPoll)
				r.Delete("/vote", cfg.VoteHandler.Unvote)

				if cfg.ResultHandler != nil {
					r.Get("/results", cfg.ResultHandler.GetResults)
				}
			})
		})
	})

	return r
}

package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/productioncity/salutation/internal/server/handlers"
	"github.com/productioncity/salutation/internal/server/middleware"
	"github.com/productioncity/salutation/internal/server/response"
)

// setupRouter creates the HTTP handler with routes and middleware.
func (s *Server) setupRouter() http.Handler {
	r := chi.NewRouter()

	// Request id first so logging and recovery can tag their lines.
	r.Use(
		chimw.RequestID,
		middleware.Recovery(s.logger),
		middleware.Logger(s.logger),
	)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		response.NotFound(w, "Route not found", r.URL.Path)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		response.MethodNotAllowed(w, r.Method)
	})

	h := handlers.New(s.service, s.broker, s.wsHub, s.sseBroadcaster, s.logger, s.startTime)

	// Unprefixed liveness probe for load balancers.
	r.Get("/health", h.HandleHealth)

	if s.config.MetricsEnabled {
		r.Handle("/metrics", promhttp.HandlerFor(s.config.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Route(s.config.PathPrefix, func(r chi.Router) {
		r.Get("/health", h.HandleHealth)

		r.Route("/contacts", func(r chi.Router) {
			r.Get("/", h.HandleListContacts)
			r.Post("/", h.HandleCreateContacts)
			r.Post("/reset", h.HandleResetContacts)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.HandleGetContact)
				r.Patch("/", h.HandleUpdateContact)
				r.Delete("/", h.HandleDeleteContact)
				r.Get("/display", h.HandleDisplayContact)
				r.Post("/reset", h.HandleResetContact)
			})
		})

		r.Post("/backfill", h.HandleBackfill)
		r.Post("/split", h.HandleSplit)

		r.Route("/fields", func(r chi.Router) {
			r.Get("/merge", h.HandleMergeFields)
			r.Get("/recipient", h.HandleRecipientFields)
		})

		r.Get("/updates/ws", h.HandleWebSocket)
		r.Get("/updates/stream", h.HandleSSE)
	})

	return r
}

/* routes.go
 * Contains the HTTP routes of the web server
 */

package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Routes builds the router for the server
// Preconditions: Server has been created with NewServer
// Postconditions: Returns a handler serving /healthz, /metrics (if metrics are configured) and the player endpoints
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.HealthHandler)
	if s.metrics != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.metrics.Registry, promhttp.HandlerOpts{}))
	}

	r.Route("/players", func(r chi.Router) {
		r.Get("/", s.SearchHandler)
		r.Get("/{playerID}/chart.png", s.ChartHandler)
		r.Get("/{playerID}/statistics", s.StatisticsHandler)
	})
	return r
}

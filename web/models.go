/* models.go
 * Contains the configuration and state of the web server
 */

package web

import (
	"dwz-bot/api/api"
	"dwz-bot/api/metrics"
	"time"
)

// Config holds the configuration for the web server
type Config struct {
	Addr    string
	API     *api.API
	Metrics *metrics.Metrics
	// Timeout bounds a single player request, including every request to the federation
	Timeout time.Duration
}

// Server is the HTTP server that serves player reports, health and metrics
type Server struct {
	api     *api.API
	metrics *metrics.Metrics
	timeout time.Duration
}

// NewServer creates a Server from its configuration
func NewServer(cfg Config) *Server {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Server{
		api:     cfg.API,
		metrics: cfg.Metrics,
		timeout: timeout,
	}
}

/* players.go
 * Contains the HTTP handlers for player searches, statistics and rating charts
 */

package web

import (
	"context"
	"dwz-bot/api/api"
	"dwz-bot/api/external"
	"dwz-bot/api/shared"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// HealthHandler reports that the server is running
func (s *Server) HealthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

// SearchHandler lists the players matching the name and club query parameters
// Preconditions: Receives a request with a "name" and optional "club" query parameter
// Postconditions: Writes the candidates as JSON, 400 if no name is given or 502 if the federation cannot be reached
func (s *Server) SearchHandler(w http.ResponseWriter, r *http.Request) {
	query := shared.Query{Name: r.URL.Query().Get("name"), Club: r.URL.Query().Get("club")}
	if query.IsEmpty() {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.timeout)
	defer cancel()

	candidates, err := s.api.SearchPlayers(ctx, query)
	if err != nil {
		log.Println("player search failed:", err)
		http.Error(w, "player search failed", http.StatusBadGateway)
		return
	}
	if candidates == nil {
		candidates = []external.PlayerSummary{}
	}
	writeJSON(w, candidates)
}

// ChartHandler writes the rating chart of a player as a PNG
// Postconditions: 404 if the player does not exist or has too few rated tournaments for a chart
func (s *Server) ChartHandler(w http.ResponseWriter, r *http.Request) {
	report, ok := s.report(w, r)
	if !ok {
		return
	}
	if !report.HasChart() {
		http.Error(w, "not enough rated tournaments for a chart", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(report.Chart)
}

// StatisticsHandler writes the rating statistics of a player as JSON
// Postconditions: 404 if the player does not exist or has no tournament with both ratings known
func (s *Server) StatisticsHandler(w http.ResponseWriter, r *http.Request) {
	report, ok := s.report(w, r)
	if !ok {
		return
	}
	if report.Statistics == nil {
		http.Error(w, "not enough rated tournaments for statistics", http.StatusNotFound)
		return
	}
	writeJSON(w, report.Statistics)
}

// report builds the report of the player in the URL. On failure the error response is written and ok is false.
func (s *Server) report(w http.ResponseWriter, r *http.Request) (*api.PlayerReport, bool) {
	playerID := chi.URLParam(r, "playerID")

	ctx, cancel := context.WithTimeout(r.Context(), s.timeout)
	defer cancel()

	report, err := s.api.PlayerReportByID(ctx, playerID)
	switch {
	case errors.Is(err, api.ErrPlayerNotFound):
		http.Error(w, "player not found", http.StatusNotFound)
		return nil, false
	case err != nil:
		log.Printf("error building report for player %s: %v\n", playerID, err)
		http.Error(w, "failed to fetch player", http.StatusBadGateway)
		return nil, false
	}
	return report, true
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Println("failed to encode response:", err)
	}
}

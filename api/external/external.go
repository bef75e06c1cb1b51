/* external.go
 * Contains the DeWIS client used to search players and fetch player cards from the Deutscher Schachbund website
 */

package external

import (
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// DefaultBaseURL is the federation website queried when no base URL is configured
const DefaultBaseURL = "https://www.schachbund.de"

var (
	// ErrUnexpectedStatus is returned when the federation responds with a non 200 status code
	ErrUnexpectedStatus = errors.New("unexpected status code")
	// ErrPlayerNotFound is returned when a player card does not exist
	ErrPlayerNotFound = errors.New("player not found")
)

// DewisClient fetches player data from the DeWIS rating database
type DewisClient struct {
	BaseURL    string
	UserAgent  string
	HTTPClient *http.Client
	limiter    *rate.Limiter
}

// Ensure DewisClient implements Provider
var _ Provider = (*DewisClient)(nil)

// NewDewisClient creates a DewisClient
// Preconditions: Receives the base url of the federation website, the allowed requests per second and burst size
// Postconditions: Returns a client whose outgoing requests are rate limited. A non-positive requestsPerSecond
// disables the limit.
func NewDewisClient(baseURL string, requestsPerSecond float64, burst int) *DewisClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	limit := rate.Inf
	if requestsPerSecond > 0 {
		limit = rate.Limit(requestsPerSecond)
	}
	if burst < 1 {
		burst = 1
	}
	return &DewisClient{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		UserAgent:  "DWZBot/1.0",
		HTTPClient: &http.Client{Timeout: 15 * time.Second},
		limiter:    rate.NewLimiter(limit, burst),
	}
}

// SearchPlayers searches the federation for players matching a name
// Preconditions: Receives a context and a name, usually in the form "Lastname,Firstname" or "Lastname"
// Postconditions: Returns the matching players in the order the federation lists them, or an error if it occurs
func (c *DewisClient) SearchPlayers(ctx context.Context, name string) ([]PlayerSummary, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("search name cannot be empty")
	}

	params := url.Values{}
	params.Set("search", name)
	body, err := c.fetch(ctx, fmt.Sprintf("%s/spieler.html?%s", c.BaseURL, params.Encode()))
	if err != nil {
		return nil, fmt.Errorf("error searching players: %w", err)
	}
	return ParseSearchResults(body), nil
}

// FetchPlayer fetches a player card including the tournament history
// Preconditions: Receives a context and the federation id (pkz) of a player
// Postconditions: Returns the player card, ErrPlayerNotFound if the federation has no such player, or another error
func (c *DewisClient) FetchPlayer(ctx context.Context, id string) (*PlayerCard, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, fmt.Errorf("player id cannot be empty")
	}

	params := url.Values{}
	params.Set("pkz", id)
	params.Set("format", "array")
	body, err := c.fetch(ctx, fmt.Sprintf("%s/php/dewis/spieler.php?%s", c.BaseURL, params.Encode()))
	if err != nil {
		return nil, fmt.Errorf("error fetching player %s: %w", id, err)
	}
	if strings.TrimSpace(body) == "" {
		return nil, ErrPlayerNotFound
	}

	card, err := ParsePlayerCard([]byte(body))
	if err != nil {
		return nil, fmt.Errorf("error parsing player %s: %w", id, err)
	}
	if card.ID == "" {
		card.ID = id
	}
	return card, nil
}

// fetch performs a rate limited GET request and returns the (decompressed) body
func (c *DewisClient) fetch(ctx context.Context, target string) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", err
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	request.Header.Set("User-Agent", c.UserAgent)
	request.Header.Set("Accept-Encoding", "gzip")

	response, err := c.HTTPClient.Do(request)
	if err != nil {
		return "", err
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: %d", ErrUnexpectedStatus, response.StatusCode)
	}

	var reader io.Reader = response.Body
	if response.Header.Get("Content-Encoding") == "gzip" {
		gz, err := gzip.NewReader(response.Body)
		if err != nil {
			return "", fmt.Errorf("failed to create gzip reader: %w", err)
		}
		defer gz.Close()
		reader = gz
	}

	body, err := io.ReadAll(reader)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}
	return string(body), nil
}

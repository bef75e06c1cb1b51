/* config.go
 * Contains the process configuration. A single Config value is built at startup and passed to the components that
 * need it.
 */

package config

import (
	"dwz-bot/api/external"
	"dwz-bot/api/rating"
	"time"
)

// Config contains the process configuration
type Config struct {
	// DiscordToken is the bot token, DiscordBetaToken is used instead when Beta is set
	DiscordToken     string `koanf:"discord_token"`
	DiscordBetaToken string `koanf:"discord_beta_token"`
	Beta             bool   `koanf:"beta"`

	// CommandPrefix is the prefix of every bot command, e.g. "$" for "$dwz"
	CommandPrefix string `koanf:"command_prefix"`
	// Language selects the translation used for bot messages ("en" or "de")
	Language string `koanf:"language"`

	// MongoURI enables the player card cache when set
	MongoURI      string `koanf:"mongo_uri"`
	MongoDatabase string `koanf:"mongo_database"`
	CacheTTL      int    `koanf:"cache_ttl_seconds"`

	DewisBaseURL      string  `koanf:"dewis_base_url"`
	RequestsPerSecond float64 `koanf:"requests_per_second"`
	RequestBurst      int     `koanf:"request_burst"`
	RequestTimeout    int     `koanf:"request_timeout_seconds"`

	// WebAddr is the listen address of the HTTP server, the server is not started when empty
	WebAddr string `koanf:"web_addr"`

	MaxLabelLength  int     `koanf:"chart_max_label_length"`
	MinPadding      float64 `koanf:"chart_min_padding"`
	PaddingFraction float64 `koanf:"chart_padding_fraction"`
	ChartWidth      int     `koanf:"chart_width"`
	ChartHeight     int     `koanf:"chart_height"`

	// MaxCandidates caps the number of players listed for an ambiguous search
	MaxCandidates int `koanf:"max_candidates"`
}

// New returns a Config populated with defaults
func New() *Config {
	limits := rating.DefaultLimits()
	style := rating.DefaultChartStyle()
	return &Config{
		CommandPrefix:     "$",
		Language:          "en",
		MongoDatabase:     "dwz_bot",
		CacheTTL:          int((6 * time.Hour).Seconds()),
		DewisBaseURL:      external.DefaultBaseURL,
		RequestsPerSecond: 2,
		RequestBurst:      2,
		RequestTimeout:    30,
		WebAddr:           ":8080",
		MaxLabelLength:    limits.MaxLabelLength,
		MinPadding:        limits.MinPadding,
		PaddingFraction:   limits.PaddingFraction,
		ChartWidth:        style.Width,
		ChartHeight:       style.Height,
		MaxCandidates:     10,
	}
}

// Token returns the Discord token for the selected bot
func (c *Config) Token() string {
	if c.Beta {
		return c.DiscordBetaToken
	}
	return c.DiscordToken
}

// Limits returns the chart display limits
func (c *Config) Limits() rating.Limits {
	return rating.Limits{
		MaxLabelLength:  c.MaxLabelLength,
		MinPadding:      c.MinPadding,
		PaddingFraction: c.PaddingFraction,
	}
}

// ChartStyle returns the chart style with the configured size
func (c *Config) ChartStyle() rating.ChartStyle {
	style := rating.DefaultChartStyle()
	style.Width = c.ChartWidth
	style.Height = c.ChartHeight
	return style
}

// CacheDuration returns the player card cache TTL
func (c *Config) CacheDuration() time.Duration {
	return time.Duration(c.CacheTTL) * time.Second
}

// Timeout returns the end to end timeout applied to a single lookup
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.RequestTimeout) * time.Second
}

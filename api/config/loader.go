/* loader.go
 * Contains the configuration loader. Values are layered, lowest precedence first:
 *  1. defaults (New)
 *  2. YAML file named by DWZBOT_CONFIG
 *  3. environment variables prefixed with DWZBOT_
 */

package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix of every configuration environment variable
const EnvPrefix = "DWZBOT_"

var (
	ErrMissingToken    = errors.New("discord token is required")
	ErrInvalidLanguage = errors.New("unsupported language")
	ErrInvalidLimits   = errors.New("invalid chart limits")
)

// Load builds a Config from defaults, the optional YAML file and the environment
// Preconditions: .env files (if any) have already been loaded into the environment
// Postconditions: Returns the validated Config or an error if a source could not be read or a value is invalid
func Load() (*Config, error) {
	k := koanf.New(".")

	if path := os.Getenv(EnvPrefix + "CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error loading config file %s: %w", path, err)
		}
	}

	// DWZBOT_MONGO_URI -> mongo_uri
	envProvider := env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("error loading environment: %w", err)
	}

	cfg := New()
	if err := k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("error decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that would otherwise fail later at runtime. The Discord token is not checked here since
// the lookup command does not need one.
func (c *Config) Validate() error {
	if c.Language != "en" && c.Language != "de" {
		return fmt.Errorf("%w: %q", ErrInvalidLanguage, c.Language)
	}
	if c.CommandPrefix == "" {
		return errors.New("command prefix cannot be empty")
	}
	if c.MinPadding < 0 || c.PaddingFraction < 0 || c.MaxLabelLength < 0 {
		return fmt.Errorf("%w: padding and label length must not be negative", ErrInvalidLimits)
	}
	if c.ChartWidth <= 0 || c.ChartHeight <= 0 {
		return fmt.Errorf("%w: chart size must be positive", ErrInvalidLimits)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request timeout must be positive, received %d", c.RequestTimeout)
	}
	if c.MaxCandidates <= 0 {
		c.MaxCandidates = 10
	}
	return nil
}

// RequireToken returns ErrMissingToken if no token is configured for the selected bot
func (c *Config) RequireToken() error {
	if c.Token() == "" {
		return ErrMissingToken
	}
	return nil
}

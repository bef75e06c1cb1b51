/* bot.go
 * Contains logic used for creating the bot. Requires a discord bot token, APIPtr and a Translator, all of which are
 * passed in from main.go
 */

package bot

import (
	"dwz-bot/api/api"
	"dwz-bot/api/i18n"
	"fmt"
	"strings"
	"time"
)

// Defaults applied by NewBot, main.go overrides them from the configuration
const (
	DefaultPrefix        = "$"
	DefaultMaxCandidates = 10
	DefaultTimeout       = 30 * time.Second
)

type Bot struct {
	BotToken   string
	APIPtr     *api.API
	Translator *i18n.Translator

	// Prefix is prepended to every command name, e.g. "$" for "$dwz"
	Prefix string
	// MaxCandidates caps the players listed for searches and ambiguous lookups
	MaxCandidates int
	// Timeout bounds a single command, including every request to the federation
	Timeout time.Duration
}

// NewBot creates a bot
// Preconditions: Receives a discord bot token, the api and an optional translator
// Postconditions: Returns the bot with default settings, or an error if the token or api is missing. A nil
// translator falls back to English.
func NewBot(botToken string, apiPtr *api.API, translator *i18n.Translator) (*Bot, error) {
	if botToken == "" {
		return nil, fmt.Errorf("botToken is required but none was provided")
	}
	if apiPtr == nil {
		return nil, fmt.Errorf("apiPtr is required but none was provided")
	}
	if translator == nil {
		var err error
		translator, err = i18n.New(i18n.Fallback)
		if err != nil {
			return nil, err
		}
	}

	return &Bot{
		BotToken:      botToken,
		APIPtr:        apiPtr,
		Translator:    translator,
		Prefix:        DefaultPrefix,
		MaxCandidates: DefaultMaxCandidates,
		Timeout:       DefaultTimeout,
	}, nil
}

// command returns the full command string for a command name, e.g. "$dwz"
func (b *Bot) command(name string) string {
	return b.Prefix + name
}

// isCommand reports whether content invokes the named command. "$dwz" matches "$dwz Max" but not "$dwzx".
func (b *Bot) isCommand(content string, name string) bool {
	cmd := b.command(name)
	if !startsWith(content, cmd) {
		return false
	}
	rest := content[len(cmd):]
	return rest == "" || strings.HasPrefix(rest, " ")
}

// Helper function to check if a string starts with a given substring
// Preconditions: Recieves an input string and a substring
// Postconditions: Returns true if the substring is at the start of the string, else returns false
func startsWith(inputString string, substring string) bool {
	if len(substring) > len(inputString) {
		return false
	}
	for i := 0; i < len(substring); i++ {
		if inputString[i] != substring[i] {
			return false
		}
	}
	return true
}

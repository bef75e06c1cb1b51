/* i18n.go
 * Contains the translations used for bot messages. Translations are embedded YAML files keyed by message id, with
 * English as the fallback language.
 */

package i18n

import (
	"embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed locales/*.yaml
var locales embed.FS

// Fallback is the language used for messages missing from the selected translation
const Fallback = "en"

// Translator formats messages in one language
type Translator struct {
	Language string
	messages map[string]string
	fallback map[string]string
}

// New creates a Translator for a language
// Preconditions: Receives a language code with an embedded translation file, e.g. "en" or "de"
// Postconditions: Returns the Translator, or an error if the translation does not exist or cannot be parsed
func New(language string) (*Translator, error) {
	messages, err := load(language)
	if err != nil {
		return nil, err
	}
	fallback := messages
	if language != Fallback {
		if fallback, err = load(Fallback); err != nil {
			return nil, err
		}
	}
	return &Translator{Language: language, messages: messages, fallback: fallback}, nil
}

func load(language string) (map[string]string, error) {
	data, err := locales.ReadFile(fmt.Sprintf("locales/%s.yaml", language))
	if err != nil {
		return nil, fmt.Errorf("no translation for language %q: %w", language, err)
	}
	var messages map[string]string
	if err := yaml.Unmarshal(data, &messages); err != nil {
		return nil, fmt.Errorf("error parsing translation %q: %w", language, err)
	}
	return messages, nil
}

// T returns the message for key formatted with args. Unknown keys are returned unchanged.
func (t *Translator) T(key string, args ...any) string {
	message, ok := t.messages[key]
	if !ok {
		if message, ok = t.fallback[key]; !ok {
			return key
		}
	}
	if len(args) == 0 {
		return message
	}
	return fmt.Sprintf(message, args...)
}

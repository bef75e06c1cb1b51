/* args.go
 * Contains the logic for splitting bot commands into arguments
 */

package logic

import (
	"strings"

	"github.com/go-andiamo/splitter"
)

// ParseCommandArgs splits a command message into its arguments, dropping the command itself
// Preconditions: receives the raw message content, e.g. `$dwz "Mustermann, Max" "SK Musterstadt"`
// Postconditions: returns the arguments with quotes removed. Quoted arguments containing spaces stay together.
// Returns an error if the quotes are unbalanced.
func ParseCommandArgs(content string) ([]string, error) {
	spaceSplitter, err := splitter.NewSplitter(' ', splitter.DoubleQuotes, splitter.LeftRightDoubleDoubleQuotes)
	if err != nil {
		return nil, err
	}
	parts, err := spaceSplitter.Split(strings.TrimSpace(content))
	if err != nil {
		return nil, err
	}

	var args []string
	for _, part := range parts[min(1, len(parts)):] {
		if cleaned := CleanInput(part); cleaned != "" {
			args = append(args, cleaned)
		}
	}
	return args, nil
}

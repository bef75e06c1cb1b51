/* models.go
 * This file contains the structs that are shared between sub packages
 */

package shared

import "strings"

// Query is a player lookup as entered by a user
type Query struct {
	Name string
	Club string
}

// NewQuery builds a Query from command arguments, where the first argument is the player name and the optional
// second argument the club
func NewQuery(args []string) Query {
	var q Query
	if len(args) > 0 {
		q.Name = strings.TrimSpace(args[0])
	}
	if len(args) > 1 {
		q.Club = strings.TrimSpace(strings.Join(args[1:], " "))
	}
	return q
}

// IsEmpty reports whether the query has no name to search for
func (q Query) IsEmpty() bool {
	return strings.TrimSpace(q.Name) == ""
}

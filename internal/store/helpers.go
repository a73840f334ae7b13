// ABOUTME: SQL helper functions for query construction.
// ABOUTME: Escapes LIKE patterns so user input only ever matches literally.

package store

import "strings"

// likeEscaper escapes the LIKE metacharacters for use with ESCAPE '\'.
// Replacer works in a single pass, so an escaped backslash is never re-escaped.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeSQLLike(pattern string) string {
	return likeEscaper.Replace(pattern)
}

package helpers

import "strings"

// NilIfBlank maps a nil or whitespace-only string to nil. Optional unique
// columns store NULL instead of "" so blanks never collide.
func NilIfBlank(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	return s
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// EscapeLike makes LIKE wildcards in s match literally
func EscapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// ContainsPattern builds an ILIKE pattern matching s anywhere, with LIKE
// wildcards in s taken literally.
func ContainsPattern(s string) string {
	return "%" + EscapeLike(s) + "%"
}

package postgres

import "strings"

// likeEscaper escapes the characters that are special inside a LIKE pattern:
// the backslash escape character itself, the multi-character wildcard '%',
// and the single-character wildcard '_'. strings.Replacer substitutes in a
// single left-to-right pass, so a backslash produced by one rule is never
// re-escaped by another; the transform stays unambiguous no matter which
// metacharacter appears first in the input.
var likeEscaper = strings.NewReplacer(
	`\`, `\\`,
	`%`, `\%`,
	`_`, `\_`,
)

// escapeLikePrefix turns a user-supplied literal prefix into a string safe
// for use in a LIKE pattern. The caller appends the trailing '%'.
func escapeLikePrefix(prefix string) string {
	return likeEscaper.Replace(prefix)
}

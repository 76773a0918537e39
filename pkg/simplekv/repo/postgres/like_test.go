package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEscapeLikePrefix(t *testing.T) {
	tests := []struct {
		name   string
		prefix string
		want   string
	}{
		{
			name:   "plain prefix untouched",
			prefix: "user:",
			want:   "user:",
		},
		{
			name:   "percent escaped",
			prefix: "100%",
			want:   `100\%`,
		},
		{
			name:   "underscore escaped",
			prefix: "use_case",
			want:   `use\_case`,
		},
		{
			name:   "backslash escaped",
			prefix: `a\b`,
			want:   `a\\b`,
		},
		{
			name:   "backslash before metacharacter stays unambiguous",
			prefix: `a\%b`,
			want:   `a\\\%b`,
		},
		{
			name:   "metacharacter before backslash stays unambiguous",
			prefix: `a%\b`,
			want:   `a\%\\b`,
		},
		{
			name:   "all metacharacters",
			prefix: `\%_`,
			want:   `\\\%\_`,
		},
		{
			name:   "empty prefix",
			prefix: "",
			want:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, escapeLikePrefix(tt.prefix))
		})
	}
}

func TestEscapeLikePrefixDoesNotReescapeItsOwnOutput(t *testing.T) {
	// Escaping escapes every character exactly once per pass: the result of
	// one pass, escaped again, doubles predictably rather than corrupting.
	once := escapeLikePrefix(`50%`)
	assert.Equal(t, `50\%`, once)
	assert.Equal(t, `50\\\%`, escapeLikePrefix(once))
}

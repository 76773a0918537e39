package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSearchPathSQL(t *testing.T) {
	tests := []struct {
		name   string
		schema string
		want   string
	}{
		{
			name:   "plain schema",
			schema: "kv",
			want:   `SET search_path TO "kv"`,
		},
		{
			name:   "schema needing quoting",
			schema: "my schema",
			want:   `SET search_path TO "my schema"`,
		},
		{
			name:   "embedded quote escaped",
			schema: `a"b`,
			want:   `SET search_path TO "a""b"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, searchPathSQL(tt.schema))
		})
	}
}

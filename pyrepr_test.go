package fsdoc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_pyStr(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"plain string", "64.1 cm", "64.1 cm"},
		{"whole float", 13.0, "13.0"},
		{"list of floats", []any{13.0, 3.0, 4.0}, "[13.0, 3.0, 4.0]"},
		{"list of strings", []any{"2.22 cm", "7.41 cm"}, "['2.22 cm', '7.41 cm']"},
		{"nested mapping", Variables{"b": 1.0, "a": "x"}, "{'a': 'x', 'b': 1.0}"},
		{"nil", nil, "None"},
		{"bool", true, "True"},
		{"quote in string", []any{"it's"}, `["it's"]`},
		{"both quotes", []any{`it's "x"`}, `['it\'s "x"']`},
		{"newline", []any{"a\nb"}, `['a\nb']`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, pyStr(tt.in))
		})
	}
}

package tarot

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateHandle(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{name: "Plain", input: "moonchild", want: true},
		{name: "Leading At", input: "@moonchild", want: true},
		{name: "Surrounding Whitespace", input: "  jack  ", want: true},
		{name: "Underscore And Hyphen", input: "x_ae_a-12", want: true},
		{name: "Single Char", input: "a", want: true},
		{name: "Max Length", input: "abcdefghij12345", want: true},
		{name: "Too Long", input: "abcdefghij123456", want: false},
		{name: "Empty", input: "", want: false},
		{name: "Only At", input: "@", want: false},
		{name: "Spaces Inside", input: "moon child", want: false},
		{name: "Unicode", input: "möonchild", want: false},
		{name: "Dot", input: "moon.child", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidateHandle(tt.input))
		})
	}
}

func TestNormalizeHandle(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "Lowercases", input: "MoonChild", want: "moonchild"},
		{name: "Strips At", input: "@MoonChild", want: "moonchild"},
		{name: "Trims", input: "  @Jack ", want: "jack"},
		{name: "Already Normal", input: "jack", want: "jack"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeHandle(tt.input))
		})
	}
}

func TestNormalizeHandleIdempotent(t *testing.T) {
	inputs := []string{"@MoonChild", " jack ", "X_AE_A-12"}
	for _, in := range inputs {
		once := NormalizeHandle(in)
		assert.Equal(t, once, NormalizeHandle(once))
	}
}

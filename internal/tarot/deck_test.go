package tarot

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStyleHashKnownValues(t *testing.T) {
	// Values mirror the polynomial hash with int32 wraparound. These
	// must never change: existing handles depend on them.
	tests := []struct {
		input string
		want  int32
	}{
		{input: "", want: 0},
		{input: "a", want: 97},
		{input: "jack", want: 3254239},
		{input: "elonmusk", want: 279120838},
		{input: "moonchild", want: -588090693},
		{input: "x_ae_a-12", want: -912189055},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, styleHash(tt.input))
		})
	}
}

func TestAssignStyleKnownValues(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{input: "", want: "THE_MAGICIAN"},
		{input: "a", want: "THE_HIGH_PRIESTESS"},
		{input: "jack", want: "THE_WORLD"},
		{input: "elonmusk", want: "THE_SUN"},
		{input: "moonchild", want: "THE_MOON"},
		{input: "x_ae_a-12", want: "THE_WORLD"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, AssignStyle(tt.input).Name)
		})
	}
}

func TestAssignStyleDeterministic(t *testing.T) {
	for _, handle := range []string{"moonchild", "jack", "night-owl"} {
		first := AssignStyle(handle)
		for i := 0; i < 10; i++ {
			assert.Equal(t, first, AssignStyle(handle))
		}
	}
}

func TestDeckShape(t *testing.T) {
	assert.Len(t, Deck, 8)

	seen := map[string]bool{}
	for _, s := range Deck {
		assert.NotEmpty(t, s.Name)
		assert.NotEmpty(t, s.Description)
		assert.False(t, seen[s.Name], "duplicate archetype %s", s.Name)
		seen[s.Name] = true
	}
}

func TestStyleByName(t *testing.T) {
	assert.Equal(t, "THE_MOON", StyleByName("THE_MOON").Name)

	// Unknown names fall back to the first entry.
	assert.Equal(t, Deck[0], StyleByName("THE_HANGED_MAN"))
}

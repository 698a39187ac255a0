package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSizeToBytes(t *testing.T) {
	const def = int64(1024)

	tests := []struct {
		name  string
		input string
		want  int64
	}{
		{name: "Plain Bytes", input: "512", want: 512},
		{name: "B Suffix", input: "512B", want: 512},
		{name: "KB", input: "4KB", want: 4 << 10},
		{name: "MB", input: "5MB", want: 5 << 20},
		{name: "GB With Space", input: "2 GB", want: 2 << 30},
		{name: "Lowercase", input: "512kb", want: 512 << 10},
		{name: "Empty Uses Default", input: "", want: def},
		{name: "Garbage Uses Default", input: "abc", want: def},
		{name: "Unknown Unit Uses Default", input: "5XB", want: def},
		{name: "Negative Uses Default", input: "-5MB", want: def},
		{name: "Zero Uses Default", input: "0MB", want: def},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SizeToBytes(tt.input, def))
		})
	}
}

func TestParseInt(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int
	}{
		{name: "In Range", input: "500", want: 500},
		{name: "Empty Uses Default", input: "", want: 256},
		{name: "Garbage Uses Default", input: "abc", want: 256},
		{name: "Clamped High", input: "9999", want: 2048},
		{name: "Clamped Low", input: "1", want: 16},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseInt(tt.input, 256, 16, 2048))
		})
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		input int64
		want  string
	}{
		{input: 0, want: "0 B"},
		{input: 512, want: "512 B"},
		{input: 1024, want: "1.00 KB"},
		{input: 5 << 20, want: "5.00 MB"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatBytes(tt.input))
		})
	}
}

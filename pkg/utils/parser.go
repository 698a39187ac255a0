// Package utils provides common helper functions for string manipulation,
// data parsing, and HTTP plumbing used across the application.
package utils

import (
	"regexp"
	"strconv"
	"strings"

	"arcana/pkg/logger"
)

// sizeRegex matches a number followed optionally by a unit string.
// It allows flexible spacing between the number and the unit.
var sizeRegex = regexp.MustCompile(`^(\d+)\s*([a-zA-Z]*)$`)

// unitMultipliers maps data size units to their byte values using binary prefixes.
var unitMultipliers = map[string]int64{
	"":   1,
	"B":  1,
	"KB": 1 << 10,
	"MB": 1 << 20,
	"GB": 1 << 30,
	"TB": 1 << 40,
}

// SizeToBytes parses a human-readable data size string ("5MB", "2 GB", "512kb")
// into bytes. Returns defaultValue when the string cannot be parsed.
func SizeToBytes(sizeStr string, defaultValue int64) int64 {
	rawStr := strings.TrimSpace(strings.ToUpper(sizeStr))
	if rawStr == "" {
		return defaultValue
	}

	matches := sizeRegex.FindStringSubmatch(rawStr)
	if len(matches) != 3 {
		logger.LogWarn("Utils: Invalid size format '%s', using default.", sizeStr)
		return defaultValue
	}

	value, err := strconv.ParseInt(matches[1], 10, 64)
	if err != nil || value <= 0 {
		logger.LogWarn("Utils: Invalid numeric value in '%s', using default.", sizeStr)
		return defaultValue
	}

	multiplier, exists := unitMultipliers[matches[2]]
	if !exists {
		logger.LogWarn("Utils: Unsupported unit in '%s', using default.", sizeStr)
		return defaultValue
	}

	return value * multiplier
}

// ParseInt safely parses a string to int with bounds checking.
// Usage: ParseInt("500", 256, 16, 2048) -> 500
// Usage: ParseInt("abc", 256, 16, 2048) -> 256 (default)
// Usage: ParseInt("9999", 256, 16, 2048) -> 2048 (clamped)
func ParseInt(value string, def int, min int, max int) int {
	if value == "" {
		return def
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return def
	}
	if i < min {
		return min
	}
	if i > max {
		return max
	}
	return i
}

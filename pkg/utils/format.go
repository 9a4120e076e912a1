// Package utils provides number and text formatting helpers shared by the
// chart engine, the build pipeline and the CLI.
package utils

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// FormatNumber formats a value using the shortest decimal representation
// that round-trips, e.g. 8 → "8", 7.5 → "7.5", 0.25 → "0.25".
func FormatNumber(v float64) string {
	if v == 0 {
		return "0" // also folds -0
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// FormatCoord formats an SVG coordinate with at most three decimals,
// trailing zeros removed. Tiny negative values never print as "-0".
func FormatCoord(v float64) string {
	s := strconv.FormatFloat(v, 'f', 3, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if s == "-0" {
		return "0"
	}
	return s
}

// FormatPercent formats a percentage with one decimal place and no sign.
// e.g., 33.333 → "33.3"
func FormatPercent(pct float64) string {
	return strconv.FormatFloat(pct, 'f', 1, 64)
}

// FormatHours formats an hour count as displayed in chart labels, e.g. "7.5h".
func FormatHours(h float64) string {
	return FormatNumber(h) + "h"
}

// RoundHalfUp rounds to the nearest integer, halves away towards +Inf.
func RoundHalfUp(v float64) float64 {
	return math.Floor(v + 0.5)
}

// FirstWords returns at most n whitespace-separated words of s joined by a
// single space.
func FirstWords(s string, n int) string {
	words := strings.Fields(s)
	if len(words) > n {
		words = words[:n]
	}
	return strings.Join(words, " ")
}

// FormatDuration formats a duration for display.
func FormatDuration(d time.Duration) string {
	switch {
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	case d < time.Minute:
		return fmt.Sprintf("%.1fs", d.Seconds())
	case d < time.Hour:
		return fmt.Sprintf("%.1fm", d.Minutes())
	default:
		return fmt.Sprintf("%.1fh", d.Hours())
	}
}

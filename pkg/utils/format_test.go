package utils

import (
	"math"
	"testing"
	"time"
)

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{8, "8"},
		{7.5, "7.5"},
		{0.25, "0.25"},
		{0, "0"},
		{math.Copysign(0, -1), "0"},
		{24, "24"},
		{1.1, "1.1"},
	}
	for _, tt := range tests {
		if got := FormatNumber(tt.in); got != tt.want {
			t.Errorf("FormatNumber(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatCoord(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{200, "200"},
		{50.0000000001, "50"},
		{123.4567, "123.457"},
		{10.5, "10.5"},
		{-0.0001, "0"},
		{-12.25, "-12.25"},
		{200 + 150*math.Cos(-math.Pi/2), "200"},
	}
	for _, tt := range tests {
		if got := FormatCoord(tt.in); got != tt.want {
			t.Errorf("FormatCoord(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatPercent(t *testing.T) {
	if got := FormatPercent(100.0 / 3); got != "33.3" {
		t.Errorf("got %q, want 33.3", got)
	}
	if got := FormatPercent(50); got != "50.0" {
		t.Errorf("got %q, want 50.0", got)
	}
}

func TestFormatHours(t *testing.T) {
	if got := FormatHours(7.5); got != "7.5h" {
		t.Errorf("got %q", got)
	}
}

func TestRoundHalfUp(t *testing.T) {
	tests := map[float64]float64{2.5: 3, 2.49: 2, 6.4: 6, 0: 0, 9.6: 10}
	for in, want := range tests {
		if got := RoundHalfUp(in); got != want {
			t.Errorf("RoundHalfUp(%v) = %v, want %v", in, got, want)
		}
	}
}

func TestFirstWords(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"Deep Work Sessions", 2, "Deep Work"},
		{"Sleep", 2, "Sleep"},
		{"  Family   and friends ", 2, "Family and"},
		{"", 2, ""},
	}
	for _, tt := range tests {
		if got := FirstWords(tt.in, tt.n); got != tt.want {
			t.Errorf("FirstWords(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
		}
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{250 * time.Millisecond, "250ms"},
		{1500 * time.Millisecond, "1.5s"},
		{90 * time.Second, "1.5m"},
		{2 * time.Hour, "2.0h"},
	}
	for _, tt := range tests {
		if got := FormatDuration(tt.d); got != tt.want {
			t.Errorf("FormatDuration(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

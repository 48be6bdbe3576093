/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package internal

import (
	"testing"
	"time"
)

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"JOHN SMITH", "John Smith"},
		{"SMITH, JOHN", "John Smith"},
		{"  mary   o'brien-jones ", "Mary O'Brien-Jones"},
		{"Ian McDonald", "Ian McDonald"},
		{"", ""},
	}

	for _, tc := range tests {
		if got := NormalizeName(tc.in); got != tc.want {
			t.Errorf("NormalizeName(%q) got %q; want %q", tc.in, got, tc.want)
		}
	}
}

func TestScoreToString(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{0.5, "½"},
		{3, "3"},
		{2.5, "2½"},
		{1.25, "1.25"},
	}

	for _, tc := range tests {
		if got := ScoreToString(tc.in); got != tc.want {
			t.Errorf("ScoreToString(%v) got %q; want %q", tc.in, got, tc.want)
		}
	}
}

func TestParseDateOrZero(t *testing.T) {
	for _, s := range []string{"", "null"} {
		got, err := ParseDateOrZero(s)
		if err != nil || !got.IsZero() {
			t.Errorf("ParseDateOrZero(%q) got %v, %v; want zero time", s, got, err)
		}
	}

	got, err := ParseDateOrZero("2025-06-24")
	if err != nil {
		t.Fatalf("ParseDateOrZero failed: %v", err)
	}
	want := time.Date(2025, 6, 24, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("ParseDateOrZero got %v; want %v", got, want)
	}

	if _, err := ParseDateOrZero("not a date"); err == nil {
		t.Errorf("expected error for unparsable date")
	}
}

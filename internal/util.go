/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package internal

import (
	"math"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/araddon/dateparse"
)

// ParseDateOrZero returns a parsed time or zero if input is empty or "null".
func ParseDateOrZero(s string) (time.Time, error) {
	if s == "" || s == "null" {
		return time.Time{}, nil
	}
	return dateparse.ParseAny(s)
}

// NormalizeName turns "LAST, FIRST" and shouting or lowercase names into
// "First Last" and collapses runs of whitespace.
func NormalizeName(name string) string {
	if last, first, ok := strings.Cut(name, ","); ok {
		name = strings.TrimSpace(first) + " " + strings.TrimSpace(last)
	}

	words := strings.Fields(name)
	for i, w := range words {
		if isSingleCase(w) {
			words[i] = titleWord(w)
		}
	}

	return strings.Join(words, " ")
}

func isSingleCase(w string) bool {
	return w == strings.ToUpper(w) || w == strings.ToLower(w)
}

// titleWord capitalises each hyphen or apostrophe separated part of w.
func titleWord(w string) string {
	runes := []rune(strings.ToLower(w))
	upper := true
	for i, r := range runes {
		if upper && unicode.IsLetter(r) {
			runes[i] = unicode.ToUpper(r)
			upper = false
		}
		if r == '-' || r == '\'' {
			upper = true
		}
	}
	return string(runes)
}

// ScoreToString renders a score with a ½ glyph, e.g. 2.5 as "2½".
func ScoreToString(score float64) string {
	whole, frac := math.Modf(score)
	switch {
	case frac == 0:
		return strconv.Itoa(int(whole))
	case math.Abs(frac) == 0.5 && whole == 0:
		return "½"
	case math.Abs(frac) == 0.5:
		return strconv.Itoa(int(whole)) + "½"
	default:
		return strconv.FormatFloat(score, 'f', -1, 64)
	}
}

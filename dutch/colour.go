/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package dutch

import (
	"fmt"
	"strings"
)

type Colour int8

const (
	NoColour Colour = iota
	White
	Black
)

func (c Colour) Opposite() Colour {
	switch c {
	case White:
		return Black
	case Black:
		return White
	default:
		return NoColour
	}
}

func (c Colour) String() string {
	switch c {
	case White:
		return "white"
	case Black:
		return "black"
	default:
		return "none"
	}
}

func (c Colour) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Colour) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "white", "w":
		*c = White
	case "black", "b":
		*c = Black
	case "", "none", "-":
		*c = NoColour
	default:
		return fmt.Errorf("dutch: unknown colour %q", text)
	}

	return nil
}

// Degree is the strength of a colour preference.
type Degree int8

const (
	DegreeNone Degree = iota
	DegreeMild
	DegreeStrong
	DegreeAbsolute
)

func (d Degree) String() string {
	switch d {
	case DegreeMild:
		return "mild"
	case DegreeStrong:
		return "strong"
	case DegreeAbsolute:
		return "absolute"
	default:
		return "none"
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

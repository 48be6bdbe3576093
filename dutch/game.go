/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package dutch

import (
	"fmt"
	"strings"
)

type Outcome int8

const (
	OutcomePending Outcome = iota
	OutcomeWin
	OutcomeDraw
	OutcomeLoss
	OutcomeForfeitWin
	OutcomeForfeitLoss
	OutcomeBye
	OutcomeHalfBye
	OutcomeAbsent
)

var outcomeNames = map[Outcome]string{
	OutcomePending:     "pending",
	OutcomeWin:         "win",
	OutcomeDraw:        "draw",
	OutcomeLoss:        "loss",
	OutcomeForfeitWin:  "forfeit-win",
	OutcomeForfeitLoss: "forfeit-loss",
	OutcomeBye:         "bye",
	OutcomeHalfBye:     "half-bye",
	OutcomeAbsent:      "absent",
}

func (o Outcome) String() string {
	name, ok := outcomeNames[o]
	if !ok {
		return fmt.Sprintf("Outcome(%d)", int8(o))
	}
	return name
}

func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

func (o *Outcome) UnmarshalText(text []byte) error {
	want := strings.ToLower(string(text))
	for k, v := range outcomeNames {
		if v == want {
			*o = k
			return nil
		}
	}

	return fmt.Errorf("dutch: unknown outcome %q", text)
}

// Float records how a player moved between scoregroups in one round.
type Float int8

const (
	FloatNone Float = iota
	FloatDown
	FloatUp
	FloatBye
)

func (f Float) String() string {
	switch f {
	case FloatDown:
		return "down"
	case FloatUp:
		return "up"
	case FloatBye:
		return "bye"
	default:
		return "none"
	}
}

func (f Float) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

func (f *Float) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "down":
		*f = FloatDown
	case "up":
		*f = FloatUp
	case "bye":
		*f = FloatBye
	case "", "none":
		*f = FloatNone
	default:
		return fmt.Errorf("dutch: unknown float %q", text)
	}

	return nil
}

// FloatBetween returns the float of a player holding own points before a
// game against an opponent holding opponent points.
func FloatBetween(own float64, opponent float64) Float {
	switch {
	case own > opponent:
		return FloatDown
	case own < opponent:
		return FloatUp
	default:
		return FloatNone
	}
}

// Game is one round of a player's history. Opponent is 0 when the round
// was not played against anybody.
type Game struct {
	Opponent int     `json:"opponent,omitempty"`
	Colour   Colour  `json:"colour,omitempty"`
	Outcome  Outcome `json:"outcome"`
	Float    Float   `json:"float,omitempty"`
	// Award holds the points of a pairing-allocated bye.
	Award float64 `json:"award,omitempty"`
}

func NewByeGame(points float64) Game {
	return Game{
		Outcome: OutcomeBye,
		Float:   FloatBye,
		Award:   points,
	}
}

func (g Game) Played() bool {
	switch g.Outcome {
	case OutcomeWin, OutcomeDraw, OutcomeLoss:
		return true
	default:
		return false
	}
}

// IsBye reports whether the player scored without playing.
func (g Game) IsBye() bool {
	return g.Outcome == OutcomeBye || g.Outcome == OutcomeForfeitWin
}

func (g Game) Points() float64 {
	switch g.Outcome {
	case OutcomeWin, OutcomeForfeitWin:
		return 1
	case OutcomeDraw, OutcomeHalfBye:
		return 0.5
	case OutcomeBye:
		return g.Award
	default:
		return 0
	}
}

/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package dutch

import (
	"fmt"
	"strings"
)

// Result is the outcome of one board.
type Result int8

const (
	ResultUnknown Result = iota
	WhiteWon
	BlackWon
	Draw
	WhiteWonByForfeit
	BlackWonByForfeit
	DoubleForfeit
)

var resultNames = map[Result][]string{
	WhiteWon:          {"1-0", "white"},
	BlackWon:          {"0-1", "black"},
	Draw:              {"1/2", "draw", "½-½", "=", "0.5-0.5"},
	WhiteWonByForfeit: {"+-", "white-forfeit"},
	BlackWonByForfeit: {"-+", "black-forfeit"},
	DoubleForfeit:     {"--", "double-forfeit"},
}

func (r Result) String() string {
	names, ok := resultNames[r]
	if !ok {
		return "?"
	}
	return names[0]
}

func (r Result) MarshalText() ([]byte, error) {
	if _, ok := resultNames[r]; !ok {
		return nil, fmt.Errorf("dutch: cannot marshal result %d", int8(r))
	}
	return []byte(r.String()), nil
}

func (r *Result) UnmarshalText(text []byte) error {
	want := strings.ToLower(strings.TrimSpace(string(text)))
	for res, names := range resultNames {
		for _, name := range names {
			if name == want {
				*r = res
				return nil
			}
		}
	}

	return fmt.Errorf("dutch: unknown result %q", text)
}

func (r Result) outcomes() (white Outcome, black Outcome) {
	switch r {
	case WhiteWon:
		return OutcomeWin, OutcomeLoss
	case BlackWon:
		return OutcomeLoss, OutcomeWin
	case Draw:
		return OutcomeDraw, OutcomeDraw
	case WhiteWonByForfeit:
		return OutcomeForfeitWin, OutcomeForfeitLoss
	case BlackWonByForfeit:
		return OutcomeForfeitLoss, OutcomeForfeitWin
	case DoubleForfeit:
		return OutcomeForfeitLoss, OutcomeForfeitLoss
	default:
		return OutcomePending, OutcomePending
	}
}

func gameFor(own *Player, opponent *Player, colour Colour, outcome Outcome,
	points map[*Player]float64) Game {

	g := Game{Opponent: opponent.Number, Colour: colour, Outcome: outcome}
	switch {
	case g.Played():
		g.Float = FloatBetween(points[own], points[opponent])
	case g.IsBye():
		g.Float = FloatBye
	}

	return g
}

// Finish records the results of the round's boards, in board order, and
// the bye. Nothing is recorded when an error is returned.
func (r *Round) Finish(results []Result) error {
	if r.finished {
		return ErrRoundFinished
	}
	if !r.paired {
		return ErrNotPaired
	}
	if len(results) != len(r.boards) {
		return fmt.Errorf("%w: got %v results for %v pairs", ErrResultCount,
			len(results), len(r.boards))
	}
	for i, res := range results {
		if _, ok := resultNames[res]; !ok {
			return fmt.Errorf("dutch.Finish: board %v: invalid result %d", i+1,
				int8(res))
		}
	}

	points := make(map[*Player]float64, len(r.players))
	for _, p := range r.players {
		points[p] = p.Points()
	}
	for i, b := range r.boards {
		wo, bo := results[i].outcomes()
		b.White.AddGame(gameFor(b.White, b.Black, White, wo, points))
		b.Black.AddGame(gameFor(b.Black, b.White, Black, bo, points))
	}
	if r.bye != nil {
		r.bye.AddGame(NewByeGame(r.cfg.ByePoints))
	}
	r.finished = true

	return nil
}

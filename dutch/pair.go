/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package dutch

import (
	"sort"
	"strconv"
	"strings"
)

// Pair is two players proposed or confirmed to meet. The higher ranked
// player is always stored first.
type Pair struct {
	first  *Player
	second *Player
}

func NewPair(a *Player, b *Player) Pair {
	if b.RanksAbove(a) {
		a, b = b, a
	}

	return Pair{first: a, second: b}
}

func (p Pair) Players() [2]*Player {
	return [2]*Player{p.first, p.second}
}

func (p Pair) Numbers() [2]int {
	return [2]int{p.first.Number, p.second.Number}
}

func (p Pair) Includes(pl *Player) bool {
	return p.first == pl || p.second == pl
}

func (p Pair) Equal(o Pair) bool {
	return (p.first == o.first && p.second == o.second) ||
		(p.first == o.second && p.second == o.first)
}

// Less orders pairs by their higher ranked member.
func (p Pair) Less(o Pair) bool {
	return p.first.RanksAbove(o.first)
}

func (p Pair) Heterogeneous() bool {
	return p.first.Points() != p.second.Points()
}

// Allocate decides colours following the FIDE colour allocation rules.
// initial is given to the higher ranked player when neither player has
// any colour history and its pairing number is odd.
func (p Pair) Allocate(initial Colour) (white *Player, black *Player) {
	a, b := p.first, p.second
	pa, pb := a.ColourPreference(), b.ColourPreference()

	give := func(c Colour) (*Player, *Player) {
		if c == White {
			return a, b
		}
		return b, a
	}

	switch {
	case pa != NoColour && pb != NoColour && pa != pb:
		return give(pa)
	case pa != NoColour && pb == NoColour:
		return give(pa)
	case pa == NoColour && pb != NoColour:
		return give(pb.Opposite())
	case pa == NoColour && pb == NoColour:
		if initial == NoColour {
			initial = White
		}
		if a.Number%2 == 1 {
			return give(initial)
		}
		return give(initial.Opposite())
	}

	// same preference
	if a.StrongerPreferenceThan(b) {
		return give(pa)
	}
	if b.StrongerPreferenceThan(a) {
		return give(pb.Opposite())
	}
	if c, ok := alternateColour(a, b); ok {
		return give(c)
	}

	return give(pa)
}

// alternateColour returns the colour a should get so that both players
// alternate relative to the most recent round in which they had
// different colours.
func alternateColour(a *Player, b *Player) (Colour, bool) {
	ga, gb := a.games, b.games
	for i, j := len(ga)-1, len(gb)-1; i >= 0 && j >= 0; i, j = i-1, j-1 {
		ca, cb := ga[i].Colour, gb[j].Colour
		if !ga[i].Played() || !gb[j].Played() {
			continue
		}
		if ca != NoColour && cb != NoColour && ca != cb {
			return cb, true
		}
	}

	return NoColour, false
}

func (p Pair) samePreference() bool {
	pa := p.first.ColourPreference()
	return pa != NoColour && pa == p.second.ColourPreference()
}

func (p Pair) sameStrongPreference() bool {
	return p.samePreference() && p.first.hasStrongPreference() &&
		p.second.hasStrongPreference()
}

func (p Pair) sameAbsoluteHighDifference() bool {
	return p.samePreference() && p.first.hasAbsolutePreference() &&
		p.second.hasAbsolutePreference() &&
		abs(p.first.ColourDifference()) > 1 &&
		abs(p.second.ColourDifference()) > 1
}

func (p Pair) sameColourThreeTimes() bool {
	return p.samePreference() && lastTwoEqual(p.first.Colours()) &&
		lastTwoEqual(p.second.Colours())
}

// upfloater returns the lower scored member of a heterogeneous pair.
func (p Pair) upfloater() *Player {
	if !p.Heterogeneous() {
		return nil
	}

	return p.second
}

func sortPairs(pairs []Pair) {
	sort.SliceStable(pairs, func(i, j int) bool {
		return pairs[i].Less(pairs[j])
	})
}

// pairSetKey identifies a set of pairs independent of order.
func pairSetKey(pairs []Pair) string {
	keys := make([]string, len(pairs))
	for i, p := range pairs {
		lo, hi := p.first.Number, p.second.Number
		if lo > hi {
			lo, hi = hi, lo
		}
		keys[i] = strconv.Itoa(lo) + "-" + strconv.Itoa(hi)
	}
	sort.Strings(keys)

	return strings.Join(keys, ",")
}

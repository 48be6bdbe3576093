/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package dutch

import (
	"sort"
)

// Player is a tournament participant. Everything besides the identity is
// derived from the game history, which only grows through AddGame.
type Player struct {
	Number    int
	Name      string
	Rating    int
	Topscorer bool

	games []Game
}

func NewPlayer(number int, games ...Game) *Player {
	p := &Player{Number: number}
	for _, g := range games {
		p.AddGame(g)
	}

	return p
}

func (p *Player) AddGame(g Game) {
	p.games = append(p.games, g)
}

func (p *Player) Games() []Game {
	ret := make([]Game, len(p.games))
	copy(ret, p.games)
	return ret
}

func (p *Player) Points() float64 {
	points := 0.0
	for _, g := range p.games {
		points += g.Points()
	}

	return points
}

func (p *Player) Opponents() []int {
	var ret []int
	for _, g := range p.games {
		if g.Played() && g.Opponent != 0 {
			ret = append(ret, g.Opponent)
		}
	}

	return ret
}

func (p *Player) HasPlayed(q *Player) bool {
	for _, g := range p.games {
		if g.Played() && g.Opponent == q.Number {
			return true
		}
	}

	return false
}

// Colours returns the colours of played games, oldest first.
func (p *Player) Colours() []Colour {
	var ret []Colour
	for _, g := range p.games {
		if g.Played() && g.Colour != NoColour {
			ret = append(ret, g.Colour)
		}
	}

	return ret
}

// ColourDifference is the number of whites minus the number of blacks.
func (p *Player) ColourDifference() int {
	diff := 0
	for _, c := range p.Colours() {
		switch c {
		case White:
			diff++
		case Black:
			diff--
		}
	}

	return diff
}

func lastTwoEqual(colours []Colour) bool {
	n := len(colours)
	return n >= 2 && colours[n-1] == colours[n-2]
}

func (p *Player) ColourPreference() Colour {
	colours := p.Colours()
	if len(colours) == 0 {
		return NoColour
	}
	last := colours[len(colours)-1]
	if lastTwoEqual(colours) {
		return last.Opposite()
	}

	diff := p.ColourDifference()
	switch {
	case diff > 0:
		return Black
	case diff < 0:
		return White
	default:
		return last.Opposite()
	}
}

func (p *Player) PreferenceDegree() Degree {
	colours := p.Colours()
	if len(colours) == 0 {
		return DegreeNone
	}
	if lastTwoEqual(colours) {
		return DegreeAbsolute
	}

	switch abs(p.ColourDifference()) {
	case 0:
		return DegreeMild
	case 1:
		return DegreeStrong
	default:
		return DegreeAbsolute
	}
}

func (p *Player) hasAbsolutePreference() bool {
	return p.PreferenceDegree() == DegreeAbsolute
}

func (p *Player) hasStrongPreference() bool {
	return p.PreferenceDegree() >= DegreeStrong
}

// StrongerPreferenceThan compares preference degree first and the size of
// the colour difference second.
func (p *Player) StrongerPreferenceThan(q *Player) bool {
	pd, qd := p.PreferenceDegree(), q.PreferenceDegree()
	if pd != qd {
		return pd > qd
	}

	return abs(p.ColourDifference()) > abs(q.ColourDifference())
}

func (p *Player) Floats() []Float {
	ret := make([]Float, len(p.games))
	for i, g := range p.games {
		ret[i] = g.Float
	}

	return ret
}

func (p *Player) floatAgo(rounds int) Float {
	if len(p.games) < rounds {
		return FloatNone
	}

	return p.games[len(p.games)-rounds].Float
}

func (p *Player) DescendedLastRound() bool {
	f := p.floatAgo(1)
	return f == FloatDown || f == FloatBye
}

func (p *Player) AscendedLastRound() bool {
	return p.floatAgo(1) == FloatUp
}

func (p *Player) DescendedTwoRoundsAgo() bool {
	f := p.floatAgo(2)
	return f == FloatDown || f == FloatBye
}

func (p *Player) AscendedTwoRoundsAgo() bool {
	return p.floatAgo(2) == FloatUp
}

func (p *Player) HadBye() bool {
	for _, g := range p.games {
		if g.IsBye() {
			return true
		}
	}

	return false
}

func (p *Player) CompatibleWith(q *Player) bool {
	if p == q || p.Number == q.Number || p.HasPlayed(q) || q.HasPlayed(p) {
		return false
	}
	if p.Topscorer || q.Topscorer {
		return true
	}

	return !(p.hasAbsolutePreference() && q.hasAbsolutePreference() &&
		p.ColourPreference() == q.ColourPreference())
}

func (p *Player) CompatiblePlayersIn(players []*Player) []*Player {
	var ret []*Player
	for _, q := range players {
		if p.CompatibleWith(q) {
			ret = append(ret, q)
		}
	}

	return ret
}

// RanksAbove orders players by points, highest first, then by number.
func (p *Player) RanksAbove(q *Player) bool {
	pp, qp := p.Points(), q.Points()
	if pp != qp {
		return pp > qp
	}

	return p.Number < q.Number
}

func sortPlayers(players []*Player) {
	sort.SliceStable(players, func(i, j int) bool {
		return players[i].RanksAbove(players[j])
	})
}

func sortedPlayers(players []*Player) []*Player {
	ret := make([]*Player, len(players))
	copy(ret, players)
	sortPlayers(ret)
	return ret
}

func playerNumbers(players []*Player) []int {
	ret := make([]int, len(players))
	for i, p := range players {
		ret[i] = p.Number
	}

	return ret
}

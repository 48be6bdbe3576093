/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package dutch

import (
	"sort"
)

const phantomBase = 1000

type history struct {
	points    float64
	opponents map[int]bool
	floats    []Float
	bye       bool
	colours   []Colour
}

// fixture builds players whose history produces exactly the points,
// meetings, floats and byes a test asks for. Points come from wins over
// phantom opponents that never take part in a round.
type fixture struct {
	numbers []int
	hist    map[int]*history
}

func newFixture(from int, to int) *fixture {
	f := &fixture{hist: make(map[int]*history)}
	for n := from; n <= to; n++ {
		f.numbers = append(f.numbers, n)
		f.hist[n] = &history{opponents: make(map[int]bool)}
	}

	return f
}

func (f *fixture) points(points float64, numbers ...int) *fixture {
	for _, n := range numbers {
		f.hist[n].points = points
	}
	return f
}

func (f *fixture) pointsRange(points float64, from int, to int) *fixture {
	return f.points(points, span(from, to)...)
}

// played records that a met every player in opponents.
func (f *fixture) played(a int, opponents ...int) *fixture {
	for _, b := range opponents {
		if a == b {
			continue
		}
		f.hist[a].opponents[b] = true
		f.hist[b].opponents[a] = true
	}
	return f
}

func (f *fixture) floats(n int, floats ...Float) *fixture {
	f.hist[n].floats = floats
	return f
}

func (f *fixture) hadBye(numbers ...int) *fixture {
	for _, n := range numbers {
		f.hist[n].bye = true
	}
	return f
}

func (f *fixture) colours(n int, colours ...Colour) *fixture {
	f.hist[n].colours = colours
	return f
}

func (f *fixture) build() []*Player {
	players := make([]*Player, 0, len(f.numbers))
	for _, n := range f.numbers {
		h := f.hist[n]
		p := NewPlayer(n)

		for i, c := range h.colours {
			p.AddGame(Game{Opponent: phantomBase + 100*n + 50 + i, Colour: c,
				Outcome: OutcomeLoss})
		}

		opponents := make([]int, 0, len(h.opponents))
		for o := range h.opponents {
			opponents = append(opponents, o)
		}
		sort.Ints(opponents)
		for _, o := range opponents {
			p.AddGame(Game{Opponent: o, Outcome: OutcomeLoss})
		}

		wins := int(h.points)
		for i := 0; i < wins; i++ {
			p.AddGame(Game{Opponent: phantomBase + 100*n + i, Outcome: OutcomeWin})
		}
		if h.points-float64(wins) > 0 {
			p.AddGame(Game{Opponent: phantomBase + 100*n + 40,
				Outcome: OutcomeDraw})
		}

		if h.bye {
			p.AddGame(NewByeGame(0))
		}
		for _, fl := range h.floats {
			p.AddGame(Game{Outcome: OutcomeAbsent, Float: fl})
		}
		players = append(players, p)
	}

	return players
}

func span(from int, to int) []int {
	var ret []int
	for n := from; n <= to; n++ {
		ret = append(ret, n)
	}
	return ret
}

func pairNumbers(pairs []Pair) [][2]int {
	ret := make([][2]int, len(pairs))
	for i, p := range pairs {
		ret[i] = p.Numbers()
	}
	return ret
}

func numbers(players []*Player) []int {
	if len(players) == 0 {
		return nil
	}
	return playerNumbers(players)
}

func playerNumbered(players []*Player, n int) *Player {
	for _, p := range players {
		if p.Number == n {
			return p
		}
	}
	return nil
}

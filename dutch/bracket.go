/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package dutch

import (
	"context"
	"errors"
)

type BracketKind int8

const (
	Homogeneous BracketKind = iota
	Heterogeneous
)

func (k BracketKind) String() string {
	if k == Heterogeneous {
		return "heterogeneous"
	}
	return "homogeneous"
}

type bracketResult struct {
	pairs     []Pair
	leftovers []*Player
	err       error
}

// Bracket is the matching problem of one scoregroup plus the players
// moved down into it. Players are kept in rank order; a player's bracket
// sequence number is its position in that order, starting at 1.
type Bracket struct {
	kind       BracketKind
	players    []*Player
	mdps       []*Player
	residents  []*Player
	calc       *BestQualityCalculator
	impossible map[string]bool
	budget     *budget
	remainders map[string]*bracketResult

	result *bracketResult
}

// NewBracket builds a bracket whose search is only bounded by the
// default step budget.
func NewBracket(players []*Player) *Bracket {
	return newBracket(players,
		newBudget(context.Background(), DefaultMaxSteps))
}

func newBracket(players []*Player, b *budget) *Bracket {
	sorted := sortedPlayers(players)
	br := &Bracket{
		players:    sorted,
		calc:       newBestQualityCalculator(sorted, b),
		impossible: make(map[string]bool),
		budget:     b,
		remainders: make(map[string]*bracketResult),
	}

	if len(sorted) > 0 {
		points := sorted[len(sorted)-1].Points()
		for _, p := range sorted {
			if p.Points() > points {
				br.mdps = append(br.mdps, p)
			} else {
				br.residents = append(br.residents, p)
			}
		}
	}
	if len(br.mdps) == 0 || 2*len(br.mdps) > len(sorted) {
		br.kind = Homogeneous
		br.residents = sorted
		br.mdps = nil
	} else {
		br.kind = Heterogeneous
	}

	return br
}

func (b *Bracket) Kind() BracketKind {
	return b.kind
}

func (b *Bracket) Players() []*Player {
	return b.players
}

// Points is the score of the players native to the bracket.
func (b *Bracket) Points() float64 {
	if len(b.players) == 0 {
		return 0
	}
	return b.players[len(b.players)-1].Points()
}

func (b *Bracket) MovedDownPlayers() []*Player {
	return b.mdps
}

func (b *Bracket) Residents() []*Player {
	return b.residents
}

func (b *Bracket) maxMovedDownPairs() int {
	return newCompletion(b.mdps, b.residents, defaultCompatibility, b.budget).
		Compatibilities()
}

// S1 returns the upper subgroup of the initial split.
func (b *Bracket) S1() []*Player {
	if b.kind == Heterogeneous {
		return b.mdps[:min(b.maxMovedDownPairs(), b.NumberOfRequiredPairs())]
	}
	return b.players[:b.NumberOfRequiredPairs()]
}

func (b *Bracket) S2() []*Player {
	if b.kind == Heterogeneous {
		return b.residents
	}
	return b.players[b.NumberOfRequiredPairs():]
}

// Limbo returns the moved down players left out of the initial S1.
func (b *Bracket) Limbo() []*Player {
	if b.kind == Heterogeneous {
		return b.mdps[len(b.S1()):]
	}
	return nil
}

func (b *Bracket) NumberOfRequiredPairs() int {
	return b.calc.PossiblePairs()
}

func (b *Bracket) RequiredDownfloats() int {
	return b.calc.RequiredDownfloats()
}

func (b *Bracket) SetRequiredDownfloats(n int) {
	b.calc.SetRequiredDownfloats(n)
	b.reset()
}

func (b *Bracket) DownfloatPermit() *DownfloatPermit {
	return b.calc.DownfloatPermit()
}

func (b *Bracket) AddPermitRule(rule PermitRule) {
	b.calc.DownfloatPermit().AddRule(rule)
	b.reset()
}

// MarkImpossible excludes a set of pairs from the bracket's candidates.
func (b *Bracket) MarkImpossible(pairs []Pair) {
	b.impossible[pairSetKey(pairs)] = true
	b.reset()
}

// UnpairableMovedDownPlayers returns the moved down players that cannot
// meet any resident.
func (b *Bracket) UnpairableMovedDownPlayers() []*Player {
	var ret []*Player
	for _, p := range b.mdps {
		if len(p.CompatiblePlayersIn(b.residents)) == 0 {
			ret = append(ret, p)
		}
	}

	return ret
}

func (b *Bracket) reset() {
	b.result = nil
	b.remainders = make(map[string]*bracketResult)
}

func (b *Bracket) solve() *bracketResult {
	if b.result != nil {
		return b.result
	}

	var pairs []Pair
	var leftovers []*Player
	var err error
	if b.kind == Heterogeneous {
		pairs, leftovers, err = b.solveHeterogeneous()
	} else {
		pairs, leftovers, err = b.solveHomogeneous()
	}
	sortPairs(pairs)
	sortPlayers(leftovers)
	b.result = &bracketResult{pairs: pairs, leftovers: leftovers, err: err}

	return b.result
}

// Pairs returns the best pairing of the bracket, or an error wrapping
// ErrNoPairing when no candidate satisfies the absolute criteria.
func (b *Bracket) Pairs() ([]Pair, error) {
	res := b.solve()
	return res.pairs, res.err
}

func (b *Bracket) Leftovers() ([]*Player, error) {
	res := b.solve()
	return res.leftovers, res.err
}

func (b *Bracket) byNumber(bsns []int) []*Player {
	ret := make([]*Player, len(bsns))
	for i, n := range bsns {
		ret[i] = b.players[n-1]
	}

	return ret
}

func sequence(from int, to int) []int {
	var ret []int
	for n := from; n <= to; n++ {
		ret = append(ret, n)
	}

	return ret
}

func (b *Bracket) accept(pairs []Pair, leftovers []*Player,
	quality *QualityCriteria) bool {

	if !b.calc.DownfloatPermit().Allows(leftovers) {
		return false
	}
	if len(b.impossible) > 0 && b.impossible[pairSetKey(pairs)] {
		return false
	}

	v := evaluate(pairs, leftovers)
	if !quality.Accepts(v) {
		quality.Reject(v)
		return false
	}

	return true
}

func (b *Bracket) solveHomogeneous() ([]Pair, []*Player, error) {
	wanted := b.calc.PossiblePairs()
	quality := NewQualityCriteria(b.calc, b.players)
	s1 := sequence(1, wanted)
	s2 := sequence(wanted+1, len(b.players))

	for {
		ex := newExchanges(s1, s2)
		for {
			a, c, ok := ex.next()
			if !ok {
				break
			}
			t := newTranspositions(b.byNumber(a), b.byNumber(c),
				defaultCompatibility, quality, b.budget)
			for {
				found, err := t.next()
				if err != nil {
					return nil, nil, err
				}
				if !found {
					break
				}
				pairs, leftovers := t.pairs(), t.leftovers()
				if b.accept(pairs, leftovers, quality) {
					return pairs, leftovers, nil
				}
			}
		}

		if !quality.BeMorePermissive() {
			return nil, nil, errBracketExhausted
		}
	}
}

func (b *Bracket) solveHeterogeneous() ([]Pair, []*Player, error) {
	wanted := b.calc.PossiblePairs()
	for m1 := min(b.maxMovedDownPairs(), wanted); m1 >= 0; m1-- {
		pairs, leftovers, err := b.solveWithMovedDownPairs(m1, wanted)
		if err == nil {
			return pairs, leftovers, nil
		}
		if !errors.Is(err, errBracketExhausted) {
			return nil, nil, err
		}
	}

	return nil, nil, errBracketExhausted
}

// solveWithMovedDownPairs pairs m1 moved down players with residents and
// the remaining residents among themselves.
func (b *Bracket) solveWithMovedDownPairs(m1 int,
	wanted int) ([]Pair, []*Player, error) {

	quality := NewQualityCriteria(b.calc, b.players)
	s1 := sequence(1, m1)
	limbo := sequence(m1+1, len(b.mdps))

	for {
		ex := newExchanges(s1, limbo)
		for {
			a, l, ok := ex.next()
			if !ok {
				break
			}
			limboPlayers := b.byNumber(l)
			t := newTranspositions(b.byNumber(a), b.residents,
				defaultCompatibility, quality, b.budget)
			for {
				found, err := t.next()
				if err != nil {
					return nil, nil, err
				}
				if !found {
					break
				}

				rem := b.remainder(t.leftovers(), wanted-m1, limboPlayers)
				if rem.err != nil {
					if errors.Is(rem.err, errBracketExhausted) {
						continue
					}
					return nil, nil, rem.err
				}
				pairs := append(t.pairs(), rem.pairs...)
				leftovers := append(append([]*Player(nil), limboPlayers...),
					rem.leftovers...)
				if b.accept(pairs, leftovers, quality) {
					return pairs, leftovers, nil
				}
			}
		}

		if !quality.BeMorePermissive() {
			return nil, nil, errBracketExhausted
		}
	}
}

// remainder pairs residents left over by the moved down players into
// exactly pairs pairs, with limbo moving down alongside its leftovers.
func (b *Bracket) remainder(residents []*Player, pairs int,
	limbo []*Player) *bracketResult {

	key := playerSetKey(residents) + "|" + playerSetKey(limbo)
	if res, ok := b.remainders[key]; ok {
		return res
	}

	rb := newBracket(residents, b.budget)
	rb.SetRequiredDownfloats(len(residents) - 2*pairs)
	var res *bracketResult
	if rb.NumberOfRequiredPairs() != pairs {
		res = &bracketResult{err: errBracketExhausted}
	} else {
		outer := b.calc.DownfloatPermit()
		rb.AddPermitRule(func(leftovers []*Player) bool {
			all := append(append([]*Player(nil), limbo...), leftovers...)
			return outer.Allows(all)
		})
		res = rb.solve()
	}
	b.remainders[key] = res

	return res
}

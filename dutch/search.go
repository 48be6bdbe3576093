/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package dutch

// exchanges produces the S1/S2 splits of a bracket, starting with the
// original split and continuing with exchanges of growing size in
// PlayersDifference order. Splits are given as bracket sequence numbers.
type exchanges struct {
	s1      []int
	s2      []int
	size    int
	list    []PlayersDifference
	pos     int
	started bool
}

func newExchanges(s1 []int, s2 []int) *exchanges {
	return &exchanges{s1: s1, s2: s2}
}

func (e *exchanges) next() ([]int, []int, bool) {
	if !e.started {
		e.started = true
		return e.s1, e.s2, true
	}

	for e.pos >= len(e.list) {
		e.size++
		if e.size > min(len(e.s1), len(e.s2)) {
			return nil, nil, false
		}
		e.list = exchangesOfSize(e.s1, e.s2, e.size)
		e.pos = 0
	}
	d := e.list[e.pos]
	e.pos++
	s1, s2 := d.apply(e.s1, e.s2)

	return s1, s2, true
}

// transpositions enumerates the ways of pairing every S1 player with a
// distinct S2 player, S1 in order and each S1 player trying S2 in order,
// which visits S2 permutations lexicographically. The S2 players left
// over are the downfloaters of the candidate.
type transpositions struct {
	s1         []*Player
	s2         []*Player
	compatible compatibility
	quality    *QualityCriteria
	budget     *budget

	choice  []int
	used    []bool
	acc     []Violations
	depth   int
	started bool
	done    bool
}

func newTranspositions(s1 []*Player, s2 []*Player, compatible compatibility,
	quality *QualityCriteria, b *budget) *transpositions {

	return &transpositions{
		s1:         s1,
		s2:         s2,
		compatible: compatible,
		quality:    quality,
		budget:     b,
		choice:     make([]int, len(s1)),
		used:       make([]bool, len(s2)),
		acc:        make([]Violations, len(s1)+1),
	}
}

// admit checks whether s1[depth] may meet s2[j] given the choices made
// for the earlier S1 players.
func (t *transpositions) admit(j int) bool {
	a, b := t.s1[t.depth], t.s2[j]
	if !t.compatible(a, b) {
		return false
	}

	v := t.acc[t.depth]
	v.addPair(NewPair(a, b))
	if t.quality != nil {
		if c, exceeded := t.quality.FirstExceeded(v); exceeded {
			t.quality.block(c)
			return false
		}
	}
	t.acc[t.depth+1] = v

	return true
}

// next advances to the following complete assignment and reports false
// once the search space is exhausted.
func (t *transpositions) next() (bool, error) {
	if t.done {
		return false, nil
	}
	if len(t.s1) == 0 {
		t.done = true
		return true, nil
	}
	if len(t.s2) < len(t.s1) {
		t.done = true
		return false, nil
	}

	if !t.started {
		t.started = true
		t.depth = 0
		t.choice[0] = -1
	} else {
		t.depth = len(t.s1) - 1
		t.used[t.choice[t.depth]] = false
	}

	for t.depth >= 0 {
		if err := t.budget.spend(); err != nil {
			return false, err
		}

		j := t.choice[t.depth] + 1
		for ; j < len(t.s2); j++ {
			if !t.used[j] && t.admit(j) {
				break
			}
		}
		if j >= len(t.s2) {
			t.choice[t.depth] = -1
			t.depth--
			if t.depth >= 0 {
				t.used[t.choice[t.depth]] = false
			}
			continue
		}

		t.choice[t.depth] = j
		t.used[j] = true
		if t.depth == len(t.s1)-1 {
			return true, nil
		}
		t.depth++
		t.choice[t.depth] = -1
	}
	t.done = true

	return false, nil
}

func (t *transpositions) pairs() []Pair {
	ret := make([]Pair, len(t.s1))
	for i, a := range t.s1 {
		ret[i] = NewPair(a, t.s2[t.choice[i]])
	}

	return ret
}

func (t *transpositions) leftovers() []*Player {
	var ret []*Player
	for j, p := range t.s2 {
		if !t.used[j] {
			ret = append(ret, p)
		}
	}

	return ret
}

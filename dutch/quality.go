/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package dutch

import (
	"fmt"
	"strings"
)

// Criterion is one of the ordered quality criteria, most important first.
type Criterion int

const (
	HighColourDifference Criterion = iota
	SameColourThreeTimes
	ColourPreferenceViolation
	StrongColourPreferenceViolation
	RepeatedDownfloat
	RepeatedUpfloat
	RepeatedDownfloatTwoRoundsAgo
	RepeatedUpfloatTwoRoundsAgo
	numCriteria
)

var criterionNames = [numCriteria]string{
	"C.8", "C.9", "C.10", "C.11", "C.12", "C.13", "C.14", "C.15",
}

func (c Criterion) String() string {
	if c < 0 || c >= numCriteria {
		return fmt.Sprintf("Criterion(%d)", int(c))
	}
	return criterionNames[c]
}

// Violations counts failures per criterion.
type Violations [numCriteria]int

func (v Violations) String() string {
	parts := make([]string, 0, numCriteria)
	for c := Criterion(0); c < numCriteria; c++ {
		parts = append(parts, fmt.Sprintf("%v=%v", c, v[c]))
	}

	return strings.Join(parts, " ")
}

func (v *Violations) addPair(p Pair) {
	if p.sameAbsoluteHighDifference() {
		v[HighColourDifference]++
	}
	if p.sameColourThreeTimes() {
		v[SameColourThreeTimes]++
	}
	if p.samePreference() {
		v[ColourPreferenceViolation]++
	}
	if p.sameStrongPreference() {
		v[StrongColourPreferenceViolation]++
	}
	if up := p.upfloater(); up != nil {
		if up.AscendedLastRound() {
			v[RepeatedUpfloat]++
		}
		if up.AscendedTwoRoundsAgo() {
			v[RepeatedUpfloatTwoRoundsAgo]++
		}
	}
}

func (v *Violations) addLeftovers(leftovers []*Player) {
	for _, p := range leftovers {
		if p.DescendedLastRound() {
			v[RepeatedDownfloat]++
		}
		if p.DescendedTwoRoundsAgo() {
			v[RepeatedDownfloatTwoRoundsAgo]++
		}
	}
}

func evaluate(pairs []Pair, leftovers []*Player) Violations {
	var v Violations
	for _, p := range pairs {
		v.addPair(p)
	}
	v.addLeftovers(leftovers)

	return v
}

// QualityCriteria holds how many failures of each criterion a bracket
// currently tolerates and relaxes them when no candidate passes.
type QualityCriteria struct {
	initial Violations
	allowed Violations

	relaxed    Criterion
	hasRelaxed bool
	blocking   [numCriteria]bool
}

// NewQualityCriteria starts from the lower bounds the calculator proves,
// with residents being the players native to the bracket.
func NewQualityCriteria(calc *BestQualityCalculator,
	residents []*Player) *QualityCriteria {

	var initial Violations
	initial[ColourPreferenceViolation] = calc.ColourViolations()
	initial[StrongColourPreferenceViolation] = calc.StrongColourViolations()

	fresh := 0
	for _, p := range residents {
		if !p.DescendedLastRound() {
			fresh++
		}
	}
	initial[RepeatedDownfloat] = max(calc.RequiredDownfloats()-fresh, 0)

	return &QualityCriteria{initial: initial, allowed: initial}
}

func (q *QualityCriteria) Allowed() Violations {
	return q.allowed
}

func (q *QualityCriteria) Initial() Violations {
	return q.initial
}

// FirstExceeded returns the most important criterion over its allowance.
func (q *QualityCriteria) FirstExceeded(v Violations) (Criterion, bool) {
	for c := Criterion(0); c < numCriteria; c++ {
		if v[c] > q.allowed[c] {
			return c, true
		}
	}

	return 0, false
}

func (q *QualityCriteria) Accepts(v Violations) bool {
	_, exceeded := q.FirstExceeded(v)
	return !exceeded
}

// Reject records every criterion v exceeds as blocking.
func (q *QualityCriteria) Reject(v Violations) {
	for c := Criterion(0); c < numCriteria; c++ {
		if v[c] > q.allowed[c] {
			q.blocking[c] = true
		}
	}
}

func (q *QualityCriteria) block(c Criterion) {
	q.blocking[c] = true
}

// BeMorePermissive tolerates one more failure of the least important
// criterion that blocked a candidate since the last call. Relaxing a
// criterion more important than the previously relaxed one restores the
// less important allowances, so allowances are explored in lexicographic
// order. It returns false when no criterion blocked anything.
func (q *QualityCriteria) BeMorePermissive() bool {
	relevant := Criterion(-1)
	for c := numCriteria - 1; c >= 0; c-- {
		if q.blocking[c] {
			relevant = c
			break
		}
	}
	q.blocking = [numCriteria]bool{}
	if relevant < 0 {
		return false
	}

	if q.hasRelaxed && relevant < q.relaxed {
		for c := relevant + 1; c < numCriteria; c++ {
			q.allowed[c] = q.initial[c]
		}
	}
	q.allowed[relevant]++
	q.relaxed = relevant
	q.hasRelaxed = true

	return true
}

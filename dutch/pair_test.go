/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package dutch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPairOrdering(t *testing.T) {
	players := newFixture(1, 3).points(1, 3).build()
	p := NewPair(players[0], players[2])

	assert.Equal(t, [2]int{3, 1}, p.Numbers())
	assert.True(t, p.Heterogeneous())
	assert.True(t, p.Includes(players[0]))
	assert.False(t, p.Includes(players[1]))
	assert.True(t, p.Equal(NewPair(players[2], players[0])))
	assert.Equal(t, 1, p.upfloater().Number)
	assert.True(t, p.Less(NewPair(players[0], players[1])))
}

func TestPairAllocate(t *testing.T) {
	tests := []struct {
		name    string
		first   []Colour
		second  []Colour
		initial Colour
		white   int
	}{
		{name: "no history, odd number", initial: White, white: 1},
		{name: "no history, black first", initial: Black, white: 2},
		{
			name:   "both preferences met",
			first:  []Colour{Black},
			second: []Colour{White},
			white:  1,
		},
		{
			name:   "only the second has a preference",
			second: []Colour{Black},
			white:  2,
		},
		{
			name:   "only the first has a preference",
			first:  []Colour{White},
			white:  2,
		},
		{
			name:   "stronger preference wins",
			first:  []Colour{Black},
			second: []Colour{White, Black},
			white:  1,
		},
		{
			name:   "second has the stronger preference",
			first:  []Colour{Black, White},
			second: []Colour{White},
			white:  1,
		},
		{
			name:   "absolute beats strong",
			first:  []Colour{Black},
			second: []Colour{Black, Black},
			white:  2,
		},
		{
			name:   "equal preferences alternate",
			first:  []Colour{White, Black, Black, White},
			second: []Colour{Black, White, Black, White},
			white:  1,
		},
		{
			name:   "equal histories favour the higher ranked",
			first:  []Colour{White, Black},
			second: []Colour{White, Black},
			white:  1,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			players := newFixture(1, 2).colours(1, tc.first...).
				colours(2, tc.second...).build()
			white, black := NewPair(players[0], players[1]).Allocate(tc.initial)

			assert.Equal(t, tc.white, white.Number)
			assert.NotEqual(t, white.Number, black.Number)
		})
	}
}

func TestPairColourCriteria(t *testing.T) {
	players := newFixture(1, 4).colours(1, White, White).
		colours(2, Black, White, White).colours(3, White, Black).
		colours(4, Black, White).build()

	p := NewPair(players[0], players[1])
	assert.True(t, p.samePreference())
	assert.True(t, p.sameStrongPreference())
	assert.True(t, p.sameColourThreeTimes())
	assert.False(t, p.sameAbsoluteHighDifference())

	q := NewPair(players[2], players[3])
	assert.False(t, q.samePreference())

	var v Violations
	v.addPair(p)
	v.addPair(q)
	assert.Equal(t, 1, v[ColourPreferenceViolation])
	assert.Equal(t, 1, v[StrongColourPreferenceViolation])
	assert.Equal(t, 1, v[SameColourThreeTimes])
	assert.Equal(t, 0, v[HighColourDifference])
}

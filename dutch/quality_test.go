/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package dutch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQualityCriteriaBaseline(t *testing.T) {
	f := newFixture(1, 4)
	for n := 1; n <= 4; n++ {
		f.colours(n, Black)
	}
	players := f.build()

	q := NewQualityCriteria(NewBestQualityCalculator(players), players)
	initial := q.Initial()
	assert.Equal(t, 2, initial[ColourPreferenceViolation])
	assert.Equal(t, 2, initial[StrongColourPreferenceViolation])
	assert.Equal(t, 0, initial[RepeatedDownfloat])
	assert.Equal(t, initial, q.Allowed())
}

func TestQualityCriteriaDownfloatBaseline(t *testing.T) {
	f := newFixture(1, 3)
	for n := 1; n <= 3; n++ {
		f.floats(n, FloatDown)
	}
	players := f.build()

	q := NewQualityCriteria(NewBestQualityCalculator(players), players)
	assert.Equal(t, 1, q.Initial()[RepeatedDownfloat])
}

func TestQualityCriteriaRelaxation(t *testing.T) {
	q := &QualityCriteria{}

	var v Violations
	v[RepeatedDownfloat] = 1
	v[RepeatedDownfloatTwoRoundsAgo] = 1
	require.False(t, q.Accepts(v))
	c, exceeded := q.FirstExceeded(v)
	require.True(t, exceeded)
	assert.Equal(t, RepeatedDownfloat, c)

	q.Reject(v)
	require.True(t, q.BeMorePermissive())
	assert.Equal(t, 1, q.Allowed()[RepeatedDownfloatTwoRoundsAgo])
	assert.Equal(t, 0, q.Allowed()[RepeatedDownfloat])

	q.block(RepeatedDownfloat)
	require.True(t, q.BeMorePermissive())
	assert.Equal(t, 1, q.Allowed()[RepeatedDownfloat])
	assert.Equal(t, 0, q.Allowed()[RepeatedDownfloatTwoRoundsAgo])

	q.block(RepeatedDownfloatTwoRoundsAgo)
	require.True(t, q.BeMorePermissive())
	assert.True(t, q.Accepts(v))

	assert.False(t, q.BeMorePermissive())
}

func TestCriterionNames(t *testing.T) {
	assert.Equal(t, "C.8", HighColourDifference.String())
	assert.Equal(t, "C.15", RepeatedUpfloatTwoRoundsAgo.String())

	var v Violations
	v[RepeatedUpfloat] = 2
	assert.Contains(t, v.String(), "C.13=2")
}

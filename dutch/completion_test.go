/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package dutch

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompletionIncompatibilities(t *testing.T) {
	tests := []struct {
		name    string
		fixture *fixture
		want    int
	}{
		{name: "no history", fixture: newFixture(1, 10), want: 0},
		{name: "odd pool", fixture: newFixture(1, 9), want: 1},
		{
			name:    "one player met everybody",
			fixture: newFixture(1, 10).played(1, span(2, 10)...),
			want:    2,
		},
		{
			name: "two players with one possible opponent",
			fixture: newFixture(1, 10).played(1, span(2, 9)...).
				played(2, span(3, 9)...),
			want: 2,
		},
		{
			name:    "four players with one possible opponent",
			fixture: fourRestricted(),
			want:    4,
		},
		{
			name:    "pair already met",
			fixture: newFixture(1, 2).played(1, 2),
			want:    2,
		},
		{
			name: "isolated triangle",
			fixture: newFixture(1, 6).played(1, 4, 5, 6).played(2, 4, 5, 6).
				played(3, 4, 5, 6),
			want: 2,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := NewCompletion(tc.fixture.build(), nil)
			assert.Equal(t, tc.want, c.Incompatibilities())
			assert.Equal(t, tc.want < 2, c.AllPlayersCanBePaired())
		})
	}
}

// maxMatching finds the size of a maximum matching by exhaustive search.
func maxMatching(players []*Player) int {
	if len(players) < 2 {
		return 0
	}
	first, rest := players[0], players[1:]

	best := maxMatching(rest)
	for i, q := range rest {
		if !first.CompatibleWith(q) {
			continue
		}
		others := append(append([]*Player(nil), rest[:i]...), rest[i+1:]...)
		best = max(best, 1+maxMatching(others))
	}

	return best
}

// maxCrossMatching finds the size of a maximum matching between players
// and opponents by exhaustive search.
func maxCrossMatching(players []*Player, opponents []*Player) int {
	if len(players) == 0 {
		return 0
	}
	first, rest := players[0], players[1:]

	best := maxCrossMatching(rest, opponents)
	for i, q := range opponents {
		if !first.CompatibleWith(q) {
			continue
		}
		others := append(append([]*Player(nil), opponents[:i]...),
			opponents[i+1:]...)
		best = max(best, 1+maxCrossMatching(rest, others))
	}

	return best
}

func randomHistory(rng *rand.Rand, n int, density int) []*Player {
	f := newFixture(1, n)
	for a := 1; a <= n; a++ {
		for b := a + 1; b <= n; b++ {
			if rng.Intn(density) == 0 {
				f.played(a, b)
			}
		}
	}

	return f.build()
}

func TestCompletionMatchesExhaustiveSearch(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for iter := 0; iter < 300; iter++ {
		n := 2 + rng.Intn(10)
		players := randomHistory(rng, n, 1+rng.Intn(4))

		c := NewCompletion(players, nil)
		require.NoError(t, c.Err())
		assert.Equal(t, n-2*maxMatching(players), c.Incompatibilities(),
			"iteration %v", iter)

		split := rng.Intn(n)
		mdps, residents := players[:split], players[split:]
		c = NewCompletion(mdps, residents)
		assert.Equal(t, maxCrossMatching(mdps, residents), c.Compatibilities(),
			"iteration %v split %v", iter, split)
	}
}

// byeByExhaustiveSearch reports whether some player without a bye can
// sit out with the rest pairing completely.
func byeByExhaustiveSearch(players []*Player) bool {
	if len(players)%2 == 0 {
		return true
	}
	for i, p := range players {
		if p.HadBye() {
			continue
		}
		rest := append(append([]*Player(nil), players[:i]...), players[i+1:]...)
		if 2*maxMatching(rest) == len(rest) {
			return true
		}
	}

	return false
}

func TestCompletionByeMatchesExhaustiveSearch(t *testing.T) {
	rng := rand.New(rand.NewSource(11))

	for iter := 0; iter < 200; iter++ {
		n := 3 + 2*rng.Intn(4)
		f := newFixture(1, n)
		for a := 1; a <= n; a++ {
			for b := a + 1; b <= n; b++ {
				if rng.Intn(3) == 0 {
					f.played(a, b)
				}
			}
			if rng.Intn(2) == 0 {
				f.hadBye(a)
			}
		}
		players := f.build()

		assert.Equal(t, byeByExhaustiveSearch(players),
			NewCompletion(players, nil).ByeCanBeSelected(), "iteration %v", iter)
	}
}

// colourSplit returns n players where the first half last had white and
// the second half last had black.
func colourSplit(n int) *fixture {
	f := newFixture(1, n)
	for i := 1; i <= n; i++ {
		if i <= n/2 {
			f.colours(i, White)
		} else {
			f.colours(i, Black)
		}
	}

	return f
}

func TestColourPossiblePairsLargeField(t *testing.T) {
	players := colourSplit(80).build()
	assert.Equal(t, 40, NewColourPossiblePairs(players).Count())
	assert.Equal(t, 40, NewPossiblePairs(players).Count())

	// 1 to 30 met every black preferrer but 80
	f := colourSplit(80)
	for a := 1; a <= 30; a++ {
		f.played(a, span(41, 79)...)
	}
	players = f.build()
	assert.Equal(t, 11, NewColourPossiblePairs(players).Count())
	assert.Equal(t, 40, NewPossiblePairs(players).Count())
}

func TestCompletionSearchBudget(t *testing.T) {
	players := newFixture(1, 81).build()

	c := newCompletion(players, nil, defaultCompatibility,
		newBudget(context.Background(), 1))
	assert.ErrorIs(t, c.Err(), ErrSearchBudget)
	assert.ErrorIs(t, c.Err(), ErrNoPairing)

	c = newCompletion(players, nil, defaultCompatibility,
		newBudget(context.Background(), 0))
	require.NoError(t, c.Err())
	assert.Equal(t, 1, c.Incompatibilities())
}

func TestBudgetStaysSpent(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	b := newBudget(ctx, 0)
	var err error
	for i := 0; i < budgetCtxCheckInterval && err == nil; i++ {
		err = b.spend()
	}
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, b.spend(), context.Canceled)
	assert.ErrorIs(t, b.Err(), context.Canceled)

	var unbounded *budget
	assert.NoError(t, unbounded.spend())
	assert.NoError(t, unbounded.Err())
}

func TestCompletionAgainstOpponents(t *testing.T) {
	players := newFixture(1, 6).played(4, 1, 2, 3).played(5, 1, 2, 3).build()
	mdps, residents := players[:3], players[3:]

	c := NewCompletion(mdps, residents)
	assert.Equal(t, 2, c.Incompatibilities())
	assert.Equal(t, 1, c.Compatibilities())
}

func TestCompletionByeCanBeSelected(t *testing.T) {
	players := newFixture(1, 3).hadBye(1, 2, 3).build()
	c := NewCompletion(players, nil)
	assert.True(t, c.AllPlayersCanBePaired())
	assert.False(t, c.ByeCanBeSelected())
	assert.False(t, c.OK())

	players = newFixture(1, 3).hadBye(1, 2).build()
	assert.True(t, NewCompletion(players, nil).OK())

	players = newFixture(1, 3).hadBye(1, 2).played(1, 2).build()
	assert.False(t, NewCompletion(players, nil).ByeCanBeSelected())
}

func TestCompletionRequiredMovedDownPlayers(t *testing.T) {
	tests := []struct {
		name    string
		fixture *fixture
		want    int
	}{
		{name: "pairable", fixture: newFixture(1, 4), want: 0},
		{name: "pair already met", fixture: newFixture(1, 2).played(1, 2), want: 1},
		{
			name:    "odd pool already met",
			fixture: newFixture(1, 3).played(1, 2, 3).played(2, 3),
			want:    2,
		},
		{
			name:    "everybody had a bye",
			fixture: newFixture(1, 3).hadBye(1, 2, 3),
			want:    1,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := NewCompletion(tc.fixture.build(), nil)
			assert.Equal(t, tc.want, c.NumberOfRequiredMDPs())
		})
	}
}

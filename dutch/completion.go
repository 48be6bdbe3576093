/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package dutch

type compatibility func(a *Player, b *Player) bool

func defaultCompatibility(a *Player, b *Player) bool {
	return a.CompatibleWith(b)
}

// Completion decides whether a set of players can be paired, either
// among themselves or against a separate pool of opponents, from a
// maximum matching of their compatibility graph.
type Completion struct {
	players    []*Player
	opponents  []*Player
	samePool   bool
	compatible compatibility
	budget     *budget

	m        *matching
	incompat int
	err      error
}

// NewCompletion checks players against opponents. A nil opponents slice
// pairs the players among themselves.
func NewCompletion(players []*Player, opponents []*Player) *Completion {
	return newCompletion(players, opponents, defaultCompatibility, nil)
}

func newCompletion(players []*Player, opponents []*Player,
	compatible compatibility, b *budget) *Completion {

	c := &Completion{
		players:    players,
		opponents:  opponents,
		compatible: compatible,
		budget:     b,
	}
	if opponents == nil {
		c.opponents = players
		c.samePool = true
	}

	return c
}

// Err returns the budget error that cut the matching short, if any. The
// counts of an interrupted Completion are not to be trusted.
func (c *Completion) Err() error {
	c.matching()
	return c.err
}

// graph builds the compatibility graph. In the same pool vertex i is
// players[i]; otherwise the opponents follow the players.
func (c *Completion) graph() [][]int {
	if c.samePool {
		adj := make([][]int, len(c.players))
		for i, p := range c.players {
			for j := i + 1; j < len(c.players); j++ {
				if c.compatible(p, c.players[j]) {
					adj[i] = append(adj[i], j)
					adj[j] = append(adj[j], i)
				}
			}
		}
		return adj
	}

	np := len(c.players)
	adj := make([][]int, np+len(c.opponents))
	for i, p := range c.players {
		for j, q := range c.opponents {
			if p != q && c.compatible(p, q) {
				adj[i] = append(adj[i], np+j)
				adj[np+j] = append(adj[np+j], i)
			}
		}
	}

	return adj
}

func (c *Completion) matching() *matching {
	if c.m == nil {
		c.m = newMatching(c.graph(), c.budget)
		c.err = c.m.maximum()
		if c.samePool {
			c.incompat = len(c.players) - 2*c.m.size()
		} else {
			c.incompat = len(c.players) - c.m.size()
		}
	}

	return c.m
}

// Incompatibilities returns how many players must stay unpaired. In an
// odd pool the player left over is counted.
func (c *Completion) Incompatibilities() int {
	c.matching()
	return c.incompat
}

func (c *Completion) AllPlayersCanBePaired() bool {
	return c.Incompatibilities() < 2
}

// ByeCanBeSelected holds when the pool is even, or when some player who
// has not had a bye can sit out leaving everybody else paired.
func (c *Completion) ByeCanBeSelected() bool {
	if len(c.players)%2 == 0 {
		return true
	}
	m := c.matching()
	if c.err != nil || c.Incompatibilities() != 1 {
		return false
	}

	for v, p := range c.players {
		if p.HadBye() {
			continue
		}
		w := m.match[v]
		if w < 0 {
			return true
		}

		// the rest pairs completely iff the partner left behind by v
		// reaches the exposed player along an augmenting path
		trial := m.clone()
		trial.match[v], trial.match[w] = -1, -1
		trial.removed[v] = true
		ok, err := trial.augment(w)
		if err != nil {
			c.err = err
			return false
		}
		if ok {
			return true
		}
	}

	return false
}

func (c *Completion) OK() bool {
	return c.AllPlayersCanBePaired() && c.ByeCanBeSelected()
}

// Compatibilities is the size of a maximum matching.
func (c *Completion) Compatibilities() int {
	if c.samePool {
		return (len(c.players) - c.Incompatibilities()) / 2
	}

	return len(c.players) - c.Incompatibilities()
}

// NumberOfRequiredMDPs returns how many players compatible with everybody
// have to join the pool before it becomes pairable.
func (c *Completion) NumberOfRequiredMDPs() int {
	// each extra player pairs at most one of the players left out
	from := max(c.Incompatibilities()-1, 0)
	for extra := from; extra <= len(c.players)+1; extra++ {
		pool := append([]*Player(nil), c.players...)
		for i := 0; i < extra; i++ {
			pool = append(pool, NewPlayer(-(i + 1)))
		}
		pc := newCompletion(pool, nil, c.compatible, c.budget)
		if pc.OK() {
			return extra
		}
		if pc.err != nil {
			c.err = pc.err
			break
		}
	}

	return len(c.players) + 1
}

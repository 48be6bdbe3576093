/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package dutch

// matching is a maximum cardinality matching of a general graph, grown
// with Edmonds' blossom algorithm. Vertices are indices; match[v] is the
// partner of v or -1.
type matching struct {
	adj     [][]int
	match   []int
	removed []bool
	budget  *budget

	parent  []int
	base    []int
	used    []bool
	blossom []bool
	queue   []int
}

func newMatching(adj [][]int, b *budget) *matching {
	n := len(adj)
	m := &matching{
		adj:     adj,
		match:   make([]int, n),
		removed: make([]bool, n),
		budget:  b,
		parent:  make([]int, n),
		base:    make([]int, n),
		used:    make([]bool, n),
		blossom: make([]bool, n),
	}
	for i := range m.match {
		m.match[i] = -1
	}

	return m
}

// clone copies the matching state; the graph is shared.
func (m *matching) clone() *matching {
	c := newMatching(m.adj, m.budget)
	copy(c.match, m.match)
	copy(c.removed, m.removed)

	return c
}

// maximum grows the matching until no augmenting path is left.
func (m *matching) maximum() error {
	for v, edges := range m.adj {
		if m.match[v] >= 0 || m.removed[v] {
			continue
		}
		for _, to := range edges {
			if m.match[to] < 0 && !m.removed[to] {
				m.match[v] = to
				m.match[to] = v
				break
			}
		}
	}

	// a vertex that cannot be augmented now never can be later
	for v := range m.adj {
		if m.match[v] >= 0 || m.removed[v] {
			continue
		}
		if _, err := m.augment(v); err != nil {
			return err
		}
	}

	return nil
}

func (m *matching) size() int {
	n := 0
	for v, w := range m.match {
		if w > v {
			n++
		}
	}

	return n
}

// augment looks for an augmenting path from the exposed vertex root and
// flips it when found.
func (m *matching) augment(root int) (bool, error) {
	v, err := m.findPath(root)
	if err != nil || v < 0 {
		return false, err
	}
	for v >= 0 {
		pv := m.parent[v]
		next := m.match[pv]
		m.match[v] = pv
		m.match[pv] = v
		v = next
	}

	return true, nil
}

func (m *matching) lca(a int, b int) int {
	seen := make([]bool, len(m.adj))
	for {
		a = m.base[a]
		seen[a] = true
		if m.match[a] < 0 {
			break
		}
		a = m.parent[m.match[a]]
	}
	for {
		b = m.base[b]
		if seen[b] {
			return b
		}
		b = m.parent[m.match[b]]
	}
}

func (m *matching) markPath(v int, b int, child int) {
	for m.base[v] != b {
		m.blossom[m.base[v]] = true
		m.blossom[m.base[m.match[v]]] = true
		m.parent[v] = child
		child = m.match[v]
		v = m.parent[m.match[v]]
	}
}

// findPath grows an alternating tree from root and returns the exposed
// vertex ending an augmenting path, or -1.
func (m *matching) findPath(root int) (int, error) {
	for i := range m.adj {
		m.used[i] = false
		m.parent[i] = -1
		m.base[i] = i
	}
	m.used[root] = true
	m.queue = append(m.queue[:0], root)

	for head := 0; head < len(m.queue); head++ {
		if err := m.budget.spend(); err != nil {
			return -1, err
		}

		v := m.queue[head]
		for _, to := range m.adj[v] {
			if m.removed[to] || m.base[v] == m.base[to] || m.match[v] == to {
				continue
			}
			if to == root || m.match[to] >= 0 && m.parent[m.match[to]] >= 0 {
				cur := m.lca(v, to)
				for i := range m.blossom {
					m.blossom[i] = false
				}
				m.markPath(v, cur, to)
				m.markPath(to, cur, v)
				for i := range m.adj {
					if !m.blossom[m.base[i]] {
						continue
					}
					m.base[i] = cur
					if !m.used[i] {
						m.used[i] = true
						m.queue = append(m.queue, i)
					}
				}
				continue
			}
			if m.parent[to] < 0 {
				m.parent[to] = v
				if m.match[to] < 0 {
					return to, nil
				}
				m.used[m.match[to]] = true
				m.queue = append(m.queue, m.match[to])
			}
		}
	}

	return -1, nil
}

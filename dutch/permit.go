/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package dutch

// PermitRule accepts or rejects a set of players leaving a bracket.
type PermitRule func(leftovers []*Player) bool

// DownfloatPermit decides which sets of players may be moved down out of
// a bracket.
type DownfloatPermit struct {
	size  int
	rules []PermitRule
	cache map[string]bool
}

func newDownfloatPermit(size int) *DownfloatPermit {
	return &DownfloatPermit{
		size:  size,
		cache: make(map[string]bool),
	}
}

func (dp *DownfloatPermit) Size() int {
	return dp.size
}

func (dp *DownfloatPermit) setSize(size int) {
	if size != dp.size {
		dp.size = size
		dp.cache = make(map[string]bool)
	}
}

func (dp *DownfloatPermit) AddRule(rule PermitRule) {
	dp.rules = append(dp.rules, rule)
	dp.cache = make(map[string]bool)
}

// Allows reports whether leftovers may be moved down. The caller is
// responsible for the rest of the bracket being paired.
func (dp *DownfloatPermit) Allows(leftovers []*Player) bool {
	if len(leftovers) != dp.size {
		return false
	}
	if len(dp.rules) == 0 {
		return true
	}

	key := playerSetKey(leftovers)
	if ok, found := dp.cache[key]; found {
		return ok
	}
	ok := true
	for _, rule := range dp.rules {
		if !rule(leftovers) {
			ok = false
			break
		}
	}
	dp.cache[key] = ok

	return ok
}

/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package dutch

import (
	"sort"
	"strconv"
)

// forEachCombination calls fn with every k-combination of the indices
// 0..n-1 in lexicographic order until fn returns false. The slice passed
// to fn is reused between calls.
func forEachCombination(n int, k int, fn func(idx []int) bool) bool {
	if k < 0 || k > n {
		return true
	}
	idx := make([]int, k)
	for i := range idx {
		idx[i] = i
	}

	for {
		if !fn(idx) {
			return false
		}

		i := k - 1
		for i >= 0 && idx[i] == n-k+i {
			i--
		}
		if i < 0 {
			return true
		}
		idx[i]++
		for j := i + 1; j < k; j++ {
			idx[j] = idx[j-1] + 1
		}
	}
}

func pick[T any](items []T, idx []int) []T {
	ret := make([]T, len(idx))
	for i, j := range idx {
		ret[i] = items[j]
	}

	return ret
}

func without(players []*Player, removed []*Player) []*Player {
	skip := make(map[*Player]bool, len(removed))
	for _, p := range removed {
		skip[p] = true
	}

	ret := make([]*Player, 0, len(players))
	for _, p := range players {
		if !skip[p] {
			ret = append(ret, p)
		}
	}

	return ret
}

func playerSetKey(players []*Player) string {
	nums := playerNumbers(players)
	sort.Ints(nums)

	buf := make([]byte, 0, len(nums)*4)
	for i, n := range nums {
		if i > 0 {
			buf = append(buf, ',')
		}
		buf = strconv.AppendInt(buf, int64(n), 10)
	}

	return string(buf)
}

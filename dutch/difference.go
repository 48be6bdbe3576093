/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package dutch

import (
	"sort"
)

// PlayersDifference describes an exchange between S1 and S2 by the
// bracket sequence numbers of the players leaving each subgroup.
type PlayersDifference struct {
	Out []int // leaving S1
	In  []int // leaving S2
}

func sum(nums []int) int {
	total := 0
	for _, n := range nums {
		total += n
	}

	return total
}

// Difference is the absolute difference between the sums of both sides.
func (d PlayersDifference) Difference() int {
	return abs(sum(d.In) - sum(d.Out))
}

// Compare orders exchanges: smallest difference first, then the exchange
// moving the lowest S1 players, then the one moving the highest S2
// players. It returns a negative number when d comes first.
func (d PlayersDifference) Compare(o PlayersDifference) int {
	if dd, od := d.Difference(), o.Difference(); dd != od {
		return dd - od
	}

	dOut := sortedDesc(d.Out)
	oOut := sortedDesc(o.Out)
	for i := 0; i < len(dOut) && i < len(oOut); i++ {
		if dOut[i] != oOut[i] {
			return oOut[i] - dOut[i]
		}
	}

	dIn := sortedAsc(d.In)
	oIn := sortedAsc(o.In)
	for i := 0; i < len(dIn) && i < len(oIn); i++ {
		if dIn[i] != oIn[i] {
			return dIn[i] - oIn[i]
		}
	}

	return len(d.Out) - len(o.Out)
}

func sortedAsc(nums []int) []int {
	ret := append([]int(nil), nums...)
	sort.Ints(ret)
	return ret
}

func sortedDesc(nums []int) []int {
	ret := append([]int(nil), nums...)
	sort.Sort(sort.Reverse(sort.IntSlice(ret)))
	return ret
}

// exchangesOfSize lists every exchange of size players between s1 and
// s2 (both holding bracket sequence numbers) in PlayersDifference order.
func exchangesOfSize(s1 []int, s2 []int, size int) []PlayersDifference {
	var ret []PlayersDifference
	forEachCombination(len(s1), size, func(outIdx []int) bool {
		out := pick(s1, outIdx)
		forEachCombination(len(s2), size, func(inIdx []int) bool {
			ret = append(ret, PlayersDifference{Out: out, In: pick(s2, inIdx)})
			return true
		})
		return true
	})

	sort.SliceStable(ret, func(i, j int) bool {
		return ret[i].Compare(ret[j]) < 0
	})

	return ret
}

// apply returns the subgroups after the exchange, each in ascending order.
func (d PlayersDifference) apply(s1 []int, s2 []int) ([]int, []int) {
	out := make(map[int]bool, len(d.Out))
	for _, n := range d.Out {
		out[n] = true
	}
	in := make(map[int]bool, len(d.In))
	for _, n := range d.In {
		in[n] = true
	}

	var newS1, newS2 []int
	for _, n := range s1 {
		if !out[n] {
			newS1 = append(newS1, n)
		}
	}
	newS1 = append(newS1, d.In...)
	for _, n := range s2 {
		if !in[n] {
			newS2 = append(newS2, n)
		}
	}
	newS2 = append(newS2, d.Out...)
	sort.Ints(newS1)
	sort.Ints(newS2)

	return newS1, newS2
}

/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package bcc

import (
	"sort"
	"strconv"
	"strings"
)

func entryToPlayer(entry Entry) Player {
	return Player{
		FirstName:       entry.FirstName,
		LastName:        entry.LastName,
		DisplayName:     strings.TrimSpace(entry.FirstName + " " + entry.LastName),
		UscfID:          entry.UscfID,
		PrimaryRating:   strRatingToInt(entry.PrimaryRating),
		SecondaryRating: strRatingToInt(entry.SecondaryRating),
	}
}

// strRatingToInt reads ratings such as "1500" and "559/24" (provisional
// after 24 games); anything else is unrated.
func strRatingToInt(rating string) int {
	rating, _, _ = strings.Cut(rating, "/")
	r, err := strconv.Atoi(strings.TrimSpace(rating))
	if err != nil {
		return 0
	}
	return r
}

// SectionSorter orders sections "Open", "Championship", U<N> sections by
// descending N and then everything else alphabetically.
type SectionSorter []string

func (s SectionSorter) Len() int { return len(s) }

func (s SectionSorter) Swap(i, j int) { s[i], s[j] = s[j], s[i] }

func (s SectionSorter) Less(i, j int) bool {
	a, b := s[i], s[j]
	for _, first := range []string{"Open", "Championship"} {
		if (a == first) != (b == first) {
			return a == first
		}
	}

	aLimit, aOK := underLimit(a)
	bLimit, bOK := underLimit(b)
	switch {
	case aOK && bOK:
		if aLimit != bLimit {
			return aLimit > bLimit
		}
	case aOK != bOK:
		return aOK
	}

	return a < b
}

// underLimit parses the rating limit of sections named like "U1800".
func underLimit(section string) (int, bool) {
	rest, ok := strings.CutPrefix(section, "U")
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(rest)
	return n, err == nil
}

func sortedSectionNames[T any](sections map[string]T) []string {
	names := make([]string, 0, len(sections))
	for name := range sections {
		names = append(names, name)
	}
	sort.Sort(SectionSorter(names))

	return names
}

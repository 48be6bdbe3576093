/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package bcc

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mikeb26/boylstonchessclub-pairings/internal"
)

// BuildPairingsOutput renders the current pairings as one aligned table
// per section.
func BuildPairingsOutput(t *Tournament) string {
	var sb strings.Builder

	sb.WriteString("* Please note that pairings are tentative and subject to change before the start of the round.\n\n")
	if len(t.CurrentPairings) == 0 {
		sb.WriteString("No pairings posted nor predicted\n")
		return sb.String()
	}

	round := t.CurrentPairings[0].RoundNumber
	if t.IsPredicted() {
		sb.WriteString(fmt.Sprintf("Round %v pairings are not yet posted, but here are my predicted round %v pairings:\n\n",
			round, round))
	} else {
		sb.WriteString(fmt.Sprintf("Posted Round %v Pairings:\n\n", round))
	}

	sections := make(map[string][]Pairing)
	for _, p := range t.CurrentPairings {
		sections[p.Section] = append(sections[p.Section], p)
	}
	names := sortedSectionNames(sections)
	for _, sec := range names {
		if len(names) > 1 {
			if sec == "" {
				sec = "UNNAMED"
			}
			sb.WriteString(fmt.Sprintf("%s Section\n", sec))
		}
		writePairingsTable(&sb, sections[sec])
		sb.WriteString("\n")
	}

	return sb.String()
}

func playerCell(p Player) string {
	rating := "unr."
	if p.PrimaryRating > 0 {
		rating = fmt.Sprintf("%d", p.PrimaryRating)
	}
	return fmt.Sprintf("%s(%s %v)", p.DisplayName, rating,
		internal.ScoreToString(p.CurrentScore))
}

func writePairingsTable(sb *strings.Builder, pairings []Pairing) {
	pairings = append([]Pairing(nil), pairings...)
	// byes after the boards
	sort.SliceStable(pairings, func(i, j int) bool {
		a, b := pairings[i], pairings[j]
		if a.IsByePairing != b.IsByePairing {
			return b.IsByePairing
		}
		return a.BoardNumber < b.BoardNumber
	})

	rows := [][3]string{{"Board", "White", "Black"}}
	for _, p := range pairings {
		if p.IsByePairing {
			bye := "BYE(½)"
			if p.WhitePoints != nil {
				bye = fmt.Sprintf("BYE(%v)", internal.ScoreToString(*p.WhitePoints))
			}
			rows = append(rows, [3]string{"n/a", playerCell(p.WhitePlayer), bye})
			continue
		}
		rows = append(rows, [3]string{fmt.Sprintf("%d.", p.BoardNumber),
			playerCell(p.WhitePlayer), playerCell(p.BlackPlayer)})
	}

	var widths [3]int
	for _, r := range rows {
		for i, cell := range r {
			widths[i] = max(widths[i], len([]rune(cell)))
		}
	}
	for _, r := range rows {
		line := ""
		for i, cell := range r {
			line += cell + strings.Repeat(" ", widths[i]-len([]rune(cell)))
			if i < len(r)-1 {
				line += "  "
			}
		}
		sb.WriteString(strings.TrimRight(line, " ") + "\n")
	}
}

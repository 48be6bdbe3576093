/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package bcc

import (
	"math"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/mikeb26/boylstonchessclub-pairings/internal"
)

// parsePlayers reads the entries table: number, name, rating, USCF id.
func parsePlayers(doc *goquery.Document) []Player {
	var players []Player
	doc.Find("table#members tbody tr").Each(func(_ int, s *goquery.Selection) {
		cells := s.Find("td")
		if cells.Length() < 4 {
			return
		}
		p := Player{
			DisplayName: internal.NormalizeName(cellText(cells, 1)),
		}
		p.PairingNumber, _ = strconv.Atoi(cellText(cells, 0))
		p.PrimaryRating = strRatingToInt(cellText(cells, 2))
		p.UscfID, _ = strconv.Atoi(cellText(cells, 3))
		splitDisplayName(&p)

		players = append(players, p)
	})

	return players
}

func cellText(cells *goquery.Selection, i int) string {
	return strings.TrimSpace(cells.Eq(i).Text())
}

func splitDisplayName(p *Player) {
	words := strings.Fields(p.DisplayName)
	if len(words) > 0 {
		p.FirstName = words[0]
	}
	if len(words) > 1 {
		p.LastName = words[len(words)-1]
	}
}

// parsePairings reads every pairings table of the posted pairings page.
// Sections are introduced by h2 headers, by a single h1 when the event has
// one section, or by "Pairings ...: <section>" h3 headers on older pages.
func parsePairings(doc *goquery.Document) []Pairing {
	var pairings []Pairing
	addTable := func(header *goquery.Selection, section string) {
		table := header.NextAllFiltered("table").First()
		table.Find("tr").Each(func(_ int, row *goquery.Selection) {
			if p, ok := parsePairingRow(row, section); ok {
				pairings = append(pairings, p)
			}
		})
	}

	hasSubSections := doc.Find("div#pairings h2").Length() > 0
	doc.Find("div#pairings h1, div#pairings h2").Each(func(_ int, s *goquery.Selection) {
		if goquery.NodeName(s) == "h1" {
			if hasSubSections {
				return
			}
			title := strings.TrimSpace(s.Find("a").Text())
			if title == "" {
				title = strings.TrimSpace(s.Text())
			}
			title = strings.ReplaceAll(title, "Pairings", "")
			addTable(s, strings.Trim(title, " –:\t"))
			return
		}
		addTable(s, strings.TrimSpace(strings.ReplaceAll(s.Text(), "Section", "")))
	})

	doc.Find("h3").Each(func(_ int, s *goquery.Selection) {
		text := strings.TrimSpace(s.Text())
		if !strings.HasPrefix(text, "Pairings") {
			return
		}
		section := text
		if idx := strings.LastIndex(text, ":"); idx >= 0 && idx < len(text)-1 {
			section = strings.TrimSpace(text[idx+1:])
		}
		addTable(s, section)
	})

	// the page does not state the round; nobody can have scored more
	// than the rounds already played
	maxScore := 0.0
	for _, p := range pairings {
		maxScore = max(maxScore, p.WhitePlayer.CurrentScore,
			p.BlackPlayer.CurrentScore)
	}
	for i := range pairings {
		pairings[i].RoundNumber = int(math.Ceil(maxScore)) + 1
	}

	return pairings
}

// parsePairingRow parses "Bd | Res | White | Res | Black" rows; header and
// short rows are skipped.
func parsePairingRow(row *goquery.Selection, section string) (Pairing, bool) {
	cells := row.Find("td")
	if cells.Length() < 5 {
		return Pairing{}, false
	}
	boardText := cellText(cells, 0)
	if strings.EqualFold(boardText, "Bd") {
		return Pairing{}, false
	}

	whiteRes, blackRes := cellText(cells, 1), cellText(cells, 3)
	p := Pairing{
		Section:     section,
		WhitePlayer: parsePlayerRef(cellText(cells, 2)),
		BlackPlayer: parsePlayerRef(cellText(cells, 4)),
	}
	p.BoardNumber, _ = strconv.Atoi(boardText)
	if whiteRes != "" || blackRes != "" {
		p.ResultCode = whiteRes + "-" + blackRes
	}

	// byes are always held by WhitePlayer
	switch {
	case p.BlackPlayer.DisplayName == "BYE" && p.WhitePlayer.DisplayName != "BYE":
		p.IsByePairing = true
		p.BlackPlayer = Player{}
		pts := parsePoints(whiteRes)
		p.WhitePoints = &pts
	case p.WhitePlayer.DisplayName == "BYE" && p.BlackPlayer.DisplayName != "BYE":
		p.IsByePairing = true
		p.WhitePlayer, p.BlackPlayer = p.BlackPlayer, Player{}
		pts := parsePoints(blackRes)
		p.WhitePoints = &pts
	}

	return p, true
}

// parsePoints reads "1", "0.5", "½" and "2½".
func parsePoints(s string) float64 {
	if whole, ok := strings.CutSuffix(s, "½"); ok {
		n, _ := strconv.Atoi(whole)
		return float64(n) + 0.5
	}
	v, _ := strconv.ParseFloat(s, 64)
	return v
}

// parsePlayerRef parses cells such as "12 John Doe (2250 3.0)" or
// "7 Jane Roe (unr. 0.5)".
func parsePlayerRef(text string) Player {
	if strings.EqualFold(text, "BYE") {
		return Player{DisplayName: "BYE"}
	}

	var p Player
	name, details, _ := strings.Cut(text, "(")
	fields := strings.Fields(name)
	if len(fields) > 0 {
		if num, err := strconv.Atoi(fields[0]); err == nil {
			p.PairingNumber = num
			fields = fields[1:]
		}
	}
	p.DisplayName = internal.NormalizeName(strings.Join(fields, " "))
	splitDisplayName(&p)

	details, _, _ = strings.Cut(details, ")")
	parts := strings.Fields(details)
	if len(parts) >= 1 {
		p.PrimaryRating = strRatingToInt(parts[0])
	}
	if len(parts) >= 2 {
		p.CurrentScore = parsePoints(parts[1])
	}

	return p
}

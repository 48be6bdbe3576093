/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package bcc

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

const pairingsPage = `<html><body><div id="pairings">
<h1><a href="/events/7">Summer Swiss Pairings</a></h1>
<h2>Open Section</h2>
<table>
<tr><td>Bd</td><td>Res</td><td>White</td><td>Res</td><td>Black</td></tr>
<tr><td>1</td><td></td><td>3 CARA COLE (1800 2.0)</td><td></td><td>1 Alice Able (2000 1½)</td></tr>
<tr><td>2</td><td>1</td><td>2 Bob Best (1900 1.0)</td><td>0</td><td>4 Ed East (unr. 1.0)</td></tr>
<tr><td></td><td>½</td><td>5 Dan Dole (1700 1.0)</td><td></td><td>BYE</td></tr>
</table>
<h2>U1800 Section</h2>
<p>Round 3</p>
<table>
<tr><td>3</td><td></td><td>6 Fay Fox (1500 0.0)</td><td></td><td>7 Gus Gray (1400 0.0)</td></tr>
</table>
</div></body></html>`

const entriesPage = `<html><body><table id="members"><tbody>
<tr><td>1</td><td>ALICE ABLE</td><td>2000</td><td>12345678</td></tr>
<tr><td>2</td><td>Bob Best</td><td>unr.</td><td>87654321</td></tr>
<tr><td>short row</td></tr>
</tbody></table></body></html>`

func mustDoc(t *testing.T, html string) *goquery.Document {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("unable to parse fixture: %v", err)
	}
	return doc
}

func TestParsePlayerRef(t *testing.T) {
	cases := []struct {
		in   string
		want Player
	}{
		{
			in: "12 John Doe (2250 3.0)",
			want: Player{FirstName: "John", LastName: "Doe", DisplayName: "John Doe",
				PairingNumber: 12, PrimaryRating: 2250, CurrentScore: 3},
		},
		{
			in: "7 JANE ROE (unr. 2½)",
			want: Player{FirstName: "Jane", LastName: "Roe", DisplayName: "Jane Roe",
				PairingNumber: 7, CurrentScore: 2.5},
		},
		{in: "bye", want: Player{DisplayName: "BYE"}},
	}
	for _, c := range cases {
		if got := parsePlayerRef(c.in); got != c.want {
			t.Errorf("parsePlayerRef(%q) got %+v; want %+v", c.in, got, c.want)
		}
	}
}

func TestParsePairings(t *testing.T) {
	pairings := parsePairings(mustDoc(t, pairingsPage))
	if len(pairings) != 4 {
		t.Fatalf("got %v pairings; want 4: %+v", len(pairings), pairings)
	}

	first := pairings[0]
	if first.Section != "Open" || first.BoardNumber != 1 ||
		first.WhitePlayer.DisplayName != "Cara Cole" ||
		first.BlackPlayer.CurrentScore != 1.5 {
		t.Errorf("board 1 got %+v", first)
	}
	if first.RoundNumber != 3 {
		t.Errorf("RoundNumber got %v; want 3", first.RoundNumber)
	}
	if first.ResultCode != "" {
		t.Errorf("unplayed board ResultCode got %q; want empty", first.ResultCode)
	}
	if pairings[1].ResultCode != "1-0" {
		t.Errorf("board 2 ResultCode got %q; want 1-0", pairings[1].ResultCode)
	}

	bye := pairings[2]
	if !bye.IsByePairing || bye.WhitePlayer.DisplayName != "Dan Dole" ||
		bye.WhitePoints == nil || *bye.WhitePoints != 0.5 {
		t.Errorf("bye got %+v", bye)
	}

	if pairings[3].Section != "U1800" || pairings[3].BoardNumber != 3 {
		t.Errorf("U1800 board got %+v", pairings[3])
	}
}

func TestParsePlayers(t *testing.T) {
	players := parsePlayers(mustDoc(t, entriesPage))
	if len(players) != 2 {
		t.Fatalf("got %v players; want 2", len(players))
	}
	if players[0].DisplayName != "Alice Able" || players[0].UscfID != 12345678 ||
		players[0].PrimaryRating != 2000 {
		t.Errorf("player 1 got %+v", players[0])
	}
	if players[1].PrimaryRating != 0 || players[1].LastName != "Best" {
		t.Errorf("player 2 got %+v", players[1])
	}
}

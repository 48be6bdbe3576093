/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package uschess

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mikeb26/boylstonchessclub-pairings/dutch"
)

const ratedEventJSON = `{
	"id": "202506242722",
	"name": "Tuesday Night Swiss",
	"endDate": "2025-06-24",
	"sectionCount": 2,
	"sections": [
		{"id": "a", "number": 1, "name": "Open"},
		{"id": "b", "number": 2, "name": "U1600"}
	]
}`

// Open section after two rounds:
//
//	R1: 1 (w) beat 3, 2 (w) drew 4
//	R2: 2 (w) lost to 1, 4 (w) drew 3
const openStandingsJSON = `{"items": [
	{"ordinal": 1, "memberId": "11111111", "firstName": "RUFUS", "lastName": "BEHR", "score": 2,
	 "ratings": [{"preRating": 1735, "postRating": 1751, "ratingSystem": "R"}, {"preRating": 1650, "postRating": 1660, "ratingSystem": "Q"}],
	 "roundOutcomes": [
		{"roundNumber": 1, "outcome": "Win", "color": "White", "opponentOrdinal": 3},
		{"roundNumber": 2, "outcome": "Win", "color": "Black", "opponentOrdinal": 2}]},
	{"ordinal": 2, "memberId": "22222222", "firstName": "Ann", "lastName": "Lee", "score": 0.5,
	 "ratings": [{"preRating": 1600, "postRating": 1590, "ratingSystem": "R"}],
	 "roundOutcomes": [
		{"roundNumber": 1, "outcome": "Draw", "color": "White", "opponentOrdinal": 4},
		{"roundNumber": 2, "outcome": "Loss", "color": "White", "opponentOrdinal": 1}]},
	{"ordinal": 3, "memberId": "33333333", "firstName": "Cy", "lastName": "Young", "score": 0.5,
	 "ratings": [{"preRating": 1500, "postRating": 1505, "ratingSystem": "R"}],
	 "roundOutcomes": [
		{"roundNumber": 1, "outcome": "Loss", "color": "Black", "opponentOrdinal": 1},
		{"roundNumber": 2, "outcome": "Draw", "color": "Black", "opponentOrdinal": 4}]},
	{"ordinal": 4, "memberId": "not-a-number", "firstName": "Di", "lastName": "Ng", "score": 1,
	 "ratings": [],
	 "roundOutcomes": [
		{"roundNumber": 1, "outcome": "Draw", "color": "Black", "opponentOrdinal": 2},
		{"roundNumber": 2, "outcome": "Draw", "color": "White", "opponentOrdinal": 3}]}
]}`

func newTestClient(t *testing.T, routes map[string]string) *Client {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Accept") != "application/json" {
			t.Errorf("Accept got %q; want application/json", r.Header.Get("Accept"))
		}
		body, ok := routes[r.URL.Path]
		if !ok {
			http.Error(w, "no such thing", http.StatusNotFound)
			return
		}
		io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)

	return NewClientWithHTTP(srv.Client(), srv.URL+"/api/v1/")
}

func TestFetchCrossTables(t *testing.T) {
	client := newTestClient(t, map[string]string{
		"/api/v1/rated-events/202506242722":                       ratedEventJSON,
		"/api/v1/rated-events/202506242722/sections/1/standings": openStandingsJSON,
	})

	tourney, err := client.FetchCrossTables(context.Background(), 202506242722)
	if err != nil {
		t.Fatalf("FetchCrossTables error: %v", err)
	}
	if tourney.Event.Name != "Tuesday Night Swiss" || tourney.Event.EndDate.IsZero() {
		t.Errorf("event got %+v", tourney.Event)
	}
	// U1600 standings are missing and left out
	if tourney.NumSections != 1 {
		t.Fatalf("expected 1 section, got %d", tourney.NumSections)
	}

	xt, err := tourney.Section("open")
	if err != nil {
		t.Fatalf("Section failed: %v", err)
	}
	if _, err := tourney.Section("U1600"); !errors.Is(err, ErrNoCrossTable) {
		t.Errorf("missing section got %v; want ErrNoCrossTable", err)
	}
	if xt.SectionName != "Section Open" || xt.NumRounds != 2 || xt.NumPlayers != 4 {
		t.Errorf("crosstable got %v rounds:%v players:%v", xt.SectionName,
			xt.NumRounds, xt.NumPlayers)
	}

	entry := xt.PlayerEntries[0]
	if entry.PlayerName != "Rufus Behr" || entry.PlayerId != 11111111 {
		t.Errorf("entry got %v %v", entry.PlayerName, entry.PlayerId)
	}
	if entry.PlayerRatingPre != "1735" || entry.PlayerRatingPost != "1751" {
		t.Errorf("ratings got %v->%v; want 1735->1751", entry.PlayerRatingPre,
			entry.PlayerRatingPost)
	}
	r := entry.Results[1]
	if r.Outcome != ResultWin || r.OpponentPairNum != 2 || r.Color != dutch.Black {
		t.Errorf("round 2: expected win against 2 with black, got %+v", r)
	}
	if xt.PlayerEntries[3].PlayerId != 0 || xt.PlayerEntries[3].PlayerRatingPre != "" {
		t.Errorf("unrated entry got %+v", xt.PlayerEntries[3])
	}
}

func TestFetchCrossTablesNoSections(t *testing.T) {
	client := newTestClient(t, map[string]string{
		"/api/v1/rated-events/1": ratedEventJSON,
	})
	if _, err := client.FetchCrossTables(context.Background(), 1); !errors.Is(err, ErrNoCrossTable) {
		t.Errorf("got %v; want ErrNoCrossTable", err)
	}

	if _, err := client.FetchCrossTables(context.Background(), 2); err == nil {
		t.Errorf("expected error for unknown event")
	}
}

func TestFetchCrossTablesCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/v1/rated-events/1" {
			io.WriteString(w, ratedEventJSON)
			return
		}
		cancel()
		<-r.Context().Done()
	}))
	t.Cleanup(srv.Close)
	client := NewClientWithHTTP(srv.Client(), srv.URL+"/api/v1/")

	_, err := client.FetchCrossTables(ctx, 1)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("got %v; want context.Canceled", err)
	}
	if errors.Is(err, ErrNoCrossTable) {
		t.Errorf("cancelled fetch reported as missing sections: %v", err)
	}
}

func TestConvertOutcome(t *testing.T) {
	cases := map[string]Result{
		"Win":           ResultWin,
		"LossForfeit":   ResultLossByForfeit,
		"WinByForfeit":  ResultWinByForfeit,
		"ByeHalf":       ResultHalfBye,
		"Unpaired":      ResultUnplayedGame,
		"SomethingElse": ResultUnknown,
	}
	for in, want := range cases {
		if got := convertOutcome(in); got != want {
			t.Errorf("convertOutcome(%q) got %v; want %v", in, got, want)
		}
	}
}

func TestBuildOneCrossTableOutput(t *testing.T) {
	xt := &CrossTable{
		SectionName: "Section Open",
		NumRounds:   2,
		PlayerEntries: []CrossTableEntry{
			{PairNum: 1, PlayerName: "Rufus Behr", PlayerRatingPre: "1735",
				PlayerRatingPost: "1751", TotalPoints: 1.5,
				Results: []RoundResult{
					{OpponentPairNum: 2, Outcome: ResultWin, Color: dutch.White},
					{Outcome: ResultHalfBye},
				}},
			{PairNum: 2, PlayerName: "Ann Lee", PlayerRatingPre: "1600",
				PlayerRatingPost: "1590", TotalPoints: 1,
				Results: []RoundResult{
					{OpponentPairNum: 1, Outcome: ResultLoss, Color: dutch.Black},
					{Outcome: ResultWinByForfeit},
				}},
		},
	}

	out := BuildOneCrossTableOutput(xt, true)
	want := strings.Join([]string{
		"Section Open",
		"No  Name        Rating      Pts  R1     R2",
		"1.  Rufus Behr  1735->1751  1½   W2(w)  BYE(½)",
		"2.  Ann Lee     1600->1590  1    L1(b)  W*",
		"* indicates game was decided by forfeit",
		"",
		"",
	}, "\n")
	if out != want {
		t.Errorf("got:\n%v\nwant:\n%v", out, want)
	}
}

/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package uschess

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/mikeb26/boylstonchessclub-pairings/dutch"
	"github.com/mikeb26/boylstonchessclub-pairings/internal"
	"golang.org/x/sync/errgroup"
)

var ErrNoCrossTable = errors.New("uschess: no such crosstable")

// Result represents the outcome of a round.
type Result int

const (
	ResultWin Result = iota
	ResultLoss
	ResultDraw
	ResultFullBye
	ResultHalfBye
	ResultLossByForfeit
	ResultWinByForfeit
	ResultUnplayedGame
	ResultUnknown
)

// RoundResult holds the result of a single round for a player.
type RoundResult struct {
	OpponentPairNum int
	Outcome         Result
	Color           dutch.Colour
}

// CrossTableEntry holds the data for one player in the cross table.
type CrossTableEntry struct {
	PairNum          int
	PlayerName       string
	PlayerId         MemID
	PlayerRatingPre  string
	PlayerRatingPost string
	TotalPoints      float64
	Results          []RoundResult
}

type RatingType int

const (
	RatingTypeRegular RatingType = iota
	RatingTypeQuick
	RatingTypeBlitz
)

// CrossTable holds the full cross table data, one per section.
type CrossTable struct {
	SectionName   string
	NumRounds     int
	NumPlayers    int
	RType         RatingType
	PlayerEntries []CrossTableEntry
}

// Tournament encapsulates the overall event and its cross tables.
type Tournament struct {
	Event       Event
	NumSections int

	CrossTables []*CrossTable
}

// Section finds a crosstable by name, ignoring case and the "Section"
// prefix.
func (t *Tournament) Section(name string) (*CrossTable, error) {
	want := strings.ToLower(strings.TrimSpace(name))
	for _, xt := range t.CrossTables {
		got := strings.ToLower(xt.SectionName)
		if got == want || strings.TrimPrefix(got, "section ") == want {
			return xt, nil
		}
	}

	return nil, fmt.Errorf("%w: section %q of event %v", ErrNoCrossTable,
		name, t.Event.ID)
}

type apiRatedEventResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	StartDate    string `json:"startDate"`
	EndDate      string `json:"endDate"`
	SectionCount int    `json:"sectionCount"`
	Sections     []struct {
		ID     string `json:"id"`
		Number int    `json:"number"`
		Name   string `json:"name"`
	} `json:"sections"`
}

type apiStandingsResponse struct {
	Items []apiStandingItem `json:"items"`
}

type apiStandingItem struct {
	Ordinal       int               `json:"ordinal"`
	PairingNumber int               `json:"pairingNumber"`
	MemberID      string            `json:"memberId"`
	FirstName     string            `json:"firstName"`
	LastName      string            `json:"lastName"`
	Score         float64           `json:"score"`
	RoundOutcomes []apiRoundOutcome `json:"roundOutcomes"`
	Ratings       []apiRatingChange `json:"ratings"`
}

type apiRoundOutcome struct {
	RoundNumber           int    `json:"roundNumber"`
	Outcome               string `json:"outcome"`
	Color                 string `json:"color"`
	OpponentOrdinal       int    `json:"opponentOrdinal"`
	OpponentPairingNumber int    `json:"opponentPairingNumber"`
}

type apiRatingChange struct {
	PreRating    int    `json:"preRating"`
	PostRating   int    `json:"postRating"`
	RatingSystem string `json:"ratingSystem"`
}

// maxConcurrentSections bounds the standings requests in flight for one
// event.
const maxConcurrentSections = 4

// FetchCrossTables retrieves a Tournament with all sections' cross tables
// for the given event id. Sections whose standings cannot be fetched are
// left out, unless ctx is done.
func (client *Client) FetchCrossTables(ctx context.Context,
	id EventID) (*Tournament, error) {

	var eventData apiRatedEventResponse
	if err := client.getJSON(ctx, fmt.Sprintf("/rated-events/%v", id),
		&eventData); err != nil {
		return nil, fmt.Errorf("unable to fetch event %v: %w", id, err)
	}

	xts := make([]*CrossTable, len(eventData.Sections))
	grp, gctx := errgroup.WithContext(ctx)
	grp.SetLimit(maxConcurrentSections)
	for i, section := range eventData.Sections {
		grp.Go(func() error {
			var standings apiStandingsResponse
			path := fmt.Sprintf("/rated-events/%v/sections/%d/standings", id,
				section.Number)
			if err := client.getJSON(gctx, path, &standings); err != nil {
				if ctx.Err() != nil {
					return err
				}
				log.Printf("uschess.FetchCrossTables: warning: failed to fetch section %d: %v",
					section.Number, err)
				return nil
			}
			xts[i] = convertStandingsToCrossTable(&standings, section.Name)
			return nil
		})
	}
	if err := grp.Wait(); err != nil {
		return nil, fmt.Errorf("unable to fetch sections of event %v: %w", id,
			err)
	}

	t := &Tournament{
		Event: Event{
			Name: eventData.Name,
			ID:   id,
		},
	}
	for _, xt := range xts {
		if xt != nil {
			t.CrossTables = append(t.CrossTables, xt)
		}
	}
	t.NumSections = len(t.CrossTables)
	if len(eventData.Sections) > 0 && t.NumSections == 0 {
		return nil, fmt.Errorf("%w: no section of event %v could be fetched",
			ErrNoCrossTable, id)
	}

	endDate, err := internal.ParseDateOrZero(eventData.EndDate)
	if err != nil {
		log.Printf("uschess.FetchCrossTables: warning: unable to parse event end date %v: %v",
			eventData.EndDate, err)
	}
	t.Event.EndDate = endDate

	return t, nil
}

// sectionRatingType prefers the regular rating of dual rated sections.
func sectionRatingType(ratings []apiRatingChange) RatingType {
	for _, r := range ratings {
		if r.RatingSystem == "R" || r.RatingSystem == "D" {
			return RatingTypeRegular
		}
	}
	if len(ratings) > 0 {
		switch ratings[0].RatingSystem {
		case "B":
			return RatingTypeBlitz
		case "Q":
			return RatingTypeQuick
		}
	}

	return RatingTypeRegular
}

func (rt RatingType) matches(system string) bool {
	switch rt {
	case RatingTypeBlitz:
		return system == "B"
	case RatingTypeQuick:
		return system == "Q"
	default:
		return system == "R" || system == "D"
	}
}

func ratingString(r int) string {
	if r <= 0 {
		return ""
	}
	return strconv.Itoa(r)
}

func convertStandingsToCrossTable(standings *apiStandingsResponse,
	sectionName string) *CrossTable {

	xt := &CrossTable{
		SectionName: fmt.Sprintf("Section %s", sectionName),
	}
	for i, item := range standings.Items {
		if i == 0 {
			xt.RType = sectionRatingType(item.Ratings)
		}

		entry := CrossTableEntry{
			PairNum:     item.Ordinal,
			PlayerName:  internal.NormalizeName(item.FirstName + " " + item.LastName),
			TotalPoints: item.Score,
		}
		for _, r := range item.Ratings {
			if xt.RType.matches(r.RatingSystem) {
				entry.PlayerRatingPre = ratingString(r.PreRating)
				entry.PlayerRatingPost = ratingString(r.PostRating)
				break
			}
		}
		memberID, err := strconv.Atoi(item.MemberID)
		if err != nil {
			log.Printf("uschess.convert: warning: failed to convert member ID %v to int: %v",
				item.MemberID, err)
		}
		entry.PlayerId = MemID(memberID)

		for _, outcome := range item.RoundOutcomes {
			entry.Results = append(entry.Results, RoundResult{
				OpponentPairNum: outcome.OpponentOrdinal,
				Outcome:         convertOutcome(outcome.Outcome),
				Color:           convertColor(outcome.Color),
			})
		}
		xt.NumRounds = max(xt.NumRounds, len(entry.Results))
		xt.PlayerEntries = append(xt.PlayerEntries, entry)
	}
	xt.NumPlayers = len(xt.PlayerEntries)

	return xt
}

func convertOutcome(outcome string) Result {
	switch outcome {
	case "Win":
		return ResultWin
	case "Loss":
		return ResultLoss
	case "Draw":
		return ResultDraw
	case "ByeFull":
		return ResultFullBye
	case "ByeHalf":
		return ResultHalfBye
	case "LossByForfeit", "LossForfeit":
		return ResultLossByForfeit
	case "WinByForfeit", "WinForfeit":
		return ResultWinByForfeit
	case "Unplayed", "Unpaired":
		return ResultUnplayedGame
	default:
		return ResultUnknown
	}
}

func convertColor(color string) dutch.Colour {
	var c dutch.Colour
	if err := c.UnmarshalText([]byte(color)); err != nil {
		return dutch.NoColour
	}
	return c
}

func resultCell(res RoundResult) (cell string, forfeit bool) {
	colour := ""
	if res.Color != dutch.NoColour {
		colour = fmt.Sprintf("(%c)", res.Color.String()[0])
	}
	switch res.Outcome {
	case ResultWin:
		return fmt.Sprintf("W%d%s", res.OpponentPairNum, colour), false
	case ResultLoss:
		return fmt.Sprintf("L%d%s", res.OpponentPairNum, colour), false
	case ResultDraw:
		return fmt.Sprintf("D%d%s", res.OpponentPairNum, colour), false
	case ResultWinByForfeit:
		return "W*", true
	case ResultLossByForfeit:
		return "L*", true
	case ResultFullBye:
		return "BYE(1)", false
	case ResultHalfBye:
		return "BYE(½)", false
	case ResultUnplayedGame:
		return "BYE(0)", false
	default:
		return "?", false
	}
}

// BuildOneCrossTableOutput renders xt as an aligned table with one column
// per round.
func BuildOneCrossTableOutput(xt *CrossTable, includeSectionHeader bool) string {
	var sb strings.Builder
	if includeSectionHeader {
		sb.WriteString(xt.SectionName + "\n")
	}

	rows := [][]string{{"No", "Name", "Rating", "Pts"}}
	for i := 1; i <= xt.NumRounds; i++ {
		rows[0] = append(rows[0], fmt.Sprintf("R%d", i))
	}
	forfeitFound := false
	for _, e := range xt.PlayerEntries {
		row := []string{
			fmt.Sprintf("%d.", e.PairNum),
			e.PlayerName,
			fmt.Sprintf("%v->%v", e.PlayerRatingPre, e.PlayerRatingPost),
			internal.ScoreToString(e.TotalPoints),
		}
		for _, res := range e.Results {
			cell, forfeit := resultCell(res)
			forfeitFound = forfeitFound || forfeit
			row = append(row, cell)
		}
		rows = append(rows, row)
	}

	writeTable(&sb, rows)
	if forfeitFound {
		sb.WriteString("* indicates game was decided by forfeit\n")
	}
	sb.WriteString("\n")

	return sb.String()
}

// writeTable left aligns every column to its widest cell.
func writeTable(sb *strings.Builder, rows [][]string) {
	var widths []int
	for _, row := range rows {
		for i, cell := range row {
			if i == len(widths) {
				widths = append(widths, 0)
			}
			widths[i] = max(widths[i], len([]rune(cell)))
		}
	}

	for _, row := range rows {
		var line strings.Builder
		for i, cell := range row {
			if i > 0 {
				line.WriteString("  ")
			}
			line.WriteString(cell)
			line.WriteString(strings.Repeat(" ", widths[i]-len([]rune(cell))))
		}
		sb.WriteString(strings.TrimRight(line.String(), " ") + "\n")
	}
}

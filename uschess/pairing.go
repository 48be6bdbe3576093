/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package uschess

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/mikeb26/boylstonchessclub-pairings/dutch"
	"github.com/mikeb26/boylstonchessclub-pairings/internal"
)

var ErrInconsistentCrossTable = errors.New("uschess: inconsistent crosstable")

// PairingPlayers rebuilds every player's game history from the crosstable
// so the section's next round can be paired. Pairing numbers become player
// numbers and floats are derived from the scores before each round.
func (xt *CrossTable) PairingPlayers() ([]*dutch.Player, error) {
	byNum := make(map[int]*CrossTableEntry, len(xt.PlayerEntries))
	players := make([]*dutch.Player, len(xt.PlayerEntries))
	for i := range xt.PlayerEntries {
		e := &xt.PlayerEntries[i]
		if e.PairNum <= 0 || byNum[e.PairNum] != nil {
			return nil, fmt.Errorf("%w: pairing number %v of %v",
				ErrInconsistentCrossTable, e.PairNum, e.PlayerName)
		}
		byNum[e.PairNum] = e

		players[i] = dutch.NewPlayer(e.PairNum)
		players[i].Name = e.PlayerName
		players[i].Rating, _ = strconv.Atoi(e.PlayerRatingPre)
	}

	scores := make(map[int]float64, len(players))
	for round := 0; round < xt.NumRounds; round++ {
		games := make([]dutch.Game, len(players))
		for i, p := range players {
			g, err := roundGame(byNum[p.Number], round, byNum, scores)
			if err != nil {
				return nil, err
			}
			games[i] = g
		}
		// every game of a round is decided on the scores before it
		for i, p := range players {
			p.AddGame(games[i])
			scores[p.Number] += games[i].Points()
		}
	}

	return players, nil
}

func roundGame(e *CrossTableEntry, round int, byNum map[int]*CrossTableEntry,
	scores map[int]float64) (dutch.Game, error) {

	if round >= len(e.Results) {
		return dutch.Game{Outcome: dutch.OutcomeAbsent}, nil
	}
	res := e.Results[round]

	switch res.Outcome {
	case ResultFullBye:
		return dutch.NewByeGame(1), nil
	case ResultHalfBye:
		return dutch.Game{Outcome: dutch.OutcomeHalfBye}, nil
	case ResultWinByForfeit:
		return dutch.Game{Opponent: res.OpponentPairNum,
			Outcome: dutch.OutcomeForfeitWin, Float: dutch.FloatBye}, nil
	case ResultLossByForfeit:
		return dutch.Game{Opponent: res.OpponentPairNum,
			Outcome: dutch.OutcomeForfeitLoss}, nil
	case ResultUnplayedGame, ResultUnknown:
		return dutch.Game{Outcome: dutch.OutcomeAbsent}, nil
	}

	if byNum[res.OpponentPairNum] == nil || res.OpponentPairNum == e.PairNum {
		return dutch.Game{}, fmt.Errorf("%w: %v round %v opponent %v",
			ErrInconsistentCrossTable, e.PlayerName, round+1,
			res.OpponentPairNum)
	}
	g := dutch.Game{
		Opponent: res.OpponentPairNum,
		Colour:   res.Color,
		Float:    dutch.FloatBetween(scores[e.PairNum], scores[res.OpponentPairNum]),
	}
	switch res.Outcome {
	case ResultWin:
		g.Outcome = dutch.OutcomeWin
	case ResultLoss:
		g.Outcome = dutch.OutcomeLoss
	default:
		g.Outcome = dutch.OutcomeDraw
	}

	return g, nil
}

// Prediction is the Dutch pairing of a section's next round.
type Prediction struct {
	Section string
	Round   int
	Boards  []dutch.Board
	Bye     *dutch.Player
}

// PredictNextRound pairs the round following the last one in xt.
func PredictNextRound(ctx context.Context, xt *CrossTable,
	opts ...dutch.Option) (*Prediction, error) {

	players, err := xt.PairingPlayers()
	if err != nil {
		return nil, err
	}

	round := dutch.NewRound(players, opts...)
	boards, err := round.Boards(ctx)
	if err != nil {
		return nil, fmt.Errorf("unable to pair %v round %v: %w", xt.SectionName,
			round.Number(), err)
	}
	bye, err := round.Bye(ctx)
	if err != nil {
		return nil, err
	}

	return &Prediction{
		Section: xt.SectionName,
		Round:   round.Number(),
		Boards:  boards,
		Bye:     bye,
	}, nil
}

func predictionCell(p *dutch.Player) string {
	rating := "unr."
	if p.Rating > 0 {
		rating = strconv.Itoa(p.Rating)
	}
	return fmt.Sprintf("%d %s(%s %v)", p.Number, p.Name, rating,
		internal.ScoreToString(p.Points()))
}

func BuildPredictionOutput(p *Prediction) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%v predicted round %v pairings:\n", p.Section,
		p.Round))

	rows := [][]string{{"Board", "White", "Black"}}
	for _, b := range p.Boards {
		rows = append(rows, []string{fmt.Sprintf("%d.", b.Number),
			predictionCell(b.White), predictionCell(b.Black)})
	}
	if p.Bye != nil {
		rows = append(rows, []string{"n/a", predictionCell(p.Bye), "BYE"})
	}
	writeTable(&sb, rows)

	return sb.String()
}

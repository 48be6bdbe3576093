/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package api

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/mikeb26/boylstonchessclub-pairings/dutch"
)

// ErrBoardMismatch is returned when the boards submitted with a set of
// results are not the boards the engine pairs from the same history.
var ErrBoardMismatch = errors.New("api: boards do not match the pairing")

// Settings are the per-tournament options of a pairing request.
type Settings struct {
	ByePoints     *float64     `json:"byePoints,omitempty"`
	InitialColour dutch.Colour `json:"initialColour,omitempty"`
	TotalRounds   int          `json:"totalRounds,omitempty"`
}

func (s Settings) options() []dutch.Option {
	opts := []dutch.Option{
		dutch.WithInitialColour(s.InitialColour),
		dutch.WithTotalRounds(s.TotalRounds),
	}
	if s.ByePoints != nil {
		opts = append(opts, dutch.WithByePoints(*s.ByePoints))
	}

	return opts
}

type Player struct {
	Number int          `json:"number"`
	Name   string       `json:"name,omitempty"`
	Rating int          `json:"rating,omitempty"`
	Games  []dutch.Game `json:"games,omitempty"`
}

// PairingRequest carries every player of the tournament with the history
// of the rounds played so far.
type PairingRequest struct {
	Settings
	Players []Player `json:"players"`
}

type Board struct {
	Number int `json:"board"`
	White  int `json:"white"`
	Black  int `json:"black"`
}

type PairingResponse struct {
	Round     int     `json:"round"`
	Boards    []Board `json:"boards"`
	Bye       *int    `json:"bye,omitempty"`
	ByePoints float64 `json:"byePoints,omitempty"`
}

// ResultsRequest is a pairing request plus the boards it produced and one
// result per board, in board order.
type ResultsRequest struct {
	PairingRequest
	Boards  []Board        `json:"boards"`
	Results []dutch.Result `json:"results"`
}

type ResultsResponse struct {
	Round   int      `json:"round"`
	Players []Player `json:"players"`
}

func (req *PairingRequest) round(opts ...dutch.Option) (*dutch.Round,
	[]*dutch.Player) {

	players := make([]*dutch.Player, 0, len(req.Players))
	for _, in := range req.Players {
		p := dutch.NewPlayer(in.Number, in.Games...)
		p.Name = in.Name
		p.Rating = in.Rating
		players = append(players, p)
	}

	return dutch.NewRound(players, append(req.options(), opts...)...), players
}

func boardsOf(boards []dutch.Board) []Board {
	out := make([]Board, 0, len(boards))
	for _, b := range boards {
		out = append(out, Board{
			Number: b.Number,
			White:  b.White.Number,
			Black:  b.Black.Number,
		})
	}

	return out
}

// Pair pairs the next round of the request's players. opts are applied
// after the request's own settings.
func Pair(ctx context.Context, req *PairingRequest,
	opts ...dutch.Option) (*PairingResponse, error) {

	round, _ := req.round(opts...)
	boards, err := round.Boards(ctx)
	if err != nil {
		return nil, err
	}
	bye, err := round.Bye(ctx)
	if err != nil {
		return nil, err
	}

	resp := &PairingResponse{
		Round:  round.Number(),
		Boards: boardsOf(boards),
	}
	if bye != nil {
		resp.Bye = &bye.Number
		resp.ByePoints = round.Config().ByePoints
	}

	return resp, nil
}

// Finish re-pairs the request's round, checks it against the submitted
// boards and records the results into every player's history.
func Finish(ctx context.Context, req *ResultsRequest,
	opts ...dutch.Option) (*ResultsResponse, error) {

	if len(req.Results) != len(req.Boards) {
		return nil, fmt.Errorf("%w: got %v results for %v boards",
			dutch.ErrResultCount, len(req.Results), len(req.Boards))
	}

	round, players := req.round(opts...)
	boards, err := round.Boards(ctx)
	if err != nil {
		return nil, err
	}
	if !slices.Equal(boardsOf(boards), req.Boards) {
		return nil, ErrBoardMismatch
	}
	err = round.Finish(req.Results)
	if err != nil {
		return nil, err
	}

	resp := &ResultsResponse{Round: round.Number() - 1}
	for _, p := range players {
		resp.Players = append(resp.Players, Player{
			Number: p.Number,
			Name:   p.Name,
			Rating: p.Rating,
			Games:  p.Games(),
		})
	}

	return resp, nil
}

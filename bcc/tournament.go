/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package bcc

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/mikeb26/boylstonchessclub-pairings/dutch"
	"golang.org/x/sync/errgroup"
)

// Tournament holds the players of an event and the pairings of its current
// round, either posted by the club or predicted.
type Tournament struct {
	Players         []Player  `json:"players"`
	CurrentPairings []Pairing `json:"currentPairings"`

	source Source
}

// Player is a participant as listed by the API or the website.
type Player struct {
	FirstName       string  `json:"firstName"`
	LastName        string  `json:"lastName"`
	DisplayName     string  `json:"displayName"`
	UscfID          int     `json:"uscfId"`
	PrimaryRating   int     `json:"primaryRating"`
	SecondaryRating int     `json:"secondaryRating"`
	PairingNumber   int     `json:"pairingNumber"`
	CurrentScore    float64 `json:"currentScore"`
}

// Pairing is one board, or a bye when IsByePairing is set. A bye is held by
// WhitePlayer and scores WhitePoints.
type Pairing struct {
	WhitePlayer  Player   `json:"whitePlayer"`
	BlackPlayer  Player   `json:"blackPlayer"`
	Section      string   `json:"section"`
	RoundNumber  int      `json:"roundNumber"`
	BoardNumber  int      `json:"boardNumber"`
	IsByePairing bool     `json:"isByePairing"`
	WhitePoints  *float64 `json:"whitePoints"`
	BlackPoints  *float64 `json:"blackPoints"`
	ResultCode   string   `json:"resultCode"`
}

func (t *Tournament) Source() Source {
	return t.source
}

func (t *Tournament) IsPredicted() bool {
	return t.source == SourcePrediction
}

// GetTournament returns the posted pairings of an event, preferring the
// API over the website. When neither has pairings yet the first round is
// predicted from the event's registrations.
func (c *Client) GetTournament(ctx context.Context, eventId int64,
	opts ...dutch.Option) (*Tournament, error) {

	var viaAPI, viaWeb *Tournament
	var apiErr, webErr error
	var grp errgroup.Group
	grp.Go(func() error {
		viaAPI, apiErr = c.getTournamentViaAPI(ctx, eventId)
		return ctx.Err()
	})
	grp.Go(func() error {
		viaWeb, webErr = c.getTournamentViaWeb(ctx, eventId)
		return ctx.Err()
	})
	if err := grp.Wait(); err != nil {
		return nil, fmt.Errorf("unable to fetch event %v: %w", eventId, err)
	}

	switch {
	case apiErr == nil && len(viaAPI.CurrentPairings) > 0:
		return viaAPI, nil
	case webErr == nil && len(viaWeb.CurrentPairings) > 0:
		return viaWeb, nil
	}
	if apiErr != nil && !errors.Is(apiErr, errNotFound) {
		log.Printf("bcc.GetTournament: api failed for event %v: %v", eventId,
			apiErr)
	}

	detail, err := c.GetEventDetail(ctx, eventId)
	if err != nil {
		return nil, errors.Join(apiErr, webErr, err)
	}

	return PredictTournament(ctx, detail, opts...)
}

// PredictTournament builds a tournament whose current pairings are the
// predicted first round of detail.
func PredictTournament(ctx context.Context, detail *EventDetail,
	opts ...dutch.Option) (*Tournament, error) {

	pairings, err := PredictRoundOne(ctx, detail.Entries, opts...)
	if err != nil {
		return nil, fmt.Errorf("unable to predict event %v: %w",
			detail.EventID, err)
	}

	t := &Tournament{
		CurrentPairings: pairings,
		source:          SourcePrediction,
	}
	for _, e := range detail.Entries {
		t.Players = append(t.Players, entryToPlayer(e))
	}

	return t, nil
}

func (c *Client) getTournamentViaAPI(ctx context.Context,
	eventId int64) (*Tournament, error) {

	t := &Tournament{source: SourceAPI}
	url := fmt.Sprintf("%v/event/%d/tournament", c.apiBase, eventId)
	if err := c.getJSON(ctx, url, t); err != nil {
		return nil, fmt.Errorf("unable to fetch bcc tournament: %w", err)
	}
	if len(t.CurrentPairings) == 0 && len(t.Players) == 0 {
		return nil, fmt.Errorf("bcc tournament API returned an empty response")
	}

	return t, nil
}

// getTournamentViaWeb scrapes the entries and posted pairings pages.
func (c *Client) getTournamentViaWeb(ctx context.Context,
	eventId int64) (*Tournament, error) {

	t := &Tournament{source: SourceWebsite}
	grp, gctx := errgroup.WithContext(ctx)
	grp.Go(func() error {
		doc, err := c.getDoc(gctx,
			fmt.Sprintf("%v/tournament/entries/%d", c.webBase, eventId))
		if err != nil {
			return fmt.Errorf("unable to fetch entries page: %w", err)
		}
		t.Players = parsePlayers(doc)
		return nil
	})
	grp.Go(func() error {
		doc, err := c.getDoc(gctx,
			fmt.Sprintf("%v/files/event/%d/pairings", c.webBase, eventId))
		if err != nil {
			return fmt.Errorf("unable to fetch pairings page: %w", err)
		}
		t.CurrentPairings = parsePairings(doc)
		return nil
	})
	if err := grp.Wait(); err != nil {
		return nil, err
	}

	return t, nil
}

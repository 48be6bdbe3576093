/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package bcc

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/mikeb26/boylstonchessclub-pairings/dutch"
	"golang.org/x/sync/errgroup"
)

// RequestedByePoints is scored by a player who asked to sit out round one.
const RequestedByePoints = 0.5

// PredictRoundOne pairs the first round of every section with the Dutch
// system. Pairing numbers follow rating order. Players who requested a
// round one bye are left out of the pairing. Boards are numbered across
// sections in SectionSorter order and byes carry board 0.
func PredictRoundOne(ctx context.Context, entries []Entry,
	opts ...dutch.Option) ([]Pairing, error) {

	sections := make(map[string][]Entry)
	for _, e := range entries {
		sections[e.SectionName] = append(sections[e.SectionName], e)
	}
	names := sortedSectionNames(sections)

	predicted := make([][]Pairing, len(names))
	grp, gctx := errgroup.WithContext(ctx)
	for i, name := range names {
		grp.Go(func() error {
			pairings, err := predictSection(gctx, name, sections[name], opts)
			if err != nil {
				return fmt.Errorf("section %q: %w", name, err)
			}
			predicted[i] = pairings
			return nil
		})
	}
	if err := grp.Wait(); err != nil {
		return nil, err
	}

	var ret []Pairing
	board := 1
	for _, pairings := range predicted {
		for _, p := range pairings {
			if !p.IsByePairing {
				p.BoardNumber = board
				board++
			}
			ret = append(ret, p)
		}
	}

	return ret, nil
}

func predictSection(ctx context.Context, section string, entries []Entry,
	opts []dutch.Option) ([]Pairing, error) {

	var pairable, requested []Entry
	for _, e := range entries {
		if round1ByeRequested(e.ByeRequests) {
			requested = append(requested, e)
		} else {
			pairable = append(pairable, e)
		}
	}
	sort.SliceStable(pairable, func(i, j int) bool {
		return strRatingToInt(pairable[i].PrimaryRating) >
			strRatingToInt(pairable[j].PrimaryRating)
	})

	players := make([]*dutch.Player, len(pairable))
	for i, e := range pairable {
		players[i] = dutch.NewPlayer(i + 1)
		players[i].Name = entryToPlayer(e).DisplayName
		players[i].Rating = strRatingToInt(e.PrimaryRating)
	}
	round := dutch.NewRound(players, opts...)
	boards, err := round.Boards(ctx)
	if err != nil {
		return nil, err
	}
	bye, err := round.Bye(ctx)
	if err != nil {
		return nil, err
	}

	entrant := func(p *dutch.Player) Player {
		ret := entryToPlayer(pairable[p.Number-1])
		ret.PairingNumber = p.Number
		return ret
	}

	var ret []Pairing
	for _, b := range boards {
		ret = append(ret, Pairing{
			WhitePlayer: entrant(b.White),
			BlackPlayer: entrant(b.Black),
			Section:     section,
			RoundNumber: 1,
		})
	}
	for _, e := range requested {
		ret = append(ret, newByePairing(entryToPlayer(e), section,
			RequestedByePoints))
	}
	if bye != nil {
		ret = append(ret, newByePairing(entrant(bye), section,
			round.Config().ByePoints))
	}

	return ret, nil
}

func newByePairing(p Player, section string, points float64) Pairing {
	return Pairing{
		WhitePlayer:  p,
		Section:      section,
		RoundNumber:  1,
		IsByePairing: true,
		WhitePoints:  &points,
	}
}

var (
	numberOnlyRe = regexp.MustCompile(`^\d+$`)
	// "round 1,5", "rnds 1&4", "Rounds: 2/3"
	roundListRe = regexp.MustCompile(`(?i)\b(?:round|rnd|rounds|rnds)\b[\s:]*(\d+(?:\s*[,&;/]\s*\d+)*)`)
	numberRe    = regexp.MustCompile(`\d+`)
)

// round1ByeRequested interprets the free form bye request of an entry.
func round1ByeRequested(req string) bool {
	s := strings.TrimSpace(req)
	if numberOnlyRe.MatchString(s) {
		n, err := strconv.Atoi(s)
		return err == nil && n == 1
	}

	m := roundListRe.FindStringSubmatch(s)
	if m == nil {
		return false
	}
	for _, num := range numberRe.FindAllString(m[1], -1) {
		if n, err := strconv.Atoi(num); err == nil && n == 1 {
			return true
		}
	}

	return false
}

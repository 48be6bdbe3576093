/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package dutch

import (
	"context"
	"errors"
	"fmt"
	"log"
)

// Board is a pair with colours allocated.
type Board struct {
	Number int
	White  *Player
	Black  *Player
	pair   Pair
}

func (b Board) Pair() Pair {
	return b.pair
}

// Round pairs one round of a tournament and records its results.
type Round struct {
	players []*Player
	cfg     Config

	boards   []Board
	bye      *Player
	paired   bool
	finished bool
}

func NewRound(players []*Player, opts ...Option) *Round {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Round{
		players: sortedPlayers(players),
		cfg:     cfg,
	}
}

func (r *Round) Players() []*Player {
	return r.players
}

func (r *Round) Config() Config {
	return r.cfg
}

// Number is the round being paired, counting from 1.
func (r *Round) Number() int {
	played := 0
	for _, p := range r.players {
		played = max(played, len(p.games))
	}

	return played + 1
}

func (r *Round) validate() error {
	seen := make(map[int]bool, len(r.players))
	for _, p := range r.players {
		if p == nil {
			return fmt.Errorf("%w: nil player", ErrInvalidPlayer)
		}
		if p.Number <= 0 {
			return fmt.Errorf("%w: number %v", ErrInvalidPlayer, p.Number)
		}
		if seen[p.Number] {
			return fmt.Errorf("%w: duplicate number %v", ErrInvalidPlayer,
				p.Number)
		}
		seen[p.Number] = true
	}

	return nil
}

// partition groups players by score, highest score first.
func (r *Round) partition() [][]*Player {
	var groups [][]*Player
	for _, p := range r.players {
		n := len(groups)
		if n > 0 && groups[n-1][0].Points() == p.Points() {
			groups[n-1] = append(groups[n-1], p)
			continue
		}
		groups = append(groups, []*Player{p})
	}

	return groups
}

// Scoregroups returns the groups of the round before any pairing.
func (r *Round) Scoregroups() []*Scoregroup {
	groups := r.partition()
	at := newPairingAttempt(groups, make([]groupState, len(groups)),
		newBudget(context.Background(), r.cfg.MaxSteps), true)

	return at.groups
}

func (r *Round) markTopscorers() {
	if r.cfg.TotalRounds <= 0 || r.Number() != r.cfg.TotalRounds {
		return
	}
	for _, p := range r.players {
		if p.Points() > float64(r.cfg.TotalRounds)/2 {
			p.Topscorer = true
		}
	}
}

func (r *Round) pair(ctx context.Context) error {
	if r.paired {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := r.validate(); err != nil {
		return err
	}
	r.markTopscorers()

	b := newBudget(ctx, r.cfg.MaxSteps)
	pairs, bye, err := r.search(b, true)
	if err != nil && errors.Is(err, ErrNoPairing) &&
		!errors.Is(err, ErrSearchBudget) && ctx.Err() == nil {

		r.logf("dutch.Round: no pairing keeps repeated byes out; relaxing")
		pairs, bye, err = r.search(b, false)
	}
	if err != nil {
		return err
	}

	sortPairs(pairs)
	r.boards = make([]Board, len(pairs))
	for i, p := range pairs {
		white, black := p.Allocate(r.cfg.InitialColour)
		r.boards[i] = Board{Number: i + 1, White: white, Black: black, pair: p}
	}
	r.bye = bye
	r.paired = true

	return nil
}

func (r *Round) logf(format string, args ...any) {
	if r.cfg.Verbose {
		log.Printf(format, args...)
	}
}

// search runs pairing attempts, adjusting the per group state after every
// failure until an attempt pairs the whole round.
func (r *Round) search(b *budget, strictBye bool) ([]Pair, *Player, error) {
	groups := r.partition()
	states := make([]groupState, len(groups))

	for tries := 0; ; tries++ {
		if r.cfg.MaxBacktracks > 0 && tries > r.cfg.MaxBacktracks {
			return nil, nil, fmt.Errorf("%w: %w: %v attempts", ErrNoPairing,
				ErrSearchBudget, tries)
		}

		at := newPairingAttempt(groups, states, b, strictBye)
		failedAt, err := at.run()
		if err == nil {
			// feasibility checks cut short by the budget leave it spent
			err = b.Err()
		}
		if err != nil {
			return nil, nil, err
		}
		if failedAt < 0 {
			return at.allPairs(), at.bye, nil
		}

		r.logf("dutch.Round: round %v group %v (%v points) failed; attempt %v",
			r.Number(), failedAt, at.groups[failedAt].points, tries)
		ok, err := r.backtrack(at, states, failedAt)
		if err != nil {
			return nil, nil, err
		}
		if !ok {
			return nil, nil, fmt.Errorf("%w: group %v (%v points) cannot be paired",
				ErrNoPairing, failedAt, at.groups[failedAt].points)
		}
	}
}

func resetFrom(states []groupState, from int) {
	for i := from; i < len(states); i++ {
		states[i] = groupState{}
	}
}

// backtrack changes the group state so the next attempt differs from the
// failed one. It returns false when nothing is left to change.
func (r *Round) backtrack(at *pairingAttempt, states []groupState,
	failedAt int) (bool, error) {

	st := &states[failedAt]
	size := len(at.groups[failedAt].Bracket().Players())
	retry := len(st.impossible) > 0 || st.extraDownfloats > 0 ||
		failedAt < len(states)-2
	if retry && st.extraDownfloats+2 <= size {
		st.extraDownfloats += 2
		st.impossible = nil
		resetFrom(states, failedAt+1)
		return true, nil
	}

	for j := failedAt - 1; j >= 0; j-- {
		if len(at.pairs[j]) == 0 {
			continue
		}
		states[j].impossible = append(states[j].impossible, at.pairs[j])
		resetFrom(states, j+1)
		return true, nil
	}

	ppb := len(states) - 2
	if ppb >= 0 && failedAt >= ppb && !states[ppb].handled {
		h := NewPenultimateBracketHandler(at.groups[ppb].Bracket().Players(),
			at.base[ppb+1])
		h.strictBye = at.strictBye
		h.budget = at.budget
		moved, err := h.Move()
		if err != nil {
			return false, err
		}
		states[ppb] = groupState{handled: true, moved: moved}
		resetFrom(states, ppb+1)
		return len(moved) > 0, nil
	}

	return false, nil
}

func (r *Round) Pairs(ctx context.Context) ([]Pair, error) {
	if err := r.pair(ctx); err != nil {
		return nil, err
	}

	ret := make([]Pair, len(r.boards))
	for i, b := range r.boards {
		ret[i] = b.pair
	}

	return ret, nil
}

func (r *Round) Boards(ctx context.Context) ([]Board, error) {
	if err := r.pair(ctx); err != nil {
		return nil, err
	}

	return append([]Board(nil), r.boards...), nil
}

// Bye returns the player left unpaired, or nil.
func (r *Round) Bye(ctx context.Context) (*Player, error) {
	if err := r.pair(ctx); err != nil {
		return nil, err
	}

	return r.bye, nil
}

func (r *Round) Finished() bool {
	return r.finished
}

// groupState is what a round changes about a group between attempts.
type groupState struct {
	impossible      [][]Pair
	extraDownfloats int
	moved           []*Player
	handled         bool
}

// pairingAttempt pairs every group once, top to bottom, for a given
// per group state.
type pairingAttempt struct {
	base      [][]*Player
	states    []groupState
	groups    []*Scoregroup
	pairs     [][]Pair
	bye       *Player
	budget    *budget
	strictBye bool
}

func newPairingAttempt(base [][]*Player, states []groupState, b *budget,
	strictBye bool) *pairingAttempt {

	at := &pairingAttempt{
		base:      base,
		states:    states,
		groups:    make([]*Scoregroup, len(base)),
		pairs:     make([][]Pair, len(base)),
		budget:    b,
		strictBye: strictBye,
	}
	for i, players := range base {
		at.groups[i] = &Scoregroup{
			attempt: at,
			index:   i,
			points:  players[0].Points(),
			players: append([]*Player(nil), players...),
		}
	}

	return at
}

// run returns the index of the first group that could not be paired, or
// -1 when the whole round was paired.
func (at *pairingAttempt) run() (int, error) {
	for i, sg := range at.groups {
		pairs, err := sg.Pairs()
		if err != nil {
			if errors.Is(err, errBracketExhausted) {
				return i, nil
			}
			return -1, err
		}
		at.pairs[i] = pairs

		if !sg.Last() {
			if err := sg.moveLeftoversToNextScoregroup(); err != nil {
				return -1, err
			}
			continue
		}

		leftovers, err := sg.Leftovers()
		if err != nil {
			return -1, err
		}
		if len(leftovers) > 1 {
			return i, nil
		}
		if len(leftovers) == 1 {
			at.bye = leftovers[0]
		}
	}

	return -1, nil
}

func (at *pairingAttempt) allPairs() []Pair {
	var ret []Pair
	for _, pairs := range at.pairs {
		ret = append(ret, pairs...)
	}

	return ret
}

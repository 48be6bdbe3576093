/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package dutch

import (
	"context"
	"errors"
	"fmt"
)

var (
	ErrNoPairing     = errors.New("dutch: no pairing satisfies the absolute criteria")
	ErrSearchBudget  = errors.New("dutch: search budget exhausted")
	ErrResultCount   = errors.New("dutch: number of results does not match number of pairs")
	ErrRoundFinished = errors.New("dutch: round already finished")
	ErrNotPaired     = errors.New("dutch: round has not been paired")
	ErrInvalidPlayer = errors.New("dutch: invalid player")

	// errBracketExhausted is returned by a bracket whose search space
	// holds no admissible candidate.
	errBracketExhausted = fmt.Errorf("%w: bracket exhausted", ErrNoPairing)
)

// budget bounds the amount of search a round may perform. Once spent it
// stays spent, so a caller that cannot return the error may leave it for
// the round to pick up. A nil budget never runs out.
type budget struct {
	ctx   context.Context
	steps int
	limit int
	err   error
}

const budgetCtxCheckInterval = 1 << 12

func newBudget(ctx context.Context, limit int) *budget {
	return &budget{ctx: ctx, limit: limit}
}

func (b *budget) spend() error {
	if b == nil {
		return nil
	}
	if b.err != nil {
		return b.err
	}

	b.steps++
	if b.limit > 0 && b.steps > b.limit {
		b.err = fmt.Errorf("%w: %w", ErrNoPairing, ErrSearchBudget)
	} else if b.steps%budgetCtxCheckInterval == 0 {
		if err := b.ctx.Err(); err != nil {
			b.err = fmt.Errorf("%w: %w", ErrNoPairing, err)
		}
	}

	return b.err
}

func (b *budget) Err() error {
	if b == nil {
		return nil
	}
	return b.err
}

/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package dutch

// PenultimateBracketHandler looks for players of the penultimate bracket
// whose move into the last bracket makes the last bracket pairable while
// the penultimate bracket still pairs completely.
type PenultimateBracketHandler struct {
	penultimate []*Player
	last        []*Player
	strictBye   bool
	budget      *budget
}

func NewPenultimateBracketHandler(penultimate []*Player,
	last []*Player) *PenultimateBracketHandler {

	return &PenultimateBracketHandler{
		penultimate: sortedPlayers(penultimate),
		last:        last,
		strictBye:   true,
	}
}

// candidates returns the penultimate players able to meet somebody in the
// last bracket, lowest ranked first.
func (h *PenultimateBracketHandler) candidates() []*Player {
	var ret []*Player
	for i := len(h.penultimate) - 1; i >= 0; i-- {
		p := h.penultimate[i]
		if len(p.CompatiblePlayersIn(h.last)) > 0 {
			ret = append(ret, p)
		}
	}

	return ret
}

func (h *PenultimateBracketHandler) lastIsPairable(players []*Player) bool {
	c := newCompletion(players, nil, defaultCompatibility, h.budget)
	if h.strictBye {
		return c.OK()
	}
	return c.AllPlayersCanBePaired()
}

// Move returns the players to move, or nil when no move helps.
func (h *PenultimateBracketHandler) Move() ([]*Player, error) {
	candidates := h.candidates()
	for k := 1; k <= len(candidates); k++ {
		if (len(h.penultimate)-k)%2 != 0 {
			continue
		}

		var moved []*Player
		var err error
		forEachCombination(len(candidates), k, func(idx []int) bool {
			if err = h.budget.spend(); err != nil {
				return false
			}
			try := pick(candidates, idx)
			last := append(append([]*Player(nil), h.last...), try...)
			if !h.lastIsPairable(last) {
				return true
			}
			rest := without(h.penultimate, try)
			c := newCompletion(rest, nil, defaultCompatibility, h.budget)
			if c.Incompatibilities() != 0 {
				return true
			}
			moved = try
			return false
		})
		if err == nil {
			err = h.budget.Err()
		}
		if err != nil {
			return nil, err
		}
		if moved != nil {
			return moved, nil
		}
	}

	return nil, nil
}

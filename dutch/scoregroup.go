/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package dutch

// Scoregroup is the bracket of one score plus what it needs to know about
// its neighbours. Groups refer to each other through their index in the
// attempt that owns them.
type Scoregroup struct {
	attempt *pairingAttempt
	index   int
	points  float64
	players []*Player
	limbo   []*Player
	bracket *Bracket
}

func (sg *Scoregroup) Index() int {
	return sg.index
}

// Points is the score shared by the players native to the group.
func (sg *Scoregroup) Points() float64 {
	return sg.points
}

func (sg *Scoregroup) Players() []*Player {
	return sg.players
}

// Limbo returns the players leaving the group without being part of its
// bracket.
func (sg *Scoregroup) Limbo() []*Player {
	return sg.limbo
}

func (sg *Scoregroup) Last() bool {
	return sg.index == len(sg.attempt.groups)-1
}

func (sg *Scoregroup) Penultimate() bool {
	return sg.index == len(sg.attempt.groups)-2
}

func (sg *Scoregroup) next() *Scoregroup {
	if sg.Last() {
		return nil
	}
	return sg.attempt.groups[sg.index+1]
}

func (sg *Scoregroup) addPlayers(players []*Player) {
	sg.players = append(sg.players, players...)
	sg.bracket = nil
}

func (sg *Scoregroup) state() *groupState {
	return &sg.attempt.states[sg.index]
}

// Bracket builds the group's bracket the first time it is needed.
func (sg *Scoregroup) Bracket() *Bracket {
	if sg.bracket == nil {
		sg.buildBracket()
	}

	return sg.bracket
}

func (sg *Scoregroup) buildBracket() {
	st := sg.state()
	b := sg.attempt.budget
	sg.limbo = append([]*Player(nil), st.moved...)
	players := without(sg.players, st.moved)

	br := newBracket(players, b)
	if !sg.Last() && br.Kind() == Heterogeneous {
		if unpairable := br.UnpairableMovedDownPlayers(); len(unpairable) > 0 {
			sg.limbo = append(sg.limbo, unpairable...)
			br = newBracket(without(players, unpairable), b)
		}
	}

	if st.extraDownfloats > 0 {
		br.SetRequiredDownfloats(br.RequiredDownfloats() + st.extraDownfloats)
	}
	for _, pairs := range st.impossible {
		br.MarkImpossible(pairs)
	}

	if sg.Penultimate() && len(st.moved) == 0 {
		sg.installRescue(br)
	}
	if sg.Last() {
		strict := sg.attempt.strictBye
		br.AddPermitRule(func(leftovers []*Player) bool {
			if len(leftovers) > 1 {
				return false
			}
			return !strict || len(leftovers) == 0 || !leftovers[0].HadBye()
		})
	}

	sg.bracket = br
}

// installRescue makes the penultimate bracket move down enough players,
// and the right ones, for the last group to be pairable.
func (sg *Scoregroup) installRescue(br *Bracket) {
	next := append(append([]*Player(nil), sg.next().players...), sg.limbo...)
	b := sg.attempt.budget
	need := newCompletion(next, nil, defaultCompatibility, b).
		NumberOfRequiredMDPs()
	if need > br.RequiredDownfloats() {
		br.SetRequiredDownfloats(need)
	}

	strict := sg.attempt.strictBye
	br.AddPermitRule(func(leftovers []*Player) bool {
		pool := append(append([]*Player(nil), leftovers...), next...)
		c := newCompletion(pool, nil, defaultCompatibility, b)
		if strict {
			return c.OK()
		}
		return c.AllPlayersCanBePaired()
	})
}

func (sg *Scoregroup) Pairs() ([]Pair, error) {
	return sg.Bracket().Pairs()
}

// Leftovers returns every player leaving the group: the bracket's
// unpaired players plus the limbo.
func (sg *Scoregroup) Leftovers() ([]*Player, error) {
	leftovers, err := sg.Bracket().Leftovers()
	if err != nil {
		return nil, err
	}

	ret := append(append([]*Player(nil), sg.limbo...), leftovers...)
	sortPlayers(ret)

	return ret, nil
}

func (sg *Scoregroup) moveLeftoversToNextScoregroup() error {
	leftovers, err := sg.Leftovers()
	if err != nil {
		return err
	}
	sg.next().addPlayers(leftovers)
	sg.players = without(sg.players, leftovers)

	return nil
}

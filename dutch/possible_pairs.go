/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package dutch

// PossiblePairs counts the pairs a maximum matching of the players can
// reach when only previous meetings and absolute colour clashes matter.
type PossiblePairs struct {
	players []*Player
	budget  *budget
}

func NewPossiblePairs(players []*Player) PossiblePairs {
	return PossiblePairs{players: players}
}

func (pp PossiblePairs) Count() int {
	return newCompletion(pp.players, nil, defaultCompatibility, pp.budget).
		Compatibilities()
}

// ColourPossiblePairs is PossiblePairs where players preferring the same
// colour cannot meet either.
type ColourPossiblePairs struct {
	players []*Player
	budget  *budget
}

func NewColourPossiblePairs(players []*Player) ColourPossiblePairs {
	return ColourPossiblePairs{players: players}
}

func colourCompatibility(a *Player, b *Player) bool {
	if !a.CompatibleWith(b) {
		return false
	}
	pa := a.ColourPreference()

	return pa == NoColour || pa != b.ColourPreference()
}

func (cp ColourPossiblePairs) Count() int {
	return newCompletion(cp.players, nil, colourCompatibility, cp.budget).
		Compatibilities()
}

// ColourIncompatibilities bounds from below how many of a given number of
// pairs must break a colour preference.
type ColourIncompatibilities struct {
	players []*Player
	pairs   int
}

func NewColourIncompatibilities(players []*Player,
	pairs int) ColourIncompatibilities {

	return ColourIncompatibilities{players: players, pairs: pairs}
}

func (ci ColourIncompatibilities) counts() (white, black, none int) {
	for _, p := range ci.players {
		switch p.ColourPreference() {
		case White:
			white++
		case Black:
			black++
		default:
			none++
		}
	}

	return white, black, none
}

// mainColour is the colour most players prefer; white on a tie.
func (ci ColourIncompatibilities) mainColour() Colour {
	white, black, _ := ci.counts()
	if black > white {
		return Black
	}

	return White
}

func (ci ColourIncompatibilities) Violations() int {
	white, black, none := ci.counts()
	minority := white
	if black < white {
		minority = black
	}

	return max(ci.pairs-minority-none, 0)
}

// StrongViolations is the part of Violations that must hit players whose
// preference is stronger than mild.
func (ci ColourIncompatibilities) StrongViolations() int {
	main := ci.mainColour()
	mild := 0
	for _, p := range ci.players {
		if p.ColourPreference() == main && p.PreferenceDegree() == DegreeMild {
			mild++
		}
	}

	return max(ci.Violations()-mild, 0)
}

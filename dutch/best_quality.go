/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package dutch

// BestQualityCalculator derives the best outcome a bracket can hope for:
// how many players must float down and how many colour preferences must
// be broken at least.
type BestQualityCalculator struct {
	players            []*Player
	compatible         int
	colourPossible     int
	requiredDownfloats int
	permit             *DownfloatPermit
	budget             *budget
}

func NewBestQualityCalculator(players []*Player) *BestQualityCalculator {
	return newBestQualityCalculator(players, nil)
}

func newBestQualityCalculator(players []*Player,
	b *budget) *BestQualityCalculator {

	c := &BestQualityCalculator{
		players:        players,
		compatible:     -1,
		colourPossible: -1,
		budget:         b,
	}
	c.requiredDownfloats = c.minimumDownfloats()
	c.permit = newDownfloatPermit(c.requiredDownfloats)

	return c
}

func (c *BestQualityCalculator) CompatiblePairs() int {
	if c.compatible < 0 {
		pp := PossiblePairs{players: c.players, budget: c.budget}
		c.compatible = pp.Count()
	}

	return c.compatible
}

func (c *BestQualityCalculator) minimumDownfloats() int {
	return len(c.players) - 2*c.CompatiblePairs()
}

func (c *BestQualityCalculator) RequiredDownfloats() int {
	return c.requiredDownfloats
}

// SetRequiredDownfloats raises the number of players leaving the bracket.
// It never drops below what the pairing history forces and keeps the
// rest of the bracket even.
func (c *BestQualityCalculator) SetRequiredDownfloats(n int) {
	n = max(n, c.minimumDownfloats())
	if (len(c.players)-n)%2 != 0 {
		n++
	}
	n = min(n, len(c.players))
	c.requiredDownfloats = n
	c.permit.setSize(n)
}

func (c *BestQualityCalculator) PairsAfterDownfloats() int {
	return (len(c.players) - c.requiredDownfloats) / 2
}

func (c *BestQualityCalculator) PossiblePairs() int {
	return min(c.PairsAfterDownfloats(), c.CompatiblePairs())
}

func (c *BestQualityCalculator) colourPossiblePairs() int {
	if c.colourPossible < 0 {
		cp := ColourPossiblePairs{players: c.players, budget: c.budget}
		c.colourPossible = cp.Count()
	}

	return c.colourPossible
}

func (c *BestQualityCalculator) ColourViolations() int {
	pairs := c.PossiblePairs()
	bound := NewColourIncompatibilities(c.players, pairs).Violations()

	return max(bound, pairs-c.colourPossiblePairs())
}

func (c *BestQualityCalculator) StrongColourViolations() int {
	return NewColourIncompatibilities(c.players, c.PossiblePairs()).
		StrongViolations()
}

func (c *BestQualityCalculator) DownfloatPermit() *DownfloatPermit {
	return c.permit
}

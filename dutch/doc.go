/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */

// Package dutch pairs rounds of a Swiss tournament with the FIDE Dutch
// system.
//
// A Round is built from players carrying their game history. Pairing
// splits the players into scoregroups, pairs every group's bracket from
// the top down and backtracks across groups whenever a lower group cannot
// be completed. Finish records the results of a paired round back into
// the players' histories so the next round can be paired from them.
package dutch

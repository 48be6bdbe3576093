/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package bcc

import (
	"context"
	"strings"
	"testing"
)

func TestBuildPairingsOutput(t *testing.T) {
	tourney := &Tournament{}
	if out := BuildPairingsOutput(tourney); !strings.Contains(out, "No pairings posted nor predicted") {
		t.Errorf("empty output got %q", out)
	}

	pairings, err := PredictRoundOne(context.Background(), testEntries())
	if err != nil {
		t.Fatalf("PredictRoundOne failed: %v", err)
	}
	tourney = &Tournament{CurrentPairings: pairings, source: SourcePrediction}
	out := BuildPairingsOutput(tourney)

	open := strings.Index(out, "Open Section")
	u1800 := strings.Index(out, "U1800 Section")
	if open < 0 || u1800 < open {
		t.Fatalf("sections out of order:\n%v", out)
	}

	lines := strings.Split(out, "\n")
	var openRows []string
	for _, l := range lines {
		if strings.HasPrefix(l, "1.") || strings.HasPrefix(l, "2.") ||
			strings.HasPrefix(l, "n/a") {
			openRows = append(openRows, l)
		}
		if strings.HasPrefix(l, "U1800") {
			break
		}
	}
	want := []string{
		"1.     Alice Able(2000 0)  Cara Cole(1800 0)",
		"2.     Ed East(1600 0)     Bob Best(1900 0)",
		"n/a    Dan Dole(1700 0)    BYE(½)",
	}
	if len(openRows) != len(want) {
		t.Fatalf("got rows %q; want %q", openRows, want)
	}
	for i := range want {
		if openRows[i] != want[i] {
			t.Errorf("row %v got %q; want %q", i, openRows[i], want[i])
		}
	}

	if !strings.Contains(out, "Hal Hunt(unr. 0)  BYE(1)") {
		t.Errorf("missing full point bye:\n%v", out)
	}
}

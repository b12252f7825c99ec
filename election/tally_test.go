// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import "testing"

func proposalsWithCounts(counts ...int) []Proposal {
	ps := make([]Proposal, len(counts))
	for i, c := range counts {
		ps[i] = Proposal{ID: i, VoteCount: c}
	}
	return ps
}

func TestTally(t *testing.T) {
	tests := []struct {
		name   string
		counts []int
		want   int
	}{
		{"single proposal no votes", []int{0}, 0},
		{"all zero picks first", []int{0, 0, 0}, 0},
		{"clear winner", []int{1, 5, 2}, 1},
		{"last wins", []int{1, 2, 3}, 2},
		{"tie picks lowest id", []int{1, 4, 4}, 1},
		{"tie with first", []int{3, 1, 3}, 0},
		{"later strictly greater beats earlier tie", []int{2, 2, 3}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Tally(proposalsWithCounts(tt.counts...))
			if !ok {
				t.Fatal("Tally() reported no winner")
			}
			if got != tt.want {
				t.Errorf("Tally(%v) = %d, want %d", tt.counts, got, tt.want)
			}
		})
	}
}

func TestTally_Empty(t *testing.T) {
	if _, ok := Tally(nil); ok {
		t.Error("Tally(nil) should report no winner")
	}
}

func TestPhase_String(t *testing.T) {
	if VotesTallied.String() != "VotesTallied" {
		t.Errorf("got %q", VotesTallied.String())
	}
	if Phase(9).Valid() {
		t.Error("Phase(9) should be invalid")
	}
	if Phase(9).String() != "Phase(9)" {
		t.Errorf("got %q", Phase(9).String())
	}

	p, err := ParsePhase("VotingSessionStarted")
	if err != nil || p != VotingSessionStarted {
		t.Errorf("ParsePhase() = %v, %v", p, err)
	}
	if _, err := ParsePhase("Bogus"); err == nil {
		t.Error("ParsePhase(Bogus) should fail")
	}
}

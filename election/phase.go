// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import "fmt"

// Phase is one stage of the election lifecycle. Values are stable and
// persisted, so new phases must never be inserted between existing ones.
type Phase uint8

const (
	RegisteringVoters Phase = iota
	ProposalsRegistrationStarted
	ProposalsRegistrationEnded
	VotingSessionStarted
	VotingSessionEnded
	VotesTallied
)

var phaseNames = [...]string{
	RegisteringVoters:            "RegisteringVoters",
	ProposalsRegistrationStarted: "ProposalsRegistrationStarted",
	ProposalsRegistrationEnded:   "ProposalsRegistrationEnded",
	VotingSessionStarted:         "VotingSessionStarted",
	VotingSessionEnded:           "VotingSessionEnded",
	VotesTallied:                 "VotesTallied",
}

func (p Phase) String() string {
	if p.Valid() {
		return phaseNames[p]
	}
	return fmt.Sprintf("Phase(%d)", uint8(p))
}

// Valid reports whether p is a known phase.
func (p Phase) Valid() bool {
	return int(p) < len(phaseNames)
}

// Terminal reports whether no transition leaves p.
func (p Phase) Terminal() bool {
	return p == VotesTallied
}

// ParsePhase returns the phase with the given name.
func ParsePhase(name string) (Phase, error) {
	for i, n := range phaseNames {
		if n == name {
			return Phase(i), nil
		}
	}
	return 0, fmt.Errorf("unknown phase %q", name)
}

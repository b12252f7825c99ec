// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import (
	"fmt"
	"strings"
)

// Identity identifies a caller. The election trusts whatever identity the
// binding layer supplies.
type Identity string

// IsZero reports whether id is the null identity.
func (id Identity) IsZero() bool {
	return strings.TrimSpace(string(id)) == ""
}

type Proposal struct {
	ID          int    `json:"id"`
	Description string `json:"description"`
	VoteCount   int    `json:"vote_count"`
}

// Voter is the voting record of one identity. VotedProposalID is only
// meaningful when HasVoted is true.
type Voter struct {
	IsRegistered    bool `json:"is_registered"`
	HasVoted        bool `json:"has_voted"`
	VotedProposalID int  `json:"voted_proposal_id"`
}

// Election is the whole state of one election. It is not safe for
// concurrent use; callers serialize access.
type Election struct {
	phase             Phase
	owner             Identity
	proposals         []Proposal
	voters            map[Identity]Voter
	winningProposalID int
}

// New creates an election in the RegisteringVoters phase.
func New(owner Identity) (*Election, error) {
	if owner.IsZero() {
		return nil, fmt.Errorf("owner: %w", ErrInvalidIdentity)
	}
	return &Election{
		phase:  RegisteringVoters,
		owner:  owner,
		voters: make(map[Identity]Voter),
	}, nil
}

func (e *Election) Status() Phase {
	return e.phase
}

func (e *Election) Owner() Identity {
	return e.owner
}

// Voter returns the record for id. Unknown identities get the zero Voter.
func (e *Election) Voter(id Identity) Voter {
	return e.voters[id]
}

// WinningProposalID is only meaningful once Tallied reports true.
func (e *Election) WinningProposalID() int {
	return e.winningProposalID
}

func (e *Election) Tallied() bool {
	return e.phase == VotesTallied
}

// Proposals returns a copy of the proposals in id order.
func (e *Election) Proposals() []Proposal {
	out := make([]Proposal, len(e.proposals))
	copy(out, e.proposals)
	return out
}

func (e *Election) Proposal(id int) (Proposal, bool) {
	if id < 0 || id >= len(e.proposals) {
		return Proposal{}, false
	}
	return e.proposals[id], true
}

// Winner returns the winning proposal after tallying.
func (e *Election) Winner() (Proposal, bool) {
	if !e.Tallied() {
		return Proposal{}, false
	}
	return e.Proposal(e.winningProposalID)
}

// Clone returns a deep copy of e.
func (e *Election) Clone() *Election {
	voters := make(map[Identity]Voter, len(e.voters))
	for id, v := range e.voters {
		voters[id] = v
	}
	return &Election{
		phase:             e.phase,
		owner:             e.owner,
		proposals:         e.Proposals(),
		voters:            voters,
		winningProposalID: e.winningProposalID,
	}
}

func (e *Election) requireOwner(caller Identity) error {
	if caller != e.owner {
		return fmt.Errorf("caller %q is not the owner: %w", caller, ErrUnauthorized)
	}
	return nil
}

func (e *Election) requirePhase(want Phase) error {
	if e.phase != want {
		return fmt.Errorf("requires %s, election is in %s: %w", want, e.phase, ErrInvalidPhase)
	}
	return nil
}

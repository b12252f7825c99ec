// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import "fmt"

// Snapshot is the exported form of an Election, used for persistence.
// WinningProposalID is meaningful only when Phase is VotesTallied.
type Snapshot struct {
	Phase             Phase
	Owner             Identity
	Proposals         []Proposal
	Voters            map[Identity]Voter
	WinningProposalID int
}

// Snapshot returns a deep copy of e's state.
func (e *Election) Snapshot() Snapshot {
	c := e.Clone()
	return Snapshot{
		Phase:             c.phase,
		Owner:             c.owner,
		Proposals:         c.proposals,
		Voters:            c.voters,
		WinningProposalID: c.winningProposalID,
	}
}

// Restore rebuilds an election from s, rejecting any snapshot that breaks
// the election invariants.
func Restore(s Snapshot) (*Election, error) {
	if !s.Phase.Valid() {
		return nil, fmt.Errorf("%w: unknown phase %d", ErrInvalidSnapshot, s.Phase)
	}
	if s.Owner.IsZero() {
		return nil, fmt.Errorf("%w: empty owner", ErrInvalidSnapshot)
	}

	counts := make([]int, len(s.Proposals))
	for id, v := range s.Voters {
		if id.IsZero() {
			return nil, fmt.Errorf("%w: voter with empty identity", ErrInvalidSnapshot)
		}
		if !v.HasVoted {
			continue
		}
		if !v.IsRegistered {
			return nil, fmt.Errorf("%w: unregistered voter %q has voted", ErrInvalidSnapshot, id)
		}
		if s.Phase < VotingSessionStarted {
			return nil, fmt.Errorf("%w: voter %q voted before voting started", ErrInvalidSnapshot, id)
		}
		if v.VotedProposalID < 0 || v.VotedProposalID >= len(counts) {
			return nil, fmt.Errorf("%w: voter %q voted for unknown proposal %d", ErrInvalidSnapshot, id, v.VotedProposalID)
		}
		counts[v.VotedProposalID]++
	}
	for i, p := range s.Proposals {
		if p.ID != i {
			return nil, fmt.Errorf("%w: proposal at position %d has id %d", ErrInvalidSnapshot, i, p.ID)
		}
		if p.VoteCount != counts[i] {
			return nil, fmt.Errorf("%w: proposal %d counts %d votes, voters cast %d", ErrInvalidSnapshot, i, p.VoteCount, counts[i])
		}
	}

	winner := 0
	if s.Phase == VotesTallied {
		w, ok := Tally(s.Proposals)
		if !ok || w != s.WinningProposalID {
			return nil, fmt.Errorf("%w: winning proposal %d does not match tally", ErrInvalidSnapshot, s.WinningProposalID)
		}
		winner = w
	}

	e := &Election{
		phase:             s.Phase,
		owner:             s.Owner,
		voters:            make(map[Identity]Voter, len(s.Voters)),
		winningProposalID: winner,
	}
	e.proposals = append(e.proposals, s.Proposals...)
	for id, v := range s.Voters {
		e.voters[id] = v
	}
	return e, nil
}

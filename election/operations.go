// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import "fmt"

// Every operation validates all of its preconditions before touching any
// state, so a returned error always means nothing changed.

// RegisterVoter marks id as a registered voter. Owner only, RegisteringVoters only.
func (e *Election) RegisterVoter(caller, id Identity) (Event, error) {
	if err := e.requireOwner(caller); err != nil {
		return Event{}, err
	}
	if err := e.requirePhase(RegisteringVoters); err != nil {
		return Event{}, err
	}
	if id.IsZero() {
		return Event{}, fmt.Errorf("voter: %w", ErrInvalidIdentity)
	}
	if e.voters[id].IsRegistered {
		return Event{}, fmt.Errorf("voter %q: %w", id, ErrAlreadyRegistered)
	}

	e.voters[id] = Voter{IsRegistered: true}
	return Event{Kind: EventVoterRegistered, Actor: caller, Subject: id}, nil
}

func (e *Election) StartProposalsRegistration(caller Identity) (Event, error) {
	return e.advance(caller, RegisteringVoters, ProposalsRegistrationStarted)
}

func (e *Election) EndProposalsRegistration(caller Identity) (Event, error) {
	return e.advance(caller, ProposalsRegistrationStarted, ProposalsRegistrationEnded)
}

func (e *Election) StartVotingSession(caller Identity) (Event, error) {
	return e.advance(caller, ProposalsRegistrationEnded, VotingSessionStarted)
}

func (e *Election) EndVotingSession(caller Identity) (Event, error) {
	return e.advance(caller, VotingSessionStarted, VotingSessionEnded)
}

func (e *Election) advance(caller Identity, from, to Phase) (Event, error) {
	if err := e.requireOwner(caller); err != nil {
		return Event{}, err
	}
	if err := e.requirePhase(from); err != nil {
		return Event{}, err
	}
	e.phase = to
	return phaseChanged(caller, from, to), nil
}

// SubmitProposal appends a proposal. Any caller may submit, including the
// null identity; only the phase gates it.
func (e *Election) SubmitProposal(caller Identity, description string) (Event, error) {
	if err := e.requirePhase(ProposalsRegistrationStarted); err != nil {
		return Event{}, err
	}

	id := len(e.proposals)
	e.proposals = append(e.proposals, Proposal{ID: id, Description: description})
	return Event{Kind: EventProposalRegistered, Actor: caller, ProposalID: &id}, nil
}

// Vote records the caller's single vote for proposalID.
func (e *Election) Vote(caller Identity, proposalID int) (Event, error) {
	if err := e.requirePhase(VotingSessionStarted); err != nil {
		return Event{}, err
	}
	voter := e.voters[caller]
	if !voter.IsRegistered {
		return Event{}, fmt.Errorf("voter %q: %w", caller, ErrNotRegistered)
	}
	if voter.HasVoted {
		return Event{}, fmt.Errorf("voter %q: %w", caller, ErrAlreadyVoted)
	}
	if proposalID < 0 || proposalID >= len(e.proposals) {
		return Event{}, fmt.Errorf("proposal %d: %w", proposalID, ErrProposalNotFound)
	}

	voter.HasVoted = true
	voter.VotedProposalID = proposalID
	e.voters[caller] = voter
	e.proposals[proposalID].VoteCount++
	return Event{Kind: EventVoted, Actor: caller, ProposalID: &proposalID}, nil
}

// TallyVotes fixes the winning proposal and moves to VotesTallied.
func (e *Election) TallyVotes(caller Identity) (Event, error) {
	if err := e.requireOwner(caller); err != nil {
		return Event{}, err
	}
	if err := e.requirePhase(VotingSessionEnded); err != nil {
		return Event{}, err
	}
	winner, ok := Tally(e.proposals)
	if !ok {
		return Event{}, ErrNoProposals
	}

	e.winningProposalID = winner
	e.phase = VotesTallied
	ev := phaseChanged(caller, VotingSessionEnded, VotesTallied)
	ev.Kind = EventVotesTallied
	ev.ProposalID = &winner
	return ev, nil
}

// TransferOwnership replaces the owner. Allowed in every phase.
func (e *Election) TransferOwnership(caller, newOwner Identity) (Event, error) {
	if err := e.requireOwner(caller); err != nil {
		return Event{}, err
	}
	if newOwner.IsZero() {
		return Event{}, fmt.Errorf("new owner: %w", ErrInvalidIdentity)
	}

	e.owner = newOwner
	return Event{Kind: EventOwnershipTransferred, Actor: caller, Subject: newOwner}, nil
}

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package election implements the single-election voting state machine.

# Lifecycle

An election moves forward through six phases and never back:

	RegisteringVoters (0)
	  → ProposalsRegistrationStarted (1)
	  → ProposalsRegistrationEnded (2)
	  → VotingSessionStarted (3)
	  → VotingSessionEnded (4)
	  → VotesTallied (5)

Each transition is owner only and legal from exactly one phase.

# Operations

Every mutating method takes the caller identity first and returns the Event
it produced:

	e, _ := election.New("alice")
	e.RegisterVoter("alice", "bob")
	e.StartProposalsRegistration("alice")
	e.SubmitProposal("bob", "Pizza")
	e.EndProposalsRegistration("alice")
	e.StartVotingSession("alice")
	e.Vote("bob", 0)
	e.EndVotingSession("alice")
	e.TallyVotes("alice")

Failures wrap one of the sentinel errors (ErrUnauthorized, ErrInvalidPhase,
ErrAlreadyRegistered, ErrNotRegistered, ErrAlreadyVoted, ErrProposalNotFound,
ErrInvalidIdentity, ErrNoProposals); match them with errors.Is. A failed call
never changes state.

# Tally

The winner is the proposal with the most votes. Ties go to the lowest id.
Tallying with no proposals fails with ErrNoProposals.

# Concurrency

Election has no internal locking. The ledger package serializes access.
*/
package election

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

type EventKind string

const (
	EventVoterRegistered      EventKind = "voter_registered"
	EventPhaseChanged         EventKind = "phase_changed"
	EventProposalRegistered   EventKind = "proposal_registered"
	EventVoted                EventKind = "voted"
	EventVotesTallied         EventKind = "votes_tallied"
	EventOwnershipTransferred EventKind = "ownership_transferred"
)

// Event records one successful mutation. Fields not relevant to Kind are
// left empty.
type Event struct {
	Kind       EventKind `json:"kind"`
	Actor      Identity  `json:"actor,omitempty"`
	Subject    Identity  `json:"subject,omitempty"`
	ProposalID *int      `json:"proposal_id,omitempty"`
	From       *Phase    `json:"from,omitempty"`
	To         *Phase    `json:"to,omitempty"`
}

func phaseChanged(actor Identity, from, to Phase) Event {
	return Event{Kind: EventPhaseChanged, Actor: actor, From: &from, To: &to}
}

package models

import "time"

// Request types

type RegisterVoterRequest struct {
	Identity string `json:"identity"`
}

type SubmitProposalRequest struct {
	Description string `json:"description"`
}

// Pointer so a missing proposal_id is told apart from proposal 0
type VoteRequest struct {
	ProposalID *int `json:"proposal_id"`
}

type TransferOwnershipRequest struct {
	NewOwner string `json:"new_owner"`
}

// Response types

type StatusResponse struct {
	ElectionID        string `json:"election_id"`
	Status            uint8  `json:"status"`
	Phase             string `json:"phase"`
	Owner             string `json:"owner"`
	ProposalCount     int    `json:"proposal_count"`
	RegisteredVoters  int    `json:"registered_voters"`
	VotesCast         int    `json:"votes_cast"`
	WinningProposalID *int   `json:"winning_proposal_id,omitempty"`
}

type PhaseResponse struct {
	Status uint8  `json:"status"`
	Phase  string `json:"phase"`
}

type OwnerResponse struct {
	Owner string `json:"owner"`
}

type VoterResponse struct {
	Identity        string `json:"identity"`
	IsRegistered    bool   `json:"is_registered"`
	HasVoted        bool   `json:"has_voted"`
	VotedProposalID *int   `json:"voted_proposal_id,omitempty"`
}

type ProposalResponse struct {
	ID          int    `json:"id"`
	Description string `json:"description"`
	VoteCount   int    `json:"vote_count"`
}

type ProposalListResponse struct {
	Proposals []ProposalResponse `json:"proposals"`
}

type VoteResponse struct {
	ProposalID int    `json:"proposal_id"`
	Message    string `json:"message"`
}

type WinnerResponse struct {
	WinningProposalID int              `json:"winning_proposal_id"`
	Proposal          ProposalResponse `json:"proposal"`
}

type EventResponse struct {
	Seq        int64     `json:"seq"`
	Kind       string    `json:"kind"`
	Actor      string    `json:"actor,omitempty"`
	Subject    string    `json:"subject,omitempty"`
	ProposalID *int      `json:"proposal_id,omitempty"`
	From       *uint8    `json:"from,omitempty"`
	To         *uint8    `json:"to,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

type EventListResponse struct {
	Events []EventResponse `json:"events"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request and response types for the API.

# Request Types

Types for parsing incoming JSON:

  - RegisterVoterRequest: identity
  - SubmitProposalRequest: description
  - VoteRequest: proposal_id
  - TransferOwnershipRequest: new_owner

# Response Types

Types for JSON responses:

  - StatusResponse: phase, owner, counts, winner once tallied
  - PhaseResponse: status number and phase name after a transition
  - OwnerResponse: owner
  - VoterResponse: is_registered, has_voted, voted_proposal_id
  - ProposalResponse / ProposalListResponse
  - VoteResponse: proposal_id, message
  - WinnerResponse: winning_proposal_id, proposal
  - EventResponse / EventListResponse
  - ErrorResponse: error, message

Phase numbers follow the election lifecycle order, 0 (RegisteringVoters)
through 5 (VotesTallied).
*/
package models

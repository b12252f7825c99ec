// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the Quickly Vote API.

# Handler Types

Each handler is a struct holding the election ledger and config:

  - AdminHandler: Owner-only operations (voters, phase transitions, tally, ownership)
  - VotingHandler: Proposal submission and voting
  - ResultsHandler: Read-only views of the election

Handlers are created via constructor functions that accept *ledger.Ledger and Config:

	adminHandler := handlers.NewAdminHandler(l, cfg)

# Election Lifecycle

The election moves through six phases, one step at a time, driven by the owner:

	POST /election/voters                       → RegisterVoter
	POST /election/proposals-registration/start → StartProposalsRegistration
	POST /election/proposals                    → SubmitProposal (any caller)
	POST /election/proposals-registration/end   → EndProposalsRegistration
	POST /election/voting-session/start         → StartVotingSession
	POST /election/votes                        → Vote (registered voters, once)
	POST /election/voting-session/end           → EndVotingSession
	POST /election/tally                        → TallyVotes

# Identity

Callers send X-Identity and X-Identity-Key. The key is the HMAC of the
identity under IDENTITY_SALT. The API never returns keys; the operator
issues them out of band with -issue-key. Requests without X-Identity are
anonymous.

# Errors

Election errors map to statuses in writeElectionError:

	ErrUnauthorized, ErrNotRegistered                      → 403
	ErrInvalidPhase, ErrAlreadyRegistered, ErrAlreadyVoted → 409
	ErrNoProposals                                         → 409
	ErrProposalNotFound                                    → 404
	ErrInvalidIdentity                                     → 400
*/
package handlers

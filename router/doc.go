// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the Quickly Vote API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(l, cfg)

# Endpoints

Health:

	GET /health

Owner operations (requires X-Identity and X-Identity-Key of the owner):

	POST /election/owner                        - Transfer ownership
	POST /election/voters                       - Register voter
	POST /election/proposals-registration/start - Open proposals
	POST /election/proposals-registration/end   - Close proposals
	POST /election/voting-session/start         - Open voting
	POST /election/voting-session/end           - Close voting
	POST /election/tally                        - Tally votes

Proposals and votes:

	POST /election/proposals - Submit proposal (any caller)
	POST /election/votes     - Cast vote (registered voters)

Reads (public):

	GET /election                   - Status snapshot
	GET /election/owner             - Current owner
	GET /election/voters/{identity} - Voter record
	GET /election/proposals         - All proposals
	GET /election/proposals/{id}    - One proposal
	GET /election/winner            - Winning proposal (tallied only)
	GET /election/events            - Event log

Anything else is rejected by the mux with 404 or 405.
*/
package router

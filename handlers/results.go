// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/danielhkuo/quickly-vote/auth"
	"github.com/danielhkuo/quickly-vote/cliparse"
	"github.com/danielhkuo/quickly-vote/election"
	"github.com/danielhkuo/quickly-vote/ledger"
	"github.com/danielhkuo/quickly-vote/middleware"
	"github.com/danielhkuo/quickly-vote/models"
)

// ResultsHandler serves the read-only views. Reads never need an identity.
type ResultsHandler struct {
	ledger *ledger.Ledger
	cfg    cliparse.Config
}

func NewResultsHandler(l *ledger.Ledger, cfg cliparse.Config) *ResultsHandler {
	return &ResultsHandler{ledger: l, cfg: cfg}
}

// GetStatus handles GET /election
func (h *ResultsHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	snap := h.ledger.Snapshot()

	resp := models.StatusResponse{
		ElectionID:    h.ledger.ID(),
		Status:        uint8(snap.Phase),
		Phase:         snap.Phase.String(),
		Owner:         string(snap.Owner),
		ProposalCount: len(snap.Proposals),
	}
	for _, v := range snap.Voters {
		if v.IsRegistered {
			resp.RegisteredVoters++
		}
		if v.HasVoted {
			resp.VotesCast++
		}
	}
	if snap.Phase == election.VotesTallied {
		winner := snap.WinningProposalID
		resp.WinningProposalID = &winner
	}

	middleware.JSONResponse(w, http.StatusOK, resp)
}

// GetOwner handles GET /election/owner
func (h *ResultsHandler) GetOwner(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, models.OwnerResponse{
		Owner: string(h.ledger.Owner()),
	})
}

// GetVoter handles GET /election/voters/{identity}
// Unknown identities return an unregistered record, not 404
func (h *ResultsHandler) GetVoter(w http.ResponseWriter, r *http.Request) {
	identity, err := auth.NormalizeIdentity(r.PathValue("identity"))
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "identity is required")
		return
	}

	v := h.ledger.Voter(election.Identity(identity))
	resp := models.VoterResponse{
		Identity:     identity,
		IsRegistered: v.IsRegistered,
		HasVoted:     v.HasVoted,
	}
	if v.HasVoted {
		id := v.VotedProposalID
		resp.VotedProposalID = &id
	}

	middleware.JSONResponse(w, http.StatusOK, resp)
}

// ListProposals handles GET /election/proposals
func (h *ResultsHandler) ListProposals(w http.ResponseWriter, r *http.Request) {
	proposals := h.ledger.Proposals()

	resp := models.ProposalListResponse{Proposals: make([]models.ProposalResponse, 0, len(proposals))}
	for _, p := range proposals {
		resp.Proposals = append(resp.Proposals, proposalResponse(p))
	}

	middleware.JSONResponse(w, http.StatusOK, resp)
}

// GetProposal handles GET /election/proposals/{id}
func (h *ResultsHandler) GetProposal(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "proposal id must be an integer")
		return
	}

	p, ok := h.ledger.Proposal(id)
	if !ok {
		middleware.ErrorResponse(w, http.StatusNotFound, "Proposal not found")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, proposalResponse(p))
}

// GetWinner handles GET /election/winner
// Returns 409 until votes are tallied
func (h *ResultsHandler) GetWinner(w http.ResponseWriter, r *http.Request) {
	winner, ok := h.ledger.Winner()
	if !ok {
		middleware.ErrorResponse(w, http.StatusConflict, "Votes have not been tallied")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.WinnerResponse{
		WinningProposalID: winner.ID,
		Proposal:          proposalResponse(winner),
	})
}

// ListEvents handles GET /election/events
func (h *ResultsHandler) ListEvents(w http.ResponseWriter, r *http.Request) {
	records, err := h.ledger.Events(r.Context())
	if err != nil {
		slog.Error("failed to list events", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	resp := models.EventListResponse{Events: make([]models.EventResponse, 0, len(records))}
	for _, rec := range records {
		ev := models.EventResponse{
			Seq:        rec.Seq,
			Kind:       string(rec.Event.Kind),
			Actor:      string(rec.Event.Actor),
			Subject:    string(rec.Event.Subject),
			ProposalID: rec.Event.ProposalID,
			CreatedAt:  rec.CreatedAt,
		}
		if rec.Event.From != nil {
			from := uint8(*rec.Event.From)
			ev.From = &from
		}
		if rec.Event.To != nil {
			to := uint8(*rec.Event.To)
			ev.To = &to
		}
		resp.Events = append(resp.Events, ev)
	}

	middleware.JSONResponse(w, http.StatusOK, resp)
}

func proposalResponse(p election.Proposal) models.ProposalResponse {
	return models.ProposalResponse{
		ID:          p.ID,
		Description: p.Description,
		VoteCount:   p.VoteCount,
	}
}

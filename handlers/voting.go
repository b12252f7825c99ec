// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/danielhkuo/quickly-vote/cliparse"
	"github.com/danielhkuo/quickly-vote/ledger"
	"github.com/danielhkuo/quickly-vote/middleware"
	"github.com/danielhkuo/quickly-vote/models"
)

// VotingHandler serves proposal submission and voting.
type VotingHandler struct {
	ledger *ledger.Ledger
	cfg    cliparse.Config
}

func NewVotingHandler(l *ledger.Ledger, cfg cliparse.Config) *VotingHandler {
	return &VotingHandler{ledger: l, cfg: cfg}
}

// SubmitProposal handles POST /election/proposals
// Any caller may submit, anonymous included
func (h *VotingHandler) SubmitProposal(w http.ResponseWriter, r *http.Request) {
	caller, ok := authenticate(w, r, h.cfg.IdentitySalt)
	if !ok {
		return
	}

	var req models.SubmitProposalRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if strings.TrimSpace(req.Description) == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "description is required")
		return
	}

	proposal, err := h.ledger.SubmitProposal(r.Context(), caller, req.Description)
	if err != nil {
		writeElectionError(w, err, "submit proposal")
		return
	}

	slog.Info("proposal submitted", "proposal_id", proposal.ID, "caller", caller)

	middleware.JSONResponse(w, http.StatusCreated, proposalResponse(proposal))
}

// Vote handles POST /election/votes
func (h *VotingHandler) Vote(w http.ResponseWriter, r *http.Request) {
	caller, ok := authenticate(w, r, h.cfg.IdentitySalt)
	if !ok {
		return
	}

	var req models.VoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.ProposalID == nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "proposal_id is required")
		return
	}

	if _, err := h.ledger.Vote(r.Context(), caller, *req.ProposalID); err != nil {
		writeElectionError(w, err, "vote")
		return
	}

	slog.Info("vote recorded", "proposal_id", *req.ProposalID)

	middleware.JSONResponse(w, http.StatusCreated, models.VoteResponse{
		ProposalID: *req.ProposalID,
		Message:    "Vote recorded",
	})
}

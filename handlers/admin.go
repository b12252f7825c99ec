// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/quickly-vote/cliparse"
	"github.com/danielhkuo/quickly-vote/election"
	"github.com/danielhkuo/quickly-vote/ledger"
	"github.com/danielhkuo/quickly-vote/middleware"
	"github.com/danielhkuo/quickly-vote/models"
)

// AdminHandler serves the owner-only operations.
type AdminHandler struct {
	ledger *ledger.Ledger
	cfg    cliparse.Config
}

func NewAdminHandler(l *ledger.Ledger, cfg cliparse.Config) *AdminHandler {
	return &AdminHandler{ledger: l, cfg: cfg}
}

// RegisterVoter handles POST /election/voters
func (h *AdminHandler) RegisterVoter(w http.ResponseWriter, r *http.Request) {
	caller, ok := authenticate(w, r, h.cfg.IdentitySalt)
	if !ok {
		return
	}

	var req models.RegisterVoterRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	identity, ok := requestIdentity(w, req.Identity, "identity")
	if !ok {
		return
	}

	if _, err := h.ledger.RegisterVoter(r.Context(), caller, identity); err != nil {
		writeElectionError(w, err, "register voter")
		return
	}

	slog.Info("voter registered", "identity", identity)

	middleware.JSONResponse(w, http.StatusCreated, models.VoterResponse{
		Identity:     string(identity),
		IsRegistered: true,
	})
}

// StartProposalsRegistration handles POST /election/proposals-registration/start
func (h *AdminHandler) StartProposalsRegistration(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, "start proposals registration", h.ledger.StartProposalsRegistration)
}

// EndProposalsRegistration handles POST /election/proposals-registration/end
func (h *AdminHandler) EndProposalsRegistration(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, "end proposals registration", h.ledger.EndProposalsRegistration)
}

// StartVotingSession handles POST /election/voting-session/start
func (h *AdminHandler) StartVotingSession(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, "start voting session", h.ledger.StartVotingSession)
}

// EndVotingSession handles POST /election/voting-session/end
func (h *AdminHandler) EndVotingSession(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, "end voting session", h.ledger.EndVotingSession)
}

func (h *AdminHandler) transition(w http.ResponseWriter, r *http.Request, op string, fn func(context.Context, election.Identity) (election.Event, error)) {
	caller, ok := authenticate(w, r, h.cfg.IdentitySalt)
	if !ok {
		return
	}

	ev, err := fn(r.Context(), caller)
	if err != nil {
		writeElectionError(w, err, op)
		return
	}

	slog.Info("phase changed", "from", ev.From.String(), "to", ev.To.String())

	middleware.JSONResponse(w, http.StatusOK, models.PhaseResponse{
		Status: uint8(*ev.To),
		Phase:  ev.To.String(),
	})
}

// TallyVotes handles POST /election/tally
func (h *AdminHandler) TallyVotes(w http.ResponseWriter, r *http.Request) {
	caller, ok := authenticate(w, r, h.cfg.IdentitySalt)
	if !ok {
		return
	}

	winner, err := h.ledger.TallyVotes(r.Context(), caller)
	if err != nil {
		writeElectionError(w, err, "tally votes")
		return
	}

	slog.Info("votes tallied", "winning_proposal_id", winner.ID, "votes", winner.VoteCount)

	middleware.JSONResponse(w, http.StatusOK, models.WinnerResponse{
		WinningProposalID: winner.ID,
		Proposal:          proposalResponse(winner),
	})
}

// TransferOwnership handles POST /election/owner
func (h *AdminHandler) TransferOwnership(w http.ResponseWriter, r *http.Request) {
	caller, ok := authenticate(w, r, h.cfg.IdentitySalt)
	if !ok {
		return
	}

	var req models.TransferOwnershipRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	newOwner, ok := requestIdentity(w, req.NewOwner, "new_owner")
	if !ok {
		return
	}

	if _, err := h.ledger.TransferOwnership(r.Context(), caller, newOwner); err != nil {
		writeElectionError(w, err, "transfer ownership")
		return
	}

	slog.Info("ownership transferred", "from", caller, "to", newOwner)

	middleware.JSONResponse(w, http.StatusOK, models.OwnerResponse{
		Owner: string(newOwner),
	})
}

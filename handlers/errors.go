// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/quickly-vote/auth"
	"github.com/danielhkuo/quickly-vote/election"
	"github.com/danielhkuo/quickly-vote/middleware"
)

// authenticate resolves the caller. Anonymous requests get the empty
// identity; a bad identity key is rejected with 401.
func authenticate(w http.ResponseWriter, r *http.Request, salt string) (election.Identity, bool) {
	caller, err := middleware.CallerIdentity(r, salt)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid identity or identity key")
		return "", false
	}
	return caller, true
}

// requestIdentity normalizes an identity from a request body. Blank values
// pass through as the null identity so the election reports them in its own
// check order.
func requestIdentity(w http.ResponseWriter, raw, field string) (election.Identity, bool) {
	id, err := auth.NormalizeIdentity(raw)
	if err == nil {
		return election.Identity(id), true
	}
	if election.Identity(raw).IsZero() {
		return "", true
	}
	middleware.ErrorResponse(w, http.StatusBadRequest, field+" is not a valid identity")
	return "", false
}

// writeElectionError maps election errors to HTTP statuses. Anything else is
// a storage failure and is logged.
func writeElectionError(w http.ResponseWriter, err error, op string) {
	switch {
	case errors.Is(err, election.ErrUnauthorized),
		errors.Is(err, election.ErrNotRegistered):
		middleware.ErrorResponse(w, http.StatusForbidden, err.Error())
	case errors.Is(err, election.ErrInvalidPhase),
		errors.Is(err, election.ErrAlreadyRegistered),
		errors.Is(err, election.ErrAlreadyVoted),
		errors.Is(err, election.ErrNoProposals):
		middleware.ErrorResponse(w, http.StatusConflict, err.Error())
	case errors.Is(err, election.ErrProposalNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, err.Error())
	case errors.Is(err, election.ErrInvalidIdentity):
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
	default:
		slog.Error("election operation failed", "op", op, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to "+op)
	}
}

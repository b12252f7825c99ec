// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import "errors"

var (
	ErrUnauthorized      = errors.New("caller is not authorized")
	ErrInvalidPhase      = errors.New("operation not allowed in current phase")
	ErrAlreadyRegistered = errors.New("voter is already registered")
	ErrNotRegistered     = errors.New("voter is not registered")
	ErrAlreadyVoted      = errors.New("voter has already voted")
	ErrProposalNotFound  = errors.New("proposal not found")
	ErrInvalidIdentity   = errors.New("invalid identity")
	ErrNoProposals       = errors.New("no proposals to tally")
	ErrInvalidSnapshot   = errors.New("invalid election snapshot")
)

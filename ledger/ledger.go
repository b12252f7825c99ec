// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/danielhkuo/quickly-vote/db"
	"github.com/danielhkuo/quickly-vote/election"
)

// Store is the persistence the ledger needs. *db.Store implements it.
type Store interface {
	Create(ctx context.Context, snap election.Snapshot) (string, error)
	Load(ctx context.Context) (string, election.Snapshot, error)
	Save(ctx context.Context, id string, snap election.Snapshot, ev election.Event) (int64, error)
	Events(ctx context.Context, id string) ([]db.EventRecord, error)
}

// Ledger serializes every operation against the one election. Each
// mutation runs on a clone that replaces the live state only after the
// store accepted it.
type Ledger struct {
	mu     sync.Mutex
	store  Store
	id     string
	state  *election.Election
	logger *slog.Logger
}

// Open loads the stored election, or creates one owned by owner when the
// store is empty. created reports which happened.
func Open(ctx context.Context, store Store, owner election.Identity, logger *slog.Logger) (l *Ledger, created bool, err error) {
	logger = resolveLogger(logger)

	id, snap, err := store.Load(ctx)
	switch {
	case errors.Is(err, db.ErrNoElection):
		e, err := election.New(owner)
		if err != nil {
			return nil, false, err
		}
		id, err = store.Create(ctx, e.Snapshot())
		if err != nil {
			return nil, false, fmt.Errorf("failed to create election: %w", err)
		}
		logger.Info("election created", "election_id", id, "owner", owner)
		return &Ledger{store: store, id: id, state: e, logger: logger}, true, nil
	case err != nil:
		return nil, false, fmt.Errorf("failed to load election: %w", err)
	}

	e, err := election.Restore(snap)
	if err != nil {
		return nil, false, fmt.Errorf("election %s: %w", id, err)
	}
	logger.Info("election loaded", "election_id", id, "phase", e.Status().String(), "proposals", len(snap.Proposals))
	return &Ledger{store: store, id: id, state: e, logger: logger}, false, nil
}

func resolveLogger(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.Default()
	}
	return logger
}

// ID returns the storage id of the election.
func (l *Ledger) ID() string {
	return l.id
}

func (l *Ledger) apply(ctx context.Context, op string, caller election.Identity, fn func(*election.Election) (election.Event, error)) (election.Event, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	next := l.state.Clone()
	ev, err := fn(next)
	if err != nil {
		l.logger.Debug("operation rejected", "op", op, "caller", caller, "error", err)
		return election.Event{}, err
	}

	seq, err := l.store.Save(ctx, l.id, next.Snapshot(), ev)
	if err != nil {
		l.logger.Error("failed to persist operation", "op", op, "election_id", l.id, "error", err)
		return election.Event{}, fmt.Errorf("failed to persist %s: %w", op, err)
	}

	l.state = next
	l.logger.Info("operation applied", "op", op, "caller", caller, "event", ev.Kind, "seq", seq, "phase", next.Status().String())
	return ev, nil
}

func (l *Ledger) RegisterVoter(ctx context.Context, caller, voter election.Identity) (election.Event, error) {
	return l.apply(ctx, "registerVoter", caller, func(e *election.Election) (election.Event, error) {
		return e.RegisterVoter(caller, voter)
	})
}

func (l *Ledger) StartProposalsRegistration(ctx context.Context, caller election.Identity) (election.Event, error) {
	return l.apply(ctx, "startProposalsRegistration", caller, func(e *election.Election) (election.Event, error) {
		return e.StartProposalsRegistration(caller)
	})
}

func (l *Ledger) EndProposalsRegistration(ctx context.Context, caller election.Identity) (election.Event, error) {
	return l.apply(ctx, "endProposalsRegistration", caller, func(e *election.Election) (election.Event, error) {
		return e.EndProposalsRegistration(caller)
	})
}

func (l *Ledger) StartVotingSession(ctx context.Context, caller election.Identity) (election.Event, error) {
	return l.apply(ctx, "startVotingSession", caller, func(e *election.Election) (election.Event, error) {
		return e.StartVotingSession(caller)
	})
}

func (l *Ledger) EndVotingSession(ctx context.Context, caller election.Identity) (election.Event, error) {
	return l.apply(ctx, "endVotingSession", caller, func(e *election.Election) (election.Event, error) {
		return e.EndVotingSession(caller)
	})
}

// SubmitProposal returns the stored proposal with its assigned id.
func (l *Ledger) SubmitProposal(ctx context.Context, caller election.Identity, description string) (election.Proposal, error) {
	ev, err := l.apply(ctx, "submitProposal", caller, func(e *election.Election) (election.Event, error) {
		return e.SubmitProposal(caller, description)
	})
	if err != nil {
		return election.Proposal{}, err
	}
	return election.Proposal{ID: *ev.ProposalID, Description: description}, nil
}

func (l *Ledger) Vote(ctx context.Context, caller election.Identity, proposalID int) (election.Event, error) {
	return l.apply(ctx, "vote", caller, func(e *election.Election) (election.Event, error) {
		return e.Vote(caller, proposalID)
	})
}

// TallyVotes returns the winning proposal.
func (l *Ledger) TallyVotes(ctx context.Context, caller election.Identity) (election.Proposal, error) {
	_, err := l.apply(ctx, "tallyVotes", caller, func(e *election.Election) (election.Event, error) {
		return e.TallyVotes(caller)
	})
	if err != nil {
		return election.Proposal{}, err
	}
	w, _ := l.Winner()
	return w, nil
}

func (l *Ledger) TransferOwnership(ctx context.Context, caller, newOwner election.Identity) (election.Event, error) {
	return l.apply(ctx, "transferOwnership", caller, func(e *election.Election) (election.Event, error) {
		return e.TransferOwnership(caller, newOwner)
	})
}

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ledger

import (
	"context"

	"github.com/danielhkuo/quickly-vote/db"
	"github.com/danielhkuo/quickly-vote/election"
)

func (l *Ledger) Status() election.Phase {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state.Status()
}

func (l *Ledger) Owner() election.Identity {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state.Owner()
}

func (l *Ledger) Voter(id election.Identity) election.Voter {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state.Voter(id)
}

// WinningProposalID reports the winner id and whether votes were tallied.
func (l *Ledger) WinningProposalID() (int, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state.WinningProposalID(), l.state.Tallied()
}

func (l *Ledger) Proposals() []election.Proposal {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state.Proposals()
}

func (l *Ledger) Proposal(id int) (election.Proposal, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state.Proposal(id)
}

func (l *Ledger) Winner() (election.Proposal, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state.Winner()
}

// Snapshot returns a copy of the whole election state.
func (l *Ledger) Snapshot() election.Snapshot {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state.Snapshot()
}

// Events reads the persisted event log.
func (l *Ledger) Events(ctx context.Context) ([]db.EventRecord, error) {
	return l.store.Events(ctx, l.id)
}

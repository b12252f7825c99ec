// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/quickly-vote/election"
)

var ErrNoElection = errors.New("no election stored")

// EventRecord is one persisted election event.
type EventRecord struct {
	Seq       int64
	Event     election.Event
	CreatedAt time.Time
}

// Store persists the election snapshot and its event log.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db, now: time.Now}
}

func toMillis(t time.Time) int64 {
	return t.UTC().UnixMilli()
}

func fromMillis(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}

// Create inserts a new election and returns its id.
func (s *Store) Create(ctx context.Context, snap election.Snapshot) (string, error) {
	id := uuid.NewString()
	now := toMillis(s.now())

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO election (id, phase, owner, winning_proposal_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, id, int(snap.Phase), string(snap.Owner), winningColumn(snap), now, now)
	if err != nil {
		return "", fmt.Errorf("failed to insert election: %w", err)
	}

	if err := writeRegistries(ctx, tx, id, snap); err != nil {
		return "", err
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit transaction: %w", err)
	}
	return id, nil
}

// Load returns the stored election. ErrNoElection if none exists.
func (s *Store) Load(ctx context.Context) (string, election.Snapshot, error) {
	var (
		id      string
		phase   int
		owner   string
		winning sql.NullInt64
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT id, phase, owner, winning_proposal_id
		FROM election
		ORDER BY created_at
		LIMIT 1
	`).Scan(&id, &phase, &owner, &winning)
	if err == sql.ErrNoRows {
		return "", election.Snapshot{}, ErrNoElection
	}
	if err != nil {
		return "", election.Snapshot{}, fmt.Errorf("failed to query election: %w", err)
	}

	snap := election.Snapshot{
		Phase:             election.Phase(phase),
		Owner:             election.Identity(owner),
		WinningProposalID: int(winning.Int64),
		Voters:            make(map[election.Identity]election.Voter),
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, description, vote_count
		FROM proposal
		WHERE election_id = $1
		ORDER BY id
	`, id)
	if err != nil {
		return "", election.Snapshot{}, fmt.Errorf("failed to query proposals: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var p election.Proposal
		if err := rows.Scan(&p.ID, &p.Description, &p.VoteCount); err != nil {
			return "", election.Snapshot{}, fmt.Errorf("failed to scan proposal: %w", err)
		}
		snap.Proposals = append(snap.Proposals, p)
	}
	if err := rows.Err(); err != nil {
		return "", election.Snapshot{}, fmt.Errorf("failed to read proposals: %w", err)
	}
	// Release the connection before the next query; SQLite runs with one.
	rows.Close()

	vrows, err := s.db.QueryContext(ctx, `
		SELECT identity, is_registered, has_voted, voted_proposal_id
		FROM voter
		WHERE election_id = $1
	`, id)
	if err != nil {
		return "", election.Snapshot{}, fmt.Errorf("failed to query voters: %w", err)
	}
	defer vrows.Close()

	for vrows.Next() {
		var (
			identity string
			v        election.Voter
			voted    sql.NullInt64
		)
		if err := vrows.Scan(&identity, &v.IsRegistered, &v.HasVoted, &voted); err != nil {
			return "", election.Snapshot{}, fmt.Errorf("failed to scan voter: %w", err)
		}
		v.VotedProposalID = int(voted.Int64)
		snap.Voters[election.Identity(identity)] = v
	}
	if err := vrows.Err(); err != nil {
		return "", election.Snapshot{}, fmt.Errorf("failed to read voters: %w", err)
	}

	return id, snap, nil
}

// Save records ev against election id in one transaction. snap is the state
// after ev; only the rows ev changed are written, then ev is appended to the
// log. It returns the event's sequence number.
func (s *Store) Save(ctx context.Context, id string, snap election.Snapshot, ev election.Event) (int64, error) {
	payload, err := json.Marshal(ev)
	if err != nil {
		return 0, fmt.Errorf("failed to encode event: %w", err)
	}
	now := toMillis(s.now())

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		UPDATE election
		SET phase = $1, owner = $2, winning_proposal_id = $3, updated_at = $4
		WHERE id = $5
	`, int(snap.Phase), string(snap.Owner), winningColumn(snap), now, id)
	if err != nil {
		return 0, fmt.Errorf("failed to update election: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n != 1 {
		return 0, fmt.Errorf("election %s: %w", id, ErrNoElection)
	}

	if err := applyEvent(ctx, tx, id, snap, ev); err != nil {
		return 0, err
	}

	var seq int64
	err = tx.QueryRowContext(ctx, `
		SELECT COALESCE(MAX(seq), 0) + 1 FROM election_event WHERE election_id = $1
	`, id).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("failed to read event sequence: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO election_event (election_id, seq, kind, payload, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, id, seq, string(ev.Kind), string(payload), now)
	if err != nil {
		return 0, fmt.Errorf("failed to insert event: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return seq, nil
}

// applyEvent writes the proposal and voter rows touched by ev. Phase, owner
// and tally events live entirely in the election row.
func applyEvent(ctx context.Context, tx *sql.Tx, id string, snap election.Snapshot, ev election.Event) error {
	switch ev.Kind {
	case election.EventVoterRegistered:
		v := snap.Voters[ev.Subject]
		return insertVoter(ctx, tx, id, ev.Subject, v)

	case election.EventProposalRegistered:
		p, err := eventProposal(snap, ev)
		if err != nil {
			return err
		}
		return insertProposal(ctx, tx, id, p)

	case election.EventVoted:
		p, err := eventProposal(snap, ev)
		if err != nil {
			return err
		}
		res, err := tx.ExecContext(ctx, `
			UPDATE proposal SET vote_count = vote_count + 1
			WHERE election_id = $1 AND id = $2
		`, id, p.ID)
		if err := expectOneRow(res, err, fmt.Sprintf("proposal %d", p.ID)); err != nil {
			return err
		}
		res, err = tx.ExecContext(ctx, `
			UPDATE voter SET has_voted = $1, voted_proposal_id = $2
			WHERE election_id = $3 AND identity = $4 AND has_voted = $5
		`, true, p.ID, id, string(ev.Actor), false)
		return expectOneRow(res, err, fmt.Sprintf("voter %q", ev.Actor))

	case election.EventPhaseChanged, election.EventVotesTallied, election.EventOwnershipTransferred:
		return nil
	}
	return fmt.Errorf("unknown event kind %q", ev.Kind)
}

func eventProposal(snap election.Snapshot, ev election.Event) (election.Proposal, error) {
	if ev.ProposalID == nil || *ev.ProposalID < 0 || *ev.ProposalID >= len(snap.Proposals) {
		return election.Proposal{}, fmt.Errorf("%s event: %w", ev.Kind, election.ErrProposalNotFound)
	}
	return snap.Proposals[*ev.ProposalID], nil
}

func expectOneRow(res sql.Result, err error, what string) error {
	if err != nil {
		return fmt.Errorf("failed to update %s: %w", what, err)
	}
	if n, err := res.RowsAffected(); err == nil && n != 1 {
		return fmt.Errorf("failed to update %s: %d rows matched", what, n)
	}
	return nil
}

// Events returns the event log of election id in sequence order.
func (s *Store) Events(ctx context.Context, id string) ([]EventRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT seq, payload, created_at
		FROM election_event
		WHERE election_id = $1
		ORDER BY seq
	`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer rows.Close()

	records := []EventRecord{}
	for rows.Next() {
		var (
			rec     EventRecord
			payload string
			created int64
		)
		if err := rows.Scan(&rec.Seq, &payload, &created); err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		if err := json.Unmarshal([]byte(payload), &rec.Event); err != nil {
			return nil, fmt.Errorf("failed to decode event %d: %w", rec.Seq, err)
		}
		rec.CreatedAt = fromMillis(created)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read events: %w", err)
	}
	return records, nil
}

func writeRegistries(ctx context.Context, tx *sql.Tx, id string, snap election.Snapshot) error {
	for _, p := range snap.Proposals {
		if err := insertProposal(ctx, tx, id, p); err != nil {
			return err
		}
	}
	for identity, v := range snap.Voters {
		if err := insertVoter(ctx, tx, id, identity, v); err != nil {
			return err
		}
	}
	return nil
}

func insertProposal(ctx context.Context, tx *sql.Tx, id string, p election.Proposal) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO proposal (election_id, id, description, vote_count)
		VALUES ($1, $2, $3, $4)
	`, id, p.ID, p.Description, p.VoteCount)
	if err != nil {
		return fmt.Errorf("failed to insert proposal %d: %w", p.ID, err)
	}
	return nil
}

func insertVoter(ctx context.Context, tx *sql.Tx, id string, identity election.Identity, v election.Voter) error {
	var voted sql.NullInt64
	if v.HasVoted {
		voted = sql.NullInt64{Int64: int64(v.VotedProposalID), Valid: true}
	}
	_, err := tx.ExecContext(ctx, `
		INSERT INTO voter (election_id, identity, is_registered, has_voted, voted_proposal_id)
		VALUES ($1, $2, $3, $4, $5)
	`, id, string(identity), v.IsRegistered, v.HasVoted, voted)
	if err != nil {
		return fmt.Errorf("failed to insert voter %q: %w", identity, err)
	}
	return nil
}

func winningColumn(snap election.Snapshot) sql.NullInt64 {
	if snap.Phase != election.VotesTallied {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(snap.WinningProposalID), Valid: true}
}

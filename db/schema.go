// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// Timestamps are unix milliseconds so the same schema works on SQLite and
// PostgreSQL.
const schema = `
-- Election (one row per deployment)
CREATE TABLE IF NOT EXISTS election (
    id TEXT PRIMARY KEY,
    phase INTEGER NOT NULL CHECK (phase BETWEEN 0 AND 5),
    owner TEXT NOT NULL,
    winning_proposal_id INTEGER,
    created_at BIGINT NOT NULL,
    updated_at BIGINT NOT NULL
);

-- Proposals, id is the dense submission index
CREATE TABLE IF NOT EXISTS proposal (
    election_id TEXT NOT NULL REFERENCES election(id) ON DELETE CASCADE,
    id INTEGER NOT NULL,
    description TEXT NOT NULL,
    vote_count INTEGER NOT NULL DEFAULT 0 CHECK (vote_count >= 0),
    PRIMARY KEY (election_id, id)
);

-- Voters
CREATE TABLE IF NOT EXISTS voter (
    election_id TEXT NOT NULL REFERENCES election(id) ON DELETE CASCADE,
    identity TEXT NOT NULL,
    is_registered BOOLEAN NOT NULL,
    has_voted BOOLEAN NOT NULL,
    voted_proposal_id INTEGER,
    PRIMARY KEY (election_id, identity)
);

-- Event log
CREATE TABLE IF NOT EXISTS election_event (
    election_id TEXT NOT NULL REFERENCES election(id) ON DELETE CASCADE,
    seq BIGINT NOT NULL,
    kind TEXT NOT NULL,
    payload TEXT NOT NULL,
    created_at BIGINT NOT NULL,
    PRIMARY KEY (election_id, seq)
);

CREATE INDEX IF NOT EXISTS idx_election_event_kind ON election_event(election_id, kind);
`

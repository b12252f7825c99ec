// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database schema creation and election persistence.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.
The same schema runs on PostgreSQL (lib/pq) and SQLite (modernc.org/sqlite).

# Tables

  - election: phase, owner and winning proposal of the single election
  - proposal: proposals keyed by their dense submission index
  - voter: registration and vote record per identity
  - election_event: append-only log of successful operations

# Relationships

	election 1──* proposal
	election 1──* voter
	election 1──* election_event

All foreign keys use ON DELETE CASCADE.

# Store

Store reads and writes whole election snapshots:

	store := db.NewStore(conn)
	id, snap, err := store.Load(ctx)
	seq, err := store.Save(ctx, id, e.Snapshot(), event)

Save writes only the rows the event changed (one voter insert per
registration, one proposal insert per submission, a vote_count increment and
one voter update per vote, the election row for everything else) and
appends the event, all inside one transaction, so a failed write leaves the
previous state intact.
*/
package db

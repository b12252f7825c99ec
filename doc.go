// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Quickly Vote API server.

Quickly Vote runs a single election: the owner registers voters, opens and
closes proposal registration, opens and closes voting, then tallies. The
proposal with the most votes wins and ties go to the lowest proposal id.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	DATABASE_URL=vote.db IDENTITY_SALT=... OWNER_IDENTITY=0xOwner go run .

Or with flags:

	go run . -p 3318 -d "postgres://..." -t postgres --owner 0xOwner --identity-salt ...

Settings are also read from a .env file (-env to point elsewhere).

# Configuration

Required settings:

  - DATABASE_URL (-d): SQLite path or PostgreSQL connection string
  - IDENTITY_SALT (--identity-salt): Secret for identity key HMAC
  - OWNER_IDENTITY (--owner): Owner of a newly created election

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)

On first boot the election is created. Identity keys, the owner's
included, are printed by the operator:

	IDENTITY_SALT=... go run . -issue-key 0xOwner

# Architecture

  - election: Phase state machine, registries, tally
  - ledger: Serialized, persisted access to the election
  - handlers: HTTP request handlers (admin, voting, results)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers, caller identity
  - models: Request/response types
  - auth: Identity keys
  - db: Schema and snapshot store
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main

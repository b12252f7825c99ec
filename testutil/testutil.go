// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	_ "modernc.org/sqlite"

	"github.com/danielhkuo/quickly-vote/auth"
	"github.com/danielhkuo/quickly-vote/cliparse"
	"github.com/danielhkuo/quickly-vote/db"
	"github.com/danielhkuo/quickly-vote/election"
	"github.com/danielhkuo/quickly-vote/ledger"
	"github.com/danielhkuo/quickly-vote/middleware"
)

// TestOwner owns every election created by NewTestLedger
const TestOwner = "0xOwner"

// SetupTestDB creates a fresh in-memory SQLite database with the full schema
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	// Every connection to :memory: is its own database
	conn.SetMaxOpenConns(1)

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:          3318,
		DatabaseURL:   ":memory:",
		DatabaseType:  "sqlite",
		IdentitySalt:  "test-identity-salt",
		OwnerIdentity: TestOwner,
	}
}

// NewTestLedger opens a ledger on conn, creating an election owned by TestOwner
func NewTestLedger(t *testing.T, conn *sql.DB) *ledger.Ledger {
	t.Helper()

	l, _, err := ledger.Open(context.Background(), db.NewStore(conn), TestOwner, nil)
	if err != nil {
		t.Fatalf("Failed to open ledger: %v", err)
	}
	return l
}

// AdvanceTo drives l to phase as TestOwner, submitting the given proposals
// while proposal registration is open. Voters must be registered beforehand.
func AdvanceTo(t *testing.T, l *ledger.Ledger, phase election.Phase, proposals ...string) {
	t.Helper()
	ctx := context.Background()

	for l.Status() < phase {
		var err error
		switch l.Status() {
		case election.RegisteringVoters:
			_, err = l.StartProposalsRegistration(ctx, TestOwner)
		case election.ProposalsRegistrationStarted:
			for _, d := range proposals {
				if _, err := l.SubmitProposal(ctx, TestOwner, d); err != nil {
					t.Fatalf("Failed to submit proposal: %v", err)
				}
			}
			_, err = l.EndProposalsRegistration(ctx, TestOwner)
		case election.ProposalsRegistrationEnded:
			_, err = l.StartVotingSession(ctx, TestOwner)
		case election.VotingSessionStarted:
			_, err = l.EndVotingSession(ctx, TestOwner)
		case election.VotingSessionEnded:
			_, err = l.TallyVotes(ctx, TestOwner)
		}
		if err != nil {
			t.Fatalf("Failed to advance from %s: %v", l.Status(), err)
		}
	}
}

// IdentityHeaders returns the headers authenticating identity
func IdentityHeaders(cfg cliparse.Config, identity string) map[string]string {
	return map[string]string{
		middleware.HeaderIdentity:    identity,
		middleware.HeaderIdentityKey: auth.GenerateIdentityKey(identity, cfg.IdentitySalt),
	}
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}

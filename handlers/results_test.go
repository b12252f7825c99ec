// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/quickly-vote/election"
	"github.com/danielhkuo/quickly-vote/models"
	"github.com/danielhkuo/quickly-vote/testutil"
)

func TestGetStatus(t *testing.T) {
	l, cfg := newTestLedger(t)
	handler := NewResultsHandler(l, cfg)

	w := httptest.NewRecorder()
	handler.GetStatus(w, testutil.MakeRequest("GET", "/election", nil, nil))
	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.StatusResponse
	testutil.AssertJSON(t, w, &resp)

	if resp.ElectionID == "" {
		t.Error("Expected election_id")
	}
	if resp.Status != 0 || resp.Phase != "RegisteringVoters" {
		t.Errorf("Expected fresh election in RegisteringVoters, got %d/%s", resp.Status, resp.Phase)
	}
	if resp.Owner != testutil.TestOwner {
		t.Errorf("Expected owner %s, got %s", testutil.TestOwner, resp.Owner)
	}
	if resp.WinningProposalID != nil {
		t.Error("winning_proposal_id must be absent before tally")
	}
}

func TestGetStatus_Tallied(t *testing.T) {
	l, cfg := newTestLedger(t)
	handler := NewResultsHandler(l, cfg)
	ctx := context.Background()

	for _, v := range []election.Identity{"0xAlice", "0xBob"} {
		if _, err := l.RegisterVoter(ctx, testutil.TestOwner, v); err != nil {
			t.Fatalf("Failed to register voter: %v", err)
		}
	}
	testutil.AdvanceTo(t, l, election.VotingSessionStarted, "P0", "P1")
	if _, err := l.Vote(ctx, "0xBob", 1); err != nil {
		t.Fatalf("Failed to vote: %v", err)
	}
	testutil.AdvanceTo(t, l, election.VotesTallied)

	w := httptest.NewRecorder()
	handler.GetStatus(w, testutil.MakeRequest("GET", "/election", nil, nil))
	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.StatusResponse
	testutil.AssertJSON(t, w, &resp)

	if resp.Status != 5 {
		t.Errorf("Expected status 5, got %d", resp.Status)
	}
	if resp.ProposalCount != 2 || resp.RegisteredVoters != 2 || resp.VotesCast != 1 {
		t.Errorf("Unexpected counts: %+v", resp)
	}
	if resp.WinningProposalID == nil || *resp.WinningProposalID != 1 {
		t.Errorf("Expected winning proposal 1, got %v", resp.WinningProposalID)
	}
}

func TestGetOwner(t *testing.T) {
	l, cfg := newTestLedger(t)
	handler := NewResultsHandler(l, cfg)

	w := httptest.NewRecorder()
	handler.GetOwner(w, testutil.MakeRequest("GET", "/election/owner", nil, nil))
	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.OwnerResponse
	testutil.AssertJSON(t, w, &resp)

	if resp.Owner != testutil.TestOwner {
		t.Errorf("Expected owner %s, got %s", testutil.TestOwner, resp.Owner)
	}
}

func TestGetVoter(t *testing.T) {
	l, cfg := newTestLedger(t)
	handler := NewResultsHandler(l, cfg)
	ctx := context.Background()

	for _, v := range []election.Identity{"0xAlice", "0xBob"} {
		if _, err := l.RegisterVoter(ctx, testutil.TestOwner, v); err != nil {
			t.Fatalf("Failed to register voter: %v", err)
		}
	}
	testutil.AdvanceTo(t, l, election.VotingSessionStarted, "P0", "P1")
	if _, err := l.Vote(ctx, "0xAlice", 0); err != nil {
		t.Fatalf("Failed to vote: %v", err)
	}

	tests := []struct {
		name            string
		identity        string
		expectedStatus  int
		registered      bool
		voted           bool
		votedProposalID *int
	}{
		{"voted", "0xAlice", http.StatusOK, true, true, new(int)},
		{"registered only", "0xBob", http.StatusOK, true, false, nil},
		{"unknown identity", "0xNobody", http.StatusOK, false, false, nil},
		{"blank identity", " ", http.StatusBadRequest, false, false, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.MakeRequest("GET", "/election/voters/x", nil, nil)
			req.SetPathValue("identity", tt.identity)
			w := httptest.NewRecorder()

			handler.GetVoter(w, req)

			testutil.AssertStatus(t, w, tt.expectedStatus)
			if tt.expectedStatus != http.StatusOK {
				return
			}

			var resp models.VoterResponse
			testutil.AssertJSON(t, w, &resp)

			if resp.IsRegistered != tt.registered || resp.HasVoted != tt.voted {
				t.Errorf("Expected registered=%v voted=%v, got %+v", tt.registered, tt.voted, resp)
			}
			switch {
			case tt.votedProposalID == nil && resp.VotedProposalID != nil:
				t.Errorf("Expected no voted_proposal_id, got %d", *resp.VotedProposalID)
			case tt.votedProposalID != nil && (resp.VotedProposalID == nil || *resp.VotedProposalID != *tt.votedProposalID):
				t.Errorf("Expected voted_proposal_id %d, got %v", *tt.votedProposalID, resp.VotedProposalID)
			}
		})
	}
}

func TestListProposals(t *testing.T) {
	l, cfg := newTestLedger(t)
	handler := NewResultsHandler(l, cfg)

	// Empty list is an empty array, not null
	w := httptest.NewRecorder()
	handler.ListProposals(w, testutil.MakeRequest("GET", "/election/proposals", nil, nil))
	testutil.AssertStatus(t, w, http.StatusOK)

	var empty models.ProposalListResponse
	testutil.AssertJSON(t, w, &empty)
	if empty.Proposals == nil || len(empty.Proposals) != 0 {
		t.Errorf("Expected empty proposals array, got %v", empty.Proposals)
	}

	testutil.AdvanceTo(t, l, election.ProposalsRegistrationEnded, "First", "Second")

	w = httptest.NewRecorder()
	handler.ListProposals(w, testutil.MakeRequest("GET", "/election/proposals", nil, nil))
	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.ProposalListResponse
	testutil.AssertJSON(t, w, &resp)

	if len(resp.Proposals) != 2 {
		t.Fatalf("Expected 2 proposals, got %d", len(resp.Proposals))
	}
	for i, want := range []string{"First", "Second"} {
		if resp.Proposals[i].ID != i || resp.Proposals[i].Description != want {
			t.Errorf("Proposal %d: expected %s, got %+v", i, want, resp.Proposals[i])
		}
	}
}

func TestGetProposal(t *testing.T) {
	l, cfg := newTestLedger(t)
	handler := NewResultsHandler(l, cfg)
	testutil.AdvanceTo(t, l, election.ProposalsRegistrationEnded, "Only")

	tests := []struct {
		name           string
		id             string
		expectedStatus int
	}{
		{"existing proposal", "0", http.StatusOK},
		{"unknown proposal", "1", http.StatusNotFound},
		{"negative id", "-1", http.StatusNotFound},
		{"non-numeric id", "abc", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.MakeRequest("GET", "/election/proposals/"+tt.id, nil, nil)
			req.SetPathValue("id", tt.id)
			w := httptest.NewRecorder()

			handler.GetProposal(w, req)

			testutil.AssertStatus(t, w, tt.expectedStatus)
			if tt.expectedStatus != http.StatusOK {
				return
			}

			var resp models.ProposalResponse
			testutil.AssertJSON(t, w, &resp)
			if resp.Description != "Only" {
				t.Errorf("Expected description 'Only', got '%s'", resp.Description)
			}
		})
	}
}

func TestGetWinner(t *testing.T) {
	l, cfg := newTestLedger(t)
	handler := NewResultsHandler(l, cfg)

	testutil.AdvanceTo(t, l, election.VotingSessionEnded, "Only")

	// Sealed until tallied
	w := httptest.NewRecorder()
	handler.GetWinner(w, testutil.MakeRequest("GET", "/election/winner", nil, nil))
	testutil.AssertStatus(t, w, http.StatusConflict)

	testutil.AdvanceTo(t, l, election.VotesTallied)

	w = httptest.NewRecorder()
	handler.GetWinner(w, testutil.MakeRequest("GET", "/election/winner", nil, nil))
	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.WinnerResponse
	testutil.AssertJSON(t, w, &resp)

	if resp.WinningProposalID != 0 || resp.Proposal.VoteCount != 0 {
		t.Errorf("Expected proposal 0 with zero votes to win, got %+v", resp)
	}
}

func TestListEvents(t *testing.T) {
	l, cfg := newTestLedger(t)
	handler := NewResultsHandler(l, cfg)
	ctx := context.Background()

	if _, err := l.RegisterVoter(ctx, testutil.TestOwner, "0xAlice"); err != nil {
		t.Fatalf("Failed to register voter: %v", err)
	}
	testutil.AdvanceTo(t, l, election.ProposalsRegistrationStarted)

	w := httptest.NewRecorder()
	handler.ListEvents(w, testutil.MakeRequest("GET", "/election/events", nil, nil))
	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.EventListResponse
	testutil.AssertJSON(t, w, &resp)

	if len(resp.Events) != 2 {
		t.Fatalf("Expected 2 events, got %d", len(resp.Events))
	}

	reg, phase := resp.Events[0], resp.Events[1]
	if reg.Kind != string(election.EventVoterRegistered) || reg.Subject != "0xAlice" || reg.Actor != testutil.TestOwner {
		t.Errorf("Unexpected registration event: %+v", reg)
	}
	if phase.Kind != string(election.EventPhaseChanged) || phase.From == nil || *phase.From != 0 || phase.To == nil || *phase.To != 1 {
		t.Errorf("Unexpected phase event: %+v", phase)
	}
	if reg.Seq >= phase.Seq {
		t.Errorf("Sequence numbers not increasing: %d, %d", reg.Seq, phase.Seq)
	}
}

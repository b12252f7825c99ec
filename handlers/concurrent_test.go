// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/danielhkuo/quickly-vote/election"
	"github.com/danielhkuo/quickly-vote/models"
	"github.com/danielhkuo/quickly-vote/testutil"
)

// TestConcurrentVotes verifies that simultaneous votes from different voters
// are all counted and vote counts still match the voter registry
func TestConcurrentVotes(t *testing.T) {
	l, cfg := newTestLedger(t)
	votingHandler := NewVotingHandler(l, cfg)
	ctx := context.Background()

	numVoters := 10
	voters := make([]string, numVoters)
	for i := 0; i < numVoters; i++ {
		voters[i] = "0xConcurrentVoter" + string(rune('A'+i))
		if _, err := l.RegisterVoter(ctx, testutil.TestOwner, election.Identity(voters[i])); err != nil {
			t.Fatalf("Failed to register voter: %v", err)
		}
	}
	testutil.AdvanceTo(t, l, election.VotingSessionStarted, "A", "B", "C")

	var successCount atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < numVoters; i++ {
		wg.Add(1)
		go func(voterIdx int) {
			defer wg.Done()

			proposal := voterIdx % 3
			req := testutil.MakeRequest("POST", "/election/votes", models.VoteRequest{ProposalID: &proposal}, testutil.IdentityHeaders(cfg, voters[voterIdx]))
			w := httptest.NewRecorder()

			votingHandler.Vote(w, req)

			if w.Code == http.StatusCreated {
				successCount.Add(1)
			}
		}(i)
	}

	wg.Wait()

	if int(successCount.Load()) != numVoters {
		t.Errorf("Expected %d successful votes, got %d", numVoters, successCount.Load())
	}

	total := 0
	for _, p := range l.Proposals() {
		total += p.VoteCount
	}
	if total != numVoters {
		t.Errorf("Expected %d votes across proposals, got %d", numVoters, total)
	}

	// Voters 0,3,6,9 picked A
	if p, _ := l.Proposal(0); p.VoteCount != 4 {
		t.Errorf("Expected 4 votes for A, got %d", p.VoteCount)
	}
}

// TestConcurrentDoubleVote verifies that when one voter fires the same vote
// from several goroutines, exactly one is counted
func TestConcurrentDoubleVote(t *testing.T) {
	l, cfg := newTestLedger(t)
	votingHandler := NewVotingHandler(l, cfg)

	if _, err := l.RegisterVoter(context.Background(), testutil.TestOwner, "0xRacer"); err != nil {
		t.Fatalf("Failed to register voter: %v", err)
	}
	testutil.AdvanceTo(t, l, election.VotingSessionStarted, "A", "B")

	numAttempts := 5
	var successCount, conflictCount atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < numAttempts; i++ {
		wg.Add(1)
		go func(attempt int) {
			defer wg.Done()

			proposal := attempt % 2
			req := testutil.MakeRequest("POST", "/election/votes", models.VoteRequest{ProposalID: &proposal}, testutil.IdentityHeaders(cfg, "0xRacer"))
			w := httptest.NewRecorder()

			votingHandler.Vote(w, req)

			switch w.Code {
			case http.StatusCreated:
				successCount.Add(1)
			case http.StatusConflict:
				conflictCount.Add(1)
			}
		}(i)
	}

	wg.Wait()

	if successCount.Load() != 1 {
		t.Errorf("Expected exactly 1 successful vote, got %d", successCount.Load())
	}
	if conflictCount.Load() != int32(numAttempts-1) {
		t.Errorf("Expected %d conflicts, got %d", numAttempts-1, conflictCount.Load())
	}

	total := 0
	for _, p := range l.Proposals() {
		total += p.VoteCount
	}
	if total != 1 {
		t.Errorf("Expected 1 vote counted, got %d", total)
	}
}

// TestConcurrentTally verifies that only one of several simultaneous tally
// requests moves the election to VotesTallied
func TestConcurrentTally(t *testing.T) {
	l, cfg := newTestLedger(t)
	adminHandler := NewAdminHandler(l, cfg)

	testutil.AdvanceTo(t, l, election.VotingSessionEnded, "A", "B")

	numAttempts := 5
	var successCount atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < numAttempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			w := httptest.NewRecorder()
			adminHandler.TallyVotes(w, testutil.MakeRequest("POST", "/election/tally", nil, ownerHeaders(cfg)))

			if w.Code == http.StatusOK {
				successCount.Add(1)
			}
		}()
	}

	wg.Wait()

	if successCount.Load() != 1 {
		t.Errorf("Expected exactly 1 successful tally, got %d", successCount.Load())
	}
	if l.Status() != election.VotesTallied {
		t.Errorf("Expected VotesTallied, got %s", l.Status())
	}

	events, err := l.Events(context.Background())
	if err != nil {
		t.Fatalf("Failed to list events: %v", err)
	}
	tallies := 0
	for _, rec := range events {
		if rec.Event.Kind == election.EventVotesTallied {
			tallies++
		}
	}
	if tallies != 1 {
		t.Errorf("Expected 1 votes_tallied event, got %d", tallies)
	}
}

// TestConcurrentReadsDuringVoting runs reads alongside votes to exercise the
// ledger lock under the race detector
func TestConcurrentReadsDuringVoting(t *testing.T) {
	l, cfg := newTestLedger(t)
	votingHandler := NewVotingHandler(l, cfg)
	resultsHandler := NewResultsHandler(l, cfg)
	ctx := context.Background()

	voters := []string{"0xV1", "0xV2", "0xV3", "0xV4"}
	for _, v := range voters {
		if _, err := l.RegisterVoter(ctx, testutil.TestOwner, election.Identity(v)); err != nil {
			t.Fatalf("Failed to register voter: %v", err)
		}
	}
	testutil.AdvanceTo(t, l, election.VotingSessionStarted, "A")

	var wg sync.WaitGroup
	for _, v := range voters {
		wg.Add(2)
		go func(identity string) {
			defer wg.Done()
			proposal := 0
			w := httptest.NewRecorder()
			votingHandler.Vote(w, testutil.MakeRequest("POST", "/election/votes", models.VoteRequest{ProposalID: &proposal}, testutil.IdentityHeaders(cfg, identity)))
		}(v)
		go func() {
			defer wg.Done()
			w := httptest.NewRecorder()
			resultsHandler.ListProposals(w, testutil.MakeRequest("GET", "/election/proposals", nil, nil))
			if w.Code != http.StatusOK {
				t.Errorf("ListProposals returned %d", w.Code)
			}
		}()
	}

	wg.Wait()

	if p, _ := l.Proposal(0); p.VoteCount != len(voters) {
		t.Errorf("Expected %d votes, got %d", len(voters), p.VoteCount)
	}
}

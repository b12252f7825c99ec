// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/danielhkuo/quickly-vote/cliparse"
	"github.com/danielhkuo/quickly-vote/handlers"
	"github.com/danielhkuo/quickly-vote/ledger"
	"github.com/danielhkuo/quickly-vote/middleware"
)

func NewRouter(l *ledger.Ledger, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	adminHandler := handlers.NewAdminHandler(l, cfg)
	votingHandler := handlers.NewVotingHandler(l, cfg)
	resultsHandler := handlers.NewResultsHandler(l, cfg)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Owner operations
	mux.HandleFunc("POST /election/owner", middleware.WithLogging(adminHandler.TransferOwnership))
	mux.HandleFunc("POST /election/voters", middleware.WithLogging(adminHandler.RegisterVoter))
	mux.HandleFunc("POST /election/proposals-registration/start", middleware.WithLogging(adminHandler.StartProposalsRegistration))
	mux.HandleFunc("POST /election/proposals-registration/end", middleware.WithLogging(adminHandler.EndProposalsRegistration))
	mux.HandleFunc("POST /election/voting-session/start", middleware.WithLogging(adminHandler.StartVotingSession))
	mux.HandleFunc("POST /election/voting-session/end", middleware.WithLogging(adminHandler.EndVotingSession))
	mux.HandleFunc("POST /election/tally", middleware.WithLogging(adminHandler.TallyVotes))

	// Proposals and votes
	mux.HandleFunc("POST /election/proposals", middleware.WithLogging(votingHandler.SubmitProposal))
	mux.HandleFunc("POST /election/votes", middleware.WithLogging(votingHandler.Vote))

	// Reads (public)
	mux.HandleFunc("GET /election", middleware.WithLogging(resultsHandler.GetStatus))
	mux.HandleFunc("GET /election/owner", middleware.WithLogging(resultsHandler.GetOwner))
	mux.HandleFunc("GET /election/voters/{identity}", middleware.WithLogging(resultsHandler.GetVoter))
	mux.HandleFunc("GET /election/proposals", middleware.WithLogging(resultsHandler.ListProposals))
	mux.HandleFunc("GET /election/proposals/{id}", middleware.WithLogging(resultsHandler.GetProposal))
	mux.HandleFunc("GET /election/winner", middleware.WithLogging(resultsHandler.GetWinner))
	mux.HandleFunc("GET /election/events", middleware.WithLogging(resultsHandler.ListEvents))

	// Root endpoint
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("quickly-vote API v1"))
	})

	return mux
}

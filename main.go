package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/danielhkuo/quickly-vote/auth"
	"github.com/danielhkuo/quickly-vote/cliparse"
	"github.com/danielhkuo/quickly-vote/db"
	"github.com/danielhkuo/quickly-vote/election"
	"github.com/danielhkuo/quickly-vote/ledger"
	"github.com/danielhkuo/quickly-vote/middleware"
	"github.com/danielhkuo/quickly-vote/router"
)

func main() {
	var err error

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	// Keys are handed to their holders out of band, never over the API
	if cfg.IssueKey != "" {
		identity, err := auth.NormalizeIdentity(cfg.IssueKey)
		if err != nil {
			slog.Error("invalid identity", "identity", cfg.IssueKey, "error", err)
			os.Exit(1)
		}
		fmt.Println(auth.GenerateIdentityKey(identity, cfg.IdentitySalt))
		return
	}

	owner, err := auth.NormalizeIdentity(cfg.OwnerIdentity)
	if err != nil {
		slog.Error("invalid owner identity", "error", err)
		os.Exit(1)
	}

	// Connect to the configured database
	dbConn, err := sql.Open(cfg.DriverName(), cfg.DatabaseURL)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer dbConn.Close()

	if cfg.DatabaseType == "sqlite" {
		// SQLite allows one writer; the ledger serializes writes anyway
		dbConn.SetMaxOpenConns(1)
	}

	// Verify connection
	if err := dbConn.Ping(); err != nil {
		slog.Error("database ping failed", "error", err)
		os.Exit(1)
	}

	// Create schema (tables)
	if err := db.CreateSchema(dbConn); err != nil {
		slog.Error("schema creation failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Database schema ready", "type", cfg.DatabaseType)

	// Load the election, or create it on first boot
	l, created, err := ledger.Open(context.Background(), db.NewStore(dbConn), election.Identity(owner), slog.Default())
	if err != nil {
		slog.Error("election load failed", "error", err)
		os.Exit(1)
	}
	if created {
		slog.Info("Election created",
			"election_id", l.ID(),
			"owner", owner,
		)
		slog.Info("Issue the owner's identity key with -issue-key", "owner", owner)
	} else {
		slog.Info("Election loaded",
			"election_id", l.ID(),
			"owner", l.Owner(),
			"phase", l.Status().String(),
		)
	}

	// Create router
	mux := router.NewRouter(l, cfg)

	// Create server
	server := http.Server{
		Handler: middleware.CORS(mux),
		Addr:    ":" + strconv.Itoa(cfg.Port),
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal
		<-ctrlc
		server.Close()
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}
}

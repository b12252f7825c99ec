// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port          int
	DatabaseURL   string
	DatabaseType  string
	IdentitySalt  string
	OwnerIdentity string

	// IssueKey names an identity whose key is printed instead of serving
	IssueKey string
}

// ParseFlags validates flags and sets port number
func ParseFlags(args []string) (Config, error) {
	var cfg Config
	var envFile string

	fs := flag.NewFlagSet("quickly-vote", flag.ContinueOnError)

	fs.StringVar(&envFile, "env", ".env", "Env file to load (missing file is ignored)")

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")

	// Election owner used when no election is stored yet
	fs.StringVar(&cfg.OwnerIdentity, "owner", "", "Initial owner identity")

	// Operator mode: print an identity key and exit
	fs.StringVar(&cfg.IssueKey, "issue-key", "", "Print the identity key for this identity and exit")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.IdentitySalt, "identity-salt", "", "Identity key salt (prefer env)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Values already in the environment win over the env file
	if err := loadEnvFile(envFile); err != nil {
		return Config{}, err
	}

	// Secrets - MUST be provided
	if cfg.IdentitySalt == "" {
		cfg.IdentitySalt = os.Getenv("IDENTITY_SALT")
	}
	if cfg.IdentitySalt == "" {
		return Config{}, errors.New("IDENTITY_SALT required")
	}

	// Issuing a key needs nothing but the salt
	if cfg.IssueKey != "" {
		return cfg, nil
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 3318 // default
		}
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = "sqlite"
		}
	}
	if cfg.DatabaseType != "sqlite" && cfg.DatabaseType != "postgres" {
		return Config{}, fmt.Errorf("unsupported database type %q (use sqlite or postgres)", cfg.DatabaseType)
	}

	if cfg.OwnerIdentity == "" {
		cfg.OwnerIdentity = os.Getenv("OWNER_IDENTITY")
	}
	if cfg.OwnerIdentity == "" {
		return Config{}, errors.New("OWNER_IDENTITY required")
	}

	return cfg, nil
}

// DriverName returns the database/sql driver registered for the configured type.
func (c Config) DriverName() string {
	if c.DatabaseType == "postgres" {
		return "postgres"
	}
	return "sqlite"
}

func loadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to load env file %s: %w", path, err)
	}
	return nil
}

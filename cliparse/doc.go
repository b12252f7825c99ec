// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3318)
  - DatabaseURL: Database connection string or SQLite file (required)
  - DatabaseType: sqlite or postgres (default: sqlite)
  - OwnerIdentity: Owner of a freshly created election (required)
  - IdentitySalt: Secret for identity key HMAC (required)

# CLI Flags

	-p               Server port
	-d               Database URL
	-t               Database type
	-owner           Initial owner identity
	-identity-salt   Identity key salt
	-env             Env file (default .env)
	-issue-key       Print the identity key for an identity and exit

# Environment Variables

Flags fall back to environment variables:

	PORT           → -p
	DATABASE_URL   → -d
	DATABASE_TYPE  → -t
	OWNER_IDENTITY → -owner
	IDENTITY_SALT  → -identity-salt

CLI flags take precedence over environment variables, and the environment
takes precedence over the env file loaded with godotenv.

# Example

	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}

	conn, err := sql.Open(cfg.DriverName(), cfg.DatabaseURL)
*/
package cliparse

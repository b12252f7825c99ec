// cliparse/cliparse_test.go
package cliparse

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseFlags_EnvVars(t *testing.T) {
	// Set env vars
	os.Setenv("PORT", "9000")
	os.Setenv("DATABASE_URL", "postgres://test")
	os.Setenv("DATABASE_TYPE", "postgres")
	os.Setenv("IDENTITY_SALT", "test-salt")
	os.Setenv("OWNER_IDENTITY", "0xOwner")
	defer os.Clearenv()

	cfg, err := ParseFlags([]string{})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != 9000 {
		t.Errorf("expected port 9000, got %d", cfg.Port)
	}
	if cfg.OwnerIdentity != "0xOwner" {
		t.Errorf("expected owner 0xOwner, got %s", cfg.OwnerIdentity)
	}
	if cfg.DriverName() != "postgres" {
		t.Errorf("expected postgres driver, got %s", cfg.DriverName())
	}
}

func TestParseFlags_CLIOverridesEnv(t *testing.T) {
	os.Setenv("PORT", "9000")
	defer os.Clearenv()

	cfg, err := ParseFlags([]string{"-p", "8080", "-d", "file:test.db", "-owner", "alice", "-identity-salt", "s1"})
	if err != nil {
		t.Fatal(err)
	}

	// CLI should override env
	if cfg.Port != 8080 {
		t.Errorf("CLI should override env: expected 8080, got %d", cfg.Port)
	}
	if cfg.DatabaseType != "sqlite" || cfg.DriverName() != "sqlite" {
		t.Errorf("expected sqlite default, got %s", cfg.DatabaseType)
	}
}

func TestParseFlags_EnvFile(t *testing.T) {
	defer os.Clearenv()
	os.Clearenv()

	path := filepath.Join(t.TempDir(), "test.env")
	content := "DATABASE_URL=file:vote.db\nIDENTITY_SALT=from-file\nOWNER_IDENTITY=file-owner\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	// Real environment wins over the file
	os.Setenv("OWNER_IDENTITY", "env-owner")

	cfg, err := ParseFlags([]string{"-env", path})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.IdentitySalt != "from-file" {
		t.Errorf("expected salt from env file, got %q", cfg.IdentitySalt)
	}
	if cfg.OwnerIdentity != "env-owner" {
		t.Errorf("expected env to win over file, got %q", cfg.OwnerIdentity)
	}
}

func TestParseFlags_Missing(t *testing.T) {
	defer os.Clearenv()

	tests := []struct {
		name string
		args []string
	}{
		{"no database", []string{"-owner", "a", "-identity-salt", "s"}},
		{"no owner", []string{"-d", "file:x.db", "-identity-salt", "s"}},
		{"no salt", []string{"-d", "file:x.db", "-owner", "a"}},
		{"bad type", []string{"-d", "file:x.db", "-owner", "a", "-identity-salt", "s", "-t", "mysql"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Clearenv()
			if _, err := ParseFlags(tt.args); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestParseFlags_IssueKey(t *testing.T) {
	defer os.Clearenv()
	os.Clearenv()

	// Only the salt is needed to issue a key
	cfg, err := ParseFlags([]string{"-issue-key", "0xBob", "-identity-salt", "s"})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.IssueKey != "0xBob" {
		t.Errorf("expected issue key identity 0xBob, got %q", cfg.IssueKey)
	}

	if _, err := ParseFlags([]string{"-issue-key", "0xBob"}); err == nil {
		t.Error("expected error without salt")
	}
}

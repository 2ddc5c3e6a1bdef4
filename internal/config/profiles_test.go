// ABOUTME: Tests for named endpoint profiles
// ABOUTME: Covers parsing, lookup, and the missing-file case

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadProfiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "profiles.toml")
	content := `
[profiles.staging]
url = "https://staging.example.com/api/v1"
session_file = "/tmp/rfrp-staging.json"

[profiles.prod]
url = "https://rfrp.example.com/api/v1"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing profiles: %v", err)
	}

	profiles, err := LoadProfiles(path)
	if err != nil {
		t.Fatalf("LoadProfiles() error = %v", err)
	}
	if len(profiles) != 2 {
		t.Fatalf("got %d profiles, want 2", len(profiles))
	}
	if profiles["staging"].URL != "https://staging.example.com/api/v1" {
		t.Errorf("staging url = %q", profiles["staging"].URL)
	}
	if profiles["staging"].SessionFile != "/tmp/rfrp-staging.json" {
		t.Errorf("staging session_file = %q", profiles["staging"].SessionFile)
	}
	if profiles["prod"].SessionFile != "" {
		t.Errorf("prod session_file = %q, want empty", profiles["prod"].SessionFile)
	}
}

func TestLoadProfiles_Missing(t *testing.T) {
	profiles, err := LoadProfiles(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("LoadProfiles() error = %v", err)
	}
	if len(profiles) != 0 {
		t.Errorf("got %d profiles, want 0", len(profiles))
	}
}

func TestLookup(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	profilesDir := filepath.Join(dir, "rfrp")
	if err := os.MkdirAll(profilesDir, 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	content := `
[profiles.staging]
url = "https://staging.example.com/api/v1"

[profiles.broken]
session_file = "/tmp/x.json"
`
	if err := os.WriteFile(filepath.Join(profilesDir, "profiles.toml"), []byte(content), 0644); err != nil {
		t.Fatalf("writing profiles: %v", err)
	}

	p, err := Lookup("staging")
	if err != nil {
		t.Fatalf("Lookup() error = %v", err)
	}
	if p.URL != "https://staging.example.com/api/v1" {
		t.Errorf("url = %q", p.URL)
	}

	if _, err := Lookup("missing"); err == nil {
		t.Error("Lookup() should fail for an unknown profile")
	}
	if _, err := Lookup("broken"); err == nil {
		t.Error("Lookup() should fail for a profile with no url")
	}
}

package main

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writeConfig writes a minimal team configuration into dir and returns its
// path. Data and profile directories live alongside it.
func writeConfig(t *testing.T, dir string) string {
	t.Helper()
	cfg := `team_members:
  - name: Jane Doe
    email: jane.doe@example.com
    profile_file: jane_doe.md
    squad: Platform
data_dir: data
profiles_dir: profiles
`
	path := filepath.Join(dir, "team_config.yaml")
	if err := os.WriteFile(path, []byte(cfg), 0o644); err != nil {
		t.Fatalf("writeConfig: %v", err)
	}
	return path
}

func exitCode(t *testing.T, err error) int {
	t.Helper()
	var ee *exitErr
	if !errors.As(err, &ee) {
		t.Fatalf("expected exitErr, got %T: %v", err, err)
	}
	return ee.code
}

func TestRunUpdate_FlagValidation(t *testing.T) {
	cases := []struct {
		name   string
		person string
		flags  updateFlags
	}{
		{"neither target", "", updateFlags{}},
		{"both targets", "Jane Doe", updateFlags{all: true}},
		{"force without init", "Jane Doe", updateFlags{force: true}},
		{"init with regenerate", "Jane Doe", updateFlags{initProfiles: true, regenerate: true}},
		{"bad created date", "Jane Doe", updateFlags{createdDate: "March 2025"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := runUpdate(tc.person, tc.flags)
			if err == nil {
				t.Fatal("expected a validation error")
			}
			if code := exitCode(t, err); code != 3 {
				t.Errorf("exit code = %d, want 3", code)
			}
		})
	}
}

func TestRunUpdate_MissingConfig(t *testing.T) {
	err := runUpdate("", updateFlags{all: true, configPath: filepath.Join(t.TempDir(), "absent.yaml")})
	if err == nil {
		t.Fatal("expected an error for a missing config")
	}
	if code := exitCode(t, err); code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}
}

func TestRunUpdate_CreatesProfile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeConfig(t, dir)

	if err := runUpdate("Jane Doe", updateFlags{configPath: cfgPath}); err != nil {
		t.Fatalf("runUpdate: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "profiles", "jane_doe.md"))
	if err != nil {
		t.Fatalf("profile not written: %v", err)
	}
	if !strings.HasPrefix(string(data), "# Jane Doe") {
		t.Errorf("profile starts %q", string(data)[:30])
	}
}

func TestRunUpdate_UnknownMember(t *testing.T) {
	cfgPath := writeConfig(t, t.TempDir())
	err := runUpdate("Nobody", updateFlags{configPath: cfgPath})
	if err == nil {
		t.Fatal("expected an error for an unknown member")
	}
	if code := exitCode(t, err); code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}
}

func TestRunUpdate_DryRunWritesNothing(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeConfig(t, dir)

	if err := runUpdate("", updateFlags{all: true, configPath: cfgPath, dryRun: true}); err != nil {
		t.Fatalf("runUpdate: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "profiles", "jane_doe.md")); !os.IsNotExist(err) {
		t.Error("dry run wrote a profile")
	}
}

func TestRunUpdate_CustomTemplate(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeConfig(t, dir)
	tmplPath := filepath.Join(dir, "tmpl.md")
	if err := os.WriteFile(tmplPath, []byte("# {{NAME}}\n\n## 1. Profile Overview\n\ncustom\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := runUpdate("Jane Doe", updateFlags{configPath: cfgPath, templatePath: tmplPath}); err != nil {
		t.Fatalf("runUpdate: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(dir, "profiles", "jane_doe.md"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "custom") {
		t.Error("custom template ignored")
	}
}

func TestRunStatus(t *testing.T) {
	cfgPath := writeConfig(t, t.TempDir())
	if err := runStatus(cfgPath); err != nil {
		t.Fatalf("runStatus: %v", err)
	}
	if err := runStatus(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected an error for a missing config")
	}
}

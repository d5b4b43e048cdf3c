package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Member is one team member from config.yaml. Fields beyond the first three
// are optional; humaans data takes precedence over them during rendering.
type Member struct {
	Name        string `yaml:"name"`
	Email       string `yaml:"email"`
	ProfileFile string `yaml:"profile_file"`
	Squad       string `yaml:"squad,omitempty"`
	Level       string `yaml:"level,omitempty"`
	Role        string `yaml:"role,omitempty"`
	SlackID     string `yaml:"slack_id,omitempty"`
	GitHub      string `yaml:"github,omitempty"`
	StartDate   string `yaml:"start_date,omitempty"`
}

// Key returns the filesystem key for a member, derived from the profile
// filename ("jane_doe.md" -> "jane_doe"). Engagement data files use this key.
func (m Member) Key() string {
	return strings.TrimSuffix(m.ProfileFile, ".md")
}

// Config is the full toolkit configuration. It is loaded once at startup and
// passed by value into the services that need it.
type Config struct {
	Team         []Member `yaml:"team_members"`
	DataDir      string   `yaml:"data_dir"`
	ProfilesDir  string   `yaml:"profiles_dir"`
	TemplatePath string   `yaml:"template_path"`
}

// Load reads and parses config.yaml from path. Relative data/profile/template
// paths are resolved against the config file's directory.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config: %w", err)
	}

	base := filepath.Dir(path)
	if cfg.DataDir == "" {
		cfg.DataDir = "data"
	}
	if cfg.ProfilesDir == "" {
		cfg.ProfilesDir = "profiles"
	}
	cfg.DataDir = resolve(base, cfg.DataDir)
	cfg.ProfilesDir = resolve(base, cfg.ProfilesDir)
	if cfg.TemplatePath != "" {
		cfg.TemplatePath = resolve(base, cfg.TemplatePath)
	}

	for i, m := range cfg.Team {
		if m.Name == "" || m.Email == "" || m.ProfileFile == "" {
			return Config{}, fmt.Errorf("team_members[%d]: name, email, and profile_file are required", i)
		}
	}

	return cfg, nil
}

func resolve(base, p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(base, p)
}

// Find returns the member whose name matches (case-insensitive). A miss lists
// the available names so the caller can print them directly.
func (c Config) Find(name string) (Member, error) {
	for _, m := range c.Team {
		if strings.EqualFold(m.Name, name) {
			return m, nil
		}
	}
	names := make([]string, 0, len(c.Team))
	for _, m := range c.Team {
		names = append(names, m.Name)
	}
	return Member{}, fmt.Errorf("person not found: %q (team members: %s)", name, strings.Join(names, ", "))
}

// SafeEmail converts an email address to a filesystem-safe token used for
// humaans data filenames: "@" -> "_at_", "." -> "_".
func SafeEmail(email string) string {
	s := strings.ReplaceAll(email, "@", "_at_")
	return strings.ReplaceAll(s, ".", "_")
}

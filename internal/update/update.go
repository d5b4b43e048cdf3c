// Package update orchestrates profile refreshes: it loads each member's
// engagement data, renders a fresh document, merges it with the existing file
// (or writes a first version), and reports per-member outcomes.
package update

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/gvonness-apolitical/apolitical-assistant/internal/config"
	"github.com/gvonness-apolitical/apolitical-assistant/internal/document"
	"github.com/gvonness-apolitical/apolitical-assistant/internal/engagement"
	"github.com/gvonness-apolitical/apolitical-assistant/internal/merge"
	"github.com/gvonness-apolitical/apolitical-assistant/internal/render"
)

const dateLayout = "2006-01-02"

// Options selects which members to update and how.
type Options struct {
	Person      string // empty updates the whole team
	Force       bool   // with Init, overwrite an existing profile
	Regenerate  bool   // discard the existing document and start from the template
	Init        bool   // first-time setup; existing profiles are skipped unless forced
	DryRun      bool   // compute and report, write nothing
	CreatedDate string // overrides the "Profile Created" field (YYYY-MM-DD)
}

// MemberError records a member whose update failed.
type MemberError struct {
	Name string
	Err  error
}

// Results summarizes one batch run.
type Results struct {
	Updated int
	Skipped int
	Errors  []MemberError
}

// Service runs profile updates against one loaded configuration.
type Service struct {
	cfg      config.Config
	policy   document.Policy
	template string
	out      io.Writer
	now      func() time.Time
}

// New builds a Service. Progress and warnings go to out.
func New(cfg config.Config, template string, out io.Writer) *Service {
	return &Service{
		cfg:      cfg,
		policy:   document.DefaultPolicy(),
		template: template,
		out:      out,
		now:      time.Now,
	}
}

var (
	okMark   = color.New(color.FgGreen)
	warnMark = color.New(color.FgYellow)
	failMark = color.New(color.FgRed)
)

// Run updates the selected members. A failure on one member is recorded and
// the batch continues; the returned error covers setup problems only, such as
// an unknown member name.
func (s *Service) Run(opts Options) (Results, error) {
	members := s.cfg.Team
	if opts.Person != "" {
		m, err := s.cfg.Find(opts.Person)
		if err != nil {
			return Results{}, err
		}
		members = []config.Member{m}
	}

	var res Results
	for _, m := range members {
		skipped, err := s.updateOne(m, opts)
		switch {
		case err != nil:
			failMark.Fprintf(s.out, "✗ %s: %v\n", m.Name, err)
			res.Errors = append(res.Errors, MemberError{Name: m.Name, Err: err})
		case skipped:
			res.Skipped++
		default:
			res.Updated++
		}
	}
	return res, nil
}

// updateOne processes a single member and reports whether it was skipped.
func (s *Service) updateOne(member config.Member, opts Options) (bool, error) {
	path := filepath.Join(s.cfg.ProfilesDir, member.ProfileFile)

	raw, err := os.ReadFile(path)
	exists := err == nil
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return false, fmt.Errorf("reading profile: %w", err)
	}
	existing := string(raw)

	if opts.Init && exists && !opts.Force {
		warnMark.Fprintf(s.out, "– %s: profile already exists at %s; use --force to overwrite\n", member.Name, path)
		return true, nil
	}

	bundle, err := engagement.LoadBundle(s.cfg.DataDir, member)
	if err != nil {
		return false, fmt.Errorf("loading engagement data: %w", err)
	}
	sources := sourceNames(bundle)

	now := s.now()
	created := opts.CreatedDate
	if created == "" && opts.Init {
		created = initialCreatedDate(bundle, member)
	}
	fresh := render.Render(member, s.template, bundle, now, created)

	var content string
	if exists && !opts.Init && !opts.Regenerate {
		if msg, ok := merge.DriftWarning(existing, fresh); ok {
			warnMark.Fprintf(s.out, "  %s: %s\n", member.Name, msg)
		}
		content = merge.Merge(fresh, existing, sources, bundle.Analytics, s.policy, now)
	} else {
		content = s.firstVersion(fresh, bundle, sources, now, opts)
	}

	if tokens := render.UnresolvedTokens(content); len(tokens) > 0 {
		warnMark.Fprintf(s.out, "  %s: unresolved template fields: %s\n", member.Name, strings.Join(tokens, ", "))
	}

	verb := "updated"
	if !exists || opts.Init || opts.Regenerate {
		verb = "created"
	}
	if opts.DryRun {
		okMark.Fprintf(s.out, "✓ %s: would have %s %s\n", member.Name, verb, path)
	} else {
		if err := writeAtomic(path, content); err != nil {
			return false, fmt.Errorf("writing profile: %w", err)
		}
		okMark.Fprintf(s.out, "✓ %s: %s %s\n", member.Name, verb, path)
	}

	if exists && !opts.Init && !opts.Regenerate {
		for _, c := range merge.SectionChanges(existing, content, s.policy) {
			fmt.Fprintf(s.out, "    section %d: +%d/-%d chars\n", c.Section, c.Added, c.Removed)
		}
	}
	return false, nil
}

// firstVersion resolves the history placeholders of a fresh render into a
// first on-disk document: an initial metrics snapshot when analytics exist,
// and a single update-history row describing how the profile came to be.
func (s *Service) firstVersion(fresh string, bundle engagement.Bundle, sources []string, now time.Time, opts Options) string {
	snapshot := ""
	if latest := bundle.Analytics.LatestPeriod(); latest != "" {
		snapshot = document.MetricsSnapshot(bundle.Analytics, latest)
	}
	content := fresh
	if snapshot == "" {
		content = strings.Replace(content, document.MetricsPlaceholder+"\n", "", 1)
	} else {
		content = strings.Replace(content, document.MetricsPlaceholder, snapshot, 1)
	}

	action := "Profile created"
	switch {
	case opts.Init:
		action = "Profile initialized"
	case opts.Regenerate:
		action = "Profile regenerated from template"
	}
	label := "Initial creation"
	if len(sources) > 0 {
		label = strings.Join(sources, ", ")
	}
	row := fmt.Sprintf("| %s | %s | %s |", now.Format(dateLayout), action, label)

	return strings.Replace(content, document.HistoryPlaceholder, row, 1)
}

// initialCreatedDate falls back to the member's HR start date when no created
// date was given at init time.
func initialCreatedDate(bundle engagement.Bundle, member config.Member) string {
	if bundle.Humaans != nil && bundle.Humaans.Calculated.StartDate != "" {
		return bundle.Humaans.Calculated.StartDate
	}
	return member.StartDate
}

// sourceNames lists the data sources present in a bundle, in the order the
// profile document presents them.
func sourceNames(b engagement.Bundle) []string {
	var names []string
	if b.Humaans != nil {
		names = append(names, "Humaans")
	}
	if b.Slack != nil {
		names = append(names, "Slack")
	}
	if b.Analytics != nil {
		names = append(names, "Dev Analytics")
	}
	if b.RFC != nil {
		names = append(names, "Notion RFCs")
	}
	if b.Email != nil {
		names = append(names, "Email")
	}
	if b.Meeting != nil {
		names = append(names, "Meetings")
	}
	return names
}

// writeAtomic writes content through a temp file in the target directory and
// renames it into place, so a crash never leaves a half-written profile.
func writeAtomic(path, content string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, ".profile-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(content); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

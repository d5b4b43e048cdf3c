package update

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"

	"github.com/gvonness-apolitical/apolitical-assistant/internal/config"
	"github.com/gvonness-apolitical/apolitical-assistant/internal/document"
	"github.com/gvonness-apolitical/apolitical-assistant/internal/render"
)

func init() {
	color.NoColor = true
}

var updateNow = time.Date(2026, 2, 10, 9, 0, 0, 0, time.UTC)

const analyticsJSON = `{
  "import_date": "2026-02-01",
  "periods": {
    "2026-01": {
      "metrics": {"prs_merged": 15, "reviews": 8, "lines_added": 500, "lines_deleted": 100}
    }
  }
}`

func newService(t *testing.T) (*Service, config.Config, *bytes.Buffer) {
	t.Helper()
	root := t.TempDir()
	cfg := config.Config{
		Team: []config.Member{
			{Name: "Jane Doe", Email: "jane.doe@example.com", ProfileFile: "jane_doe.md", Squad: "Platform", StartDate: "2024-06-15"},
			{Name: "Sam Poe", Email: "sam.poe@example.com", ProfileFile: "sam_poe.md", Squad: "Growth"},
		},
		DataDir:     filepath.Join(root, "data"),
		ProfilesDir: filepath.Join(root, "profiles"),
	}
	var buf bytes.Buffer
	s := New(cfg, render.DefaultTemplate, &buf)
	s.now = func() time.Time { return updateNow }
	return s, cfg, &buf
}

func writeData(t *testing.T, cfg config.Config, rel, content string) {
	t.Helper()
	path := filepath.Join(cfg.DataDir, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func profile(t *testing.T, cfg config.Config, file string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(cfg.ProfilesDir, file))
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

func TestRun_CreatesMissingProfiles(t *testing.T) {
	s, cfg, _ := newService(t)

	res, err := s.Run(Options{})
	if err != nil {
		t.Fatal(err)
	}
	if res.Updated != 2 || res.Skipped != 0 || len(res.Errors) != 0 {
		t.Fatalf("results = %+v", res)
	}

	doc := profile(t, cfg, "jane_doe.md")
	if !strings.HasPrefix(doc, "# Jane Doe") {
		t.Errorf("header = %q", doc[:30])
	}
	rows := document.UpdateHistory(doc)
	if len(rows) != 1 || rows[0] != "| 2026-02-10 | Profile created | Initial creation |" {
		t.Errorf("history rows = %v", rows)
	}
	if strings.Contains(doc, document.HistoryPlaceholder) || strings.Contains(doc, document.MetricsPlaceholder) {
		t.Error("placeholders left in written profile")
	}
}

func TestRun_FirstVersionIncludesMetricsSnapshot(t *testing.T) {
	s, cfg, _ := newService(t)
	writeData(t, cfg, "analytics/jane_doe_analytics.json", analyticsJSON)

	if _, err := s.Run(Options{Person: "Jane Doe"}); err != nil {
		t.Fatal(err)
	}

	doc := profile(t, cfg, "jane_doe.md")
	rows := document.MetricsHistory(doc)
	if len(rows) != 1 || rows[0] != "| 2026-01 | 15 | 8 | +500/-100 | |" {
		t.Errorf("metrics rows = %v", rows)
	}
	hist := document.UpdateHistory(doc)
	if len(hist) != 1 || !strings.Contains(hist[0], "Dev Analytics") {
		t.Errorf("history should name the loaded source: %v", hist)
	}
}

func TestRun_MergePreservesManualEdits(t *testing.T) {
	s, cfg, _ := newService(t)
	if _, err := s.Run(Options{Person: "Jane Doe"}); err != nil {
		t.Fatal(err)
	}

	doc := profile(t, cfg, "jane_doe.md")
	doc = strings.Replace(doc, "*To be completed by manager.*", "Strong systems thinker.", 1)
	if err := os.WriteFile(filepath.Join(cfg.ProfilesDir, "jane_doe.md"), []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := s.Run(Options{Person: "Jane Doe"}); err != nil {
		t.Fatal(err)
	}

	merged := profile(t, cfg, "jane_doe.md")
	if !strings.Contains(merged, "Strong systems thinker.") {
		t.Error("manual edit lost on update")
	}
	if len(document.UpdateHistory(merged)) != 2 {
		t.Errorf("history rows = %v", document.UpdateHistory(merged))
	}
}

func TestRun_InitSkipsExistingWithoutForce(t *testing.T) {
	s, cfg, out := newService(t)
	if _, err := s.Run(Options{}); err != nil {
		t.Fatal(err)
	}
	before := profile(t, cfg, "jane_doe.md")

	res, err := s.Run(Options{Init: true})
	if err != nil {
		t.Fatal(err)
	}
	if res.Skipped != 2 || res.Updated != 0 {
		t.Fatalf("results = %+v", res)
	}
	if profile(t, cfg, "jane_doe.md") != before {
		t.Error("skipped profile was modified")
	}
	if !strings.Contains(out.String(), "--force") {
		t.Errorf("skip message should mention --force: %q", out.String())
	}
}

func TestRun_InitForceOverwrites(t *testing.T) {
	s, cfg, _ := newService(t)
	if _, err := s.Run(Options{Person: "Jane Doe"}); err != nil {
		t.Fatal(err)
	}

	res, err := s.Run(Options{Person: "Jane Doe", Init: true, Force: true})
	if err != nil {
		t.Fatal(err)
	}
	if res.Updated != 1 {
		t.Fatalf("results = %+v", res)
	}

	doc := profile(t, cfg, "jane_doe.md")
	rows := document.UpdateHistory(doc)
	if len(rows) != 1 || !strings.Contains(rows[0], "Profile initialized") {
		t.Errorf("history rows = %v", rows)
	}
	// No created date given; init falls back to the member's start date.
	if !strings.Contains(doc, "**Profile Created:** 2024-06-15") {
		t.Error("init should date the profile from the start date")
	}
}

func TestRun_RegenerateDiscardsManualEdits(t *testing.T) {
	s, cfg, _ := newService(t)
	if _, err := s.Run(Options{Person: "Jane Doe"}); err != nil {
		t.Fatal(err)
	}

	doc := profile(t, cfg, "jane_doe.md")
	doc = strings.Replace(doc, "*To be completed by manager.*", "Old notes.", 1)
	if err := os.WriteFile(filepath.Join(cfg.ProfilesDir, "jane_doe.md"), []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := s.Run(Options{Person: "Jane Doe", Regenerate: true}); err != nil {
		t.Fatal(err)
	}

	regen := profile(t, cfg, "jane_doe.md")
	if strings.Contains(regen, "Old notes.") {
		t.Error("regenerate must start from the template")
	}
	rows := document.UpdateHistory(regen)
	if len(rows) != 1 || !strings.Contains(rows[0], "Profile regenerated from template") {
		t.Errorf("history rows = %v", rows)
	}
}

func TestRun_DryRunWritesNothing(t *testing.T) {
	s, cfg, out := newService(t)

	res, err := s.Run(Options{DryRun: true})
	if err != nil {
		t.Fatal(err)
	}
	if res.Updated != 2 {
		t.Fatalf("results = %+v", res)
	}
	if _, err := os.Stat(filepath.Join(cfg.ProfilesDir, "jane_doe.md")); !os.IsNotExist(err) {
		t.Error("dry run wrote a profile")
	}
	if !strings.Contains(out.String(), "would have created") {
		t.Errorf("output = %q", out.String())
	}
}

func TestRun_CreatedDateOverride(t *testing.T) {
	s, cfg, _ := newService(t)
	if _, err := s.Run(Options{Person: "Jane Doe", CreatedDate: "2025-03-01"}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(profile(t, cfg, "jane_doe.md"), "**Profile Created:** 2025-03-01") {
		t.Error("created-date override not applied")
	}
}

func TestRun_UnknownMember(t *testing.T) {
	s, _, _ := newService(t)
	if _, err := s.Run(Options{Person: "Nobody"}); err == nil {
		t.Fatal("expected error for unknown member")
	}
}

func TestRun_BadDataFileContinuesBatch(t *testing.T) {
	s, cfg, out := newService(t)
	writeData(t, cfg, "analytics/jane_doe_analytics.json", "{not json")

	res, err := s.Run(Options{})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Errors) != 1 || res.Errors[0].Name != "Jane Doe" {
		t.Fatalf("errors = %+v", res.Errors)
	}
	if res.Updated != 1 {
		t.Fatalf("batch should continue past a failing member: %+v", res)
	}
	if _, err := os.Stat(filepath.Join(cfg.ProfilesDir, "sam_poe.md")); err != nil {
		t.Error("second member should still be written")
	}
	if !strings.Contains(out.String(), "✗ Jane Doe") {
		t.Errorf("output = %q", out.String())
	}
}

func TestRun_UpdateIsIdempotentDayToDay(t *testing.T) {
	s, cfg, _ := newService(t)
	writeData(t, cfg, "analytics/jane_doe_analytics.json", analyticsJSON)

	for i := 0; i < 3; i++ {
		if _, err := s.Run(Options{Person: "Jane Doe"}); err != nil {
			t.Fatal(err)
		}
	}

	doc := profile(t, cfg, "jane_doe.md")
	if rows := document.MetricsHistory(doc); len(rows) != 1 {
		t.Errorf("metrics rows accumulated: %v", rows)
	}
	// One creation row plus one per merge run.
	if rows := document.UpdateHistory(doc); len(rows) != 3 {
		t.Errorf("history rows = %v", rows)
	}
	if n := strings.Count(doc, document.FooterPrefix); n != 1 {
		t.Errorf("footer appears %d times", n)
	}
}

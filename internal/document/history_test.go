package document

import (
	"testing"

	"github.com/gvonness-apolitical/apolitical-assistant/internal/engagement"
)

func TestMetricsHistory_Rows(t *testing.T) {
	rows := MetricsHistory(sampleDoc)
	if len(rows) != 1 {
		t.Fatalf("got %d rows: %v", len(rows), rows)
	}
	if rows[0] != "| 2025-12 | 10 | 5 | +200/-50 | |" {
		t.Errorf("row = %q", rows[0])
	}
}

func TestMetricsHistory_AbsentTable(t *testing.T) {
	if rows := MetricsHistory("## 2. Delivery\n\nNo table here.\n"); len(rows) != 0 {
		t.Errorf("expected no rows, got %v", rows)
	}
}

func TestMetricsHistory_PlaceholderDropped(t *testing.T) {
	doc := "### Metrics History\n\n| Period | PRs | Reviews | Lines | Notes |\n|---|---|---|---|---|\n" + MetricsPlaceholder + "\n"
	if rows := MetricsHistory(doc); len(rows) != 0 {
		t.Errorf("placeholder row should be dropped, got %v", rows)
	}
}

func TestMetricsHistory_IgnoresUnrelatedTables(t *testing.T) {
	doc := "## 3. RFC Engagement\n\n| RFC | Status |\n|---|---|\n| Caching | Draft |\n\n### Metrics History\n\nNo table under the heading.\n"
	if rows := MetricsHistory(doc); len(rows) != 0 {
		t.Errorf("table before the heading must not match, got %v", rows)
	}
}

func TestUpdateHistory_Rows(t *testing.T) {
	rows := UpdateHistory(sampleDoc)
	if len(rows) != 1 {
		t.Fatalf("got %d rows: %v", len(rows), rows)
	}
	if rows[0] != "| 2026-01-05 | Profile refreshed | Slack, Humaans |" {
		t.Errorf("row = %q", rows[0])
	}
}

func TestUpdateHistory_ProseGuard(t *testing.T) {
	doc := "## Update History\n\n| Date | Changes | Sources |\n|---|---|---|\n| 2026-01-05 | ok | x |\nloose prose right after the table\n"
	rows := UpdateHistory(doc)
	if len(rows) != 1 {
		t.Errorf("prose must not be read as a row: %v", rows)
	}
}

func TestUpdateHistory_SkipsCommentBeforeTable(t *testing.T) {
	doc := "## Update History\n\n<!-- AUTO-APPENDED -->\n\n| Date | Changes | Sources |\n|------|---------|---------|\n| 2026-01-05 | Profile refreshed | Slack |\n"
	rows := UpdateHistory(doc)
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %v", rows)
	}
}

func TestUpdateHistory_MissingSeparator(t *testing.T) {
	doc := "## Update History\n\n| Date | Changes | Sources |\n| 2026-01-05 | no separator | x |\n"
	if rows := UpdateHistory(doc); len(rows) != 0 {
		t.Errorf("table without separator row must not match, got %v", rows)
	}
}

func intp(v int) *int { return &v }

func analyticsFixture() *engagement.Analytics {
	return &engagement.Analytics{
		Periods: map[string]engagement.Period{
			"2025-12": {Metrics: engagement.PeriodMetrics{PRsMerged: intp(10), Reviews: intp(5), LinesAdded: intp(200), LinesDeleted: intp(50)}},
			"2026-01": {Metrics: engagement.PeriodMetrics{PRsMerged: intp(15), Reviews: intp(8), LinesAdded: intp(500), LinesDeleted: intp(100)}},
		},
	}
}

func TestMetricsSnapshot_LatestPeriod(t *testing.T) {
	row := MetricsSnapshot(analyticsFixture(), "2026-01")
	if row != "| 2026-01 | 15 | 8 | +500/-100 | |" {
		t.Errorf("row = %q", row)
	}
}

func TestMetricsSnapshot_UnknownPeriodFallsBack(t *testing.T) {
	row := MetricsSnapshot(analyticsFixture(), "1999-01")
	if row != "| 2026-01 | 15 | 8 | +500/-100 | |" {
		t.Errorf("fallback row = %q", row)
	}
}

func TestMetricsSnapshot_MissingFields(t *testing.T) {
	a := &engagement.Analytics{Periods: map[string]engagement.Period{"2026-01": {}}}
	row := MetricsSnapshot(a, "2026-01")
	if row != "| 2026-01 | N/A | N/A | +0/-0 | |" {
		t.Errorf("row = %q", row)
	}
}

func TestMetricsSnapshot_NoData(t *testing.T) {
	if row := MetricsSnapshot(nil, "2026-01"); row != "" {
		t.Errorf("expected empty row, got %q", row)
	}
}

func TestNeedsSnapshot_SubstringSuppression(t *testing.T) {
	if NeedsSnapshot(sampleDoc, "2025-12") {
		t.Error("existing period must suppress a new snapshot")
	}
	if !NeedsSnapshot(sampleDoc, "2026-01") {
		t.Error("new period must allow a snapshot")
	}
}

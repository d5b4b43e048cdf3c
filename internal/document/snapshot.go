package document

import (
	"fmt"
	"strings"

	"github.com/gvonness-apolitical/apolitical-assistant/internal/engagement"
)

// MetricsSnapshot renders a metrics-history row for the given period, e.g.
//
//	| 2026-01 | 15 | 8 | +500/-100 | |
//
// An unknown or empty period falls back to the most recent one. Missing PR and
// review counts render as "N/A"; missing line counts as zero. Returns "" when
// there is no analytics data at all.
func MetricsSnapshot(a *engagement.Analytics, period string) string {
	if a == nil || len(a.Periods) == 0 {
		return ""
	}

	target := period
	if _, ok := a.Periods[target]; !ok {
		target = a.LatestPeriod()
	}
	m := a.Periods[target].Metrics

	lines := fmt.Sprintf("+%d/-%d", intOrZero(m.LinesAdded), intOrZero(m.LinesDeleted))
	return fmt.Sprintf("| %s | %s | %s | %s | |", target, countOrNA(m.PRsMerged), countOrNA(m.Reviews), lines)
}

// NeedsSnapshot reports whether a snapshot for period should be added to the
// document. Any existing metrics row whose text contains the period label
// suppresses it: a loose substring test, kept for compatibility with
// documents produced before this tool.
func NeedsSnapshot(existing, period string) bool {
	for _, row := range MetricsHistory(existing) {
		if strings.Contains(row, period) {
			return false
		}
	}
	return true
}

func countOrNA(v *int) string {
	if v == nil {
		return "N/A"
	}
	return fmt.Sprintf("%d", *v)
}

func intOrZero(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}

// Package merge reconciles a freshly rendered profile document with the
// existing on-disk version: auto sections are replaced, manual and
// append-only sections preserved, and the history tables consolidated.
package merge

import (
	"fmt"
	"strings"
	"time"

	"github.com/gvonness-apolitical/apolitical-assistant/internal/document"
	"github.com/gvonness-apolitical/apolitical-assistant/internal/engagement"
)

// Separator is the horizontal rule between document parts.
const Separator = "---"

// DefaultSourcesLabel appears in the update-history row when no data sources
// were refreshed this run.
const DefaultSourcesLabel = "Auto-refresh"

// footerText is re-emitted verbatim at the end of every merged document.
const footerText = "*This is a living document. Sections marked AUTO-UPDATED refresh automatically. Sections marked MANUAL or APPEND-ONLY require human input.*"

// Merge produces the final document from a fresh render and the existing
// document. Per section: Auto takes the fresh text, Manual and AppendOnly
// keep the existing text and fall back to the fresh template default when the
// existing document lacks the section. Metrics history carries existing rows
// forward and adds at most one new snapshot; update history gets exactly one
// new row. Running Merge twice with the same inputs changes nothing but the
// appended update-history row.
func Merge(fresh, existing string, sources []string, analytics *engagement.Analytics, pol document.Policy, now time.Time) string {
	freshSections := document.ParseSections(fresh)
	existingSections := document.ParseSections(existing)

	var parts []string

	if header := headerOf(fresh); header != "" {
		parts = append(parts, header)
	}

	for n := 1; n <= document.MaxSection; n++ {
		var text string
		var ok bool
		switch pol.Of(n) {
		case document.Auto:
			text, ok = freshSections.Numbered[n]
		case document.Manual, document.AppendOnly:
			if text, ok = existingSections.Numbered[n]; !ok {
				text, ok = freshSections.Numbered[n]
			}
		}
		if ok {
			parts = append(parts, cleanSection(text))
		}
	}

	merged := strings.Join(parts, "\n\n"+Separator+"\n\n")

	merged = resolveMetrics(merged, existing, analytics)

	merged += "\n\n" + Separator + "\n\n" + historyBlock(existing, sources, now)

	return normalizeSeparators(merged)
}

// headerOf returns the free text preceding the first numbered section,
// trailing separator trimmed. The header carries regenerated identity fields,
// so it always comes from the fresh document.
func headerOf(fresh string) string {
	lines := strings.Split(fresh, "\n")
	end := len(lines)
	for i, line := range lines {
		if _, ok := document.HeadingNumber(line); ok {
			end = i
			break
		}
	}
	header := strings.Join(lines[:end], "\n")
	return strings.TrimSpace(strings.TrimRight(header, "\n-"))
}

// cleanSection strips a section's trailing separator and any embedded closing
// footer; both are reattached once during reassembly.
func cleanSection(text string) string {
	text = strings.TrimRight(text, "\n")
	text = strings.TrimRight(text, "-")
	text = strings.TrimRight(text, "\n")
	if i := strings.Index(text, "\n"+document.FooterPrefix); i >= 0 {
		text = text[:i]
	}
	return strings.TrimSpace(text)
}

// resolveMetrics substitutes the metrics-history placeholder with existing
// rows plus at most one new snapshot (new row first). With no rows at all the
// placeholder is removed.
func resolveMetrics(merged, existing string, analytics *engagement.Analytics) string {
	existingRows := document.MetricsHistory(existing)

	var rows []string
	if latest := analytics.LatestPeriod(); latest != "" && document.NeedsSnapshot(existing, latest) {
		if snapshot := document.MetricsSnapshot(analytics, latest); snapshot != "" {
			rows = append(rows, snapshot)
		}
	}
	rows = append(rows, existingRows...)

	return strings.Replace(merged, document.MetricsPlaceholder, strings.Join(rows, "\n"), 1)
}

// historyBlock rebuilds the update-history section: existing rows carried
// forward with one new row prepended, then the closing footer. The block is
// generated fresh on every merge rather than parsed from the rendered
// document.
func historyBlock(existing string, sources []string, now time.Time) string {
	label := DefaultSourcesLabel
	if len(sources) > 0 {
		label = strings.Join(sources, ", ")
	}
	newRow := fmt.Sprintf("| %s | Profile refreshed | %s |", now.Format("2006-01-02"), label)

	rows := append([]string{newRow}, document.UpdateHistory(existing)...)

	var b strings.Builder
	b.WriteString(document.UpdateHistoryHeading + "\n\n")
	b.WriteString("<!-- AUTO-APPENDED: Log of each profile update -->\n\n")
	b.WriteString("| Date | Changes | Data Sources Refreshed |\n")
	b.WriteString("|------|---------|------------------------|\n")
	b.WriteString(strings.Join(rows, "\n"))
	b.WriteString("\n\n" + Separator + "\n\n")
	b.WriteString(footerText + "\n")
	return b.String()
}

// normalizeSeparators collapses each run of adjacent separator lines (blank
// lines between them included) into a single separator, and drops a separator
// standing at the very top of the document.
func normalizeSeparators(text string) string {
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))

	isSep := func(s string) bool { return strings.TrimSpace(s) == Separator }
	isBlank := func(s string) bool { return strings.TrimSpace(s) == "" }

	for i := 0; i < len(lines); {
		if !isSep(lines[i]) {
			out = append(out, lines[i])
			i++
			continue
		}
		// Walk the run of separators and intervening blanks; keep one.
		last := i
		j := i
		for j < len(lines) && (isSep(lines[j]) || isBlank(lines[j])) {
			if isSep(lines[j]) {
				last = j
			}
			j++
		}
		out = append(out, Separator)
		i = last + 1
	}

	if len(out) > 0 && isSep(out[0]) {
		out = out[1:]
		if len(out) > 0 && isBlank(out[0]) {
			out = out[1:]
		}
	}

	return strings.Join(out, "\n")
}

// DriftWarning compares section counts between the existing document and the
// fresh template render. A difference beyond the tolerance suggests the
// template changed shape and an incremental merge may misplace content; the
// returned warning recommends a full regeneration. Advisory only.
func DriftWarning(existing, fresh string) (string, bool) {
	existingLen := document.ParseSections(existing).Len()
	freshLen := document.ParseSections(fresh).Len()
	if existingLen == 0 || freshLen == 0 {
		return "", false
	}
	diff := existingLen - freshLen
	if diff < 0 {
		diff = -diff
	}
	if diff <= 2 {
		return "", false
	}
	return fmt.Sprintf("template structure has changed significantly (%d sections on disk, %d in template); consider --regenerate", existingLen, freshLen), true
}

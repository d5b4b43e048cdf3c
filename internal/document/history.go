package document

import "strings"

// Placeholder tokens left in a freshly rendered document for the merge engine
// to resolve.
const (
	MetricsPlaceholder = "{{METRICS_HISTORY}}"
	HistoryPlaceholder = "{{UPDATE_HISTORY}}"
)

// MetricsHistoryHeading anchors the metrics-history table inside section 2.
const MetricsHistoryHeading = "### Metrics History"

// MetricsHistory returns the body rows of the metrics-history table, verbatim,
// header and separator excluded. Unresolved placeholder rows are dropped. An
// absent heading or table yields an empty list.
func MetricsHistory(text string) []string {
	rows := tableRows(text, MetricsHistoryHeading)
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		trimmed := strings.TrimSpace(r)
		if trimmed == "" || trimmed == MetricsPlaceholder {
			continue
		}
		out = append(out, r)
	}
	return out
}

// UpdateHistory returns the body rows of the update-history table, trimmed.
// Only lines that are syntactically table rows are accepted, and placeholder
// rows are dropped.
func UpdateHistory(text string) []string {
	rows := tableRows(text, UpdateHistoryHeading)
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		trimmed := strings.TrimSpace(r)
		if !strings.HasPrefix(trimmed, "|") || strings.Contains(trimmed, HistoryPlaceholder) {
			continue
		}
		out = append(out, trimmed)
	}
	return out
}

// tableRows finds the first Markdown table after the line beginning with
// heading and returns its body rows. The table is a header row, a separator
// row, then consecutive rows starting with "|". Anchoring to the heading
// keeps tables in unrelated sections out of reach.
func tableRows(text, heading string) []string {
	lines := strings.Split(text, "\n")

	start := -1
	for i, line := range lines {
		if strings.HasPrefix(line, heading) {
			start = i
			break
		}
	}
	if start < 0 {
		return nil
	}

	// Header row: first "|" line after the heading.
	header := -1
	for i := start + 1; i < len(lines); i++ {
		if strings.HasPrefix(strings.TrimSpace(lines[i]), "|") {
			header = i
			break
		}
	}
	if header < 0 || header+1 >= len(lines) {
		return nil
	}
	if !isSeparatorRow(lines[header+1]) {
		return nil
	}

	var rows []string
	for i := header + 2; i < len(lines); i++ {
		if !strings.HasPrefix(strings.TrimSpace(lines[i]), "|") {
			break
		}
		rows = append(rows, lines[i])
	}
	return rows
}

// isSeparatorRow reports whether line is a table separator: it starts with
// "|" and contains only dashes, pipes, and whitespace.
func isSeparatorRow(line string) bool {
	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(trimmed, "|") {
		return false
	}
	for _, r := range trimmed {
		switch r {
		case '-', '|', ' ', '\t':
		default:
			return false
		}
	}
	return true
}

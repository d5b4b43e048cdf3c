// Package document implements the line-oriented text model for profile
// documents: section parsing, update policies, history-table extraction, and
// metrics snapshots.
package document

import (
	"strings"
)

// MaxSection is the highest numbered section a profile document carries.
const MaxSection = 12

// UpdateHistoryHeading marks the boundary between numbered sections and the
// trailing update-history block.
const UpdateHistoryHeading = "## Update History"

// FooterPrefix identifies the closing disclaimer line of a document.
const FooterPrefix = "*This is a living document"

// SectionMap is the parsed view of a profile document: numbered sections by
// their integer, plus the update-history block and footer when present
// (empty string otherwise).
type SectionMap struct {
	Numbered      map[int]string
	UpdateHistory string
	Footer        string
}

// Len counts parsed parts, synthetic blocks included. Structural-drift
// detection compares these counts between documents.
func (s SectionMap) Len() int {
	n := len(s.Numbered)
	if s.UpdateHistory != "" {
		n++
	}
	if s.Footer != "" {
		n++
	}
	return n
}

// HeadingNumber reports whether line is a numbered level-2 heading
// ("## <n>. <title>") and returns n. The check is structural: the marker,
// an integer, a period, a space, and a non-empty title.
func HeadingNumber(line string) (int, bool) {
	rest, ok := strings.CutPrefix(line, "## ")
	if !ok {
		return 0, false
	}
	digits, title, ok := strings.Cut(rest, ".")
	if !ok || digits == "" {
		return 0, false
	}
	n := 0
	for _, r := range digits {
		if r < '0' || r > '9' {
			return 0, false
		}
		n = n*10 + int(r-'0')
	}
	title, ok = strings.CutPrefix(title, " ")
	if !ok || title == "" {
		return 0, false
	}
	return n, true
}

// ParseSections splits a profile document into its numbered sections, the
// update-history block, and the footer. A document with no numbered headings
// yields an empty (not nil) section map. Sections are keyed strictly by their
// parsed number; source order is not assumed.
func ParseSections(text string) SectionMap {
	lines := strings.Split(text, "\n")

	type heading struct {
		num  int
		line int
	}
	var headings []heading
	historyLine := -1
	for i, line := range lines {
		if historyLine < 0 && strings.HasPrefix(line, UpdateHistoryHeading) {
			historyLine = i
		}
		if n, ok := HeadingNumber(line); ok {
			headings = append(headings, heading{num: n, line: i})
		}
	}

	sm := SectionMap{Numbered: make(map[int]string, len(headings))}

	for i, h := range headings {
		end := len(lines)
		if i+1 < len(headings) {
			end = headings[i+1].line
		} else if historyLine > h.line {
			end = historyLine
		}
		sm.Numbered[h.num] = joinBlock(lines[h.line:end])
	}

	if historyLine >= 0 {
		block := lines[historyLine:]
		footerAt := -1
		for i, line := range block {
			if i > 0 && strings.HasPrefix(line, FooterPrefix) {
				footerAt = i
				break
			}
		}
		if footerAt >= 0 {
			sm.UpdateHistory = joinBlock(block[:footerAt])
			sm.Footer = strings.TrimSpace(strings.Join(block[footerAt:], "\n"))
		} else {
			sm.UpdateHistory = joinBlock(block)
		}
	}

	return sm
}

// joinBlock joins lines into a block normalized to a single trailing newline.
func joinBlock(lines []string) string {
	return strings.TrimRight(strings.Join(lines, "\n"), "\n") + "\n"
}

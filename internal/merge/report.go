package merge

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/gvonness-apolitical/apolitical-assistant/internal/document"
)

// SectionChange reports the change volume in one auto-updated section after a
// merge, in characters added and removed. Used for console output only; it
// never feeds back into document content.
type SectionChange struct {
	Section int
	Added   int
	Removed int
}

// SectionChanges diffs the auto-updated sections of the previous document
// against the merged result. Sections absent from either side, and manual or
// append-only sections, are skipped. Both sides are whitespace-normalized
// before diffing to avoid reporting pure formatting churn.
func SectionChanges(before, after string, pol document.Policy) []SectionChange {
	prev := document.ParseSections(before)
	next := document.ParseSections(after)

	dmp := diffmatchpatch.New()
	var changes []SectionChange

	for n := 1; n <= document.MaxSection; n++ {
		if pol.Of(n) != document.Auto {
			continue
		}
		b, okBefore := prev.Numbered[n]
		a, okAfter := next.Numbered[n]
		if !okBefore || !okAfter {
			continue
		}
		b, a = normalize(b), normalize(a)
		if b == a {
			continue
		}

		var added, removed int
		for _, d := range dmp.DiffMain(b, a, false) {
			switch d.Type {
			case diffmatchpatch.DiffInsert:
				added += len(d.Text)
			case diffmatchpatch.DiffDelete:
				removed += len(d.Text)
			}
		}
		if added+removed > 0 {
			changes = append(changes, SectionChange{Section: n, Added: added, Removed: removed})
		}
	}

	return changes
}

// normalize trims trailing whitespace from each line and converts CRLF to LF.
func normalize(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.Join(lines, "\n")
}

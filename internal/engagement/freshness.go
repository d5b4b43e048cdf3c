package engagement

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/gvonness-apolitical/apolitical-assistant/internal/config"
)

// Freshness thresholds in days.
const (
	FreshWithin = 14
	AgingWithin = 30
)

// Status classifies how recently a data source was refreshed.
type Status int

const (
	StatusMissing Status = iota // never collected
	StatusFresh
	StatusAging
	StatusStale
)

// SourceAge describes one data source's last refresh for the status report.
type SourceAge struct {
	Source string
	Date   time.Time // zero when Status is StatusMissing
	Days   int
	Status Status
	Manual bool // true for sources refreshed by hand, not by collectors
}

// Classify maps an age in days to a Status.
func Classify(days int) Status {
	switch {
	case days <= FreshWithin:
		return StatusFresh
	case days <= AgingWithin:
		return StatusAging
	default:
		return StatusStale
	}
}

// fileDate reads the dated JSON file at path and returns the value of dateKey
// (first 10 characters, YYYY-MM-DD). Missing or malformed files yield a zero
// time; freshness reporting is advisory and never fails.
func fileDate(path, dateKey string) time.Time {
	data, err := os.ReadFile(path)
	if err != nil {
		return time.Time{}
	}
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return time.Time{}
	}
	var raw string
	if err := json.Unmarshal(doc[dateKey], &raw); err != nil {
		return time.Time{}
	}
	if len(raw) > 10 {
		raw = raw[:10]
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}
	}
	return t
}

// age builds a SourceAge from a date relative to now.
func age(source string, date time.Time, now time.Time, manual bool) SourceAge {
	if date.IsZero() {
		return SourceAge{Source: source, Status: StatusMissing, Manual: manual}
	}
	days := int(now.Sub(date).Hours() / 24)
	return SourceAge{Source: source, Date: date, Days: days, Status: Classify(days), Manual: manual}
}

// Staleness reports the last refresh of every data source under dataDir.
// Humaans files carry no analysis date, so the oldest file mtime stands in.
func Staleness(dataDir string, emails []string, now time.Time) []SourceAge {
	var humaansOldest time.Time
	for _, email := range emails {
		path := filepath.Join(dataDir, "humaans", config.SafeEmail(email)+".json")
		info, err := os.Stat(path)
		if err != nil {
			continue
		}
		mtime := info.ModTime()
		if humaansOldest.IsZero() || mtime.Before(humaansOldest) {
			humaansOldest = mtime
		}
	}

	return []SourceAge{
		age("Humaans HR", humaansOldest, now, false),
		age("Slack Public Channels", fileDate(filepath.Join(dataDir, "slack", "all_slack_analysis.json"), "analysis_date"), now, false),
		age("Dev Analytics", fileDate(filepath.Join(dataDir, "analytics", "all_analytics.json"), "import_date"), now, false),
		age("Notion RFCs", fileDate(filepath.Join(dataDir, "notion", "rfc_engagement.json"), "analysis_date"), now, true),
		age("Email Engagement", fileDate(filepath.Join(dataDir, "email", "email_engagement.json"), "analysis_date"), now, true),
		age("Meeting Notes", fileDate(filepath.Join(dataDir, "meetings", "meeting_engagement.json"), "analysis_date"), now, true),
	}
}

package render

import (
	"fmt"
	"strings"

	"github.com/gvonness-apolitical/apolitical-assistant/internal/engagement"
)

// Sentinels for absent data. These exact strings appear in profile documents,
// so changing them changes rendered output.
const (
	NotYetAnalyzed = "*Not yet analyzed*"
	ToBeAssessed   = "*To be assessed*"
	NoneCaptured   = "*None captured*"
)

// slackDefault is the communication block rendered when Slack data is absent.
const slackDefault = `### Public Channels

| Metric | Value |
|--------|-------|
| **Total Messages** | ` + NotYetAnalyzed + ` |
| **Average Message Length** | |
| **Messages per Week** | |
| **Most Active Channels** | |
| **Peak Activity Times** | |

**Communication Patterns:**
- Tone and voice: ` + ToBeAssessed + `
- Clarity and structure: ` + ToBeAssessed + `
- Technical vs. non-technical balance: ` + ToBeAssessed + `
- Engagement style: ` + ToBeAssessed + `
- Collaboration indicators: ` + ToBeAssessed

// FormatSlackSection renders the public-channel communication block, or the
// default block when no Slack data has been collected.
func FormatSlackSection(data *engagement.Slack) string {
	if data == nil || data.PublicChannels == nil {
		return slackDefault
	}

	pc := data.PublicChannels
	m := pc.Metrics

	topChannels := "N/A"
	if names := pc.TopChannels(5); len(names) > 0 {
		topChannels = strings.Join(names, ", ")
	}

	peakDay := m.PeakActivityDay
	if peakDay == "" {
		peakDay = "N/A"
	}
	peak := peakDay + " @ N/A"
	if m.PeakActivityHour != nil {
		peak = fmt.Sprintf("%s @ %d:00", peakDay, *m.PeakActivityHour)
	}

	avgLen := "N/A"
	if m.AverageMessageLength != nil {
		avgLen = fmt.Sprintf("%.0f chars", *m.AverageMessageLength)
	}

	return fmt.Sprintf(`### Public Channels

| Metric | Value |
|--------|-------|
| **Total Messages** | %s |
| **Average Message Length** | %s |
| **Messages per Week** | %s |
| **Most Active Channels** | %s |
| **Peak Activity Times** | %s |

**Communication Patterns:**
- Tone and voice: %s
- Clarity and structure: %s
- Technical vs. non-technical balance: %s
- Engagement style: %s
- Collaboration indicators: %s`,
		intStr(m.TotalMessages), avgLen, floatStr(m.MessagesPerWeek), topChannels, peak,
		ToBeAssessed, ToBeAssessed, ToBeAssessed, ToBeAssessed, ToBeAssessed)
}

// analyticsDefault is the delivery block rendered when no analytics report
// has been imported.
const analyticsDefault = `### DORA Metrics

| Metric | Value | Rating | Trend |
|--------|-------|--------|-------|
| **Deployment Frequency** | *Not yet imported* | | |
| **Lead Time for Changes** | | | |
| **Change Failure Rate** | | | |
| **Mean Time to Recovery** | | | |

### Contribution Metrics

| Metric | Current Period | Previous Period | Trend |
|--------|----------------|-----------------|-------|
| PRs Merged | | | |
| Reviews | | | |
| Lines Added | | | |
| Lines Deleted | | | |`

// FormatAnalyticsSection renders the DORA and contribution tables from the
// two most recent periods, with a PR trend marker against the previous one.
func FormatAnalyticsSection(data *engagement.Analytics) string {
	if data == nil || len(data.Periods) == 0 {
		return analyticsDefault
	}

	labels := data.SortedPeriods()
	current := data.Periods[labels[0]]
	var previous engagement.Period
	if len(labels) > 1 {
		previous = data.Periods[labels[1]]
	}

	cm, pm := current.Metrics, previous.Metrics
	dora := current.DORA

	return fmt.Sprintf(`### DORA Metrics

| Metric | Value | Rating | Trend |
|--------|-------|--------|-------|
| **Deployment Frequency** | %s | | |
| **Lead Time for Changes** | %s | | |
| **Change Failure Rate** | %s | | |
| **Mean Time to Recovery** | %s | | |

### Contribution Metrics (%s)

| Metric | Current Period | Previous Period | Trend |
|--------|----------------|-----------------|-------|
| PRs Merged | %s | %s | %s |
| Reviews | %s | %s | |
| Lines Added | %s | %s | |
| Lines Deleted | %s | %s | |`,
		orNA(dora.DeploymentFrequency), orNA(dora.LeadTime), orNA(dora.ChangeFailureRate), orNA(dora.MTTR),
		labels[0],
		intStr(cm.PRsMerged), intStr(pm.PRsMerged), trend(cm.PRsMerged, pm.PRsMerged),
		intStr(cm.Reviews), intStr(pm.Reviews),
		intStr(cm.LinesAdded), intStr(pm.LinesAdded),
		intStr(cm.LinesDeleted), intStr(pm.LinesDeleted))
}

// trend compares two counts and returns a direction marker, or "" when
// either side is missing.
func trend(current, previous *int) string {
	if current == nil || previous == nil {
		return ""
	}
	switch {
	case *current > *previous:
		return "↑"
	case *current < *previous:
		return "↓"
	default:
		return "→"
	}
}

// RFCFields are the rendered RFC-engagement values for the template.
type RFCFields struct {
	AuthoredCount    string
	ContributedCount string
	AuthoredList     string
	ContributedList  string
	Date             string
}

// FormatRFC renders the RFC lists for one member. fileDate is the analysis
// date of the shared export file.
func FormatRFC(data *engagement.RFCMember, fileDate string) RFCFields {
	if data == nil {
		return RFCFields{
			AuthoredCount:    "0",
			ContributedCount: "0",
			AuthoredList:     "*No RFCs authored*",
			ContributedList:  "*No RFC contributions*",
			Date:             "Not available",
		}
	}

	f := RFCFields{
		AuthoredCount:    fmt.Sprintf("%d", data.Totals.Authored),
		ContributedCount: fmt.Sprintf("%d", data.Totals.Contributed),
		Date:             fileDate,
	}
	if f.Date == "" {
		f.Date = "Unknown"
	}

	if len(data.RFCsAuthored) == 0 {
		f.AuthoredList = "*No RFCs authored*"
	} else {
		var lines []string
		for _, rfc := range data.RFCsAuthored {
			title, status := orUnknown(rfc.Title), orUnknown(rfc.Status)
			if rfc.URL != "" {
				lines = append(lines, fmt.Sprintf("- [%s](%s) (%s)", title, rfc.URL, status))
			} else {
				lines = append(lines, fmt.Sprintf("- %s (%s)", title, status))
			}
		}
		f.AuthoredList = strings.Join(lines, "\n")
	}

	if len(data.RFCsContributed) == 0 {
		f.ContributedList = "*No RFC contributions*"
	} else {
		var lines []string
		for _, rfc := range data.RFCsContributed {
			title := orUnknown(rfc.Title)
			role := rfc.Role
			if role == "" {
				role = "Contributor"
			}
			if rfc.URL != "" {
				lines = append(lines, fmt.Sprintf("- [%s](%s) - %s", title, rfc.URL, role))
			} else {
				lines = append(lines, fmt.Sprintf("- %s - %s", title, role))
			}
		}
		f.ContributedList = strings.Join(lines, "\n")
	}

	return f
}

// EmailFields are the rendered email-engagement values for the template.
type EmailFields struct {
	Total           string
	AvgLength       string
	ResponseRate    string
	AvgResponseTime string
	Patterns        string
	Notable         string
	Date            string
	Period          string
}

// FormatEmail renders one member's email engagement entry.
func FormatEmail(data *engagement.EmailMember) EmailFields {
	if data == nil {
		return EmailFields{
			Total:    NotYetAnalyzed,
			Patterns: ToBeAssessed,
			Notable:  NoneCaptured,
			Date:     "Not analyzed",
			Period:   "N/A",
		}
	}

	f := EmailFields{
		Total:           NotYetAnalyzed,
		ResponseRate:    data.Metrics.ResponseRate,
		AvgResponseTime: data.Metrics.AverageResponseTime,
		Date:            orDefault(data.AnalysisDate, "Not analyzed"),
		Period:          orDefault(data.AnalysisPeriod, "N/A"),
	}
	if data.Metrics.TotalEmails != nil {
		f.Total = fmt.Sprintf("%d", *data.Metrics.TotalEmails)
	}
	if data.Metrics.AverageLength != nil {
		f.AvgLength = fmt.Sprintf("%d", *data.Metrics.AverageLength)
	}

	p := data.Patterns
	f.Patterns = bulletList([]labeled{
		{"Tone", p.Tone},
		{"Clarity", p.Clarity},
		{"Responsiveness", p.Responsiveness},
		{"Detail level", p.DetailLevel},
		{"Proactiveness", p.Proactiveness},
	}, ToBeAssessed)

	if len(data.NotableEmails) == 0 {
		f.Notable = NoneCaptured
	} else {
		var lines []string
		for _, e := range capNotable(data.NotableEmails) {
			line := fmt.Sprintf("- **%s**: %s", orDefault(e.Date, "Unknown date"), orDefault(e.Subject, "No subject"))
			if e.Summary != "" {
				line += " - " + e.Summary
			}
			lines = append(lines, line)
		}
		f.Notable = strings.Join(lines, "\n")
	}

	return f
}

// MeetingFields are the rendered meeting-engagement values for the template.
type MeetingFields struct {
	Attended   string
	Mentions   string
	Actions    string
	Engagement string
	Notable    string
	Date       string
	Period     string
}

// FormatMeeting renders one member's meeting engagement entry.
func FormatMeeting(data *engagement.MeetingMember) MeetingFields {
	if data == nil {
		return MeetingFields{
			Attended:   NotYetAnalyzed,
			Engagement: ToBeAssessed,
			Notable:    NoneCaptured,
			Date:       "Not analyzed",
			Period:     "N/A",
		}
	}

	f := MeetingFields{
		Attended: NotYetAnalyzed,
		Date:     orDefault(data.AnalysisDate, "Not analyzed"),
		Period:   orDefault(data.AnalysisPeriod, "N/A"),
	}
	if data.Metrics.MeetingsAttended != nil {
		f.Attended = fmt.Sprintf("%d", *data.Metrics.MeetingsAttended)
	}
	if data.Metrics.ContributionMentions != nil {
		f.Mentions = fmt.Sprintf("%d", *data.Metrics.ContributionMentions)
	}
	if data.Metrics.ActionItemsAssigned != nil {
		f.Actions = fmt.Sprintf("%d", *data.Metrics.ActionItemsAssigned)
	}

	p := data.EngagementPatterns
	f.Engagement = bulletList([]labeled{
		{"Participation", p.ParticipationLevel},
		{"Contribution quality", p.ContributionQuality},
		{"Initiative", p.Initiative},
		{"Collaboration", p.Collaboration},
		{"Follow-through", p.FollowThrough},
	}, ToBeAssessed)

	if len(data.NotableContributions) == 0 {
		f.Notable = NoneCaptured
	} else {
		var lines []string
		for _, c := range capContribs(data.NotableContributions) {
			lines = append(lines, fmt.Sprintf("- **%s** (%s): %s",
				orDefault(c.Meeting, "Unknown meeting"), orDefault(c.Date, "Unknown date"), c.Contribution))
		}
		f.Notable = strings.Join(lines, "\n")
	}

	return f
}

// notableLimit caps highlighted entries per list.
const notableLimit = 5

func capNotable(in []engagement.NotableEmail) []engagement.NotableEmail {
	if len(in) > notableLimit {
		return in[:notableLimit]
	}
	return in
}

func capContribs(in []engagement.NotableContribution) []engagement.NotableContribution {
	if len(in) > notableLimit {
		return in[:notableLimit]
	}
	return in
}

type labeled struct {
	label string
	value string
}

// bulletList renders "- Label: value" lines for the non-empty values, or the
// fallback when every value is empty.
func bulletList(items []labeled, fallback string) string {
	var lines []string
	for _, it := range items {
		if it.value != "" {
			lines = append(lines, fmt.Sprintf("- %s: %s", it.label, it.value))
		}
	}
	if len(lines) == 0 {
		return fallback
	}
	return strings.Join(lines, "\n")
}

func intStr(v *int) string {
	if v == nil {
		return "N/A"
	}
	return fmt.Sprintf("%d", *v)
}

func floatStr(v *float64) string {
	if v == nil {
		return "N/A"
	}
	return fmt.Sprintf("%g", *v)
}

func orNA(s string) string {
	return orDefault(s, "N/A")
}

func orUnknown(s string) string {
	return orDefault(s, "Unknown")
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

// Package render produces the fresh profile document for one member by
// substituting computed fields and formatted sub-sections into a template.
// Its output feeds the merge engine.
package render

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/gvonness-apolitical/apolitical-assistant/internal/config"
	"github.com/gvonness-apolitical/apolitical-assistant/internal/document"
	"github.com/gvonness-apolitical/apolitical-assistant/internal/engagement"
)

// Render fills template with member identity, data freshness, and formatted
// engagement sections. createdDate sets the "Profile Created" field and
// defaults to today. The two history tokens are deliberately left in place
// for the merge engine; UnresolvedTokens finds anything else left behind.
func Render(member config.Member, template string, b engagement.Bundle, now time.Time, createdDate string) string {
	today := now.Format("2006-01-02")
	if createdDate == "" {
		createdDate = today
	}

	var calc engagement.HumaansCalculated
	if b.Humaans != nil {
		calc = b.Humaans.Calculated
	}

	slackDate, slackPeriod := "Not analyzed", "N/A"
	if b.Slack != nil && b.Slack.PublicChannels != nil {
		slackDate = clipDate(b.Slack.PublicChannels.AnalysisDate, "Unknown")
		months := b.Slack.PublicChannels.AnalysisPeriodMonths
		if months == 0 {
			months = 12
		}
		slackPeriod = fmt.Sprintf("Last %d months", months)
	}

	analyticsDate, analyticsPeriod := "Not imported", "N/A"
	if b.Analytics != nil && len(b.Analytics.Periods) > 0 {
		analyticsDate = today
		analyticsPeriod = b.Analytics.PeriodRange()
	}

	humaansDate := "Not fetched"
	if b.Humaans != nil {
		humaansDate = today
	}

	rfc := FormatRFC(b.RFC, b.RFCDate)
	email := FormatEmail(b.Email)
	meeting := FormatMeeting(b.Meeting)

	values := map[string]string{
		"NAME":                    member.Name,
		"EMAIL":                   member.Email,
		"ROLE":                    firstOf(calc.JobTitle, member.Role, "Software Engineer"),
		"LEVEL":                   firstOf(calc.Level, member.Level, "TBD"),
		"SQUAD":                   firstOf(member.Squad, "TBD"),
		"START_DATE":              firstOf(calc.StartDate, member.StartDate, "TBD"),
		"TIME_IN_ROLE":            Tenure(calc, firstOf(calc.StartDate, member.StartDate), now),
		"PROFILE_CREATED":         createdDate,
		"LAST_UPDATED":            today,
		"SLACK_PUBLIC_DATE":       slackDate,
		"SLACK_PUBLIC_PERIOD":     slackPeriod,
		"SLACK_DM_DATE":           "Manual review required",
		"SLACK_DM_PERIOD":         "N/A",
		"DEV_ANALYTICS_DATE":      analyticsDate,
		"DEV_ANALYTICS_PERIOD":    analyticsPeriod,
		"HUMAANS_DATE":            humaansDate,
		"NOTION_RFC_DATE":         rfc.Date,
		"RFC_AUTHORED_COUNT":      rfc.AuthoredCount,
		"RFC_CONTRIBUTED_COUNT":   rfc.ContributedCount,
		"RFC_AUTHORED_LIST":       rfc.AuthoredList,
		"RFC_CONTRIBUTED_LIST":    rfc.ContributedList,
		"EMAIL_DATE":              email.Date,
		"EMAIL_PERIOD":            email.Period,
		"EMAIL_TOTAL":             email.Total,
		"EMAIL_AVG_LENGTH":        email.AvgLength,
		"EMAIL_RESPONSE_RATE":     email.ResponseRate,
		"EMAIL_AVG_RESPONSE_TIME": email.AvgResponseTime,
		"EMAIL_PATTERNS":          email.Patterns,
		"EMAIL_NOTABLE":           email.Notable,
		"MEETING_DATE":            meeting.Date,
		"MEETING_PERIOD":          meeting.Period,
		"MEETING_ATTENDED":        meeting.Attended,
		"MEETING_MENTIONS":        meeting.Mentions,
		"MEETING_ACTIONS":         meeting.Actions,
		"MEETING_ENGAGEMENT":      meeting.Engagement,
		"MEETING_NOTABLE":         meeting.Notable,
		"MANUAL_DATE":             today,
		"SLACK_SECTION":           FormatSlackSection(b.Slack),
		"ANALYTICS_SECTION":       FormatAnalyticsSection(b.Analytics),
	}

	pairs := make([]string, 0, len(values)*2)
	for name, value := range values {
		pairs = append(pairs, "{{"+name+"}}", value)
	}
	return strings.NewReplacer(pairs...).Replace(template)
}

// UnresolvedTokens returns the distinct {{TOKEN}} placeholders remaining in a
// rendered document, sorted. The two history tokens are expected at this
// stage and excluded; anything else is a template field the renderer does not
// know, worth a warning.
func UnresolvedTokens(doc string) []string {
	seen := map[string]bool{}
	for rest := doc; ; {
		start := strings.Index(rest, "{{")
		if start < 0 {
			break
		}
		end := strings.Index(rest[start:], "}}")
		if end < 0 {
			break
		}
		token := rest[start : start+end+2]
		if token != document.MetricsPlaceholder && token != document.HistoryPlaceholder && !strings.ContainsAny(token[2:len(token)-2], "{}\n") {
			seen[token] = true
		}
		rest = rest[start+end+2:]
	}

	tokens := make([]string, 0, len(seen))
	for t := range seen {
		tokens = append(tokens, t)
	}
	sort.Strings(tokens)
	return tokens
}

// Tenure renders time in role. Precomputed HR values win; otherwise the
// whole-year/whole-month difference between startDate and now; "TBD" when
// neither resolves.
func Tenure(calc engagement.HumaansCalculated, startDate string, now time.Time) string {
	if calc.TenureYears != nil {
		months := 0
		if calc.TenureMonths != nil {
			months = *calc.TenureMonths
		}
		return tenureString(*calc.TenureYears, months)
	}

	if startDate == "" {
		return "TBD"
	}
	start, err := time.Parse("2006-01-02", startDate)
	if err != nil || start.After(now) {
		return "TBD"
	}

	total := (now.Year()-start.Year())*12 + int(now.Month()) - int(start.Month())
	if now.Day() < start.Day() {
		total--
	}
	if total < 0 {
		total = 0
	}
	return tenureString(total/12, total%12)
}

func tenureString(years, months int) string {
	switch {
	case years > 0 && months > 0:
		return fmt.Sprintf("%s, %s", plural(years, "year"), plural(months, "month"))
	case years > 0:
		return plural(years, "year")
	case months > 0:
		return plural(months, "month")
	default:
		return "< 1 month"
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}

// firstOf returns the first non-empty value.
func firstOf(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// clipDate truncates a timestamp to its date part, with a fallback for the
// empty string.
func clipDate(s, fallback string) string {
	if s == "" {
		return fallback
	}
	if len(s) > 10 {
		return s[:10]
	}
	return s
}

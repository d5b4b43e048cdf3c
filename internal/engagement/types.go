package engagement

import "sort"

// Slack is the analyzer output for one member's public-channel activity.
type Slack struct {
	PublicChannels *SlackChannels `json:"public_channels"`
}

// SlackChannels holds the public-channel analysis block.
type SlackChannels struct {
	AnalysisDate         string         `json:"analysis_date"`
	AnalysisPeriodMonths int            `json:"analysis_period_months"`
	Metrics              SlackMetrics   `json:"metrics"`
	ChannelBreakdown     map[string]int `json:"channel_breakdown"`
}

// SlackMetrics are the per-member message statistics. Pointer fields
// distinguish "absent" from zero.
type SlackMetrics struct {
	TotalMessages        *int     `json:"total_messages"`
	AverageMessageLength *float64 `json:"average_message_length"`
	MessagesPerWeek      *float64 `json:"messages_per_week"`
	PeakActivityHour     *int     `json:"peak_activity_hour"`
	PeakActivityDay      string   `json:"peak_activity_day"`
}

// TopChannels returns up to n channel names ordered by message count,
// descending, ties broken by name.
func (c *SlackChannels) TopChannels(n int) []string {
	names := make([]string, 0, len(c.ChannelBreakdown))
	for name := range c.ChannelBreakdown {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		a, b := c.ChannelBreakdown[names[i]], c.ChannelBreakdown[names[j]]
		if a != b {
			return a > b
		}
		return names[i] < names[j]
	})
	if len(names) > n {
		names = names[:n]
	}
	return names
}

// Analytics is the imported dev-analytics report for one member, keyed by
// period label. Labels must sort lexicographically in chronological order
// (YYYY-MM); all ordering below depends on that.
type Analytics struct {
	ImportDate string            `json:"import_date"`
	Periods    map[string]Period `json:"periods"`
}

// Period is one reporting period's metrics and DORA figures.
type Period struct {
	Metrics PeriodMetrics `json:"metrics"`
	DORA    DORA          `json:"dora"`
}

// PeriodMetrics are the contribution counts for one period.
type PeriodMetrics struct {
	PRsMerged    *int `json:"prs_merged"`
	Reviews      *int `json:"reviews"`
	LinesAdded   *int `json:"lines_added"`
	LinesDeleted *int `json:"lines_deleted"`
}

// DORA holds the pre-rendered DORA metric strings from the analytics report.
type DORA struct {
	DeploymentFrequency string `json:"deployment_frequency"`
	LeadTime            string `json:"lead_time"`
	ChangeFailureRate   string `json:"change_failure_rate"`
	MTTR                string `json:"mttr"`
}

// SortedPeriods returns the period labels most recent first.
func (a *Analytics) SortedPeriods() []string {
	labels := make([]string, 0, len(a.Periods))
	for l := range a.Periods {
		labels = append(labels, l)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(labels)))
	return labels
}

// LatestPeriod returns the most recent period label, or "" if there are none.
func (a *Analytics) LatestPeriod() string {
	if a == nil {
		return ""
	}
	labels := a.SortedPeriods()
	if len(labels) == 0 {
		return ""
	}
	return labels[0]
}

// PeriodRange returns "oldest to newest", or "" if there are no periods.
func (a *Analytics) PeriodRange() string {
	labels := a.SortedPeriods()
	if len(labels) == 0 {
		return ""
	}
	return labels[len(labels)-1] + " to " + labels[0]
}

// Humaans is the cached HR-system record for one member.
type Humaans struct {
	Person     map[string]any    `json:"person"`
	Calculated HumaansCalculated `json:"calculated"`
}

// HumaansCalculated are the fields derived by the fetcher from raw HR data.
type HumaansCalculated struct {
	Level        string `json:"level"`
	JobTitle     string `json:"job_title"`
	StartDate    string `json:"start_date"`
	TenureYears  *int   `json:"tenure_years"`
	TenureMonths *int   `json:"tenure_months"`
}

// RFCFile is the Notion export: engagement per member keyed by email.
type RFCFile struct {
	AnalysisDate   string               `json:"analysis_date"`
	TeamEngagement map[string]RFCMember `json:"team_engagement"`
}

// RFCMember is one member's RFC authorship and contribution record.
type RFCMember struct {
	Totals          RFCTotals `json:"totals"`
	RFCsAuthored    []RFCRef  `json:"rfcs_authored"`
	RFCsContributed []RFCRef  `json:"rfcs_contributed"`
}

// RFCTotals are the headline counts.
type RFCTotals struct {
	Authored    int `json:"authored"`
	Contributed int `json:"contributed"`
}

// RFCRef is a single RFC reference. Status is set on authored entries,
// Role on contributed ones.
type RFCRef struct {
	Title  string `json:"title"`
	URL    string `json:"url"`
	Status string `json:"status"`
	Role   string `json:"role"`
}

// EmailFile is the manually curated email-engagement document.
type EmailFile struct {
	TeamEngagement map[string]EmailMember `json:"team_engagement"`
}

// EmailMember is one member's email engagement entry.
type EmailMember struct {
	AnalysisDate   string         `json:"analysis_date"`
	AnalysisPeriod string         `json:"analysis_period"`
	Metrics        EmailMetrics   `json:"metrics"`
	Patterns       EmailPatterns  `json:"patterns"`
	NotableEmails  []NotableEmail `json:"notable_emails"`
}

// EmailMetrics are the quantitative email figures.
type EmailMetrics struct {
	TotalEmails         *int   `json:"total_emails"`
	AverageLength       *int   `json:"average_length"`
	ResponseRate        string `json:"response_rate"`
	AverageResponseTime string `json:"average_response_time"`
}

// EmailPatterns are qualitative observations; empty strings are omitted from
// rendering.
type EmailPatterns struct {
	Tone           string `json:"tone"`
	Clarity        string `json:"clarity"`
	Responsiveness string `json:"responsiveness"`
	DetailLevel    string `json:"detail_level"`
	Proactiveness  string `json:"proactiveness"`
}

// NotableEmail is one highlighted email.
type NotableEmail struct {
	Date    string `json:"date"`
	Subject string `json:"subject"`
	Summary string `json:"summary"`
}

// MeetingFile is the manually curated meeting-engagement document.
type MeetingFile struct {
	TeamEngagement map[string]MeetingMember `json:"team_engagement"`
}

// MeetingMember is one member's meeting engagement entry.
type MeetingMember struct {
	AnalysisDate         string                `json:"analysis_date"`
	AnalysisPeriod       string                `json:"analysis_period"`
	Metrics              MeetingMetrics        `json:"metrics"`
	EngagementPatterns   MeetingPatterns       `json:"engagement_patterns"`
	NotableContributions []NotableContribution `json:"notable_contributions"`
}

// MeetingMetrics are the quantitative meeting figures.
type MeetingMetrics struct {
	MeetingsAttended     *int `json:"meetings_attended"`
	ContributionMentions *int `json:"contribution_mentions"`
	ActionItemsAssigned  *int `json:"action_items_assigned"`
}

// MeetingPatterns are qualitative observations.
type MeetingPatterns struct {
	ParticipationLevel  string `json:"participation_level"`
	ContributionQuality string `json:"contribution_quality"`
	Initiative          string `json:"initiative"`
	Collaboration       string `json:"collaboration"`
	FollowThrough       string `json:"follow_through"`
}

// NotableContribution is one highlighted meeting contribution.
type NotableContribution struct {
	Meeting      string `json:"meeting"`
	Date         string `json:"date"`
	Contribution string `json:"contribution"`
}

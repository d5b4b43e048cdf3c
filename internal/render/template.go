package render

import (
	"fmt"
	"os"
)

// LoadTemplate reads a profile template from path, or returns the built-in
// default when path is empty. Any template following the same shape (12
// numbered sections, Update History, footer) works.
func LoadTemplate(path string) (string, error) {
	if path == "" {
		return DefaultTemplate, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading template: %w", err)
	}
	return string(data), nil
}

// DefaultTemplate is the standard 12-section profile document. Sections 1-4
// are auto-updated, 5-10 manual, 11-12 append-only; {{METRICS_HISTORY}} and
// {{UPDATE_HISTORY}} are resolved by the merge engine, every other token by
// the renderer.
const DefaultTemplate = `# {{NAME}}

**Email:** {{EMAIL}}
**Role:** {{ROLE}}
**Level:** {{LEVEL}}
**Squad:** {{SQUAD}}
**Start Date:** {{START_DATE}}
**Time in Role:** {{TIME_IN_ROLE}}
**Profile Created:** {{PROFILE_CREATED}}
**Last Updated:** {{LAST_UPDATED}}

---

## 1. Profile Overview

<!-- AUTO-UPDATED: Data freshness per source -->

| Data Source | Last Refreshed | Period |
|-------------|----------------|--------|
| Humaans HR | {{HUMAANS_DATE}} | Current |
| Slack (public channels) | {{SLACK_PUBLIC_DATE}} | {{SLACK_PUBLIC_PERIOD}} |
| Slack (DMs) | {{SLACK_DM_DATE}} | {{SLACK_DM_PERIOD}} |
| Dev Analytics | {{DEV_ANALYTICS_DATE}} | {{DEV_ANALYTICS_PERIOD}} |
| Notion RFCs | {{NOTION_RFC_DATE}} | Current |
| Email Engagement | {{EMAIL_DATE}} | {{EMAIL_PERIOD}} |
| Meeting Notes | {{MEETING_DATE}} | {{MEETING_PERIOD}} |

---

## 2. Delivery Performance

<!-- AUTO-UPDATED: Refreshed from dev-analytics reports -->

{{ANALYTICS_SECTION}}

### Metrics History

| Period | PRs Merged | Reviews | Lines Changed | Notes |
|--------|------------|---------|---------------|-------|
{{METRICS_HISTORY}}

---

## 3. RFC Engagement

<!-- AUTO-UPDATED: Refreshed from Notion RFC export -->

**Authored:** {{RFC_AUTHORED_COUNT}} | **Contributed:** {{RFC_CONTRIBUTED_COUNT}}

### RFCs Authored

{{RFC_AUTHORED_LIST}}

### RFC Contributions

{{RFC_CONTRIBUTED_LIST}}

---

## 4. Communication

<!-- AUTO-UPDATED: Refreshed from Slack, email engagement, and meeting notes -->

{{SLACK_SECTION}}

### Email

| Metric | Value |
|--------|-------|
| **Total Emails** | {{EMAIL_TOTAL}} |
| **Average Length** | {{EMAIL_AVG_LENGTH}} |
| **Response Rate** | {{EMAIL_RESPONSE_RATE}} |
| **Average Response Time** | {{EMAIL_AVG_RESPONSE_TIME}} |

**Email Patterns:**
{{EMAIL_PATTERNS}}

**Notable Emails:**
{{EMAIL_NOTABLE}}

### Meetings

| Metric | Value |
|--------|-------|
| **Meetings Attended** | {{MEETING_ATTENDED}} |
| **Contribution Mentions** | {{MEETING_MENTIONS}} |
| **Action Items Assigned** | {{MEETING_ACTIONS}} |

**Engagement Patterns:**
{{MEETING_ENGAGEMENT}}

**Notable Contributions:**
{{MEETING_NOTABLE}}

---

## 5. Leadership Values

<!-- MANUAL: Preserved on updates; edit freely -->

*To be completed by manager.*

---

## 6. Engineering Values

<!-- MANUAL: Preserved on updates; edit freely -->

*To be completed by manager.*

---

## 7. Skills Assessment

<!-- MANUAL: Preserved on updates; edit freely -->

*To be completed by manager.*

---

## 8. Growth Areas

<!-- MANUAL: Preserved on updates; edit freely -->

*To be completed by manager.*

---

## 9. Career Development

<!-- MANUAL: Preserved on updates; edit freely -->

*To be completed by manager.*

---

## 10. Manager Notes

<!-- MANUAL: Preserved on updates; edit freely -->

*Last reviewed: {{MANUAL_DATE}}*

---

## 11. 1:1 Notes

<!-- APPEND-ONLY: Add new entries at the top; existing entries are never overwritten -->

*No notes yet.*

---

## 12. Evidence Log

<!-- APPEND-ONLY: Add new entries at the top; existing entries are never overwritten -->

*No evidence captured yet.*

---

## Update History

<!-- AUTO-APPENDED: Log of each profile update -->

| Date | Changes | Data Sources Refreshed |
|------|---------|------------------------|
{{UPDATE_HISTORY}}

---

*This is a living document. Sections marked AUTO-UPDATED refresh automatically. Sections marked MANUAL or APPEND-ONLY require human input.*
`

package engagement

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gvonness-apolitical/apolitical-assistant/internal/config"
)

// Bundle gathers every engagement source for one member. Any field may be nil:
// a source that has not been collected yet is simply absent, and the renderer
// degrades per source.
type Bundle struct {
	Slack     *Slack
	Analytics *Analytics
	Humaans   *Humaans
	RFC       *RFCMember
	RFCDate   string // analysis date of the RFC export file
	Email     *EmailMember
	Meeting   *MeetingMember
}

// loadJSON decodes path into out. A missing file is not an error; the caller
// gets found=false. A file that exists but fails to decode is a real error.
func loadJSON(path string, out any) (found bool, err error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("reading %s: %w", path, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return false, fmt.Errorf("parsing %s: %w", path, err)
	}
	return true, nil
}

// LoadSlack loads data/slack/<key>_slack.json.
func LoadSlack(dataDir, memberKey string) (*Slack, error) {
	var s Slack
	found, err := loadJSON(filepath.Join(dataDir, "slack", memberKey+"_slack.json"), &s)
	if err != nil || !found {
		return nil, err
	}
	return &s, nil
}

// LoadAnalytics loads data/analytics/<key>_analytics.json.
func LoadAnalytics(dataDir, memberKey string) (*Analytics, error) {
	var a Analytics
	found, err := loadJSON(filepath.Join(dataDir, "analytics", memberKey+"_analytics.json"), &a)
	if err != nil || !found {
		return nil, err
	}
	return &a, nil
}

// LoadHumaans loads data/humaans/<safe-email>.json.
func LoadHumaans(dataDir, email string) (*Humaans, error) {
	var h Humaans
	found, err := loadJSON(filepath.Join(dataDir, "humaans", config.SafeEmail(email)+".json"), &h)
	if err != nil || !found {
		return nil, err
	}
	return &h, nil
}

// LoadRFCFile loads the Notion RFC export shared by all members.
func LoadRFCFile(dataDir string) (*RFCFile, error) {
	var f RFCFile
	found, err := loadJSON(filepath.Join(dataDir, "notion", "rfc_engagement.json"), &f)
	if err != nil || !found {
		return nil, err
	}
	return &f, nil
}

// LoadEmailFile loads the curated email-engagement document.
func LoadEmailFile(dataDir string) (*EmailFile, error) {
	var f EmailFile
	found, err := loadJSON(filepath.Join(dataDir, "email", "email_engagement.json"), &f)
	if err != nil || !found {
		return nil, err
	}
	return &f, nil
}

// LoadMeetingFile loads the curated meeting-engagement document.
func LoadMeetingFile(dataDir string) (*MeetingFile, error) {
	var f MeetingFile
	found, err := loadJSON(filepath.Join(dataDir, "meetings", "meeting_engagement.json"), &f)
	if err != nil || !found {
		return nil, err
	}
	return &f, nil
}

// LoadBundle assembles every source for one member. Absent files leave nil
// fields; only decode or I/O failures are errors.
func LoadBundle(dataDir string, member config.Member) (Bundle, error) {
	var b Bundle
	var err error

	if b.Slack, err = LoadSlack(dataDir, member.Key()); err != nil {
		return b, err
	}
	if b.Analytics, err = LoadAnalytics(dataDir, member.Key()); err != nil {
		return b, err
	}
	if b.Humaans, err = LoadHumaans(dataDir, member.Email); err != nil {
		return b, err
	}

	rfcFile, err := LoadRFCFile(dataDir)
	if err != nil {
		return b, err
	}
	if rfcFile != nil {
		b.RFCDate = rfcFile.AnalysisDate
		if m, ok := rfcFile.TeamEngagement[member.Email]; ok {
			b.RFC = &m
		}
	}

	emailFile, err := LoadEmailFile(dataDir)
	if err != nil {
		return b, err
	}
	if emailFile != nil {
		if m, ok := emailFile.TeamEngagement[member.Email]; ok {
			b.Email = &m
		}
	}

	meetingFile, err := LoadMeetingFile(dataDir)
	if err != nil {
		return b, err
	}
	if meetingFile != nil {
		if m, ok := meetingFile.TeamEngagement[member.Email]; ok {
			b.Meeting = &m
		}
	}

	return b, nil
}

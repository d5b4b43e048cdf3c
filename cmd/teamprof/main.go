package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/gvonness-apolitical/apolitical-assistant/internal/config"
	"github.com/gvonness-apolitical/apolitical-assistant/internal/engagement"
	"github.com/gvonness-apolitical/apolitical-assistant/internal/render"
	"github.com/gvonness-apolitical/apolitical-assistant/internal/update"
)

// version is set at build time via -ldflags "-X main.version=x.y.z".
var version = "dev"

// exitErr carries a numeric exit code through the cobra error path.
type exitErr struct {
	code int
	msg  string
}

func (e *exitErr) Error() string { return e.msg }

// codeError returns an exitErr for the given code.
func codeError(code int, format string, args ...any) error {
	return &exitErr{code: code, msg: fmt.Sprintf(format, args...)}
}

// updateFlags holds the parsed flags for the update command.
type updateFlags struct {
	configPath   string
	all          bool
	force        bool
	regenerate   bool
	initProfiles bool
	dryRun       bool
	createdDate  string
	templatePath string
}

func main() {
	root := &cobra.Command{
		Use:     "teamprof",
		Short:   "Maintain team member profile documents",
		Long:    "Teamprof renders and updates Markdown profile documents for each team member from collected engagement data, preserving manually written sections across refreshes.",
		Version: version,
	}

	var configPath string
	root.PersistentFlags().StringVar(&configPath, "config", "team_config.yaml", "Team configuration file")

	var flags updateFlags
	updateCmd := &cobra.Command{
		Use:   "update [member-name]",
		Short: "Refresh profile documents from collected data",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags.configPath = configPath
			person := ""
			if len(args) == 1 {
				person = args[0]
			}
			return runUpdate(person, flags)
		},
	}

	f := updateCmd.Flags()
	f.BoolVar(&flags.all, "all", false, "Update every member in the configuration")
	f.BoolVar(&flags.initProfiles, "init", false, "Create profiles that do not exist yet; existing files are left alone")
	f.BoolVar(&flags.force, "force", false, "With --init, overwrite profiles that already exist")
	f.BoolVar(&flags.regenerate, "regenerate", false, "Rebuild from the template, discarding manual content")
	f.BoolVar(&flags.dryRun, "dry-run", false, "Report what would change without writing files")
	f.StringVar(&flags.createdDate, "created-date", "", "Value for the Profile Created field (YYYY-MM-DD)")
	f.StringVar(&flags.templatePath, "template", "", "Profile template file (overrides the configured one)")

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Report how stale each data source is",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatus(configPath)
		},
	}

	root.AddCommand(updateCmd)
	root.AddCommand(statusCmd)

	if err := root.Execute(); err != nil {
		var ee *exitErr
		if errors.As(err, &ee) {
			fmt.Fprintln(os.Stderr, "Error:", ee.msg)
			os.Exit(ee.code)
		}
		// cobra already printed the error
		os.Exit(1)
	}
}

func runUpdate(person string, flags updateFlags) error {
	// --- Step 1: Validate flags ---
	if person == "" && !flags.all {
		return codeError(3, "name a member or pass --all")
	}
	if person != "" && flags.all {
		return codeError(3, "--all cannot be combined with a member name")
	}
	if flags.force && !flags.initProfiles {
		return codeError(3, "--force only applies with --init")
	}
	if flags.initProfiles && flags.regenerate {
		return codeError(3, "--init and --regenerate are mutually exclusive")
	}
	if flags.createdDate != "" {
		if _, err := time.Parse("2006-01-02", flags.createdDate); err != nil {
			return codeError(3, "invalid --created-date %q: want YYYY-MM-DD", flags.createdDate)
		}
	}

	// --- Step 2: Load configuration and template ---
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return codeError(1, "loading config: %s", err)
	}
	templatePath := flags.templatePath
	if templatePath == "" {
		templatePath = cfg.TemplatePath
	}
	template, err := render.LoadTemplate(templatePath)
	if err != nil {
		return codeError(1, "loading template: %s", err)
	}

	// --- Step 3: Run the batch ---
	svc := update.New(cfg, template, os.Stdout)
	res, err := svc.Run(update.Options{
		Person:      person,
		Force:       flags.force,
		Regenerate:  flags.regenerate,
		Init:        flags.initProfiles,
		DryRun:      flags.dryRun,
		CreatedDate: flags.createdDate,
	})
	if err != nil {
		return codeError(1, "%s", err)
	}

	// --- Step 4: Summarize ---
	if flags.all {
		fmt.Printf("\n%d updated, %d skipped, %d failed\n", res.Updated, res.Skipped, len(res.Errors))
	}
	if len(res.Errors) > 0 {
		return codeError(1, "%d profile(s) failed to update", len(res.Errors))
	}
	return nil
}

func runStatus(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return codeError(1, "loading config: %s", err)
	}

	emails := make([]string, 0, len(cfg.Team))
	for _, m := range cfg.Team {
		emails = append(emails, m.Email)
	}

	fmt.Printf("Data freshness for %s\n\n", cfg.DataDir)
	for _, src := range engagement.Staleness(cfg.DataDir, emails, time.Now()) {
		note := ""
		if src.Manual {
			note = " (manually curated)"
		}
		statusColor(src.Status).Printf("%-22s %s%s\n", src.Source, statusLabel(src), note)
	}
	return nil
}

func statusLabel(src engagement.SourceAge) string {
	if src.Status == engagement.StatusMissing {
		return "never collected"
	}
	return fmt.Sprintf("%s, %d day(s) ago (%s)", statusWord(src.Status), src.Days, src.Date.Format("2006-01-02"))
}

func statusWord(s engagement.Status) string {
	switch s {
	case engagement.StatusFresh:
		return "fresh"
	case engagement.StatusAging:
		return "aging"
	default:
		return "stale"
	}
}

func statusColor(s engagement.Status) *color.Color {
	switch s {
	case engagement.StatusFresh:
		return color.New(color.FgGreen)
	case engagement.StatusAging:
		return color.New(color.FgYellow)
	default:
		return color.New(color.FgRed)
	}
}

package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ccsearch/ccsearch/internal/applog"
	"github.com/ccsearch/ccsearch/internal/config"
	"github.com/ccsearch/ccsearch/internal/format"
	"github.com/ccsearch/ccsearch/internal/interactive"
	"github.com/ccsearch/ccsearch/internal/query"
	"github.com/ccsearch/ccsearch/internal/search"
)

type rootFlags struct {
	pattern     string
	maxResults  int
	role        string
	sessionID   string
	project     string
	before      string
	after       string
	since       string
	format      string
	fullText    bool
	raw         bool
	noColor     bool
	verbose     bool
	stats       bool
	interactive bool
}

func newRootCmd() *cobra.Command {
	var flags rootFlags

	cmd := &cobra.Command{
		Use:           "ccsearch [query]",
		Short:         "Search local Claude Code session transcripts",
		Args:          cobra.ArbitraryArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRoot(cmd, args, &flags)
		},
	}

	cmd.Flags().StringVar(&flags.pattern, "pattern", "", "discovery glob (default from config, or ~/.claude/projects/**/*.jsonl)")
	cmd.Flags().IntVar(&flags.maxResults, "max-results", 0, "result cap in non-interactive mode (0 = config default)")
	cmd.Flags().StringVar(&flags.role, "role", "", "filter by role: user|assistant|system|summary")
	cmd.Flags().StringVar(&flags.sessionID, "session-id", "", "filter to one session id")
	cmd.Flags().StringVar(&flags.project, "project", "", "filter by project path prefix (\"/\" disables the default cwd filter)")
	cmd.Flags().StringVar(&flags.before, "before", "", "only messages before this RFC3339 timestamp")
	cmd.Flags().StringVar(&flags.after, "after", "", "only messages after this RFC3339 timestamp")
	cmd.Flags().StringVar(&flags.since, "since", "", `relative time filter, e.g. "1 day ago", "yesterday", or a unix timestamp; sets --after`)
	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text|json|jsonl")
	cmd.Flags().BoolVar(&flags.fullText, "full-text", false, "include the full untruncated message text")
	cmd.Flags().BoolVar(&flags.raw, "raw", false, "include the raw JSONL line in each result")
	cmd.Flags().BoolVar(&flags.noColor, "no-color", false, "disable ANSI color in text output")
	cmd.Flags().BoolVar(&flags.verbose, "verbose", false, "log skipped unreadable files and malformed lines")
	cmd.Flags().BoolVar(&flags.stats, "stats", false, "report aggregate counts instead of individual results")
	cmd.Flags().BoolVarP(&flags.interactive, "interactive", "i", false, "force interactive mode even with a query argument")

	return cmd
}

func runRoot(cmd *cobra.Command, args []string, flags *rootFlags) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	cleanup, logPath, err := applog.Setup(flags.verbose)
	if err != nil {
		return fmt.Errorf("setting up logging: %w", err)
	}
	defer cleanup()
	if flags.verbose {
		fmt.Fprintf(cmd.ErrOrStderr(), "logging to %s\n", logPath)
	}
	if flags.noColor {
		os.Setenv("NO_COLOR", "1")
	}

	pattern := flags.pattern
	if pattern == "" {
		pattern = cfg.Search.Pattern
	} else {
		pattern = config.ExpandPath(pattern)
	}

	queryText := strings.Join(args, " ")

	if queryText == "" || flags.interactive {
		return runInteractive(pattern, cfg, flags)
	}
	return runOneShot(cmd, pattern, queryText, cfg, flags)
}

func runOneShot(cmd *cobra.Command, pattern, queryText string, cfg *config.Config, flags *rootFlags) error {
	tree, err := query.Parse(queryText)
	if err != nil {
		return fmt.Errorf("invalid query: %w", err)
	}
	if err := query.Validate(tree); err != nil {
		return fmt.Errorf("invalid query: %w", err)
	}

	opts, err := buildOptions(flags)
	if err != nil {
		return err
	}
	if opts.MaxResults == 0 {
		opts.MaxResults = cfg.Search.DefaultMaxResults
	}

	engine := search.New()
	ctx := context.Background()

	if flags.stats {
		stats, err := engine.Stats(ctx, pattern, queryText, tree, opts)
		if err != nil {
			return fmt.Errorf("running search: %w", err)
		}
		return format.WriteStats(cmd.OutOrStdout(), stats, format.Format(flags.format))
	}

	result, err := engine.Search(ctx, pattern, queryText, tree, opts)
	if err != nil {
		return fmt.Errorf("running search: %w", err)
	}
	if !flags.raw {
		for i := range result.Results {
			result.Results[i].RawJSON = ""
		}
	}
	if !flags.fullText && flags.format == "text" {
		for i := range result.Results {
			result.Results[i].Text = truncatePreview(result.Results[i].Text, textPreviewWidth)
		}
	}
	return format.Write(cmd.OutOrStdout(), result, format.Format(flags.format))
}

// textPreviewWidth bounds a result's displayed text in --format text mode
// unless --full-text is given.
const textPreviewWidth = 240

func truncatePreview(text string, width int) string {
	runes := []rune(text)
	if len(runes) <= width {
		return text
	}
	return string(runes[:width]) + "…"
}

func runInteractive(pattern string, cfg *config.Config, flags *rootFlags) error {
	engine := search.New()

	var watcher *search.Watcher
	if root, err := watchRoot(pattern); err == nil {
		if w, err := search.NewWatcher(root); err == nil {
			watcher = w
			defer watcher.Close()
		}
	}

	deps := interactive.Deps{Engine: engine, Watcher: watcher}
	model := interactive.New(pattern, cfg.UI.TruncationByDefault, deps, cfg.Keymap.Overrides)

	_, err := interactive.NewProgram(model).Run()
	return err
}

// watchRoot derives the directory to recursively watch for corpus changes
// from a discovery pattern: everything up to its first wildcard segment.
func watchRoot(pattern string) (string, error) {
	expanded := config.ExpandPath(pattern)
	if idx := strings.IndexAny(expanded, "*?["); idx >= 0 {
		expanded = expanded[:idx]
	}
	expanded = strings.TrimSuffix(expanded, "/")
	if expanded == "" {
		return "", fmt.Errorf("empty watch root")
	}
	info, err := os.Stat(expanded)
	if err != nil {
		return "", err
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%s is not a directory", expanded)
	}
	return expanded, nil
}

func buildOptions(flags *rootFlags) (search.Options, error) {
	opts := search.Options{
		MaxResults: flags.maxResults,
		SessionID:  flags.sessionID,
		Verbose:    flags.verbose,
	}

	switch flags.role {
	case "":
		opts.Role = search.RoleAny
	case "user":
		opts.Role = search.RoleUser
	case "assistant":
		opts.Role = search.RoleAssistant
	case "system":
		opts.Role = search.RoleSystem
	case "summary":
		opts.Role = search.RoleSummary
	default:
		return opts, fmt.Errorf("invalid --role %q: must be one of user, assistant, system, summary", flags.role)
	}

	if flags.project != "" {
		opts.ProjectPath = flags.project
	} else if cwd, err := os.Getwd(); err == nil {
		opts.ProjectPath = cwd
	}

	if flags.before != "" {
		t, err := time.Parse(time.RFC3339, flags.before)
		if err != nil {
			return opts, fmt.Errorf("invalid --before %q: %w", flags.before, err)
		}
		opts.Before = &t
	}

	if flags.after != "" {
		t, err := time.Parse(time.RFC3339, flags.after)
		if err != nil {
			return opts, fmt.Errorf("invalid --after %q: %w", flags.after, err)
		}
		opts.After = &t
	}

	if flags.since != "" {
		t, err := parseSince(flags.since, time.Now())
		if err != nil {
			return opts, fmt.Errorf("invalid --since %q: %w", flags.since, err)
		}
		opts.After = &t
	}

	return opts, nil
}

// parseSince resolves --since against now: a bare integer is a Unix epoch
// timestamp, "yesterday" is exactly 24 hours ago, and "<N> <unit>[s] ago"
// phrases (minute, hour, day, week) subtract the given duration from now.
func parseSince(text string, now time.Time) (time.Time, error) {
	trimmed := strings.TrimSpace(strings.ToLower(text))

	if sec, err := strconv.ParseInt(trimmed, 10, 64); err == nil {
		return time.Unix(sec, 0), nil
	}

	if trimmed == "yesterday" {
		return now.Add(-24 * time.Hour), nil
	}
	if trimmed == "today" {
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()), nil
	}

	fields := strings.Fields(strings.TrimSuffix(trimmed, " ago"))
	if len(fields) != 2 {
		return time.Time{}, fmt.Errorf(`expected "<N> <unit> ago", "yesterday", or a unix timestamp`)
	}

	n, err := strconv.Atoi(fields[0])
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid amount %q", fields[0])
	}

	unit := strings.TrimSuffix(fields[1], "s")
	var d time.Duration
	switch unit {
	case "minute":
		d = time.Minute
	case "hour":
		d = time.Hour
	case "day":
		d = 24 * time.Hour
	case "week":
		d = 7 * 24 * time.Hour
	default:
		return time.Time{}, fmt.Errorf("unknown unit %q: expected minute, hour, day, or week", fields[1])
	}

	return now.Add(-time.Duration(n) * d), nil
}

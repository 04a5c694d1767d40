package text

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"

	"github.com/olusolaa/flagsync/internal/core/domain"
	"github.com/olusolaa/flagsync/internal/core/ports"
)

const ReporterTypeText = "text"

type Config struct {
	NoColor bool `mapstructure:"no_color"`
	// ShowDetails prints the field diff of every update.
	ShowDetails bool `mapstructure:"show_details"`
}

// Reporter prints a console summary of a run.
type Reporter struct {
	config Config
	writer io.Writer
	logger ports.Logger
}

var _ ports.Reporter = (*Reporter)(nil)

type Option func(*Reporter)

func WithWriter(w io.Writer) Option {
	return func(r *Reporter) {
		if w != nil {
			r.writer = w
		}
	}
}

func NewReporter(cfg Config, logger ports.Logger, opts ...Option) (*Reporter, error) {
	if cfg.NoColor || !isTerminal(os.Stdout) {
		color.NoColor = true
	}

	r := &Reporter{
		config: cfg,
		writer: os.Stdout,
		logger: logger,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

func isTerminal(f *os.File) bool {
	stat, err := f.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) != 0
}

func (r *Reporter) Report(ctx context.Context, result domain.RunResult) error {
	tw := tabwriter.NewWriter(r.writer, 0, 8, 2, ' ', 0)
	defer tw.Flush()

	red := color.New(color.FgRed).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()
	green := color.New(color.FgGreen).SprintFunc()
	cyan := color.New(color.FgCyan).SprintFunc()
	magenta := color.New(color.FgMagenta).SprintFunc()

	mode := "apply"
	if result.DryRun {
		mode = "dry run"
	}
	fmt.Fprintf(tw, "Reconciliation Report: %s/%s (%s)\n", result.Organization, result.Environment, mode)
	fmt.Fprintln(tw, "=====================")
	fmt.Fprintln(tw, "Action\tKind\tKey\tResult")
	fmt.Fprintln(tw, "------\t----\t---\t------")

	var creates, updates, removes, tags int
	for _, k := range result.Kinds {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		outcomes := indexOutcomes(k.Apply)

		for _, key := range domain.SortedKeys(k.Diff.Create) {
			creates++
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", green("[CREATE]"), k.Kind, key, outcomes.describe(key, domain.OpCreate, result.DryRun))
		}
		for _, key := range domain.SortedKeys(k.Diff.Update) {
			updates++
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", yellow("[UPDATE]"), k.Kind, key, outcomes.describe(key, domain.OpUpdate, result.DryRun))
			if r.config.ShowDetails && k.Details[key] != "" {
				for _, line := range strings.Split(strings.TrimRight(k.Details[key], "\n"), "\n") {
					fmt.Fprintf(tw, "\t\t\t%s\n", line)
				}
			}
		}
		for _, key := range k.Diff.Remove {
			removes++
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", red("[REMOVE]"), k.Kind, key, outcomes.describe(key, domain.OpRemove, result.DryRun))
		}
		for _, key := range domain.SortedKeys(k.TagDiff.Create) {
			tags++
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", cyan("[TAG]"), k.Kind, key, outcomes.describe(key, domain.OpTag, result.DryRun))
		}
		for _, key := range domain.SortedKeys(k.TagDiff.Update) {
			tags++
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", cyan("[TAG]"), k.Kind, key, outcomes.describe(key, domain.OpTag, result.DryRun))
		}
	}
	if creates+updates+removes+tags == 0 {
		fmt.Fprintln(tw, "No changes. Remote state matches declarations.")
	}

	failures := result.Failures()
	fmt.Fprintln(tw, "\nSummary:")
	fmt.Fprintln(tw, "-------")
	fmt.Fprintf(tw, "Status:\t%s\n", result.Status)
	fmt.Fprintf(tw, "Create:\t%s\n", green(creates))
	fmt.Fprintf(tw, "Update:\t%s\n", yellow(updates))
	fmt.Fprintf(tw, "Remove:\t%s\n", red(removes))
	fmt.Fprintf(tw, "Tag changes:\t%s\n", cyan(tags))
	fmt.Fprintf(tw, "Failed operations:\t%s\n", magenta(len(failures)))

	return nil
}

type outcomeIndex struct {
	ok     map[string]bool
	failed map[string]string
}

func indexOutcomes(report domain.ApplyReport) outcomeIndex {
	idx := outcomeIndex{ok: map[string]bool{}, failed: map[string]string{}}
	for _, o := range report.Succeeded {
		idx.ok[string(o.Operation)+"/"+o.Key] = true
	}
	for _, f := range report.Failed {
		idx.failed[string(f.Operation)+"/"+f.Key] = f.Error
	}
	return idx
}

func (idx outcomeIndex) describe(key string, op domain.Operation, dryRun bool) string {
	id := string(op) + "/" + key
	switch {
	case dryRun:
		return "planned"
	case idx.ok[id]:
		return "ok"
	case idx.failed[id] != "":
		return color.New(color.FgMagenta).Sprint("FAILED: " + truncate(idx.failed[id]))
	}
	return "skipped"
}

func truncate(s string) string {
	const maxLen = 100
	if len(s) > maxLen {
		return s[:maxLen-3] + "..."
	}
	return s
}

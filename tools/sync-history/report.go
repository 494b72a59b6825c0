package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"go.temporal.io/api/enums/v1"
)

func printRuns(w io.Writer, runs []*Run, now time.Time) {
	fmt.Fprintln(w, strings.Repeat("=", 80))
	fmt.Fprintf(w, "Sync runs: %d\n", len(runs))
	fmt.Fprintln(w, strings.Repeat("=", 80))

	for _, run := range runs {
		fmt.Fprintf(w, "\n%s  %s\n", formatStatus(run.Status), run.WorkflowID)
		fmt.Fprintf(w, "  Type:     %s\n", run.Type)
		fmt.Fprintf(w, "  Started:  %s\n", run.StartTime.UTC().Format(time.RFC3339))
		fmt.Fprintf(w, "  Duration: %s\n", formatDuration(run.Duration(now)))

		if run.Report == nil {
			continue
		}
		failed := run.Report.Failures()
		fmt.Fprintf(w, "  Units:    %d (%s failed)\n", len(run.Report.Units), percentageString(failed, len(run.Report.Units)))
		for _, u := range run.Report.Units {
			fmt.Fprintf(w, "    - %s\n", unitLine(u.Region, u.Stream, string(u.Category), u.Fetched, u.New, u.Error))
		}
	}
}

func unitLine(region, stream, category string, fetched, added int, errMsg string) string {
	name := category
	switch {
	case region != "":
		name = region + "/" + category
	case stream != "":
		name = stream
	}

	line := fmt.Sprintf("%s: fetched %d, new %d", name, fetched, added)
	if errMsg != "" {
		line += " ERROR " + errMsg
	}
	return line
}

func formatStatus(status enums.WorkflowExecutionStatus) string {
	switch status {
	case enums.WORKFLOW_EXECUTION_STATUS_RUNNING:
		return "🟡 RUNNING"
	case enums.WORKFLOW_EXECUTION_STATUS_COMPLETED:
		return "✅ COMPLETED"
	case enums.WORKFLOW_EXECUTION_STATUS_FAILED:
		return "❌ FAILED"
	case enums.WORKFLOW_EXECUTION_STATUS_CANCELED:
		return "🚫 CANCELED"
	case enums.WORKFLOW_EXECUTION_STATUS_TERMINATED:
		return "⛔ TERMINATED"
	case enums.WORKFLOW_EXECUTION_STATUS_TIMED_OUT:
		return "⏱️ TIMED_OUT"
	default:
		return status.String()
	}
}

func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	if d < time.Minute {
		return fmt.Sprintf("%.2fs", d.Seconds())
	}
	if d < time.Hour {
		return fmt.Sprintf("%dm %ds", int(d.Minutes()), int(d.Seconds())%60)
	}
	return fmt.Sprintf("%dh %dm", int(d.Hours()), int(d.Minutes())%60)
}

// percentageString calculates and formats a percentage
func percentageString(part, total int) string {
	if total == 0 {
		return "0.00%"
	}
	return fmt.Sprintf("%.2f%%", float64(part)/float64(total)*100)
}

// writeMarkdownReport writes one table row per run
func writeMarkdownReport(path string, runs []*Run, now time.Time) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		_ = file.Close()
	}()

	return renderMarkdown(file, runs, now)
}

func renderMarkdown(w io.Writer, runs []*Run, now time.Time) error {
	var b strings.Builder
	b.WriteString("# CRM Sync Runs\n\n")
	fmt.Fprintf(&b, "Generated at %s\n\n", now.UTC().Format(time.RFC3339))
	b.WriteString("| Workflow | Status | Started | Duration | Units | Failed |\n")
	b.WriteString("|---|---|---|---|---|---|\n")

	for _, run := range runs {
		units, failed := "-", "-"
		if run.Report != nil {
			units = fmt.Sprintf("%d", len(run.Report.Units))
			failed = fmt.Sprintf("%d", run.Report.Failures())
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s |\n",
			run.WorkflowID,
			formatStatus(run.Status),
			run.StartTime.UTC().Format(time.RFC3339),
			formatDuration(run.Duration(now)),
			units,
			failed,
		)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

package controller

import (
	"bytes"
	"fmt"

	"github.com/olekukonko/tablewriter"

	m "unfold.dev/pkg/unfold/internal/model"
)

// summaryKinds is the display order of the summary table.
var summaryKinds = []m.LogKind{m.LogCopied, m.LogRenamed, m.LogError, m.LogInfo, m.LogSuccess, m.LogFatal}

func modeLabel(mode m.Mode) string {
	switch mode {
	case m.ModeMove:
		return "Moving"
	case m.ModeDryRun:
		return "Planning (dry run)"
	case m.ModeCopy:
	}

	return "Copying"
}

func renderSummaryTable(result m.RunResult) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Entry", "Count"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_RIGHT})

	counts := result.Counts()
	total := 0

	for _, kind := range summaryKinds {
		if counts[kind] == 0 {
			continue
		}

		table.Append([]string{string(kind), fmt.Sprintf("%d", counts[kind])})
		total += counts[kind]
	}

	table.SetFooter([]string{"Total", fmt.Sprintf("%d", total)})
	table.Render()

	return tableBuffer.String()
}

func failedEntries(entries []m.LogEntry) []m.LogEntry {
	var failed []m.LogEntry

	for _, entry := range entries {
		if entry.Kind == m.LogError {
			failed = append(failed, entry)
		}
	}

	return failed
}

func runLevelEntries(entries []m.LogEntry) []m.LogEntry {
	var summary []m.LogEntry

	for _, entry := range entries {
		if entry.Kind.RunLevel() {
			summary = append(summary, entry)
		}
	}

	return summary
}

// entryText is the human readable text of a run-level entry.
func entryText(entry m.LogEntry) string {
	if entry.Message != "" {
		return entry.Message
	}

	return m.MessageText(entry)
}

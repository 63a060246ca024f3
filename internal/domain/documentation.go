package domain

import (
	"fmt"
	"strings"
	"time"

	m "unfold.dev/pkg/unfold/internal/model"
)

// Documentation is the input of the audit document.
type Documentation struct {
	RunID      string
	Source     m.Path
	Dest       m.Path
	Mode       m.Mode
	FinishedAt time.Time
	Duration   time.Duration
	Entries    []m.LogEntry
}

// RenamedGroup lists the renamed variants of one original base name.
type RenamedGroup struct {
	OriginalName string
	Entries      []m.LogEntry
}

// Partition splits entries into run-level summary entries and per-file entries
// grouped by kind, keeping processing order inside each group.
func Partition(entries []m.LogEntry) (summary []m.LogEntry, perFile map[m.LogKind][]m.LogEntry) {
	perFile = map[m.LogKind][]m.LogEntry{}

	for _, entry := range entries {
		if entry.Kind.RunLevel() {
			summary = append(summary, entry)
			continue
		}

		perFile[entry.Kind] = append(perFile[entry.Kind], entry)
	}

	return summary, perFile
}

// GroupRenamed groups RENAMED entries by original name in first-seen order.
func GroupRenamed(entries []m.LogEntry) []RenamedGroup {
	index := map[string]int{}

	var groups []RenamedGroup

	for _, entry := range entries {
		if entry.Kind != m.LogRenamed {
			continue
		}

		i, ok := index[entry.OriginalName]
		if !ok {
			i = len(groups)
			index[entry.OriginalName] = i
			groups = append(groups, RenamedGroup{OriginalName: entry.OriginalName})
		}

		groups[i].Entries = append(groups[i].Entries, entry)
	}

	return groups
}

// RenderDocumentation renders the markdown audit document of a run.
func RenderDocumentation(doc Documentation) string {
	var b strings.Builder

	b.WriteString("# Unfold Log\n\n")
	fmt.Fprintf(&b, "*   **Source:** `%s`\n", doc.Source)
	fmt.Fprintf(&b, "*   **Destination:** `%s`\n", doc.Dest)

	if doc.Mode != "" {
		fmt.Fprintf(&b, "*   **Mode:** %s\n", doc.Mode)
	}

	if doc.RunID != "" {
		fmt.Fprintf(&b, "*   **Run:** `%s`\n", doc.RunID)
	}

	fmt.Fprintf(&b, "*   **Date:** %s\n", doc.FinishedAt.Format("2006-01-02 15:04:05 MST"))
	fmt.Fprintf(&b, "*   **Duration:** %.2f seconds\n\n", doc.Duration.Seconds())

	summary, perFile := Partition(doc.Entries)

	if len(summary) > 0 {
		b.WriteString("## Summary\n\n")

		for _, entry := range summary {
			fmt.Fprintf(&b, "*   **%s:** %s\n", entry.Kind, m.MessageText(entry))
		}

		b.WriteString("\n---\n\n")
	}

	if copied := perFile[m.LogCopied]; len(copied) > 0 {
		fmt.Fprintf(&b, "### ✅ Copied Files (%d)\n\n", len(copied))

		for _, entry := range copied {
			fmt.Fprintf(&b, "- `%s`\n", entry.To)
		}
	}

	if renamed := perFile[m.LogRenamed]; len(renamed) > 0 {
		fmt.Fprintf(&b, "\n### 🔵 Renamed Files (%d)\n", len(renamed))

		for _, group := range GroupRenamed(renamed) {
			fmt.Fprintf(&b, "\n#### `%s` (%d)\n\n", group.OriginalName, len(group.Entries))

			for _, entry := range group.Entries {
				fmt.Fprintf(&b, "- **New:** `%s` (from `%s`)\n", entry.To, entry.From)
			}
		}
	}

	if failed := perFile[m.LogError]; len(failed) > 0 {
		fmt.Fprintf(&b, "\n### ❌ Errors (%d)\n\n", len(failed))

		for _, entry := range failed {
			fmt.Fprintf(&b, "- **File:** `%s`\n  - **Error:** %s\n", entry.From, entry.Message)
		}
	}

	return b.String()
}

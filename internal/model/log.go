package model

import "strings"

// LogKind is the tag of a LogEntry.
type LogKind string

// Per-file kinds.
const (
	LogCopied  LogKind = "COPIED"
	LogRenamed LogKind = "RENAMED"
	LogError   LogKind = "ERROR"
)

// Run-level kinds.
const (
	LogInfo    LogKind = "INFO"
	LogSuccess LogKind = "SUCCESS"
	LogFatal   LogKind = "FATAL"
)

// RunLevel reports whether the kind summarizes the run rather than a single file.
func (k LogKind) RunLevel() bool {
	return k == LogInfo || k == LogSuccess || k == LogFatal
}

// MessageKey identifies a run-level message in the message catalog.
type MessageKey string

// Known run-level messages.
const (
	MsgMoveSuccess       MessageKey = "infoMoveSuccess"
	MsgMoveSuccessDone   MessageKey = "infoMoveSuccessDone"
	MsgMoveFatal         MessageKey = "infoMoveFatal"
	MsgMoveCleanupFailed MessageKey = "infoMoveCleanupFailed"
	MsgDryRun            MessageKey = "infoDryRun"
)

// Variable names substituted into run-level messages.
const (
	VarErrorCount = "errorCount"
	VarError      = "error"
)

// Messages is the English catalog of run-level messages. Placeholders are
// written as {name} and filled from LogEntry.Vars.
var Messages = map[MessageKey]string{
	MsgMoveSuccess:       "All files were copied successfully. Removing the source folder.",
	MsgMoveSuccessDone:   "Source folder removed. The move is complete.",
	MsgMoveFatal:         "{errorCount} file(s) could not be copied. The source folder was NOT deleted to prevent data loss.",
	MsgMoveCleanupFailed: "All files were copied, but the source folder could not be removed: {error}",
	MsgDryRun:            "Dry run: no files were written, moved or deleted.",
}

// MessageText renders a run-level entry using the catalog. Unknown keys render
// as the key itself.
func MessageText(entry LogEntry) string {
	text, ok := Messages[entry.MessageKey]
	if !ok {
		text = string(entry.MessageKey)
	}

	for name, value := range entry.Vars {
		text = strings.ReplaceAll(text, "{"+name+"}", value)
	}

	return text
}

// LogEntry is one audit record of a run. Which fields are set depends on Kind:
// COPIED{From, To}, RENAMED{From, To, OriginalName}, ERROR{From, Message} and
// INFO/SUCCESS/FATAL{MessageKey, Vars}.
type LogEntry struct {
	Kind         LogKind           `json:"type" yaml:"type"`
	From         Path              `json:"from,omitempty" yaml:"from,omitempty"`
	To           string            `json:"to,omitempty" yaml:"to,omitempty"`
	OriginalName string            `json:"originalName,omitempty" yaml:"originalName,omitempty"`
	Message      string            `json:"message,omitempty" yaml:"message,omitempty"`
	MessageKey   MessageKey        `json:"messageKey,omitempty" yaml:"messageKey,omitempty"`
	Vars         map[string]string `json:"vars,omitempty" yaml:"vars,omitempty"`
}

// LogCounts tallies log entries per kind.
type LogCounts map[LogKind]int

// CountEntries tallies entries by kind.
func CountEntries(entries []LogEntry) LogCounts {
	counts := LogCounts{}
	for _, entry := range entries {
		counts[entry.Kind]++
	}

	return counts
}

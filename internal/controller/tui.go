package controller

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	m "unfold.dev/pkg/unfold/internal/model"
)

const (
	defaultBarWidth = 40
	maxBarWidth     = 80
	barMargin       = 4
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	faintStyle   = lipgloss.NewStyle().Faint(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)

type runInfoMsg RunInfo

type progressMsg m.ProgressEvent

type resultMsg m.RunResult

type errorMsg string

// TUI implements UI using Bubble Tea for interactive display.
type TUI struct {
	input  io.Reader
	output io.Writer

	mu      sync.Mutex
	program *tea.Program
	done    chan struct{}
}

// NewTUI creates a new TUI.
func NewTUI(input io.Reader, output io.Writer) *TUI {
	return &TUI{input: input, output: output}
}

// Start launches the Bubble Tea program in the background.
func (t *TUI) Start(ctx context.Context, options ...StartOption) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	config := newStartConfig(options)
	model := newUnfoldModel(config.mode, config.interrupt)

	if f, ok := t.output.(*os.File); ok {
		if width, _, err := term.GetSize(int(f.Fd())); err == nil {
			model = model.withWidth(width)
		}
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	t.program = tea.NewProgram(model, tea.WithInput(t.input), tea.WithOutput(t.output), tea.WithContext(ctx))
	t.done = make(chan struct{})

	go func(program *tea.Program, done chan struct{}) {
		defer close(done)

		if _, err := program.Run(); err != nil && ctx.Err() == nil {
			slog.Error("tui exited", "error", err)
		}
	}(t.program, t.done)

	return nil
}

// Close stops the program and waits for it to restore the terminal.
func (t *TUI) Close(_ context.Context) {
	program, done := t.current()
	if program == nil {
		return
	}

	program.Quit()
	<-done
}

// Wait blocks until the user quits the program.
func (t *TUI) Wait(ctx context.Context) {
	_, done := t.current()
	if done == nil {
		return
	}

	select {
	case <-done:
	case <-ctx.Done():
	}
}

// DisplayRunInfo shows the source and destination.
func (t *TUI) DisplayRunInfo(_ context.Context, info RunInfo) {
	t.send(runInfoMsg(info))
}

// DisplayProgress advances the progress bar.
func (t *TUI) DisplayProgress(_ context.Context, event m.ProgressEvent) {
	t.send(progressMsg(event))
}

// DisplayResult shows the final summary.
func (t *TUI) DisplayResult(_ context.Context, result m.RunResult) {
	t.send(resultMsg(result))
}

// DisplayError shows a run error.
func (t *TUI) DisplayError(_ context.Context, message string) {
	t.send(errorMsg(message))
}

func (t *TUI) current() (*tea.Program, chan struct{}) {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.program, t.done
}

func (t *TUI) send(msg tea.Msg) {
	program, _ := t.current()
	if program == nil {
		return
	}

	program.Send(msg)
}

// unfoldModel is the Bubble Tea model of a running unfold.
type unfoldModel struct {
	mode      m.Mode
	interrupt context.CancelFunc

	info     *RunInfo
	bar      progress.Model
	percent  int
	file     string
	result   *m.RunResult
	errText  string
	quitting bool
}

func newUnfoldModel(mode m.Mode, interrupt context.CancelFunc) unfoldModel {
	return unfoldModel{
		mode:      mode,
		interrupt: interrupt,
		bar:       progress.New(progress.WithDefaultGradient(), progress.WithWidth(defaultBarWidth)),
	}
}

func (um unfoldModel) withWidth(width int) unfoldModel {
	um.bar.Width = min(max(width-barMargin, 10), maxBarWidth)
	return um
}

func (um unfoldModel) Init() tea.Cmd {
	return nil
}

func (um unfoldModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return um.withWidth(msg.Width), nil

	case tea.KeyMsg:
		return um.handleKeyPress(msg)

	case runInfoMsg:
		info := RunInfo(msg)
		um.info = &info

		return um, nil

	case progressMsg:
		um.percent = msg.Progress
		if msg.File != "" {
			um.file = msg.File
		}

		return um, nil

	case resultMsg:
		result := m.RunResult(msg)
		um.result = &result
		um.percent = 100

		return um, nil

	case errorMsg:
		um.errText = string(msg)
		return um, nil
	}

	return um, nil
}

func (um unfoldModel) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		if um.result == nil && um.interrupt != nil {
			um.interrupt()
		}

		um.quitting = true

		return um, tea.Quit

	case "q":
		um.quitting = true
		return um, tea.Quit
	}

	return um, nil
}

func (um unfoldModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Unfold"))
	b.WriteString("\n\n")

	if um.info != nil {
		fmt.Fprintf(&b, "  %s %s\n", labelStyle.Render(modeLabel(um.mode)), um.info.Source)
		fmt.Fprintf(&b, "  %s %s\n\n", labelStyle.Render("Into"), um.info.Output)
	}

	if um.errText != "" {
		fmt.Fprintf(&b, "  %s\n", errorStyle.Render(um.errText))
		return b.String()
	}

	fmt.Fprintf(&b, "  %s\n", um.bar.ViewAs(float64(um.percent)/100))

	if um.result == nil {
		if um.file != "" {
			fmt.Fprintf(&b, "  %s\n", faintStyle.Render(um.file))
		}

		return b.String()
	}

	um.renderResult(&b)

	return b.String()
}

func (um unfoldModel) renderResult(b *strings.Builder) {
	result := um.result

	b.WriteString("\n")

	for _, line := range strings.Split(strings.TrimRight(renderSummaryTable(*result), "\n"), "\n") {
		fmt.Fprintf(b, "  %s\n", line)
	}

	for _, entry := range failedEntries(result.LogEntries) {
		fmt.Fprintf(b, "  %s %s: %s\n", errorStyle.Render(string(m.LogError)), entry.From, entry.Message)
	}

	for _, entry := range runLevelEntries(result.LogEntries) {
		style := labelStyle
		switch entry.Kind {
		case m.LogFatal:
			style = errorStyle
		case m.LogSuccess:
			style = successStyle
		default:
		}

		fmt.Fprintf(b, "  %s %s\n", style.Render(string(entry.Kind)), entryText(entry))
	}

	if result.ArchivePath != "" {
		fmt.Fprintf(b, "  %s %s\n", labelStyle.Render("Archive"), result.ArchivePath)
	}

	fmt.Fprintf(b, "\n  %s\n", faintStyle.Render(fmt.Sprintf("Finished in %.2fs | q: quit", float64(result.DurationMs)/1000)))
}

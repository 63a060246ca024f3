package domain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"unfold.dev/pkg/unfold/internal/controller"
	m "unfold.dev/pkg/unfold/internal/model"
)

// UnfoldArgs contains the arguments of one unfold invocation.
type UnfoldArgs struct {
	Source   m.Path
	Options  m.RunOptions
	Settings Settings
}

// Workflow drives a run through Stream and presents its events on a UI.
type Workflow interface {
	// Unfold runs the flattener and reports to ui. It returns ErrRunHasErrors
	// when the final log contains ERROR or FATAL entries.
	Unfold(ctx context.Context, ui controller.UI, args UnfoldArgs) error
}

type workflow struct {
	unfolder Unfolder
}

// NewWorkflow creates a new Workflow around unfolder.
func NewWorkflow(unfolder Unfolder) Workflow {
	return &workflow{unfolder: unfolder}
}

func (w *workflow) Unfold(ctx context.Context, ui controller.UI, args UnfoldArgs) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if err := ui.Start(ctx, controller.WithMode(args.Options.Mode), controller.WithInterrupt(cancel)); err != nil {
		slog.Error("failed to start UI", "error", err)
		return fmt.Errorf("failed to start UI: %w", err)
	}

	ui.DisplayRunInfo(ctx, controller.RunInfo{
		Source:  args.Source,
		Output:  OutputRootFor(args.Source),
		Options: args.Options,
	})

	req := RunRequest{Source: args.Source, Options: args.Options, Settings: args.Settings}

	progress, outcomes := Stream(ctx, w.unfolder, req)

	for event := range progress {
		ui.DisplayProgress(ctx, event)
	}

	var result *m.RunResult

	for outcome := range outcomes {
		if outcome.Err != nil {
			ui.DisplayError(ctx, runErrorMessage(outcome.Err))
			ui.Close(ctx)

			return outcome.Err
		}

		result = outcome.Result
		ui.DisplayResult(ctx, *result)
	}

	ui.Wait(ctx)
	ui.Close(ctx)

	if result == nil {
		return errors.New("run ended without a result")
	}

	if result.HasErrors() {
		counts := result.Counts()
		return fmt.Errorf("%w: %d error(s), %d fatal", ErrRunHasErrors, counts[m.LogError], counts[m.LogFatal])
	}

	return nil
}

func runErrorMessage(err error) string {
	var runErr *RunError
	if errors.As(err, &runErr) {
		return runErr.Message
	}

	return err.Error()
}

package domain

import (
	"context"

	m "unfold.dev/pkg/unfold/internal/model"
)

// Stream runs req in the background and exposes it as channels: progress events
// first, then one or two outcomes. The last outcome is terminal: either the final
// RunResult or the RunError. Both channels are closed when the run ends.
// Consumers should drain progress before reading outcomes.
func Stream(ctx context.Context, unfolder Unfolder, req RunRequest) (<-chan m.ProgressEvent, <-chan m.Outcome) {
	progressChannel := make(chan m.ProgressEvent, 1)
	outcomeChannel := make(chan m.Outcome, 2)

	go func() {
		defer close(outcomeChannel)

		observer := &channelObserver{ctx: ctx, progress: progressChannel, outcomes: outcomeChannel}

		_, err := unfolder.Run(ctx, req, observer)

		close(progressChannel)

		if err != nil {
			outcomeChannel <- m.Outcome{Err: err}
		}
	}()

	return progressChannel, outcomeChannel
}

type channelObserver struct {
	ctx      context.Context
	progress chan<- m.ProgressEvent
	outcomes chan<- m.Outcome
}

func (o *channelObserver) Progress(event m.ProgressEvent) {
	select {
	case <-o.ctx.Done():
	case o.progress <- event:
	}
}

func (o *channelObserver) Completed(result m.RunResult) {
	o.outcomes <- m.Outcome{Result: &result}
}

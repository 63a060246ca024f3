package adapter

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
	"time"
)

// Opener reveals a path in the platform file manager.
type Opener interface {
	Open(ctx context.Context, path string) error
}

// SystemOpener runs the platform "open" command (open, xdg-open, explorer).
type SystemOpener struct {
	timeout time.Duration
	command func(path string) (string, []string)
}

// NewSystemOpener constructs a SystemOpener for the current GOOS with a 10s timeout.
func NewSystemOpener() *SystemOpener {
	return &SystemOpener{
		timeout: 10 * time.Second,
		command: openCommand(runtime.GOOS),
	}
}

func openCommand(goos string) func(path string) (string, []string) {
	switch goos {
	case "darwin":
		return func(path string) (string, []string) { return "open", []string{path} }
	case "windows":
		return func(path string) (string, []string) { return "explorer", []string{path} }
	default:
		return func(path string) (string, []string) { return "xdg-open", []string{path} }
	}
}

// Open launches the opener for path and waits for it to hand off.
func (o *SystemOpener) Open(ctx context.Context, path string) error {
	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	name, args := o.command(path)

	// #nosec G204 - the command is fixed per platform, path is the output location
	cmd := exec.CommandContext(ctx, name, args...)

	var stderr bytes.Buffer

	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		// explorer exits with status 1 even when the window opened.
		if runtime.GOOS == "windows" && name == "explorer" {
			var exitErr *exec.ExitError
			if errors.As(err, &exitErr) && exitErr.ExitCode() == 1 {
				return nil
			}
		}

		return fmt.Errorf("%s %s: %w: %s", name, path, err, strings.TrimSpace(stderr.String()))
	}

	return nil
}

package controller

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	m "unfold.dev/pkg/unfold/internal/model"
)

func emitSampleRun(t *testing.T, ui UI) {
	t.Helper()

	ctx := context.Background()
	require.NoError(t, ui.Start(ctx, WithMode(m.ModeCopy)))

	ui.DisplayRunInfo(ctx, RunInfo{Source: "/data/photos", Output: "/data/photos_unfolded", Options: m.RunOptions{Mode: m.ModeCopy}})
	ui.DisplayProgress(ctx, m.ProgressEvent{Progress: 100, File: "b.txt"})
	ui.DisplayResult(ctx, sampleResult())
	ui.DisplayError(ctx, "boom")
	ui.Close(ctx)
}

func TestStructuredUI_JSON(t *testing.T) {
	var buf bytes.Buffer

	ui, err := NewStructuredUI(&buf, FormatJSON)
	require.NoError(t, err)

	emitSampleRun(t, ui)

	var events []Event

	scanner := bufio.NewScanner(&buf)
	for scanner.Scan() {
		var event Event
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &event), scanner.Text())
		events = append(events, event)
	}

	require.Len(t, events, 4)
	assert.Equal(t, EventStart, events[0].Type)
	assert.Equal(t, m.Path("/data/photos_unfolded"), events[0].Output)
	assert.Equal(t, m.ModeCopy, events[0].Options.Mode)
	assert.Equal(t, EventProgress, events[1].Type)
	assert.Equal(t, 100, events[1].Progress.Progress)
	assert.Equal(t, EventResult, events[2].Type)
	assert.Len(t, events[2].Result.LogEntries, 4)
	assert.Equal(t, m.LogRenamed, events[2].Result.LogEntries[0].Kind)
	assert.Equal(t, EventError, events[3].Type)
	assert.Equal(t, "boom", events[3].Message)
}

func TestStructuredUI_JSONFieldNames(t *testing.T) {
	var buf bytes.Buffer

	ui, err := NewStructuredUI(&buf, FormatJSON)
	require.NoError(t, err)

	ui.DisplayResult(context.Background(), sampleResult())

	line := buf.String()
	for _, field := range []string{`"event":"result"`, `"outputPath":"/data/photos_unfolded"`, `"type":"RENAMED"`, `"originalName":"a.txt"`} {
		assert.Contains(t, line, field)
	}
}

func TestStructuredUI_YAML(t *testing.T) {
	var buf bytes.Buffer

	ui, err := NewStructuredUI(&buf, FormatYAML)
	require.NoError(t, err)

	emitSampleRun(t, ui)

	decoder := yaml.NewDecoder(strings.NewReader(buf.String()))

	var types []string

	for {
		var event Event

		err := decoder.Decode(&event)
		if err != nil {
			require.True(t, errors.Is(err, io.EOF), err)
			break
		}

		types = append(types, event.Type)
	}

	assert.Equal(t, []string{EventStart, EventProgress, EventResult, EventError}, types)
}

func TestNewStructuredUI_UnsupportedFormat(t *testing.T) {
	_, err := NewStructuredUI(&bytes.Buffer{}, "xml")

	var formatErr *UnsupportedFormatError
	require.ErrorAs(t, err, &formatErr)
	assert.Equal(t, "xml", formatErr.Format)
}

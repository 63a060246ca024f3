package cmd

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	adaptermocks "unfold.dev/pkg/unfold/internal/adapter/mocks"
	m "unfold.dev/pkg/unfold/internal/model"
)

func TestViewCmd_RendersDocumentation(t *testing.T) {
	mockStore := adaptermocks.NewMockReportStore(t)

	originalStore := reportStore
	reportStore = mockStore
	defer func() { reportStore = originalStore }()

	mockStore.On("LoadDocumentation", mock.Anything, m.Path("./photos_unfolded")).
		Return("# Unfold Log\n\n### ✅ Copied Files (1)\n\n- `a.txt`\n", nil)

	out := &bytes.Buffer{}
	cmd := newRootCmd()
	cmd.AddCommand(newViewCmd())
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"view", "./photos_unfolded"})

	err := cmd.Execute()
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Unfold Log")
	assert.Contains(t, out.String(), "a.txt")
}

func TestViewCmd_MissingDocumentation(t *testing.T) {
	mockStore := adaptermocks.NewMockReportStore(t)

	originalStore := reportStore
	reportStore = mockStore
	defer func() { reportStore = originalStore }()

	mockStore.On("LoadDocumentation", mock.Anything, m.Path("nowhere")).Return("", errors.New("no such file"))

	cmd := newRootCmd()
	cmd.AddCommand(newViewCmd())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"view", "nowhere"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load documentation")
}

func TestViewCmd_RequiresPath(t *testing.T) {
	cmd := newRootCmd()
	cmd.AddCommand(newViewCmd())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"view"})

	require.Error(t, cmd.Execute())
}

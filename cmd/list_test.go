package cmd

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "github.com/mouse-blink/linkfmt/internal/model"
)

func executeList(t *testing.T, args ...string) error {
	t.Helper()

	cmd := newListCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)

	return cmd.Execute()
}

func TestListCmd_StatsReachUI(t *testing.T) {
	stats := []m.DocumentStats{
		{Path: "guide.md", Title: "Guide", Shortcodes: 2, Links: 3, Definitions: 1},
	}
	stub := &stubWorkflow{stats: stats}
	displayed := &stubUI{}
	swapGlobals(t, stub, displayed)

	err := executeList(t, "docs/...")

	require.NoError(t, err)
	assert.Equal(t, []m.Path{"docs/..."}, stub.statsPaths)
	assert.Equal(t, stats, displayed.stats)
}

func TestListCmd_RequiresPath(t *testing.T) {
	swapGlobals(t, &stubWorkflow{}, &stubUI{})

	assert.Error(t, executeList(t))
}

func TestListCmd_ErrorPropagates(t *testing.T) {
	stub := &stubWorkflow{statsErr: errors.New("root path error")}
	swapGlobals(t, stub, &stubUI{})

	assert.ErrorContains(t, executeList(t, "missing/"), "root path error")
}

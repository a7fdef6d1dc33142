package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckDeps(t *testing.T) {
	require.NoError(t, CheckDeps("sh"))

	err := CheckDeps("sh", "no-such-tool-on-any-path")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no-such-tool-on-any-path")
}

func TestRunBashCmdVerbose(t *testing.T) {
	require.NoError(t, RunBashCmdVerbose("true"))
	require.Error(t, RunBashCmdVerbose("false"))
}

package speech

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandPlayerInvokesCommand(t *testing.T) {
	dir := t.TempDir()
	marker := filepath.Join(dir, "invoked")
	script := filepath.Join(dir, "speak.sh")
	require.NoError(t, os.WriteFile(script, []byte("#!/bin/sh\necho \"$1 $2\" > "+marker+"\n"), 0755))

	NewCommandPlayer(script).Play("hello", 0.8)

	require.Eventually(t, func() bool {
		_, err := os.Stat(marker)
		return err == nil
	}, 2*time.Second, 10*time.Millisecond)

	contents, err := os.ReadFile(marker)
	require.NoError(t, err)
	assert.Equal(t, "0.8 hello\n", string(contents))
}

func TestCommandPlayerNoops(t *testing.T) {
	assert.NotPanics(t, func() {
		NewCommandPlayer("").Play("hello", 1)
		NewCommandPlayer("/bin/echo").Play("", 1)
	})
}

func TestCommandPlayerMissingCommandIsLoggedNotFatal(t *testing.T) {
	assert.NotPanics(t, func() {
		NewCommandPlayer("/nonexistent/tts").Play("hello", 1)
	})
}

package commands

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pipeStdin replaces os.Stdin with a pipe carrying the given input for the
// duration of the test.
func pipeStdin(t *testing.T, input string) {
	t.Helper()

	r, w, err := os.Pipe()
	require.NoError(t, err)

	_, err = w.WriteString(input)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	orig := os.Stdin
	os.Stdin = r
	t.Cleanup(func() {
		os.Stdin = orig
		r.Close()
	})
}

func TestPrompt(t *testing.T) {
	pipeStdin(t, "  code-123  \n")

	got, err := prompt("Code: ")
	require.NoError(t, err)
	assert.Equal(t, "code-123", got)
}

func TestPromptSecret(t *testing.T) {
	t.Run("piped input falls back to a plain read", func(t *testing.T) {
		pipeStdin(t, "s3cret\n")

		got, err := promptSecret("Password: ")
		require.NoError(t, err)
		assert.Equal(t, "s3cret", got)
	})

	t.Run("empty input reads as empty", func(t *testing.T) {
		pipeStdin(t, "\n")

		got, err := promptSecret("Password: ")
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

//go:build unix

package exec_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fwojciec/writeup"
	"github.com/fwojciec/writeup/exec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpener_Open_PassesURIAsLastArgument(t *testing.T) {
	t.Parallel()

	out := filepath.Join(t.TempDir(), "uri")
	opener := exec.NewOpener("sh", "-c", `printf '%s' "$1" > "$0"`, out)

	err := opener.Open(context.Background(), "obsidian://new?vault=v&file=a%20b.md")

	require.NoError(t, err)
	got, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "obsidian://new?vault=v&file=a%20b.md", string(got))
}

func TestOpener_Open_NonZeroExit(t *testing.T) {
	t.Parallel()

	opener := exec.NewOpener("sh", "-c", `echo "no handler for $0" >&2; exit 3`)

	err := opener.Open(context.Background(), "obsidian://new")

	assert.Equal(t, writeup.EUNAVAILABLE, writeup.ErrorCode(err))
	assert.Contains(t, writeup.ErrorMessage(err), "no handler for obsidian://new")
}

func TestOpener_Open_ContextCanceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := exec.NewOpener("sleep").Open(ctx, "5")

	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

package main_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alecthomas/kong"
	main "github.com/fwojciec/writeup/cmd/writeup"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var expectedCommands = []string{"generate", "platforms", "templates", "config", "storage"}

func TestCLI_HelpShowsAllCommands(t *testing.T) {
	t.Parallel()

	cli := &main.CLI{}
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	parser, err := kong.New(cli,
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
		kong.Vars{"db_path": "writeup.db", "out_dir": t.TempDir()},
	)
	require.NoError(t, err)

	_, _ = parser.Parse([]string{"--help"})

	helpOutput := stdout.String()
	for _, cmd := range expectedCommands {
		assert.Contains(t, helpOutput, cmd, "Help should mention %s command", cmd)
	}
}

func TestCLI_GenerateRenderFlags(t *testing.T) {
	t.Parallel()

	cli := &main.CLI{}
	parser, err := kong.New(cli, kong.Vars{"db_path": "writeup.db", "out_dir": t.TempDir()})
	require.NoError(t, err)

	_, err = parser.Parse([]string{"generate", "--url", "https://xj.edisec.net/challenges/1", "--render", "--show", "--settle", "1s"})

	require.NoError(t, err)
	assert.True(t, cli.Generate.Render)
	assert.True(t, cli.Generate.Show)
	assert.Equal(t, time.Second, cli.Generate.Settle)
}

// newTestMain returns a Main using a database and output directory inside
// the test's temporary directory.
func newTestMain(t *testing.T) *main.Main {
	t.Helper()

	m := main.NewMain()
	dir := t.TempDir()
	m.DBPath = filepath.Join(dir, "test.db")
	m.OutDir = filepath.Join(dir, "out")
	return m
}

func TestMain_Run_HelpShowsKongOutput(t *testing.T) {
	t.Parallel()

	m := newTestMain(t)
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	err := m.Run(context.Background(), []string{"--help"}, stdout, stderr)
	require.NoError(t, err)

	helpOutput := stdout.String()
	for _, cmd := range expectedCommands {
		assert.Contains(t, helpOutput, cmd, "Help should mention %s command", cmd)
	}
	assert.Contains(t, helpOutput, "Usage:")
	assert.Contains(t, helpOutput, "Flags:")
}

func TestMain_Run_NoArgs(t *testing.T) {
	t.Parallel()

	m := newTestMain(t)

	err := m.Run(context.Background(), nil, &bytes.Buffer{}, &bytes.Buffer{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no command specified")
}

func TestMain_Run_UnknownCommand(t *testing.T) {
	t.Parallel()

	m := newTestMain(t)

	err := m.Run(context.Background(), []string{"frobnicate"}, &bytes.Buffer{}, &bytes.Buffer{})

	require.Error(t, err)
}

func TestMain_Run_StoragePersists(t *testing.T) {
	t.Parallel()

	dbPath := filepath.Join(t.TempDir(), "writeup.db")
	ctx := context.Background()

	err := newTestMain(t).Run(ctx, []string{"--db", dbPath, "storage", "set", "__TOKEN__", "abc"}, &bytes.Buffer{}, &bytes.Buffer{})
	require.NoError(t, err)

	stdout := &bytes.Buffer{}
	err = newTestMain(t).Run(ctx, []string{"--db", dbPath, "storage", "get", "__TOKEN__"}, stdout, &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, "abc\n", stdout.String())

	stdout.Reset()
	err = newTestMain(t).Run(ctx, []string{"--db", dbPath, "storage", "ls", "--session"}, stdout, &bytes.Buffer{})
	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "No keys in session storage.")
}

func TestMain_Run_ConfigRoundTrip(t *testing.T) {
	t.Parallel()

	m := newTestMain(t)
	ctx := context.Background()

	require.NoError(t, m.Run(ctx, []string{"config", "set", "vault", "ctf"}, &bytes.Buffer{}, &bytes.Buffer{}))

	stdout := &bytes.Buffer{}
	require.NoError(t, m.Run(ctx, []string{"config", "show"}, stdout, &bytes.Buffer{}))
	assert.Contains(t, stdout.String(), `"vault": "ctf"`)

	stdout.Reset()
	require.NoError(t, m.Run(ctx, []string{"config"}, stdout, &bytes.Buffer{}))
	assert.Contains(t, stdout.String(), `"vault": "ctf"`)

	require.NoError(t, m.Run(ctx, []string{"config", "reset"}, &bytes.Buffer{}, &bytes.Buffer{}))

	stdout.Reset()
	require.NoError(t, m.Run(ctx, []string{"config", "show"}, stdout, &bytes.Buffer{}))
	assert.Contains(t, stdout.String(), `"vault": "note"`)
}

func TestMain_Run_GeneratePrint(t *testing.T) {
	t.Parallel()

	m := newTestMain(t)
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	err := m.Run(context.Background(), []string{
		"--vault", "ctf",
		"generate",
		"--url", "https://www.nssctf.cn/problem/1",
		"--title", "[Web][Easy] SQL Injection | NSSCTF",
		"--print",
	}, stdout, stderr)

	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "- **题目名称**：Web-Easy-SQL-Injection\n")
	assert.Contains(t, stdout.String(), "- **题目链接**：https://www.nssctf.cn/problem/1\n")
	assert.Contains(t, stderr.String(), `Generated 网安/练习WP/NSSCTF/Web-Easy-SQL-Injection.md (vault "ctf")`)
}

func TestMain_Run_GenerateRequiresURL(t *testing.T) {
	t.Parallel()

	m := newTestMain(t)

	err := m.Run(context.Background(), []string{"generate", "--print"}, &bytes.Buffer{}, &bytes.Buffer{})

	require.Error(t, err)
}

func TestMain_Run_GenerateSourcesAreExclusive(t *testing.T) {
	t.Parallel()

	m := newTestMain(t)

	err := m.Run(context.Background(), []string{"generate", "--url", "https://www.nssctf.cn/problem/1", "--fetch", "--render"}, &bytes.Buffer{}, &bytes.Buffer{})

	require.Error(t, err)
}

func TestMain_Run_GenerateHTMLExcludesOtherSources(t *testing.T) {
	t.Parallel()

	saved := filepath.Join(t.TempDir(), "page.html")
	require.NoError(t, os.WriteFile(saved, []byte("<title>t</title>"), 0o600))

	for _, flag := range []string{"--render", "--fetch"} {
		t.Run(flag, func(t *testing.T) {
			t.Parallel()

			m := newTestMain(t)

			err := m.Run(context.Background(), []string{"generate", "--url", "https://www.nssctf.cn/problem/1", "--html", saved, flag}, &bytes.Buffer{}, &bytes.Buffer{})

			require.Error(t, err)
			assert.Contains(t, err.Error(), "--html")
		})
	}
}

package main_test

import (
	"strings"
	"testing"

	"github.com/fwojciec/writeup"
	main "github.com/fwojciec/writeup/cmd/writeup"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlatformsCmd_Run(t *testing.T) {
	t.Parallel()

	deps, stdout, _ := newTestDeps(nil)
	cfg := writeup.DefaultConfig()
	cfg.PlatformPaths = map[string]string{"buuoj": "CTF/BUU"}
	require.NoError(t, deps.Config.Save(deps.Ctx, cfg))

	require.NoError(t, (&main.PlatformsCmd{}).Run(deps))

	lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
	require.Len(t, lines, 6)
	assert.Equal(t, []string{"KEY", "NAME", "TEMPLATE", "PATH"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"nssctf.cn", "NSSCTF", "standard", "网安/练习WP/NSSCTF"}, strings.Fields(lines[1]))
	assert.Equal(t, []string{"buuoj.cn", "BUUOJ", "standard", "CTF/BUU"}, strings.Fields(lines[3]))
	assert.Equal(t, []string{"xj.edisec.net", "玄机", "xuanji", "网安/练习WP/玄机"}, strings.Fields(lines[4]))
	assert.Equal(t, []string{"codewars.com", "Codewars", "codewars", "编程/Codewars"}, strings.Fields(lines[5]))
}

func TestTemplatesCmd_Run(t *testing.T) {
	t.Parallel()

	deps, stdout, _ := newTestDeps(nil)
	cfg := writeup.DefaultConfig()
	cfg.Template = writeup.TemplateSimple
	require.NoError(t, deps.Config.Save(deps.Ctx, cfg))

	require.NoError(t, (&main.TemplatesCmd{}).Run(deps))

	lines := strings.Split(strings.TrimRight(stdout.String(), "\n"), "\n")
	require.Len(t, lines, len(writeup.TemplateIDs))
	assert.True(t, strings.HasPrefix(lines[0], "  standard"), lines[0])
	assert.True(t, strings.HasPrefix(lines[2], "* simple"), lines[2])
	assert.Contains(t, lines[3], "自定义模板")
}

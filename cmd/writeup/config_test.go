package main_test

import (
	"encoding/json"
	"testing"

	"github.com/fwojciec/writeup"
	main "github.com/fwojciec/writeup/cmd/writeup"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigShowCmd_Run(t *testing.T) {
	t.Parallel()

	deps, stdout, _ := newTestDeps(nil)

	require.NoError(t, (&main.ConfigShowCmd{}).Run(deps))

	var got writeup.Config
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &got))
	assert.Equal(t, writeup.DefaultConfig(), got)
}

func TestConfigSetCmd_Run(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		key   string
		value string
		check func(t *testing.T, cfg writeup.Config)
	}{
		{
			name: "vault", key: "vault", value: "ctf",
			check: func(t *testing.T, cfg writeup.Config) { assert.Equal(t, "ctf", cfg.Vault) },
		},
		{
			name: "base path", key: "basePath", value: "wp",
			check: func(t *testing.T, cfg writeup.Config) { assert.Equal(t, "wp", cfg.BasePath) },
		},
		{
			name: "check interval", key: "checkInterval", value: "250",
			check: func(t *testing.T, cfg writeup.Config) { assert.Equal(t, 250, cfg.CheckInterval) },
		},
		{
			name: "template", key: "template", value: "detailed",
			check: func(t *testing.T, cfg writeup.Config) { assert.Equal(t, writeup.TemplateDetailed, cfg.Template) },
		},
		{
			name: "platform path", key: "platformPaths.nssctf", value: "CTF/NSS",
			check: func(t *testing.T, cfg writeup.Config) {
				assert.Equal(t, map[string]string{"nssctf": "CTF/NSS"}, cfg.PlatformPaths)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			deps, stdout, _ := newTestDeps(nil)

			err := (&main.ConfigSetCmd{Key: tt.key, Value: tt.value}).Run(deps)

			require.NoError(t, err)
			assert.Equal(t, "Set "+tt.key+"\n", stdout.String())
			cfg, err := deps.Config.Load(deps.Ctx)
			require.NoError(t, err)
			tt.check(t, cfg)
		})
	}
}

func TestConfigSetCmd_Run_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "unknown key", key: "color", value: "red"},
		{name: "unknown template", key: "template", value: "fancy"},
		{name: "negative interval", key: "checkInterval", value: "-1"},
		{name: "non-numeric interval", key: "checkInterval", value: "soon"},
		{name: "custom without content", key: "template", value: "custom"},
		{name: "empty platform key", key: "platformPaths.", value: "x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			deps, _, stderr := newTestDeps(nil)

			err := (&main.ConfigSetCmd{Key: tt.key, Value: tt.value}).Run(deps)

			assert.Equal(t, writeup.EINVALID, writeup.ErrorCode(err))
			assert.Contains(t, stderr.String(), "error:")
			_, getErr := deps.Storage.GetItem(deps.Ctx, writeup.ScopeLocal, writeup.ConfigKey)
			assert.Equal(t, writeup.ENOTFOUND, writeup.ErrorCode(getErr), "nothing should be saved")
		})
	}
}

func TestConfigSetCmd_Run_CustomTemplate(t *testing.T) {
	t.Parallel()

	deps, _, _ := newTestDeps(nil)

	require.NoError(t, (&main.ConfigSetCmd{Key: "customTemplate", Value: "# {{title}}"}).Run(deps))
	require.NoError(t, (&main.ConfigSetCmd{Key: "template", Value: "custom"}).Run(deps))

	err := (&main.ConfigSetCmd{Key: "customTemplate", Value: "  "}).Run(deps)
	assert.Equal(t, writeup.EINVALID, writeup.ErrorCode(err))

	cfg, err := deps.Config.Load(deps.Ctx)
	require.NoError(t, err)
	assert.Equal(t, writeup.TemplateCustom, cfg.Template)
	assert.Equal(t, "# {{title}}", cfg.CustomTemplate)
}

func TestConfigSetCmd_Run_RemovesPlatformPath(t *testing.T) {
	t.Parallel()

	deps, _, _ := newTestDeps(nil)

	require.NoError(t, (&main.ConfigSetCmd{Key: "platformPaths.ctf.show", Value: "CTF/Show"}).Run(deps))
	require.NoError(t, (&main.ConfigSetCmd{Key: "platformPaths.buuoj", Value: "CTF/BUU"}).Run(deps))
	require.NoError(t, (&main.ConfigSetCmd{Key: "platformPaths.ctf.show", Value: ""}).Run(deps))

	cfg, err := deps.Config.Load(deps.Ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"buuoj": "CTF/BUU"}, cfg.PlatformPaths)
}

func TestConfigResetCmd_Run(t *testing.T) {
	t.Parallel()

	deps, stdout, _ := newTestDeps(nil)
	require.NoError(t, (&main.ConfigSetCmd{Key: "vault", Value: "ctf"}).Run(deps))

	require.NoError(t, (&main.ConfigResetCmd{}).Run(deps))

	assert.Contains(t, stdout.String(), "Settings reset to defaults")
	cfg, err := deps.Config.Load(deps.Ctx)
	require.NoError(t, err)
	assert.Equal(t, writeup.DefaultConfig(), cfg)
}

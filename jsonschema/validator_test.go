package jsonschema_test

import (
	"encoding/json"
	"testing"

	"github.com/fwojciec/writeup"
	"github.com/fwojciec/writeup/jsonschema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newValidator(t *testing.T) *jsonschema.ConfigValidator {
	t.Helper()

	v, err := jsonschema.NewConfigValidator()
	require.NoError(t, err)
	return v
}

func TestConfigValidator_ValidateConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		doc     string
		wantErr string
	}{
		{name: "empty object", doc: `{}`},
		{name: "partial config", doc: `{"vault":"ctf","platformPaths":{"ctf.show":"wp/show"}}`},
		{name: "null platform paths", doc: `{"platformPaths":null}`},
		{name: "unknown fields are allowed", doc: `{"vault":"v","theme":"dark"}`},
		{name: "vault must be a string", doc: `{"vault":1}`, wantErr: "/vault"},
		{name: "platform path values must be strings", doc: `{"platformPaths":{"ctf.show":1}}`, wantErr: "/platformPaths/ctf.show"},
		{name: "unknown template", doc: `{"template":"fancy"}`, wantErr: "/template"},
		{name: "check interval must be an integer", doc: `{"checkInterval":1.5}`, wantErr: "/checkInterval"},
		{name: "check interval must not be negative", doc: `{"checkInterval":-1}`, wantErr: "/checkInterval"},
		{name: "document must be an object", doc: `[]`, wantErr: "#"},
		{name: "malformed json", doc: `{`, wantErr: "malformed"},
	}

	v := newValidator(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := v.ValidateConfig([]byte(tt.doc))

			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.Equal(t, writeup.EINVALID, writeup.ErrorCode(err))
			assert.Contains(t, writeup.ErrorMessage(err), tt.wantErr)
		})
	}
}

func TestConfigValidator_AcceptsEveryTemplateID(t *testing.T) {
	t.Parallel()

	v := newValidator(t)
	for _, id := range writeup.TemplateIDs {
		cfg := writeup.DefaultConfig()
		cfg.Template = id
		data, err := json.Marshal(cfg)
		require.NoError(t, err)

		assert.NoError(t, v.ValidateConfig(data), "template %s", id)
	}
}

func TestConfigValidator_WithConfigStore(t *testing.T) {
	t.Parallel()

	storage := writeup.NewStorageSnapshot()
	store := writeup.NewConfigStore(storage, newValidator(t))
	ctx := t.Context()
	require.NoError(t, storage.SetItem(ctx, writeup.ScopeLocal, writeup.ConfigKey, `{"vault":"ctf","checkInterval":"soon"}`))

	cfg, err := store.Load(ctx)

	assert.Equal(t, writeup.EINVALID, writeup.ErrorCode(err))
	assert.Equal(t, writeup.DefaultConfig(), cfg)
}

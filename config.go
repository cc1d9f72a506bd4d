package writeup

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
)

// ConfigKey is the storage key holding the persisted configuration.
const ConfigKey = "writeup-helper-config"

// Config holds user settings. The JSON form is the persisted form.
type Config struct {
	Vault         string            `json:"vault"`
	BasePath      string            `json:"basePath"`
	PlatformPaths map[string]string `json:"platformPaths"`
	ButtonText    string            `json:"buttonText"`
	CheckInterval int               `json:"checkInterval"`

	Template       TemplateID `json:"template"`
	CustomTemplate string     `json:"customTemplate,omitempty"`
}

// DefaultConfig returns the settings used when nothing is persisted.
func DefaultConfig() Config {
	return Config{
		Vault:         "note",
		BasePath:      "网安/练习WP",
		PlatformPaths: map[string]string{},
		ButtonText:    "生成WriteUp",
		CheckInterval: 1000,
		Template:      TemplateStandard,
	}
}

// Validate returns EINVALID if the config cannot be used.
func (c *Config) Validate() error {
	if c.Template != "" && !c.Template.Valid() {
		return Errorf(EINVALID, "unknown template %q", c.Template)
	}
	return nil
}

// BasePathFor returns the vault directory for notes from hostname: the first
// user-configured platform path whose key occurs in hostname (longer keys
// checked first, ties in lexical order), then the default path of the matched platform, then
// the global base path. The fallback platform's default path is not used.
func (c *Config) BasePathFor(hostname string, registry PlatformRegistry) string {
	keys := make([]string, 0, len(c.PlatformPaths))
	for k := range c.PlatformPaths {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})
	for _, k := range keys {
		if k != "" && strings.Contains(hostname, k) {
			return c.PlatformPaths[k]
		}
	}

	if registry != nil {
		if p, ok := registry.Lookup(hostname); ok && p.DefaultPath != "" {
			return p.DefaultPath
		}
	}

	return c.BasePath
}

// TemplateFor returns the template content used for notes on platform.
// A platform template overrides the configured one. The custom template
// is used only when its content is non-empty; anything unresolvable falls
// back to the standard template.
func (c *Config) TemplateFor(platform *Platform) string {
	id := c.Template
	if id == "" {
		id = TemplateStandard
	}
	if platform != nil && platform.Template != "" {
		id = platform.Template
	}

	if id == TemplateCustom && c.CustomTemplate != "" {
		return c.CustomTemplate
	}
	if t, ok := BuiltinTemplate(id); ok {
		return t.Content
	}
	t, _ := BuiltinTemplate(TemplateStandard)
	return t.Content
}

// ConfigValidator checks a persisted configuration document against its
// schema before it is decoded.
type ConfigValidator interface {
	// ValidateConfig returns EINVALID if data is not an acceptable
	// configuration document.
	ValidateConfig(data []byte) error
}

// DecodeConfig validates data and merges it over DefaultConfig. Fields
// absent from data keep their defaults. A nil validator skips schema
// validation.
func DecodeConfig(data []byte, validator ConfigValidator) (Config, error) {
	cfg := DefaultConfig()
	if validator != nil {
		if err := validator.ValidateConfig(data); err != nil {
			return DefaultConfig(), err
		}
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), Errorf(EINVALID, "malformed config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		return DefaultConfig(), err
	}
	if cfg.PlatformPaths == nil {
		cfg.PlatformPaths = map[string]string{}
	}
	return cfg, nil
}

// ConfigStore persists Config as JSON in Storage under ConfigKey in the
// local scope.
type ConfigStore struct {
	Storage   Storage
	Validator ConfigValidator
}

// NewConfigStore returns a ConfigStore backed by storage.
func NewConfigStore(storage Storage, validator ConfigValidator) *ConfigStore {
	return &ConfigStore{Storage: storage, Validator: validator}
}

// Load returns the persisted configuration. It always returns a usable
// Config: when nothing is stored the defaults are returned with a nil
// error; when the stored document is invalid the defaults are returned
// together with the error describing why it was discarded.
func (s *ConfigStore) Load(ctx context.Context) (Config, error) {
	raw, err := s.Storage.GetItem(ctx, ScopeLocal, ConfigKey)
	if ErrorCode(err) == ENOTFOUND {
		return DefaultConfig(), nil
	} else if err != nil {
		return DefaultConfig(), err
	}
	return DecodeConfig([]byte(raw), s.Validator)
}

// Save validates cfg and persists it. Returns EINVALID without writing
// anything if cfg does not pass validation.
func (s *ConfigStore) Save(ctx context.Context, cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	data, err := json.Marshal(cfg)
	if err != nil {
		return err
	}
	if s.Validator != nil {
		if err := s.Validator.ValidateConfig(data); err != nil {
			return err
		}
	}
	return s.Storage.SetItem(ctx, ScopeLocal, ConfigKey, string(data))
}

// Reset removes the persisted configuration.
func (s *ConfigStore) Reset(ctx context.Context) error {
	return s.Storage.RemoveItem(ctx, ScopeLocal, ConfigKey)
}

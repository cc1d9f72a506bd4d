package main

import (
	"encoding/json"
	"fmt"
	"maps"
	"strconv"
	"strings"

	"github.com/fwojciec/writeup"
)

// platformPathsPrefix addresses one entry of Config.PlatformPaths.
const platformPathsPrefix = "platformPaths."

// Run executes the config show command.
func (c *ConfigShowCmd) Run(deps *Dependencies) error {
	cfg := loadConfig(deps)

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(deps.Stdout, string(data))
	return nil
}

// Run executes the config set command.
func (c *ConfigSetCmd) Run(deps *Dependencies) error {
	cfg, err := deps.Config.Load(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "warning: stored config discarded: %s\n", writeup.ErrorMessage(err))
	}

	if err := applySetting(&cfg, c.Key, c.Value); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", writeup.ErrorMessage(err))
		return err
	}

	if err := deps.Config.Save(deps.Ctx, cfg); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", writeup.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Set %s\n", c.Key)
	return nil
}

// applySetting updates the field of cfg named key. An empty value removes
// a platform path.
func applySetting(cfg *writeup.Config, key, value string) error {
	if host, ok := strings.CutPrefix(key, platformPathsPrefix); ok {
		if host == "" {
			return writeup.Errorf(writeup.EINVALID, "platform path key required")
		}
		paths := maps.Clone(cfg.PlatformPaths)
		if paths == nil {
			paths = map[string]string{}
		}
		if value == "" {
			delete(paths, host)
		} else {
			paths[host] = value
		}
		cfg.PlatformPaths = paths
		return nil
	}

	switch key {
	case "vault":
		cfg.Vault = value
	case "basePath":
		cfg.BasePath = value
	case "buttonText":
		cfg.ButtonText = value
	case "checkInterval":
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return writeup.Errorf(writeup.EINVALID, "checkInterval must be a non-negative integer")
		}
		cfg.CheckInterval = n
	case "template":
		id, err := writeup.ParseTemplateID(value)
		if err != nil {
			return err
		}
		if id == writeup.TemplateCustom && strings.TrimSpace(cfg.CustomTemplate) == "" {
			return writeup.Errorf(writeup.EINVALID, "set customTemplate before selecting the custom template")
		}
		cfg.Template = id
	case "customTemplate":
		if strings.TrimSpace(value) == "" && cfg.Template == writeup.TemplateCustom {
			return writeup.Errorf(writeup.EINVALID, "custom template content must not be empty")
		}
		cfg.CustomTemplate = value
	default:
		return writeup.Errorf(writeup.EINVALID, "unknown setting %q", key)
	}
	return nil
}

// Run executes the config reset command.
func (c *ConfigResetCmd) Run(deps *Dependencies) error {
	if err := deps.Config.Reset(deps.Ctx); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", writeup.ErrorMessage(err))
		return err
	}
	fmt.Fprintln(deps.Stdout, "Settings reset to defaults")
	return nil
}

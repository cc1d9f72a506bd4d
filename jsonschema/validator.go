// Package jsonschema validates persisted configuration documents against
// an embedded JSON Schema.
package jsonschema

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"strings"

	"github.com/fwojciec/writeup"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed config.schema.json
var configSchema []byte

// Ensure ConfigValidator implements writeup.ConfigValidator at compile time.
var _ writeup.ConfigValidator = (*ConfigValidator)(nil)

// ConfigValidator checks configuration documents against the config
// schema. It is safe for concurrent use.
type ConfigValidator struct {
	schema *jsonschema.Schema
}

// NewConfigValidator compiles the embedded schema.
func NewConfigValidator() (*ConfigValidator, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource("config.schema.json", bytes.NewReader(configSchema)); err != nil {
		return nil, err
	}
	schema, err := compiler.Compile("config.schema.json")
	if err != nil {
		return nil, err
	}
	return &ConfigValidator{schema: schema}, nil
}

// ValidateConfig implements writeup.ConfigValidator.
// Returns EINVALID listing every violation.
func (v *ConfigValidator) ValidateConfig(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return writeup.Errorf(writeup.EINVALID, "malformed config: %v", err)
	}

	err := v.schema.Validate(doc)
	if err == nil {
		return nil
	}
	var verr *jsonschema.ValidationError
	if !errors.As(err, &verr) {
		return err
	}
	return writeup.Errorf(writeup.EINVALID, "invalid config: %s", strings.Join(issues(verr), "; "))
}

// issues flattens a validation error tree into "location: message" leaves.
func issues(err *jsonschema.ValidationError) []string {
	if len(err.Causes) == 0 {
		loc := err.InstanceLocation
		if loc == "" {
			loc = "#"
		} else if !strings.HasPrefix(loc, "#") {
			loc = "#" + loc
		}
		return []string{loc + ": " + strings.TrimSpace(err.Message)}
	}
	var out []string
	for _, cause := range err.Causes {
		out = append(out, issues(cause)...)
	}
	return out
}

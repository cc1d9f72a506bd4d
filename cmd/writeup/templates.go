package main

import (
	"fmt"

	"github.com/fwojciec/writeup"
)

// Run executes the templates command. The configured template is marked
// with an asterisk.
func (c *TemplatesCmd) Run(deps *Dependencies) error {
	current := templateOrDefault(loadConfig(deps).Template)

	for _, id := range writeup.TemplateIDs {
		name := "自定义模板"
		if t, ok := writeup.BuiltinTemplate(id); ok {
			name = t.Name
		}
		marker := " "
		if id == current {
			marker = "*"
		}
		fmt.Fprintf(deps.Stdout, "%s %-10s %s\n", marker, id, name)
	}
	return nil
}

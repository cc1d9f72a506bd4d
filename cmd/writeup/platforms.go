package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/fwojciec/writeup"
)

// Run executes the platforms command.
func (c *PlatformsCmd) Run(deps *Dependencies) error {
	cfg := loadConfig(deps)

	w := tabwriter.NewWriter(deps.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "KEY\tNAME\tTEMPLATE\tPATH")
	for _, p := range deps.Registry.List() {
		tmpl := string(p.Template)
		if tmpl == "" {
			tmpl = string(templateOrDefault(cfg.Template))
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", p.Key, p.Name, tmpl, cfg.BasePathFor(p.Key, deps.Registry))
	}
	return w.Flush()
}

func templateOrDefault(id writeup.TemplateID) writeup.TemplateID {
	if id == "" {
		return writeup.TemplateStandard
	}
	return id
}

package main

import "fmt"

// Run executes the sources command.
func (c *SourcesCmd) Run(deps *Dependencies) error {
	for _, s := range deps.Registry.Sources() {
		fmt.Fprintln(deps.Stdout, s)
	}
	return nil
}

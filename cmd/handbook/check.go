package main

import (
	"fmt"

	"github.com/fwojciec/handbook"
	"github.com/fwojciec/handbook/csv"
)

// Run executes the check command.
func (c *CheckCmd) Run(deps *Dependencies) error {
	entries, err := csv.NewCatalog(c.Catalog).Entries(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", handbook.ErrorMessage(err))
		return err
	}

	sections := handbook.GroupBySection(entries)
	fmt.Fprintf(deps.Stdout, "%d entries in %d sections\n", len(entries), len(sections))

	issues := csv.Issues(entries)
	if len(issues) == 0 {
		fmt.Fprintln(deps.Stdout, "No problems found.")
		return nil
	}

	fmt.Fprintf(deps.Stdout, "%d problems:\n", len(issues))
	for _, is := range issues {
		fmt.Fprintf(deps.Stdout, "  row %d  %q  %s\n", is.Position, is.Title, is.Problem)
	}
	return nil
}

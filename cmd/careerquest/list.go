package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"digital.vasic.careerquest/pkg/advisor"
	"digital.vasic.careerquest/pkg/conformance"
)

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all conformance checks in execution order",
		RunE: func(_ *cobra.Command, _ []string) error {
			return listChecks()
		},
	}
}

func listChecks() error {
	// The client is never called; the suite only needs it for
	// wiring.
	suite, err := conformance.NewSuite(
		advisor.NewClient("http://localhost"),
	)
	if err != nil {
		return fmt.Errorf("build suite: %w", err)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tCATEGORY\tDEPENDS ON\tNAME")
	for _, id := range conformance.DefaultOrder() {
		c, err := suite.Registry.Get(id)
		if err != nil {
			return err
		}
		deps := "-"
		if len(c.Dependencies()) > 0 {
			deps = ""
			for i, dep := range c.Dependencies() {
				if i > 0 {
					deps += ", "
				}
				deps += string(dep)
			}
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			c.ID(), c.Category(), deps, c.Name())
	}
	return w.Flush()
}

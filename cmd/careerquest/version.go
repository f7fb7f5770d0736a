package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewVersionCommand creates the version command.
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the careerquest version",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Println("careerquest", Version)
		},
	}
}

package main

import (
	"github.com/spf13/cobra"
)

// Version is set at build time with -ldflags.
var Version = "dev"

// RootOptions holds global flags shared by all commands.
type RootOptions struct {
	Verbose bool
	EnvFile string
}

// NewRootCommand creates the careerquest root command.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "careerquest",
		Short: "Conformance suite for the career advisor backend",
		Long: "careerquest runs an ordered conformance suite " +
			"against a career advisor backend: health, data " +
			"seeding, users, quizzes, gamification, and roadmaps.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolVarP(
		&opts.Verbose, "verbose", "v", false, "verbose output",
	)
	cmd.PersistentFlags().StringVar(
		&opts.EnvFile, "env-file", ".env",
		"path to a .env file with CAREERQUEST_* settings",
	)

	cmd.AddCommand(NewRunCommand(opts))
	cmd.AddCommand(NewListCommand(opts))
	cmd.AddCommand(NewVersionCommand())

	return cmd
}

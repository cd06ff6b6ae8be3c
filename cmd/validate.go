package cmd

import (
	"github.com/spf13/cobra"

	"github.com/dadrus/rtrie/cmd/flags"
	"github.com/dadrus/rtrie/cmd/validate"
)

// nolint: gochecknoinits
func init() {
	RootCmd.AddCommand(newValidateCmd())
}

func newValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Commands for validating rtrie's configuration",
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Println(cmd.UsageString())
		},
	}

	cmd.PersistentFlags().StringP(flags.Config, "c", "", "Path to rtrie's configuration file.")
	cmd.PersistentFlags().String(flags.EnvironmentConfigPrefix, "RTRIE_",
		"Prefix for the environment variables to consider for\nloading configuration from")

	cmd.AddCommand(validate.NewValidateConfigCommand())

	return cmd
}

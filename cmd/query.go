package cmd

import (
	"github.com/spf13/cobra"

	"github.com/dadrus/rtrie/cmd/flags"
	"github.com/dadrus/rtrie/cmd/query"
)

// nolint: gochecknoinits
func init() {
	RootCmd.AddCommand(newQueryCmd())
}

func newQueryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "query",
		Short: "Builds the configured index and runs a query against it",
	}

	flags.RegisterGlobalFlags(cmd)

	cmd.AddCommand(query.NewCountCommand())
	cmd.AddCommand(query.NewGetCommand())
	cmd.AddCommand(query.NewStatsCommand())

	return cmd
}

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/dadrus/rtrie/cmd/flags"
	"github.com/dadrus/rtrie/cmd/shell"
)

// nolint: gochecknoinits
func init() {
	RootCmd.AddCommand(newShellCmd())
}

func newShellCmd() *cobra.Command {
	cmd := shell.NewShellCommand()

	flags.RegisterGlobalFlags(cmd)

	return cmd
}

package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/dadrus/rtrie/cmd/flags"
)

// nolint: gochecknoglobals
var (
	Version = "master"

	// RootCmd is the "rtrie" command. Subcommands register themselves in their init functions.
	RootCmd = &cobra.Command{
		Use:   "rtrie",
		Short: "Builds radix trie indexes from files, redis or blob storage and queries them",
		Long: `rtrie loads key/value records from the configured source into an in-memory radix trie.
The index can be queried once per invocation (query) or interactively (shell).`,
		Version:           Version,
		SilenceErrors:     true,
		CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
	}
)

// Execute runs the command selected by the process arguments and exits with status 1
// if the arguments could not be resolved to one.
func Execute() {
	if err := execute(RootCmd, os.Args[1:]); err != nil {
		os.Exit(1)
	}
}

func execute(root *cobra.Command, args []string) error {
	root.SetArgs(args)

	cmd, err := root.ExecuteC()
	if err != nil {
		flags.PrintError(cmd, err)
	}

	return err
}

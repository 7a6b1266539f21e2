package main

import (
	"github.com/spf13/cobra"
)

// newRootCmd builds the command tree. Without arguments, which is how
// MailMate runs bundle commands, it drafts a reply; the key subcommands are
// run by hand from a terminal.
func newRootCmd(getenv func(string) string, openStore func() (secretStore, error)) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "mmdraft",
		Short: "Draft a reply to the selected MailMate message",
		Long: "mmdraft reads the message MailMate passes in MM_* variables and on stdin, " +
			"asks the configured LLM for a reply and prints a MailMate action document.",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		Run: func(cmd *cobra.Command, _ []string) {
			run(cmd.Context(), getenv, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.AddCommand(newSetKeyCmd(openStore), newDeleteKeyCmd(openStore))
	return rootCmd
}

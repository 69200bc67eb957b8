package main

import (
	"os"

	"github.com/spf13/cobra"

	historycmder "groq-chatbot/cmd/chatctl/history"
	validatekeycmder "groq-chatbot/cmd/chatctl/validatekey"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "chatctl",
		Short:         "Operator tools for the Groq chatbot",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	cmd.AddCommand(validatekeycmder.NewValidateKeyCmd())
	cmd.AddCommand(historycmder.NewHistoryCmd())

	return cmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

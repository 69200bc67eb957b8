package validatekeycmder

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"groq-chatbot/internal/chat"
)

const validateKeyLongDesc string = `Check that a Groq API key is well formed.

Only the format is checked; the key is never sent anywhere. Without an
argument the key is read from GROQ_API_KEY.

Examples:
  chatctl validate-key gsk_...
  GROQ_API_KEY=gsk_... chatctl validate-key`

const validateKeyShortDesc string = "Check the format of a Groq API key"

// ErrInvalidKey is returned when the key is rejected.
var ErrInvalidKey = errors.New("invalid API key")

type validateKeyCommander struct{}

func NewValidateKeyCmd() *cobra.Command {
	cmder := &validateKeyCommander{}

	return &cobra.Command{
		Use:   "validate-key [key]",
		Short: validateKeyShortDesc,
		Long:  validateKeyLongDesc,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := os.Getenv("GROQ_API_KEY")
			if len(args) == 1 {
				key = args[0]
			}
			return cmder.run(cmd, key)
		},
	}
}

func (c *validateKeyCommander) run(cmd *cobra.Command, key string) error {
	if err := chat.ValidateAPIKeyFormat(key); err != nil {
		fmt.Fprintln(cmd.OutOrStdout(), chat.UserMessage(err))
		return ErrInvalidKey
	}

	fmt.Fprintln(cmd.OutOrStdout(), "API key format looks valid")
	return nil
}

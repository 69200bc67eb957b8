package historycmder

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"groq-chatbot/internal/chat"
	"groq-chatbot/internal/chat/repository"
	"groq-chatbot/internal/chat/repository/sqlite"
	"groq-chatbot/pkg/log"
	"groq-chatbot/pkg/response"
)

const historyLongDesc string = `Print the archived interactions of a session.

Both appended and discarded interactions are archived; use --status to
keep one kind.

Examples:
  chatctl history 5d1c... --sqlite ./data/transcripts.db
  chatctl history 5d1c... --status discarded --limit 20`

const historyShortDesc string = "Print a session's archived transcript"

const defaultSQLitePath = "./data/transcripts.db"

type historyCommander struct {
	sqlitePath string
	status     string
	limit      int
}

func NewHistoryCmd() *cobra.Command {
	cmder := &historyCommander{}

	cmd := &cobra.Command{
		Use:   "history [session-id]",
		Short: historyShortDesc,
		Long:  historyLongDesc,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmder.run(cmd.Context(), cmd, args[0])
		},
	}

	cmd.Flags().StringVarP(&cmder.sqlitePath, "sqlite", "s", defaultSQLitePath, "Path to the transcript database")
	cmd.Flags().StringVar(&cmder.status, "status", "", "Only show appended or discarded interactions")
	cmd.Flags().IntVarP(&cmder.limit, "limit", "n", 0, "Maximum number of interactions (0 for all)")

	return cmd
}

func (c *historyCommander) run(ctx context.Context, cmd *cobra.Command, sessionID string) error {
	if c.status != "" && c.status != repository.StatusAppended && c.status != repository.StatusDiscarded {
		return fmt.Errorf("--status must be %q or %q", repository.StatusAppended, repository.StatusDiscarded)
	}
	if _, err := os.Stat(c.sqlitePath); errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("transcript database %s does not exist", c.sqlitePath)
	}

	repo, err := sqlite.New(c.sqlitePath, log.NewNop())
	if err != nil {
		return fmt.Errorf("could not open transcript database %s: %w", c.sqlitePath, err)
	}
	defer repo.Close()

	transcripts, err := repo.ListTranscripts(ctx, repository.ListTranscriptsOptions{
		SessionID: sessionID,
		Status:    c.status,
		Limit:     c.limit,
	})
	if err != nil {
		return fmt.Errorf("could not list transcripts: %w", err)
	}

	out := cmd.OutOrStdout()
	if len(transcripts) == 0 {
		fmt.Fprintf(out, "No transcripts for session %s\n", sessionID)
		return nil
	}

	for _, t := range transcripts {
		printTranscript(out, t)
	}
	fmt.Fprintf(out, "%d interactions\n", len(transcripts))
	return nil
}

func printTranscript(w io.Writer, t repository.Transcript) {
	fmt.Fprintf(w, "[%s] %s %s", t.CreatedAt.Local().Format(response.DateTimeFormat), t.Kind, t.Status)
	if t.DocumentName != "" {
		fmt.Fprintf(w, " (document: %s)", t.DocumentName)
	}
	fmt.Fprintf(w, "\nUser: %s\n", t.Question)

	if t.Kind == repository.KindChat {
		if t.Error1 != "" {
			fmt.Fprintf(w, "Error (%s): %s\n\n", t.Model1, t.Error1)
			return
		}
		fmt.Fprintf(w, "Assistant (%s): %s\n\n", t.Model1, t.Response1)
		return
	}

	if t.Status == repository.StatusAppended {
		fmt.Fprintf(w, "Assistant:\n%s\n\n", chat.CombineResponses(chat.AssistantTurn{
			Response1: t.Response1,
			Response2: t.Response2,
			Model1:    t.Model1,
			Model2:    t.Model2,
		}))
		return
	}

	printSlot(w, 1, t.Model1, t.Response1, t.Error1)
	printSlot(w, 2, t.Model2, t.Response2, t.Error2)
	fmt.Fprintln(w)
}

func printSlot(w io.Writer, slot int, model, text, errText string) {
	if errText != "" {
		fmt.Fprintf(w, "Model %d (%s) failed: %s\n", slot, model, errText)
		return
	}
	fmt.Fprintf(w, "Model %d (%s): %s\n", slot, model, text)
}

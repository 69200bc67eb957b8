package chat

import (
	"strconv"
	"strings"

	"groq-chatbot/pkg/llmprovider"
)

// DefaultSystemPrompt is the persona sent ahead of every conversation.
const DefaultSystemPrompt = "You are a helpful assistant. Answer in clear, well-structured prose, " +
	"keep answers concise unless asked for detail, and say so when you do not know something."

// BuildContextualPrompt embeds the whole source text, fenced, ahead of the
// question. The text is never truncated.
func BuildContextualPrompt(sourceText, question string) string {
	var b strings.Builder
	b.Grow(len(sourceText) + len(question) + 64)
	b.WriteString("Use the document below to answer the question.\n\n```\n")
	b.WriteString(sourceText)
	if !strings.HasSuffix(sourceText, "\n") {
		b.WriteByte('\n')
	}
	b.WriteString("```\n\nQuestion: ")
	b.WriteString(question)
	return b.String()
}

// ToAPIMessages converts the session history into the message list the
// completion API expects, preceded by the system prompt.
func ToAPIMessages(s *Session, systemPrompt string) []llmprovider.Message {
	return turnsToMessages(s.Turns(), systemPrompt)
}

func turnsToMessages(turns []Turn, systemPrompt string) []llmprovider.Message {
	if systemPrompt == "" {
		systemPrompt = DefaultSystemPrompt
	}

	msgs := make([]llmprovider.Message, 0, len(turns)+1)
	msgs = append(msgs, llmprovider.Message{Role: llmprovider.RoleSystem, Content: systemPrompt})

	for _, t := range turns {
		switch t := t.(type) {
		case UserTurn:
			msgs = append(msgs, llmprovider.Message{Role: llmprovider.RoleUser, Content: t.Content})
		case AssistantTurn:
			msgs = append(msgs, llmprovider.Message{Role: llmprovider.RoleAssistant, Content: CombineResponses(t)})
		}
	}
	return msgs
}

// CombineResponses renders an assistant turn as the single message the API
// expects: the response itself for single-model turns, both labeled
// responses for comparison turns.
func CombineResponses(t AssistantTurn) string {
	if t.Single {
		return t.Response1
	}
	return slotLabel(1, t.Model1) + ": " + t.Response1 + "\n\n" + slotLabel(2, t.Model2) + ": " + t.Response2
}

func slotLabel(slot int, model string) string {
	if model == "" {
		return "[Model " + strconv.Itoa(slot) + "]"
	}
	return "[Model " + strconv.Itoa(slot) + ": " + model + "]"
}

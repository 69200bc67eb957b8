package chat

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"groq-chatbot/pkg/llmprovider"
)

// RunDualCompletion answers the session's pending user turn with two models.
// Both streams run concurrently and independently: a failure in one never
// cancels the other. The assistant turn is appended only when both succeed;
// otherwise the session is left exactly as it was.
func RunDualCompletion(ctx context.Context, streamer llmprovider.Streamer, s *Session, req DualRequest) (DualResult, error) {
	result := DualResult{State: StateIdle}

	if req.Model1 == "" || req.Model2 == "" {
		return result, ErrInvalidModel
	}

	turns := s.Turns()
	if len(turns) == 0 || turns[len(turns)-1].Role() != RoleUser {
		return result, ErrTurnOrder
	}

	msgs := turnsToMessages(turns, req.SystemPrompt)
	base := llmprovider.Request{
		SystemInstruction: &msgs[0],
		Messages:          msgs[1:],
		Temperature:       req.Temperature,
		MaxTokens:         req.MaxTokens,
	}
	models := [2]string{req.Model1, req.Model2}

	result.State = StateAwaitingResponses

	var wg sync.WaitGroup
	for i := range models {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()

			slotReq := base
			slotReq.Model = models[i]

			emit := func(string) {}
			if req.OnFragment != nil {
				emit = func(f string) { req.OnFragment(i+1, f) }
			}

			text, err := streamSlot(ctx, streamer, &slotReq, req.Timeout, emit)
			slot := SlotResult{Slot: i + 1, Model: models[i], Text: text, Err: err}
			if err != nil {
				slot.Text = ""
				slot.Message = UserMessage(err)
			}
			result.Slots[i] = slot
		}(i)
	}
	wg.Wait()

	if !result.Succeeded() {
		result.State = StateDiscarded
		return result, nil
	}

	if err := s.AppendAssistant(AssistantTurn{
		Response1: result.Slots[0].Text,
		Response2: result.Slots[1].Text,
		Model1:    models[0],
		Model2:    models[1],
	}); err != nil {
		// The history changed under us; the caller broke the session claim.
		result.State = StateDiscarded
		return result, err
	}

	result.State = StateAppended
	return result, nil
}

// streamSlot accumulates one stream into a string.
func streamSlot(ctx context.Context, streamer llmprovider.Streamer, req *llmprovider.Request,
	timeout time.Duration, emit func(string)) (string, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	stream, err := streamer.StreamContent(ctx, req)
	if err != nil {
		return "", withContextErr(ctx, err)
	}
	defer stream.Close()

	var sb strings.Builder
	for {
		fragment, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			return sb.String(), nil
		}
		if err != nil {
			return "", withContextErr(ctx, err)
		}
		sb.WriteString(fragment)
		emit(fragment)
	}
}

// withContextErr makes deadline expiry visible to error classification even
// when the stream reported it as something else.
func withContextErr(ctx context.Context, err error) error {
	ctxErr := ctx.Err()
	if ctxErr == nil || llmprovider.KindOf(err) == llmprovider.KindConnection {
		return err
	}
	return fmt.Errorf("%w: %w", ctxErr, err)
}

package http

import (
	"github.com/gin-gonic/gin"

	"groq-chatbot/internal/chat"
	"groq-chatbot/pkg/response"
)

const (
	eventFragment = "fragment"
	eventResult   = "result"
)

type compareOutcome struct {
	out chat.CompareOutput
	err error
}

// compareStream relays fragments as server-sent events. Nothing is written
// until the first fragment or the final outcome arrives, so requests that
// fail before streaming starts still get a regular JSON error.
func (h *handler) compareStream(c *gin.Context, req compareReq) {
	ctx := c.Request.Context()

	fragments := make(chan fragmentResp, 64)
	done := make(chan compareOutcome, 1)

	onFragment := func(slot int, fragment string) {
		select {
		case fragments <- fragmentResp{Slot: slot, Fragment: fragment}:
		case <-ctx.Done():
		}
	}

	go func() {
		out, err := h.uc.Compare(ctx, req.toInput(onFragment))
		done <- compareOutcome{out: out, err: err}
		// Compare returns only after both slots stopped calling onFragment.
		close(fragments)
	}()

	first, streaming := <-fragments
	if !streaming {
		outcome := <-done
		if outcome.err != nil {
			h.l.Warnf(ctx, "uc.Compare: %v", outcome.err)
			response.Error(c, h.mapError(outcome.err), nil)
			return
		}
		response.OK(c, h.newCompareResp(outcome.out))
		return
	}

	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")
	c.SSEvent(eventFragment, first)

	c.Writer.Flush()

	for f := range fragments {
		c.SSEvent(eventFragment, f)
		c.Writer.Flush()
	}

	outcome := <-done
	if outcome.err != nil {
		h.l.Warnf(ctx, "uc.Compare: %v", outcome.err)
		c.SSEvent(eventResult, response.Resp{
			ErrorCode: response.DefaultErrorCode,
			Message:   outcome.err.Error(),
		})
		c.Writer.Flush()
		return
	}

	c.SSEvent(eventResult, response.NewOKResp(h.newCompareResp(outcome.out)))
	c.Writer.Flush()
}

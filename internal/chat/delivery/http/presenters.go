package http

import (
	"time"

	"groq-chatbot/internal/chat"
	"groq-chatbot/pkg/llmprovider"
)

// --- Request DTOs ---

type validateKeyReq struct {
	APIKey string `json:"api_key"`
}

type chatReq struct {
	SessionID   string   `json:"-"`
	APIKey      string   `json:"-"`
	Question    string   `json:"question"    binding:"required"`
	Model       string   `json:"model"       binding:"omitempty,max=128"`
	Temperature *float64 `json:"temperature"`
	MaxTokens   int      `json:"max_tokens"  binding:"omitempty,min=1,max=32768"`
}

func (r chatReq) toInput() chat.ChatInput {
	return chat.ChatInput{
		SessionID:   r.SessionID,
		Question:    r.Question,
		Model:       r.Model,
		Temperature: r.Temperature,
		MaxTokens:   r.MaxTokens,
		APIKey:      r.APIKey,
	}
}

type compareReq struct {
	SessionID   string   `json:"-"`
	APIKey      string   `json:"-"`
	Question    string   `json:"question"    binding:"required"`
	Model1      string   `json:"model_1"     binding:"omitempty,max=128"`
	Model2      string   `json:"model_2"     binding:"omitempty,max=128"`
	Temperature *float64 `json:"temperature"`
	MaxTokens   int      `json:"max_tokens"  binding:"omitempty,min=1,max=32768"`
}

func (r compareReq) toInput(onFragment chat.FragmentFunc) chat.CompareInput {
	return chat.CompareInput{
		SessionID:   r.SessionID,
		Question:    r.Question,
		Model1:      r.Model1,
		Model2:      r.Model2,
		Temperature: r.Temperature,
		MaxTokens:   r.MaxTokens,
		APIKey:      r.APIKey,
		OnFragment:  onFragment,
	}
}

type documentReq struct {
	SessionID string
	Name      string
	Raw       []byte
}

func (r documentReq) toInput() chat.LoadDocumentInput {
	return chat.LoadDocumentInput{
		SessionID: r.SessionID,
		Name:      r.Name,
		Raw:       r.Raw,
	}
}

// --- Response DTOs ---

type turnResp struct {
	Role      string `json:"role"`
	Content   string `json:"content,omitempty"`
	Response1 string `json:"response_1,omitempty"`
	Response2 string `json:"response_2,omitempty"`
	Model1    string `json:"model_1,omitempty"`
	Model2    string `json:"model_2,omitempty"`
	Single    bool   `json:"single,omitempty"`
}

func newTurnResp(t chat.Turn) turnResp {
	switch v := t.(type) {
	case chat.UserTurn:
		return turnResp{Role: string(v.Role()), Content: v.Text()}
	case chat.AssistantTurn:
		return turnResp{
			Role:      string(v.Role()),
			Response1: v.Response1,
			Response2: v.Response2,
			Model1:    v.Model1,
			Model2:    v.Model2,
			Single:    v.Single,
		}
	default:
		return turnResp{Role: string(t.Role())}
	}
}

type documentResp struct {
	Name     string    `json:"name"`
	Bytes    int       `json:"bytes"`
	LoadedAt time.Time `json:"loaded_at"`
}

func newDocumentResp(d chat.Document) documentResp {
	return documentResp{Name: d.Name, Bytes: len(d.Text), LoadedAt: d.LoadedAt}
}

type sessionResp struct {
	ID           string        `json:"id"`
	Turns        []turnResp    `json:"turns"`
	Document     *documentResp `json:"document,omitempty"`
	ResetCounter uint64        `json:"reset_counter"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

func newSessionResp(s chat.SessionSnapshot) sessionResp {
	turns := make([]turnResp, len(s.Turns))
	for i, t := range s.Turns {
		turns[i] = newTurnResp(t)
	}

	resp := sessionResp{
		ID:           s.ID,
		Turns:        turns,
		ResetCounter: s.ResetCounter,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
	if s.Document != nil {
		d := newDocumentResp(*s.Document)
		resp.Document = &d
	}
	return resp
}

type validateKeyResp struct {
	Valid   bool   `json:"valid"`
	Message string `json:"message"`
}

func (h *handler) newValidateKeyResp(err error) validateKeyResp {
	if err != nil {
		return validateKeyResp{Valid: false, Message: chat.UserMessage(err)}
	}
	return validateKeyResp{Valid: true, Message: "API key format looks valid"}
}

type modelResp struct {
	ID            string `json:"id"`
	Provider      string `json:"provider"`
	OwnedBy       string `json:"owned_by,omitempty"`
	ContextWindow int    `json:"context_window,omitempty"`
}

type listModelsResp struct {
	Models []modelResp `json:"models"`
}

func (h *handler) newListModelsResp(out chat.ListModelsOutput) listModelsResp {
	models := make([]modelResp, len(out.Models))
	for i, m := range out.Models {
		models[i] = modelResp{
			ID:            m.ID,
			Provider:      m.Provider,
			OwnedBy:       m.OwnedBy,
			ContextWindow: m.ContextWindow,
		}
	}
	return listModelsResp{Models: models}
}

type messageResp struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type messagesResp struct {
	Messages []messageResp `json:"messages"`
}

func (h *handler) newMessagesResp(out chat.MessagesOutput) messagesResp {
	msgs := make([]messageResp, len(out.Messages))
	for i, m := range out.Messages {
		msgs[i] = messageResp{Role: m.Role, Content: m.Content}
	}
	return messagesResp{Messages: msgs}
}

type documentLoadResp struct {
	Document documentResp `json:"document"`
	Session  sessionResp  `json:"session"`
}

func (h *handler) newDocumentLoadResp(out chat.LoadDocumentOutput) documentLoadResp {
	return documentLoadResp{
		Document: newDocumentResp(out.Document),
		Session:  newSessionResp(out.Session),
	}
}

type usageResp struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

func newUsageResp(u *llmprovider.Usage) *usageResp {
	if u == nil {
		return nil
	}
	return &usageResp{
		PromptTokens:     u.InputTokens,
		CompletionTokens: u.OutputTokens,
		TotalTokens:      u.TotalTokens,
	}
}

type chatResp struct {
	Response string      `json:"response"`
	Model    string      `json:"model"`
	Provider string      `json:"provider"`
	Usage    *usageResp  `json:"usage,omitempty"`
	Session  sessionResp `json:"session"`
}

func (h *handler) newChatResp(out chat.ChatOutput) chatResp {
	return chatResp{
		Response: out.Response,
		Model:    out.Model,
		Provider: out.Provider,
		Usage:    newUsageResp(out.Usage),
		Session:  newSessionResp(out.Session),
	}
}

type slotResp struct {
	Slot    int    `json:"slot"`
	Model   string `json:"model"`
	OK      bool   `json:"ok"`
	Text    string `json:"text,omitempty"`
	Message string `json:"message,omitempty"`
}

type compareResp struct {
	State   string      `json:"state"`
	Slots   []slotResp  `json:"slots"`
	Session sessionResp `json:"session"`
}

func (h *handler) newCompareResp(out chat.CompareOutput) compareResp {
	slots := make([]slotResp, len(out.Result.Slots))
	for i, s := range out.Result.Slots {
		slots[i] = slotResp{
			Slot:    s.Slot,
			Model:   s.Model,
			OK:      s.OK(),
			Text:    s.Text,
			Message: s.Message,
		}
	}
	return compareResp{
		State:   string(out.Result.State),
		Slots:   slots,
		Session: newSessionResp(out.Session),
	}
}

type fragmentResp struct {
	Slot     int    `json:"slot"`
	Fragment string `json:"fragment"`
}

package chat

import (
	"time"

	"groq-chatbot/pkg/llmprovider"
)

// --- Turn ---

// Role is the author of a Turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is one entry of the conversation history: a UserTurn or an AssistantTurn.
type Turn interface {
	Role() Role
	isTurn()
}

// UserTurn is one user input. Content is what the model receives (the
// contextual prompt when a document is active); Display is the optional
// text shown instead of it.
type UserTurn struct {
	Content string
	Display string
}

func (UserTurn) Role() Role { return RoleUser }
func (UserTurn) isTurn()    {}

// Text returns Display when set, Content otherwise.
func (t UserTurn) Text() string {
	if t.Display != "" {
		return t.Display
	}
	return t.Content
}

// AssistantTurn holds the answer to one user turn. A comparison turn always
// carries both responses; a single-model turn sets Single and only the first.
type AssistantTurn struct {
	Response1 string
	Response2 string
	Model1    string
	Model2    string
	Single    bool
}

func (AssistantTurn) Role() Role { return RoleAssistant }
func (AssistantTurn) isTurn()    {}

// Document is the active source document of a session.
type Document struct {
	Name     string
	Text     string
	LoadedAt time.Time
}

// --- Dual completion ---

// InteractionState is the lifecycle of one comparison interaction.
type InteractionState string

const (
	StateIdle              InteractionState = "idle"
	StateAwaitingResponses InteractionState = "awaiting_responses"
	StateAppended          InteractionState = "appended"
	StateDiscarded         InteractionState = "discarded"
)

// FragmentFunc receives each text fragment as it arrives. slot is 1 or 2.
// It may be called from two goroutines at once.
type FragmentFunc func(slot int, fragment string)

// SlotResult is the outcome of one of the two completions.
type SlotResult struct {
	Slot    int
	Model   string
	Text    string
	Err     error
	Message string // user-facing, set when Err != nil
}

// OK reports whether the slot produced a response.
func (r SlotResult) OK() bool {
	return r.Err == nil
}

// DualResult is the outcome of RunDualCompletion.
type DualResult struct {
	Slots [2]SlotResult
	State InteractionState
}

// Succeeded reports whether both slots produced a response.
func (r DualResult) Succeeded() bool {
	return r.Slots[0].OK() && r.Slots[1].OK()
}

// DualRequest describes the two completions to run.
type DualRequest struct {
	Model1       string
	Model2       string
	Temperature  float64
	MaxTokens    int
	SystemPrompt string
	Timeout      time.Duration // per slot; zero means none
	OnFragment   FragmentFunc
}

// --- UseCase Inputs ---

type CompareInput struct {
	SessionID   string
	Question    string
	Model1      string
	Model2      string
	Temperature *float64
	MaxTokens   int
	APIKey      string
	OnFragment  FragmentFunc
}

type ChatInput struct {
	SessionID   string
	Question    string
	Model       string
	Temperature *float64
	MaxTokens   int
	APIKey      string
}

type LoadDocumentInput struct {
	SessionID string
	Name      string
	Raw       []byte
}

// --- UseCase Outputs ---

// SessionSnapshot is a consistent copy of a session's state.
type SessionSnapshot struct {
	ID           string
	Turns        []Turn
	Document     *Document
	ResetCounter uint64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type CompareOutput struct {
	Result  DualResult
	Session SessionSnapshot
}

type ChatOutput struct {
	Response string
	Model    string
	Provider string
	Usage    *llmprovider.Usage
	Session  SessionSnapshot
}

type LoadDocumentOutput struct {
	Document Document
	Session  SessionSnapshot
}

type MessagesOutput struct {
	Messages []llmprovider.Message
}

type ListModelsOutput struct {
	Models []llmprovider.ModelInfo
}

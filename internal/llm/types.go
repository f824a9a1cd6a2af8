package llm

import "errors"

// ErrEmptyCompletion is returned by providers that answered without text.
var ErrEmptyCompletion = errors.New("provider returned an empty completion")

// Role is the author of a chat message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is a single chat turn.
type Message struct {
	Role    Role
	Content string
}

// Request is a chat completion request.
type Request struct {
	Model       string
	Messages    []Message
	MaxTokens   int
	Temperature float64
}

// Response is the provider's reply.
type Response struct {
	Text         string
	Model        string
	PromptTokens int
	OutputTokens int
	StopReason   string
}

// Instruct builds the common two-message conversation: system instructions
// followed by one user turn.
func Instruct(system, user string) []Message {
	msgs := make([]Message, 0, 2)
	if system != "" {
		msgs = append(msgs, Message{Role: RoleSystem, Content: system})
	}
	return append(msgs, Message{Role: RoleUser, Content: user})
}

package models

// Role identifies the author of a message. The remote API gives roles their
// meaning, so values outside the known set are passed through untouched.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleTool      Role = "tool"
	RoleFunction  Role = "function"
)

// DefaultStartMessage seeds a conversation when no persona is given.
const DefaultStartMessage = "You are a helpful assistant."

// Payload is the wire form of a message inside a completion request.
type Payload struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Message is one immutable entry in a conversation history.
type Message struct {
	role    Role
	content string
}

func NewMessage(role Role, content string) Message {
	return Message{role: role, content: content}
}

// UserMessage builds a message with the default user role.
func UserMessage(content string) Message {
	return NewMessage(RoleUser, content)
}

// NewStartMessage builds the system message that opens every conversation.
// An empty content falls back to DefaultStartMessage.
func NewStartMessage(content string) Message {
	if content == "" {
		content = DefaultStartMessage
	}
	return NewMessage(RoleSystem, content)
}

func (m Message) Role() Role { return m.role }
func (m Message) Content() string { return m.content }
func (m Message) Payload() Payload { return Payload{Role: m.role, Content: m.content} }

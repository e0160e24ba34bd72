package domain

// RoleAssistant is the only role produced by the chat endpoint.
const RoleAssistant = "assistant"

// ChatMessage is the reply shape returned to the chat widget.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

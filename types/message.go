package types

import (
	"encoding/json"
	"time"
)

// Role represents the message role.
type Role string

const (
	// RoleUser represents a user message.
	RoleUser Role = "user"

	// RoleAssistant represents an assistant message.
	RoleAssistant Role = "assistant"
)

// PartKind identifies the variant of a message part.
type PartKind string

const (
	// PartSystem is the system framing delivered with the first request.
	PartSystem PartKind = "system"

	// PartUser is a user prompt.
	PartUser PartKind = "user"

	// PartText is assistant-produced text.
	PartText PartKind = "text"

	// PartThinking is assistant reasoning that is not part of the reply.
	PartThinking PartKind = "thinking"

	// PartToolCall is a tool invocation requested by the model.
	PartToolCall PartKind = "tool_call"

	// PartToolResult is the result returned by a tool.
	PartToolResult PartKind = "tool_result"

	// PartRetry is a tool error or retry notice fed back to the model.
	PartRetry PartKind = "retry"
)

// Part is one tagged piece of content within a message.
type Part struct {
	Kind PartKind `json:"kind"`

	// Content holds the text payload for system, user, text, thinking,
	// tool_result and retry parts.
	Content string `json:"content,omitempty"`

	// Tool call fields
	ToolName   string          `json:"tool_name,omitempty"`
	ToolCallID string          `json:"tool_call_id,omitempty"`
	ToolArgs   json.RawMessage `json:"tool_args,omitempty"`

	// IsError marks a failed tool result.
	IsError bool `json:"is_error,omitempty"`
}

// IsTool reports whether the part is tool-protocol traffic: a call,
// a result, or a retry/error notice.
func (p Part) IsTool() bool {
	switch p.Kind {
	case PartToolCall, PartToolResult, PartRetry:
		return true
	}
	return false
}

// Usage represents token usage information for one request or a running
// total across requests.
type Usage struct {
	InputTokens  int `json:"input_tokens,omitempty"`
	OutputTokens int `json:"output_tokens,omitempty"`
	TotalTokens  int `json:"total_tokens,omitempty"`
	Requests     int `json:"requests,omitempty"`
}

// Add accumulates another usage sample into u.
func (u *Usage) Add(o Usage) {
	u.InputTokens += o.InputTokens
	u.OutputTokens += o.OutputTokens
	u.TotalTokens += o.TotalTokens
	u.Requests += o.Requests
}

// Message is one entry of a conversation transcript.
type Message struct {
	Role      Role      `json:"role"`
	Parts     []Part    `json:"parts"`
	Usage     *Usage    `json:"usage,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// IsToolOnly reports whether every part of the message is tool-protocol
// traffic. Messages with no parts are not tool-only.
func (m Message) IsToolOnly() bool {
	if len(m.Parts) == 0 {
		return false
	}
	for _, p := range m.Parts {
		if !p.IsTool() {
			return false
		}
	}
	return true
}

// Text returns the concatenated text content of the message, skipping
// tool traffic and thinking parts.
func (m Message) Text() string {
	var out string
	for _, p := range m.Parts {
		switch p.Kind {
		case PartSystem, PartUser, PartText:
			out += p.Content
		}
	}
	return out
}

// TokenCount returns the total token count recorded for this message.
func (m Message) TokenCount() int {
	if m.Usage == nil {
		return 0
	}
	if m.Usage.TotalTokens > 0 {
		return m.Usage.TotalTokens
	}
	return m.Usage.InputTokens + m.Usage.OutputTokens
}

// Clone returns a deep copy of the message.
func (m Message) Clone() Message {
	out := m
	if m.Parts != nil {
		out.Parts = make([]Part, len(m.Parts))
		copy(out.Parts, m.Parts)
		for i, p := range m.Parts {
			if p.ToolArgs != nil {
				out.Parts[i].ToolArgs = append(json.RawMessage(nil), p.ToolArgs...)
			}
		}
	}
	if m.Usage != nil {
		u := *m.Usage
		out.Usage = &u
	}
	return out
}

// NewSystemMessage creates a user-role message carrying system framing.
func NewSystemMessage(content string) Message {
	return Message{
		Role:      RoleUser,
		Parts:     []Part{{Kind: PartSystem, Content: content}},
		CreatedAt: time.Now(),
	}
}

// NewUserMessage creates a message with a single user prompt part.
func NewUserMessage(content string) Message {
	return Message{
		Role:      RoleUser,
		Parts:     []Part{{Kind: PartUser, Content: content}},
		CreatedAt: time.Now(),
	}
}

// NewTextMessage creates an assistant message with a single text part.
func NewTextMessage(content string) Message {
	return Message{
		Role:      RoleAssistant,
		Parts:     []Part{{Kind: PartText, Content: content}},
		CreatedAt: time.Now(),
	}
}

// NewToolCallMessage creates an assistant message invoking a tool.
func NewToolCallMessage(name, callID string, args json.RawMessage) Message {
	return Message{
		Role:      RoleAssistant,
		Parts:     []Part{{Kind: PartToolCall, ToolName: name, ToolCallID: callID, ToolArgs: args}},
		CreatedAt: time.Now(),
	}
}

// NewToolResultMessage creates a user-role message carrying a tool result.
func NewToolResultMessage(callID, content string, isError bool) Message {
	return Message{
		Role:      RoleUser,
		Parts:     []Part{{Kind: PartToolResult, ToolCallID: callID, Content: content, IsError: isError}},
		CreatedAt: time.Now(),
	}
}

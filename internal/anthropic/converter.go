// Package anthropic converts between transcript messages and the
// Anthropic API wire format.
package anthropic

import (
	"encoding/json"
	"time"

	"github.com/anthropics/anthropic-sdk-go"

	"github.com/askgo-dev/askgo/types"
)

// ToMessageParams converts a transcript to Anthropic API format.
// Thinking parts are not replayed upstream and are skipped.
func ToMessageParams(msgs []types.Message) []anthropic.MessageParam {
	params := make([]anthropic.MessageParam, 0, len(msgs))

	for _, msg := range msgs {
		role := anthropic.MessageParamRoleUser
		if msg.Role == types.RoleAssistant {
			role = anthropic.MessageParamRoleAssistant
		}

		content := make([]anthropic.ContentBlockParamUnion, 0, len(msg.Parts))
		for _, part := range msg.Parts {
			block, ok := convertPart(part)
			if !ok {
				continue
			}
			content = append(content, block)
		}
		if len(content) == 0 {
			continue
		}

		params = append(params, anthropic.MessageParam{
			Role:    role,
			Content: content,
		})
	}

	return params
}

// convertPart converts a single part to Anthropic format.
func convertPart(part types.Part) (anthropic.ContentBlockParamUnion, bool) {
	switch part.Kind {
	case types.PartSystem, types.PartUser, types.PartText:
		return anthropic.NewTextBlock(part.Content), true

	case types.PartToolCall:
		var input any
		if len(part.ToolArgs) > 0 {
			_ = json.Unmarshal(part.ToolArgs, &input)
		}
		if input == nil {
			input = map[string]any{}
		}
		return anthropic.NewToolUseBlock(part.ToolCallID, input, part.ToolName), true

	case types.PartToolResult:
		return anthropic.NewToolResultBlock(part.ToolCallID, part.Content, part.IsError), true

	case types.PartRetry:
		return anthropic.NewToolResultBlock(part.ToolCallID, part.Content, true), true
	}

	return anthropic.ContentBlockParamUnion{}, false
}

// FromMessage converts an API response into a transcript message.
func FromMessage(resp *anthropic.Message) types.Message {
	parts := make([]types.Part, 0, len(resp.Content))

	for _, block := range resp.Content {
		switch block := block.AsAny().(type) {
		case anthropic.TextBlock:
			parts = append(parts, types.Part{Kind: types.PartText, Content: block.Text})

		case anthropic.ThinkingBlock:
			parts = append(parts, types.Part{Kind: types.PartThinking, Content: block.Thinking})

		case anthropic.ToolUseBlock:
			parts = append(parts, types.Part{
				Kind:       types.PartToolCall,
				ToolName:   block.Name,
				ToolCallID: block.ID,
				ToolArgs:   json.RawMessage(block.Input),
			})
		}
	}

	usage := ConvertUsage(resp.Usage)
	return types.Message{
		Role:      types.RoleAssistant,
		Parts:     parts,
		Usage:     &usage,
		CreatedAt: time.Now(),
	}
}

// ConvertUsage converts API usage counters into a single-request usage
// sample.
func ConvertUsage(u anthropic.Usage) types.Usage {
	return types.Usage{
		InputTokens:  int(u.InputTokens),
		OutputTokens: int(u.OutputTokens),
		TotalTokens:  int(u.InputTokens + u.OutputTokens),
		Requests:     1,
	}
}

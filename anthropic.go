package askgo

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"

	convert "github.com/askgo-dev/askgo/internal/anthropic"
	"github.com/askgo-dev/askgo/types"
)

// AnthropicCaller is a single-turn Caller over the Anthropic API. It
// replays the transcript, appends the prompt, makes one request, and
// returns the response text as the run output.
type AnthropicCaller struct {
	client    *anthropic.Client
	model     string
	maxTokens int64
	system    string
}

// NewAnthropicCaller creates a caller using the given model. system may
// be empty.
func NewAnthropicCaller(client *anthropic.Client, model string, maxTokens int64, system string) *AnthropicCaller {
	return &AnthropicCaller{
		client:    client,
		model:     model,
		maxTokens: maxTokens,
		system:    system,
	}
}

// Call implements Caller.
func (c *AnthropicCaller) Call(ctx context.Context, req CallRequest) (*CallResult, error) {
	userMsg := types.NewUserMessage(req.Prompt)
	transcript := append(types.CloneTranscript(req.History), userMsg)

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		MaxTokens: c.maxTokens,
		Messages:  convert.ToMessageParams(transcript),
	}
	if c.system != "" {
		params.System = []anthropic.TextBlockParam{{Text: c.system}}
	}

	resp, err := c.client.Messages.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("anthropic request: %w", err)
	}

	assistant := convert.FromMessage(resp)
	transcript = append(transcript, assistant)

	var text strings.Builder
	for _, part := range assistant.Parts {
		if part.Kind == types.PartText {
			text.WriteString(part.Content)
		}
	}

	output, err := json.Marshal(text.String())
	if err != nil {
		return nil, fmt.Errorf("encode output: %w", err)
	}

	return &CallResult{
		Output:   output,
		Messages: transcript,
		Usage:    convert.ConvertUsage(resp.Usage),
	}, nil
}

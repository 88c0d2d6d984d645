package compaction

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"

	"github.com/askgo-dev/askgo/types"
)

// Summary is the structured result of condensing a transcript segment.
type Summary struct {
	// Summary is a short account of the conversation so far.
	Summary string

	// Context is the denser continuation context: open requests,
	// decisions, unresolved items.
	Context string
}

// Summarizer condenses a transcript segment into a Summary. It is the
// secondary, cheaper model-call collaborator consumed by the Repacker.
type Summarizer interface {
	Summarize(ctx context.Context, msgs []types.Message) (*Summary, error)
}

// AnthropicSummarizer implements Summarizer over the Anthropic API.
type AnthropicSummarizer struct {
	client    *anthropic.Client
	model     string
	maxTokens int64
	maxWords  int
}

// NewAnthropicSummarizer creates a summarizer using the given model.
// A fast, cheap model is recommended.
func NewAnthropicSummarizer(client *anthropic.Client, model string, maxTokens int64, maxWords int) *AnthropicSummarizer {
	if maxWords <= 0 {
		maxWords = DefaultMaxSummaryWords
	}
	return &AnthropicSummarizer{
		client:    client,
		model:     model,
		maxTokens: maxTokens,
		maxWords:  maxWords,
	}
}

// Summarize condenses msgs into a Summary.
func (s *AnthropicSummarizer) Summarize(ctx context.Context, msgs []types.Message) (*Summary, error) {
	if len(msgs) == 0 {
		return nil, fmt.Errorf("%w: empty segment", ErrSummarizationFailed)
	}

	userPrompt := BuildSummaryPrompt(FormatTranscript(msgs), s.maxWords)
	temperature := 0.0

	resp, err := s.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       anthropic.Model(s.model),
		MaxTokens:   s.maxTokens,
		Temperature: anthropic.Float(temperature),
		System: []anthropic.TextBlockParam{
			{Text: SummarySystemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(userPrompt)),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSummarizationFailed, err)
	}

	var text strings.Builder
	for _, block := range resp.Content {
		if tb, ok := block.AsAny().(anthropic.TextBlock); ok {
			text.WriteString(tb.Text)
		}
	}
	if text.Len() == 0 {
		return nil, fmt.Errorf("%w: empty response from summarizer", ErrSummarizationFailed)
	}

	return parseCondensed(text.String())
}

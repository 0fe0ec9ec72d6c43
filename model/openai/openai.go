// Package openai provides an implementation of model.Model using the OpenAI
// Chat Completions API. It adapts the engine's normalized Request/Response
// structures into the SDK's message format and back, including image content
// parts for vision requests.
package openai

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/openai/openai-go"

	"github.com/contentmesh/contentmesh/model"
)

// Options configure the OpenAI model adapter.
// Fields mirror a subset of Chat Completion parameters intentionally kept
// minimal; extend via functional options without breaking callers.
type Options struct {
	Model               string
	Temperature         float64
	MaxCompletionTokens int64
}

// Model wraps the OpenAI Chat Completions API behind the generic model.Model interface.
type Model struct {
	client *openai.Client
	opts   Options
}

// NewModel creates a new OpenAI model using the official client
func NewModel(optFns ...func(o *Options)) *Model {
	client := openai.NewClient()
	return NewModelFromClient(&client, optFns...)
}

// NewModelFromClient creates a new OpenAI model from an existing client
func NewModelFromClient(client *openai.Client, optFns ...func(o *Options)) *Model {
	opts := Options{
		Model:               openai.ChatModelGPT4oMini,
		Temperature:         0.7,
		MaxCompletionTokens: 4096,
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Model{client: client, opts: opts}
}

// Generate implements model.Model with a single non-streaming completion.
func (m *Model) Generate(ctx context.Context, req model.Request) (model.Response, error) {
	params := openai.ChatCompletionNewParams{
		Messages:            buildMessages(req),
		Model:               m.opts.Model,
		Temperature:         openai.Float(m.opts.Temperature),
		MaxCompletionTokens: openai.Int(m.opts.MaxCompletionTokens),
	}

	resp, err := m.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return model.Response{}, fmt.Errorf("openai api error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return model.Response{}, fmt.Errorf("no choices returned")
	}

	out := model.Response{Text: strings.TrimSpace(resp.Choices[0].Message.Content)}
	if resp.Usage.TotalTokens > 0 {
		out.Usage = &model.TokenUsage{
			PromptTokens:     int(resp.Usage.PromptTokens),
			CompletionTokens: int(resp.Usage.CompletionTokens),
			TotalTokens:      int(resp.Usage.TotalTokens),
		}
	}
	return out, nil
}

// buildMessages converts a normalized request into OpenAI chat messages,
// attaching image content parts for vision requests.
func buildMessages(req model.Request) []openai.ChatCompletionMessageParamUnion {
	var messages []openai.ChatCompletionMessageParamUnion
	if req.Instructions != "" {
		messages = append(messages, openai.SystemMessage(req.Instructions))
	}

	if len(req.Media) == 0 {
		return append(messages, openai.UserMessage(req.Prompt))
	}

	parts := make([]openai.ChatCompletionContentPartUnionParam, 0, len(req.Media)+1)
	if req.Prompt != "" {
		parts = append(parts, openai.TextContentPart(req.Prompt))
	}
	for _, ref := range req.Media {
		parts = append(parts, openai.ImageContentPart(openai.ChatCompletionContentPartImageImageURLParam{
			URL: imageURL(ref),
		}))
	}
	return append(messages, openai.UserMessage(parts))
}

// imageURL renders a MediaRef as either its remote URL or an inline data URL.
func imageURL(ref model.MediaRef) string {
	if ref.URL != "" {
		return ref.URL
	}
	return fmt.Sprintf("data:%s;base64,%s", ref.MIMEType, base64.StdEncoding.EncodeToString(ref.Data))
}

// Info implements model.Model.
func (m *Model) Info() model.Info {
	return model.Info{
		Name:           m.opts.Model,
		Provider:       "openai",
		SupportsVision: true,
	}
}

package agent

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contentmesh/contentmesh/model"
	"github.com/contentmesh/contentmesh/tool"
)

func echoTool(name string) tool.Tool {
	return tool.NewFunctionTool(name, "echoes its input",
		map[string]any{
			"type": "object",
			"properties": map[string]any{
				"value": map[string]any{"type": "string"},
			},
			"required": []string{"value"},
		},
		func(ctx context.Context, args map[string]any) (any, error) {
			return args["value"], nil
		},
	)
}

func TestBaseAgent_SystemPrompt(t *testing.T) {
	b := NewBaseAgent("TestAgent", "tester", "testing things", "Always be testing.",
		model.NewMockModel("mock", "mock"))

	prompt := b.SystemPrompt()

	assert.Contains(t, prompt, "TestAgent")
	assert.Contains(t, prompt, "tester")
	assert.Contains(t, prompt, "testing things")
	assert.Contains(t, prompt, "Always be testing.")
}

func TestBaseAgent_ToolRegistry(t *testing.T) {
	b := NewBaseAgent("TestAgent", "tester", "", "", model.NewMockModel("mock", "mock"))
	b.RegisterTool(echoTool("echo"))

	assert.True(t, b.HasTool("echo"))
	assert.Contains(t, b.ListTools(), "echo")

	out, err := b.UseTool(context.Background(), "echo", map[string]any{"value": "hi"})
	require.NoError(t, err)
	assert.Equal(t, "hi", out)
}

func TestBaseAgent_UseTool_NotFound(t *testing.T) {
	b := NewBaseAgent("TestAgent", "tester", "", "", model.NewMockModel("mock", "mock"))

	_, err := b.UseTool(context.Background(), "missing", nil)

	assert.ErrorIs(t, err, ErrToolNotFound)
}

func TestBaseAgent_RegisterTool_DuplicateLastWins(t *testing.T) {
	b := NewBaseAgent("TestAgent", "tester", "", "", model.NewMockModel("mock", "mock"))

	first := tool.NewFunctionTool("dup", "first", map[string]any{"type": "object"},
		func(ctx context.Context, args map[string]any) (any, error) { return "first", nil })
	second := tool.NewFunctionTool("dup", "second", map[string]any{"type": "object"},
		func(ctx context.Context, args map[string]any) (any, error) { return "second", nil })

	b.RegisterTool(first)
	b.RegisterTool(second)

	out, err := b.UseTool(context.Background(), "dup", map[string]any{})
	require.NoError(t, err)
	assert.Equal(t, "second", out)
	assert.Len(t, b.ListTools(), 1)
}

func TestBaseAgent_InvokeModel_TrimsResponse(t *testing.T) {
	mm := model.NewMockModel("mock", "mock")
	mm.Queue("  padded response \n")
	b := NewBaseAgent("TestAgent", "tester", "", "", mm)

	out, err := b.InvokeModel(context.Background(), "prompt")
	require.NoError(t, err)
	assert.Equal(t, "padded response", out)

	reqs := mm.Requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, b.SystemPrompt(), reqs[0].Instructions)
}

func TestBaseAgent_InvokeModel_PropagatesError(t *testing.T) {
	mm := model.NewMockModel("mock", "mock")
	mm.FailWith(errors.New("provider down"))
	b := NewBaseAgent("TestAgent", "tester", "", "", mm)

	_, err := b.InvokeModel(context.Background(), "prompt")
	assert.Error(t, err)
}

func TestBaseAgent_InvokeVision_RequiresVisionSupport(t *testing.T) {
	noVision := &fixedInfoModel{info: model.Info{Name: "text-only", Provider: "mock"}}
	b := NewBaseAgent("TestAgent", "tester", "", "", noVision)

	_, err := b.InvokeVision(context.Background(), "look", []model.MediaRef{{URL: "https://example.com/a.jpg"}})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not support vision")
}

func TestBaseAgent_DefaultTier(t *testing.T) {
	b := NewBaseAgent("TestAgent", "tester", "", "", model.NewMockModel("mock", "mock"))
	assert.Equal(t, TierStandard, b.Tier())

	advanced := NewBaseAgent("TestAgent", "tester", "", "", model.NewMockModel("mock", "mock"),
		func(o *BaseAgentOptions) { o.Tier = TierAdvanced })
	assert.Equal(t, TierAdvanced, advanced.Tier())
}

// fixedInfoModel reports configurable model info and echoes requests.
type fixedInfoModel struct {
	info model.Info
}

func (m *fixedInfoModel) Generate(ctx context.Context, req model.Request) (model.Response, error) {
	return model.Response{Text: req.Prompt}, nil
}

func (m *fixedInfoModel) Info() model.Info { return m.info }

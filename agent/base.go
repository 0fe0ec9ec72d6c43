package agent

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/contentmesh/contentmesh/logging"
	"github.com/contentmesh/contentmesh/model"
	"github.com/contentmesh/contentmesh/tool"
)

// ErrToolNotFound is returned by UseTool for an unregistered tool name.
var ErrToolNotFound = errors.New("tool not found")

// Tier selects the model capability class an agent was configured for. The
// concrete model.Model decides what that means; the tier is carried for
// prompt framing and observability.
type Tier string

// Model tiers.
const (
	TierStandard Tier = "standard"
	TierAdvanced Tier = "advanced"
)

// BaseAgentOptions configures a BaseAgent instance.
type BaseAgentOptions struct {
	Tier   Tier
	Logger logging.Logger
	Tools  []tool.Tool
}

// BaseAgent bundles the substrate shared by every specialized agent: identity
// (role, name, expertise), system prompt assembly, the tool registry and
// model invocation. Embed it in concrete agents and supply the role-specific
// prompt fragment at construction.
//
// A BaseAgent holds no per-request state; the same instance serves every
// workflow its orchestrator runs.
type BaseAgent struct {
	name         string
	role         string
	expertise    string
	tier         Tier
	roleFragment string
	llm          model.Model
	tools        map[string]tool.Tool
	logger       logging.Logger
}

// NewBaseAgent constructs a BaseAgent.
//
// roleFragment is the role-specific system prompt override appended to the
// generic collaboration framing; it is what distinguishes one specialist
// from another at the prompt level.
func NewBaseAgent(name, role, expertise, roleFragment string, llm model.Model, optFns ...func(o *BaseAgentOptions)) BaseAgent {
	opts := BaseAgentOptions{
		Tier:   TierStandard,
		Logger: logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	b := BaseAgent{
		name:         name,
		role:         role,
		expertise:    expertise,
		tier:         opts.Tier,
		roleFragment: roleFragment,
		llm:          llm,
		tools:        make(map[string]tool.Tool),
		logger:       opts.Logger,
	}
	for _, t := range opts.Tools {
		b.RegisterTool(t)
	}
	return b
}

// Name returns the human-readable name for this agent.
func (b *BaseAgent) Name() string { return b.name }

// Role returns the agent's role label.
func (b *BaseAgent) Role() string { return b.role }

// Tier returns the configured model tier.
func (b *BaseAgent) Tier() Tier { return b.tier }

// Logger returns the agent's logger.
func (b *BaseAgent) Logger() logging.Logger { return b.logger }

// SystemPrompt assembles the system prompt: generic collaboration framing
// shared by all agents plus the role-specific fragment.
func (b *BaseAgent) SystemPrompt() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "You are %s, the %s of a multi-agent content team.\n", b.name, b.role)
	fmt.Fprintf(&sb, "Expertise: %s\n", b.expertise)
	sb.WriteString("You collaborate with other specialists; produce only your contribution, ")
	sb.WriteString("stay within your specialty and respond in the exact format requested.")
	if b.roleFragment != "" {
		sb.WriteString("\n\n")
		sb.WriteString(b.roleFragment)
	}
	return sb.String()
}

// RegisterTool adds a tool to the registry. Registration is last-wins: a
// duplicate name replaces the earlier tool and is logged at warn so the
// overwrite is observable.
func (b *BaseAgent) RegisterTool(t tool.Tool) {
	if _, exists := b.tools[t.Name()]; exists {
		b.logger.Warn("agent.tool.replaced", "agent", b.name, "tool", t.Name())
	}
	b.tools[t.Name()] = t
}

// HasTool checks if a tool is registered with the agent.
func (b *BaseAgent) HasTool(name string) bool {
	_, exists := b.tools[name]
	return exists
}

// ListTools returns the names of all registered tools.
func (b *BaseAgent) ListTools() []string {
	names := make([]string, 0, len(b.tools))
	for name := range b.tools {
		names = append(names, name)
	}
	return names
}

// UseTool invokes a registered tool by name. It fails with ErrToolNotFound
// when the name is not registered; tool execution errors pass through as
// *tool.ToolError.
func (b *BaseAgent) UseTool(ctx context.Context, name string, args map[string]any) (any, error) {
	t, exists := b.tools[name]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrToolNotFound, name)
	}
	return t.Call(ctx, args)
}

// InvokeModel performs one fresh model exchange: the agent's system prompt
// plus the given user prompt, no cross-call memory. The response text is
// returned trimmed.
func (b *BaseAgent) InvokeModel(ctx context.Context, prompt string) (string, error) {
	return b.invoke(ctx, model.Request{
		Instructions: b.SystemPrompt(),
		Prompt:       prompt,
	})
}

// InvokeVision performs one fresh exchange including image references. The
// configured model must report vision support.
func (b *BaseAgent) InvokeVision(ctx context.Context, prompt string, media []model.MediaRef) (string, error) {
	if !b.llm.Info().SupportsVision {
		return "", fmt.Errorf("model %s does not support vision", b.llm.Info().Name)
	}
	return b.invoke(ctx, model.Request{
		Instructions: b.SystemPrompt(),
		Prompt:       prompt,
		Media:        media,
	})
}

func (b *BaseAgent) invoke(ctx context.Context, req model.Request) (string, error) {
	start := time.Now()
	resp, err := b.llm.Generate(ctx, req)
	if err != nil {
		b.logger.Warn("agent.model.error",
			"agent", b.name,
			"model", b.llm.Info().Name,
			"duration_ms", time.Since(start).Milliseconds(),
			"error", err.Error(),
		)
		return "", err
	}
	b.logger.Debug("agent.model.ok",
		"agent", b.name,
		"model", b.llm.Info().Name,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return strings.TrimSpace(resp.Text), nil
}

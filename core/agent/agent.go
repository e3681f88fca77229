package agent

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mathprose/mathprose/core/extract"
	"github.com/mathprose/mathprose/core/normalize"
	"github.com/mathprose/mathprose/internal/utils"
	"github.com/mathprose/mathprose/providers/ai"
	"github.com/mathprose/mathprose/providers/render"
)

// Agent converts natural-language math queries into expression records by
// delegating interpretation to an LLM provider and recovering the structured
// payload from its reply.
type Agent struct {
	provider ai.Provider
	renderer render.Renderer
	model    string
	logger   *slog.Logger

	lastRaw string
}

// Option configures an Agent.
type Option func(*Agent)

// WithRenderer sets the renderer used to pretty-print the primary MathJS
// form. Without one, records simply carry no rendered form.
func WithRenderer(r render.Renderer) Option {
	return func(a *Agent) { a.renderer = r }
}

// WithModel overrides the provider's default model.
func WithModel(model string) Option {
	return func(a *Agent) { a.model = model }
}

// WithLogger sets the structured logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(a *Agent) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// New creates an Agent for the given provider.
func New(provider ai.Provider, opts ...Option) (*Agent, error) {
	if provider == nil {
		return nil, fmt.Errorf("provider must not be nil")
	}
	a := &Agent{
		provider: provider,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// Process runs one query through the pipeline. On success it returns the
// normalized record. When the reply carries no recoverable payload the
// returned error is a *extract.NoPayloadError holding the raw reply; the
// caller decides how to present it. Provider failures are returned wrapped.
func (a *Agent) Process(ctx context.Context, query string) (*normalize.Record, error) {
	timer := utils.NewTimer()

	resp, err := a.provider.SendMessage(ctx, ai.ChatRequest{
		Model:        a.model,
		SystemPrompt: systemInstructions,
		Messages: []ai.Message{
			{Role: ai.RoleUser, Content: buildPrompt(query)},
		},
		ResponseFormat: &ai.ResponseFormat{Type: ai.FormatJSONObject},
	})
	elapsed := timer.Stop()

	if err != nil {
		return nil, fmt.Errorf("model call failed: %w", err)
	}

	a.lastRaw = resp.Content
	a.logger.Debug("model reply received",
		"model", resp.Model,
		"elapsed", elapsed,
		"finish_reason", resp.FinishReason,
		"reply", utils.TruncateString(resp.Content, utils.DefaultMaxStringLength),
	)

	payload, err := extract.Extract(resp.Content)
	if err != nil {
		a.logger.Warn("extraction failed", "elapsed", elapsed)
		return nil, err
	}

	rec := normalize.Normalize(payload, query, elapsed, a.renderer)
	a.logger.Info("query processed",
		"mathjs", rec.MathJS,
		"alternatives", len(rec.MathJSAlternatives)+len(rec.LaTeXAlternatives),
		"rendered", rec.Rendered != "",
		"elapsed", elapsed,
	)
	return rec, nil
}

// LastRawReply returns the raw text of the most recent model reply, or ""
// when no query has been processed yet.
func (a *Agent) LastRawReply() string {
	return a.lastRaw
}

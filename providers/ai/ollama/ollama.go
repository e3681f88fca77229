package ollama

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/mathprose/mathprose/internal/utils"
	"github.com/mathprose/mathprose/providers/ai"
)

const (
	defaultBaseURL = "http://localhost:11434"
	chatEndpoint   = "/api/chat"

	// DefaultModel is used when neither the provider nor the request names one.
	DefaultModel = "llama3.1"
)

// OllamaProvider implements the Provider interface for a local Ollama server.
type OllamaProvider struct {
	baseURL string
	model   string
	client  *http.Client
}

// New creates an Ollama provider with defaults taken from the environment.
func New() *OllamaProvider {
	baseURL := os.Getenv("OLLAMA_BASE_URL")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	return &OllamaProvider{
		baseURL: baseURL,
		model:   DefaultModel,
		client:  &http.Client{},
	}
}

// WithAPIKey is a no-op: local Ollama servers are unauthenticated. It exists
// to satisfy the Provider interface.
func (p *OllamaProvider) WithAPIKey(string) ai.Provider {
	return p
}

// WithBaseURL sets the base URL of the Ollama server.
func (p *OllamaProvider) WithBaseURL(baseURL string) ai.Provider {
	p.baseURL = baseURL
	return p
}

// WithModel sets the default model used when the request does not name one.
func (p *OllamaProvider) WithModel(model string) ai.Provider {
	if model != "" {
		p.model = model
	}
	return p
}

// WithHttpClient sets a custom HTTP client.
func (p *OllamaProvider) WithHttpClient(httpClient *http.Client) ai.Provider {
	p.client = httpClient
	return p
}

// request mirrors the Ollama /api/chat request body. Streaming is always
// disabled: the agent consumes complete replies only.
type request struct {
	Model    string    `json:"model"`
	Messages []message `json:"messages"`
	Stream   bool      `json:"stream"`
	Format   string    `json:"format,omitempty"`
	Options  *options  `json:"options,omitempty"`
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type options struct {
	Temperature float32 `json:"temperature,omitempty"`
	TopP        float32 `json:"top_p,omitempty"`
	NumPredict  int     `json:"num_predict,omitempty"`
}

// response mirrors the non-streaming Ollama /api/chat response body.
type response struct {
	Model           string  `json:"model"`
	Message         message `json:"message"`
	Done            bool    `json:"done"`
	DoneReason      string  `json:"done_reason,omitempty"`
	PromptEvalCount int     `json:"prompt_eval_count,omitempty"`
	EvalCount       int     `json:"eval_count,omitempty"`
}

// SendMessage implements the Provider interface.
func (p *OllamaProvider) SendMessage(ctx context.Context, req ai.ChatRequest) (*ai.ChatResponse, error) {
	httpResponse, resp, err := utils.DoPostSync[response](ctx, p.client, p.baseURL+chatEndpoint, "", p.requestFromGeneric(req))
	if err != nil {
		return nil, err
	}

	if resp == nil {
		return nil, fmt.Errorf("empty response from Ollama API: %s", httpResponse.Status)
	}

	out := &ai.ChatResponse{
		Model:        resp.Model,
		Content:      resp.Message.Content,
		FinishReason: resp.DoneReason,
	}
	if resp.PromptEvalCount > 0 || resp.EvalCount > 0 {
		out.Usage = &ai.Usage{
			PromptTokens:     resp.PromptEvalCount,
			CompletionTokens: resp.EvalCount,
			TotalTokens:      resp.PromptEvalCount + resp.EvalCount,
		}
	}
	return out, nil
}

func (p *OllamaProvider) requestFromGeneric(req ai.ChatRequest) request {
	model := req.Model
	if model == "" {
		model = p.model
	}

	out := request{Model: model, Stream: false}

	if req.SystemPrompt != "" {
		out.Messages = append(out.Messages, message{Role: string(ai.RoleSystem), Content: req.SystemPrompt})
	}
	for _, m := range req.Messages {
		out.Messages = append(out.Messages, message{Role: string(m.Role), Content: m.Content})
	}

	if req.ResponseFormat != nil && req.ResponseFormat.Type == ai.FormatJSONObject {
		out.Format = "json"
	}

	if cfg := req.GenerationConfig; cfg != nil {
		out.Options = &options{
			Temperature: cfg.Temperature,
			TopP:        cfg.TopP,
			NumPredict:  cfg.MaxTokens,
		}
	}

	return out
}

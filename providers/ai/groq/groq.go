package groq

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/mathprose/mathprose/internal/utils"
	"github.com/mathprose/mathprose/providers/ai"
)

const (
	defaultBaseURL          = "https://api.groq.com/openai/v1"
	chatCompletionsEndpoint = "/chat/completions"

	// DefaultModel is used when neither the provider nor the request names one.
	DefaultModel = "llama-3.3-70b-versatile"
)

// GroqProvider implements the Provider interface for the Groq API.
type GroqProvider struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
}

// New creates a Groq provider with defaults taken from the environment.
func New() *GroqProvider {
	baseURL := os.Getenv("GROQ_API_BASE_URL")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	return &GroqProvider{
		apiKey:  os.Getenv("GROQ_API_KEY"),
		baseURL: baseURL,
		model:   DefaultModel,
		client:  &http.Client{},
	}
}

// WithAPIKey sets the API key for the provider.
func (p *GroqProvider) WithAPIKey(apiKey string) ai.Provider {
	p.apiKey = apiKey
	return p
}

// WithBaseURL sets the base URL for the API.
func (p *GroqProvider) WithBaseURL(baseURL string) ai.Provider {
	p.baseURL = baseURL
	return p
}

// WithModel sets the default model used when the request does not name one.
func (p *GroqProvider) WithModel(model string) ai.Provider {
	if model != "" {
		p.model = model
	}
	return p
}

// WithHttpClient sets a custom HTTP client.
func (p *GroqProvider) WithHttpClient(httpClient *http.Client) ai.Provider {
	p.client = httpClient
	return p
}

// SendMessage implements the Provider interface.
func (p *GroqProvider) SendMessage(ctx context.Context, request ai.ChatRequest) (*ai.ChatResponse, error) {
	if p.apiKey == "" {
		return nil, fmt.Errorf("GROQ_API_KEY is not set")
	}

	httpResponse, resp, err := utils.DoPostSync[response](ctx, p.client, p.baseURL+chatCompletionsEndpoint, p.apiKey, p.requestFromGeneric(request))
	if err != nil {
		return nil, err
	}

	if resp == nil {
		return nil, fmt.Errorf("empty response from Groq API: %s", httpResponse.Status)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no choices in response")
	}

	return responseToGeneric(resp), nil
}

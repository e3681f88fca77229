package groq

import "github.com/mathprose/mathprose/providers/ai"

// request mirrors the OpenAI-compatible chat-completions request body.
type request struct {
	Model          string          `json:"model"`
	Messages       []message       `json:"messages"`
	Temperature    float32         `json:"temperature,omitempty"`
	TopP           float32         `json:"top_p,omitempty"`
	MaxTokens      int             `json:"max_tokens,omitempty"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

// response mirrors the OpenAI-compatible chat-completions response body.
type response struct {
	Id      string   `json:"id"`
	Model   string   `json:"model"`
	Created int64    `json:"created"`
	Choices []choice `json:"choices"`
	Usage   *usage   `json:"usage,omitempty"`
}

type choice struct {
	Index        int             `json:"index"`
	Message      responseMessage `json:"message"`
	FinishReason string          `json:"finish_reason"`
}

type responseMessage struct {
	Role      string `json:"role"`
	Content   string `json:"content"`
	Reasoning string `json:"reasoning,omitempty"`
}

type usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// requestFromGeneric converts the generic chat request into the Groq wire
// format. The system prompt becomes a leading system message.
func (p *GroqProvider) requestFromGeneric(req ai.ChatRequest) request {
	model := req.Model
	if model == "" {
		model = p.model
	}

	out := request{Model: model}

	if req.SystemPrompt != "" {
		out.Messages = append(out.Messages, message{Role: string(ai.RoleSystem), Content: req.SystemPrompt})
	}
	for _, m := range req.Messages {
		out.Messages = append(out.Messages, message{Role: string(m.Role), Content: m.Content})
	}

	if cfg := req.GenerationConfig; cfg != nil {
		out.Temperature = cfg.Temperature
		out.TopP = cfg.TopP
		out.MaxTokens = cfg.MaxTokens
	}

	if req.ResponseFormat != nil && req.ResponseFormat.Type == ai.FormatJSONObject {
		out.ResponseFormat = &responseFormat{Type: ai.FormatJSONObject}
	}

	return out
}

// responseToGeneric converts a Groq response into the generic chat response.
// Only the first choice is consulted.
func responseToGeneric(resp *response) *ai.ChatResponse {
	first := resp.Choices[0]

	out := &ai.ChatResponse{
		Id:           resp.Id,
		Model:        resp.Model,
		Created:      resp.Created,
		Content:      first.Message.Content,
		FinishReason: first.FinishReason,
		Reasoning:    first.Message.Reasoning,
	}

	if resp.Usage != nil {
		out.Usage = &ai.Usage{
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
			TotalTokens:      resp.Usage.TotalTokens,
		}
	}

	return out
}

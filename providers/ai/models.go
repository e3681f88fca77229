package ai

/*
	##### PROVIDER INPUT #####
*/

// ChatRequest represents a request to send a chat message.
type ChatRequest struct {
	Model            string            `json:"model,omitempty"`             // Model name or identifier
	Messages         []Message         `json:"messages"`                    // Conversation messages, system prompt excluded
	SystemPrompt     string            `json:"system_prompt,omitempty"`     // Optional system prompt
	ResponseFormat   *ResponseFormat   `json:"response_format,omitempty"`   // Optional response format
	GenerationConfig *GenerationConfig `json:"generation_config,omitempty"` // Optional generation configuration
}

// Message represents a single message in a conversation.
type Message struct {
	Role    MessageRole `json:"role"`
	Content string      `json:"content,omitempty"`

	Reasoning string `json:"reasoning,omitempty"` // Chain-of-thought text for reasoning models
}

// GenerationConfig carries optional sampling parameters. Providers ignore
// fields their API does not support.
type GenerationConfig struct {
	MaxTokens   int     `json:"max_tokens,omitempty"`
	Temperature float32 `json:"temperature,omitempty"` // Sampling temperature [0..2]; lower is more deterministic
	TopP        float32 `json:"top_p,omitempty"`       // Nucleus sampling [0..1], alternative to temperature
}

// ResponseFormat hints at the shape the model should respond in.
type ResponseFormat struct {
	// Type is a format hint: "text" or "json_object". Providers that support
	// a JSON mode enable it when Type is FormatJSONObject.
	Type string `json:"type,omitempty"`
}

// Response format hints understood by the bundled providers.
const (
	FormatText       = "text"
	FormatJSONObject = "json_object"
)

/*
	##### PROVIDER OUTPUT #####
*/

// Usage reports token accounting for a completed request.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens,omitempty"`
	CompletionTokens int `json:"completion_tokens,omitempty"`
	TotalTokens      int `json:"total_tokens,omitempty"`
}

// ChatResponse represents the response from a chat completion.
type ChatResponse struct {
	Id           string `json:"id"`
	Model        string `json:"model"`
	Created      int64  `json:"created"`
	Content      string `json:"content"`
	FinishReason string `json:"finish_reason,omitempty"`
	Usage        *Usage `json:"usage,omitempty"`

	Reasoning string `json:"reasoning,omitempty"` // Chain-of-thought text, when the model exposes it
}

/*
	##### ENUMS #####
*/

// MessageRole identifies the author of a message.
type MessageRole string

const (
	RoleSystem    MessageRole = "system"
	RoleUser      MessageRole = "user"
	RoleAssistant MessageRole = "assistant"
)

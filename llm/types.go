package llm

// Roles used in chat messages.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message represents a single chat message.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// CompletionRequest is the input for all completion backends.
type CompletionRequest struct {
	// Model overrides the backend's default model.
	Model string `json:"model,omitempty"`
	// SystemPrompt is sent as the leading system message.
	SystemPrompt string `json:"system_prompt,omitempty"`
	// Messages is the conversation, normally a single user prompt.
	Messages []Message `json:"messages"`
	// Temperature controls randomness; nil means the backend default.
	Temperature *float64 `json:"temperature,omitempty"`
	// MaxTokens limits the response length. 0 means the backend default.
	MaxTokens int `json:"max_tokens,omitempty"`
}

// CompletionResponse is the output from all completion backends.
type CompletionResponse struct {
	Content string `json:"content"`
	Model   string `json:"model"`
	Usage   Usage  `json:"usage"`
}

// Usage reports token consumption.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// UserPrompt builds a request with one user message.
func UserPrompt(system, prompt string) CompletionRequest {
	return CompletionRequest{
		SystemPrompt: system,
		Messages:     []Message{{Role: RoleUser, Content: prompt}},
	}
}

// WithMessages returns the request's messages with the system prompt, if
// any, prepended.
func (r CompletionRequest) WithMessages() []Message {
	msgs := make([]Message, 0, len(r.Messages)+1)
	if r.SystemPrompt != "" {
		msgs = append(msgs, Message{Role: RoleSystem, Content: r.SystemPrompt})
	}
	return append(msgs, r.Messages...)
}

// Package llm defines the chat-completion provider interface used to expand
// transcript jargon.
//
// Backends:
//
//   - llm/openai: OpenAI chat completions via go-openai
//   - llm/ollama: a local Ollama server's /api/chat
//
// Config.Request builds a request carrying the configured model, system
// prompt, temperature and token limit; WithRetry adds backoff on retryable
// failures.
package llm

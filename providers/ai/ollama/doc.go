// Package ollama implements the ai.Provider interface against a local
// Ollama server, useful for running the agent fully offline. The base URL
// defaults to http://localhost:11434 and can be overridden through the
// OLLAMA_BASE_URL environment variable or WithBaseURL.
package ollama

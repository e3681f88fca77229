// Package groq implements the ai.Provider interface against the Groq
// inference API, which speaks the OpenAI chat-completions wire format.
// Configuration comes from the GROQ_API_KEY and GROQ_API_BASE_URL
// environment variables, overridable through the With* builder methods.
package groq

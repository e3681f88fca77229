// Package agent runs the query pipeline: build the parsing prompt, send it
// to the configured LLM provider, time the call, then extract and normalize
// the reply into a canonical expression record. Extraction failures surface
// as *extract.NoPayloadError so the interactive loop can fall back to
// showing the raw reply; they never abort the session.
package agent

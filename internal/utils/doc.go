// Package utils provides shared low-level helpers used throughout the
// mathprose internals: a synchronous JSON-over-HTTP round-trip helper for
// talking to LLM provider APIs, string truncation and JSON formatting
// utilities for log output, and a simple elapsed-time timer.
//
// Key entry points: [DoPostSync] for provider round-trips, [Timer] for
// measuring query latency, and [TruncateString] for keeping raw model
// replies out of log noise.
package utils

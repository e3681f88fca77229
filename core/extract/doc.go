// Package extract recovers the structured math payload (MathJS and LaTeX
// expression forms) from a raw language-model reply. Because models wrap
// JSON in narrative prose, markdown code fences, thinking tags, or emit it
// truncated and misquoted, extraction applies a layered recovery strategy
// (fenced-block scan, quote-aware brace matching, then regex key capture),
// each attempt paired with automatic JSON repair, before giving up with a
// [NoPayloadError] that preserves the raw reply for diagnostic display.
//
// The main entry point is [Extract]. Every strategy is pure and total: a
// malformed fragment falls through to the next strategy instead of aborting.
package extract

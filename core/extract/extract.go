package extract

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/kaptinlin/jsonrepair"
)

// NoPayloadError reports that no strategy recovered a usable payload. Raw
// carries the model reply unmodified so callers can show it verbatim as a
// last-resort fallback.
type NoPayloadError struct {
	Raw string
}

func (e *NoPayloadError) Error() string {
	return "no structured payload found in model reply"
}

// strategy attempts to recover a payload from cleaned reply text. ok is true
// only when the payload carries at least one of mathjs/latex.
type strategy func(text string) (Payload, bool)

// Extract recovers the structured payload from a raw model reply. Strategies
// run in strict order (fenced code blocks, quote-aware brace matching, then
// regex key capture) and the first success wins. Thinking tags are stripped
// before any strategy runs. On total failure the returned error is a
// *NoPayloadError holding raw untouched.
func Extract(raw string) (Payload, error) {
	cleaned := stripThinking(raw)

	for _, s := range []strategy{fromFencedBlocks, fromBraceScan, fromKeyPatterns} {
		if p, ok := s(cleaned); ok {
			return p, nil
		}
	}

	return Payload{}, &NoPayloadError{Raw: raw}
}

// stripThinking removes <think>...</think> blocks that reasoning models
// prepend to their answers. An unterminated block swallows the rest of the
// text, matching how such replies are truncated mid-thought.
func stripThinking(s string) string {
	for {
		start := strings.Index(s, "<think>")
		if start == -1 {
			break
		}
		end := strings.Index(s, "</think>")
		if end == -1 {
			s = s[:start]
			break
		}
		s = s[:start] + s[end+len("</think>"):]
	}
	return strings.TrimSpace(s)
}

// fromFencedBlocks tries every markdown code fence region in order and
// parses the first one that yields a payload.
func fromFencedBlocks(text string) (Payload, bool) {
	for _, region := range fencedRegions(text) {
		if p, ok := parsePayload(region); ok {
			return p, true
		}
	}
	return Payload{}, false
}

// fencedRegions returns the interiors of ``` fenced blocks in order of
// appearance. An optional language tag on the opening fence line (```json)
// is dropped. A fence left unclosed by a truncated reply contributes
// everything up to the end of the text.
func fencedRegions(s string) []string {
	var regions []string
	for {
		start := strings.Index(s, "```")
		if start == -1 {
			break
		}
		rest := s[start+3:]

		if nl := strings.IndexByte(rest, '\n'); nl >= 0 && isFenceTag(rest[:nl]) {
			rest = rest[nl+1:]
		}

		end := strings.Index(rest, "```")
		if end == -1 {
			if body := strings.TrimSpace(rest); body != "" {
				regions = append(regions, body)
			}
			break
		}

		if body := strings.TrimSpace(rest[:end]); body != "" {
			regions = append(regions, body)
		}
		s = rest[end+3:]
	}
	return regions
}

// isFenceTag reports whether the text between the opening backticks and the
// first newline looks like a fence language tag rather than content.
func isFenceTag(tag string) bool {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return true
	}
	for _, r := range tag {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') && (r < '0' || r > '9') {
			return false
		}
	}
	return true
}

// fromBraceScan walks the text for brace-delimited fragments, matching the
// first { to its closing } with depth counting that ignores braces inside
// quoted strings. Fragments are parsed in order of appearance; an
// unterminated fragment at the end of a truncated reply is still attempted,
// relying on repair to close it.
func fromBraceScan(text string) (Payload, bool) {
	for i := 0; i < len(text); i++ {
		if text[i] != '{' {
			continue
		}
		end := matchingBrace(text, i)
		if end == -1 {
			p, ok := parsePayload(text[i:])
			return p, ok
		}
		if p, ok := parsePayload(text[i : end+1]); ok {
			return p, true
		}
		i = end
	}
	return Payload{}, false
}

// matchingBrace returns the index of the } closing the { at start, or -1
// when the fragment never closes. Braces inside double-quoted strings do not
// affect the depth count; backslash escapes inside strings are honored.
func matchingBrace(s string, start int) int {
	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// keyPatterns holds the capture expressions for one payload key. Attempted
// in order: list, delimited scalar (tolerates unescaped quotes inside the
// value because the match is anchored on the , } or newline that follows),
// then plain scalar (no delimiter required, value free of quotes).
type keyPatterns struct {
	list      *regexp.Regexp
	delimited *regexp.Regexp
	plain     *regexp.Regexp
}

func newKeyPatterns(key string) keyPatterns {
	return keyPatterns{
		list:      regexp.MustCompile(`["']?` + key + `["']?\s*:\s*(\[[^\]]*\])`),
		delimited: regexp.MustCompile(`["']?` + key + `["']?\s*:\s*["'](.+?)["']\s*[,}\n]`),
		plain:     regexp.MustCompile(`["']?` + key + `["']?\s*:\s*["']([^"'\n]*)["']`),
	}
}

var (
	mathjsPatterns = newKeyPatterns("mathjs")
	latexPatterns  = newKeyPatterns("latex")
)

// fromKeyPatterns independently hunts for the mathjs and latex keys without
// requiring the surrounding text to be valid JSON. It tolerates single
// quotes, trailing commas, and unescaped quotes inside values. List values
// are captured as sequences.
func fromKeyPatterns(text string) (Payload, bool) {
	p := Payload{
		MathJS: captureValue(text, mathjsPatterns),
		LaTeX:  captureValue(text, latexPatterns),
	}
	return p, !p.Empty()
}

func captureValue(text string, patterns keyPatterns) Value {
	if m := patterns.list.FindStringSubmatch(text); m != nil {
		if v, ok := parseListFragment(m[1]); ok {
			return v
		}
	}
	if m := patterns.delimited.FindStringSubmatch(text); m != nil && plausibleScalar(m[1]) {
		return NewValue(unescapeCaptured(m[1]))
	}
	if m := patterns.plain.FindStringSubmatch(text); m != nil {
		return NewValue(unescapeCaptured(m[1]))
	}
	return Value{}
}

// plausibleScalar rejects delimited captures that swallowed a key boundary,
// which happens when the real value is empty and the lazy match runs on to
// the next key. Expression strings never contain a quote-colon sequence.
func plausibleScalar(s string) bool {
	return !strings.Contains(s, `":`) && !strings.Contains(s, `':`)
}

// parseListFragment parses a bracketed list captured by regex, repairing
// single quotes and trailing commas when strict parsing fails.
func parseListFragment(fragment string) (Value, bool) {
	var v Value
	if err := json.Unmarshal([]byte(fragment), &v); err == nil && !v.Empty() {
		return v, true
	}
	repaired, err := jsonrepair.JSONRepair(fragment)
	if err != nil {
		return Value{}, false
	}
	v = Value{}
	if err := json.Unmarshal([]byte(repaired), &v); err != nil || v.Empty() {
		return Value{}, false
	}
	return v, true
}

// unescapeCaptured resolves JSON string escapes in a regex-captured value
// (so \\frac comes back as \frac). Values with unescaped quotes fail strict
// unescaping and are kept as captured.
func unescapeCaptured(raw string) string {
	var s string
	if err := json.Unmarshal([]byte(`"`+raw+`"`), &s); err == nil {
		return s
	}
	return raw
}

// parsePayload strict-parses a candidate fragment, retrying once through
// jsonrepair. ok requires at least one of mathjs/latex to survive.
func parsePayload(fragment string) (Payload, bool) {
	var p Payload
	if err := json.Unmarshal([]byte(fragment), &p); err == nil {
		return p, !p.Empty()
	}

	repaired, err := jsonrepair.JSONRepair(fragment)
	if err != nil {
		return Payload{}, false
	}
	p = Payload{}
	if err := json.Unmarshal([]byte(repaired), &p); err != nil {
		return Payload{}, false
	}
	return p, !p.Empty()
}

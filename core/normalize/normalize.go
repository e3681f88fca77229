package normalize

import (
	"fmt"
	"strings"
	"time"

	"github.com/mathprose/mathprose/core/extract"
	"github.com/mathprose/mathprose/providers/render"
)

// Record is the canonical result of one query, immutable once built.
// Rendered is empty when the renderer failed or was absent; every other
// field is always populated from the payload and call context.
type Record struct {
	Query              string
	MathJS             string
	MathJSAlternatives []string
	LaTeX              string
	LaTeXAlternatives  []string
	Rendered           string
	Elapsed            time.Duration
}

// Normalize resolves payload into a Record. Each payload value becomes a
// primary form plus ordered alternatives; every form is trimmed of
// surrounding whitespace and matched outer quotes. The renderer runs on the
// primary MathJS form; any renderer error (or a nil renderer) leaves
// Rendered empty without failing normalization.
//
// Normalize itself never fails: callers invoke it only after extraction
// succeeded, so at least one of the primaries is non-empty.
func Normalize(payload extract.Payload, query string, elapsed time.Duration, renderer render.Renderer) *Record {
	rec := &Record{
		Query:   query,
		Elapsed: elapsed,
	}

	rec.MathJS, rec.MathJSAlternatives = splitForms(payload.MathJS)
	rec.LaTeX, rec.LaTeXAlternatives = splitForms(payload.LaTeX)

	if renderer != nil && rec.MathJS != "" {
		if out, err := renderer.Render(rec.MathJS); err == nil {
			rec.Rendered = out
		}
	}

	return rec
}

// splitForms resolves a one-or-many value into primary + alternatives,
// preserving order.
func splitForms(v extract.Value) (string, []string) {
	forms := v.Forms()
	if len(forms) == 0 {
		return "", nil
	}

	primary := Clean(forms[0])
	var alternatives []string
	for _, f := range forms[1:] {
		alternatives = append(alternatives, Clean(f))
	}
	return primary, alternatives
}

// Clean trims surrounding whitespace and matched outer quote characters
// from an extracted string.
func Clean(s string) string {
	s = strings.TrimSpace(s)
	for len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		if (first == '"' && last == '"') ||
			(first == '\'' && last == '\'') ||
			(first == '`' && last == '`') {
			s = strings.TrimSpace(s[1 : len(s)-1])
			continue
		}
		break
	}
	return s
}

// Display formats the record for terminal output and for the human-readable
// section of saved expression files.
func (r *Record) Display() string {
	lines := []string{"Mathematical Expression:"}

	if r.Query != "" {
		lines = append(lines, fmt.Sprintf("Query: %s", r.Query))
	}

	lines = append(lines,
		fmt.Sprintf("MathJS: %s", r.MathJS),
		fmt.Sprintf("LaTeX:  %s", r.LaTeX),
	)

	for _, alt := range r.MathJSAlternatives {
		lines = append(lines, fmt.Sprintf("MathJS (alt): %s", alt))
	}
	for _, alt := range r.LaTeXAlternatives {
		lines = append(lines, fmt.Sprintf("LaTeX (alt):  %s", alt))
	}

	if r.Rendered != "" {
		lines = append(lines, "", "Rendered form:", r.Rendered)
	}

	if r.Elapsed > 0 {
		lines = append(lines, "", fmt.Sprintf("Response time: %.3f seconds", r.Elapsed.Seconds()))
	}

	return strings.Join(lines, "\n")
}

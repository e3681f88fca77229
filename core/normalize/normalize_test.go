package normalize

import (
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/mathprose/mathprose/core/extract"
	"github.com/mathprose/mathprose/providers/render"
)

func failingRenderer() render.Renderer {
	return render.FuncRenderer(func(string) (string, error) {
		return "", errors.New("render exploded")
	})
}

func echoRenderer() render.Renderer {
	return render.FuncRenderer(func(expression string) (string, error) {
		return "pretty(" + expression + ")", nil
	})
}

func TestNormalize_SingleString(t *testing.T) {
	payload := extract.Payload{
		MathJS: extract.NewValue("  x + y  "),
		LaTeX:  extract.NewValue("x + y"),
	}

	rec := Normalize(payload, "sum of x and y", 1200*time.Millisecond, nil)

	if rec.MathJS != "x + y" {
		t.Errorf("MathJS = %q, want trimmed %q", rec.MathJS, "x + y")
	}
	if len(rec.MathJSAlternatives) != 0 {
		t.Errorf("MathJSAlternatives = %v, want empty", rec.MathJSAlternatives)
	}
	if rec.Query != "sum of x and y" {
		t.Errorf("Query = %q, want preserved verbatim", rec.Query)
	}
	if rec.Elapsed != 1200*time.Millisecond {
		t.Errorf("Elapsed = %v, want 1.2s", rec.Elapsed)
	}
}

func TestNormalize_ListOrderPreserved(t *testing.T) {
	payload := extract.Payload{
		MathJS: extract.NewValue("s0", "s1", "s2", "s3"),
	}

	rec := Normalize(payload, "q", 0, nil)

	if rec.MathJS != "s0" {
		t.Errorf("MathJS = %q, want first element", rec.MathJS)
	}
	if want := []string{"s1", "s2", "s3"}; !reflect.DeepEqual(rec.MathJSAlternatives, want) {
		t.Errorf("MathJSAlternatives = %v, want %v in order", rec.MathJSAlternatives, want)
	}
}

func TestNormalize_FromExtractedReply(t *testing.T) {
	payload, err := extract.Extract(`{"mathjs": ["(x^2 + y^2)/1000", "((x+y)^2)/1000"], "latex": ["\\frac{x^2+y^2}{1000}"]}`)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}

	rec := Normalize(payload, "scaled sum of squares", 0, nil)

	if rec.MathJS != "(x^2 + y^2)/1000" {
		t.Errorf("MathJS = %q, want %q", rec.MathJS, "(x^2 + y^2)/1000")
	}
	if len(rec.MathJSAlternatives) != 1 || rec.MathJSAlternatives[0] != "((x+y)^2)/1000" {
		t.Errorf("MathJSAlternatives = %v, want one alternative", rec.MathJSAlternatives)
	}
	if rec.LaTeX != `\frac{x^2+y^2}{1000}` {
		t.Errorf("LaTeX = %q, want %q", rec.LaTeX, `\frac{x^2+y^2}{1000}`)
	}
	if len(rec.LaTeXAlternatives) != 0 {
		t.Errorf("LaTeXAlternatives = %v, want none", rec.LaTeXAlternatives)
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	payload := extract.Payload{
		MathJS: extract.NewValue("x^2"),
		LaTeX:  extract.NewValue("x^2"),
	}

	first := Normalize(payload, "x squared", time.Second, echoRenderer())
	second := Normalize(payload, "x squared", time.Second, echoRenderer())

	if !reflect.DeepEqual(first, second) {
		t.Errorf("Normalize() not idempotent:\nfirst  %+v\nsecond %+v", first, second)
	}
}

func TestNormalize_RenderFailureIsolated(t *testing.T) {
	payload := extract.Payload{
		MathJS: extract.NewValue("x + y"),
		LaTeX:  extract.NewValue("x + y"),
	}

	rec := Normalize(payload, "q", time.Second, failingRenderer())

	if rec.Rendered != "" {
		t.Errorf("Rendered = %q, want absent on renderer failure", rec.Rendered)
	}
	if rec.MathJS != "x + y" || rec.LaTeX != "x + y" {
		t.Errorf("other fields must survive renderer failure, got %+v", rec)
	}
}

func TestNormalize_RendererInvokedOnPrimary(t *testing.T) {
	payload := extract.Payload{
		MathJS: extract.NewValue("a+b", "b+a"),
	}

	rec := Normalize(payload, "q", 0, echoRenderer())

	if rec.Rendered != "pretty(a+b)" {
		t.Errorf("Rendered = %q, want renderer output for the primary form", rec.Rendered)
	}
}

func TestNormalize_MissingKeyBecomesEmptyPrimary(t *testing.T) {
	payload := extract.Payload{
		MathJS: extract.NewValue("x^2"),
	}

	rec := Normalize(payload, "q", 0, nil)

	if rec.LaTeX != "" {
		t.Errorf("LaTeX = %q, want empty for absent key", rec.LaTeX)
	}
	if rec.LaTeXAlternatives != nil {
		t.Errorf("LaTeXAlternatives = %v, want nil", rec.LaTeXAlternatives)
	}
}

func TestClean(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "whitespace", input: "  x + y \n", want: "x + y"},
		{name: "double quotes", input: `"x^2"`, want: "x^2"},
		{name: "single quotes", input: `'x^2'`, want: "x^2"},
		{name: "backticks", input: "`x^2`", want: "x^2"},
		{name: "quotes inside kept", input: `f("x")`, want: `f("x")`},
		{name: "mismatched quotes kept", input: `"x'`, want: `"x'`},
		{name: "nested quotes and space", input: ` "'x'" `, want: "x"},
		{name: "empty", input: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Clean(tt.input); got != tt.want {
				t.Errorf("Clean(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestRecord_Display(t *testing.T) {
	rec := &Record{
		Query:              "scaled sum",
		MathJS:             "(x^2 + y^2)/1000",
		MathJSAlternatives: []string{"((x+y)^2)/1000"},
		LaTeX:              `\frac{x^2+y^2}{1000}`,
		Rendered:           "(x ^ 2 + y ^ 2) / 1000",
		Elapsed:            1234 * time.Millisecond,
	}

	out := rec.Display()

	for _, want := range []string{
		"Query: scaled sum",
		"MathJS: (x^2 + y^2)/1000",
		`LaTeX:  \frac{x^2+y^2}{1000}`,
		"MathJS (alt): ((x+y)^2)/1000",
		"Rendered form:",
		"Response time: 1.234 seconds",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Display() missing %q:\n%s", want, out)
		}
	}
}

func TestRecord_DisplayOmitsAbsentRendered(t *testing.T) {
	rec := &Record{Query: "q", MathJS: "x", LaTeX: "x"}

	if strings.Contains(rec.Display(), "Rendered form:") {
		t.Errorf("Display() must omit the rendered section when absent:\n%s", rec.Display())
	}
}

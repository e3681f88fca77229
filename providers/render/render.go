package render

import (
	"errors"
	"fmt"
	"strings"

	"github.com/expr-lang/expr/parser"
)

// ErrInvalidExpression reports that the expression could not be parsed.
var ErrInvalidExpression = errors.New("invalid expression")

// Renderer produces a display rendition of an expression string. A non-nil
// error means no rendition is available; it never carries partial output.
type Renderer interface {
	Render(expression string) (string, error)
}

// FuncRenderer adapts a plain function to the Renderer interface.
type FuncRenderer func(expression string) (string, error)

// Render calls f.
func (f FuncRenderer) Render(expression string) (string, error) {
	return f(expression)
}

// ExprRenderer renders MathJS expressions by parsing them with the expr
// language parser and printing the resulting AST in its canonical form.
// Identifiers and function names stay unresolved, so free variables like x
// and calls like sqrt(x) or derivative(x^2, x) render without an
// environment.
type ExprRenderer struct{}

// NewExprRenderer creates an ExprRenderer.
func NewExprRenderer() *ExprRenderer {
	return &ExprRenderer{}
}

// Render parses expression and returns the canonical printed form of its
// AST. Returns an error wrapping [ErrInvalidExpression] when the expression
// is empty or fails to parse.
func (r *ExprRenderer) Render(expression string) (string, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return "", fmt.Errorf("%w: empty expression", ErrInvalidExpression)
	}

	tree, err := parser.Parse(expression)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidExpression, err)
	}

	return tree.Node.String(), nil
}

// Package render turns a MathJS expression string into a pretty-printed
// textual form by parsing it into an AST and re-serialising the canonical
// shape. Rendering is strictly best-effort: callers treat any error as "no
// rendered form available" and carry on.
package render

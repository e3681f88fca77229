package agent

import "fmt"

// systemInstructions steer the model towards emitting only the JSON payload.
// Reasoning models still leak thinking text despite the instruction, which
// is why extraction stays defensive.
const systemInstructions = `You are a math expression parser that converts natural language to mathematical expressions.

Given a natural language input describing a mathematical expression, you must:
1. Understand what mathematical operation/expression the user is describing
2. Output ONLY a JSON object with two fields:
   - mathjs: the expression in MathJS format
   - latex: the same expression in LaTeX format

IMPORTANT: DO NOT include any reasoning, thinking steps, or explanations in your response.
DO NOT include <think> tags or any other tags.
Just return the raw JSON object and nothing else.

Example input: "I want the summation of x and y"
Example output: {"mathjs": "x + y", "latex": "x + y"}

Example input: "What is the square root of x squared plus y squared"
Example output: {"mathjs": "sqrt(x^2 + y^2)", "latex": "\\sqrt{x^2 + y^2}"}

Example input: "Calculate the derivative of x squared"
Example output: {"mathjs": "derivative(x^2, x)", "latex": "\\frac{d}{dx}(x^2)"}

If several equivalent spellings exist, you may answer with a list of strings
per field, most natural form first.`

// buildPrompt wraps the user query with an explicit JSON-only reminder.
func buildPrompt(query string) string {
	return fmt.Sprintf(`Convert this math expression to MathJS and LaTeX formats:
%q

Return ONLY a JSON object with mathjs and latex fields, without any explanations or thinking steps.`, query)
}

package extract

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Value holds one expression in one or more equivalent forms. Models answer
// either with a single string ("mathjs": "x + y") or with an ordered list of
// alternative spellings ("mathjs": ["x + y", "y + x"]); Value absorbs both
// shapes at unmarshal time so downstream code never re-inspects them.
type Value struct {
	forms []string
}

// NewValue builds a Value from forms in order.
func NewValue(forms ...string) Value {
	return Value{forms: forms}
}

// Empty reports whether the value carries no usable form, i.e. every form is
// blank after trimming.
func (v Value) Empty() bool {
	for _, f := range v.forms {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

// Primary returns the first form, or "" when the value is unset.
func (v Value) Primary() string {
	if len(v.forms) == 0 {
		return ""
	}
	return v.forms[0]
}

// Alternatives returns every form beyond the primary, in original order.
func (v Value) Alternatives() []string {
	if len(v.forms) <= 1 {
		return nil
	}
	return append([]string{}, v.forms[1:]...)
}

// Forms returns all forms, primary first, in original order.
func (v Value) Forms() []string {
	return append([]string{}, v.forms...)
}

// UnmarshalJSON accepts a JSON string, a JSON array of scalars, or a bare
// scalar, coercing everything to string forms in order.
func (v *Value) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		v.forms = []string{single}
		return nil
	}

	var list []any
	if err := json.Unmarshal(data, &list); err == nil {
		forms := make([]string, 0, len(list))
		for _, item := range list {
			s, err := scalarToString(item)
			if err != nil {
				return fmt.Errorf("unsupported list element: %w", err)
			}
			forms = append(forms, s)
		}
		v.forms = forms
		return nil
	}

	var scalar any
	if err := json.Unmarshal(data, &scalar); err != nil {
		return err
	}
	s, err := scalarToString(scalar)
	if err != nil {
		return err
	}
	v.forms = []string{s}
	return nil
}

// MarshalJSON emits a plain string for a single form and an array otherwise,
// mirroring the shapes accepted by UnmarshalJSON.
func (v Value) MarshalJSON() ([]byte, error) {
	switch len(v.forms) {
	case 0:
		return json.Marshal("")
	case 1:
		return json.Marshal(v.forms[0])
	default:
		return json.Marshal(v.forms)
	}
}

func scalarToString(item any) (string, error) {
	switch t := item.(type) {
	case string:
		return t, nil
	case nil:
		return "", nil
	case float64, bool:
		return fmt.Sprintf("%v", t), nil
	default:
		return "", fmt.Errorf("value of type %T is not a scalar", item)
	}
}

// Payload is the candidate structure recovered from a model reply: each key
// is either a single expression string or an ordered list of alternative
// forms. It is transient; the normalizer resolves it into a fixed record.
type Payload struct {
	MathJS Value `json:"mathjs"`
	LaTeX  Value `json:"latex"`
}

// Empty reports whether the payload supplies neither a mathjs nor a latex
// form. An empty payload is never a successful extraction.
func (p Payload) Empty() bool {
	return p.MathJS.Empty() && p.LaTeX.Empty()
}

package formatter

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/mcncl/jqk/internal/models"
)

// Formatter is responsible for producing the literal text of JSON scalars
type Formatter struct{}

// NewFormatter creates a new Formatter instance
func NewFormatter() *Formatter {
	return &Formatter{}
}

// Literal returns the text a scalar is printed as: strings double-quoted
// with JSON escaping, numbers exactly as they appeared in the input, and the
// true/false/null literals.
func (f *Formatter) Literal(value models.Value) (string, error) {
	switch v := value.(type) {
	case models.String:
		return QuoteString(string(v)), nil
	case models.Number:
		return string(v), nil
	case models.Bool:
		if v {
			return "true", nil
		}
		return "false", nil
	case models.Null, nil:
		return "null", nil
	case models.Array, *models.Object:
		return "", fmt.Errorf("cannot format %s as a scalar literal", value.Kind())
	default:
		return "", fmt.Errorf("unknown JSON value %T", value)
	}
}

// QuoteString returns s as a JSON string literal. HTML characters are left
// alone so that the output reads the same as the input.
func QuoteString(s string) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	// Encoding a string cannot fail.
	_ = enc.Encode(s)
	return string(bytes.TrimSuffix(buf.Bytes(), []byte{'\n'}))
}

package parser

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	stderrors "errors"                     // Standard errors package
	"github.com/mcncl/jqk/internal/errors" // Custom errors package
	"github.com/mcncl/jqk/internal/models"
)

// Parse reads a single JSON document from reader. The whole input is read
// into memory before decoding.
func Parse(reader io.Reader) (models.Value, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, errors.NewInputError("failed to read input", err)
	}
	return ParseBytes(data)
}

// ParseString parses JSON from a string
func ParseString(jsonString string) (models.Value, error) {
	return ParseBytes([]byte(jsonString))
}

// ParseBytes decodes exactly one JSON document from data. Object members
// keep their input order. Anything but whitespace after the document is an
// error.
func ParseBytes(data []byte) (models.Value, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.NewParsingError("input is empty", errors.ErrEmptyInput)
	}

	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber() // keep the literal text of numbers

	root, err := parseValue(decoder)
	if err != nil {
		return nil, wrapDecodeError(data, decoder, err)
	}

	// Only whitespace may follow the document.
	if tok, err := decoder.Token(); err == nil {
		return nil, errors.NewParsingError(
			fmt.Sprintf("unexpected %s after JSON document at %s", describeToken(tok), position(data, decoder.InputOffset())),
			errors.ErrMultipleJSON,
		)
	} else if !stderrors.Is(err, io.EOF) {
		return nil, wrapDecodeError(data, decoder, err)
	}

	return root, nil
}

// ParseFile parses JSON from a file path
func ParseFile(filePath string) (models.Value, error) {
	data, err := ReadFile(filePath)
	if err != nil {
		return nil, err
	}
	return ParseBytes(data)
}

// ReadFile reads the whole file at filePath, mapping failures to input
// errors.
func ReadFile(filePath string) ([]byte, error) {
	if strings.TrimSpace(filePath) == "" {
		return nil, errors.NewInputError("file path is empty", errors.ErrInvalidFilePath)
	}
	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewInputError(
				fmt.Sprintf("file '%s' not found", filePath),
				errors.ErrFileNotFound,
			)
		}
		return nil, errors.NewInputError(
			fmt.Sprintf("failed to read file '%s'", filePath),
			err,
		)
	}
	return data, nil
}

func parseValue(decoder *json.Decoder) (models.Value, error) {
	tok, err := decoder.Token()
	if err != nil {
		return nil, err
	}
	return valueFromToken(decoder, tok)
}

func valueFromToken(decoder *json.Decoder, tok json.Token) (models.Value, error) {
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return parseObject(decoder)
		case '[':
			return parseArray(decoder)
		}
		return nil, fmt.Errorf("unexpected %q", rune(t))
	case string:
		return models.String(t), nil
	case json.Number:
		return models.Number(t), nil
	case bool:
		return models.Bool(t), nil
	case nil:
		return models.Null{}, nil
	default:
		return nil, fmt.Errorf("unexpected token %v", tok)
	}
}

func parseObject(decoder *json.Decoder) (models.Value, error) {
	obj := &models.Object{}
	// A repeated key replaces the earlier value in the earlier position.
	index := make(map[string]int)
	for decoder.More() {
		tok, err := decoder.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("object key must be a string, got %s", describeToken(tok))
		}
		value, err := parseValue(decoder)
		if err != nil {
			return nil, err
		}
		if i, seen := index[key]; seen {
			obj.Members[i].Value = value
			continue
		}
		index[key] = len(obj.Members)
		obj.Members = append(obj.Members, models.Member{Key: key, Value: value})
	}
	if err := expectDelim(decoder, '}'); err != nil {
		return nil, err
	}
	return obj, nil
}

func parseArray(decoder *json.Decoder) (models.Value, error) {
	arr := models.Array{}
	for decoder.More() {
		value, err := parseValue(decoder)
		if err != nil {
			return nil, err
		}
		arr = append(arr, value)
	}
	if err := expectDelim(decoder, ']'); err != nil {
		return nil, err
	}
	return arr, nil
}

func expectDelim(decoder *json.Decoder, want json.Delim) error {
	tok, err := decoder.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return fmt.Errorf("expected %q, got %s", rune(want), describeToken(tok))
	}
	return nil
}

// wrapDecodeError turns a decoder failure into a parsing error whose message
// carries the line and column of the failure. SyntaxError.Offset is relative
// to the value being decoded when it comes from Token, so the position is
// taken from the decoder instead: the offending byte for structural errors,
// the start of the offending value otherwise.
func wrapDecodeError(data []byte, decoder *json.Decoder, err error) error {
	var syntaxError *json.SyntaxError
	switch {
	case stderrors.As(err, &syntaxError):
		return errors.NewParsingError(
			fmt.Sprintf("%s at %s", syntaxError.Error(), position(data, decoder.InputOffset())),
			errors.ErrInvalidJSON,
		)
	case stderrors.Is(err, io.EOF), stderrors.Is(err, io.ErrUnexpectedEOF):
		return errors.NewParsingError(
			fmt.Sprintf("unexpected end of input at %s", position(data, int64(len(data)))),
			errors.ErrUnexpectedEOF,
		)
	default:
		return errors.NewParsingError(
			fmt.Sprintf("%v at %s", err, position(data, decoder.InputOffset())),
			errors.ErrInvalidJSON,
		)
	}
}

// position renders a byte offset as a 1-based line and column.
func position(data []byte, offset int64) string {
	if offset > int64(len(data)) {
		offset = int64(len(data))
	}
	if offset < 0 {
		offset = 0
	}
	prefix := data[:offset]
	line := bytes.Count(prefix, []byte{'\n'}) + 1
	column := int(offset) - bytes.LastIndexByte(prefix, '\n')
	return fmt.Sprintf("line %d, column %d", line, column)
}

func describeToken(tok json.Token) string {
	switch t := tok.(type) {
	case json.Delim:
		return fmt.Sprintf("%q", rune(t))
	case string:
		return fmt.Sprintf("string %q", t)
	case json.Number:
		return fmt.Sprintf("number %s", t.String())
	case bool:
		return fmt.Sprintf("boolean %t", t)
	case nil:
		return "null"
	default:
		return fmt.Sprintf("%v", t)
	}
}

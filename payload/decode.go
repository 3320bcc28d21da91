package payload

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotTabular = errors.New("result is not a recognised table layout")
)

type envelope struct {
	Type         string          `json:"type"`
	Result       json.RawMessage `json:"result"`
	Error        bool            `json:"error"`
	Status       string          `json:"status"`
	ErrorMessage string          `json:"error_message"`
}

// Decode turns one response body into a Response. Bodies that are not a
// JSON object, and known types whose result does not have the expected
// shape, are errors. Unknown type tags are not.
func Decode(body []byte) (Response, error) {
	var wire envelope
	err := json.Unmarshal(body, &wire)
	if err != nil {
		return nil, fmt.Errorf("response payload: %w", err)
	}
	if wire.Error {
		return failure(wire), nil
	}
	switch {
	case wire.Type == TypeString:
		return decodeText(wire.Result)
	case wire.Type == TypeHTML:
		text, err := resultString(wire)
		if err != nil {
			return nil, err
		}
		return Markup{HTML: text}, nil
	case wire.Type == TypePNG:
		return decodeImage(wire)
	case IsTableType(wire.Type):
		return decodeTable(wire.Type, wire.Result)
	}
	return Unknown{Tag: wire.Type, Raw: wire.Result}, nil
}

// IsTableType matches pandas style tags like "pd.DataFrame".
func IsTableType(tag string) bool {
	return strings.Contains(tag, "DataFrame")
}

func failure(wire envelope) Failure {
	switch {
	case len(strings.TrimSpace(wire.Status)) > 0:
		return Failure{Status: wire.Status}
	case len(strings.TrimSpace(wire.ErrorMessage)) > 0:
		return Failure{Status: wire.ErrorMessage}
	}
	return Unsuccessful()
}

func decodeText(raw json.RawMessage) (Response, error) {
	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		return Text{Value: text}, nil
	}
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return Text{}, nil
	}
	// numbers and other scalars come through as their JSON text
	return Text{Value: string(trimmed)}, nil
}

func resultString(wire envelope) (string, error) {
	var text string
	err := json.Unmarshal(wire.Result, &text)
	if err != nil {
		return "", fmt.Errorf("%s result: %w", wire.Type, err)
	}
	return text, nil
}

func decodeImage(wire envelope) (Response, error) {
	encoded, err := resultString(wire)
	if err != nil {
		return nil, err
	}
	if strings.HasPrefix(encoded, "data:") {
		if comma := strings.IndexByte(encoded, ','); comma >= 0 {
			encoded = encoded[comma+1:]
		}
	}
	encoded = strings.Join(strings.Fields(encoded), "")
	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("png result: %w", err)
	}
	return Image{Format: TypePNG, Data: data}, nil
}

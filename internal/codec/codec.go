package codec

import (
	"encoding/json"
	"fmt"
)

// Codec converts values to and from their wire body text.
type Codec interface {
	Marshal(v any) (string, error)
	Unmarshal(text string, v any) error
}

// JSON is the default codec. Request and response bodies are exchanged as
// application/json.
type JSON struct{}

func (JSON) Marshal(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("codec: marshal: %w", err)
	}
	return string(b), nil
}

func (JSON) Unmarshal(text string, v any) error {
	if err := json.Unmarshal([]byte(text), v); err != nil {
		return fmt.Errorf("codec: unmarshal: %w", err)
	}
	return nil
}

// MimeJSON is the mime type attached to serialized request bodies.
const MimeJSON = "application/json"

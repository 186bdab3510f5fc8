package services

import (
	"context"
	"encoding/json"
	"fmt"
)

const msgNoResponse = "(no response)"

// Schema describes the shape of a structured generation request. Schema
// is a JSON schema object; Required lists top-level fields the result
// must carry.
type Schema struct {
	Name     string
	Schema   map[string]interface{}
	Required []string
}

// GenService defines the interface for interacting with a generation
// backend. Image results are data URIs.
type GenService interface {
	// InitModel initializes the model on startup
	InitModel(ctx context.Context, modelName string) error

	// GenerateText generates free-form prose from the prompt
	GenerateText(ctx context.Context, prompt string) (string, error)

	// GenerateStructured generates JSON conforming to the schema.
	// Results missing a required field are rejected.
	GenerateStructured(ctx context.Context, prompt string, schema Schema) (json.RawMessage, error)

	// GenerateImage generates an image for the prompt and returns it
	// as a data URI
	GenerateImage(ctx context.Context, prompt string) (string, error)
}

// validateStructured parses raw as a JSON object and checks the schema's
// required top-level fields are present.
func validateStructured(raw []byte, schema Schema) (json.RawMessage, error) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, fmt.Errorf("structured result is not a JSON object: %w", err)
	}
	for _, field := range schema.Required {
		if _, ok := obj[field]; !ok {
			return nil, fmt.Errorf("structured result missing required field %q", field)
		}
	}
	return json.RawMessage(raw), nil
}

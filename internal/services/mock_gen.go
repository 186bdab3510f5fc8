package services

import (
	"context"
	"encoding/json"
	"sync"
)

// MockGenService is a mock implementation of GenService for testing. It
// also serves as the offline provider for local development.
type MockGenService struct {
	InitModelFunc          func(ctx context.Context, modelName string) error
	GenerateTextFunc       func(ctx context.Context, prompt string) (string, error)
	GenerateStructuredFunc func(ctx context.Context, prompt string, schema Schema) (json.RawMessage, error)
	GenerateImageFunc      func(ctx context.Context, prompt string) (string, error)

	// Track calls for testing
	InitModelCalls          []string
	GenerateTextCalls       []string
	GenerateStructuredCalls []StructuredCall
	GenerateImageCalls      []string

	mu sync.Mutex // protects all fields above
}

type StructuredCall struct {
	Prompt string
	Schema Schema
}

// Ensure MockGenService implements GenService interface
var _ GenService = (*MockGenService)(nil)

// NewMockGenService creates a new mock generation service
func NewMockGenService() *MockGenService {
	return &MockGenService{
		InitModelCalls:          make([]string, 0),
		GenerateTextCalls:       make([]string, 0),
		GenerateStructuredCalls: make([]StructuredCall, 0),
		GenerateImageCalls:      make([]string, 0),
	}
}

// InitModel mocks model initialization
func (m *MockGenService) InitModel(ctx context.Context, modelName string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.InitModelCalls = append(m.InitModelCalls, modelName)

	if m.InitModelFunc != nil {
		return m.InitModelFunc(ctx, modelName)
	}
	return nil
}

// GenerateText mocks prose generation
func (m *MockGenService) GenerateText(ctx context.Context, prompt string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.GenerateTextCalls = append(m.GenerateTextCalls, prompt)

	if m.GenerateTextFunc != nil {
		return m.GenerateTextFunc(ctx, prompt)
	}
	return "A tale yet untold.", nil
}

// GenerateStructured mocks structured generation
func (m *MockGenService) GenerateStructured(ctx context.Context, prompt string, schema Schema) (json.RawMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.GenerateStructuredCalls = append(m.GenerateStructuredCalls, StructuredCall{Prompt: prompt, Schema: schema})

	if m.GenerateStructuredFunc != nil {
		return m.GenerateStructuredFunc(ctx, prompt, schema)
	}
	return json.RawMessage(`{}`), nil
}

// GenerateImage mocks image generation
func (m *MockGenService) GenerateImage(ctx context.Context, prompt string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.GenerateImageCalls = append(m.GenerateImageCalls, prompt)

	if m.GenerateImageFunc != nil {
		return m.GenerateImageFunc(ctx, prompt)
	}
	return "data:image/png;base64,", nil
}

package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	veniceBaseURL = "https://api.venice.ai/api/v1"

	DefaultVeniceTemperature = 0.7
	DefaultVeniceMaxTokens   = 1024
)

// VeniceService implements GenService for Venice AI
type VeniceService struct {
	apiKey     string
	modelName  string
	imageModel string
	baseURL    string
	httpClient *http.Client
}

// Ensure VeniceService implements GenService interface
var _ GenService = (*VeniceService)(nil)

type VeniceResponseFormat struct {
	Type       string           `json:"type"`
	JSONSchema VeniceJSONSchema `json:"json_schema"`
}

type VeniceJSONSchema struct {
	Name   string                 `json:"name"`
	Strict bool                   `json:"strict"`
	Schema map[string]interface{} `json:"schema"`
}

type VeniceParameters struct {
	IncludeVeniceSystemPrompt bool   `json:"include_venice_system_prompt"`
	EnableWebSearch           string `json:"enable_web_search"`
}

type VeniceChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// VeniceChatRequest represents the request structure for Venice AI chat completions
type VeniceChatRequest struct {
	Model            string                `json:"model"`
	Messages         []VeniceChatMessage   `json:"messages"`
	Temperature      float64               `json:"temperature,omitempty"`
	MaxTokens        int                   `json:"max_tokens,omitempty"`
	Stream           bool                  `json:"stream"`
	ResponseFormat   *VeniceResponseFormat `json:"response_format,omitempty"`
	VeniceParameters VeniceParameters      `json:"venice_parameters"`
}

// VeniceChatChoice represents a single choice in the Venice AI response
type VeniceChatChoice struct {
	Index   int `json:"index"`
	Message struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"message"`
	FinishReason string `json:"finish_reason"`
}

// VeniceChatResponse represents the response structure for Venice AI chat completions
type VeniceChatResponse struct {
	ID      string             `json:"id"`
	Object  string             `json:"object"`
	Created int64              `json:"created"`
	Model   string             `json:"model"`
	Choices []VeniceChatChoice `json:"choices"`
	Error   *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    string `json:"code"`
	} `json:"error,omitempty"`
}

// VeniceImageRequest represents the request structure for Venice AI image generation
type VeniceImageRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Format string `json:"format"`
}

// VeniceImageResponse represents the response structure for Venice AI image generation
type VeniceImageResponse struct {
	Images []string `json:"images"`
	Error  *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// NewVeniceService creates a new Venice AI service
func NewVeniceService(apiKey string, modelName string, imageModel string) *VeniceService {
	return &VeniceService{
		apiKey:     apiKey,
		modelName:  modelName,
		imageModel: imageModel,
		baseURL:    veniceBaseURL,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// InitModel initializes the model (Venice AI doesn't require explicit model initialization)
func (v *VeniceService) InitModel(ctx context.Context, modelName string) error {
	return nil
}

// chatCompletion makes a chat completion request to Venice AI
func (v *VeniceService) chatCompletion(ctx context.Context, prompt string, responseFormat *VeniceResponseFormat) (string, error) {
	veniceReq := VeniceChatRequest{
		Model:       v.modelName,
		Messages:    []VeniceChatMessage{{Role: "user", Content: prompt}},
		Temperature: DefaultVeniceTemperature,
		MaxTokens:   DefaultVeniceMaxTokens,
		Stream:      false,
		VeniceParameters: VeniceParameters{
			IncludeVeniceSystemPrompt: false,
			EnableWebSearch:           "off",
		},
	}

	if responseFormat != nil {
		veniceReq.ResponseFormat = responseFormat
	}

	reqBody, err := json.Marshal(veniceReq)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", v.baseURL+"/chat/completions", bytes.NewBuffer(reqBody))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+v.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := v.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to make request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var veniceResp VeniceChatResponse
	if err := json.Unmarshal(body, &veniceResp); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}

	if veniceResp.Error != nil {
		return "", fmt.Errorf("API error: %s", veniceResp.Error.Message)
	}

	if len(veniceResp.Choices) == 0 {
		return msgNoResponse, nil
	}

	return veniceResp.Choices[0].Message.Content, nil
}

// GenerateText generates free-form prose using Venice AI
func (v *VeniceService) GenerateText(ctx context.Context, prompt string) (string, error) {
	return v.chatCompletion(ctx, prompt, nil)
}

// GenerateStructured generates schema-conforming JSON using Venice AI
func (v *VeniceService) GenerateStructured(ctx context.Context, prompt string, schema Schema) (json.RawMessage, error) {
	format := &VeniceResponseFormat{
		Type: "json_schema",
		JSONSchema: VeniceJSONSchema{
			Name:   schema.Name,
			Strict: true,
			Schema: schema.Schema,
		},
	}
	content, err := v.chatCompletion(ctx, prompt, format)
	if err != nil {
		return nil, err
	}
	return validateStructured([]byte(content), schema)
}

// GenerateImage generates an image using Venice AI and returns it as a
// data URI
func (v *VeniceService) GenerateImage(ctx context.Context, prompt string) (string, error) {
	imageReq := VeniceImageRequest{
		Model:  v.imageModel,
		Prompt: prompt,
		Width:  1024,
		Height: 1024,
		Format: "webp",
	}

	reqBody, err := json.Marshal(imageReq)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", v.baseURL+"/image/generate", bytes.NewBuffer(reqBody))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+v.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := v.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to make request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var imageResp VeniceImageResponse
	if err := json.Unmarshal(body, &imageResp); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}

	if imageResp.Error != nil {
		return "", fmt.Errorf("API error: %s", imageResp.Error.Message)
	}

	if len(imageResp.Images) == 0 {
		return "", fmt.Errorf("no image in response")
	}

	return "data:image/webp;base64," + imageResp.Images[0], nil
}

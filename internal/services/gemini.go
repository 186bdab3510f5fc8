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

const geminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// GeminiService implements GenService for the Gemini API
type GeminiService struct {
	apiKey     string
	modelName  string
	imageModel string
	baseURL    string
	httpClient *http.Client
}

// Ensure GeminiService implements GenService interface
var _ GenService = (*GeminiService)(nil)

type GeminiPart struct {
	Text       string            `json:"text,omitempty"`
	InlineData *GeminiInlineData `json:"inlineData,omitempty"`
}

type GeminiInlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

type GeminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []GeminiPart `json:"parts"`
}

type GeminiGenerationConfig struct {
	ResponseMimeType   string                 `json:"responseMimeType,omitempty"`
	ResponseSchema     map[string]interface{} `json:"responseSchema,omitempty"`
	ResponseModalities []string               `json:"responseModalities,omitempty"`
}

// GeminiRequest represents the request structure for generateContent
type GeminiRequest struct {
	Contents         []GeminiContent         `json:"contents"`
	GenerationConfig *GeminiGenerationConfig `json:"generationConfig,omitempty"`
}

// GeminiResponse represents the response structure for generateContent
type GeminiResponse struct {
	Candidates []struct {
		Content      GeminiContent `json:"content"`
		FinishReason string        `json:"finishReason"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error,omitempty"`
}

// NewGeminiService creates a new Gemini service
func NewGeminiService(apiKey string, modelName string, imageModel string) *GeminiService {
	return &GeminiService{
		apiKey:     apiKey,
		modelName:  modelName,
		imageModel: imageModel,
		baseURL:    geminiBaseURL,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// InitModel initializes the model (Gemini doesn't require explicit model initialization)
func (g *GeminiService) InitModel(ctx context.Context, modelName string) error {
	return nil
}

// generateContent makes a generateContent request against the given model
func (g *GeminiService) generateContent(ctx context.Context, model string, prompt string, config *GeminiGenerationConfig) (*GeminiResponse, error) {
	geminiReq := GeminiRequest{
		Contents: []GeminiContent{
			{Role: "user", Parts: []GeminiPart{{Text: prompt}}},
		},
		GenerationConfig: config,
	}

	reqBody, err := json.Marshal(geminiReq)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", g.baseURL, model)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(reqBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("x-goog-api-key", g.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var geminiResp GeminiResponse
	if err := json.Unmarshal(body, &geminiResp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	if geminiResp.Error != nil {
		return nil, fmt.Errorf("API error: %s", geminiResp.Error.Message)
	}

	return &geminiResp, nil
}

// firstText returns the first text part of the first candidate.
func firstText(resp *GeminiResponse) string {
	if len(resp.Candidates) == 0 {
		return msgNoResponse
	}
	for _, part := range resp.Candidates[0].Content.Parts {
		if part.Text != "" {
			return part.Text
		}
	}
	return msgNoResponse
}

// GenerateText generates free-form prose using Gemini
func (g *GeminiService) GenerateText(ctx context.Context, prompt string) (string, error) {
	resp, err := g.generateContent(ctx, g.modelName, prompt, nil)
	if err != nil {
		return "", err
	}
	return firstText(resp), nil
}

// GenerateStructured generates schema-conforming JSON using Gemini
func (g *GeminiService) GenerateStructured(ctx context.Context, prompt string, schema Schema) (json.RawMessage, error) {
	config := &GeminiGenerationConfig{
		ResponseMimeType: "application/json",
		ResponseSchema:   schema.Schema,
	}
	resp, err := g.generateContent(ctx, g.modelName, prompt, config)
	if err != nil {
		return nil, err
	}
	return validateStructured([]byte(firstText(resp)), schema)
}

// GenerateImage generates an image using Gemini and returns it as a
// data URI
func (g *GeminiService) GenerateImage(ctx context.Context, prompt string) (string, error) {
	config := &GeminiGenerationConfig{
		ResponseModalities: []string{"IMAGE", "TEXT"},
	}
	resp, err := g.generateContent(ctx, g.imageModel, prompt, config)
	if err != nil {
		return "", err
	}
	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no image in response")
	}
	for _, part := range resp.Candidates[0].Content.Parts {
		if part.InlineData != nil && part.InlineData.Data != "" {
			mime := part.InlineData.MimeType
			if mime == "" {
				mime = "image/png"
			}
			return fmt.Sprintf("data:%s;base64,%s", mime, part.InlineData.Data), nil
		}
	}
	return "", fmt.Errorf("no image in response")
}

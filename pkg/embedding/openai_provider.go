package embedding

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// OpenAIProvider calls the OpenAI embeddings endpoint. Adapted from the
// teacher's GeminiProvider: same marshal-request/POST/unmarshal-response
// shape, retargeted to an OpenAI-style endpoint and payload.
type OpenAIProvider struct {
	APIKey string
	Model  string
	dim    int
	client *http.Client
}

// NewOpenAIProvider builds the primary embedder. text-embedding-3-small
// produces 1536-dimension vectors, matching the primary dimension named in
// the component design.
func NewOpenAIProvider(apiKey string) *OpenAIProvider {
	return &OpenAIProvider{
		APIKey: apiKey,
		Model:  "text-embedding-3-small",
		dim:    1536,
		client: &http.Client{},
	}
}

func (p *OpenAIProvider) Name() string   { return "primary" }
func (p *OpenAIProvider) Dimension() int { return p.dim }

type openAIEmbeddingRequest struct {
	Model string   `json:"model"`
	Input []string `json:"input"`
}

type openAIEmbeddingDatum struct {
	Embedding []float32 `json:"embedding"`
	Index     int       `json:"index"`
}

type openAIEmbeddingResponse struct {
	Data []openAIEmbeddingDatum `json:"data"`
}

func (p *OpenAIProvider) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if p.APIKey == "" {
		return nil, fmt.Errorf("openai embedder not configured: missing credential")
	}

	body, err := json.Marshal(openAIEmbeddingRequest{Model: p.Model, Input: texts})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		"https://api.openai.com/v1/embeddings", bytes.NewBuffer(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+p.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &httpStatusError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	var parsed openAIEmbeddingResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, err
	}

	vectors := make([][]float32, len(parsed.Data))
	for _, d := range parsed.Data {
		if d.Index < 0 || d.Index >= len(vectors) {
			continue
		}
		vectors[d.Index] = normalizeVector(d.Embedding)
	}
	return vectors, nil
}

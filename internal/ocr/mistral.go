package ocr

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	mistralEndpoint = "https://api.mistral.ai/v1/chat/completions"
	mistralModel    = "pixtral-large-latest"

	ocrPrompt = "Extract all text from this image and return it in markdown format. " +
		"Include any lists, tables, or structured content you see."
)

type MistralClient struct {
	apiKey   string
	endpoint string
	client   *http.Client
}

func NewMistralClient(apiKey string) *MistralClient {
	return &MistralClient{
		apiKey:   apiKey,
		endpoint: mistralEndpoint,
		client:   &http.Client{Timeout: 60 * time.Second},
	}
}

// ExtractText sends the image to the Mistral vision endpoint and returns the
// markdown it produces.
func (m *MistralClient) ExtractText(ctx context.Context, imageBytes []byte) (string, error) {
	if m.apiKey == "" {
		return "", errors.New("missing MISTRAL_API_KEY")
	}
	if len(imageBytes) == 0 {
		return "", errors.New("empty image")
	}

	dataURI := "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(imageBytes)

	payload := map[string]any{
		"model": mistralModel,
		"messages": []map[string]any{
			{
				"role": "user",
				"content": []map[string]any{
					{"type": "text", "text": ocrPrompt},
					{"type": "image_url", "image_url": dataURI},
				},
			},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		m.endpoint,
		bytes.NewBuffer(body),
	)
	if err != nil {
		return "", err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+m.apiKey)

	resp, err := m.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("mistral request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("mistral api error %d: %s", resp.StatusCode, string(raw))
	}

	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(raw, &result); err != nil {
		return "", err
	}

	if len(result.Choices) == 0 {
		return "", errors.New("empty mistral response")
	}

	return result.Choices[0].Message.Content, nil
}

// Package gemini implements the external AI image collaborators of the
// card pipeline: background cutout and card enhancement. Both are
// best-effort; every failure is recoverable by the caller.
package gemini

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/genai"
)

const DefaultModel = "gemini-2.5-flash-image"

// Client wraps one shared genai connection. It is constructed once at
// startup and injected into the pipeline, never rebuilt per call.
type Client struct {
	genai   *genai.Client
	model   string
	timeout time.Duration
}

func NewClient(ctx context.Context, apiKey, model string, timeout time.Duration) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}
	if model == "" {
		model = DefaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	return &Client{
		genai:   client,
		model:   model,
		timeout: timeout,
	}, nil
}

// editImage sends one PNG plus an instruction prompt to the image model
// and returns the typed image result.
func (c *Client) editImage(ctx context.Context, pngData []byte, prompt string) (*ImageResult, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromBytes(pngData, "image/png"),
			genai.NewPartFromText(prompt),
		}, genai.RoleUser),
	}

	resp, err := c.genai.Models.GenerateContent(ctx, c.model, contents, &genai.GenerateContentConfig{
		ResponseModalities: []string{"IMAGE"},
	})
	if err != nil {
		return nil, fmt.Errorf("genai generate failed: %w", err)
	}

	return parseImageResult(resp)
}

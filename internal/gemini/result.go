package gemini

import (
	"errors"

	"google.golang.org/genai"
)

// ImageResult is the narrow typed value extracted from a model
// response. Nothing loosely-typed crosses this boundary.
type ImageResult struct {
	Data     []byte
	MIMEType string
}

var (
	ErrNoCandidates = errors.New("model response contains no candidates")
	ErrNoImagePart  = errors.New("model response contains no inline image data")
)

// parseImageResult validates the response shape once at the edge:
// first candidate, first content part carrying inline image bytes.
func parseImageResult(resp *genai.GenerateContentResponse) (*ImageResult, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return nil, ErrNoCandidates
	}

	content := resp.Candidates[0].Content
	if content == nil {
		return nil, ErrNoImagePart
	}

	for _, part := range content.Parts {
		if part == nil || part.InlineData == nil || len(part.InlineData.Data) == 0 {
			continue
		}
		return &ImageResult{
			Data:     part.InlineData.Data,
			MIMEType: part.InlineData.MIMEType,
		}, nil
	}

	return nil, ErrNoImagePart
}

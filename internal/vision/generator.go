package vision

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"
)

// MaxVariants caps how many renderings one request may ask for.
const MaxVariants = 4

const (
	defaultModel   = "gemini-2.5-flash-image"
	defaultTimeout = 60 * time.Second
)

// Image is one rendered result, base64-encoded with its content type.
type Image struct {
	Data string `json:"data"`
	MIME string `json:"mime"`
}

// ImageGenerator produces interior renderings from a prompt plus the
// flattened canvas composite.
type ImageGenerator interface {
	Generate(ctx context.Context, prompt string, composite []byte, mime string, count int) ([]Image, error)
}

// GeminiGenerator renders interiors via Gemini image outputs.
type GeminiGenerator struct {
	apiKey  string
	model   string
	timeout time.Duration
}

// NewGeminiGenerator constructs a generator able to request inline images.
func NewGeminiGenerator(apiKey, model string, timeout time.Duration) *GeminiGenerator {
	model = strings.TrimPrefix(strings.TrimSpace(model), "models/")
	if model == "" {
		model = defaultModel
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &GeminiGenerator{apiKey: apiKey, model: model, timeout: timeout}
}

// Generate submits the composite and prompt and collects inline image
// parts from the response candidates.
func (g *GeminiGenerator) Generate(ctx context.Context, prompt string, composite []byte, mime string, count int) ([]Image, error) {
	if g == nil || strings.TrimSpace(g.apiKey) == "" {
		return nil, fmt.Errorf("vision: image generator unavailable")
	}
	if strings.TrimSpace(prompt) == "" {
		return nil, fmt.Errorf("vision: empty prompt")
	}
	if len(composite) == 0 {
		return nil, fmt.Errorf("vision: empty composite")
	}
	if count < 1 {
		count = 1
	}
	if count > MaxVariants {
		count = MaxVariants
	}

	childCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	client, err := genai.NewClient(childCtx, &genai.ClientConfig{APIKey: g.apiKey})
	if err != nil {
		return nil, fmt.Errorf("vision: create genai client: %w", err)
	}

	parts := []*genai.Part{
		genai.NewPartFromBytes(composite, mime),
		genai.NewPartFromText(prompt),
	}
	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}

	var images []Image
	for len(images) < count {
		resp, err := client.Models.GenerateContent(childCtx, g.model, contents, nil)
		if err != nil {
			return nil, fmt.Errorf("vision: generate rendering: %w", err)
		}
		got := collectInline(resp)
		if len(got) == 0 {
			return nil, fmt.Errorf("vision: response carried no image data")
		}
		images = append(images, got...)
	}
	if len(images) > count {
		images = images[:count]
	}
	return images, nil
}

func collectInline(resp *genai.GenerateContentResponse) []Image {
	var out []Image
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if part.InlineData == nil || len(part.InlineData.Data) == 0 {
				continue
			}
			mime := part.InlineData.MIMEType
			if strings.TrimSpace(mime) == "" {
				mime = "image/png"
			}
			out = append(out, Image{
				Data: base64.StdEncoding.EncodeToString(part.InlineData.Data),
				MIME: mime,
			})
		}
	}
	return out
}

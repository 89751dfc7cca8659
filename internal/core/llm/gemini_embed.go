package llm

import (
	"context"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/mathsnap/ingest/internal/core"
)

const (
	// charsPerToken is the rough estimate used to stay under the embedding
	// backend's input limit without a real tokenizer.
	charsPerToken = 4
	// maxInputTokens leaves buffer below the backend's 8192-token ceiling.
	maxInputTokens = 8000
)

type GeminiEmbedder struct {
	client    *genai.Client
	modelName string
}

func NewGeminiEmbedder(ctx context.Context, apiKey, modelName string) (*GeminiEmbedder, error) {
	cl, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}
	if modelName == "" {
		modelName = "text-embedding-004"
	}
	return &GeminiEmbedder{client: cl, modelName: modelName}, nil
}

func (g *GeminiEmbedder) Close() error {
	if g.client != nil {
		return g.client.Close()
	}
	return nil
}

// EmbedText maps one passage to a fixed-length vector. Input beyond the
// token budget is truncated before the call rather than rejected.
func (g *GeminiEmbedder) EmbedText(ctx context.Context, text string) ([]float32, error) {
	text = TruncateToTokenBudget(text)

	em := g.client.EmbeddingModel(g.modelName)
	resp, err := em.EmbedContent(ctx, genai.Text(text))
	if err != nil {
		return nil, fmt.Errorf("gemini embed: %w", err)
	}
	if resp.Embedding == nil || len(resp.Embedding.Values) == 0 {
		return nil, fmt.Errorf("gemini embed: empty embedding")
	}
	return resp.Embedding.Values, nil
}

// TruncateToTokenBudget cuts text down to the estimated token ceiling
// (~4 characters per token, 8000 tokens).
func TruncateToTokenBudget(text string) string {
	runes := []rune(text)
	if len(runes)/charsPerToken <= maxInputTokens {
		return text
	}
	return string(runes[:maxInputTokens*charsPerToken])
}

var _ core.Embedder = (*GeminiEmbedder)(nil)

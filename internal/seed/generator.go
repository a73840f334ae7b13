// ABOUTME: AI-powered data generator for realistic brokerage records.
// ABOUTME: Uses OpenAI for listings and articles, static data for everything else.

package seed

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/2389/realty/internal/logger"
	"github.com/2389/realty/internal/resource"
	"github.com/joho/godotenv"
	"github.com/sashabaranov/go-openai"
)

// Generator creates fake records using OpenAI or falls back to static data.
type Generator struct {
	client *openai.Client
	useAI  bool
	model  string
}

// NewGenerator creates a generator, loading the API key from .env if available.
// An empty model falls back to OPENAI_MODEL, then gpt-5-mini.
func NewGenerator(model string) *Generator {
	g := &Generator{model: model}

	// Try to load .env from current dir or parent dirs
	for _, p := range []string{".env", "../.env", "../../.env"} {
		if err := godotenv.Load(p); err == nil {
			break
		}
	}
	if home, err := os.UserHomeDir(); err == nil {
		godotenv.Load(filepath.Join(home, ".env"))
	}

	if g.model == "" {
		g.model = os.Getenv("OPENAI_MODEL")
	}
	if g.model == "" {
		g.model = "gpt-5-mini"
	}

	if apiKey := os.Getenv("OPENAI_API_KEY"); apiKey != "" {
		g.client = openai.NewClient(apiKey)
		g.useAI = true
		logger.Log.Infof("OpenAI API key found, using AI-generated data with model: %s", g.model)
	} else {
		logger.Log.Info("No OPENAI_API_KEY found, using static fallback data")
	}
	return g
}

// NewStaticGenerator never calls OpenAI.
func NewStaticGenerator() *Generator {
	return &Generator{}
}

// prompts holds the resources worth asking a model for. Everything else is
// short enough that static data reads just as well.
var prompts = map[string]string{
	"properties": `Generate %d realistic property listings for a Philippine real estate brokerage.
Return a JSON array of objects with: name, location (city, Metro Manila or nearby province),
price (number, PHP), status (one of "For Sale", "For Rent", "Sold"),
property_type (one of "Condominium", "House and Lot", "Lot", "Commercial"),
bedrooms (number), floor_area (number, square meters), featured (boolean), description (2-3 sentences).`,
	"articles": `Generate %d blog articles for a real estate brokerage website.
Return a JSON array of objects with: title, author, category (one of "News", "Guides", "Market Updates"),
published (boolean, mostly true), body (3-4 sentences).`,
}

// Generate returns count records for slug. AI failures fall back to static data.
func (g *Generator) Generate(ctx context.Context, slug string, count int) ([]map[string]any, error) {
	if _, ok := resource.Get(slug); !ok {
		return nil, fmt.Errorf("unknown resource %q", slug)
	}
	if count <= 0 {
		return nil, nil
	}

	prompt, hasPrompt := prompts[slug]
	if !g.useAI || !hasPrompt {
		return staticRecords(slug, count), nil
	}

	logger.Log.Infof("  ⏳ Generating %d %s via AI...", count, slug)
	records, err := callOpenAI[[]map[string]any](ctx, g.client, g.model, fmt.Sprintf(prompt, count))
	if err != nil || len(records) == 0 {
		logger.Log.WithError(err).Warnf("  ✗ Failed to generate %s, falling back to static data", slug)
		return staticRecords(slug, count), nil
	}
	logger.Log.Infof("  ✓ Generated %d %s", len(records), slug)
	return records, nil
}

func callOpenAI[T any](ctx context.Context, client *openai.Client, model, prompt string) (T, error) {
	var result T

	resp, err := client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "You are a data generator. Always respond with valid JSON only, no markdown or explanation.",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
	})
	if err != nil {
		return result, fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return result, fmt.Errorf("no response from OpenAI")
	}

	content := resp.Choices[0].Message.Content
	if err := json.Unmarshal([]byte(content), &result); err != nil {
		return result, fmt.Errorf("failed to parse JSON response: %w", err)
	}

	return result, nil
}

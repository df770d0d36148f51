package gemini

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/yungbote/divergex-backend/internal/platform/envutil"
	"github.com/yungbote/divergex-backend/internal/platform/logger"
)

// Generator is the single surface the AI gateway depends on. Tests swap it
// for a canned implementation.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type Client struct {
	client *genai.Client
	model  string
	log    *logger.Logger
}

func NewClient(ctx context.Context, baseLog *logger.Logger) (*Client, error) {
	apiKey := envutil.GetEnv("GEMINI_API_KEY", "")
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is not set")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return &Client{
		client: client,
		model:  envutil.GetEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		log:    baseLog.With("client", "Gemini"),
	}, nil
}

func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("empty response from model %s", c.model)
	}
	return text, nil
}

package gemini

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"google.golang.org/genai"
)

// Client talks to the Gemini API for both embeddings and answer
// generation, so one credential and one connection serve the whole
// pipeline. It implements domain.Embedder and domain.Generator.
type Client struct {
	client        *genai.Client
	embedModel    string
	generateModel string
	temperature   float32
	timeout       time.Duration
	dimension     int
}

// Config configures the Gemini client. The API key is read from the
// environment variable named by APIKeyEnv.
type Config struct {
	APIKeyEnv     string
	EmbedModel    string
	GenerateModel string
	Temperature   float32
	Timeout       time.Duration
}

// NewClient creates a Gemini client using the provided configuration.
func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	if cfg.APIKeyEnv == "" {
		cfg.APIKeyEnv = "GEMINI_API_KEY"
	}
	key := os.Getenv(cfg.APIKeyEnv)
	if key == "" {
		return nil, fmt.Errorf("missing API key in env %s", cfg.APIKeyEnv)
	}
	if cfg.EmbedModel == "" {
		cfg.EmbedModel = "embedding-001"
	}
	if cfg.GenerateModel == "" {
		cfg.GenerateModel = "gemini-pro"
	}
	if cfg.Temperature == 0 {
		cfg.Temperature = 0.1
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 60 * time.Second
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  key,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}
	return &Client{
		client:        client,
		embedModel:    cfg.EmbedModel,
		generateModel: cfg.GenerateModel,
		temperature:   cfg.Temperature,
		timeout:       cfg.Timeout,
	}, nil
}

// Name returns the identifier of this embedder implementation.
func (c *Client) Name() string { return "gemini" }

// Prepare is not required for remote embedding; the dimension is set
// lazily on the first embed.
func (c *Client) Prepare(corpus []string) error { return nil }

// Dimension returns the dimensionality of the produced vectors.
func (c *Client) Dimension() int { return c.dimension }

// Embed returns an embedding vector for the given text.
func (c *Client) Embed(ctx context.Context, text string) ([]float64, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	resp, err := c.client.Models.EmbedContent(
		ctx,
		c.embedModel,
		[]*genai.Content{{Parts: []*genai.Part{{Text: text}}}},
		nil,
	)
	if err != nil {
		return nil, err
	}
	if len(resp.Embeddings) == 0 || len(resp.Embeddings[0].Values) == 0 {
		return nil, errors.New("no embedding returned")
	}
	values := resp.Embeddings[0].Values
	vec := make([]float64, len(values))
	for i, v := range values {
		vec[i] = float64(v)
	}
	if c.dimension == 0 {
		c.dimension = len(vec)
	}
	return vec, nil
}

// Generate produces the model's answer for a fully assembled prompt.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	resp, err := c.client.Models.GenerateContent(
		ctx,
		c.generateModel,
		[]*genai.Content{{Parts: []*genai.Part{{Text: prompt}}}},
		&genai.GenerateContentConfig{Temperature: genai.Ptr(c.temperature)},
	)
	if err != nil {
		return "", err
	}
	return resp.Text(), nil
}

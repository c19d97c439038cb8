// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package generation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"google.golang.org/genai"
)

// DefaultModel is the Gemini model used when none is specified.
const DefaultModel = "gemini-2.0-flash"

// Generator issues generation calls against Gemini models on Vertex AI,
// optionally grounded through attached retrieval tools.
type Generator struct {
	client *genai.Client
	model  string
	logger *slog.Logger
}

// GeneratorOption configures a [Generator].
type GeneratorOption func(*Generator)

// WithLogger sets the logger used by the generator. Defaults to [slog.Default].
func WithLogger(logger *slog.Logger) GeneratorOption {
	return func(g *Generator) {
		g.logger = logger
	}
}

// NewGenerator creates a generator bound to a project, location, and model,
// using the Vertex AI backend with Application Default Credentials.
func NewGenerator(ctx context.Context, projectID, location, model string, opts ...GeneratorOption) (*Generator, error) {
	if projectID == "" {
		return nil, errors.New("generation: projectID is required")
	}
	if location == "" {
		return nil, errors.New("generation: location is required")
	}
	if model == "" {
		model = DefaultModel
	}

	g := &Generator{
		model:  model,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(g)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		Project:  projectID,
		Location: location,
		Backend:  genai.BackendVertexAI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	g.client = client

	return g, nil
}

// Model returns the model the generator is bound to.
func (g *Generator) Model() string { return g.model }

// Generate sends prompt to the model with the given tools attached and
// returns the response text. With a retrieval tool attached, the model
// retrieves from the referenced corpora before answering.
func (g *Generator) Generate(ctx context.Context, prompt string, tools ...*genai.Tool) (string, error) {
	resp, err := g.GenerateContent(ctx, prompt, tools...)
	if err != nil {
		return "", err
	}
	return resp.Text(), nil
}

// GenerateContent is like [Generator.Generate] but returns the full response,
// including grounding metadata when a retrieval tool was used.
func (g *Generator) GenerateContent(ctx context.Context, prompt string, tools ...*genai.Tool) (*genai.GenerateContentResponse, error) {
	if prompt == "" {
		return nil, errors.New("generation: prompt is required")
	}

	g.logger.InfoContext(ctx, "generating content",
		slog.String("model", g.model),
		slog.Int("tools", len(tools)),
	)

	config := &genai.GenerateContentConfig{}
	if len(tools) > 0 {
		config.Tools = tools
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), config)
	if err != nil {
		return nil, fmt.Errorf("generate content with %s: %w", g.model, err)
	}
	if len(resp.Candidates) == 0 {
		return nil, fmt.Errorf("generate content with %s: empty candidate list", g.model)
	}

	return resp, nil
}

// Package ai generates recipe drafts through an external chat-completion
// API. Results are parsed into the same shape the recipe service accepts,
// so a generated draft can be persisted by the normal create flow.
package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
	"github.com/sirupsen/logrus"
)

// GeneratedRecipe is the structured draft returned by the model.
type GeneratedRecipe struct {
	Title        string                `json:"title"`
	Description  string                `json:"description"`
	Instructions string                `json:"instructions"`
	TimeMinutes  int                   `json:"time_minutes"`
	Servings     int                   `json:"servings"`
	Ingredients  []GeneratedIngredient `json:"ingredients"`
}

type GeneratedIngredient struct {
	Name     string `json:"name"`
	Quantity string `json:"quantity"`
	Unit     string `json:"unit"`
}

// Generator produces recipe drafts from a free-form prompt, optionally
// constrained to a list of pantry ingredients.
type Generator interface {
	GenerateRecipe(ctx context.Context, prompt string, pantry []string) (*GeneratedRecipe, error)
}

const systemPrompt = `You are a recipe writer. Respond with a single JSON object and nothing else, using exactly these keys: "title" (string), "description" (string), "instructions" (string, numbered steps separated by newlines), "time_minutes" (integer), "servings" (integer), "ingredients" (array of objects with "name", "quantity", "unit" strings).`

// OpenAIGenerator calls an OpenAI-compatible chat-completion endpoint.
type OpenAIGenerator struct {
	client *openai.Client
	model  string
	logger *logrus.Logger
}

// Config carries the completion API settings. BaseURL is optional and
// allows pointing at any OpenAI-compatible server.
type Config struct {
	APIKey  string
	BaseURL string
	Model   string
}

func NewOpenAIGenerator(cfg Config, logger *logrus.Logger) *OpenAIGenerator {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	model := cfg.Model
	if model == "" {
		model = openai.GPT4oMini
	}
	return &OpenAIGenerator{
		client: openai.NewClientWithConfig(clientCfg),
		model:  model,
		logger: logger,
	}
}

func (g *OpenAIGenerator) GenerateRecipe(ctx context.Context, prompt string, pantry []string) (*GeneratedRecipe, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return nil, fmt.Errorf("prompt is required")
	}

	userPrompt := prompt
	if len(pantry) > 0 {
		userPrompt = fmt.Sprintf("%s\n\nUse only these available ingredients where possible: %s.", prompt, strings.Join(pantry, ", "))
	}

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("chat completion returned no choices")
	}

	content := resp.Choices[0].Message.Content
	recipe, err := parseGeneratedRecipe(content)
	if err != nil {
		g.logger.WithField("content", content).Warn("unparseable recipe draft")
		return nil, err
	}
	return recipe, nil
}

// parseGeneratedRecipe tolerates markdown code fences around the JSON body,
// which some models emit despite the response-format request.
func parseGeneratedRecipe(content string) (*GeneratedRecipe, error) {
	content = strings.TrimSpace(content)
	if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```json")
		content = strings.TrimPrefix(content, "```")
		content = strings.TrimSuffix(content, "```")
		content = strings.TrimSpace(content)
	}

	var recipe GeneratedRecipe
	if err := json.Unmarshal([]byte(content), &recipe); err != nil {
		return nil, fmt.Errorf("parse recipe draft: %w", err)
	}
	if recipe.Title == "" {
		return nil, fmt.Errorf("recipe draft is missing a title")
	}
	if recipe.Servings <= 0 {
		recipe.Servings = 1
	}
	return &recipe, nil
}

var _ Generator = (*OpenAIGenerator)(nil)

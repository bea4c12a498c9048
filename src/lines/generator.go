// Package lines asks an OpenAI chat model to analyze lyric lines and to write new lines that rhyme
// with them, subject to usage limits.
package lines

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
)

var ErrEmptyLine = errors.New("expected a line of text")

type Options struct {
	Mood  string `json:"mood,omitempty"`
	Style string `json:"style,omitempty"`
}

type Analysis struct {
	Mood  string `json:"mood"`
	Style string `json:"style"`
}

var defaultAnalysis = Analysis{Mood: "neutral", Style: "modern"}

type Generator struct {
	client *openai.Client
	usage  *Tracker
	model  string
}

// NewGenerator builds a generator for the given API key. baseURL overrides the OpenAI endpoint
// when non-empty.
func NewGenerator(apiKey, baseURL, model string, usage *Tracker) *Generator {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if model == "" {
		model = openai.GPT3Dot5Turbo
	}
	return &Generator{client: openai.NewClientWithConfig(cfg), usage: usage, model: model}
}

func (g *Generator) Usage() Stats {
	return g.usage.Stats()
}

// Analyze asks the model for the mood and style of line.
func (g *Generator) Analyze(ctx context.Context, line string) (Analysis, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return Analysis{}, ErrEmptyLine
	}
	content, err := g.complete(ctx, 0.7,
		"You are a poetry analysis expert. Analyze the mood and style of the given line.",
		fmt.Sprintf("Analyze this line: %q. Return only a JSON object with mood and style.", line))
	if err != nil {
		return Analysis{}, err
	}
	return parseAnalysis(content)
}

// Generate asks the model for three lines that rhyme with line in the requested mood and style.
func (g *Generator) Generate(ctx context.Context, line string, opts Options) ([]string, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil, ErrEmptyLine
	}
	if opts.Mood == "" {
		opts.Mood = defaultAnalysis.Mood
	}
	if opts.Style == "" {
		opts.Style = defaultAnalysis.Style
	}
	content, err := g.complete(ctx, 0.8,
		fmt.Sprintf("You are a creative poet. Generate rhyming lines that match the following mood: %s and style: %s.", opts.Mood, opts.Style),
		fmt.Sprintf("Generate 3 creative lines that rhyme with this line: %q. Each line should maintain similar syllable count and rhythm. Return only the lines, separated by newlines.", line))
	if err != nil {
		return nil, err
	}
	return splitLines(content), nil
}

func (g *Generator) complete(ctx context.Context, temperature float32, system, user string) (string, error) {
	if err := g.usage.Allow(); err != nil {
		return "", err
	}
	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
		Temperature: temperature,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("chat completion returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

// parseAnalysis accepts a bare JSON object or one wrapped in a markdown code fence. Empty content
// means the model had no opinion.
func parseAnalysis(content string) (Analysis, error) {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.Trim(content, "`\n ")
	if content == "" {
		return defaultAnalysis, nil
	}
	var a Analysis
	if err := json.Unmarshal([]byte(content), &a); err != nil {
		return Analysis{}, fmt.Errorf("could not parse analysis %q: %w", content, err)
	}
	if a.Mood == "" {
		a.Mood = defaultAnalysis.Mood
	}
	if a.Style == "" {
		a.Style = defaultAnalysis.Style
	}
	return a, nil
}

func splitLines(content string) []string {
	var lines []string
	for _, l := range strings.Split(content, "\n") {
		if l = strings.TrimSpace(l); l != "" {
			lines = append(lines, l)
		}
	}
	return lines
}

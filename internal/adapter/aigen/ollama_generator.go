package aigen

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/Malay-Max/QuizWhiz-sub001/internal/config"
	"github.com/Malay-Max/QuizWhiz-sub001/internal/domain"
	"github.com/Malay-Max/QuizWhiz-sub001/internal/logger"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
	"go.uber.org/zap"
)

// OllamaGenerator implements domain.Generator against a local Ollama
// server through langchaingo.
type OllamaGenerator struct {
	llm *ollama.LLM
}

// NewOllamaGenerator creates a generator talking to the configured Ollama
// server.
func NewOllamaGenerator(cfg config.LLMConfig) (*OllamaGenerator, error) {
	if cfg.ServerURL == "" {
		return nil, fmt.Errorf("llm server url cannot be empty")
	}

	httpClient := &http.Client{
		Timeout: cfg.Timeout,
		Transport: &http.Transport{
			MaxIdleConns:        10,
			MaxIdleConnsPerHost: 10,
		},
	}
	llm, err := ollama.New(
		ollama.WithServerURL(cfg.ServerURL),
		ollama.WithModel(cfg.Model),
		ollama.WithHTTPClient(httpClient),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}
	return &OllamaGenerator{llm: llm}, nil
}

// GenerateDistractors asks the model for plausible-but-wrong options.
func (g *OllamaGenerator) GenerateDistractors(ctx context.Context, input domain.DistractorInput) (*domain.DistractorOutput, error) {
	prompt := fmt.Sprintf(`You are a quiz author. Generate %d plausible but incorrect answer options (distractors) for the question below. Respond with ONLY a JSON object in this format:
{"distractors": ["distractor 1", "distractor 2"]}

Question: %s
Correct Answer: %s
Existing Options (do not repeat any of these): %s

Rules:
1. Every distractor must be clearly wrong but believable to someone unsure of the answer
2. Distractors must be distinct from the correct answer and from each other
3. Match the style and length of the correct answer`,
		input.Count, input.Question, input.CorrectAnswer, strings.Join(input.ExistingOptions, ", "))

	raw, err := g.llm.Call(ctx, prompt, llms.WithTemperature(0.4))
	if err != nil {
		return nil, fmt.Errorf("llm call failed: %w", err)
	}

	extracted, err := extractJSONObject(raw)
	if err != nil {
		logger.Get().Error("No JSON object in LLM distractor response",
			zap.String("raw_response", raw))
		return nil, err
	}

	var output domain.DistractorOutput
	if err := json.Unmarshal([]byte(extracted), &output); err != nil {
		return nil, fmt.Errorf("failed to unmarshal LLM response (tried to parse: %q): %w", extracted, err)
	}
	if len(output.Distractors) == 0 {
		return nil, fmt.Errorf("llm returned no distractors")
	}
	return &output, nil
}

// GenerateExplanation asks the model why the correct answer is correct.
func (g *OllamaGenerator) GenerateExplanation(ctx context.Context, input domain.ExplanationInput) (string, error) {
	prompt := fmt.Sprintf(`You are a quiz author. Explain in under 80 words why the correct answer to this question is correct. Respond with ONLY a JSON object in this format:
{"explanation": "your explanation here"}

Question: %s
Options: %s
Correct Answer: %s`,
		input.Question, strings.Join(input.Options, ", "), input.CorrectAnswer)

	raw, err := g.llm.Call(ctx, prompt, llms.WithTemperature(0.2))
	if err != nil {
		return "", fmt.Errorf("llm call failed: %w", err)
	}

	extracted, err := extractJSONObject(raw)
	if err != nil {
		logger.Get().Error("No JSON object in LLM explanation response",
			zap.String("raw_response", raw))
		return "", err
	}

	var parsed struct {
		Explanation string `json:"explanation"`
	}
	if err := json.Unmarshal([]byte(extracted), &parsed); err != nil {
		return "", fmt.Errorf("failed to unmarshal LLM response (tried to parse: %q): %w", extracted, err)
	}
	if strings.TrimSpace(parsed.Explanation) == "" {
		return "", fmt.Errorf("llm returned an empty explanation")
	}
	return parsed.Explanation, nil
}

// extractJSONObject pulls the first JSON object out of a model response
// that may be wrapped in chatter or <think> blocks.
func extractJSONObject(raw string) (string, error) {
	cleaned := strings.TrimSpace(raw)

	if thinkStart := strings.Index(cleaned, "<think>"); thinkStart != -1 {
		if thinkEnd := strings.Index(cleaned, "</think>"); thinkEnd != -1 && thinkEnd > thinkStart {
			cleaned = cleaned[:thinkStart] + cleaned[thinkEnd+len("</think>"):]
			cleaned = strings.TrimSpace(cleaned)
		}
	}

	jsonStart := strings.Index(cleaned, "{")
	jsonEnd := strings.LastIndex(cleaned, "}")
	if jsonStart == -1 || jsonEnd == -1 || jsonEnd <= jsonStart {
		return "", fmt.Errorf("no JSON object found in LLM response: %s", cleaned)
	}
	return cleaned[jsonStart : jsonEnd+1], nil
}

var _ domain.Generator = (*OllamaGenerator)(nil)

package domain

import "context"

// DistractorInput is the structured request for distractor generation.
type DistractorInput struct {
	Question        string
	CorrectAnswer   string
	ExistingOptions []string
	Count           int
}

// DistractorOutput is the structured result of distractor generation.
type DistractorOutput struct {
	Distractors []string `json:"distractors"`
}

// ExplanationInput is the structured request for answer-explanation
// generation.
type ExplanationInput struct {
	Question      string
	Options       []string
	CorrectAnswer string
}

// Generator is the capability interface for AI-assisted authoring. The
// core quiz and category logic never depends on it for correctness; a
// failing generator only loses optional enrichment.
type Generator interface {
	GenerateDistractors(ctx context.Context, input DistractorInput) (*DistractorOutput, error)
	GenerateExplanation(ctx context.Context, input ExplanationInput) (string, error)
}

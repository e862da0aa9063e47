package service

import (
	"context"
	"errors"

	"github.com/Malay-Max/QuizWhiz-sub001/internal/config"
	"github.com/Malay-Max/QuizWhiz-sub001/internal/domain"
	"github.com/Malay-Max/QuizWhiz-sub001/internal/dto"
	"github.com/Malay-Max/QuizWhiz-sub001/internal/logger"

	"go.uber.org/zap"
)

const defaultDistractorCount = 3

// errAIDisabled is reported when no LLM server is configured.
var errAIDisabled = errors.New("AI generation is not configured")

// AIService exposes AI-assisted authoring helpers. Failures surface as
// GENERATION_FAILED errors and never corrupt stored state.
type AIService interface {
	SuggestDistractors(ctx context.Context, req *dto.SuggestDistractorsRequest) (*dto.SuggestDistractorsResponse, error)
}

type aiService struct {
	generator domain.Generator
	cfg       *config.Config
}

// NewAIService creates a new AIService.
func NewAIService(generator domain.Generator, cfg *config.Config) AIService {
	return &aiService{generator: generator, cfg: cfg}
}

// SuggestDistractors invokes the generator with a bounded timeout.
func (s *aiService) SuggestDistractors(ctx context.Context, req *dto.SuggestDistractorsRequest) (*dto.SuggestDistractorsResponse, error) {
	if s.generator == nil {
		return nil, domain.NewGenerationError(errAIDisabled)
	}

	count := req.Count
	if count <= 0 {
		count = defaultDistractorCount
	}

	genCtx, cancel := context.WithTimeout(ctx, s.cfg.LLM.Timeout)
	defer cancel()

	output, err := s.generator.GenerateDistractors(genCtx, domain.DistractorInput{
		Question:        req.Question,
		CorrectAnswer:   req.CorrectAnswer,
		ExistingOptions: req.ExistingOptions,
		Count:           count,
	})
	if err != nil {
		logger.Get().Error("Distractor generation failed",
			zap.String("question", req.Question),
			zap.Error(err))
		return nil, domain.NewGenerationError(err)
	}

	return &dto.SuggestDistractorsResponse{Distractors: output.Distractors}, nil
}

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Malay-Max/QuizWhiz-sub001/internal/domain"
	"github.com/Malay-Max/QuizWhiz-sub001/internal/dto"
	"github.com/Malay-Max/QuizWhiz-sub001/internal/util"
)

// QuestionService defines question authoring operations.
type QuestionService interface {
	AddQuestion(ctx context.Context, categoryID string, req *dto.CreateQuestionRequest) (*dto.QuestionResponse, error)
	GetQuestion(ctx context.Context, id string) (*dto.QuestionResponse, error)
	UpdateQuestion(ctx context.Context, id string, req *dto.UpdateQuestionRequest) (*dto.QuestionResponse, error)
	DeleteQuestion(ctx context.Context, id string) error
	ListByCategory(ctx context.Context, categoryID string) ([]*dto.QuestionResponse, error)
}

type questionService struct {
	questions  domain.QuestionRepository
	categories domain.CategoryRepository
}

// NewQuestionService creates a new QuestionService.
func NewQuestionService(questions domain.QuestionRepository, categories domain.CategoryRepository) QuestionService {
	return &questionService{questions: questions, categories: categories}
}

// AddQuestion validates and persists a new question under categoryID.
// Options supplied without an id get a fresh opaque one.
func (s *questionService) AddQuestion(ctx context.Context, categoryID string, req *dto.CreateQuestionRequest) (*dto.QuestionResponse, error) {
	category, err := s.categories.GetByID(ctx, categoryID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to resolve category", err)
	}
	if category == nil {
		return nil, domain.NewNotFoundError(fmt.Sprintf("Category not found: %s", categoryID))
	}

	options := make([]domain.AnswerOption, len(req.Options))
	for i, opt := range req.Options {
		id := opt.ID
		if id == "" {
			id = util.NewULID()
		}
		options[i] = domain.AnswerOption{ID: id, Text: opt.Text}
	}

	question := &domain.Question{
		ID:              util.NewULID(),
		Text:            req.Text,
		Options:         options,
		CorrectAnswerID: req.CorrectAnswerID,
		CategoryID:      categoryID,
		Explanation:     req.Explanation,
		Source:          req.Source,
	}
	if err := question.Validate(); err != nil {
		return nil, err
	}

	if err := s.questions.Save(ctx, question); err != nil {
		return nil, domain.NewInternalError("Failed to save question", err)
	}
	return toQuestionResponse(question), nil
}

// GetQuestion returns the authoring view of a question.
func (s *questionService) GetQuestion(ctx context.Context, id string) (*dto.QuestionResponse, error) {
	question, err := s.questions.GetByID(ctx, id)
	if err != nil {
		return nil, domain.NewInternalError("Failed to load question", err)
	}
	if question == nil {
		return nil, domain.NewNotFoundError(fmt.Sprintf("Question not found: %s", id))
	}
	return toQuestionResponse(question), nil
}

// UpdateQuestion applies a sparse patch. Only supplied fields overwrite;
// cross-field invariants are validated on the merged value before commit.
func (s *questionService) UpdateQuestion(ctx context.Context, id string, req *dto.UpdateQuestionRequest) (*dto.QuestionResponse, error) {
	existing, err := s.questions.GetByID(ctx, id)
	if err != nil {
		return nil, domain.NewInternalError("Failed to load question", err)
	}
	if existing == nil {
		return nil, domain.NewNotFoundError(fmt.Sprintf("Question not found: %s", id))
	}

	if req.CategoryID != nil {
		category, err := s.categories.GetByID(ctx, *req.CategoryID)
		if err != nil {
			return nil, domain.NewInternalError("Failed to resolve category", err)
		}
		if category == nil {
			return nil, domain.NewNotFoundError(fmt.Sprintf("Category not found: %s", *req.CategoryID))
		}
	}

	patch := domain.QuestionPatch{
		Text:            req.Text,
		CorrectAnswerID: req.CorrectAnswerID,
		CategoryID:      req.CategoryID,
		Explanation:     req.Explanation,
		Source:          req.Source,
	}
	if req.Options != nil {
		options := make([]domain.AnswerOption, len(*req.Options))
		for i, opt := range *req.Options {
			options[i] = domain.AnswerOption{ID: opt.ID, Text: opt.Text}
		}
		patch.Options = &options
	}

	merged, err := domain.MergeQuestion(*existing, patch, util.NewULID)
	if err != nil {
		return nil, err
	}

	if err := s.questions.Update(ctx, &merged); err != nil {
		var domainErr *domain.DomainError
		if errors.As(err, &domainErr) {
			return nil, err
		}
		return nil, domain.NewInternalError("Failed to update question", err)
	}
	return toQuestionResponse(&merged), nil
}

// DeleteQuestion removes a question unconditionally.
func (s *questionService) DeleteQuestion(ctx context.Context, id string) error {
	if err := s.questions.Delete(ctx, id); err != nil {
		var domainErr *domain.DomainError
		if errors.As(err, &domainErr) {
			return err
		}
		return domain.NewInternalError("Failed to delete question", err)
	}
	return nil
}

// ListByCategory returns every question scoped to the category or any of
// its descendants.
func (s *questionService) ListByCategory(ctx context.Context, categoryID string) ([]*dto.QuestionResponse, error) {
	questions, err := s.questionsInSubtree(ctx, categoryID)
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.QuestionResponse, len(questions))
	for i, q := range questions {
		responses[i] = toQuestionResponse(q)
	}
	return responses, nil
}

// questionsInSubtree resolves the category, its descendants, and all
// questions they own.
func (s *questionService) questionsInSubtree(ctx context.Context, categoryID string) ([]*domain.Question, error) {
	category, err := s.categories.GetByID(ctx, categoryID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to resolve category", err)
	}
	if category == nil {
		return nil, domain.NewNotFoundError(fmt.Sprintf("Category not found: %s", categoryID))
	}

	categories, err := s.categories.GetAll(ctx)
	if err != nil {
		return nil, domain.NewInternalError("Failed to load categories", err)
	}
	ids := append([]string{categoryID}, domain.DescendantCategoryIDs(categoryID, categories)...)

	questions, err := s.questions.GetByCategoryIDs(ctx, ids)
	if err != nil {
		return nil, domain.NewInternalError("Failed to load questions", err)
	}
	return questions, nil
}

func toQuestionResponse(q *domain.Question) *dto.QuestionResponse {
	options := make([]dto.OptionPayload, len(q.Options))
	for i, opt := range q.Options {
		options[i] = dto.OptionPayload{ID: opt.ID, Text: opt.Text}
	}
	return &dto.QuestionResponse{
		ID:              q.ID,
		Text:            q.Text,
		Options:         options,
		CorrectAnswerID: q.CorrectAnswerID,
		CategoryID:      q.CategoryID,
		Explanation:     q.Explanation,
		Source:          q.Source,
	}
}

package service

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/Malay-Max/QuizWhiz-sub001/internal/config"
	"github.com/Malay-Max/QuizWhiz-sub001/internal/domain"
	"github.com/Malay-Max/QuizWhiz-sub001/internal/dto"
	"github.com/Malay-Max/QuizWhiz-sub001/internal/logger"
	"github.com/Malay-Max/QuizWhiz-sub001/internal/util"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// quizLinePattern matches the delimited text import format:
// ;;<question>;; {<opt1> - <opt2> - ...} [<correct option text>]
var quizLinePattern = regexp.MustCompile(`^;;(.+?);;\s*\{(.+?)\}\s*\[(.+?)\]\s*$`)

const optionSeparator = " - "

// ImportService handles batch question import and export.
type ImportService interface {
	ImportText(ctx context.Context, categoryID, payload string) (*dto.ImportReport, error)
	ImportJSON(ctx context.Context, categoryID string, items []dto.ImportQuestionItem) (*dto.ImportReport, error)
	Export(ctx context.Context, categoryID string) (string, error)
}

type importService struct {
	questions  domain.QuestionRepository
	categories domain.CategoryRepository
	generator  domain.Generator
	cfg        *config.Config
}

// NewImportService creates a new ImportService. generator may be nil; AI
// enrichment of imported questions is then skipped.
func NewImportService(
	questions domain.QuestionRepository,
	categories domain.CategoryRepository,
	generator domain.Generator,
	cfg *config.Config,
) ImportService {
	return &importService{
		questions:  questions,
		categories: categories,
		generator:  generator,
		cfg:        cfg,
	}
}

// parsedQuestion is the intermediate result of decoding one import line.
type parsedQuestion struct {
	text        string
	options     []string
	correctText string
}

// parseQuizLine decodes one line of the text import format.
func parseQuizLine(line string) (*parsedQuestion, error) {
	match := quizLinePattern.FindStringSubmatch(line)
	if match == nil {
		return nil, fmt.Errorf("malformed line, expected ';;question;; {opt - opt} [correct]'")
	}

	options := strings.Split(match[2], optionSeparator)
	for i := range options {
		options[i] = strings.TrimSpace(options[i])
	}
	if len(options) < 2 {
		return nil, fmt.Errorf("needs at least two options, got %d", len(options))
	}

	correctText := strings.TrimSpace(match[3])
	found := false
	for _, opt := range options {
		if opt == correctText {
			found = true
			break
		}
	}
	if !found {
		return nil, fmt.Errorf("correct answer %q does not match any option", correctText)
	}

	return &parsedQuestion{
		text:        strings.TrimSpace(match[1]),
		options:     options,
		correctText: correctText,
	}, nil
}

// ImportText imports questions from the delimited text format, one per
// line. Malformed lines are skipped individually and recorded; a bad line
// never aborts the batch.
func (s *importService) ImportText(ctx context.Context, categoryID, payload string) (*dto.ImportReport, error) {
	if err := s.resolveCategory(ctx, categoryID); err != nil {
		return nil, err
	}

	report := &dto.ImportReport{}
	var added []*domain.Question

	for i, line := range strings.Split(payload, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		parsed, err := parseQuizLine(line)
		if err != nil {
			report.Failed++
			report.Errors = append(report.Errors, fmt.Sprintf("line %d: %v", i+1, err))
			continue
		}

		question := buildQuestion(categoryID, parsed.text, parsed.options, parsed.correctText, "")
		if err := s.saveImported(ctx, question); err != nil {
			report.Failed++
			report.Errors = append(report.Errors, fmt.Sprintf("line %d: %v", i+1, err))
			continue
		}
		report.Added++
		added = append(added, question)
	}

	s.enrichExplanations(ctx, added)
	return report, nil
}

// ImportJSON imports questions from the structured format: options keyed
// by single letters, the correct answer named by its letter. Item faults
// are isolated exactly like the text format.
func (s *importService) ImportJSON(ctx context.Context, categoryID string, items []dto.ImportQuestionItem) (*dto.ImportReport, error) {
	if err := s.resolveCategory(ctx, categoryID); err != nil {
		return nil, err
	}

	report := &dto.ImportReport{}
	var added []*domain.Question

	for i, item := range items {
		question, err := questionFromImportItem(categoryID, item)
		if err != nil {
			report.Failed++
			report.Errors = append(report.Errors, fmt.Sprintf("item %d: %v", i+1, err))
			continue
		}
		if err := s.saveImported(ctx, question); err != nil {
			report.Failed++
			report.Errors = append(report.Errors, fmt.Sprintf("item %d: %v", i+1, err))
			continue
		}
		report.Added++
		added = append(added, question)
	}

	s.enrichExplanations(ctx, added)
	return report, nil
}

// Export renders the category's questions (descendants included) back
// into the text import format. Embedded newlines are flattened so the
// format's delimiters cannot be corrupted.
func (s *importService) Export(ctx context.Context, categoryID string) (string, error) {
	if err := s.resolveCategory(ctx, categoryID); err != nil {
		return "", err
	}

	categories, err := s.categories.GetAll(ctx)
	if err != nil {
		return "", domain.NewInternalError("Failed to load categories", err)
	}
	ids := append([]string{categoryID}, domain.DescendantCategoryIDs(categoryID, categories)...)

	questions, err := s.questions.GetByCategoryIDs(ctx, ids)
	if err != nil {
		return "", domain.NewInternalError("Failed to load questions", err)
	}

	var lines []string
	for _, q := range questions {
		correct, ok := q.CorrectOption()
		if !ok {
			logger.Get().Warn("Skipping question with unresolvable correct answer on export",
				zap.String("question_id", q.ID))
			continue
		}
		texts := make([]string, len(q.Options))
		for i, opt := range q.Options {
			texts[i] = sanitizeForExport(opt.Text)
		}
		lines = append(lines, fmt.Sprintf(";;%s;; {%s} [%s]",
			sanitizeForExport(q.Text),
			strings.Join(texts, optionSeparator),
			sanitizeForExport(correct.Text),
		))
	}
	return strings.Join(lines, "\n"), nil
}

func (s *importService) resolveCategory(ctx context.Context, categoryID string) error {
	category, err := s.categories.GetByID(ctx, categoryID)
	if err != nil {
		return domain.NewInternalError("Failed to resolve category", err)
	}
	if category == nil {
		return domain.NewNotFoundError(fmt.Sprintf("Category not found: %s", categoryID))
	}
	return nil
}

func (s *importService) saveImported(ctx context.Context, question *domain.Question) error {
	if err := question.Validate(); err != nil {
		return err
	}
	if err := s.questions.Save(ctx, question); err != nil {
		return fmt.Errorf("failed to save question: %w", err)
	}
	return nil
}

// enrichExplanations backfills missing explanations for freshly imported
// questions through the AI generator, with bounded parallelism. Failures
// only cost the enrichment; the import itself already succeeded.
func (s *importService) enrichExplanations(ctx context.Context, questions []*domain.Question) {
	if s.generator == nil || s.cfg == nil || !s.cfg.LLM.EnrichImports {
		return
	}

	g, groupCtx := errgroup.WithContext(ctx)
	limit := s.cfg.LLM.MaxConcurrency
	if limit <= 0 {
		limit = 1
	}
	g.SetLimit(limit)

	for _, question := range questions {
		if question.Explanation != "" {
			continue
		}
		q := question
		g.Go(func() error {
			correct, ok := q.CorrectOption()
			if !ok {
				return nil
			}
			texts := make([]string, len(q.Options))
			for i, opt := range q.Options {
				texts[i] = opt.Text
			}

			genCtx, cancel := context.WithTimeout(groupCtx, s.cfg.LLM.Timeout)
			defer cancel()

			explanation, err := s.generator.GenerateExplanation(genCtx, domain.ExplanationInput{
				Question:      q.Text,
				Options:       texts,
				CorrectAnswer: correct.Text,
			})
			if err != nil {
				logger.Get().Warn("Explanation enrichment failed",
					zap.String("question_id", q.ID),
					zap.Error(err))
				return nil
			}

			q.Explanation = explanation
			if err := s.questions.Update(ctx, q); err != nil {
				logger.Get().Warn("Failed to persist enriched explanation",
					zap.String("question_id", q.ID),
					zap.Error(err))
			}
			return nil
		})
	}
	_ = g.Wait()
}

func buildQuestion(categoryID, text string, optionTexts []string, correctText, explanation string) *domain.Question {
	options := make([]domain.AnswerOption, len(optionTexts))
	correctID := ""
	for i, optText := range optionTexts {
		options[i] = domain.AnswerOption{ID: util.NewULID(), Text: optText}
		if optText == correctText && correctID == "" {
			correctID = options[i].ID
		}
	}
	return &domain.Question{
		ID:              util.NewULID(),
		Text:            text,
		Options:         options,
		CorrectAnswerID: correctID,
		CategoryID:      categoryID,
		Explanation:     explanation,
	}
}

func questionFromImportItem(categoryID string, item dto.ImportQuestionItem) (*domain.Question, error) {
	if strings.TrimSpace(item.Question) == "" {
		return nil, fmt.Errorf("question text is required")
	}
	if len(item.Options) < 2 {
		return nil, fmt.Errorf("needs at least two options, got %d", len(item.Options))
	}
	correctText, ok := item.Options[item.CorrectAnswer]
	if !ok {
		return nil, fmt.Errorf("correct answer key %q does not match any option", item.CorrectAnswer)
	}

	// Letter keys are sorted so option order is deterministic.
	letters := make([]string, 0, len(item.Options))
	for letter := range item.Options {
		letters = append(letters, letter)
	}
	sort.Strings(letters)

	texts := make([]string, len(letters))
	for i, letter := range letters {
		texts[i] = item.Options[letter]
	}
	return buildQuestion(categoryID, item.Question, texts, correctText, item.Explanation), nil
}

// sanitizeForExport flattens newlines that would corrupt the line format.
func sanitizeForExport(s string) string {
	s = strings.ReplaceAll(s, "\r\n", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "\r", " ")
	return strings.TrimSpace(s)
}

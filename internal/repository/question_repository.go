package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Malay-Max/QuizWhiz-sub001/internal/domain"
	"github.com/Malay-Max/QuizWhiz-sub001/internal/repository/models"

	"github.com/jmoiron/sqlx"
)

const questionColumns = `id, text, options, correct_answer_id, category_id, explanation, source, created_at, updated_at`

// QuestionDatabaseAdapter implements domain.QuestionRepository using sqlx.
type QuestionDatabaseAdapter struct {
	db *sqlx.DB
}

// NewQuestionDatabaseAdapter creates a new question repository.
func NewQuestionDatabaseAdapter(db *sqlx.DB) domain.QuestionRepository {
	return &QuestionDatabaseAdapter{db: db}
}

// GetByID returns a question by id, or nil when it does not exist.
func (a *QuestionDatabaseAdapter) GetByID(ctx context.Context, id string) (*domain.Question, error) {
	exec := GetExecutor(ctx, a.db)
	var row models.Question
	query := `SELECT ` + questionColumns + ` FROM questions WHERE id = ?`
	if err := exec.GetContext(ctx, &row, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get question %s: %w", id, err)
	}
	return toDomainQuestion(&row), nil
}

// GetByCategoryIDs returns every question owned by one of the categories.
func (a *QuestionDatabaseAdapter) GetByCategoryIDs(ctx context.Context, categoryIDs []string) ([]*domain.Question, error) {
	if len(categoryIDs) == 0 {
		return nil, nil
	}
	exec := GetExecutor(ctx, a.db)
	query, args, err := sqlx.In(`SELECT `+questionColumns+` FROM questions WHERE category_id IN (?)`, categoryIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to build question query: %w", err)
	}
	var rows []models.Question
	if err := exec.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to get questions by categories: %w", err)
	}
	return toDomainQuestions(rows), nil
}

// GetAll returns the whole question pool.
func (a *QuestionDatabaseAdapter) GetAll(ctx context.Context) ([]*domain.Question, error) {
	exec := GetExecutor(ctx, a.db)
	var rows []models.Question
	if err := exec.SelectContext(ctx, &rows, `SELECT `+questionColumns+` FROM questions`); err != nil {
		return nil, fmt.Errorf("failed to get questions: %w", err)
	}
	return toDomainQuestions(rows), nil
}

// Save persists a new question.
func (a *QuestionDatabaseAdapter) Save(ctx context.Context, question *domain.Question) error {
	exec := GetExecutor(ctx, a.db)
	now := time.Now()
	question.CreatedAt = now
	question.UpdatedAt = now

	row := toModelQuestion(question)
	query := `INSERT INTO questions (` + questionColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := exec.ExecContext(ctx, query,
		row.ID, row.Text, row.Options, row.CorrectAnswerID, row.CategoryID,
		row.Explanation, row.Source, row.CreatedAt, row.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save question: %w", err)
	}
	return nil
}

// Update overwrites an existing question.
func (a *QuestionDatabaseAdapter) Update(ctx context.Context, question *domain.Question) error {
	exec := GetExecutor(ctx, a.db)
	question.UpdatedAt = time.Now()

	row := toModelQuestion(question)
	query := `UPDATE questions
		SET text = ?, options = ?, correct_answer_id = ?, category_id = ?, explanation = ?, source = ?, updated_at = ?
		WHERE id = ?`
	result, err := exec.ExecContext(ctx, query,
		row.Text, row.Options, row.CorrectAnswerID, row.CategoryID,
		row.Explanation, row.Source, row.UpdatedAt, row.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update question %s: %w", question.ID, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return domain.NewNotFoundError(fmt.Sprintf("Question not found: %s", question.ID))
	}
	return nil
}

// Delete removes a question by id.
func (a *QuestionDatabaseAdapter) Delete(ctx context.Context, id string) error {
	exec := GetExecutor(ctx, a.db)
	result, err := exec.ExecContext(ctx, `DELETE FROM questions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete question %s: %w", id, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return domain.NewNotFoundError(fmt.Sprintf("Question not found: %s", id))
	}
	return nil
}

// DeleteByCategoryIDs removes all questions owned by the categories and
// returns the deleted count.
func (a *QuestionDatabaseAdapter) DeleteByCategoryIDs(ctx context.Context, categoryIDs []string) (int, error) {
	if len(categoryIDs) == 0 {
		return 0, nil
	}
	exec := GetExecutor(ctx, a.db)
	query, args, err := sqlx.In(`DELETE FROM questions WHERE category_id IN (?)`, categoryIDs)
	if err != nil {
		return 0, fmt.Errorf("failed to build delete query: %w", err)
	}
	result, err := exec.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to delete questions: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return int(affected), nil
}

func toDomainQuestion(row *models.Question) *domain.Question {
	options := make([]domain.AnswerOption, len(row.Options))
	for i, opt := range row.Options {
		options[i] = domain.AnswerOption{ID: opt.ID, Text: opt.Text}
	}
	return &domain.Question{
		ID:              row.ID,
		Text:            row.Text,
		Options:         options,
		CorrectAnswerID: row.CorrectAnswerID,
		CategoryID:      row.CategoryID,
		Explanation:     row.Explanation.String,
		Source:          row.Source.String,
		CreatedAt:       row.CreatedAt,
		UpdatedAt:       row.UpdatedAt,
	}
}

func toDomainQuestions(rows []models.Question) []*domain.Question {
	questions := make([]*domain.Question, len(rows))
	for i := range rows {
		questions[i] = toDomainQuestion(&rows[i])
	}
	return questions
}

func toModelQuestion(q *domain.Question) *models.Question {
	options := make(models.Options, len(q.Options))
	for i, opt := range q.Options {
		options[i] = models.Option{ID: opt.ID, Text: opt.Text}
	}
	return &models.Question{
		ID:              q.ID,
		Text:            q.Text,
		Options:         options,
		CorrectAnswerID: q.CorrectAnswerID,
		CategoryID:      q.CategoryID,
		Explanation:     nullString(q.Explanation),
		Source:          nullString(q.Source),
		CreatedAt:       q.CreatedAt,
		UpdatedAt:       q.UpdatedAt,
	}
}

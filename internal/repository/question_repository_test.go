package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/Malay-Max/QuizWhiz-sub001/internal/domain"
	"github.com/Malay-Max/QuizWhiz-sub001/internal/util"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const questionSelect = `SELECT id, text, options, correct_answer_id, category_id, explanation, source, created_at, updated_at FROM questions`

func questionRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "text", "options", "correct_answer_id", "category_id",
		"explanation", "source", "created_at", "updated_at",
	})
}

func TestQuestionGetByID(t *testing.T) {
	t.Run("found with decoded options", func(t *testing.T) {
		db, mock := setupTestDB(t)
		repo := NewQuestionDatabaseAdapter(db)

		id := util.NewULID()
		categoryID := util.NewULID()
		now := time.Now()
		rows := questionRows().AddRow(
			id, "What is 2+2?",
			`[{"id":"a","text":"3"},{"id":"b","text":"4"}]`,
			"b", categoryID, nil, nil, now, now,
		)

		mock.ExpectQuery(regexp.QuoteMeta(questionSelect+` WHERE id = ?`)).
			WithArgs(id).
			WillReturnRows(rows)

		question, err := repo.GetByID(context.Background(), id)
		require.NoError(t, err)
		require.NotNil(t, question)
		assert.Equal(t, "What is 2+2?", question.Text)
		require.Len(t, question.Options, 2)
		assert.Equal(t, "b", question.CorrectAnswerID)
		correct, ok := question.CorrectOption()
		require.True(t, ok)
		assert.Equal(t, "4", correct.Text)
	})

	t.Run("missing returns nil without error", func(t *testing.T) {
		db, mock := setupTestDB(t)
		repo := NewQuestionDatabaseAdapter(db)

		mock.ExpectQuery(regexp.QuoteMeta(questionSelect + ` WHERE id = ?`)).
			WillReturnRows(questionRows())

		question, err := repo.GetByID(context.Background(), util.NewULID())
		require.NoError(t, err)
		assert.Nil(t, question)
	})
}

func TestQuestionGetByCategoryIDs(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewQuestionDatabaseAdapter(db)

	categoryIDs := []string{util.NewULID(), util.NewULID()}
	now := time.Now()
	rows := questionRows().
		AddRow(util.NewULID(), "Q1", `[{"id":"a","text":"x"},{"id":"b","text":"y"}]`, "a", categoryIDs[0], "because", nil, now, now).
		AddRow(util.NewULID(), "Q2", `[{"id":"a","text":"x"},{"id":"b","text":"y"}]`, "b", categoryIDs[1], nil, "imported", now, now)

	mock.ExpectQuery(regexp.QuoteMeta(questionSelect+` WHERE category_id IN (?, ?)`)).
		WithArgs(categoryIDs[0], categoryIDs[1]).
		WillReturnRows(rows)

	questions, err := repo.GetByCategoryIDs(context.Background(), categoryIDs)
	require.NoError(t, err)
	require.Len(t, questions, 2)
	assert.Equal(t, "because", questions[0].Explanation)
	assert.Equal(t, "imported", questions[1].Source)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQuestionSave(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewQuestionDatabaseAdapter(db)

	question := &domain.Question{
		ID:   util.NewULID(),
		Text: "What is 2+2?",
		Options: []domain.AnswerOption{
			{ID: "a", Text: "3"},
			{ID: "b", Text: "4"},
		},
		CorrectAnswerID: "b",
		CategoryID:      util.NewULID(),
	}

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO questions`)).
		WithArgs(
			question.ID, question.Text,
			`[{"id":"a","text":"3"},{"id":"b","text":"4"}]`,
			question.CorrectAnswerID, question.CategoryID,
			sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(),
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, repo.Save(context.Background(), question))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQuestionUpdate(t *testing.T) {
	t.Run("zero affected rows is not found", func(t *testing.T) {
		db, mock := setupTestDB(t)
		repo := NewQuestionDatabaseAdapter(db)

		mock.ExpectExec(`UPDATE questions`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Update(context.Background(), &domain.Question{
			ID:   util.NewULID(),
			Text: "Q",
			Options: []domain.AnswerOption{
				{ID: "a", Text: "x"},
				{ID: "b", Text: "y"},
			},
			CorrectAnswerID: "a",
			CategoryID:      util.NewULID(),
		})
		require.Error(t, err)
		var domainErr *domain.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, domain.CodeNotFound, domainErr.Code)
	})
}

func TestQuestionDelete(t *testing.T) {
	t.Run("deletes", func(t *testing.T) {
		db, mock := setupTestDB(t)
		repo := NewQuestionDatabaseAdapter(db)

		id := util.NewULID()
		mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM questions WHERE id = ?`)).
			WithArgs(id).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.Delete(context.Background(), id))
	})

	t.Run("zero affected rows is not found", func(t *testing.T) {
		db, mock := setupTestDB(t)
		repo := NewQuestionDatabaseAdapter(db)

		mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM questions WHERE id = ?`)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Delete(context.Background(), util.NewULID())
		require.Error(t, err)
		var domainErr *domain.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, domain.CodeNotFound, domainErr.Code)
	})
}

func TestQuestionDeleteByCategoryIDs(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewQuestionDatabaseAdapter(db)

	categoryIDs := []string{util.NewULID(), util.NewULID()}
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM questions WHERE category_id IN (?, ?)`)).
		WithArgs(categoryIDs[0], categoryIDs[1]).
		WillReturnResult(sqlmock.NewResult(0, 5))

	deleted, err := repo.DeleteByCategoryIDs(context.Background(), categoryIDs)
	require.NoError(t, err)
	assert.Equal(t, 5, deleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validQuestion() Question {
	return Question{
		ID:   "q1",
		Text: "What is 2+2?",
		Options: []AnswerOption{
			{ID: "a", Text: "3"},
			{ID: "b", Text: "4"},
		},
		CorrectAnswerID: "b",
		CategoryID:      "cat1",
	}
}

func TestQuestionValidate(t *testing.T) {
	q := validQuestion()
	assert.NoError(t, q.Validate())

	q = validQuestion()
	q.Text = "  "
	assert.Error(t, q.Validate())

	q = validQuestion()
	q.Options = q.Options[:1]
	assert.Error(t, q.Validate())

	q = validQuestion()
	q.CorrectAnswerID = "missing"
	assert.Error(t, q.Validate())
}

func TestMergeQuestionPartialUpdate(t *testing.T) {
	existing := validQuestion()
	newText := "What is 3+3?"

	merged, err := MergeQuestion(existing, QuestionPatch{Text: &newText}, func() string { return "gen" })
	require.NoError(t, err)
	assert.Equal(t, newText, merged.Text)
	assert.Equal(t, existing.Options, merged.Options, "unsupplied fields are untouched")
	assert.Equal(t, existing.CorrectAnswerID, merged.CorrectAnswerID)
}

func TestMergeQuestionReplacedOptionsMustResolveCorrectAnswer(t *testing.T) {
	existing := validQuestion()
	newOptions := []AnswerOption{
		{ID: "x", Text: "5"},
		{ID: "y", Text: "6"},
	}

	// Old correct answer id no longer resolves in the new option set.
	_, err := MergeQuestion(existing, QuestionPatch{Options: &newOptions}, func() string { return "gen" })
	var domainErr *DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, CodeValidation, domainErr.Code)

	// Supplying a matching correct answer id makes the patch valid.
	correct := "y"
	merged, err := MergeQuestion(existing, QuestionPatch{Options: &newOptions, CorrectAnswerID: &correct}, func() string { return "gen" })
	require.NoError(t, err)
	assert.Equal(t, "y", merged.CorrectAnswerID)
}

func TestMergeQuestionAssignsIDsToNewOptions(t *testing.T) {
	existing := validQuestion()
	newOptions := []AnswerOption{
		{Text: "5"},
		{ID: "keep", Text: "6"},
	}
	correct := "keep"

	i := 0
	merged, err := MergeQuestion(existing, QuestionPatch{Options: &newOptions, CorrectAnswerID: &correct}, func() string {
		i++
		return "gen1"
	})
	require.NoError(t, err)
	assert.Equal(t, "gen1", merged.Options[0].ID)
	assert.Equal(t, "keep", merged.Options[1].ID)
	assert.Equal(t, 1, i)
	// The patch slice itself is not mutated.
	assert.Empty(t, newOptions[0].ID)
}

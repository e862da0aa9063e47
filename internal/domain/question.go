package domain

import (
	"strings"
	"time"
)

// AnswerOption is a single selectable answer. The id is opaque, assigned
// at question-creation time, and stable across edits unless the option
// set is replaced.
type AnswerOption struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// Question represents an authored multiple-choice question owned by
// exactly one category.
type Question struct {
	ID              string
	Text            string
	Options         []AnswerOption
	CorrectAnswerID string
	CategoryID      string
	Explanation     string
	Source          string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Validate validates the question invariants: at least two options and a
// correct-answer id resolving to exactly one of them.
func (q *Question) Validate() error {
	if strings.TrimSpace(q.Text) == "" {
		return NewValidationError("question text is required")
	}
	if len(q.Options) < 2 {
		return NewValidationError("question needs at least two options")
	}
	if q.CategoryID == "" {
		return NewValidationError("question must belong to a category")
	}
	matches := 0
	for _, opt := range q.Options {
		if opt.ID == q.CorrectAnswerID {
			matches++
		}
	}
	if matches != 1 {
		return NewValidationError("correct answer id must match exactly one option")
	}
	return nil
}

// CorrectOption returns the option referenced by CorrectAnswerID.
func (q *Question) CorrectOption() (AnswerOption, bool) {
	for _, opt := range q.Options {
		if opt.ID == q.CorrectAnswerID {
			return opt, true
		}
	}
	return AnswerOption{}, false
}

// QuestionPatch carries a sparse update to a question. Nil fields leave
// the existing value untouched.
type QuestionPatch struct {
	Text            *string
	Options         *[]AnswerOption
	CorrectAnswerID *string
	CategoryID      *string
	Explanation     *string
	Source          *string
}

// MergeQuestion applies a sparse patch to an existing question and
// returns the merged value, validating cross-field invariants before
// anything is committed. Replacing the options re-checks that the
// effective correct-answer id still resolves within the new set; options
// supplied without an id get a fresh one from newID.
func MergeQuestion(existing Question, patch QuestionPatch, newID func() string) (Question, error) {
	merged := existing

	if patch.Text != nil {
		merged.Text = *patch.Text
	}
	if patch.Options != nil {
		options := make([]AnswerOption, len(*patch.Options))
		copy(options, *patch.Options)
		for i := range options {
			if options[i].ID == "" {
				options[i].ID = newID()
			}
		}
		merged.Options = options
	}
	if patch.CorrectAnswerID != nil {
		merged.CorrectAnswerID = *patch.CorrectAnswerID
	}
	if patch.CategoryID != nil {
		merged.CategoryID = *patch.CategoryID
	}
	if patch.Explanation != nil {
		merged.Explanation = *patch.Explanation
	}
	if patch.Source != nil {
		merged.Source = *patch.Source
	}

	if err := merged.Validate(); err != nil {
		return Question{}, err
	}
	return merged, nil
}

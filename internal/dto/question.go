package dto

// OptionPayload is one answer option as supplied or returned by the API.
// The id may be omitted on create; a fresh one is assigned.
type OptionPayload struct {
	ID   string `json:"id,omitempty"`
	Text string `json:"text"`
}

// CreateQuestionRequest is the body for POST /categories/{id}/questions.
type CreateQuestionRequest struct {
	Text            string          `json:"text"`
	Options         []OptionPayload `json:"options"`
	CorrectAnswerID string          `json:"correct_answer_id"`
	Explanation     string          `json:"explanation,omitempty"`
	Source          string          `json:"source,omitempty"`
}

// UpdateQuestionRequest is the sparse body for PUT /questions/{id}. Only
// supplied fields overwrite the stored question.
type UpdateQuestionRequest struct {
	Text            *string          `json:"text,omitempty"`
	Options         *[]OptionPayload `json:"options,omitempty"`
	CorrectAnswerID *string          `json:"correct_answer_id,omitempty"`
	CategoryID      *string          `json:"category_id,omitempty"`
	Explanation     *string          `json:"explanation,omitempty"`
	Source          *string          `json:"source,omitempty"`
}

// QuestionResponse represents a question in authoring responses. This is
// the authoring view, so the correct answer id is included.
type QuestionResponse struct {
	ID              string          `json:"id"`
	Text            string          `json:"text"`
	Options         []OptionPayload `json:"options"`
	CorrectAnswerID string          `json:"correct_answer_id"`
	CategoryID      string          `json:"category_id"`
	Explanation     string          `json:"explanation,omitempty"`
	Source          string          `json:"source,omitempty"`
}

// ImportQuestionItem is one entry of the structured (JSON) batch import
// format: options keyed by single letters, the correct answer named by
// its letter.
type ImportQuestionItem struct {
	Question      string            `json:"question"`
	Options       map[string]string `json:"options"`
	CorrectAnswer string            `json:"correctAnswer"`
	Explanation   string            `json:"explanation,omitempty"`
}

// ImportReport aggregates the outcome of a batch import. Failures are
// isolated per item and never abort the batch.
type ImportReport struct {
	Added  int      `json:"added"`
	Failed int      `json:"failed"`
	Errors []string `json:"errors,omitempty"`
}

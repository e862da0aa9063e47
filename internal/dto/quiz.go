package dto

// StartQuizRequest is the body for POST /quizzes. CategoryID may be the
// literal "random" to draw from the whole question pool.
type StartQuizRequest struct {
	CategoryID    string `json:"category_id"`
	QuestionCount int    `json:"question_count,omitempty"`
}

// QuestionView is the public projection of a session question: no
// correct-answer id ever crosses this boundary.
type QuestionView struct {
	ID      string          `json:"id"`
	Text    string          `json:"text"`
	Options []OptionPayload `json:"options"`
}

// StartQuizResponse returns the new session and its first question.
type StartQuizResponse struct {
	SessionID      string        `json:"session_id"`
	CategoryID     string        `json:"category_id"`
	CategoryName   string        `json:"category_name"`
	TotalQuestions int           `json:"total_questions"`
	Question       *QuestionView `json:"question"`
}

// SubmitAnswerRequest is the body for POST /quizzes/{id}/answer. An empty
// selected_answer_id records the question as skipped.
type SubmitAnswerRequest struct {
	QuestionID       string `json:"question_id"`
	SelectedAnswerID string `json:"selected_answer_id,omitempty"`
}

// SubmitAnswerResponse reveals the outcome for the answered question and,
// while the session is still running, the next question's public view.
type SubmitAnswerResponse struct {
	IsCorrect       bool          `json:"is_correct"`
	CorrectAnswerID string        `json:"correct_answer_id"`
	Explanation     string        `json:"explanation,omitempty"`
	Completed       bool          `json:"completed"`
	NextQuestion    *QuestionView `json:"next_question,omitempty"`
}

// SessionStatusResponse is the public projection of a session.
type SessionStatusResponse struct {
	SessionID       string        `json:"session_id"`
	CategoryID      string        `json:"category_id"`
	CategoryName    string        `json:"category_name"`
	Status          string        `json:"status"`
	TotalQuestions  int           `json:"total_questions"`
	AnsweredCount   int           `json:"answered_count"`
	CurrentQuestion *QuestionView `json:"current_question,omitempty"`
}

// QuizResultsResponse aggregates a completed session.
type QuizResultsResponse struct {
	SessionID        string         `json:"session_id"`
	CategoryName     string         `json:"category_name"`
	TotalQuestions   int            `json:"total_questions"`
	CorrectCount     int            `json:"correct_count"`
	IncorrectCount   int            `json:"incorrect_count"`
	SkippedCount     int            `json:"skipped_count"`
	ScorePercentage  int            `json:"score_percentage"`
	TotalTimeSeconds int            `json:"total_time_seconds"`
	Answers          []AnswerReview `json:"answers"`
}

// AnswerReview is one per-question line of the results view. The correct
// answer id is revealed here because the session is completed.
type AnswerReview struct {
	QuestionID       string  `json:"question_id"`
	QuestionText     string  `json:"question_text"`
	SelectedAnswerID string  `json:"selected_answer_id,omitempty"`
	CorrectAnswerID  string  `json:"correct_answer_id"`
	IsCorrect        bool    `json:"is_correct"`
	Skipped          bool    `json:"skipped"`
	TimeTakenSeconds float64 `json:"time_taken_seconds"`
	Explanation      string  `json:"explanation,omitempty"`
}

package domain

import (
	"fmt"
	"math"
	"time"
)

// SessionStatus enumerates quiz session states.
type SessionStatus string

const (
	SessionActive    SessionStatus = "active"
	SessionPaused    SessionStatus = "paused"
	SessionCompleted SessionStatus = "completed"
)

// SessionQuestion is an immutable snapshot of a question taken when the
// session was created. Option order is pre-shuffled at snapshot time.
type SessionQuestion struct {
	ID              string         `json:"id"`
	Text            string         `json:"text"`
	Options         []AnswerOption `json:"options"`
	CorrectAnswerID string         `json:"correct_answer_id"`
	Explanation     string         `json:"explanation,omitempty"`
}

// QuizAnswer records the outcome of one answered (or skipped) question.
type QuizAnswer struct {
	QuestionID       string        `json:"question_id"`
	SelectedAnswerID string        `json:"selected_answer_id,omitempty"`
	IsCorrect        bool          `json:"is_correct"`
	Skipped          bool          `json:"skipped"`
	TimeTaken        time.Duration `json:"time_taken"`
}

// QuizSession is the persistent record of one quiz run. Questions are a
// snapshot fixed at creation; the cursor only moves forward, one step per
// accepted answer, and always equals len(Answers) while active.
type QuizSession struct {
	ID           string            `json:"id"`
	CategoryID   string            `json:"category_id"`
	CategoryName string            `json:"category_name"`
	UserID       string            `json:"user_id,omitempty"`
	Questions    []SessionQuestion `json:"questions"`
	CurrentIndex int               `json:"current_index"`
	Answers      []QuizAnswer      `json:"answers"`
	Status       SessionStatus     `json:"status"`
	StartTime    time.Time         `json:"start_time"`
	EndTime      *time.Time        `json:"end_time,omitempty"`
	PauseTime    *time.Time        `json:"pause_time,omitempty"`
	TotalPaused  time.Duration     `json:"total_paused"`
	Version      int               `json:"version"`
}

// NewQuizSession creates an active session over a fixed question snapshot.
func NewQuizSession(id, categoryID, categoryName, userID string, questions []SessionQuestion, now time.Time) *QuizSession {
	return &QuizSession{
		ID:           id,
		CategoryID:   categoryID,
		CategoryName: categoryName,
		UserID:       userID,
		Questions:    questions,
		CurrentIndex: 0,
		Answers:      []QuizAnswer{},
		Status:       SessionActive,
		StartTime:    now,
	}
}

// CheckOwner enforces the ownership rule: a session with no owning user
// is accessible to anyone holding its id.
func (s *QuizSession) CheckOwner(requesterID string) error {
	if s.UserID != "" && s.UserID != requesterID {
		return NewForbiddenError("session belongs to another user")
	}
	return nil
}

// CurrentQuestion returns the question at the cursor, or nil when the
// session has run out of questions.
func (s *QuizSession) CurrentQuestion() *SessionQuestion {
	if s.CurrentIndex < 0 || s.CurrentIndex >= len(s.Questions) {
		return nil
	}
	return &s.Questions[s.CurrentIndex]
}

func (s *QuizSession) answered(questionID string) bool {
	for _, a := range s.Answers {
		if a.QuestionID == questionID {
			return true
		}
	}
	return false
}

// elapsedOnCurrent derives the time spent on the current question from
// cumulative session time: wall clock since start, minus paused time,
// minus time already attributed to earlier questions.
func (s *QuizSession) elapsedOnCurrent(now time.Time) time.Duration {
	elapsed := now.Sub(s.StartTime) - s.TotalPaused
	for _, a := range s.Answers {
		elapsed -= a.TimeTaken
	}
	if elapsed < 0 {
		elapsed = 0
	}
	return elapsed
}

// Submit records an answer for the current question and advances the
// cursor. An empty selectedAnswerID marks the question as skipped.
// Answers must arrive in question order; answering a question twice or
// while the session is not active is rejected.
func (s *QuizSession) Submit(questionID, selectedAnswerID string, now time.Time) (*QuizAnswer, error) {
	if s.Status != SessionActive {
		return nil, NewStateError(fmt.Sprintf("cannot submit answer to a %s session", s.Status))
	}

	current := s.CurrentQuestion()
	if current == nil {
		return nil, NewStateError("session has no remaining questions")
	}
	if questionID != current.ID {
		if s.answered(questionID) {
			return nil, NewStateError("question has already been answered")
		}
		return nil, NewValidationError("answer does not match the current question")
	}

	answer := QuizAnswer{
		QuestionID: questionID,
		TimeTaken:  s.elapsedOnCurrent(now),
	}
	if selectedAnswerID == "" {
		answer.Skipped = true
	} else {
		answer.SelectedAnswerID = selectedAnswerID
		answer.IsCorrect = selectedAnswerID == current.CorrectAnswerID
	}

	s.Answers = append(s.Answers, answer)
	s.CurrentIndex++
	if s.CurrentIndex >= len(s.Questions) {
		s.Status = SessionCompleted
		end := now
		s.EndTime = &end
	}
	return &answer, nil
}

// Pause transitions active -> paused.
func (s *QuizSession) Pause(now time.Time) error {
	if s.Status != SessionActive {
		return NewStateError(fmt.Sprintf("cannot pause a %s session", s.Status))
	}
	pause := now
	s.PauseTime = &pause
	s.Status = SessionPaused
	return nil
}

// Resume transitions paused -> active, folding the pause duration into
// TotalPaused so per-question timing excludes it.
func (s *QuizSession) Resume(now time.Time) error {
	if s.Status != SessionPaused {
		return NewStateError(fmt.Sprintf("cannot resume a %s session", s.Status))
	}
	if s.PauseTime != nil {
		s.TotalPaused += now.Sub(*s.PauseTime)
		s.PauseTime = nil
	}
	s.Status = SessionActive
	return nil
}

// SessionResults aggregates a completed session for the results view.
type SessionResults struct {
	TotalQuestions   int
	CorrectCount     int
	IncorrectCount   int
	SkippedCount     int
	ScorePercentage  int
	TotalTimeSeconds int
}

// Results computes the score aggregation. Only completed sessions have
// results.
func (s *QuizSession) Results() (*SessionResults, error) {
	if s.Status != SessionCompleted {
		return nil, NewStateError("session is not completed")
	}

	results := &SessionResults{TotalQuestions: len(s.Questions)}
	for _, a := range s.Answers {
		switch {
		case a.IsCorrect:
			results.CorrectCount++
		case !a.Skipped:
			results.IncorrectCount++
		}
	}
	results.SkippedCount = results.TotalQuestions - results.CorrectCount - results.IncorrectCount
	if results.TotalQuestions > 0 {
		results.ScorePercentage = int(math.Round(100 * float64(results.CorrectCount) / float64(results.TotalQuestions)))
	}
	if s.EndTime != nil {
		results.TotalTimeSeconds = int(math.Round(s.EndTime.Sub(s.StartTime).Seconds()))
	}
	return results, nil
}

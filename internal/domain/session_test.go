package domain

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sessionStart = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func newTestSession(questionCount int) *QuizSession {
	questions := make([]SessionQuestion, questionCount)
	for i := range questions {
		questions[i] = SessionQuestion{
			ID:   fmt.Sprintf("q%d", i+1),
			Text: fmt.Sprintf("Question %d", i+1),
			Options: []AnswerOption{
				{ID: fmt.Sprintf("q%d-right", i+1), Text: "right"},
				{ID: fmt.Sprintf("q%d-wrong", i+1), Text: "wrong"},
			},
			CorrectAnswerID: fmt.Sprintf("q%d-right", i+1),
		}
	}
	return NewQuizSession("sess1", "cat1", "Science", "", questions, sessionStart)
}

func TestSubmitAdvancesCursorAndCompletes(t *testing.T) {
	s := newTestSession(2)

	answer, err := s.Submit("q1", "q1-right", sessionStart.Add(5*time.Second))
	require.NoError(t, err)
	assert.True(t, answer.IsCorrect)
	assert.Equal(t, 1, s.CurrentIndex)
	assert.Equal(t, SessionActive, s.Status)
	assert.Equal(t, len(s.Answers), s.CurrentIndex)

	answer, err = s.Submit("q2", "q2-wrong", sessionStart.Add(9*time.Second))
	require.NoError(t, err)
	assert.False(t, answer.IsCorrect)
	assert.Equal(t, SessionCompleted, s.Status)
	require.NotNil(t, s.EndTime)
	assert.Equal(t, sessionStart.Add(9*time.Second), *s.EndTime)
}

func TestSubmitOutOfOrderRejected(t *testing.T) {
	s := newTestSession(3)

	_, err := s.Submit("q2", "q2-right", sessionStart.Add(time.Second))
	var domainErr *DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, CodeValidation, domainErr.Code)
	assert.Equal(t, 0, s.CurrentIndex)
	assert.Empty(t, s.Answers)
}

func TestSubmitTwiceRejected(t *testing.T) {
	s := newTestSession(3)

	_, err := s.Submit("q1", "q1-right", sessionStart.Add(time.Second))
	require.NoError(t, err)

	_, err = s.Submit("q1", "q1-wrong", sessionStart.Add(2*time.Second))
	var domainErr *DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, CodeInvalidState, domainErr.Code)
	assert.Len(t, s.Answers, 1)
}

func TestSubmitOnNonActiveSessionRejected(t *testing.T) {
	s := newTestSession(2)
	require.NoError(t, s.Pause(sessionStart.Add(time.Second)))

	_, err := s.Submit("q1", "q1-right", sessionStart.Add(2*time.Second))
	var domainErr *DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, CodeInvalidState, domainErr.Code)
}

func TestSkippedAnswer(t *testing.T) {
	s := newTestSession(1)

	answer, err := s.Submit("q1", "", sessionStart.Add(3*time.Second))
	require.NoError(t, err)
	assert.True(t, answer.Skipped)
	assert.False(t, answer.IsCorrect)
	assert.Empty(t, answer.SelectedAnswerID)
}

func TestStatusTransitions(t *testing.T) {
	s := newTestSession(1)

	// active -> paused -> active
	require.NoError(t, s.Pause(sessionStart.Add(time.Second)))
	assert.Equal(t, SessionPaused, s.Status)

	err := s.Pause(sessionStart.Add(2 * time.Second))
	assert.Error(t, err, "pausing a paused session must fail")

	require.NoError(t, s.Resume(sessionStart.Add(3*time.Second)))
	assert.Equal(t, SessionActive, s.Status)

	err = s.Resume(sessionStart.Add(4 * time.Second))
	assert.Error(t, err, "resuming an active session must fail")

	// active -> completed is terminal
	_, err = s.Submit("q1", "q1-right", sessionStart.Add(5*time.Second))
	require.NoError(t, err)
	assert.Equal(t, SessionCompleted, s.Status)
	assert.Error(t, s.Pause(sessionStart.Add(6*time.Second)))
	assert.Error(t, s.Resume(sessionStart.Add(6*time.Second)))
}

func TestPauseAccumulationAndTiming(t *testing.T) {
	s := newTestSession(2)

	// 10s on question 1.
	_, err := s.Submit("q1", "q1-right", sessionStart.Add(10*time.Second))
	require.NoError(t, err)
	assert.Equal(t, 10*time.Second, s.Answers[0].TimeTaken)

	// 30s pause.
	require.NoError(t, s.Pause(sessionStart.Add(15*time.Second)))
	require.NoError(t, s.Resume(sessionStart.Add(45*time.Second)))
	assert.Equal(t, 30*time.Second, s.TotalPaused)
	assert.Nil(t, s.PauseTime)

	// Submitted at t=50s: 50 - 30 paused - 10 on q1 = 10s on q2.
	_, err = s.Submit("q2", "q2-right", sessionStart.Add(50*time.Second))
	require.NoError(t, err)
	assert.Equal(t, 10*time.Second, s.Answers[1].TimeTaken)
}

func TestResults(t *testing.T) {
	s := newTestSession(10)
	now := sessionStart
	for i := 1; i <= 10; i++ {
		now = now.Add(6 * time.Second)
		selected := fmt.Sprintf("q%d-right", i)
		if i > 7 && i <= 10 {
			selected = fmt.Sprintf("q%d-wrong", i)
		}
		_, err := s.Submit(fmt.Sprintf("q%d", i), selected, now)
		require.NoError(t, err)
	}

	results, err := s.Results()
	require.NoError(t, err)
	assert.Equal(t, 10, results.TotalQuestions)
	assert.Equal(t, 7, results.CorrectCount)
	assert.Equal(t, 3, results.IncorrectCount)
	assert.Equal(t, 0, results.SkippedCount)
	assert.Equal(t, 70, results.ScorePercentage)
	assert.Equal(t, 60, results.TotalTimeSeconds)
}

func TestResultsWithSkips(t *testing.T) {
	s := newTestSession(4)
	now := sessionStart
	answers := []string{"q1-right", "", "q3-wrong", ""}
	for i, selected := range answers {
		now = now.Add(time.Second)
		_, err := s.Submit(fmt.Sprintf("q%d", i+1), selected, now)
		require.NoError(t, err)
	}

	results, err := s.Results()
	require.NoError(t, err)
	assert.Equal(t, 1, results.CorrectCount)
	assert.Equal(t, 1, results.IncorrectCount)
	assert.Equal(t, 2, results.SkippedCount)
	assert.Equal(t, 25, results.ScorePercentage)
}

func TestResultsBeforeCompletionRejected(t *testing.T) {
	s := newTestSession(2)
	_, err := s.Results()
	var domainErr *DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, CodeInvalidState, domainErr.Code)
}

func TestCheckOwner(t *testing.T) {
	anonymous := newTestSession(1)
	assert.NoError(t, anonymous.CheckOwner(""), "ownerless sessions are capability-style")
	assert.NoError(t, anonymous.CheckOwner("anyone"))

	owned := newTestSession(1)
	owned.UserID = "user1"
	assert.NoError(t, owned.CheckOwner("user1"))

	err := owned.CheckOwner("user2")
	var domainErr *DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, CodeForbidden, domainErr.Code)
}

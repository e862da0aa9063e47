package service

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/Malay-Max/QuizWhiz-sub001/internal/domain"
	"github.com/Malay-Max/QuizWhiz-sub001/internal/dto"
	"github.com/Malay-Max/QuizWhiz-sub001/internal/logger"
	"github.com/Malay-Max/QuizWhiz-sub001/internal/util"

	"go.uber.org/zap"
)

// RandomCategoryID starts a quiz over the whole question pool instead of
// a single category subtree.
const RandomCategoryID = "random"

// QuizService drives the quiz session lifecycle.
type QuizService interface {
	StartQuiz(ctx context.Context, req *dto.StartQuizRequest, requesterID string) (*dto.StartQuizResponse, error)
	SubmitAnswer(ctx context.Context, sessionID string, req *dto.SubmitAnswerRequest, requesterID string) (*dto.SubmitAnswerResponse, error)
	PauseQuiz(ctx context.Context, sessionID, requesterID string) (*dto.SessionStatusResponse, error)
	ResumeQuiz(ctx context.Context, sessionID, requesterID string) (*dto.SessionStatusResponse, error)
	GetStatus(ctx context.Context, sessionID, requesterID string) (*dto.SessionStatusResponse, error)
	GetResults(ctx context.Context, sessionID, requesterID string) (*dto.QuizResultsResponse, error)
}

type quizService struct {
	questions  domain.QuestionRepository
	categories domain.CategoryRepository
	sessions   domain.SessionStore
	now        func() time.Time
	rng        *rand.Rand
}

// NewQuizService creates a new QuizService with the wall clock and a
// time-seeded random source.
func NewQuizService(
	questions domain.QuestionRepository,
	categories domain.CategoryRepository,
	sessions domain.SessionStore,
) QuizService {
	return newQuizService(questions, categories, sessions, time.Now,
		rand.New(rand.NewSource(time.Now().UnixNano())))
}

// newQuizService injects the clock and random source for tests.
func newQuizService(
	questions domain.QuestionRepository,
	categories domain.CategoryRepository,
	sessions domain.SessionStore,
	now func() time.Time,
	rng *rand.Rand,
) *quizService {
	return &quizService{
		questions:  questions,
		categories: categories,
		sessions:   sessions,
		now:        now,
		rng:        rng,
	}
}

// StartQuiz resolves the candidate question pool, shuffles it (and each
// question's options), truncates after shuffling when a count is given so
// partial quizzes are a random sample, and persists the session snapshot.
func (s *quizService) StartQuiz(ctx context.Context, req *dto.StartQuizRequest, requesterID string) (*dto.StartQuizResponse, error) {
	var (
		pool         []*domain.Question
		categoryName string
		err          error
	)

	if req.CategoryID == RandomCategoryID {
		categoryName = "Random"
		pool, err = s.questions.GetAll(ctx)
		if err != nil {
			return nil, domain.NewInternalError("Failed to load question pool", err)
		}
	} else {
		category, err := s.categories.GetByID(ctx, req.CategoryID)
		if err != nil {
			return nil, domain.NewInternalError("Failed to resolve category", err)
		}
		if category == nil {
			return nil, domain.NewNotFoundError(fmt.Sprintf("Category not found: %s", req.CategoryID))
		}

		categories, err := s.categories.GetAll(ctx)
		if err != nil {
			return nil, domain.NewInternalError("Failed to load categories", err)
		}
		categoryName, err = domain.FullCategoryPath(req.CategoryID, categories)
		if err != nil {
			return nil, err
		}

		ids := append([]string{req.CategoryID}, domain.DescendantCategoryIDs(req.CategoryID, categories)...)
		pool, err = s.questions.GetByCategoryIDs(ctx, ids)
		if err != nil {
			return nil, domain.NewInternalError("Failed to load questions", err)
		}
	}

	if len(pool) == 0 {
		return nil, domain.NewNotFoundError("No questions available for this category")
	}

	snapshot := s.snapshotQuestions(pool)
	if req.QuestionCount > 0 && req.QuestionCount < len(snapshot) {
		snapshot = snapshot[:req.QuestionCount]
	}

	session := domain.NewQuizSession(
		util.NewULID(),
		req.CategoryID,
		categoryName,
		requesterID,
		snapshot,
		s.now(),
	)
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, domain.NewInternalError("Failed to persist quiz session", err)
	}

	logger.Get().Info("Quiz session started",
		zap.String("session_id", session.ID),
		zap.String("category_id", session.CategoryID),
		zap.Int("question_count", len(session.Questions)),
	)

	return &dto.StartQuizResponse{
		SessionID:      session.ID,
		CategoryID:     session.CategoryID,
		CategoryName:   session.CategoryName,
		TotalQuestions: len(session.Questions),
		Question:       questionView(session.CurrentQuestion()),
	}, nil
}

// snapshotQuestions copies the pool into session snapshots in uniformly
// random order, independently shuffling each question's options so the
// correct answer's position is not predictable.
func (s *quizService) snapshotQuestions(pool []*domain.Question) []domain.SessionQuestion {
	snapshot := make([]domain.SessionQuestion, len(pool))
	for i, idx := range s.rng.Perm(len(pool)) {
		q := pool[idx]
		options := make([]domain.AnswerOption, len(q.Options))
		for j, k := range s.rng.Perm(len(q.Options)) {
			options[j] = q.Options[k]
		}
		snapshot[i] = domain.SessionQuestion{
			ID:              q.ID,
			Text:            q.Text,
			Options:         options,
			CorrectAnswerID: q.CorrectAnswerID,
			Explanation:     q.Explanation,
		}
	}
	return snapshot
}

// SubmitAnswer records an answer for the session's current question under
// optimistic concurrency and reports the outcome.
func (s *quizService) SubmitAnswer(ctx context.Context, sessionID string, req *dto.SubmitAnswerRequest, requesterID string) (*dto.SubmitAnswerResponse, error) {
	var answered *domain.SessionQuestion

	session, err := s.sessions.Update(ctx, sessionID, func(session *domain.QuizSession) error {
		if err := session.CheckOwner(requesterID); err != nil {
			return err
		}
		current := session.CurrentQuestion()
		if _, err := session.Submit(req.QuestionID, req.SelectedAnswerID, s.now()); err != nil {
			return err
		}
		answered = current
		return nil
	})
	if err != nil {
		return nil, err
	}

	response := &dto.SubmitAnswerResponse{
		IsCorrect:       session.Answers[len(session.Answers)-1].IsCorrect,
		CorrectAnswerID: answered.CorrectAnswerID,
		Explanation:     answered.Explanation,
		Completed:       session.Status == domain.SessionCompleted,
	}
	if !response.Completed {
		response.NextQuestion = questionView(session.CurrentQuestion())
	}
	return response, nil
}

// PauseQuiz transitions an active session to paused.
func (s *quizService) PauseQuiz(ctx context.Context, sessionID, requesterID string) (*dto.SessionStatusResponse, error) {
	session, err := s.sessions.Update(ctx, sessionID, func(session *domain.QuizSession) error {
		if err := session.CheckOwner(requesterID); err != nil {
			return err
		}
		return session.Pause(s.now())
	})
	if err != nil {
		return nil, err
	}
	return statusResponse(session), nil
}

// ResumeQuiz transitions a paused session back to active, folding the
// pause duration into the session's paused-time total.
func (s *quizService) ResumeQuiz(ctx context.Context, sessionID, requesterID string) (*dto.SessionStatusResponse, error) {
	session, err := s.sessions.Update(ctx, sessionID, func(session *domain.QuizSession) error {
		if err := session.CheckOwner(requesterID); err != nil {
			return err
		}
		return session.Resume(s.now())
	})
	if err != nil {
		return nil, err
	}
	return statusResponse(session), nil
}

// GetStatus returns the public projection of a session.
func (s *quizService) GetStatus(ctx context.Context, sessionID, requesterID string) (*dto.SessionStatusResponse, error) {
	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := session.CheckOwner(requesterID); err != nil {
		return nil, err
	}
	return statusResponse(session), nil
}

// GetResults aggregates a completed session for the results view.
func (s *quizService) GetResults(ctx context.Context, sessionID, requesterID string) (*dto.QuizResultsResponse, error) {
	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := session.CheckOwner(requesterID); err != nil {
		return nil, err
	}

	results, err := session.Results()
	if err != nil {
		return nil, err
	}

	reviews := make([]dto.AnswerReview, len(session.Answers))
	for i, answer := range session.Answers {
		question := session.Questions[i]
		reviews[i] = dto.AnswerReview{
			QuestionID:       answer.QuestionID,
			QuestionText:     question.Text,
			SelectedAnswerID: answer.SelectedAnswerID,
			CorrectAnswerID:  question.CorrectAnswerID,
			IsCorrect:        answer.IsCorrect,
			Skipped:          answer.Skipped,
			TimeTakenSeconds: answer.TimeTaken.Seconds(),
			Explanation:      question.Explanation,
		}
	}

	return &dto.QuizResultsResponse{
		SessionID:        session.ID,
		CategoryName:     session.CategoryName,
		TotalQuestions:   results.TotalQuestions,
		CorrectCount:     results.CorrectCount,
		IncorrectCount:   results.IncorrectCount,
		SkippedCount:     results.SkippedCount,
		ScorePercentage:  results.ScorePercentage,
		TotalTimeSeconds: results.TotalTimeSeconds,
		Answers:          reviews,
	}, nil
}

// questionView projects a session question for clients: the correct
// answer id never crosses this boundary.
func questionView(q *domain.SessionQuestion) *dto.QuestionView {
	if q == nil {
		return nil
	}
	options := make([]dto.OptionPayload, len(q.Options))
	for i, opt := range q.Options {
		options[i] = dto.OptionPayload{ID: opt.ID, Text: opt.Text}
	}
	return &dto.QuestionView{ID: q.ID, Text: q.Text, Options: options}
}

func statusResponse(session *domain.QuizSession) *dto.SessionStatusResponse {
	response := &dto.SessionStatusResponse{
		SessionID:      session.ID,
		CategoryID:     session.CategoryID,
		CategoryName:   session.CategoryName,
		Status:         string(session.Status),
		TotalQuestions: len(session.Questions),
		AnsweredCount:  len(session.Answers),
	}
	if session.Status == domain.SessionActive {
		response.CurrentQuestion = questionView(session.CurrentQuestion())
	}
	return response
}

package repository

import (
	"context"
	"testing"
	"time"

	"github.com/Malay-Max/QuizWhiz-sub001/internal/domain"
	"github.com/Malay-Max/QuizWhiz-sub001/internal/util"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupSessionStore(t *testing.T) (domain.SessionStore, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewRedisSessionStore(client), mr
}

func newStoredSession() *domain.QuizSession {
	return domain.NewQuizSession(
		util.NewULID(),
		util.NewULID(),
		"Science/Physics",
		"user-1",
		[]domain.SessionQuestion{
			{
				ID:   util.NewULID(),
				Text: "Q1",
				Options: []domain.AnswerOption{
					{ID: "a", Text: "yes"},
					{ID: "b", Text: "no"},
				},
				CorrectAnswerID: "a",
			},
		},
		time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
	)
}

func TestSessionStoreSaveAndGet(t *testing.T) {
	store, mr := setupSessionStore(t)
	ctx := context.Background()

	session := newStoredSession()
	require.NoError(t, store.Save(ctx, session))
	assert.True(t, mr.Exists("quizwhiz:quiz:session:"+session.ID))

	loaded, err := store.Get(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, session.ID, loaded.ID)
	assert.Equal(t, session.CategoryName, loaded.CategoryName)
	assert.Equal(t, domain.SessionActive, loaded.Status)
	require.Len(t, loaded.Questions, 1)
	assert.Equal(t, "a", loaded.Questions[0].CorrectAnswerID)
	assert.True(t, session.StartTime.Equal(loaded.StartTime))
}

func TestSessionStoreGetMissing(t *testing.T) {
	store, _ := setupSessionStore(t)

	_, err := store.Get(context.Background(), util.NewULID())
	require.Error(t, err)
	var domainErr *domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.CodeNotFound, domainErr.Code)
}

func TestSessionStoreUpdate(t *testing.T) {
	store, _ := setupSessionStore(t)
	ctx := context.Background()

	session := newStoredSession()
	require.NoError(t, store.Save(ctx, session))

	t.Run("applies the mutation and bumps the version", func(t *testing.T) {
		updated, err := store.Update(ctx, session.ID, func(s *domain.QuizSession) error {
			_, err := s.Submit(s.Questions[0].ID, "a", s.StartTime.Add(10*time.Second))
			return err
		})
		require.NoError(t, err)
		assert.Equal(t, 1, updated.Version)
		assert.Equal(t, domain.SessionCompleted, updated.Status)

		persisted, err := store.Get(ctx, session.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, persisted.Version)
		require.Len(t, persisted.Answers, 1)
		assert.True(t, persisted.Answers[0].IsCorrect)
	})

	t.Run("a failing mutation leaves the session untouched", func(t *testing.T) {
		before, err := store.Get(ctx, session.ID)
		require.NoError(t, err)

		_, err = store.Update(ctx, session.ID, func(s *domain.QuizSession) error {
			return domain.NewStateError("no")
		})
		require.Error(t, err)

		after, err := store.Get(ctx, session.ID)
		require.NoError(t, err)
		assert.Equal(t, before.Version, after.Version)
	})

	t.Run("updating a missing session is not found", func(t *testing.T) {
		_, err := store.Update(ctx, util.NewULID(), func(s *domain.QuizSession) error {
			return nil
		})
		require.Error(t, err)
		var domainErr *domain.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, domain.CodeNotFound, domainErr.Code)
	})
}

func TestSessionStoreSurvivesCompletion(t *testing.T) {
	store, mr := setupSessionStore(t)
	ctx := context.Background()

	session := newStoredSession()
	require.NoError(t, store.Save(ctx, session))

	_, err := store.Update(ctx, session.ID, func(s *domain.QuizSession) error {
		_, err := s.Submit(s.Questions[0].ID, "b", s.StartTime.Add(time.Second))
		return err
	})
	require.NoError(t, err)

	// No TTL: results stay queryable after the session completes.
	ttl := mr.TTL("quizwhiz:quiz:session:" + session.ID)
	assert.Equal(t, time.Duration(0), ttl)

	loaded, err := store.Get(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.SessionCompleted, loaded.Status)
}

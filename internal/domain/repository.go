package domain

import "context"

// CategoryRepository defines the interface for category persistence.
type CategoryRepository interface {
	GetAll(ctx context.Context) ([]*Category, error)
	GetByID(ctx context.Context, id string) (*Category, error)
	Save(ctx context.Context, category *Category) error
	UpdateName(ctx context.Context, id, name string) error
	DeleteByIDs(ctx context.Context, ids []string) (int, error)
}

// QuestionRepository defines the interface for question persistence.
type QuestionRepository interface {
	GetByID(ctx context.Context, id string) (*Question, error)
	GetByCategoryIDs(ctx context.Context, categoryIDs []string) ([]*Question, error)
	GetAll(ctx context.Context) ([]*Question, error)
	Save(ctx context.Context, question *Question) error
	Update(ctx context.Context, question *Question) error
	Delete(ctx context.Context, id string) error
	DeleteByCategoryIDs(ctx context.Context, categoryIDs []string) (int, error)
}

// SessionStore persists quiz sessions as documents. Update applies mutate
// under optimistic concurrency control: concurrent writers to the same
// session cannot both advance from the same state.
type SessionStore interface {
	Save(ctx context.Context, session *QuizSession) error
	Get(ctx context.Context, id string) (*QuizSession, error)
	Update(ctx context.Context, id string, mutate func(*QuizSession) error) (*QuizSession, error)
}

// TransactionManager runs a function within a storage transaction. The
// transaction is committed when fn returns nil and rolled back otherwise.
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

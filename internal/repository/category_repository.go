package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Malay-Max/QuizWhiz-sub001/internal/domain"
	"github.com/Malay-Max/QuizWhiz-sub001/internal/repository/models"

	"github.com/jmoiron/sqlx"
)

// CategoryDatabaseAdapter implements domain.CategoryRepository using sqlx.
type CategoryDatabaseAdapter struct {
	db *sqlx.DB
}

// NewCategoryDatabaseAdapter creates a new category repository.
func NewCategoryDatabaseAdapter(db *sqlx.DB) domain.CategoryRepository {
	return &CategoryDatabaseAdapter{db: db}
}

// GetAll returns the flat category set.
func (a *CategoryDatabaseAdapter) GetAll(ctx context.Context) ([]*domain.Category, error) {
	exec := GetExecutor(ctx, a.db)
	var rows []models.Category
	query := `SELECT id, name, parent_id, created_at, updated_at FROM categories`
	if err := exec.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("failed to get categories: %w", err)
	}

	categories := make([]*domain.Category, len(rows))
	for i := range rows {
		categories[i] = toDomainCategory(&rows[i])
	}
	return categories, nil
}

// GetByID returns a category by id, or nil when it does not exist.
func (a *CategoryDatabaseAdapter) GetByID(ctx context.Context, id string) (*domain.Category, error) {
	exec := GetExecutor(ctx, a.db)
	var row models.Category
	query := `SELECT id, name, parent_id, created_at, updated_at FROM categories WHERE id = ?`
	if err := exec.GetContext(ctx, &row, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get category %s: %w", id, err)
	}
	return toDomainCategory(&row), nil
}

// Save persists a new category.
func (a *CategoryDatabaseAdapter) Save(ctx context.Context, category *domain.Category) error {
	exec := GetExecutor(ctx, a.db)
	now := time.Now()
	category.CreatedAt = now
	category.UpdatedAt = now

	query := `INSERT INTO categories (id, name, parent_id, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`
	_, err := exec.ExecContext(ctx, query,
		category.ID,
		category.Name,
		nullString(category.ParentID),
		category.CreatedAt,
		category.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save category: %w", err)
	}
	return nil
}

// UpdateName renames a category.
func (a *CategoryDatabaseAdapter) UpdateName(ctx context.Context, id, name string) error {
	exec := GetExecutor(ctx, a.db)
	query := `UPDATE categories SET name = ?, updated_at = ? WHERE id = ?`
	result, err := exec.ExecContext(ctx, query, name, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to update category %s: %w", id, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return domain.NewNotFoundError(fmt.Sprintf("Category not found: %s", id))
	}
	return nil
}

// DeleteByIDs removes the given categories and returns how many rows went
// away. Callers run this inside a transaction together with the owned
// questions so readers never observe a partially-cascaded state.
func (a *CategoryDatabaseAdapter) DeleteByIDs(ctx context.Context, ids []string) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	exec := GetExecutor(ctx, a.db)
	query, args, err := sqlx.In(`DELETE FROM categories WHERE id IN (?)`, ids)
	if err != nil {
		return 0, fmt.Errorf("failed to build delete query: %w", err)
	}
	result, err := exec.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to delete categories: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return int(affected), nil
}

func toDomainCategory(row *models.Category) *domain.Category {
	return &domain.Category{
		ID:        row.ID,
		Name:      row.Name,
		ParentID:  row.ParentID.String,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Malay-Max/QuizWhiz-sub001/internal/cache"
	"github.com/Malay-Max/QuizWhiz-sub001/internal/domain"
	"github.com/Malay-Max/QuizWhiz-sub001/internal/dto"
	"github.com/Malay-Max/QuizWhiz-sub001/internal/logger"
	"github.com/Malay-Max/QuizWhiz-sub001/internal/util"

	"go.uber.org/zap"
)

const categoryTreeCacheTTL = 5 * time.Minute

// CategoryService defines category tree operations.
type CategoryService interface {
	CreateCategory(ctx context.Context, name, parentID string) (*dto.CreateCategoryResponse, error)
	ListCategories(ctx context.Context) ([]*dto.CategoryResponse, error)
	GetCategory(ctx context.Context, id string) (*dto.CategoryResponse, error)
	RenameCategory(ctx context.Context, id, name string) error
	DeleteCategory(ctx context.Context, id string) (*dto.DeleteCategoryResponse, error)
}

type categoryService struct {
	categories domain.CategoryRepository
	questions  domain.QuestionRepository
	txManager  domain.TransactionManager
	cache      domain.Cache
}

// NewCategoryService creates a new CategoryService. cache may be nil.
func NewCategoryService(
	categories domain.CategoryRepository,
	questions domain.QuestionRepository,
	txManager domain.TransactionManager,
	cacheAdapter domain.Cache,
) CategoryService {
	return &categoryService{
		categories: categories,
		questions:  questions,
		txManager:  txManager,
		cache:      cacheAdapter,
	}
}

func categoryTreeCacheKey() string {
	return cache.GenerateCacheKey("category", "tree", "all")
}

// CreateCategory validates and persists a new category.
func (s *categoryService) CreateCategory(ctx context.Context, name, parentID string) (*dto.CreateCategoryResponse, error) {
	category := &domain.Category{
		ID:       util.NewULID(),
		Name:     strings.TrimSpace(name),
		ParentID: parentID,
	}
	if err := category.Validate(); err != nil {
		return nil, err
	}

	if parentID != "" {
		parent, err := s.categories.GetByID(ctx, parentID)
		if err != nil {
			return nil, domain.NewInternalError("Failed to resolve parent category", err)
		}
		if parent == nil {
			return nil, domain.NewNotFoundError(fmt.Sprintf("Parent category not found: %s", parentID))
		}
	}

	if err := s.categories.Save(ctx, category); err != nil {
		return nil, domain.NewInternalError("Failed to save category", err)
	}
	s.invalidateTreeCache(ctx)
	return &dto.CreateCategoryResponse{ID: category.ID}, nil
}

// ListCategories returns the category forest with full paths, served from
// cache when available.
func (s *categoryService) ListCategories(ctx context.Context) ([]*dto.CategoryResponse, error) {
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, categoryTreeCacheKey()); err == nil {
			var tree []*dto.CategoryResponse
			if err := json.Unmarshal([]byte(cached), &tree); err == nil {
				return tree, nil
			}
		} else if !errors.Is(err, domain.ErrCacheMiss) {
			logger.Get().Warn("Category tree cache read failed", zap.Error(err))
		}
	}

	categories, err := s.categories.GetAll(ctx)
	if err != nil {
		return nil, domain.NewInternalError("Failed to load categories", err)
	}
	roots, err := domain.BuildCategoryTree(categories)
	if err != nil {
		return nil, err
	}

	tree := make([]*dto.CategoryResponse, len(roots))
	for i, root := range roots {
		tree[i] = toCategoryResponse(root)
	}

	if s.cache != nil {
		if payload, err := json.Marshal(tree); err == nil {
			if err := s.cache.Set(ctx, categoryTreeCacheKey(), string(payload), categoryTreeCacheTTL); err != nil {
				logger.Get().Warn("Category tree cache write failed", zap.Error(err))
			}
		}
	}
	return tree, nil
}

// GetCategory returns a single category with its resolved full path and
// linked children.
func (s *categoryService) GetCategory(ctx context.Context, id string) (*dto.CategoryResponse, error) {
	categories, err := s.categories.GetAll(ctx)
	if err != nil {
		return nil, domain.NewInternalError("Failed to load categories", err)
	}

	roots, err := domain.BuildCategoryTree(categories)
	if err != nil {
		return nil, err
	}
	tree := make([]*dto.CategoryResponse, len(roots))
	for i, root := range roots {
		tree[i] = toCategoryResponse(root)
	}
	if node := findNode(tree, id); node != nil {
		return node, nil
	}
	return nil, domain.NewNotFoundError(fmt.Sprintf("Category not found: %s", id))
}

// RenameCategory updates a category name.
func (s *categoryService) RenameCategory(ctx context.Context, id, name string) error {
	if strings.TrimSpace(name) == "" {
		return domain.NewValidationError("category name is required")
	}
	if err := s.categories.UpdateName(ctx, id, strings.TrimSpace(name)); err != nil {
		var domainErr *domain.DomainError
		if errors.As(err, &domainErr) {
			return err
		}
		return domain.NewInternalError("Failed to rename category", err)
	}
	s.invalidateTreeCache(ctx)
	return nil
}

// DeleteCategory cascades: the category, all descendant categories, and
// every question owned by any of them go away in a single transaction.
func (s *categoryService) DeleteCategory(ctx context.Context, id string) (*dto.DeleteCategoryResponse, error) {
	category, err := s.categories.GetByID(ctx, id)
	if err != nil {
		return nil, domain.NewInternalError("Failed to load category", err)
	}
	if category == nil {
		return nil, domain.NewNotFoundError(fmt.Sprintf("Category not found: %s", id))
	}

	response := &dto.DeleteCategoryResponse{}
	err = s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		categories, err := s.categories.GetAll(txCtx)
		if err != nil {
			return err
		}
		ids := append([]string{id}, domain.DescendantCategoryIDs(id, categories)...)

		deletedQuestions, err := s.questions.DeleteByCategoryIDs(txCtx, ids)
		if err != nil {
			return err
		}
		deletedCategories, err := s.categories.DeleteByIDs(txCtx, ids)
		if err != nil {
			return err
		}

		response.DeletedCategories = deletedCategories
		response.DeletedQuestions = deletedQuestions
		return nil
	})
	if err != nil {
		return nil, domain.NewInternalError("Failed to delete category", err)
	}

	s.invalidateTreeCache(ctx)
	return response, nil
}

func (s *categoryService) invalidateTreeCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, categoryTreeCacheKey()); err != nil {
		logger.Get().Warn("Category tree cache invalidation failed", zap.Error(err))
	}
}

func toCategoryResponse(node *domain.CategoryNode) *dto.CategoryResponse {
	resp := &dto.CategoryResponse{
		ID:       node.ID,
		Name:     node.Name,
		ParentID: node.ParentID,
		FullPath: node.FullPath,
	}
	for _, child := range node.Children {
		resp.Children = append(resp.Children, toCategoryResponse(child))
	}
	return resp
}

func findNode(nodes []*dto.CategoryResponse, id string) *dto.CategoryResponse {
	for _, n := range nodes {
		if n.ID == id {
			return n
		}
		if found := findNode(n.Children, id); found != nil {
			return found
		}
	}
	return nil
}

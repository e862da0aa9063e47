package dto

// CreateCategoryRequest is the body for POST /categories.
type CreateCategoryRequest struct {
	Name     string `json:"name"`
	ParentID string `json:"parent_id,omitempty"`
}

// UpdateCategoryRequest is the body for PUT /categories/{id}.
type UpdateCategoryRequest struct {
	Name string `json:"name"`
}

// CategoryResponse represents one category node in the API response.
type CategoryResponse struct {
	ID       string              `json:"id"`
	Name     string              `json:"name"`
	ParentID string              `json:"parent_id,omitempty"`
	FullPath string              `json:"full_path"`
	Children []*CategoryResponse `json:"children,omitempty"`
}

// CreateCategoryResponse returns the id of a newly created category.
type CreateCategoryResponse struct {
	ID string `json:"id"`
}

// DeleteCategoryResponse reports what a cascade delete removed.
type DeleteCategoryResponse struct {
	DeletedCategories int `json:"deleted_categories"`
	DeletedQuestions  int `json:"deleted_questions"`
}

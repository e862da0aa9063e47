package validation

import (
	"regexp"
	"strings"

	"github.com/Malay-Max/QuizWhiz-sub001/internal/domain"
	"github.com/Malay-Max/QuizWhiz-sub001/internal/dto"
)

const (
	maxNameLength     = 200
	maxTextLength     = 2000
	maxOptionLength   = 500
	maxOptionsPerItem = 10
	maxQuestionCount  = 100
)

// Validator provides request validation functionality
type Validator struct{}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateCreateCategoryRequest validates the create category request
func (v *Validator) ValidateCreateCategoryRequest(req dto.CreateCategoryRequest) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(req.Name) == "" {
		errors = append(errors, domain.NewMissingFieldError("name"))
	} else if len(req.Name) > maxNameLength {
		errors = append(errors, domain.NewOutOfRangeError("name", len(req.Name), 1, maxNameLength))
	}

	if req.ParentID != "" && !isValidULID(req.ParentID) {
		errors = append(errors, domain.NewInvalidFormatError("parent_id", req.ParentID))
	}

	return errors
}

// ValidateRenameCategoryRequest validates the rename category request
func (v *Validator) ValidateRenameCategoryRequest(id string, req dto.UpdateCategoryRequest) domain.ValidationErrors {
	errors := v.ValidateID("id", id)

	if strings.TrimSpace(req.Name) == "" {
		errors = append(errors, domain.NewMissingFieldError("name"))
	} else if len(req.Name) > maxNameLength {
		errors = append(errors, domain.NewOutOfRangeError("name", len(req.Name), 1, maxNameLength))
	}

	return errors
}

// ValidateCreateQuestionRequest validates the create question request.
// The category comes from the URL path, so it is validated separately.
func (v *Validator) ValidateCreateQuestionRequest(categoryID string, req dto.CreateQuestionRequest) domain.ValidationErrors {
	errors := v.ValidateID("category_id", categoryID)

	if strings.TrimSpace(req.Text) == "" {
		errors = append(errors, domain.NewMissingFieldError("text"))
	} else if len(req.Text) > maxTextLength {
		errors = append(errors, domain.NewOutOfRangeError("text", len(req.Text), 1, maxTextLength))
	}

	errors = append(errors, validateOptions(req.Options)...)

	if strings.TrimSpace(req.CorrectAnswerID) == "" {
		errors = append(errors, domain.NewMissingFieldError("correct_answer_id"))
	}

	return errors
}

// ValidateUpdateQuestionRequest validates the sparse question update
// request. Only supplied fields are checked; the merged result gets a
// full domain validation in the service.
func (v *Validator) ValidateUpdateQuestionRequest(id string, req dto.UpdateQuestionRequest) domain.ValidationErrors {
	errors := v.ValidateID("id", id)

	if req.Text != nil {
		if strings.TrimSpace(*req.Text) == "" {
			errors = append(errors, domain.NewMissingFieldError("text"))
		} else if len(*req.Text) > maxTextLength {
			errors = append(errors, domain.NewOutOfRangeError("text", len(*req.Text), 1, maxTextLength))
		}
	}
	if req.Options != nil {
		errors = append(errors, validateOptions(*req.Options)...)
	}
	if req.CategoryID != nil && !isValidULID(*req.CategoryID) {
		errors = append(errors, domain.NewInvalidFormatError("category_id", *req.CategoryID))
	}

	return errors
}

func validateOptions(options []dto.OptionPayload) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if len(options) < 2 || len(options) > maxOptionsPerItem {
		errors = append(errors, domain.NewOutOfRangeError("options", len(options), 2, maxOptionsPerItem))
	}
	for _, opt := range options {
		if strings.TrimSpace(opt.Text) == "" {
			errors = append(errors, domain.NewMissingFieldError("options.text"))
			break
		}
		if len(opt.Text) > maxOptionLength {
			errors = append(errors, domain.NewOutOfRangeError("options.text", len(opt.Text), 1, maxOptionLength))
			break
		}
	}

	return errors
}

// ValidateStartQuizRequest validates the start quiz request
func (v *Validator) ValidateStartQuizRequest(req dto.StartQuizRequest) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(req.CategoryID) == "" {
		errors = append(errors, domain.NewMissingFieldError("category_id"))
	} else if req.CategoryID != "random" && !isValidULID(req.CategoryID) {
		errors = append(errors, domain.NewInvalidFormatError("category_id", req.CategoryID))
	}

	// question_count is optional; zero means the whole set.
	if req.QuestionCount != 0 && (req.QuestionCount < 1 || req.QuestionCount > maxQuestionCount) {
		errors = append(errors, domain.NewOutOfRangeError("question_count", req.QuestionCount, 1, maxQuestionCount))
	}

	return errors
}

// ValidateSubmitAnswerRequest validates the submit answer request
func (v *Validator) ValidateSubmitAnswerRequest(sessionID string, req dto.SubmitAnswerRequest) domain.ValidationErrors {
	errors := v.ValidateID("session_id", sessionID)

	if strings.TrimSpace(req.QuestionID) == "" {
		errors = append(errors, domain.NewMissingFieldError("question_id"))
	} else if !isValidULID(req.QuestionID) {
		errors = append(errors, domain.NewInvalidFormatError("question_id", req.QuestionID))
	}

	// selected_answer_id may be empty: that marks the question skipped.

	return errors
}

// ValidateSuggestDistractorsRequest validates the distractor generation request
func (v *Validator) ValidateSuggestDistractorsRequest(req dto.SuggestDistractorsRequest) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(req.Question) == "" {
		errors = append(errors, domain.NewMissingFieldError("question"))
	} else if len(req.Question) > maxTextLength {
		errors = append(errors, domain.NewOutOfRangeError("question", len(req.Question), 1, maxTextLength))
	}

	if strings.TrimSpace(req.CorrectAnswer) == "" {
		errors = append(errors, domain.NewMissingFieldError("correct_answer"))
	}

	if req.Count < 0 || req.Count > maxOptionsPerItem {
		errors = append(errors, domain.NewOutOfRangeError("count", req.Count, 0, maxOptionsPerItem))
	}

	return errors
}

// ValidateID validates a ULID path or query parameter
func (v *Validator) ValidateID(field, id string) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(id) == "" {
		errors = append(errors, domain.NewMissingFieldError(field))
	} else if !isValidULID(id) {
		errors = append(errors, domain.NewInvalidFormatError(field, id))
	}

	return errors
}

var ulidPattern = regexp.MustCompile(`^[0-9A-HJKMNP-TV-Z]{26}$`)

// isValidULID checks if the string is a valid ULID format
func isValidULID(id string) bool {
	return ulidPattern.MatchString(id)
}

package dto

// SuggestDistractorsRequest is the body for POST /ai/suggest-distractors.
type SuggestDistractorsRequest struct {
	Question        string   `json:"question"`
	CorrectAnswer   string   `json:"correct_answer"`
	ExistingOptions []string `json:"existing_options,omitempty"`
	Count           int      `json:"count,omitempty"`
}

// SuggestDistractorsResponse carries the generated distractors.
type SuggestDistractorsResponse struct {
	Distractors []string `json:"distractors"`
}

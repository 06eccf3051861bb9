package dto

// AIAskRequest is the DTO for a medication question.
type AIAskRequest struct {
	Question       string  `json:"question"`
	ContextMedName *string `json:"context_med_name"`
}

// AIAskResponse carries the answer and the standing disclaimer.
type AIAskResponse struct {
	Answer     string `json:"answer"`
	Disclaimer string `json:"disclaimer"`
}

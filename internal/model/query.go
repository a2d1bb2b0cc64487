package model

// QueryRequest represents a property search request
type QueryRequest struct {
	UserID    string   `json:"user_id" binding:"required"`
	Query     string   `json:"query" binding:"required"`
	BudgetMax *float64 `json:"budget_max,omitempty"`
	BHK       []int    `json:"bhk,omitempty"`
	Zone      *string  `json:"zone,omitempty"`
	TopK      int      `json:"top_k,omitempty"`
}

// QueryFilters represents the resolved structured filters for one
// request: explicit request values merged with text-extracted ones.
type QueryFilters struct {
	BudgetMax *float64 `json:"budget_max,omitempty"`
	BHK       []int    `json:"bhk,omitempty"`
	Zone      *string  `json:"zone,omitempty"`
	Locality  *string  `json:"locality,omitempty"`
}

// CandidateResult is a scored listing returned from a search. Similarity
// is the raw rerank relevance in [0,1]; FinalScore is the composite
// recommendation score in [0,100].
type CandidateResult struct {
	Listing    Listing `json:"listing"`
	Similarity float64 `json:"similarity"`
	FinalScore float64 `json:"final_score"`
}

// QueryResponse represents a search result response
type QueryResponse struct {
	Answer    string            `json:"answer"`
	Retrieved []CandidateResult `json:"retrieved"`
	NoMatches bool              `json:"no_matches,omitempty"`
	Filters   *QueryFilters     `json:"filters,omitempty"`
	SearchID  string            `json:"search_id,omitempty"`
	Took      int64             `json:"took_ms"`
}

// FeedbackRequest represents a user's reaction to a returned listing
type FeedbackRequest struct {
	UserID string `json:"user_id" binding:"required"`
	DocID  string `json:"doc_id" binding:"required"`
	Liked  *bool  `json:"liked" binding:"required"`
}

// FeedbackResponse represents feedback response
type FeedbackResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

package service

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/MATRIXJO/Intelligent-Real-Estate-Agent/internal/geo"
	"github.com/MATRIXJO/Intelligent-Real-Estate-Agent/internal/model"
	"github.com/MATRIXJO/Intelligent-Real-Estate-Agent/internal/utils"
)

const extractSystemPrompt = `You are a real estate query parser.
Extract search filters from the User Query and Conversation History into a JSON object.

Rules:
- "bhk": List of integers (e.g., [2, 3]). Null if not found.
- "budget_max": The maximum price mentioned. Return the raw number or string. Null if not found.
- "locality": Specific area name. Null if not found.

Output JSON ONLY.`

// placeholderLocalities are city-level names the model sometimes emits
// when no real locality was mentioned; they carry no filter signal.
var placeholderLocalities = map[string]bool{
	"bangalore": true,
	"bengaluru": true,
	"location":  true,
}

// llmFilters is the JSON shape the extraction model returns. budget_max
// arrives as a number or a string like "1.5 cr", so it is re-parsed with
// the budget parser either way.
type llmFilters struct {
	BHK       []int       `json:"bhk"`
	BudgetMax interface{} `json:"budget_max"`
	Locality  *string     `json:"locality"`
}

// FilterExtractor resolves free-text queries into structured filters by
// merging LLM extraction over a regex baseline. It performs no merging
// with the caller's explicit filters; that happens in the pipeline.
type FilterExtractor struct {
	llm LLMClient
}

// NewFilterExtractor creates a new filter extractor
func NewFilterExtractor(llm LLMClient) *FilterExtractor {
	return &FilterExtractor{llm: llm}
}

// Extract resolves filters from the query text, using prior conversation
// turns as extraction context. An LLM failure degrades silently to the
// heuristic result.
func (e *FilterExtractor) Extract(ctx context.Context, query, history string) *model.QueryFilters {
	fallback := ExtractHeuristic(query)

	if e.llm == nil || !e.llm.IsEnabled() {
		return fallback
	}

	userMsg := fmt.Sprintf("Conversation History:\n%s\n\nUser Query: %q", history, query)
	content, err := e.llm.ChatJSON(ctx, extractSystemPrompt, userMsg)
	if err != nil {
		log.Printf("Warning: filter extraction failed, using heuristic result: %v", err)
		return fallback
	}

	var parsed llmFilters
	if err := utils.DecodeModelJSON(content, &parsed); err != nil {
		log.Printf("Warning: unparseable extraction response, using heuristic result: %v", err)
		return fallback
	}

	locality := parsed.Locality
	if locality == nil {
		locality = fallback.Locality
	}
	if locality != nil && placeholderLocalities[strings.ToLower(strings.TrimSpace(*locality))] {
		locality = nil
	}

	var zone *string
	if locality != nil {
		z := geo.InferZone(*locality)
		zone = &z
	}

	budget := fallback.BudgetMax
	switch v := parsed.BudgetMax.(type) {
	case float64:
		if v > 0 {
			budget = &v
		}
	case string:
		if b := ParseBudget(v); b != nil {
			budget = b
		}
	}

	bhk := parsed.BHK
	if len(bhk) == 0 {
		bhk = fallback.BHK
	}

	return &model.QueryFilters{
		BudgetMax: budget,
		BHK:       bhk,
		Zone:      zone,
		Locality:  locality,
	}
}

package service

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/MATRIXJO/Intelligent-Real-Estate-Agent/internal/config"
	"github.com/MATRIXJO/Intelligent-Real-Estate-Agent/internal/geo"
	"github.com/MATRIXJO/Intelligent-Real-Estate-Agent/internal/model"
	"github.com/MATRIXJO/Intelligent-Real-Estate-Agent/internal/repository"
)

const summarySystemPrompt = `You are a helpful real estate assistant.
Given the user's query and the top matching properties, write a short, friendly summary (2-3 sentences) highlighting why these properties fit. Do not invent details.`

const fallbackAnswer = "Here are the best matching properties."

// Retriever is the storage surface the search pipeline depends on.
// *repository.PostgresRepository satisfies it.
type Retriever interface {
	SearchSimilar(ctx context.Context, embedding []float32, pred repository.Predicate, limit int) ([]repository.Candidate, error)
	LogSearch(ctx context.Context, searchID, userID, query string, filters *model.QueryFilters, resultCount int, docIDs []string, tookMs int) error
	LogFeedback(ctx context.Context, userID, docID string, liked bool) error
}

// affordabilityMarkers trigger the price-per-sqft ceiling in retrieval.
var affordabilityMarkers = []string{"cheap", "budget", "affordable", "low cost"}

// SearchService orchestrates the full query pipeline: conversation
// context, filter extraction, vector retrieval, proximity filtering,
// reranking, composite scoring and answer generation.
type SearchService struct {
	repo      Retriever
	llm       LLMClient
	extractor *FilterExtractor
	reranker  *Reranker
	scorer    *Scorer
	memory    *ConversationStore
	search    config.SearchConfig
	ranking   config.RankingConfig
	embPrefix string
}

// NewSearchService creates a new search service
func NewSearchService(repo Retriever, llm LLMClient, memory *ConversationStore, cfg *config.Config) *SearchService {
	return &SearchService{
		repo:      repo,
		llm:       llm,
		extractor: NewFilterExtractor(llm),
		reranker:  NewReranker(llm, cfg.Search.RerankLimit),
		scorer:    NewScorer(cfg.Ranking),
		memory:    memory,
		search:    cfg.Search,
		ranking:   cfg.Ranking,
		embPrefix: cfg.LLM.EmbeddingPrefix,
	}
}

// Query runs one search request through the pipeline and returns the
// scored top-k results with a generated answer.
func (s *SearchService) Query(ctx context.Context, req *model.QueryRequest) *model.QueryResponse {
	start := time.Now()
	searchID := uuid.New().String()

	topK := req.TopK
	if topK <= 0 {
		topK = s.search.DefaultTopK
	}
	if topK > s.search.MaxTopK {
		topK = s.search.MaxTopK
	}

	history := s.memory.History(req.UserID)
	filters := s.extractor.Extract(ctx, req.Query, history)
	s.mergeExplicit(filters, req)

	embedding, err := s.llm.CreateEmbedding(ctx, s.embPrefix+req.Query)
	if err != nil {
		log.Printf("Error: embedding generation failed: %v", err)
		return s.unavailableResponse(searchID, start)
	}

	pred := repository.Predicate{
		BudgetMax:       filters.BudgetMax,
		Zone:            filters.Zone,
		PriceNoiseFloor: s.ranking.PriceNoiseFloor,
	}
	if hasAffordabilityMarker(req.Query) {
		ceiling := s.ranking.PPSFCeiling
		pred.PPSFCeiling = &ceiling
	}

	candidates, err := s.repo.SearchSimilar(ctx, embedding, pred, s.search.RetrievalLimit)
	if err != nil {
		log.Printf("Error: vector search failed: %v", err)
		return s.unavailableResponse(searchID, start)
	}

	candidates = filterBHK(candidates, filters.BHK)
	candidates = s.filterProximity(candidates, filters.Locality)

	if len(candidates) == 0 {
		resp := &model.QueryResponse{
			Answer:    "No properties matched your filters. Try widening the budget or location.",
			Retrieved: []model.CandidateResult{},
			NoMatches: true,
			Filters:   filters,
			SearchID:  searchID,
			Took:      time.Since(start).Milliseconds(),
		}
		s.finish(req, filters, resp)
		return resp
	}

	ranked := s.reranker.Rerank(ctx, req.Query, candidates)
	normalized := NormalizeRelevance(ranked)

	results := make([]model.CandidateResult, 0, len(normalized))
	for i, rc := range normalized {
		results = append(results, model.CandidateResult{
			Listing:    rc.Listing,
			Similarity: ranked[i].Relevance,
			FinalScore: s.scorer.FinalScore(&rc.Listing, filters, rc.Relevance),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].FinalScore > results[j].FinalScore
	})
	if len(results) > topK {
		results = results[:topK]
	}

	resp := &model.QueryResponse{
		Answer:    s.summarize(ctx, req.Query, results),
		Retrieved: results,
		Filters:   filters,
		SearchID:  searchID,
		Took:      time.Since(start).Milliseconds(),
	}
	s.finish(req, filters, resp)
	return resp
}

// Feedback records a like/dislike without blocking the caller on the
// database write.
func (s *SearchService) Feedback(req *model.FeedbackRequest) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.repo.LogFeedback(ctx, req.UserID, req.DocID, *req.Liked); err != nil {
			log.Printf("Warning: failed to log feedback: %v", err)
		}
	}()
}

// mergeExplicit overlays explicit request filters on the extracted ones;
// what the caller states directly always wins.
func (s *SearchService) mergeExplicit(filters *model.QueryFilters, req *model.QueryRequest) {
	if req.BudgetMax != nil && *req.BudgetMax > 0 {
		filters.BudgetMax = req.BudgetMax
	}
	if len(req.BHK) > 0 {
		filters.BHK = req.BHK
	}
	if req.Zone != nil && *req.Zone != "" {
		filters.Zone = req.Zone
	}
}

// filterBHK keeps candidates whose bedroom configurations intersect the
// wanted set. With a filter active, a listing with no stored BHK data is
// excluded rather than guessed at.
func filterBHK(candidates []repository.Candidate, wanted []int) []repository.Candidate {
	if len(wanted) == 0 {
		return candidates
	}
	out := candidates[:0]
	for _, c := range candidates {
		if c.BHKList.Intersects(wanted) {
			out = append(out, c)
		}
	}
	return out
}

// filterProximity keeps candidates within the configured radius of the
// requested locality. It fails open twice: an unresolvable query
// locality skips the filter, and a filter that would empty the set is
// discarded.
func (s *SearchService) filterProximity(candidates []repository.Candidate, locality *string) []repository.Candidate {
	if locality == nil || len(candidates) == 0 {
		return candidates
	}

	center := geo.ResolveCoords(*locality, s.search.FuzzyThreshold)
	if !center.OK {
		log.Printf("Warning: could not resolve coordinates for %q (best match %q at %.0f), skipping proximity filter",
			*locality, center.Matched, center.Confidence)
		return candidates
	}

	kept := make([]repository.Candidate, 0, len(candidates))
	for _, c := range candidates {
		if c.Locality == nil {
			continue
		}
		pos := geo.ResolveCoords(*c.Locality, s.search.FuzzyThreshold)
		if !pos.OK {
			continue
		}
		if geo.WithinRadius(center.Coord, pos.Coord, s.search.ProximityRadiusKM) {
			kept = append(kept, c)
		}
	}

	if len(kept) == 0 {
		return candidates
	}
	return kept
}

// summarize asks the model for a short natural-language answer over the
// top results, with a canned fallback.
func (s *SearchService) summarize(ctx context.Context, query string, results []model.CandidateResult) string {
	if s.llm == nil || !s.llm.IsEnabled() || len(results) == 0 {
		return fallbackAnswer
	}

	var b strings.Builder
	for i, r := range results {
		title := ""
		if r.Listing.Title != nil {
			title = *r.Listing.Title
		}
		locality := ""
		if r.Listing.Locality != nil {
			locality = *r.Listing.Locality
		}
		fmt.Fprintf(&b, "%d. %s (%s, score %.1f)\n", i+1, title, locality, r.FinalScore)
	}

	userMsg := fmt.Sprintf("Query: %q\n\nTop properties:\n%s", query, b.String())
	answer, err := s.llm.Chat(ctx, summarySystemPrompt, userMsg)
	if err != nil || strings.TrimSpace(answer) == "" {
		if err != nil {
			log.Printf("Warning: summary generation failed: %v", err)
		}
		return fallbackAnswer
	}
	return strings.TrimSpace(answer)
}

// finish appends the exchange to conversation memory and logs the search
// without blocking the response.
func (s *SearchService) finish(req *model.QueryRequest, filters *model.QueryFilters, resp *model.QueryResponse) {
	s.memory.Append(req.UserID, "user", req.Query)
	s.memory.Append(req.UserID, "assistant", resp.Answer)

	docIDs := make([]string, 0, len(resp.Retrieved))
	for _, r := range resp.Retrieved {
		docIDs = append(docIDs, r.Listing.DocID)
	}
	searchID, userID, query := resp.SearchID, req.UserID, req.Query
	count, took := len(resp.Retrieved), int(resp.Took)

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.repo.LogSearch(ctx, searchID, userID, query, filters, count, docIDs, took); err != nil {
			log.Printf("Warning: failed to log search: %v", err)
		}
	}()
}

func (s *SearchService) unavailableResponse(searchID string, start time.Time) *model.QueryResponse {
	return &model.QueryResponse{
		Answer:    "The search backend is temporarily unavailable. Please try again shortly.",
		Retrieved: []model.CandidateResult{},
		SearchID:  searchID,
		Took:      time.Since(start).Milliseconds(),
	}
}

func hasAffordabilityMarker(query string) bool {
	q := strings.ToLower(query)
	for _, marker := range affordabilityMarkers {
		if strings.Contains(q, marker) {
			return true
		}
	}
	return false
}

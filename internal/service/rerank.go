package service

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"

	"github.com/MATRIXJO/Intelligent-Real-Estate-Agent/internal/repository"
	"github.com/MATRIXJO/Intelligent-Real-Estate-Agent/internal/utils"
)

const rerankSystemPrompt = `You are a real estate search reranker.
Given a user query and a numbered list of property snippets, score how relevant each property is to the query.

Return a JSON object:
{"ranking": [{"id": "<doc_id>", "relevance_score": <float 0.0-1.0>}, ...]}

Score every property. Output JSON ONLY.`

// rerankResponse is the JSON shape the rerank model returns.
type rerankResponse struct {
	Ranking []struct {
		ID             string  `json:"id"`
		RelevanceScore float64 `json:"relevance_score"`
	} `json:"ranking"`
}

// RankedCandidate pairs a retrieval candidate with its rerank relevance.
type RankedCandidate struct {
	repository.Candidate
	Relevance float64
}

// Reranker reorders retrieval candidates by LLM-judged relevance to the
// query. Unavailable or broken model output degrades to retrieval order.
type Reranker struct {
	llm   LLMClient
	limit int
}

// NewReranker creates a new reranker. limit caps how many candidates are
// sent to the model.
func NewReranker(llm LLMClient, limit int) *Reranker {
	return &Reranker{llm: llm, limit: limit}
}

const snippetMaxLen = 200

// Rerank scores candidates against the query and returns them sorted by
// relevance, highest first. Candidates the model skipped are appended
// with a token relevance of 0.1. If the model is disabled or its output
// unusable, every candidate gets 0.5 and retrieval order is preserved.
func (r *Reranker) Rerank(ctx context.Context, query string, candidates []repository.Candidate) []RankedCandidate {
	if len(candidates) > r.limit {
		candidates = candidates[:r.limit]
	}
	if len(candidates) == 0 {
		return nil
	}

	if r.llm == nil || !r.llm.IsEnabled() {
		return uniformRelevance(candidates)
	}

	userMsg := fmt.Sprintf("User Query: %q\n\nProperties:\n%s", query, buildSnippets(candidates))
	content, err := r.llm.ChatJSON(ctx, rerankSystemPrompt, userMsg)
	if err != nil {
		log.Printf("Warning: rerank call failed, keeping retrieval order: %v", err)
		return uniformRelevance(candidates)
	}

	var parsed rerankResponse
	if err := utils.DecodeModelJSON(content, &parsed); err != nil {
		log.Printf("Warning: unparseable rerank response, keeping retrieval order: %v", err)
		return uniformRelevance(candidates)
	}
	if len(parsed.Ranking) == 0 {
		return uniformRelevance(candidates)
	}

	byID := make(map[string]int, len(candidates))
	for i, c := range candidates {
		byID[c.DocID] = i
	}

	scores := make(map[string]float64, len(candidates))
	for _, entry := range parsed.Ranking {
		if _, known := byID[entry.ID]; !known {
			continue // hallucinated id
		}
		if _, seen := scores[entry.ID]; seen {
			continue
		}
		scores[entry.ID] = entry.RelevanceScore
	}

	out := make([]RankedCandidate, 0, len(candidates))
	for _, c := range candidates {
		rel, ok := scores[c.DocID]
		if !ok {
			rel = 0.1 // model skipped it
		}
		out = append(out, RankedCandidate{Candidate: c, Relevance: rel})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Relevance > out[j].Relevance
	})
	return out
}

func uniformRelevance(candidates []repository.Candidate) []RankedCandidate {
	out := make([]RankedCandidate, 0, len(candidates))
	for _, c := range candidates {
		out = append(out, RankedCandidate{Candidate: c, Relevance: 0.5})
	}
	return out
}

// buildSnippets renders one compact line per candidate so the prompt
// stays small regardless of description length.
func buildSnippets(candidates []repository.Candidate) string {
	var b strings.Builder
	for i, c := range candidates {
		content := c.SearchText()
		if len(content) > snippetMaxLen {
			content = content[:snippetMaxLen]
		}
		locality := "unknown"
		if c.Locality != nil {
			locality = *c.Locality
		}
		price := 0.0
		if c.ExactPrice != nil {
			price = *c.ExactPrice
		}
		fmt.Fprintf(&b, "%d. id=%s locality=%s price=%.0f | %s\n", i+1, c.DocID, locality, price, content)
	}
	return b.String()
}

// NormalizeRelevance scales relevance scores by the batch maximum so the
// best candidate maps to 1.0. A non-positive maximum (model scored
// everything zero) maps every candidate to 0.5.
func NormalizeRelevance(ranked []RankedCandidate) []RankedCandidate {
	if len(ranked) == 0 {
		return ranked
	}
	max := 0.0
	for _, rc := range ranked {
		if rc.Relevance > max {
			max = rc.Relevance
		}
	}
	out := make([]RankedCandidate, len(ranked))
	copy(out, ranked)
	if max <= 0 {
		for i := range out {
			out[i].Relevance = 0.5
		}
		return out
	}
	for i := range out {
		out[i].Relevance = out[i].Relevance / max
	}
	return out
}

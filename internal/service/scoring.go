package service

import (
	"math"
	"sort"

	"github.com/MATRIXJO/Intelligent-Real-Estate-Agent/internal/config"
	"github.com/MATRIXJO/Intelligent-Real-Estate-Agent/internal/model"
)

// Scorer computes the final 0-100 recommendation score per candidate by
// blending livability, investment, affordability and similarity
// sub-scores.
type Scorer struct {
	cfg config.RankingConfig
}

// NewScorer creates a new scorer with the given ranking constants
func NewScorer(cfg config.RankingConfig) *Scorer {
	return &Scorer{cfg: cfg}
}

// RobustNormalize scales a batch of raw values to [0,10] with outlier
// clipping. Missing values (NaN) are imputed with the batch median;
// values are clipped to the 5th-95th percentile band before min-max
// scaling. A degenerate batch (all missing or all equal) maps every
// item to the neutral 5.0. With invert set, lower raw values score
// higher (10 - x), e.g. price per sqft.
func RobustNormalize(values []float64, invert bool) []float64 {
	out := make([]float64, len(values))
	if len(values) == 0 {
		return out
	}

	finite := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			finite = append(finite, v)
		}
	}
	if len(finite) == 0 {
		for i := range out {
			out[i] = 5.0
		}
		return out
	}

	med := median(finite)
	filled := make([]float64, len(values))
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			filled[i] = med
		} else {
			filled[i] = v
		}
	}

	lower := quantile(filled, 0.05)
	upper := quantile(filled, 0.95)

	min, max := math.Inf(1), math.Inf(-1)
	clipped := make([]float64, len(filled))
	for i, v := range filled {
		c := clip(v, lower, upper)
		clipped[i] = c
		if c < min {
			min = c
		}
		if c > max {
			max = c
		}
	}

	if max == min {
		for i := range out {
			out[i] = 5.0
		}
		return out
	}

	for i, c := range clipped {
		norm := (c - min) / (max - min) * 10
		if invert {
			norm = 10 - norm
		}
		out[i] = norm
	}
	return out
}

func median(values []float64) float64 {
	s := append([]float64(nil), values...)
	sort.Float64s(s)
	n := len(s)
	if n%2 == 1 {
		return s[n/2]
	}
	return (s[n/2-1] + s[n/2]) / 2
}

// quantile returns the q-th quantile using linear interpolation between
// order statistics, matching the usual statistical convention.
func quantile(values []float64, q float64) float64 {
	s := append([]float64(nil), values...)
	sort.Float64s(s)
	if len(s) == 1 {
		return s[0]
	}
	pos := q * float64(len(s)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return s[lo]
	}
	frac := pos - float64(lo)
	return s[lo]*(1-frac) + s[hi]*frac
}

// Affordability scores how a price fits a budget on a 0-10 scale using
// a piecewise linear decay over the price/budget ratio: at or under
// budget is a 10, a 10% stretch decays to 5, a 20% stretch to 0.
// Missing or non-positive price/budget returns the neutral score.
func (s *Scorer) Affordability(price, budget float64) float64 {
	if budget <= 0 || price <= 0 {
		return s.cfg.NeutralScore
	}

	ratio := price / budget
	slope := s.cfg.AffordabilitySlope
	switch {
	case ratio <= 1.0:
		return 10.0
	case ratio <= 1.1:
		return 10.0 - (ratio-1.0)*slope
	case ratio <= 1.2:
		return 5.0 - (ratio-1.1)*slope
	default:
		return 0.0
	}
}

// FinalScore computes the 0-100 composite for one candidate. similarity
// is the max-normalized rerank relevance in [0,1]. With no budget in the
// filters, affordability's weight is redistributed proportionally across
// the other three so weights still sum to 1.
func (s *Scorer) FinalScore(listing *model.Listing, filters *model.QueryFilters, similarity float64) float64 {
	livBase := s.storedScore(listing.LivabilityScore)
	invBase := s.storedScore(listing.InvestmentScore)

	kwLiv, kwInv := KeywordBoosts(listing.SearchText(), s.cfg.BoostClipMin, s.cfg.BoostClipMax)
	livFinal := math.Min(10.0, livBase+kwLiv/s.cfg.KeywordDamping)
	invFinal := math.Min(10.0, invBase+kwInv/s.cfg.KeywordDamping)

	var price, budget float64
	if listing.ExactPrice != nil {
		price = *listing.ExactPrice
	}
	if filters != nil && filters.BudgetMax != nil {
		budget = *filters.BudgetMax
	}
	affScore := s.Affordability(price, budget)
	simScore := similarity * 10.0

	wLiv := s.cfg.WeightLivability
	wInv := s.cfg.WeightInvestment
	wAff := s.cfg.WeightAffordability
	wSim := s.cfg.WeightSimilarity

	if budget <= 0 {
		remaining := 1.0 - wAff
		wAff = 0
		wLiv /= remaining
		wInv /= remaining
		wSim /= remaining
	}

	final := wLiv*livFinal + wInv*invFinal + wAff*affScore + wSim*simScore

	return math.Round(final*10*10) / 10
}

// storedScore converts a precomputed 0-100 score to the 0-10 working
// scale, neutral when absent.
func (s *Scorer) storedScore(v *float64) float64 {
	if v == nil {
		return s.cfg.NeutralScore
	}
	return *v / 10.0
}

package service

import (
	"math"
	"testing"

	"github.com/MATRIXJO/Intelligent-Real-Estate-Agent/internal/config"
	"github.com/MATRIXJO/Intelligent-Real-Estate-Agent/internal/model"
)

func defaultRanking() config.RankingConfig {
	return config.RankingConfig{
		WeightLivability:    0.35,
		WeightInvestment:    0.35,
		WeightAffordability: 0.15,
		WeightSimilarity:    0.15,
		AffordabilitySlope:  50,
		KeywordDamping:      3,
		BoostClipMin:        -5,
		BoostClipMax:        15,
		NeutralScore:        5,
		PPSFCeiling:         9000,
		PriceNoiseFloor:     100,
	}
}

func TestAffordability(t *testing.T) {
	scorer := NewScorer(defaultRanking())

	tests := []struct {
		name   string
		price  float64
		budget float64
		want   float64
	}{
		{"well under budget", 10000000, 12000000, 10.0},
		{"exactly at budget", 12000000, 12000000, 10.0},
		{"5 percent over", 12600000, 12000000, 7.5},
		{"15 percent over", 13800000, 12000000, 2.5},
		{"25 percent over", 15000000, 12000000, 0.0},
		{"no budget is neutral", 10000000, 0, 5.0},
		{"no price is neutral", 0, 12000000, 5.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := scorer.Affordability(tt.price, tt.budget)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Affordability(%.0f, %.0f) = %.4f, want %.4f", tt.price, tt.budget, got, tt.want)
			}
		})
	}
}

func TestAffordabilityMonotonic(t *testing.T) {
	scorer := NewScorer(defaultRanking())
	budget := 10000000.0

	prev := math.Inf(1)
	for price := budget; price <= budget*1.3; price += budget * 0.01 {
		got := scorer.Affordability(price, budget)
		if got > prev+1e-9 {
			t.Fatalf("Affordability not monotonically decreasing at price %.0f: %.4f > %.4f", price, got, prev)
		}
		prev = got
	}
}

func TestRobustNormalize(t *testing.T) {
	t.Run("bounds", func(t *testing.T) {
		out := RobustNormalize([]float64{5, 1, 100, 42, 3, 7}, false)
		for i, v := range out {
			if v < 0 || v > 10 {
				t.Errorf("out[%d] = %.4f outside [0,10]", i, v)
			}
		}
	})

	t.Run("missing value gets the median", func(t *testing.T) {
		out := RobustNormalize([]float64{1, math.NaN(), 3}, false)
		want := []float64{0, 5, 10}
		for i := range want {
			if math.Abs(out[i]-want[i]) > 1e-9 {
				t.Errorf("out[%d] = %.4f, want %.4f", i, out[i], want[i])
			}
		}
	})

	t.Run("all equal is neutral", func(t *testing.T) {
		out := RobustNormalize([]float64{7, 7, 7}, false)
		for i, v := range out {
			if v != 5.0 {
				t.Errorf("out[%d] = %.4f, want 5.0", i, v)
			}
		}
	})

	t.Run("all missing is neutral", func(t *testing.T) {
		out := RobustNormalize([]float64{math.NaN(), math.NaN()}, false)
		for i, v := range out {
			if v != 5.0 {
				t.Errorf("out[%d] = %.4f, want 5.0", i, v)
			}
		}
	})

	t.Run("invert flips the scale", func(t *testing.T) {
		straight := RobustNormalize([]float64{2, 4, 6, 8}, false)
		inverted := RobustNormalize([]float64{2, 4, 6, 8}, true)
		for i := range straight {
			if math.Abs(straight[i]+inverted[i]-10) > 1e-9 {
				t.Errorf("straight[%d]+inverted[%d] = %.4f, want 10", i, i, straight[i]+inverted[i])
			}
		}
	})

	t.Run("empty input", func(t *testing.T) {
		if out := RobustNormalize(nil, false); len(out) != 0 {
			t.Errorf("Expected empty output, got %v", out)
		}
	})
}

func TestFinalScore(t *testing.T) {
	scorer := NewScorer(defaultRanking())

	listing := &model.Listing{
		DocID:           "d1",
		Title:           strPtr("Spacious flat"),
		ExactPrice:      float64Ptr(10000000),
		LivabilityScore: float64Ptr(70),
		InvestmentScore: float64Ptr(80),
	}

	t.Run("with budget", func(t *testing.T) {
		filters := &model.QueryFilters{BudgetMax: float64Ptr(12000000)}
		got := scorer.FinalScore(listing, filters, 1.0)
		// 0.35*7 + 0.35*8 + 0.15*10 + 0.15*10 = 8.25
		if got != 82.5 {
			t.Errorf("FinalScore = %.1f, want 82.5", got)
		}
	})

	t.Run("no budget redistributes affordability weight", func(t *testing.T) {
		got := scorer.FinalScore(listing, &model.QueryFilters{}, 1.0)
		// (7+8)*(0.35/0.85) + 10*(0.15/0.85) = 7.9412
		if got != 79.4 {
			t.Errorf("FinalScore = %.1f, want 79.4", got)
		}
	})

	t.Run("missing scores are neutral", func(t *testing.T) {
		bare := &model.Listing{DocID: "d2"}
		got := scorer.FinalScore(bare, &model.QueryFilters{}, 0.5)
		// liv=inv=5, sim=5, weights 7/17, 7/17, 3/17 -> exactly 5.0
		if got != 50.0 {
			t.Errorf("FinalScore = %.1f, want 50.0", got)
		}
	})

	t.Run("bounds over keyword-heavy listings", func(t *testing.T) {
		loaded := &model.Listing{
			DocID: "d3",
			Description: strPtr("gated community near metro with clubhouse swimming pool park " +
				"garden lake security cauvery water ready to move luxury villa furnished"),
			ExactPrice:      float64Ptr(5000000),
			LivabilityScore: float64Ptr(95),
			InvestmentScore: float64Ptr(95),
		}
		got := scorer.FinalScore(loaded, &model.QueryFilters{BudgetMax: float64Ptr(10000000)}, 1.0)
		if got < 0 || got > 100 {
			t.Errorf("FinalScore = %.1f outside [0,100]", got)
		}
	})
}

func strPtr(s string) *string {
	return &s
}

func float64Ptr(v float64) *float64 {
	return &v
}

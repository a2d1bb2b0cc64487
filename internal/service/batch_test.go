package service

import (
	"math"
	"testing"

	"github.com/MATRIXJO/Intelligent-Real-Estate-Agent/internal/model"
)

func batchListing(id, zone string, price, area float64, bhks ...int) model.Listing {
	return model.Listing{
		DocID:      id,
		Zone:       strPtr(zone),
		ExactPrice: float64Ptr(price),
		AreaSqft:   float64Ptr(area),
		BHKList:    bhks,
	}
}

func TestComputeBatchScores(t *testing.T) {
	listings := []model.Listing{
		batchListing("a", "Central", 12000000, 1500, 3),
		batchListing("b", "East", 8000000, 1100, 2),
		batchListing("c", "West", 4000000, 600, 1),
		batchListing("d", "Unknown", 6000000, 900),
	}

	scores := ComputeBatchScores(listings)
	if len(scores) != 4 {
		t.Fatalf("Expected 4 scored listings, got %d", len(scores))
	}

	for id, pair := range scores {
		for i, v := range pair {
			if v < 0 || v > 100 {
				t.Errorf("%s score[%d] = %.1f outside [0,100]", id, i, v)
			}
			// one decimal place
			if math.Abs(v*10-math.Round(v*10)) > 1e-9 {
				t.Errorf("%s score[%d] = %.4f not rounded to one decimal", id, i, v)
			}
		}
	}

	// a: Central zone, 3 BHK, largest area; should beat the 1 BHK West
	// listing on livability
	if scores["a"][0] <= scores["c"][0] {
		t.Errorf("Expected a (%.1f) to out-score c (%.1f) on livability", scores["a"][0], scores["c"][0])
	}
	// b: East zone with a 2 BHK; should beat the Unknown-zone plot on
	// investment
	if scores["b"][1] <= scores["d"][1] {
		t.Errorf("Expected b (%.1f) to out-score d (%.1f) on investment", scores["b"][1], scores["d"][1])
	}
}

func TestComputeBatchScoresEmpty(t *testing.T) {
	if scores := ComputeBatchScores(nil); len(scores) != 0 {
		t.Errorf("Expected empty map, got %v", scores)
	}
}

func TestComputeBatchScoresDerivesPricePerSqft(t *testing.T) {
	// price_per_sqft absent everywhere; derived from price/area, and the
	// cheaper-per-sqft listing should score higher on the price component.
	// Identical zone and BHK isolate it.
	listings := []model.Listing{
		batchListing("cheap", "East", 5000000, 1250, 2),  // 4000/sqft
		batchListing("costly", "East", 9000000, 1000, 2), // 9000/sqft
		batchListing("mid", "East", 6500000, 1083, 2),
	}

	scores := ComputeBatchScores(listings)
	if scores["cheap"][1] <= scores["costly"][1] {
		t.Errorf("Expected cheaper per-sqft listing to score higher on investment: %.1f vs %.1f",
			scores["cheap"][1], scores["costly"][1])
	}
}

func TestBatchKeywordScore(t *testing.T) {
	tests := []struct {
		name string
		text string
		want float64
	}{
		{"simple sum", "gated community near metro", 6.0}, // 2 + 1 + 3
		{"capped at 10", "gated community metro school hospital park lake luxury oc received khata ready to move", 10.0},
		{"negative signal", "under construction", -0.5},
		{"no keywords", "plain two bedroom flat", 0},
		{"empty", "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := batchKeywordScore(tt.text); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("batchKeywordScore(%q) = %.2f, want %.2f", tt.text, got, tt.want)
			}
		})
	}
}

func TestBHKScores(t *testing.T) {
	tests := []struct {
		name    string
		bhks    model.IntList
		wantLiv float64
		wantInv float64
	}{
		{"three bhk", model.IntList{3}, 9, 9},
		{"two bhk", model.IntList{2}, 7, 8},
		{"mixed favors largest and most liquid", model.IntList{2, 3}, 9, 9},
		{"penthouse capped", model.IntList{6}, 10, 6},
		{"one bhk", model.IntList{1}, 5, 6},
		{"plot", nil, 5, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			liv, inv := bhkScores(tt.bhks)
			if liv != tt.wantLiv || inv != tt.wantInv {
				t.Errorf("bhkScores(%v) = (%.1f, %.1f), want (%.1f, %.1f)",
					tt.bhks, liv, inv, tt.wantLiv, tt.wantInv)
			}
		})
	}
}

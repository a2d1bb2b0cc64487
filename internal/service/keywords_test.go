package service

import (
	"math"
	"testing"
)

func TestKeywordBoosts(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		wantLiv float64
		wantInv float64
	}{
		{
			name:    "phrase consumes its words",
			text:    "beautiful gated community with clubhouse",
			wantLiv: 3.5, // gated community 2.0 + clubhouse 1.5; gated/community not double counted
			wantInv: 1.7,
		},
		{
			name:    "longer phrase wins over its prefix",
			text:    "flat near metro station",
			wantLiv: 2.5, // "near metro" only; the inner "metro" span is consumed
			wantInv: 1.5,
		},
		{
			name:    "negative signals",
			text:    "b khata property under construction",
			wantLiv: -3.0, // -1.0 + -2.0
			wantInv: 1.5,  // -1.0 + 2.5
		},
		{
			name:    "repeated phrase counts once",
			text:    "metro metro metro",
			wantLiv: 2.0,
			wantInv: 1.5,
		},
		{
			name:    "word boundary respected",
			text:    "metropolitan living",
			wantLiv: 0,
			wantInv: 0,
		},
		{
			name:    "empty text",
			text:    "",
			wantLiv: 0,
			wantInv: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			liv, inv := KeywordBoosts(tt.text, -5, 15)
			if math.Abs(liv-tt.wantLiv) > 1e-9 || math.Abs(inv-tt.wantInv) > 1e-9 {
				t.Errorf("KeywordBoosts(%q) = (%.2f, %.2f), want (%.2f, %.2f)",
					tt.text, liv, inv, tt.wantLiv, tt.wantInv)
			}
		})
	}
}

func TestKeywordBoostsClipping(t *testing.T) {
	text := "gated community near metro clubhouse swimming pool park garden lake security " +
		"cauvery power backup ready to move villa luxury furnished school hospital tech park " +
		"east facing corner duplex vastu a khata oc received"

	liv, inv := KeywordBoosts(text, -5, 15)
	if liv != 15 {
		t.Errorf("Expected livability boost clipped to 15, got %.2f", liv)
	}
	if inv < -5 || inv > 15 {
		t.Errorf("Investment boost %.2f outside clip range", inv)
	}

	negative := "b khata b khata under construction"
	liv, _ = KeywordBoosts(negative+" "+negative, -2, 15)
	if liv != -2 {
		t.Errorf("Expected livability boost clipped to -2, got %.2f", liv)
	}
}

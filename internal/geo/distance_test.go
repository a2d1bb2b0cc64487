package geo

import (
	"math"
	"testing"
)

func TestDistanceKM(t *testing.T) {
	koramangala := Coord{12.9352, 77.6245}
	hsrLayout := Coord{12.9116, 77.6446}
	devanahalli := Coord{13.2437, 77.7172}

	t.Run("same point is zero", func(t *testing.T) {
		if d := DistanceKM(koramangala, koramangala); d != 0 {
			t.Errorf("Expected 0, got %.4f", d)
		}
	})

	t.Run("neighboring localities", func(t *testing.T) {
		d := DistanceKM(koramangala, hsrLayout)
		if d < 3.0 || d > 3.8 {
			t.Errorf("Expected roughly 3.4 km, got %.2f", d)
		}
	})

	t.Run("symmetric", func(t *testing.T) {
		a := DistanceKM(koramangala, devanahalli)
		b := DistanceKM(devanahalli, koramangala)
		if math.Abs(a-b) > 1e-9 {
			t.Errorf("Expected symmetric distance, got %.6f vs %.6f", a, b)
		}
	})

	t.Run("NaN coordinate is infinitely far", func(t *testing.T) {
		d := DistanceKM(Coord{math.NaN(), 77.6}, koramangala)
		if !math.IsInf(d, 1) {
			t.Errorf("Expected +Inf, got %.2f", d)
		}
	})
}

func TestWithinRadius(t *testing.T) {
	koramangala := Coord{12.9352, 77.6245}
	hsrLayout := Coord{12.9116, 77.6446}
	devanahalli := Coord{13.2437, 77.7172}

	if !WithinRadius(koramangala, hsrLayout, 6.5) {
		t.Error("Expected HSR Layout within 6.5 km of Koramangala")
	}
	if WithinRadius(koramangala, devanahalli, 6.5) {
		t.Error("Expected Devanahalli outside 6.5 km of Koramangala")
	}
	if WithinRadius(Coord{math.NaN(), math.NaN()}, koramangala, 6.5) {
		t.Error("Expected unresolved coordinates never within radius")
	}
}

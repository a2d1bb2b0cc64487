package geo

import (
	"testing"
)

func TestInferZone(t *testing.T) {
	tests := []struct {
		name     string
		locality string
		want     string
	}{
		{
			name:     "exact match",
			locality: "whitefield",
			want:     ZoneEast,
		},
		{
			name:     "case and whitespace normalized",
			locality: "  Hebbal ",
			want:     ZoneNorth,
		},
		{
			name:     "substring match inside a longer phrase",
			locality: "apartment near sarjapur main road",
			want:     ZoneEast,
		},
		{
			name:     "longest key wins when multiple localities appear",
			locality: "between hebbal and bellandur",
			want:     ZoneEast, // bellandur is the longer key
		},
		{
			name:     "unknown locality",
			locality: "mumbai",
			want:     ZoneUnknown,
		},
		{
			name:     "empty input",
			locality: "",
			want:     ZoneUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := InferZone(tt.locality); got != tt.want {
				t.Errorf("InferZone(%q) = %q, want %q", tt.locality, got, tt.want)
			}
		})
	}
}

func TestKnownLocalitiesOrderedLongestFirst(t *testing.T) {
	locs := KnownLocalities()
	if len(locs) == 0 {
		t.Fatal("Expected a non-empty locality table")
	}
	for i := 1; i < len(locs); i++ {
		if len(locs[i]) > len(locs[i-1]) {
			t.Fatalf("Localities not sorted longest first: %q before %q", locs[i-1], locs[i])
		}
	}
}

func TestZoneOf(t *testing.T) {
	zone, ok := ZoneOf("koramangala")
	if !ok || zone != ZoneSouth {
		t.Errorf("ZoneOf(koramangala) = %q, %v; want %q, true", zone, ok, ZoneSouth)
	}

	if _, ok := ZoneOf("atlantis"); ok {
		t.Error("Expected no zone for unknown locality")
	}
}

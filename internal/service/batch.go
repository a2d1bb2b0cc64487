package service

import (
	"math"
	"strings"

	"github.com/MATRIXJO/Intelligent-Real-Estate-Agent/internal/geo"
	"github.com/MATRIXJO/Intelligent-Real-Estate-Agent/internal/model"
)

// Batch recomputation of the stored livability/investment scores over
// the whole corpus. The search pipeline consumes these as precomputed
// inputs; cmd/scorer runs this after each ingest.

// Zone calibration on the 0-10 working scale.
var zoneLivability = map[string]float64{
	geo.ZoneEast: 7.5, geo.ZoneSouth: 9.2, geo.ZoneNorth: 8.0,
	geo.ZoneWest: 6.8, geo.ZoneCentral: 9.5, geo.ZoneUnknown: 5.0,
}

var zoneInvestment = map[string]float64{
	geo.ZoneEast: 9.5, geo.ZoneSouth: 8.2, geo.ZoneNorth: 9.3,
	geo.ZoneWest: 7.4, geo.ZoneCentral: 8.8, geo.ZoneUnknown: 5.0,
}

// bhkLivability maps the largest bedroom count (capped at 4) to a
// livability score; more rooms, better living.
var bhkLivability = map[int]float64{1: 5, 2: 7, 3: 9, 4: 10}

// batchKeywordWeights is the coarser table used for corpus scoring; the
// per-query boost table in keywords.go is separate by design.
var batchKeywordWeights = map[string]float64{
	"gated": 2, "community": 1, "metro": 3, "school": 2,
	"hospital": 1.5, "park": 1.5, "lake": 2, "balcony": 0.5,
	"gym": 1, "club": 1, "luxury": 2, "ready to move": 2,
	"oc received": 3, "khata": 2, "under construction": -0.5,
}

// Component weights, each set sums to 1.0.
var batchWeightsLiv = map[string]float64{"area": 0.35, "bhk": 0.25, "zone": 0.20, "price": 0.10, "keyword": 0.10}
var batchWeightsInv = map[string]float64{"zone": 0.35, "price": 0.25, "locality": 0.15, "bhk": 0.15, "keyword": 0.10}

// BatchScores holds recomputed scores per doc_id as
// [livability, investment], both 0-100.
type BatchScores map[string][2]float64

// ComputeBatchScores derives livability/investment scores for every
// listing from batch-normalized area and price-per-sqft, BHK and zone
// calibration maps, keyword signal, and locality frequency.
func ComputeBatchScores(listings []model.Listing) BatchScores {
	n := len(listings)
	if n == 0 {
		return BatchScores{}
	}

	areas := make([]float64, n)
	ppsf := make([]float64, n)
	localityFreq := map[string]float64{}

	for i := range listings {
		l := &listings[i]
		areas[i] = floatOrNaN(l.AreaSqft)
		ppsf[i] = floatOrNaN(l.PricePerSqft)
		// derive price per sqft when the column is missing
		if math.IsNaN(ppsf[i]) && l.ExactPrice != nil && l.AreaSqft != nil && *l.AreaSqft > 0 {
			ppsf[i] = *l.ExactPrice / *l.AreaSqft
		}
		localityFreq[localityKey(l)]++
	}

	areaScores := RobustNormalize(areas, false)
	priceScores := RobustNormalize(ppsf, true) // lower price per sqft scores higher

	freqs := make([]float64, n)
	for i := range listings {
		freqs[i] = localityFreq[localityKey(&listings[i])]
	}
	localityScores := RobustNormalize(freqs, false)

	out := make(BatchScores, n)
	for i := range listings {
		l := &listings[i]

		zone := geo.ZoneUnknown
		if l.Zone != nil {
			zone = strings.TrimSpace(*l.Zone)
		}
		zoneLiv := scoreFromMap(zoneLivability, zone)
		zoneInv := scoreFromMap(zoneInvestment, zone)

		bhkLiv, bhkInv := bhkScores(l.BHKList)
		kwScore := batchKeywordScore(l.SearchText())

		liv := (areaScores[i]*batchWeightsLiv["area"] +
			bhkLiv*batchWeightsLiv["bhk"] +
			zoneLiv*batchWeightsLiv["zone"] +
			priceScores[i]*batchWeightsLiv["price"] +
			kwScore*batchWeightsLiv["keyword"]) * 10

		inv := (zoneInv*batchWeightsInv["zone"] +
			priceScores[i]*batchWeightsInv["price"] +
			localityScores[i]*batchWeightsInv["locality"] +
			bhkInv*batchWeightsInv["bhk"] +
			kwScore*batchWeightsInv["keyword"]) * 10

		out[l.DocID] = [2]float64{round1(liv), round1(inv)}
	}

	return out
}

func bhkScores(bhks model.IntList) (liv, inv float64) {
	if len(bhks) == 0 {
		return 5.0, 5.0 // plots and land score neutral
	}

	maxBHK := 0
	has2, has3 := false, false
	for _, b := range bhks {
		if b > maxBHK {
			maxBHK = b
		}
		has2 = has2 || b == 2
		has3 = has3 || b == 3
	}

	if maxBHK > 4 {
		maxBHK = 4
	}
	liv, ok := bhkLivability[maxBHK]
	if !ok {
		liv = 6.0
	}

	// 2 and 3 BHK units are the most liquid resale inventory
	switch {
	case has3:
		inv = 9.0
	case has2:
		inv = 8.0
	default:
		inv = 6.0
	}
	return liv, inv
}

func batchKeywordScore(text string) float64 {
	if text == "" {
		return 0
	}
	t := strings.ToLower(text)
	score := 0.0
	for kw, wt := range batchKeywordWeights {
		if strings.Contains(t, kw) {
			score += wt
		}
	}
	return math.Min(10.0, score)
}

func scoreFromMap(m map[string]float64, key string) float64 {
	if v, ok := m[key]; ok {
		return v
	}
	return 5.0
}

func localityKey(l *model.Listing) string {
	if l.Locality == nil || strings.TrimSpace(*l.Locality) == "" {
		return "unknown"
	}
	return strings.ToLower(strings.TrimSpace(*l.Locality))
}

func floatOrNaN(v *float64) float64 {
	if v == nil {
		return math.NaN()
	}
	return *v
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

package service

import (
	"regexp"
	"sort"
	"strings"
)

// keywordWeight is the (livability, investment) boost a matched phrase
// contributes.
type keywordWeight struct {
	Liv float64
	Inv float64
}

// keywordWeights maps description phrases to score boosts. Positive is
// good, negative is bad; livability and investment react differently
// (e.g. "under construction" is bad to live in, great to invest in).
var keywordWeights = map[string]keywordWeight{
	// infrastructure & connectivity
	"metro":      {2.0, 1.5},
	"near metro": {2.5, 1.5},
	"airport":    {0.5, 2.0},
	"ring road":  {1.0, 1.5},
	"orr":        {1.5, 2.0},
	"nice road":  {0.5, 1.0},
	"highway":    {0.0, 1.0},

	// amenities
	"gated":           {1.5, 0.8},
	"community":       {1.0, 0.5},
	"gated community": {2.0, 1.2},
	"clubhouse":       {1.5, 0.5},
	"club":            {1.0, 0.3},
	"gym":             {1.0, 0.3},
	"swimming pool":   {1.5, 0.5},
	"pool":            {1.0, 0.4},
	"park":            {1.5, 0.5},
	"garden":          {1.2, 0.4},
	"lake":            {1.5, 1.0},
	"security":        {1.5, 0.5},
	"cctv":            {1.0, 0.2},

	// utilities
	"cauvery":      {3.0, 1.5},
	"kaveri":       {3.0, 1.5},
	"borewell":     {1.0, 0.5},
	"water supply": {1.0, 0.5},
	"power backup": {1.5, 0.5},

	// legal & status
	"a khata":            {1.5, 2.0},
	"e khata":            {1.0, 1.5},
	"b khata":            {-1.0, -1.0},
	"dc conversion":      {0.5, 1.0},
	"oc received":        {2.0, 1.5},
	"ready to move":      {2.5, 1.0},
	"under construction": {-2.0, 2.5},
	"new launch":         {-1.0, 3.0},
	"resale":             {1.0, 0.0},

	// property features
	"corner":         {1.0, 1.5},
	"east facing":    {1.5, 1.0},
	"north facing":   {1.0, 0.8},
	"vastu":          {1.0, 0.5},
	"furnished":      {2.0, 0.5},
	"semi furnished": {1.0, 0.2},
	"duplex":         {1.5, 1.0},
	"villa":          {2.0, 1.5},
	"balcony":        {0.5, 0.1},
	"luxury":         {1.5, 1.0},

	// location proximity
	"school":    {1.5, 0.5},
	"hospital":  {1.5, 0.5},
	"tech park": {1.0, 2.0},
	"it hub":    {1.0, 2.0},
	"mall":      {1.0, 0.5},
	"market":    {0.8, 0.2},
}

// keywordPattern pairs a phrase's compiled word-boundary pattern with
// its weights. Ordered longest phrase first so "gated community"
// consumes its span before "community" is considered.
type keywordPattern struct {
	phrase string
	re     *regexp.Regexp
	weight keywordWeight
}

var keywordPatterns = func() []keywordPattern {
	patterns := make([]keywordPattern, 0, len(keywordWeights))
	for phrase, w := range keywordWeights {
		patterns = append(patterns, keywordPattern{
			phrase: phrase,
			re:     regexp.MustCompile(`\b` + regexp.QuoteMeta(phrase) + `\b`),
			weight: w,
		})
	}
	sort.Slice(patterns, func(i, j int) bool {
		if len(patterns[i].phrase) != len(patterns[j].phrase) {
			return len(patterns[i].phrase) > len(patterns[j].phrase)
		}
		return patterns[i].phrase < patterns[j].phrase
	})
	return patterns
}()

type span struct{ start, end int }

func (s span) overlaps(o span) bool {
	return s.start < o.end && o.start < s.end
}

// KeywordBoosts scans text for the weighted phrases and returns the
// summed (livability, investment) boosts, each clipped to
// [clipMin, clipMax]. Matches are found over the original text with
// consumed spans recorded explicitly, so a multi-word phrase and the
// single words inside it never both count.
func KeywordBoosts(text string, clipMin, clipMax float64) (float64, float64) {
	if text == "" {
		return 0, 0
	}
	t := strings.ToLower(text)

	var liv, inv float64
	var consumed []span

	for _, kp := range keywordPatterns {
		matched := false
		for _, loc := range kp.re.FindAllStringIndex(t, -1) {
			candidate := span{loc[0], loc[1]}
			free := true
			for _, c := range consumed {
				if candidate.overlaps(c) {
					free = false
					break
				}
			}
			if free {
				consumed = append(consumed, candidate)
				matched = true
			}
		}
		if matched {
			liv += kp.weight.Liv
			inv += kp.weight.Inv
		}
	}

	return clip(liv, clipMin, clipMax), clip(inv, clipMin, clipMax)
}

func clip(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

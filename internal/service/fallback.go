package service

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/MATRIXJO/Intelligent-Real-Estate-Agent/internal/geo"
	"github.com/MATRIXJO/Intelligent-Real-Estate-Agent/internal/model"
)

// Regex-based filter extraction used when the LLM is unavailable and as
// the baseline the LLM result is merged over.

var (
	budgetUnitRe  = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*(cr|crore|lakh|lac|l|k)\b`)
	largeNumberRe = regexp.MustCompile(`\b(\d{6,})\b`)
	bhkRangeRe    = regexp.MustCompile(`(\d+)\s*(?:-|to)\s*(\d+)\s*(?:bhk|bed)`)
	smallDigitRe  = regexp.MustCompile(`\b(\d)\b`)
	attachedBHKRe = regexp.MustCompile(`(\d)bhk`)
)

var wordToNum = map[string]string{
	"one": "1", "two": "2", "three": "3", "four": "4", "five": "5", "six": "6",
}

// ParseBudget extracts a maximum budget in currency units from free
// text. Understands Indian units (cr/crore, lakh/lac/l, k) and falls
// back to the first bare number of six or more digits.
func ParseBudget(text string) *float64 {
	if text == "" {
		return nil
	}
	s := strings.ReplaceAll(strings.ToLower(text), ",", "")

	if m := budgetUnitRe.FindStringSubmatch(s); m != nil {
		val, err := strconv.ParseFloat(m[1], 64)
		if err == nil {
			var mul float64 = 1
			switch {
			case strings.HasPrefix(m[2], "cr"):
				mul = 10000000
			case strings.HasPrefix(m[2], "l"):
				mul = 100000
			case m[2] == "k":
				mul = 1000
			}
			budget := val * mul
			return &budget
		}
	}

	if m := largeNumberRe.FindStringSubmatch(s); m != nil {
		if val, err := strconv.ParseFloat(m[1], 64); err == nil {
			return &val
		}
	}

	return nil
}

// ParseBHK extracts the requested bedroom counts from free text:
// ranges ("2 to 3 bhk"), attached digits ("3bhk"), spelled-out numbers,
// and "studio" as 1. "2.5 bhk" is folded into 3.
func ParseBHK(text string) []int {
	if text == "" {
		return nil
	}
	s := strings.ToLower(text)
	for word, num := range wordToNum {
		s = strings.ReplaceAll(s, word, num)
	}

	bhks := map[int]bool{}

	// half-configurations round up; drop the token so the digit scan
	// below doesn't read it as 2 and 5
	if strings.Contains(s, "2.5") {
		bhks[3] = true
		s = strings.ReplaceAll(s, "2.5", "")
	}

	if m := bhkRangeRe.FindStringSubmatch(s); m != nil {
		start, _ := strconv.Atoi(m[1])
		end, _ := strconv.Atoi(m[2])
		// guard against "1200 sqft" acting as a range end
		if start < 10 && end < 10 && start <= end {
			var out []int
			for i := start; i <= end; i++ {
				out = append(out, i)
			}
			return out
		}
	}

	if strings.Contains(s, "bhk") || strings.Contains(s, "bed") {
		for _, m := range smallDigitRe.FindAllStringSubmatch(s, -1) {
			n, _ := strconv.Atoi(m[1])
			bhks[n] = true
		}
	}

	for _, m := range attachedBHKRe.FindAllStringSubmatch(s, -1) {
		n, _ := strconv.Atoi(m[1])
		bhks[n] = true
	}

	if len(bhks) == 0 {
		if strings.Contains(s, "studio") {
			return []int{1}
		}
		return nil
	}

	out := make([]int, 0, len(bhks))
	for i := 1; i <= 9; i++ {
		if bhks[i] {
			out = append(out, i)
		}
	}
	return out
}

// localityPatterns holds word-boundary patterns for every known
// locality, longest names first, compiled once.
var localityPatterns = func() []*regexp.Regexp {
	locs := geo.KnownLocalities()
	patterns := make([]*regexp.Regexp, len(locs))
	for i, loc := range locs {
		patterns[i] = regexp.MustCompile(`\b` + regexp.QuoteMeta(loc) + `\b`)
	}
	return patterns
}()

// ParseLocality scans the text for a known locality (longest names
// first, on word boundaries) and returns it with its zone.
func ParseLocality(text string) (*string, *string) {
	if text == "" {
		return nil, nil
	}
	s := strings.ToLower(text)

	for i, re := range localityPatterns {
		if re.MatchString(s) {
			loc := geo.KnownLocalities()[i]
			zone, _ := geo.ZoneOf(loc)
			name := strings.Title(loc)
			return &name, &zone
		}
	}

	return nil, nil
}

// ExtractHeuristic runs every regex extractor over the query text.
func ExtractHeuristic(text string) *model.QueryFilters {
	locality, zone := ParseLocality(text)
	return &model.QueryFilters{
		BudgetMax: ParseBudget(text),
		BHK:       ParseBHK(text),
		Zone:      zone,
		Locality:  locality,
	}
}

package geo

import (
	"sort"
	"strings"
)

// Zone labels. Listings and queries outside the known set resolve to
// ZoneUnknown rather than erroring.
const (
	ZoneNorth   = "North"
	ZoneEast    = "East"
	ZoneSouth   = "South"
	ZoneWest    = "West"
	ZoneCentral = "Central"
	ZoneUnknown = "Unknown"
)

// localityToZone maps Bangalore localities to coarse zones. Keys must be
// lowercase for the matching logic.
var localityToZone = map[string]string{
	// --- NORTH ---
	"devanahalli":     ZoneNorth,
	"yelahanka":       ZoneNorth,
	"hebbal":          ZoneNorth,
	"thanisandra":     ZoneNorth,
	"jakkur":          ZoneNorth,
	"bagalur":         ZoneNorth,
	"hennur":          ZoneNorth,
	"sahakara nagar":  ZoneNorth,
	"vidyaranyapura":  ZoneNorth,
	"rt nagar":        ZoneNorth,
	"peenya":          ZoneNorth,
	"yeshwanthpur":    ZoneNorth,
	"jalahalli":       ZoneNorth,
	"mathikere":       ZoneNorth,
	"sanjay nagar":    ZoneNorth,
	"nagawara":        ZoneNorth,
	"kogilu":          ZoneNorth,
	"doddaballapur":   ZoneNorth,
	"chikkajala":      ZoneNorth,
	"kalyan nagar":    ZoneNorth,
	"hrbr layout":     ZoneNorth,
	"hbr layout":      ZoneNorth,
	"banaswadi":       ZoneNorth,
	"horamavu":        ZoneNorth,
	"kothanur":        ZoneNorth,
	"hessarghatta":    ZoneNorth,
	"nelamangala":     ZoneNorth,
	"manyata":         ZoneNorth,
	"bel road":        ZoneNorth,

	// --- EAST ---
	"whitefield":        ZoneEast,
	"sarjapur":          ZoneEast,
	"varthur":           ZoneEast,
	"marathahalli":      ZoneEast,
	"kr puram":          ZoneEast,
	"mahadevapura":      ZoneEast,
	"bellandur":         ZoneEast,
	"brookefield":       ZoneEast,
	"kundalahalli":      ZoneEast,
	"hoodi":             ZoneEast,
	"budigere":          ZoneEast,
	"hoskote":           ZoneEast,
	"old madras road":   ZoneEast,
	"old airport road":  ZoneEast,
	"cv raman nagar":    ZoneEast,
	"kaggadasapura":     ZoneEast,
	"kadugodi":          ZoneEast,
	"panathur":          ZoneEast,
	"gunjur":            ZoneEast,
	"ramamurthy nagar":  ZoneEast,
	"kasturi nagar":     ZoneEast,
	"itpl":              ZoneEast,
	"aecs layout":       ZoneEast,
	"beml layout":       ZoneEast,
	"bidarahalli":       ZoneEast,
	"seegehalli":        ZoneEast,
	"thubarahalli":      ZoneEast,

	// --- SOUTH ---
	"electronic city":    ZoneSouth,
	"electronics city":   ZoneSouth,
	"koramangala":        ZoneSouth,
	"hsr layout":         ZoneSouth,
	"btm layout":         ZoneSouth,
	"jayanagar":          ZoneSouth,
	"jp nagar":           ZoneSouth,
	"bannerghatta":       ZoneSouth,
	"kanakapura":         ZoneSouth,
	"hosur road":         ZoneSouth,
	"begur":              ZoneSouth,
	"bommanahalli":       ZoneSouth,
	"basavanagudi":       ZoneSouth,
	"padmanabhanagar":    ZoneSouth,
	"kumaraswamy layout": ZoneSouth,
	"uttarahalli":        ZoneSouth,
	"banashankari":       ZoneSouth,
	"arekere":            ZoneSouth,
	"hulimavu":           ZoneSouth,
	"gottigere":          ZoneSouth,
	"jigani":             ZoneSouth,
	"anekal":             ZoneSouth,
	"attibele":           ZoneSouth,
	"chandapura":         ZoneSouth,
	"harlur":             ZoneSouth,
	"kudlu":              ZoneSouth,
	"singasandra":        ZoneSouth,
	"konanakunte":        ZoneSouth,
	"billekahalli":       ZoneSouth,

	// --- WEST ---
	"malleshwaram":        ZoneWest,
	"rajajinagar":         ZoneWest,
	"vijayanagar":         ZoneWest,
	"basaveshwara nagar":  ZoneWest,
	"nagarbhavi":          ZoneWest,
	"kengeri":             ZoneWest,
	"mysore road":         ZoneWest,
	"magadi road":         ZoneWest,
	"chandra layout":      ZoneWest,
	"mahalakshmi layout":  ZoneWest,
	"nandini layout":      ZoneWest,
	"rr nagar":            ZoneWest,
	"rajarajeshwari nagar": ZoneWest,
	"kumbalgodu":          ZoneWest,
	"bidadi":              ZoneWest,
	"nayandahalli":        ZoneWest,

	// --- CENTRAL ---
	"mg road":         ZoneCentral,
	"brigade road":    ZoneCentral,
	"cunningham road": ZoneCentral,
	"lavelle road":    ZoneCentral,
	"richmond":        ZoneCentral,
	"vasanth nagar":   ZoneCentral,
	"shivajinagar":    ZoneCentral,
	"frazer town":     ZoneCentral,
	"benson town":     ZoneCentral,
	"ulsoor":          ZoneCentral,
	"halasuru":        ZoneCentral,
	"shanthi nagar":   ZoneCentral,
	"wilson garden":   ZoneCentral,
	"seshadripuram":   ZoneCentral,
	"majestic":        ZoneCentral,
	"chamarajpet":     ZoneCentral,
	"domlur":          ZoneCentral, // geographically East, grouped Central for premium value
	"indiranagar":     ZoneCentral,
	"ashok nagar":     ZoneCentral,
}

// sortedLocalities holds the table keys longest first so a specific
// compound name ("electronic city phase 1" contains "electronic city")
// wins over a shorter key it also contains.
var sortedLocalities = func() []string {
	keys := make([]string, 0, len(localityToZone))
	for k := range localityToZone {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})
	return keys
}()

// InferZone resolves a free-text locality string to a zone label.
// Exact table match first, then longest-key substring scan, else
// ZoneUnknown.
func InferZone(locality string) string {
	clean := strings.ToLower(strings.TrimSpace(locality))
	if clean == "" {
		return ZoneUnknown
	}

	if zone, ok := localityToZone[clean]; ok {
		return zone
	}

	for _, loc := range sortedLocalities {
		if strings.Contains(clean, loc) {
			return localityToZone[loc]
		}
	}

	return ZoneUnknown
}

// KnownLocalities returns the locality keys longest first. The fallback
// extractor scans these against query text.
func KnownLocalities() []string {
	return sortedLocalities
}

// ZoneOf returns the zone for an exact (lowercase) locality key.
func ZoneOf(locality string) (string, bool) {
	zone, ok := localityToZone[locality]
	return zone, ok
}

package geo

import (
	"sort"
	"strings"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"
)

// localityCoords maps locality names (lowercase) to coordinates.
// Localities without an entry simply never resolve, which downstream
// treats as "skip proximity filtering".
var localityCoords = map[string]Coord{
	// North
	"devanahalli":    {13.2437, 77.7172},
	"yelahanka":      {13.1007, 77.5963},
	"hebbal":         {13.0358, 77.5970},
	"thanisandra":    {13.0570, 77.6290},
	"jakkur":         {13.0780, 77.6070},
	"hennur":         {13.0351, 77.6412},
	"sahakara nagar": {13.0620, 77.5800},
	"vidyaranyapura": {13.0800, 77.5570},
	"rt nagar":       {13.0196, 77.5950},
	"peenya":         {13.0300, 77.5190},
	"yeshwanthpur":   {13.0280, 77.5400},
	"jalahalli":      {13.0440, 77.5230},
	"mathikere":      {13.0330, 77.5640},
	"sanjay nagar":   {13.0420, 77.5760},
	"nagawara":       {13.0450, 77.6210},
	"kalyan nagar":   {13.0250, 77.6400},
	"hrbr layout":    {13.0180, 77.6430},
	"hbr layout":     {13.0350, 77.6320},
	"banaswadi":      {13.0140, 77.6510},
	"horamavu":       {13.0270, 77.6600},
	"kothanur":       {13.0620, 77.6480},
	"manyata":        {13.0480, 77.6210},
	"bel road":       {13.0360, 77.5700},

	// East
	"whitefield":       {12.9698, 77.7500},
	"sarjapur":         {12.8577, 77.7840},
	"varthur":          {12.9400, 77.7480},
	"marathahalli":     {12.9569, 77.7011},
	"kr puram":         {13.0070, 77.6960},
	"mahadevapura":     {12.9900, 77.6870},
	"bellandur":        {12.9304, 77.6784},
	"brookefield":      {12.9670, 77.7180},
	"kundalahalli":     {12.9610, 77.7160},
	"hoodi":            {12.9920, 77.7160},
	"hoskote":          {13.0700, 77.7980},
	"old madras road":  {12.9960, 77.6740},
	"old airport road": {12.9600, 77.6600},
	"cv raman nagar":   {12.9850, 77.6640},
	"kaggadasapura":    {12.9810, 77.6760},
	"kadugodi":         {12.9880, 77.7620},
	"panathur":         {12.9380, 77.7000},
	"gunjur":           {12.9150, 77.7350},
	"ramamurthy nagar": {13.0120, 77.6780},
	"kasturi nagar":    {13.0040, 77.6610},
	"itpl":             {12.9860, 77.7370},
	"aecs layout":      {12.9620, 77.7130},
	"thubarahalli":     {12.9600, 77.7300},

	// South
	"electronic city":    {12.8399, 77.6770},
	"electronics city":   {12.8399, 77.6770},
	"koramangala":        {12.9352, 77.6245},
	"hsr layout":         {12.9116, 77.6446},
	"btm layout":         {12.9166, 77.6101},
	"jayanagar":          {12.9308, 77.5838},
	"jp nagar":           {12.9063, 77.5857},
	"bannerghatta":       {12.8000, 77.5770},
	"kanakapura":         {12.5460, 77.4200},
	"hosur road":         {12.9010, 77.6230},
	"begur":              {12.8770, 77.6250},
	"bommanahalli":       {12.9080, 77.6240},
	"basavanagudi":       {12.9420, 77.5750},
	"padmanabhanagar":    {12.9170, 77.5560},
	"kumaraswamy layout": {12.9060, 77.5590},
	"uttarahalli":        {12.9050, 77.5440},
	"banashankari":       {12.9250, 77.5468},
	"arekere":            {12.8860, 77.5970},
	"hulimavu":           {12.8770, 77.6030},
	"gottigere":          {12.8570, 77.5890},
	"anekal":             {12.7080, 77.6950},
	"attibele":           {12.7780, 77.7710},
	"chandapura":         {12.8010, 77.7040},
	"harlur":             {12.9030, 77.6600},
	"kudlu":              {12.8870, 77.6550},
	"singasandra":        {12.8810, 77.6430},
	"konanakunte":        {12.8850, 77.5700},

	// West
	"malleshwaram":         {13.0033, 77.5703},
	"rajajinagar":          {12.9889, 77.5554},
	"vijayanagar":          {12.9719, 77.5302},
	"basaveshwara nagar":   {12.9870, 77.5380},
	"nagarbhavi":           {12.9610, 77.5080},
	"kengeri":              {12.9080, 77.4770},
	"mysore road":          {12.9450, 77.5230},
	"magadi road":          {12.9760, 77.5370},
	"chandra layout":       {12.9640, 77.5190},
	"mahalakshmi layout":   {13.0140, 77.5470},
	"nandini layout":       {13.0100, 77.5380},
	"rr nagar":             {12.9260, 77.5190},
	"rajarajeshwari nagar": {12.9260, 77.5190},
	"nayandahalli":         {12.9420, 77.5240},

	// Central
	"mg road":         {12.9757, 77.6068},
	"brigade road":    {12.9710, 77.6070},
	"cunningham road": {12.9890, 77.5950},
	"lavelle road":    {12.9710, 77.5980},
	"vasanth nagar":   {12.9890, 77.5890},
	"shivajinagar":    {12.9860, 77.6050},
	"frazer town":     {13.0000, 77.6130},
	"benson town":     {13.0030, 77.6030},
	"ulsoor":          {12.9810, 77.6230},
	"halasuru":        {12.9810, 77.6230},
	"shanthi nagar":   {12.9570, 77.5970},
	"wilson garden":   {12.9480, 77.5970},
	"seshadripuram":   {12.9930, 77.5740},
	"majestic":        {12.9770, 77.5710},
	"chamarajpet":     {12.9560, 77.5660},
	"domlur":          {12.9610, 77.6380},
	"indiranagar":     {12.9719, 77.6412},
	"ashok nagar":     {12.9720, 77.6030},
}

var coordChoices = func() []string {
	keys := make([]string, 0, len(localityCoords))
	for k := range localityCoords {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}()

// CoordMatch is the result of resolving a locality to coordinates.
// Confidence is 0-100; Matched is empty when nothing met the threshold.
type CoordMatch struct {
	Coord      Coord
	Matched    string
	Confidence float64
	OK         bool
}

// ResolveCoords looks up coordinates for a free-text locality. Exact
// table hits return confidence 100. Otherwise the best fuzzy candidate
// (Levenshtein similarity over sorted tokens, tolerating misspellings
// and reordered words) is accepted only at or above threshold; below it
// the best similarity is still reported so callers can log it, but no
// coordinates are returned.
func ResolveCoords(query string, threshold float64) CoordMatch {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return CoordMatch{}
	}

	if c, ok := localityCoords[q]; ok {
		return CoordMatch{Coord: c, Matched: q, Confidence: 100, OK: true}
	}

	lev := metrics.NewLevenshtein()
	qSorted := sortTokens(q)

	best := ""
	bestScore := 0.0
	for _, choice := range coordChoices {
		score := strutil.Similarity(qSorted, sortTokens(choice), lev) * 100
		if score > bestScore {
			bestScore = score
			best = choice
		}
	}

	if best == "" || bestScore < threshold {
		return CoordMatch{Confidence: bestScore}
	}

	return CoordMatch{Coord: localityCoords[best], Matched: best, Confidence: bestScore, OK: true}
}

// sortTokens rebuilds the string from its alphabetically sorted words so
// the similarity metric behaves like a token-sort ratio.
func sortTokens(s string) string {
	tokens := strings.Fields(s)
	sort.Strings(tokens)
	return strings.Join(tokens, " ")
}

package pipeline

import (
	"regexp"
	"strings"
)

// truncateMarkers cut a planning description down to its location clause.
var truncateMarkers = []string{
	" on lands at ",
	" The application site consists of ",
	" The Lands comprise of ",
}

// planningNoiseRes are patterns that confuse the geocoder when left in a
// planning-application address: parentheticals, Eircodes, boilerplate site
// descriptions, and business names.
var planningNoiseRes = []*regexp.Regexp{
	regexp.MustCompile(`\([^)]*\)`),
	regexp.MustCompile(`(?i)Protected Structure`),
	regexp.MustCompile(`(?i)Site to the rear of`),
	regexp.MustCompile(`(?i)Site to the north of`),
	regexp.MustCompile(`(?i)Public grass verge`),
	regexp.MustCompile(`(?i)Former`),
	regexp.MustCompile(`(?i)The application site`),
	regexp.MustCompile(`(?i)\b[A-Z]\d{2}\s*[A-Z0-9]{4}\b`), // Eircode
	regexp.MustCompile(`(?i)Co\.\s*Dublin`),
	regexp.MustCompile(`&\s*\.\.\.`),
	regexp.MustCompile(`(?i)Within the curtilage of`),
	regexp.MustCompile(`(?i)[^,]*\b(Service Station|Public House)\b`),
}

var (
	junctionRoadsRe = regexp.MustCompile(`(?i)([^,]+(?:Road|Street|Avenue|Lane))`)
	emptyElementRe  = regexp.MustCompile(`,\s*,`)
	leadingCommaRe  = regexp.MustCompile(`^\s*,\s*`)
	trailingCommaRe = regexp.MustCompile(`\s*,\s*$`)

	// District tokens that mean the address already names Dublin.
	dublinMarkers = []string{"DUBLIN", "D1", "D2", "D3", "D4", "D5", "D6", "D7", "D8", "D9"}
)

// CleanPlanningAddress normalizes a planning-application site description
// into something the geocoder can resolve.
func CleanPlanningAddress(address string) string {
	if strings.TrimSpace(address) == "" {
		return ""
	}

	addr := address

	// Truncate at narrative markers; the location clause comes first.
	for _, marker := range truncateMarkers {
		if idx := strings.Index(strings.ToLower(addr), strings.ToLower(marker)); idx >= 0 {
			addr = addr[:idx]
		}
	}

	for _, re := range planningNoiseRes {
		addr = re.ReplaceAllString(addr, "")
	}

	// Junctions: keep only the road names.
	if strings.Contains(strings.ToLower(addr), "junction") {
		if roads := junctionRoadsRe.FindAllString(addr, -1); len(roads) > 0 {
			addr = strings.Join(roads, " and ")
		}
	}

	addr = multiSpaceRe.ReplaceAllString(addr, " ")
	addr = emptyElementRe.ReplaceAllString(addr, ",")
	addr = leadingCommaRe.ReplaceAllString(addr, "")
	addr = trailingCommaRe.ReplaceAllString(addr, "")

	upper := strings.ToUpper(addr)
	hasDublin := false
	for _, m := range dublinMarkers {
		if strings.Contains(upper, m) {
			hasDublin = true
			break
		}
	}
	if !hasDublin {
		addr += ", Dublin"
	}
	if !strings.Contains(strings.ToUpper(addr), "IRELAND") {
		addr += ", Ireland"
	}

	return strings.TrimSpace(addr)
}

var (
	firstPartDublinRe = regexp.MustCompile(`(.*?),.*?(Dublin.*)`)
	streetNameRe      = regexp.MustCompile(`(?i)([^,]+(?:Road|Street|Avenue|Lane|Rise|Park|Place|Drive|Grove|Way))`)
)

// PlanningVariants returns the geocoding candidates for a cleaned planning
// address. The list is wider than for sales: planning descriptions are
// noisier, so a bare street + Dublin fallback is included.
func PlanningVariants(cleaned string) []string {
	if cleaned == "" {
		return nil
	}

	variants := []string{cleaned}

	if v := simplifyDublinRe.ReplaceAllString(cleaned, ", Dublin"); v != cleaned {
		variants = append(variants, v)
	}
	if v := firstPartDublinRe.ReplaceAllString(cleaned, "${1}, ${2}"); v != cleaned {
		variants = append(variants, v)
	}
	if street := streetNameRe.FindString(cleaned); street != "" {
		variants = append(variants, strings.TrimSpace(street)+", Dublin, Ireland")
	}

	return variants
}

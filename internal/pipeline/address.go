// Package pipeline cleans, normalizes, and geocodes property-sale and
// planning-application records.
package pipeline

import (
	_ "embed"
	"regexp"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

//go:embed rules.yaml
var rulesYAML []byte

// addressRules holds the data-driven normalization tables.
type addressRules struct {
	Districts     map[string]string `yaml:"districts"`
	Areas         map[string]string `yaml:"areas"`
	Abbreviations [][]string        `yaml:"abbreviations"`
}

type replacement struct {
	re   *regexp.Regexp
	with string
}

var (
	rules = mustLoadRules()

	// Leading apartment/unit/number prefixes stripped before geocoding.
	prefixRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)^(APT|APARTMENT|UNIT|NO\.|FLAT)\s*\.?\s*\d+\s*,?\s*`),
		regexp.MustCompile(`(?i)^\d+[A-Z]?\s*,?\s*`),
		regexp.MustCompile(`(?i)APT\.?\s*\d+\s*-?\s*`),
	}

	abbrevRes   = buildAbbrevRes(rules.Abbreviations)
	districtRes = buildWordRes(rules.Districts)
	areaRes     = buildWordRes(rules.Areas)

	commaSpaceRe = regexp.MustCompile(`\s+,\s+`)
	multiSpaceRe = regexp.MustCompile(`\s+`)
	dublinRe     = regexp.MustCompile(`\bDUBLIN\b|\bD\d{1,2}\b`)

	titleCaser = cases.Title(language.English)
)

func mustLoadRules() addressRules {
	var wrapper struct {
		Address addressRules `yaml:"address"`
	}
	if err := yaml.Unmarshal(rulesYAML, &wrapper); err != nil {
		panic("pipeline: bad embedded rules.yaml: " + err.Error())
	}
	return wrapper.Address
}

func buildAbbrevRes(pairs [][]string) []replacement {
	out := make([]replacement, 0, len(pairs))
	for _, p := range pairs {
		if len(p) != 2 {
			continue
		}
		out = append(out, replacement{
			re:   regexp.MustCompile(`\b` + regexp.QuoteMeta(p[0]) + `\b`),
			with: p[1],
		})
	}
	return out
}

// buildWordRes compiles a whole-word replacement per map entry, longest key
// first so iteration order is deterministic.
func buildWordRes(m map[string]string) []replacement {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})

	out := make([]replacement, 0, len(keys))
	for _, k := range keys {
		out = append(out, replacement{
			re:   regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(k) + `\b`),
			with: m[k],
		})
	}
	return out
}

// StandardizeDublinAreas rewrites postal districts ("DUBLIN 4" -> "D4") and
// Irish-language area names onto their canonical forms.
func StandardizeDublinAreas(address string) string {
	for _, r := range districtRes {
		address = r.re.ReplaceAllString(address, r.with)
	}
	for _, r := range areaRes {
		address = r.re.ReplaceAllString(address, r.with)
	}
	return address
}

// CleanSaleAddress normalizes a Property Price Register address for
// geocoding: strips unit prefixes, expands street abbreviations, collapses
// whitespace, standardizes Dublin areas, and anchors the address to
// ", Dublin, Ireland".
func CleanSaleAddress(address string) string {
	if strings.TrimSpace(address) == "" {
		return ""
	}

	addr := strings.ToUpper(address)

	for _, re := range prefixRes {
		addr = re.ReplaceAllString(addr, "")
	}
	for _, r := range abbrevRes {
		addr = r.re.ReplaceAllString(addr, r.with)
	}

	addr = commaSpaceRe.ReplaceAllString(addr, ", ")
	addr = multiSpaceRe.ReplaceAllString(addr, " ")
	addr = StandardizeDublinAreas(addr)

	if !dublinRe.MatchString(strings.ToUpper(addr)) {
		addr += ", DUBLIN"
	}
	if !strings.Contains(strings.ToUpper(addr), "IRELAND") {
		addr += ", IRELAND"
	}

	return titleCaser.String(strings.ToLower(addr))
}

var (
	simplifyDublinRe = regexp.MustCompile(`,.*Dublin`)
	firstTwoPartsRe  = regexp.MustCompile(`^([^,]+,[^,]+)`)
)

// SaleVariants returns the geocoding candidates for a cleaned sale address,
// most specific first.
func SaleVariants(cleaned string) []string {
	if cleaned == "" {
		return nil
	}

	variants := []string{cleaned}

	if simplified := simplifyDublinRe.ReplaceAllString(cleaned, ", Dublin"); simplified != cleaned {
		variants = append(variants, simplified)
	}
	if m := firstTwoPartsRe.FindString(cleaned); m != "" {
		variants = append(variants, m+", Dublin, Ireland")
	}

	return variants
}

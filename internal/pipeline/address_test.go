package pipeline

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStandardizeDublinAreas_Districts(t *testing.T) {
	assert.Equal(t, "MAIN STREET, D4", StandardizeDublinAreas("MAIN STREET, DUBLIN 4"))
	assert.Equal(t, "MAIN STREET, D24", StandardizeDublinAreas("MAIN STREET, DUBLIN 24"))
	// "DUBLIN 1" must not clip "DUBLIN 10".
	assert.Equal(t, "MAIN STREET, D10", StandardizeDublinAreas("MAIN STREET, DUBLIN 10"))
}

func TestStandardizeDublinAreas_IrishForms(t *testing.T) {
	assert.Equal(t, "SEAN MACDERMOTT STREET, Dublin", StandardizeDublinAreas("SEAN MACDERMOTT STREET, BAC"))
	assert.Equal(t, "SWORDS, County Dublin", StandardizeDublinAreas("SWORDS, CO. DUBLIN"))
	assert.Equal(t, "SWORDS, County Dublin", StandardizeDublinAreas("SWORDS, CO DUBLIN"))
}

func TestCleanSaleAddress_StripsUnitPrefixes(t *testing.T) {
	cleaned := CleanSaleAddress("APT 4, OCEAN VIEW, DUN LAOGHAIRE, DUBLIN")
	assert.False(t, strings.HasPrefix(strings.ToUpper(cleaned), "APT"))
	assert.Contains(t, cleaned, "Ocean View")
}

func TestCleanSaleAddress_ExpandsAbbreviations(t *testing.T) {
	cleaned := CleanSaleAddress("5 MAIN RD, DUBLIN 7")
	assert.Contains(t, cleaned, "Road")
	assert.NotContains(t, strings.ToUpper(cleaned), " RD,")

	cleaned = CleanSaleAddress("OAK GDNS, CLONTARF, DUBLIN 3")
	assert.Contains(t, cleaned, "Gardens")
}

func TestCleanSaleAddress_AppendsDublinIreland(t *testing.T) {
	cleaned := CleanSaleAddress("12 CASTLE STREET, DALKEY")
	assert.Contains(t, cleaned, "Dublin")
	assert.Contains(t, cleaned, "Ireland")

	// Already anchored: suffixes not doubled.
	cleaned = CleanSaleAddress("12 CASTLE STREET, DUBLIN 2, IRELAND")
	assert.Equal(t, 1, strings.Count(strings.ToUpper(cleaned), "IRELAND"))
}

func TestCleanSaleAddress_DistrictCountsAsDublin(t *testing.T) {
	// "DUBLIN 4" becomes "D4"; the district alone should satisfy the
	// Dublin check so ", DUBLIN" is not appended again.
	cleaned := CleanSaleAddress("RATHGAR AVE, DUBLIN 6")
	assert.Contains(t, cleaned, "D6")
	assert.NotContains(t, strings.ToUpper(cleaned), "D6, DUBLIN,")
}

func TestCleanSaleAddress_TitleCase(t *testing.T) {
	cleaned := CleanSaleAddress("12 UPPER LEESON STREET, DUBLIN 4")
	assert.Contains(t, cleaned, "Upper Leeson Street")
}

func TestCleanSaleAddress_Empty(t *testing.T) {
	assert.Equal(t, "", CleanSaleAddress(""))
	assert.Equal(t, "", CleanSaleAddress("   "))
}

func TestSaleVariants_Order(t *testing.T) {
	cleaned := CleanSaleAddress("APT 2, SEAVIEW COURT, HOWTH ROAD, DUBLIN 3")
	variants := SaleVariants(cleaned)

	require.NotEmpty(t, variants)
	assert.Equal(t, cleaned, variants[0])
	// Later variants are progressively shorter.
	for _, v := range variants[1:] {
		assert.Less(t, len(v), len(cleaned)+len(", Dublin, Ireland")+1)
	}
}

func TestSaleVariants_Empty(t *testing.T) {
	assert.Nil(t, SaleVariants(""))
}

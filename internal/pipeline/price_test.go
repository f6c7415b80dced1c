package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanPrice(t *testing.T) {
	p := CleanPrice("€315,000.00")
	require.NotNil(t, p)
	assert.InDelta(t, 315000.0, *p, 0.001)
}

func TestCleanPrice_EuroSignAndSpaces(t *testing.T) {
	p := CleanPrice(" €1,234,567.89 ")
	require.NotNil(t, p)
	assert.InDelta(t, 1234567.89, *p, 0.001)
}

func TestCleanPrice_NoDigits(t *testing.T) {
	assert.Nil(t, CleanPrice("n/a"))
	assert.Nil(t, CleanPrice(""))
}

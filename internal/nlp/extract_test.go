package nlp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractEmptyMessage(t *testing.T) {
	result := Extract("")

	assert.Nil(t, result.PropertyType)
	assert.Nil(t, result.Location)
	assert.Nil(t, result.Budget)
	assert.Nil(t, result.Timeline)
	assert.Equal(t, IntentBrowsing, result.Intent)
}

func TestExtractPropertyType(t *testing.T) {
	result := Extract("Looking for a VILLA near the beach")
	require.NotNil(t, result.PropertyType)
	assert.Equal(t, "villa", *result.PropertyType)

	result = Extract("nothing recognizable here")
	assert.Nil(t, result.PropertyType)
}

func TestExtractPropertyTypeFirstMatchWins(t *testing.T) {
	// "apartment" is checked before "house" in the vocabulary order.
	result := Extract("apartment or house, undecided")
	require.NotNil(t, result.PropertyType)
	assert.Equal(t, "apartment", *result.PropertyType)
}

func TestExtractLocation(t *testing.T) {
	result := Extract("Looking for a villa in Miami, budget 250000")
	require.NotNil(t, result.Location)
	assert.Equal(t, "miami", *result.Location)
}

func TestExtractLocationStripsTrailingPunctuation(t *testing.T) {
	result := Extract("interested in Lisbon.")
	require.NotNil(t, result.Location)
	assert.Equal(t, "lisbon", *result.Location)
}

func TestExtractLocationAbsent(t *testing.T) {
	result := Extract("just browsing around")
	assert.Nil(t, result.Location)
}

func TestExtractBudgetGroupedNumber(t *testing.T) {
	result := Extract("my budget is $250,000 max")
	require.NotNil(t, result.Budget)
	assert.Equal(t, 250000.0, *result.Budget)
}

func TestExtractBudgetDotGroupingIsConcatenated(t *testing.T) {
	// Separator-grouped values are digit-concatenated, never decimal-parsed.
	result := Extract("around 12.500 per month")
	require.NotNil(t, result.Budget)
	assert.Equal(t, 12500.0, *result.Budget)
}

func TestExtractBudgetBareNumber(t *testing.T) {
	result := Extract("budget 250000")
	require.NotNil(t, result.Budget)
	assert.Equal(t, 250000.0, *result.Budget)
}

func TestExtractBudgetNoMatch(t *testing.T) {
	result := Extract("budget is around 900 maybe")
	assert.Nil(t, result.Budget)
}

func TestExtractTimeline(t *testing.T) {
	result := Extract("need to move this month if possible")
	require.NotNil(t, result.Timeline)
	assert.Equal(t, "this month", *result.Timeline)

	result = Extract("sometime in the next 6 months")
	require.NotNil(t, result.Timeline)
	assert.Equal(t, "6 months", *result.Timeline)
}

func TestExtractIntentPriority(t *testing.T) {
	cases := []struct {
		message string
		intent  Intent
	}{
		{"ready to buy", IntentSerious},
		{"I want to schedule a visit", IntentSerious},
		{"rent now please", IntentSerious},
		{"what is the price?", IntentInquiring},
		{"send me more details", IntentInquiring},
		{"hello there", IntentBrowsing},
		// serious keywords outrank inquiring ones
		{"what is the price, ready to buy", IntentSerious},
	}

	for _, tc := range cases {
		result := Extract(tc.message)
		assert.Equal(t, tc.intent, result.Intent, "message: %s", tc.message)
	}
}

func TestExtractEndToEndExample(t *testing.T) {
	result := Extract("Looking for a villa in Miami, budget 250000, ready to buy this month")

	require.NotNil(t, result.PropertyType)
	assert.Equal(t, "villa", *result.PropertyType)
	require.NotNil(t, result.Location)
	assert.Equal(t, "miami", *result.Location)
	require.NotNil(t, result.Budget)
	assert.Equal(t, 250000.0, *result.Budget)
	require.NotNil(t, result.Timeline)
	assert.Equal(t, "this month", *result.Timeline)
	assert.Equal(t, IntentSerious, result.Intent)
}

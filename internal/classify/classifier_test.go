package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyAutoAcceptOverridesScoring(t *testing.T) {
	classifier := New()

	// Nothing else in the text is relevant; the phrase alone must accept.
	result := classifier.Classify("random chatter about lunch plans, request for quotation attached", "hello")

	assert.True(t, result.Accepted)
	assert.GreaterOrEqual(t, result.TotalScore, DefaultModel().AcceptThreshold)
}

func TestClassifyAutoAcceptCaseInsensitive(t *testing.T) {
	classifier := New()

	result := classifier.Classify("see attached file", "RFQ - office tower")

	assert.True(t, result.Accepted)
}

func TestClassifyDeterminism(t *testing.T) {
	classifier := New()
	text := "please send your quotation and price list for HVAC and plumbing works at our factory site"
	subject := "Quotation request"

	first := classifier.Classify(text, subject)
	second := classifier.Classify(text, subject)

	assert.Equal(t, first, second)
}

func TestClassifyThresholdBoundary(t *testing.T) {
	classifier := New()

	// One domain term plus one context term scores exactly 2: rejected.
	rejected := classifier.Classify("ductwork for the facility", "")
	assert.False(t, rejected.Accepted)
	assert.Equal(t, 2, rejected.TotalScore)

	// One urgency token adds a single bonus point: accepted at 3.
	accepted := classifier.Classify("ductwork for the facility, urgent", "")
	assert.True(t, accepted.Accepted)
	assert.Equal(t, 3, accepted.TotalScore)
}

func TestClassifyComponentScores(t *testing.T) {
	classifier := New()
	text := "please send your quotation and price list for HVAC and plumbing works at our factory site"

	result := classifier.Classify(text, "Quotation request")

	assert.True(t, result.Accepted)
	assert.Equal(t, 2, result.Components.StrongTermCount)
	assert.Equal(t, 2, result.Components.DomainTermCount)
	assert.Equal(t, 2, result.Components.ContextTermCount)
	// subject strong bonus (2) + request phrasing (1)
	assert.Equal(t, 3, result.Components.BonusPoints)
	assert.Equal(t, 10, result.TotalScore)
}

func TestClassifyIrrelevantText(t *testing.T) {
	classifier := New()

	result := classifier.Classify("are we still on for dinner on saturday?", "weekend")

	assert.False(t, result.Accepted)
	assert.Equal(t, 0, result.TotalScore)
}

func TestClassifyCurrencyAndUrgencyBonuses(t *testing.T) {
	classifier := New()

	// quotation (strong, 2 points) + budget and urgent bonuses
	result := classifier.Classify("quotation needed, budget is tight, urgent", "")

	assert.True(t, result.Accepted)
	assert.Equal(t, 1, result.Components.StrongTermCount)
	assert.Equal(t, 2, result.Components.BonusPoints)
	assert.Equal(t, 4, result.TotalScore)
}

func TestTierPoints(t *testing.T) {
	tiers := []Tier{{MinMatches: 2, Points: 3}, {MinMatches: 1, Points: 2}}

	assert.Equal(t, 0, tierPoints(tiers, 0))
	assert.Equal(t, 2, tierPoints(tiers, 1))
	assert.Equal(t, 3, tierPoints(tiers, 2))
	assert.Equal(t, 3, tierPoints(tiers, 5))
}

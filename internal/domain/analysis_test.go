package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTierLabels(t *testing.T) {
	testCases := []struct {
		tier      Tier
		wantValid bool
		wantLabel string
		wantColor string
	}{
		{TierHigh, true, "High Potential", "success"},
		{TierModerate, true, "Moderate Potential", "warning"},
		{TierLow, true, "Low Potential", "info"},
		{TierAvoid, true, "Avoid", "danger"},
		{Tier(4), false, "Unknown", ""},
		{Tier(-1), false, "Unknown", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.wantLabel, func(t *testing.T) {
			assert.NotPanics(t, func() {
				assert.Equal(t, tc.wantValid, tc.tier.Valid())
				assert.Equal(t, tc.wantLabel, tc.tier.String())
				assert.Equal(t, tc.wantColor, tc.tier.Color())
			})
		})
	}
}

func TestScoreDistributionAdd(t *testing.T) {
	var d ScoreDistribution
	for _, tier := range Tiers {
		d.Add(tier)
	}
	d.Add(TierAvoid)
	d.Add(Tier(7))
	d.Add(Tier(-3))

	assert.Equal(t, ScoreDistribution{High: 1, Moderate: 1, Low: 1, Avoid: 2, Total: 5}, d)
}

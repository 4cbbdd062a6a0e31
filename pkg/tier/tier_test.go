package tier_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"sdch/pkg/tier"
)

func TestClassifyBoundaries(t *testing.T) {
	th := tier.DefaultThresholds()

	assert.Equal(t, tier.Tier1, tier.Classify(0, th))
	assert.Equal(t, tier.Tier1, tier.Classify(th.Tau1, th))
	assert.Equal(t, tier.Tier2, tier.Classify(th.Tau1+1, th))
	assert.Equal(t, tier.Tier2, tier.Classify(th.Tau2, th))
	assert.Equal(t, tier.Tier3, tier.Classify(th.Tau2+1, th))
	assert.Equal(t, tier.Tier3, tier.Classify(th.Tau3, th))
	assert.Equal(t, tier.Tier4, tier.Classify(th.Tau3+1, th))
}

func TestClassifyIsMonotone(t *testing.T) {
	th := tier.DefaultThresholds()
	tokenCounts := []int{0, 100, th.Tau1, th.Tau1 + 1, th.Tau2, th.Tau3, th.Tau3 * 2}

	for i := 1; i < len(tokenCounts); i++ {
		prev := tier.Classify(tokenCounts[i-1], th)
		cur := tier.Classify(tokenCounts[i], th)
		assert.LessOrEqual(t, prev, cur)
	}
}

func TestDescribeFixedEnumeration(t *testing.T) {
	r := tier.Describe(tier.Tier3)
	assert.Equal(t, "Strategic Chunking", r.Label)
	assert.Equal(t, "#f59e0b", r.Color)
	assert.NotEmpty(t, r.Description)
}

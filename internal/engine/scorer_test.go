package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hallcrest/capitolflow/internal/model"
)

// flatRevenue builds a 2023-2025 revenue map with the same amount each year,
// so averageRevenue equals the amount and growth is flat.
func flatRevenue(amount float64) map[int]float64 {
	return map[int]float64{2023: amount, 2024: amount, 2025: amount}
}

func scoredClient(name string, revenue map[int]float64) *model.Client {
	c := &model.Client{Name: name, Revenue: revenue}
	c.ApplyEnhancementDefaults()
	return c
}

func TestScore_RevenueNormalization(t *testing.T) {
	a := scoredClient("a", flatRevenue(100000))
	b := scoredClient("b", flatRevenue(50000))
	c := scoredClient("c", flatRevenue(20000))

	New(WithClock(fixedClock())).Score([]*model.Client{a, b, c})

	assert.InDelta(t, 100000, a.AverageRevenue, 0.001)
	assert.InDelta(t, 10, a.RevenueScore, 0.001)
	assert.InDelta(t, 3.75, b.RevenueScore, 0.001)
	assert.InDelta(t, 0, c.RevenueScore, 0.001)
}

func TestScore_UniformBatchGetsNeutralMidpoint(t *testing.T) {
	batch := []*model.Client{
		scoredClient("a", flatRevenue(75000)),
		scoredClient("b", flatRevenue(75000)),
		scoredClient("c", flatRevenue(75000)),
	}

	New(WithClock(fixedClock())).Score(batch)

	for _, c := range batch {
		assert.InDelta(t, 5.0, c.RevenueScore, 0.001, "client %s", c.Name)
	}
}

func TestScore_SingleClientIsNeutral(t *testing.T) {
	only := scoredClient("solo", flatRevenue(250000))
	New(WithClock(fixedClock())).Score([]*model.Client{only})
	assert.InDelta(t, 5.0, only.RevenueScore, 0.001)
}

func TestScore_GrowthCenteredAndClamped(t *testing.T) {
	tests := []struct {
		name    string
		revenue map[int]float64
		want    float64
	}{
		{
			name:    "flat revenue scores the midpoint",
			revenue: flatRevenue(50000),
			want:    5.0,
		},
		{
			name: "quadrupling over two periods saturates at 10",
			// CAGR = sqrt(4) - 1 = 100% annualized, far past the +50% cap.
			revenue: map[int]float64{2023: 25000, 2024: 50000, 2025: 100000},
			want:    10.0,
		},
		{
			name: "collapse to zero floors at 0",
			// end/start = 0, CAGR = -100%.
			revenue: map[int]float64{2023: 100000, 2024: 50000, 2025: 0},
			want:    0.0,
		},
		{
			name: "zero starting year is clamped to 1 for the ratio",
			// Without the clamp this would divide by zero; with it the
			// ratio explodes and the score saturates.
			revenue: map[int]float64{2023: 0, 2024: 10000, 2025: 40000},
			want:    10.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Two clients so normalization has a real min/max; only the
			// first client's growth is asserted.
			subject := scoredClient("subject", tt.revenue)
			other := scoredClient("other", flatRevenue(1000))
			New(WithClock(fixedClock())).Score([]*model.Client{subject, other})
			assert.InDelta(t, tt.want, subject.GrowthScore, 0.001)
		})
	}
}

func TestScore_EfficiencyBaselineAndCap(t *testing.T) {
	// 100000 avg over 100 hours = 1000/hour, exactly the full-score baseline.
	atBaseline := scoredClient("at", flatRevenue(100000))
	atBaseline.TimeCommitment = 100

	// 100000 over 10 hours blows past the baseline; capped at 10.
	beyond := scoredClient("beyond", flatRevenue(100000))
	beyond.TimeCommitment = 10

	// 10000 over 100 hours = 100/hour = score 1.
	low := scoredClient("low", flatRevenue(10000))
	low.TimeCommitment = 100

	// Zero commitment is floored to one hour, not a division by zero.
	zeroHours := scoredClient("zero", flatRevenue(500))
	zeroHours.TimeCommitment = 0

	New(WithClock(fixedClock())).Score([]*model.Client{atBaseline, beyond, low, zeroHours})

	assert.InDelta(t, 10, atBaseline.EfficiencyScore, 0.001)
	assert.InDelta(t, 10, beyond.EfficiencyScore, 0.001)
	assert.InDelta(t, 1, low.EfficiencyScore, 0.001)
	assert.InDelta(t, 5, zeroHours.EfficiencyScore, 0.001)
}

func TestScore_StrategicValueComposite(t *testing.T) {
	// Batch of three gives the subject revenueScore 10; flat revenue gives
	// growth 5; 100 hours at 100k avg gives efficiency 10.
	subject := scoredClient("subject", flatRevenue(100000))
	subject.TimeCommitment = 100
	subject.ConflictRisk = model.RiskLow

	batch := []*model.Client{
		subject,
		scoredClient("mid", flatRevenue(50000)),
		scoredClient("low", flatRevenue(20000)),
	}
	New(WithClock(fixedClock())).Score(batch)

	// 10*.30 + 5*.20 + 5*.20 + 5*.15 + 0.7*10*.10 + 10*.05 - 0
	assert.InDelta(t, 6.95, subject.StrategicValue, 0.001)
}

func TestScore_ConflictPenalties(t *testing.T) {
	build := func(risk model.ConflictRisk) *model.Client {
		c := scoredClient("c", flatRevenue(50000))
		c.ConflictRisk = risk
		return c
	}

	base := build(model.RiskLow)
	medium := build(model.RiskMedium)
	high := build(model.RiskHigh)
	unset := build("")

	New(WithClock(fixedClock())).Score([]*model.Client{base, medium, high, unset})

	assert.InDelta(t, base.StrategicValue-1, medium.StrategicValue, 0.001)
	assert.InDelta(t, base.StrategicValue-3, high.StrategicValue, 0.001)
	assert.InDelta(t, medium.StrategicValue, unset.StrategicValue, 0.001, "unset risk is treated as Medium")
}

func TestScore_NeverNegative(t *testing.T) {
	// Worst case everywhere: zero revenue, minimum ratings, high risk.
	worst := scoredClient("worst", flatRevenue(0))
	worst.RelationshipStrength = 1
	worst.StrategicFit = 1
	worst.RenewalProbability = 0
	worst.ConflictRisk = model.RiskHigh

	rich := scoredClient("rich", flatRevenue(900000))

	New(WithClock(fixedClock())).Score([]*model.Client{worst, rich})

	assert.GreaterOrEqual(t, worst.StrategicValue, 0.0)
	assert.Equal(t, 0.0, worst.StrategicValue)
}

func TestScore_Idempotent(t *testing.T) {
	batch := []*model.Client{
		scoredClient("a", flatRevenue(100000)),
		scoredClient("b", map[int]float64{2023: 10000, 2024: 40000, 2025: 90000}),
		scoredClient("c", flatRevenue(20000)),
	}
	batch[1].ConflictRisk = model.RiskHigh
	batch[1].TimeCommitment = 25

	eng := New(WithClock(fixedClock()))
	eng.Score(batch)

	first := make([]model.Client, len(batch))
	for i, c := range batch {
		first[i] = *c
	}

	eng.Score(batch)

	for i, c := range batch {
		assert.Equal(t, first[i].AverageRevenue, c.AverageRevenue)
		assert.Equal(t, first[i].RevenueScore, c.RevenueScore)
		assert.Equal(t, first[i].GrowthScore, c.GrowthScore)
		assert.Equal(t, first[i].EfficiencyScore, c.EfficiencyScore)
		assert.Equal(t, first[i].StrategicValue, c.StrategicValue)
	}
}

func TestScore_EmptyBatch(t *testing.T) {
	require.Empty(t, New(WithClock(fixedClock())).Score(nil))
}

func TestScore_MissingYearsTreatedAsZero(t *testing.T) {
	partial := scoredClient("partial", map[int]float64{2025: 90000})
	full := scoredClient("full", flatRevenue(90000))

	New(WithClock(fixedClock())).Score([]*model.Client{partial, full})

	assert.InDelta(t, 30000, partial.AverageRevenue, 0.001)
	assert.InDelta(t, 90000, full.AverageRevenue, 0.001)
}

package engine

import (
	"math"
	"sort"

	"github.com/hallcrest/capitolflow/internal/model"
)

// Strategic-value weights. They sum to 1.0; renewal probability is scaled
// onto the 0-10 range before weighting.
const (
	weightRevenue      = 0.30
	weightGrowth       = 0.20
	weightRelationship = 0.20
	weightStrategicFit = 0.15
	weightRenewal      = 0.10
	weightEfficiency   = 0.05
)

// neutralScore is assigned when a batch carries no discriminating signal.
const neutralScore = 5.0

// efficiencyBaseline is the revenue-per-hour figure that earns a full
// efficiency score of 10.
const efficiencyBaseline = 1000.0

// Conflict-risk penalties subtracted from the weighted composite.
var conflictPenalty = map[model.ConflictRisk]float64{
	model.RiskLow:    0,
	model.RiskMedium: 1,
	model.RiskHigh:   3,
}

// Score annotates every client in the batch with its derived scores and
// returns the same slice. It is a batch operation: revenue normalization
// needs the whole portfolio's min and max before any single score can be
// computed, so partial batches produce different (wrong) normalization.
//
// Scoring is idempotent; it reads only stored fields and overwrites only
// derived ones.
func (e *Engine) Score(clients []*model.Client) []*model.Client {
	if len(clients) == 0 {
		return clients
	}

	years := e.revenueYears(clients)

	minAvg := math.Inf(1)
	maxAvg := math.Inf(-1)
	for _, c := range clients {
		var total float64
		for _, year := range years {
			total += c.Revenue[year]
		}
		c.AverageRevenue = round2(total / float64(len(years)))
		if c.AverageRevenue < minAvg {
			minAvg = c.AverageRevenue
		}
		if c.AverageRevenue > maxAvg {
			maxAvg = c.AverageRevenue
		}
	}

	for _, c := range clients {
		c.RevenueScore = revenueScore(c.AverageRevenue, minAvg, maxAvg)
		c.GrowthScore = growthScore(c.Revenue, years)
		c.EfficiencyScore = efficiencyScore(c.AverageRevenue, c.TimeCommitment)

		penalty, ok := conflictPenalty[c.ConflictRisk]
		if !ok {
			// Unset or unrecognized risk is treated as Medium.
			penalty = conflictPenalty[model.RiskMedium]
		}

		value := c.RevenueScore*weightRevenue +
			c.GrowthScore*weightGrowth +
			float64(c.RelationshipStrength)*weightRelationship +
			float64(c.StrategicFit)*weightStrategicFit +
			c.RenewalProbability*10*weightRenewal +
			c.EfficiencyScore*weightEfficiency -
			penalty

		if value < 0 {
			value = 0
		}
		c.StrategicValue = round2(value)
	}

	return clients
}

// revenueYears resolves the fiscal years the batch is scored over: the
// sorted union of years present in the batch, or the three years ending at
// the reference clock when no client carries revenue data at all.
func (e *Engine) revenueYears(clients []*model.Client) []int {
	seen := make(map[int]bool)
	for _, c := range clients {
		for year := range c.Revenue {
			seen[year] = true
		}
	}

	if len(seen) == 0 {
		current := e.now().Year()
		return []int{current - 2, current - 1, current}
	}

	years := make([]int, 0, len(seen))
	for year := range seen {
		years = append(years, year)
	}
	sort.Ints(years)
	return years
}

// revenueScore min-max normalizes an average onto 0-10. A batch with no
// spread gets the neutral midpoint everywhere rather than an arbitrary
// 0/10 split.
func revenueScore(avg, minAvg, maxAvg float64) float64 {
	if maxAvg == minAvg {
		return neutralScore
	}
	return round2((avg - minAvg) / (maxAvg - minAvg) * 10)
}

// growthScore maps the compound annual growth rate between the earliest and
// latest fiscal years onto 0-10, centering flat revenue at 5 and saturating
// beyond +/-50% annualized.
func growthScore(revenue map[int]float64, years []int) float64 {
	periods := len(years) - 1
	if periods < 1 {
		return neutralScore
	}

	start := revenue[years[0]]
	if start < 1 {
		// Clamp only the growth ratio denominator; reported revenue is
		// untouched.
		start = 1
	}
	end := revenue[years[len(years)-1]]

	growth := math.Pow(end/start, 1/float64(periods)) - 1
	return round2(clamp((growth+0.5)*10, 0, 10))
}

// efficiencyScore rates revenue per committed hour against the baseline,
// capped at 10. A zero or unset commitment is floored to one hour.
func efficiencyScore(avg, hours float64) float64 {
	if hours < 1 {
		hours = 1
	}
	return round2(math.Min(10, avg/hours/efficiencyBaseline*10))
}

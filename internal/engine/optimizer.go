package engine

import (
	"sort"

	"github.com/hallcrest/capitolflow/internal/model"
)

// DefaultMaxCapacity is the monthly hours budget assumed when the caller
// does not supply one.
const DefaultMaxCapacity = 2000.0

// Optimize selects which clients to actively service under an hours budget.
//
// Only clients that are InForce or Proposal with a positive time commitment
// are eligible. Eligible clients are taken greedily in descending
// strategic-value order (stable, so input order breaks ties); a candidate
// that would overflow the budget is skipped and counted, and selection
// continues with the next. This is deliberately a value-greedy heuristic,
// not an optimal knapsack: it can strand capacity a different combination
// would have used.
func (e *Engine) Optimize(clients []*model.Client, maxCapacity float64) *model.OptimizationResult {
	result := &model.OptimizationResult{
		Clients:     []*model.Client{},
		MaxCapacity: maxCapacity,
	}

	eligible := make([]*model.Client, 0, len(clients))
	for _, c := range clients {
		if (c.Status == model.StatusInForce || c.Status == model.StatusProposal) && c.TimeCommitment > 0 {
			eligible = append(eligible, c)
		}
	}

	sort.SliceStable(eligible, func(i, j int) bool {
		return eligible[i].StrategicValue > eligible[j].StrategicValue
	})

	var usedHours, totalRevenue, totalValue float64
	for _, c := range eligible {
		if maxCapacity <= 0 || usedHours+c.TimeCommitment > maxCapacity {
			result.ExcludedClientCount++
			continue
		}
		result.Clients = append(result.Clients, c)
		usedHours += c.TimeCommitment
		totalRevenue += c.AverageRevenue
		totalValue += c.StrategicValue
	}

	result.TotalHours = round2(usedHours)
	result.TotalRevenue = round2(totalRevenue)
	if len(result.Clients) > 0 {
		result.AverageStrategicValue = round2(totalValue / float64(len(result.Clients)))
	}
	if maxCapacity > 0 {
		result.UtilizationRate = round2(usedHours / maxCapacity * 100)
	}
	return result
}

package engine

import (
	"sort"

	"github.com/hallcrest/capitolflow/internal/model"
)

// topClientCount bounds how many highlights a summary carries.
const topClientCount = 5

// Summarize aggregates a scored batch (and optionally an optimization run)
// into the view handed to the advice generator. The batch should already be
// scored; Summarize does not recompute derived fields.
func (e *Engine) Summarize(clients []*model.Client, opt *model.OptimizationResult) model.PortfolioSummary {
	summary := model.PortfolioSummary{
		ClientCount:  len(clients),
		StatusCounts: make(map[model.ContractStatus]int),
		Optimization: opt,
	}

	var totalValue float64
	for _, c := range clients {
		summary.TotalRevenue += c.AverageRevenue
		summary.StatusCounts[c.Status]++
		totalValue += c.StrategicValue
	}
	if len(clients) > 0 {
		summary.AverageStrategicValue = round2(totalValue / float64(len(clients)))
	}
	summary.TotalRevenue = round2(summary.TotalRevenue)

	ranked := make([]*model.Client, len(clients))
	copy(ranked, clients)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].StrategicValue > ranked[j].StrategicValue
	})
	for i, c := range ranked {
		if i == topClientCount {
			break
		}
		summary.TopClients = append(summary.TopClients, model.ClientHighlight{
			Name:           c.Name,
			Status:         c.Status,
			AverageRevenue: c.AverageRevenue,
			StrategicValue: c.StrategicValue,
		})
	}

	return summary
}

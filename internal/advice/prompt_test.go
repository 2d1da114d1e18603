package advice

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hallcrest/capitolflow/internal/model"
)

func TestBuildPrompt(t *testing.T) {
	summary := model.PortfolioSummary{
		ClientCount:           3,
		TotalRevenue:          170000,
		AverageStrategicValue: 5.12,
		StatusCounts: map[model.ContractStatus]int{
			model.StatusInForce:  2,
			model.StatusProposal: 1,
		},
		TopClients: []model.ClientHighlight{
			{Name: "Meridian Energy", Status: model.StatusInForce, AverageRevenue: 100000, StrategicValue: 6.95},
		},
		Optimization: &model.OptimizationResult{
			Clients:             []*model.Client{{Name: "Meridian Energy"}},
			TotalHours:          40,
			MaxCapacity:         60,
			UtilizationRate:     66.67,
			ExcludedClientCount: 1,
		},
	}

	prompt := BuildPrompt(summary)

	assert.Contains(t, prompt, "3 clients")
	assert.Contains(t, prompt, "$170000.00")
	assert.Contains(t, prompt, "InForce: 2")
	assert.Contains(t, prompt, "Proposal: 1")
	assert.Contains(t, prompt, "Meridian Energy")
	assert.Contains(t, prompt, "40 of 60 hours")
	assert.Contains(t, prompt, "66.7% utilization")
}

func TestBuildPrompt_MinimalSummary(t *testing.T) {
	prompt := BuildPrompt(model.PortfolioSummary{})

	assert.Contains(t, prompt, "0 clients")
	assert.NotContains(t, prompt, "Capacity plan")
	assert.NotContains(t, prompt, "Top clients")
}

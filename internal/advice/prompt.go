package advice

import (
	"fmt"
	"strings"

	"github.com/hallcrest/capitolflow/internal/model"
)

// BuildPrompt renders a portfolio summary as the user prompt for the
// advice model. Output is plain text; the generator decides its own format.
func BuildPrompt(summary model.PortfolioSummary) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Portfolio of %d clients, total average annual revenue $%.2f.\n",
		summary.ClientCount, summary.TotalRevenue)
	fmt.Fprintf(&b, "Mean strategic value: %.2f/10.\n", summary.AverageStrategicValue)

	if len(summary.StatusCounts) > 0 {
		b.WriteString("Contract status mix:\n")
		for _, status := range []model.ContractStatus{
			model.StatusInForce, model.StatusProposal, model.StatusDone, model.StatusHold,
		} {
			if n := summary.StatusCounts[status]; n > 0 {
				fmt.Fprintf(&b, "  %s: %d\n", status, n)
			}
		}
	}

	if len(summary.TopClients) > 0 {
		b.WriteString("Top clients by strategic value:\n")
		for _, c := range summary.TopClients {
			fmt.Fprintf(&b, "  %s (%s): value %.2f, avg revenue $%.2f\n",
				c.Name, c.Status, c.StrategicValue, c.AverageRevenue)
		}
	}

	if opt := summary.Optimization; opt != nil {
		fmt.Fprintf(&b, "Capacity plan: %d clients selected for %.0f of %.0f hours (%.1f%% utilization), %d eligible clients excluded.\n",
			len(opt.Clients), opt.TotalHours, opt.MaxCapacity, opt.UtilizationRate, opt.ExcludedClientCount)
	}

	b.WriteString("Advise on servicing focus, renewal risk, and capacity allocation.")
	return b.String()
}

package model

// ClientHighlight is a compact view of a client used in portfolio summaries.
type ClientHighlight struct {
	Name           string
	Status         ContractStatus
	AverageRevenue float64
	StrategicValue float64
}

// PortfolioSummary is the aggregate view handed to the advice generator.
// It carries no client identifiers; the generator is an opaque external
// text service.
type PortfolioSummary struct {
	ClientCount           int
	TotalRevenue          float64
	AverageStrategicValue float64
	StatusCounts          map[ContractStatus]int
	TopClients            []ClientHighlight
	Optimization          *OptimizationResult
}

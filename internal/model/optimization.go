package model

// OptimizationResult is the outcome of a capacity-constrained selection run.
// It is computed on demand and never persisted.
type OptimizationResult struct {
	Clients               []*Client
	TotalRevenue          float64
	TotalHours            float64
	AverageStrategicValue float64
	UtilizationRate       float64 // percent of MaxCapacity consumed
	ExcludedClientCount   int
	MaxCapacity           float64
}

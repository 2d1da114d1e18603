package model

// ValidationResult reports structural problems found in a client batch.
// Issues block persistence of the affected client; warnings do not.
type ValidationResult struct {
	Issues       []string
	Warnings     []string
	ValidClients []*Client
	ClientCount  int
	IsValid      bool
}

// Package model defines the core domain types for the portfolio engine.
package model

// ContractStatus is the lifecycle state of a client's current engagement.
type ContractStatus string

const (
	// StatusInForce indicates the contract period covers today.
	StatusInForce ContractStatus = "InForce"
	// StatusDone indicates the contract period has passed.
	StatusDone ContractStatus = "Done"
	// StatusProposal indicates the contract period has not started yet.
	StatusProposal ContractStatus = "Proposal"
	// StatusHold indicates the contract period could not be determined.
	StatusHold ContractStatus = "Hold"
)

// ConflictRisk grades the conflict-of-interest exposure of a client.
type ConflictRisk string

const (
	// RiskLow indicates no meaningful conflict exposure.
	RiskLow ConflictRisk = "Low"
	// RiskMedium indicates some conflict exposure worth tracking.
	RiskMedium ConflictRisk = "Medium"
	// RiskHigh indicates conflict exposure serious enough to penalize.
	RiskHigh ConflictRisk = "High"
)

// Enhancement field defaults applied when a client is first created.
// The reconciler's preservation rule compares against these, so changing
// one changes which manual edits survive re-import.
const (
	DefaultRelationshipStrength = 5
	DefaultTimeCommitment       = 10.0
	DefaultRenewalProbability   = 0.7
	DefaultStrategicFit         = 5
)

// DefaultConflictRisk is the risk assigned when nothing is known yet.
const DefaultConflictRisk = RiskMedium

// Client is a single relationship being tracked in a portfolio.
//
// Name, ContractPeriod, Status and Revenue come from the CSV source and are
// overwritten on every import. The enhancement fields are manually curated
// and survive re-import once changed away from their defaults. The score
// fields are derived; they are recomputed from the stored fields and are
// never an authoritative input.
type Client struct {
	ID     string
	UserID string
	Name   string

	// Contract source data.
	ContractPeriod string
	Status         ContractStatus

	// Revenue by fiscal year.
	Revenue map[int]float64

	// Enhancement fields.
	PracticeArea          []string
	RelationshipStrength  int
	ConflictRisk          ConflictRisk
	TimeCommitment        float64 // hours per month
	RenewalProbability    float64
	StrategicFit          int
	Notes                 string
	PrimaryLobbyist       string
	ClientOriginator      string
	LobbyistTeam          []string
	InteractionFrequency  string
	RelationshipIntensity string

	// Derived fields, recomputed by the score calculator.
	AverageRevenue  float64
	RevenueScore    float64
	GrowthScore     float64
	EfficiencyScore float64
	StrategicValue  float64
}

// ApplyEnhancementDefaults sets every enhancement field to its system default.
func (c *Client) ApplyEnhancementDefaults() {
	c.PracticeArea = nil
	c.RelationshipStrength = DefaultRelationshipStrength
	c.ConflictRisk = DefaultConflictRisk
	c.TimeCommitment = DefaultTimeCommitment
	c.RenewalProbability = DefaultRenewalProbability
	c.StrategicFit = DefaultStrategicFit
	c.Notes = ""
	c.PrimaryLobbyist = ""
	c.ClientOriginator = ""
	c.LobbyistTeam = nil
	c.InteractionFrequency = ""
	c.RelationshipIntensity = ""
}

// HasRevenue reports whether any year carries a non-zero amount.
func (c *Client) HasRevenue() bool {
	for _, amount := range c.Revenue {
		if amount != 0 {
			return true
		}
	}
	return false
}

package engine

import (
	"log/slog"
	"strconv"
	"strings"

	"github.com/hallcrest/capitolflow/internal/csvio"
	"github.com/hallcrest/capitolflow/internal/model"
)

// ReconcileResult is a resolved import batch, split by whether each client
// already existed. The storage layer must apply the whole batch in one
// transaction; the reconciler itself performs no I/O.
type ReconcileResult struct {
	Inserts []*model.Client
	Updates []*model.Client
	// DroppedRows counts rows discarded for having no client name.
	DroppedRows int
}

// ProcessRows merges freshly parsed CSV rows against existing records.
// existing is keyed by lower-cased client name, as returned by
// Storage.FetchExistingByNames.
//
// CSV-sourced fields (name, contract period and its derived status, revenue)
// are authoritative and always overwrite. Enhancement fields are preserved
// from the existing record unless still at their system default, in which
// case the CSV's value (or the default again, when the CSV carries none)
// is applied. A field deliberately reset to its default is therefore
// indistinguishable from one never touched; that ambiguity is inherent to
// this merge policy.
func (e *Engine) ProcessRows(rows []csvio.Row, existing map[string]*model.Client) *ReconcileResult {
	result := &ReconcileResult{}

	for _, row := range rows {
		name := strings.TrimSpace(row.Name)
		if name == "" {
			slog.Debug("dropping CSV row without client name", "line", row.Line)
			result.DroppedRows++
			continue
		}

		incoming := e.clientFromRow(name, row)

		prior, ok := existing[strings.ToLower(name)]
		if !ok {
			result.Inserts = append(result.Inserts, incoming)
			continue
		}

		incoming.ID = prior.ID
		incoming.UserID = prior.UserID
		preserveEnhancements(incoming, prior)
		result.Updates = append(result.Updates, incoming)
	}

	return result
}

// clientFromRow builds a client entirely from CSV data, with enhancement
// fields taken from optional CSV columns or system defaults.
func (e *Engine) clientFromRow(name string, row csvio.Row) *model.Client {
	c := &model.Client{
		Name:           name,
		ContractPeriod: row.ContractPeriod,
		Status:         e.DeriveStatus(row.ContractPeriod),
		Revenue:        make(map[int]float64, len(row.Revenue)),
	}
	for year, raw := range row.Revenue {
		c.Revenue[year] = ParseMoney(raw)
	}

	c.ApplyEnhancementDefaults()
	c.PracticeArea = parseList(row.Extra["practice area"])
	c.RelationshipStrength = parseScale(row.Extra["relationship strength"], model.DefaultRelationshipStrength)
	c.ConflictRisk = parseRisk(row.Extra["conflict risk"])
	c.TimeCommitment = parsePositiveFloat(row.Extra["time commitment"], model.DefaultTimeCommitment)
	c.RenewalProbability = parseProbability(row.Extra["renewal probability"], model.DefaultRenewalProbability)
	c.StrategicFit = parseScale(row.Extra["strategic fit"], model.DefaultStrategicFit)
	c.Notes = row.Extra["notes"]
	c.PrimaryLobbyist = row.Extra["primary lobbyist"]
	c.ClientOriginator = row.Extra["client originator"]
	c.LobbyistTeam = parseList(row.Extra["lobbyist team"])
	c.InteractionFrequency = row.Extra["interaction frequency"]
	c.RelationshipIntensity = row.Extra["relationship intensity"]
	return c
}

// preserveEnhancements copies every manually-changed enhancement field from
// the prior record onto the incoming one. Fields still at their default keep
// tracking whatever the CSV provides.
func preserveEnhancements(incoming, prior *model.Client) {
	if len(prior.PracticeArea) > 0 {
		incoming.PracticeArea = prior.PracticeArea
	}
	if prior.RelationshipStrength != model.DefaultRelationshipStrength {
		incoming.RelationshipStrength = prior.RelationshipStrength
	}
	if prior.ConflictRisk != model.DefaultConflictRisk && prior.ConflictRisk != "" {
		incoming.ConflictRisk = prior.ConflictRisk
	}
	if prior.TimeCommitment != model.DefaultTimeCommitment && prior.TimeCommitment > 0 {
		incoming.TimeCommitment = prior.TimeCommitment
	}
	if prior.RenewalProbability != model.DefaultRenewalProbability {
		incoming.RenewalProbability = prior.RenewalProbability
	}
	if prior.StrategicFit != model.DefaultStrategicFit {
		incoming.StrategicFit = prior.StrategicFit
	}
	if strings.TrimSpace(prior.Notes) != "" {
		incoming.Notes = prior.Notes
	}
	if prior.PrimaryLobbyist != "" {
		incoming.PrimaryLobbyist = prior.PrimaryLobbyist
	}
	if prior.ClientOriginator != "" {
		incoming.ClientOriginator = prior.ClientOriginator
	}
	if len(prior.LobbyistTeam) > 0 {
		incoming.LobbyistTeam = prior.LobbyistTeam
	}
	if prior.InteractionFrequency != "" {
		incoming.InteractionFrequency = prior.InteractionFrequency
	}
	if prior.RelationshipIntensity != "" {
		incoming.RelationshipIntensity = prior.RelationshipIntensity
	}
}

var moneyReplacer = strings.NewReplacer("$", "", ",", "", " ", "")

// ParseMoney coerces a raw CSV money field to a non-negative amount,
// stripping currency symbols and thousands separators. Anything that still
// fails to parse, or parses negative, is 0.
func ParseMoney(raw string) float64 {
	cleaned := moneyReplacer.Replace(strings.TrimSpace(raw))
	if cleaned == "" {
		return 0
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}

func parseList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ';' || r == ','
	})
	var out []string
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// parseScale parses a 1-10 integer rating, falling back to def.
func parseScale(raw string, def int) int {
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || v < 1 || v > 10 {
		return def
	}
	return v
}

func parseRisk(raw string) model.ConflictRisk {
	switch {
	case strings.EqualFold(raw, string(model.RiskLow)):
		return model.RiskLow
	case strings.EqualFold(raw, string(model.RiskHigh)):
		return model.RiskHigh
	default:
		return model.DefaultConflictRisk
	}
}

func parsePositiveFloat(raw string, def float64) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || v <= 0 {
		return def
	}
	return v
}

func parseProbability(raw string, def float64) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || v < 0 || v > 1 {
		return def
	}
	return v
}

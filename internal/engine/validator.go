package engine

import (
	"fmt"
	"strings"

	"github.com/hallcrest/capitolflow/internal/model"
)

// Validate runs structural checks over a client batch.
//
// Issues (blocking): a blank name, or a contract period that is missing or
// not in any recognized form. Warnings (non-blocking): zero revenue across
// every year, which is legitimate for prospects. IsValid reflects issues
// only.
func (e *Engine) Validate(clients []*model.Client) *model.ValidationResult {
	result := &model.ValidationResult{
		Issues:      []string{},
		Warnings:    []string{},
		ClientCount: len(clients),
	}

	for i, c := range clients {
		label := strings.TrimSpace(c.Name)
		if label == "" {
			label = fmt.Sprintf("row %d", i+1)
		}

		issues := 0
		if strings.TrimSpace(c.Name) == "" {
			result.Issues = append(result.Issues, fmt.Sprintf("%s: missing client name", label))
			issues++
		}
		if !contractPeriodRecognized(c.ContractPeriod) {
			result.Issues = append(result.Issues,
				fmt.Sprintf("%s: contract period %q is not a start-end range or expiry annotation", label, c.ContractPeriod))
			issues++
		}
		if !c.HasRevenue() {
			result.Warnings = append(result.Warnings, fmt.Sprintf("%s: no revenue recorded in any year", label))
		}

		if issues == 0 {
			result.ValidClients = append(result.ValidClients, c)
		}
	}

	result.IsValid = len(result.Issues) == 0
	return result
}

// contractPeriodRecognized reports whether the raw period string is in one
// of the forms the status deriver understands at all: a single-separator
// range or an "Expired"/"expires" annotation. It deliberately does not
// check that the dates parse; that degrades to Hold, not to an issue.
func contractPeriodRecognized(period string) bool {
	period = strings.TrimSpace(period)
	if period == "" {
		return false
	}
	if _, ok := cutPrefixFold(period, "expired"); ok {
		return true
	}
	if _, ok := cutPrefixFold(period, "expires"); ok {
		return true
	}
	return strings.Count(period, "-") == 1
}

package engine

import (
	"log/slog"
	"strings"
	"time"

	"github.com/hallcrest/capitolflow/internal/model"
)

// Date layouts accepted in contract periods, tried in order.
var dateLayouts = []string{
	"1/2/2006",
	"1/2/06",
	"2006-01-02",
	"January 2, 2006",
	"Jan 2, 2006",
}

// DeriveStatus maps a raw contract period string to a lifecycle state using
// the engine's reference clock. It never fails: anything unparseable degrades
// to Hold with a logged warning.
//
// Recognized forms:
//
//	"1/1/24-12/31/25"   a start-end range, inclusive on both ends
//	"Expired 9/20/21"   Done regardless of the reference date
//	"expires 2/1/26"    Done once the date has passed, InForce before
func (e *Engine) DeriveStatus(contractPeriod string) model.ContractStatus {
	period := strings.TrimSpace(contractPeriod)
	if period == "" {
		slog.Warn("empty contract period, defaulting to Hold")
		return model.StatusHold
	}

	today := e.today()

	if _, ok := cutPrefixFold(period, "expired"); ok {
		// The source already declared it over; the date is informational.
		return model.StatusDone
	}

	if rest, ok := cutPrefixFold(period, "expires"); ok {
		end, err := parseDate(rest)
		if err != nil {
			slog.Warn("unparseable expiry date, defaulting to Hold", "period", contractPeriod)
			return model.StatusHold
		}
		if end.Before(today) {
			return model.StatusDone
		}
		return model.StatusInForce
	}

	if strings.Count(period, "-") != 1 {
		slog.Warn("contract period is not a start-end range, defaulting to Hold", "period", contractPeriod)
		return model.StatusHold
	}

	rawStart, rawEnd, _ := strings.Cut(period, "-")
	start, startErr := parseDate(rawStart)
	end, endErr := parseDate(rawEnd)
	if startErr != nil || endErr != nil {
		slog.Warn("unparseable contract period, defaulting to Hold", "period", contractPeriod)
		return model.StatusHold
	}

	switch {
	case !today.Before(start) && !today.After(end):
		return model.StatusInForce
	case end.Before(today):
		return model.StatusDone
	case start.After(today):
		return model.StatusProposal
	}

	// Unreachable for well-formed ranges; the three checks above cover the
	// total order. Kept as the parse-edge fallback.
	return model.StatusHold
}

// cutPrefixFold strips a case-insensitive prefix and returns the trimmed
// remainder.
func cutPrefixFold(s, prefix string) (string, bool) {
	if len(s) < len(prefix) || !strings.EqualFold(s[:len(prefix)], prefix) {
		return s, false
	}
	return strings.TrimSpace(s[len(prefix):]), true
}

func parseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	var lastErr error
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, raw)
		if err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

// Package storage provides the data persistence layer for the portfolio engine.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/hallcrest/capitolflow/internal/model"
)

// Validation errors.
var (
	ErrNilContext    = errors.New("context cannot be nil")
	ErrEmptyString   = errors.New("string parameter cannot be empty")
	ErrNilParameter  = errors.New("parameter cannot be nil")
	ErrInvalidClient = errors.New("invalid client")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateClient checks the fields the schema cannot express.
func validateClient(client *model.Client) error {
	if client == nil {
		return fmt.Errorf("%w: client", ErrNilParameter)
	}
	if strings.TrimSpace(client.Name) == "" {
		return fmt.Errorf("%w: missing name", ErrInvalidClient)
	}
	if client.RelationshipStrength < 1 || client.RelationshipStrength > 10 {
		return fmt.Errorf("%w: relationship strength %d out of range", ErrInvalidClient, client.RelationshipStrength)
	}
	if client.StrategicFit < 1 || client.StrategicFit > 10 {
		return fmt.Errorf("%w: strategic fit %d out of range", ErrInvalidClient, client.StrategicFit)
	}
	if client.RenewalProbability < 0 || client.RenewalProbability > 1 {
		return fmt.Errorf("%w: renewal probability %.2f out of range", ErrInvalidClient, client.RenewalProbability)
	}
	for year, amount := range client.Revenue {
		if amount < 0 {
			return fmt.Errorf("%w: negative revenue %.2f for year %d", ErrInvalidClient, amount, year)
		}
	}
	return nil
}

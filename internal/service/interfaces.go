// Package service defines the interfaces between the analytics engine and
// its external collaborators.
package service

import (
	"context"
	"time"

	"github.com/hallcrest/capitolflow/internal/model"
)

// Storage is the contract for the persistence layer. Implementations must
// make ApplyBatch atomic: either every row of an ingested batch commits or
// none do. Serializing concurrent ingestion of the same user's portfolio is
// also the storage layer's responsibility; the engine assumes at most one
// in-flight reconciliation per portfolio.
type Storage interface {
	// FetchExistingByNames returns persisted clients for the given names,
	// keyed by lower-cased name. Missing names are simply absent.
	FetchExistingByNames(ctx context.Context, userID string, names []string) (map[string]*model.Client, error)

	// ApplyBatch persists a reconciled batch in one transaction. Inserts
	// receive storage-minted IDs; revenue rows for every client in the
	// batch are replaced wholesale.
	ApplyBatch(ctx context.Context, userID string, inserts, updates []*model.Client) error

	ListClients(ctx context.Context, userID string) ([]*model.Client, error)
	GetClientByName(ctx context.Context, userID, name string) (*model.Client, error)

	// UpdateEnhancements overwrites only the manually curated fields of an
	// existing client.
	UpdateEnhancements(ctx context.Context, client *model.Client) error

	// DeleteClient removes a client and cascades its revenue rows.
	DeleteClient(ctx context.Context, userID, id string) error

	Migrate(ctx context.Context) error
	Close() error
}

// Advisor generates free-text portfolio commentary. It is treated as an
// opaque text-generation service.
type Advisor interface {
	Advise(ctx context.Context, summary model.PortfolioSummary) (string, error)
}

// RetryOptions configures retry behavior for operations against flaky
// collaborators.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}

package storage_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hallcrest/capitolflow/internal/testutil"
)

func TestMigrate_Idempotent(t *testing.T) {
	store := testutil.SetupTestDB(t)

	// SetupTestDB already migrated once; a second run must be a no-op.
	require.NoError(t, store.Migrate(context.Background()))
}

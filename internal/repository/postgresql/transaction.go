package postgresql

import (
	"context"

	"github.com/kpimanager/kpi-backend-go/internal/pkg/database"
)

// GetQuerier returns the transaction injected by database.WithTx when
// one is active, otherwise the pool. Repositories go through this so the
// same method works inside and outside a unit of work.
func GetQuerier(ctx context.Context, db *database.DB) database.Querier {
	if tx, ok := database.TxFromContext(ctx); ok {
		return tx
	}
	return db.Pool
}

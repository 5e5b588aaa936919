package fund

import (
	"context"

	domfund "github.com/kailas-cloud/fundex/internal/domain/fund"
)

// Repository defines the storage contract for the fund collection.
// List and Get always reflect storage, with missing ids already backfilled.
type Repository interface {
	List(ctx context.Context) ([]domfund.Fund, error)
	Get(ctx context.Context, id string) (domfund.Fund, error)
	ReplaceAll(ctx context.Context, funds []domfund.Fund) error
}

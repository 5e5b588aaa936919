package fund

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kailas-cloud/fundex/internal/db"
	"github.com/kailas-cloud/fundex/internal/domain"
	domfund "github.com/kailas-cloud/fundex/internal/domain/fund"
	"github.com/kailas-cloud/fundex/internal/logger"
	"github.com/kailas-cloud/fundex/internal/metrics"
)

// DefaultKey is the storage key of the fund collection.
const DefaultKey = "funds_data.json"

// store is the consumer interface for the collection (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

// Repo implements usecase/fund.Repository over a single stored JSON array.
// Every read goes to storage; nothing is cached between calls.
type Repo struct {
	store store
	key   string
	newID func() string
}

// Option configures a Repo.
type Option func(*Repo)

// WithIDGenerator overrides the generator used for id backfill.
func WithIDGenerator(fn func() string) Option {
	return func(r *Repo) { r.newID = fn }
}

// New creates a fund repository storing the collection under key.
func New(s store, key string, opts ...Option) *Repo {
	if key == "" {
		key = DefaultKey
	}
	r := &Repo{store: s, key: key, newID: uuid.NewString}
	for _, o := range opts {
		o(r)
	}
	return r
}

// List returns every fund in stored order, backfilling missing ids first.
func (r *Repo) List(ctx context.Context) ([]domfund.Fund, error) {
	funds, _, err := r.loadAndBackfill(ctx)
	return funds, err
}

// Get returns the first fund with the given id.
func (r *Repo) Get(ctx context.Context, id string) (domfund.Fund, error) {
	funds, _, err := r.loadAndBackfill(ctx)
	if err != nil {
		return domfund.Fund{}, err
	}
	for _, f := range funds {
		if f.ID() == id {
			return f, nil
		}
	}
	return domfund.Fund{}, fmt.Errorf("fund %s: %w", id, domain.ErrNotFound)
}

// ReplaceAll overwrites the stored collection.
func (r *Repo) ReplaceAll(ctx context.Context, funds []domfund.Fund) error {
	data, err := encodeCollection(funds)
	if err != nil {
		return err
	}
	if err := r.store.Set(ctx, r.key, data); err != nil {
		metrics.StoreOperationsTotal.WithLabelValues("save", metrics.StatusError).Inc()
		return fmt.Errorf("save %s: %w: %w", r.key, err, domain.ErrStorage)
	}
	metrics.StoreOperationsTotal.WithLabelValues("save", metrics.StatusOK).Inc()
	return nil
}

// EnsureIDs loads the collection and persists generated ids for records that
// lack one. It returns how many ids were generated.
func (r *Repo) EnsureIDs(ctx context.Context) (int, error) {
	_, n, err := r.loadAndBackfill(ctx)
	return n, err
}

func (r *Repo) loadAndBackfill(ctx context.Context) ([]domfund.Fund, int, error) {
	records, err := r.load(ctx)
	if err != nil {
		return nil, 0, err
	}

	funds := make([]domfund.Fund, len(records))
	generated := 0
	for i, rec := range records {
		id := rec.id
		if id == "" {
			id = r.newID()
			generated++
		}
		funds[i] = domfund.Reconstruct(id, rec.fields)
	}
	metrics.StoreFunds.Set(float64(len(funds)))

	if generated == 0 {
		return funds, 0, nil
	}

	if err := r.ReplaceAll(ctx, funds); err != nil {
		return nil, 0, fmt.Errorf("persist backfilled ids: %w", err)
	}
	metrics.StoreBackfilledIDsTotal.Add(float64(generated))
	logger.FromContext(ctx).Info("Backfilled fund ids",
		zap.String("key", r.key),
		zap.Int("generated", generated),
		zap.Int("total", len(funds)),
	)
	return funds, generated, nil
}

func (r *Repo) load(ctx context.Context) ([]rawRecord, error) {
	data, err := r.store.Get(ctx, r.key)
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			metrics.StoreOperationsTotal.WithLabelValues("load", metrics.StatusNotFound).Inc()
			return nil, nil
		}
		metrics.StoreOperationsTotal.WithLabelValues("load", metrics.StatusError).Inc()
		return nil, fmt.Errorf("load %s: %w: %w", r.key, err, domain.ErrStorage)
	}

	records, err := decodeCollection(data)
	if err != nil {
		metrics.StoreOperationsTotal.WithLabelValues("load", metrics.StatusError).Inc()
		logger.FromContext(ctx).Error("Stored fund collection is malformed",
			zap.String("key", r.key),
			zap.Error(err),
		)
		return nil, fmt.Errorf("load %s: %w", r.key, err)
	}
	metrics.StoreOperationsTotal.WithLabelValues("load", metrics.StatusOK).Inc()
	return records, nil
}

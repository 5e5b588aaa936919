package fund

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/kailas-cloud/fundex/internal/domain"
	domfund "github.com/kailas-cloud/fundex/internal/domain/fund"
	"github.com/kailas-cloud/fundex/internal/domain/fund/patch"
	"github.com/kailas-cloud/fundex/internal/domain/fund/query"
	"github.com/kailas-cloud/fundex/internal/logger"
)

// Service handles fund listing and mutation.
// Each call is a self-contained read-modify-write; concurrent writers race and
// the last write wins.
type Service struct {
	repo Repository
}

// New creates a fund service.
func New(repo Repository) *Service {
	return &Service{repo: repo}
}

// List returns the funds matching q, sorted as q requests.
func (s *Service) List(ctx context.Context, q query.Query) ([]domfund.Fund, error) {
	funds, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list funds: %w", err)
	}
	return q.Apply(funds), nil
}

// Get returns a fund by id.
func (s *Service) Get(ctx context.Context, id string) (domfund.Fund, error) {
	f, err := s.repo.Get(ctx, id)
	if err != nil {
		return domfund.Fund{}, fmt.Errorf("get fund: %w", err)
	}
	return f, nil
}

// Count returns the number of stored funds.
func (s *Service) Count(ctx context.Context) (int, error) {
	funds, err := s.repo.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("count funds: %w", err)
	}
	return len(funds), nil
}

// Update merges p into the fund with the given id, validates the result and
// persists the collection. An empty patch returns the fund unchanged without
// writing. On validation failure nothing is written.
func (s *Service) Update(ctx context.Context, id string, p patch.Patch) (domfund.Fund, error) {
	funds, err := s.repo.List(ctx)
	if err != nil {
		return domfund.Fund{}, fmt.Errorf("update fund: %w", err)
	}

	idx := indexOf(funds, id)
	if idx < 0 {
		return domfund.Fund{}, fmt.Errorf("update fund %s: %w", id, domain.ErrNotFound)
	}
	if p.IsEmpty() {
		return funds[idx], nil
	}

	updated, err := p.Apply(funds[idx])
	if err != nil {
		return domfund.Fund{}, fmt.Errorf("update fund: %w", err)
	}

	next := make([]domfund.Fund, len(funds))
	copy(next, funds)
	next[idx] = updated
	if err := s.repo.ReplaceAll(ctx, next); err != nil {
		return domfund.Fund{}, fmt.Errorf("update fund %s: %w", id, err)
	}

	logger.FromContext(ctx).Info("Fund updated",
		zap.String("fund_id", id),
		zap.Strings("fields", p.Fields()),
	)
	return updated, nil
}

// Delete removes the fund with the given id.
func (s *Service) Delete(ctx context.Context, id string) error {
	funds, err := s.repo.List(ctx)
	if err != nil {
		return fmt.Errorf("delete fund: %w", err)
	}

	idx := indexOf(funds, id)
	if idx < 0 {
		return fmt.Errorf("delete fund %s: %w", id, domain.ErrNotFound)
	}

	next := make([]domfund.Fund, 0, len(funds)-1)
	next = append(next, funds[:idx]...)
	next = append(next, funds[idx+1:]...)
	if err := s.repo.ReplaceAll(ctx, next); err != nil {
		return fmt.Errorf("delete fund %s: %w", id, err)
	}

	logger.FromContext(ctx).Info("Fund deleted", zap.String("fund_id", id))
	return nil
}

func indexOf(funds []domfund.Fund, id string) int {
	for i, f := range funds {
		if f.ID() == id {
			return i
		}
	}
	return -1
}

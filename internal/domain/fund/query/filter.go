package query

import (
	"slices"
	"strings"

	"github.com/kailas-cloud/fundex/internal/domain/fund"
)

// Matches reports whether f satisfies every predicate in q.
func (q Query) Matches(f fund.Fund) bool {
	if !containsFold(f.Name(), q.Name) {
		return false
	}
	if q.Currency != "" && f.Currency() != q.Currency {
		return false
	}
	if !containsFold(f.Description(), q.Description) {
		return false
	}

	if !hasTag(f.Strategies(), q.Strategy) ||
		!hasTag(f.Geographies(), q.Geography) ||
		!hasTag(f.Managers(), q.Manager) {
		return false
	}

	return inRange(f.FundSize(), q.FundSizeMin, q.FundSizeMax) &&
		inRange(f.Vintage(), q.VintageMin, q.VintageMax)
}

// Filter returns the funds matching q, preserving input order.
func Filter(funds []fund.Fund, q Query) []fund.Fund {
	out := make([]fund.Fund, 0, len(funds))
	for _, f := range funds {
		if q.Matches(f) {
			out = append(out, f)
		}
	}
	return out
}

func containsFold(hay, needle string) bool {
	if needle == "" {
		return true
	}
	return strings.Contains(strings.ToLower(hay), strings.ToLower(needle))
}

func hasTag(tags []string, want string) bool {
	return want == "" || slices.Contains(tags, want)
}

func inRange(v float64, lo, hi *float64) bool {
	if lo != nil && v < *lo {
		return false
	}
	if hi != nil && v > *hi {
		return false
	}
	return true
}

package query

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/kailas-cloud/fundex/internal/domain/fund"
)

// sortKeys maps sortable field names to value accessors.
// Accessors return []string, float64 or string.
var sortKeys = map[string]func(fund.Fund) any{
	fund.FieldID:          func(f fund.Fund) any { return f.ID() },
	fund.FieldName:        func(f fund.Fund) any { return f.Name() },
	fund.FieldStrategies:  func(f fund.Fund) any { return f.Strategies() },
	fund.FieldGeographies: func(f fund.Fund) any { return f.Geographies() },
	fund.FieldCurrency:    func(f fund.Fund) any { return f.Currency() },
	fund.FieldFundSize:    func(f fund.Fund) any { return f.FundSize() },
	fund.FieldVintage:     func(f fund.Fund) any { return f.Vintage() },
	fund.FieldManagers:    func(f fund.Fund) any { return f.Managers() },
	fund.FieldDescription: func(f fund.Fund) any { return f.Description() },
}

// Sortable reports whether field is a recognized sort key.
func Sortable(field string) bool {
	_, ok := sortKeys[field]
	return ok
}

// Sort returns a stably sorted copy of funds.
// An unknown or empty field leaves the order unchanged; an empty dir means ascending.
func Sort(funds []fund.Fund, field string, dir SortDir) []fund.Fund {
	out := make([]fund.Fund, len(funds))
	copy(out, funds)

	key, ok := sortKeys[field]
	if !ok {
		return out
	}

	factor := 1
	if dir == Desc {
		factor = -1
	}

	// A Collator keeps internal buffers and must not be shared across goroutines.
	coll := collate.New(language.Und, collate.IgnoreCase, collate.IgnoreDiacritics)
	sort.SliceStable(out, func(i, j int) bool {
		return compare(coll, key(out[i]), key(out[j]))*factor < 0
	})
	return out
}

// compare orders tag lists by length, numbers numerically and everything else
// as collated strings.
func compare(coll *collate.Collator, a, b any) int {
	if as, ok := a.([]string); ok {
		if bs, ok := b.([]string); ok {
			return len(as) - len(bs)
		}
	}
	if an, ok := a.(float64); ok {
		if bn, ok := b.(float64); ok {
			switch {
			case an < bn:
				return -1
			case an > bn:
				return 1
			default:
				return 0
			}
		}
	}
	return coll.CompareString(fund.String(toAny(a)), fund.String(toAny(b)))
}

func toAny(v any) any {
	if s, ok := v.([]string); ok {
		out := make([]any, len(s))
		for i, e := range s {
			out[i] = e
		}
		return out
	}
	return v
}

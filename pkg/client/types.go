package client

import (
	"encoding/json"
	"maps"
	"net/url"
	"slices"

	"github.com/kailas-cloud/fundex/internal/domain/fund"
	"github.com/kailas-cloud/fundex/internal/domain/fund/query"
)

// Fund is a fund record as returned by the API.
type Fund struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Strategies  []string `json:"strategies"`
	Geographies []string `json:"geographies"`
	Currency    string   `json:"currency"`
	FundSize    float64  `json:"fundSize"`
	Vintage     float64  `json:"vintage"`
	Managers    []string `json:"managers"`
	Description string   `json:"description"`
}

// SortDir is the list sort direction.
type SortDir = query.SortDir

// Sort directions.
const (
	Asc  = query.Asc
	Desc = query.Desc
)

// ListQuery holds optional list filters. Zero values mean "no constraint".
type ListQuery struct {
	Name        string
	Currency    string
	Description string
	Strategy    string
	Geography   string
	Manager     string

	FundSizeMin *float64
	FundSizeMax *float64
	VintageMin  *float64
	VintageMax  *float64

	SortBy  string
	SortDir SortDir
}

// Values encodes the query as URL parameters, omitting absent fields.
func (q ListQuery) Values() url.Values {
	return query.Query{
		Name:        q.Name,
		Currency:    q.Currency,
		Description: q.Description,
		Strategy:    q.Strategy,
		Geography:   q.Geography,
		Manager:     q.Manager,
		FundSizeMin: q.FundSizeMin,
		FundSizeMax: q.FundSizeMax,
		VintageMin:  q.VintageMin,
		VintageMax:  q.VintageMax,
		SortBy:      q.SortBy,
		SortDir:     q.SortDir,
	}.Values()
}

// Patch is a partial update. Only fields that were set are sent; the server
// coerces raw values the same way it coerces stored records.
type Patch struct {
	fields map[string]any
}

// Set returns a copy with field set to v. Unknown fields are ignored by the server.
func (p Patch) Set(field string, v any) Patch {
	next := make(map[string]any, len(p.fields)+1)
	maps.Copy(next, p.fields)
	next[field] = v
	return Patch{fields: next}
}

// SetName returns a copy with the name set.
func (p Patch) SetName(s string) Patch { return p.Set(fund.FieldName, s) }

// SetCurrency returns a copy with the currency set.
func (p Patch) SetCurrency(s string) Patch { return p.Set(fund.FieldCurrency, s) }

// SetDescription returns a copy with the description set.
func (p Patch) SetDescription(s string) Patch { return p.Set(fund.FieldDescription, s) }

// SetStrategies returns a copy with the strategy tags set.
func (p Patch) SetStrategies(tags ...string) Patch { return p.Set(fund.FieldStrategies, tags) }

// SetGeographies returns a copy with the geography tags set.
func (p Patch) SetGeographies(tags ...string) Patch { return p.Set(fund.FieldGeographies, tags) }

// SetManagers returns a copy with the manager tags set.
func (p Patch) SetManagers(tags ...string) Patch { return p.Set(fund.FieldManagers, tags) }

// SetFundSize returns a copy with the fund size set.
func (p Patch) SetFundSize(v float64) Patch { return p.Set(fund.FieldFundSize, v) }

// SetVintage returns a copy with the vintage set.
func (p Patch) SetVintage(v float64) Patch { return p.Set(fund.FieldVintage, v) }

// Merge returns p overlaid with newer. Fields set in newer win.
func (p Patch) Merge(newer Patch) Patch {
	next := make(map[string]any, len(p.fields)+len(newer.fields))
	maps.Copy(next, p.fields)
	maps.Copy(next, newer.fields)
	return Patch{fields: next}
}

// IsEmpty reports whether no field is set.
func (p Patch) IsEmpty() bool { return len(p.fields) == 0 }

// Fields returns the names of the set fields, sorted.
func (p Patch) Fields() []string {
	return slices.Sorted(maps.Keys(p.fields))
}

// MarshalJSON encodes only the set fields.
func (p Patch) MarshalJSON() ([]byte, error) {
	if p.fields == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(p.fields)
}

// HealthStatus is the server health report.
type HealthStatus struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
	Funds  int               `json:"funds"`
}

type deleteResponse struct {
	Success bool `json:"success"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

package query

import (
	"net/url"
	"strconv"

	"github.com/kailas-cloud/fundex/internal/domain/fund"
)

// SortDir is the sort direction.
type SortDir string

const (
	// Asc sorts ascending. It is the effective direction when none is given.
	Asc SortDir = "asc"
	// Desc sorts descending.
	Desc SortDir = "desc"
)

// Parameter names accepted from a query string.
const (
	ParamName        = "name"
	ParamCurrency    = "currency"
	ParamDescription = "description"
	ParamStrategy    = "strategy"
	ParamGeography   = "geography"
	ParamManager     = "manager"
	ParamFundSizeMin = "fundSizeMin"
	ParamFundSizeMax = "fundSizeMax"
	ParamVintageMin  = "vintageMin"
	ParamVintageMax  = "vintageMax"
	ParamSortBy      = "sortBy"
	ParamSortDir     = "sortDir"
)

// Query is a normalized set of optional list filters and sort settings.
// Empty strings and nil bounds mean "no constraint".
type Query struct {
	Name        string
	Currency    string
	Description string

	Strategy  string
	Geography string
	Manager   string

	FundSizeMin *float64
	FundSizeMax *float64
	VintageMin  *float64
	VintageMax  *float64

	SortBy  string
	SortDir SortDir
}

// FromValues normalizes untrusted query-string parameters.
// Only the first value of a repeated key is used.
func FromValues(v url.Values) Query {
	return parse(v.Get)
}

// FromMap normalizes untrusted key/value input such as form state.
func FromMap(m map[string]string) Query {
	return parse(func(k string) string { return m[k] })
}

func parse(get func(string) string) Query {
	return Query{
		Name:        get(ParamName),
		Currency:    get(ParamCurrency),
		Description: get(ParamDescription),
		Strategy:    get(ParamStrategy),
		Geography:   get(ParamGeography),
		Manager:     get(ParamManager),
		FundSizeMin: bound(get(ParamFundSizeMin)),
		FundSizeMax: bound(get(ParamFundSizeMax)),
		VintageMin:  bound(get(ParamVintageMin)),
		VintageMax:  bound(get(ParamVintageMax)),
		SortBy:      get(ParamSortBy),
		SortDir:     direction(get(ParamSortDir)),
	}
}

// bound parses a numeric filter; unparseable or non-finite input is dropped silently.
func bound(s string) *float64 {
	if s == "" {
		return nil
	}
	n := fund.ParseNumber(s)
	if !fund.IsFinite(n) {
		return nil
	}
	return &n
}

func direction(s string) SortDir {
	switch SortDir(s) {
	case Asc, Desc:
		return SortDir(s)
	default:
		return ""
	}
}

// Values encodes the query back into query-string parameters, omitting absent fields.
func (q Query) Values() url.Values {
	v := url.Values{}
	set := func(k, s string) {
		if s != "" {
			v.Set(k, s)
		}
	}
	setNum := func(k string, n *float64) {
		if n != nil {
			v.Set(k, strconv.FormatFloat(*n, 'g', -1, 64))
		}
	}

	set(ParamName, q.Name)
	set(ParamCurrency, q.Currency)
	set(ParamDescription, q.Description)
	set(ParamStrategy, q.Strategy)
	set(ParamGeography, q.Geography)
	set(ParamManager, q.Manager)
	setNum(ParamFundSizeMin, q.FundSizeMin)
	setNum(ParamFundSizeMax, q.FundSizeMax)
	setNum(ParamVintageMin, q.VintageMin)
	setNum(ParamVintageMax, q.VintageMax)
	set(ParamSortBy, q.SortBy)
	set(ParamSortDir, string(q.SortDir))
	return v
}

// IsEmpty reports whether the query has no filters and no sort.
func (q Query) IsEmpty() bool {
	return len(q.Values()) == 0
}

// Apply filters funds by the query and sorts the result.
func (q Query) Apply(funds []fund.Fund) []fund.Fund {
	return Sort(Filter(funds, q), q.SortBy, q.SortDir)
}

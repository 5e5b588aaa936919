package fund

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/kailas-cloud/fundex/internal/domain"
)

// Field names as they appear in the persisted collection and the HTTP API.
const (
	FieldID          = "id"
	FieldName        = "name"
	FieldStrategies  = "strategies"
	FieldGeographies = "geographies"
	FieldCurrency    = "currency"
	FieldFundSize    = "fundSize"
	FieldVintage     = "vintage"
	FieldManagers    = "managers"
	FieldDescription = "description"
)

// Fields holds the mutable attributes of a fund.
type Fields struct {
	Name        string
	Strategies  []string
	Geographies []string
	Currency    string
	FundSize    float64
	Vintage     float64
	Managers    []string
	Description string
}

// Validate checks the required-field and numeric invariants.
func (f Fields) Validate() error {
	if f.Name == "" {
		return &domain.ValidationError{Field: FieldName, Message: "name is required"}
	}
	if f.Currency == "" {
		return &domain.ValidationError{Field: FieldCurrency, Message: "currency is required"}
	}
	if !IsFinite(f.FundSize) {
		return &domain.ValidationError{Field: FieldFundSize, Message: "fundSize must be a number"}
	}
	if !IsFinite(f.Vintage) {
		return &domain.ValidationError{Field: FieldVintage, Message: "vintage must be a number"}
	}
	return nil
}

// Fund is the fund aggregate (immutable value object).
type Fund struct {
	id     string
	fields Fields
}

// New normalizes and validates fields and creates a Fund.
// Strings are trimmed and empty tag entries are dropped.
func New(id string, f Fields) (Fund, error) {
	if id == "" {
		return Fund{}, fmt.Errorf("fund ID is required: %w", domain.ErrValidation)
	}
	f = normalize(f)
	if err := f.Validate(); err != nil {
		return Fund{}, err
	}
	return Fund{id: id, fields: cloneFields(f)}, nil
}

// Reconstruct creates a Fund without validation (storage hydration).
func Reconstruct(id string, f Fields) Fund {
	return Fund{id: id, fields: cloneFields(f)}
}

// ID returns the fund identifier.
func (f Fund) ID() string { return f.id }

// Name returns the display name.
func (f Fund) Name() string { return f.fields.Name }

// Strategies returns the strategy tags.
func (f Fund) Strategies() []string { return f.fields.Strategies }

// Geographies returns the geography tags.
func (f Fund) Geographies() []string { return f.fields.Geographies }

// Currency returns the currency code.
func (f Fund) Currency() string { return f.fields.Currency }

// FundSize returns the fund size.
func (f Fund) FundSize() float64 { return f.fields.FundSize }

// Vintage returns the vintage year.
func (f Fund) Vintage() float64 { return f.fields.Vintage }

// Managers returns the manager tags.
func (f Fund) Managers() []string { return f.fields.Managers }

// Description returns the free-form description.
func (f Fund) Description() string { return f.fields.Description }

// Fields returns a copy of the mutable attributes.
func (f Fund) Fields() Fields { return cloneFields(f.fields) }

// Validate checks the fund invariants.
func (f Fund) Validate() error { return f.fields.Validate() }

// WithID returns a copy carrying the given identifier.
func (f Fund) WithID(id string) Fund {
	return Fund{id: id, fields: cloneFields(f.fields)}
}

// Equal reports whether two funds carry the same id and field values.
func (f Fund) Equal(other Fund) bool {
	a, b := f.fields, other.fields
	return f.id == other.id &&
		a.Name == b.Name &&
		a.Currency == b.Currency &&
		a.Description == b.Description &&
		a.FundSize == b.FundSize &&
		a.Vintage == b.Vintage &&
		slices.Equal(a.Strategies, b.Strategies) &&
		slices.Equal(a.Geographies, b.Geographies) &&
		slices.Equal(a.Managers, b.Managers)
}

func normalize(f Fields) Fields {
	return Fields{
		Name:        strings.TrimSpace(f.Name),
		Strategies:  Tags(f.Strategies),
		Geographies: Tags(f.Geographies),
		Currency:    strings.TrimSpace(f.Currency),
		FundSize:    f.FundSize,
		Vintage:     f.Vintage,
		Managers:    Tags(f.Managers),
		Description: strings.TrimSpace(f.Description),
	}
}

func cloneFields(f Fields) Fields {
	f.Strategies = cloneTags(f.Strategies)
	f.Geographies = cloneTags(f.Geographies)
	f.Managers = cloneTags(f.Managers)
	return f
}

// cloneTags never returns nil so that empty tag lists serialize as [].
func cloneTags(s []string) []string {
	out := make([]string, len(s))
	copy(out, s)
	return out
}

// IsFinite reports whether v is neither NaN nor infinite.
func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

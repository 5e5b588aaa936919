package patch

import (
	"fmt"

	"github.com/kailas-cloud/fundex/internal/domain/fund"
)

// Patch is a partial fund update.
// Nil fields are unchanged. Present fields replace the current value outright;
// tag lists are never merged with the previous list.
type Patch struct {
	name        *string
	currency    *string
	description *string
	strategies  *[]string
	geographies *[]string
	managers    *[]string
	fundSize    *float64
	vintage     *float64
}

// coercers maps each mutable field to its normalization rule.
// Values are coerced exactly as stored records are on load.
var coercers = map[string]func(p *Patch, v any){
	fund.FieldName:        func(p *Patch, v any) { s := fund.String(v); p.name = &s },
	fund.FieldCurrency:    func(p *Patch, v any) { s := fund.String(v); p.currency = &s },
	fund.FieldDescription: func(p *Patch, v any) { s := fund.String(v); p.description = &s },
	fund.FieldStrategies:  func(p *Patch, v any) { t := fund.Tags(v); p.strategies = &t },
	fund.FieldGeographies: func(p *Patch, v any) { t := fund.Tags(v); p.geographies = &t },
	fund.FieldManagers:    func(p *Patch, v any) { t := fund.Tags(v); p.managers = &t },
	fund.FieldFundSize:    func(p *Patch, v any) { n := fund.Number(v); p.fundSize = &n },
	fund.FieldVintage:     func(p *Patch, v any) { n := fund.Number(v); p.vintage = &n },
}

// FromMap builds a Patch from a decoded JSON object.
// Unknown keys, including "id", are ignored. A key present with a null value
// counts as present and is coerced (strings to "", lists to [], numbers to 0).
func FromMap(m map[string]any) Patch {
	var p Patch
	for k, v := range m {
		if apply, ok := coercers[k]; ok {
			apply(&p, v)
		}
	}
	return p
}

// WithName returns a copy with the name set.
func (p Patch) WithName(s string) Patch { coercers[fund.FieldName](&p, s); return p }

// WithCurrency returns a copy with the currency set.
func (p Patch) WithCurrency(s string) Patch { coercers[fund.FieldCurrency](&p, s); return p }

// WithDescription returns a copy with the description set.
func (p Patch) WithDescription(s string) Patch {
	coercers[fund.FieldDescription](&p, s)
	return p
}

// WithStrategies returns a copy with the strategy tags set.
func (p Patch) WithStrategies(tags []string) Patch {
	t := fund.Tags(tags)
	p.strategies = &t
	return p
}

// WithGeographies returns a copy with the geography tags set.
func (p Patch) WithGeographies(tags []string) Patch {
	t := fund.Tags(tags)
	p.geographies = &t
	return p
}

// WithManagers returns a copy with the manager tags set.
func (p Patch) WithManagers(tags []string) Patch {
	t := fund.Tags(tags)
	p.managers = &t
	return p
}

// WithFundSize returns a copy with the fund size set.
func (p Patch) WithFundSize(v float64) Patch { p.fundSize = &v; return p }

// WithVintage returns a copy with the vintage set.
func (p Patch) WithVintage(v float64) Patch { p.vintage = &v; return p }

// IsEmpty reports whether the patch changes nothing.
func (p Patch) IsEmpty() bool {
	return p.name == nil && p.currency == nil && p.description == nil &&
		p.strategies == nil && p.geographies == nil && p.managers == nil &&
		p.fundSize == nil && p.vintage == nil
}

// Apply merges the patch into f and validates the result.
// On failure f is returned unchanged alongside an error wrapping domain.ErrValidation.
func (p Patch) Apply(f fund.Fund) (fund.Fund, error) {
	next := f.Fields()
	if p.name != nil {
		next.Name = *p.name
	}
	if p.currency != nil {
		next.Currency = *p.currency
	}
	if p.description != nil {
		next.Description = *p.description
	}
	if p.strategies != nil {
		next.Strategies = *p.strategies
	}
	if p.geographies != nil {
		next.Geographies = *p.geographies
	}
	if p.managers != nil {
		next.Managers = *p.managers
	}
	if p.fundSize != nil {
		next.FundSize = *p.fundSize
	}
	if p.vintage != nil {
		next.Vintage = *p.vintage
	}

	if err := next.Validate(); err != nil {
		return f, fmt.Errorf("apply patch to %s: %w", f.ID(), err)
	}
	return fund.Reconstruct(f.ID(), next), nil
}

// Fields lists the names of the fields present in the patch.
func (p Patch) Fields() []string {
	var out []string
	add := func(present bool, name string) {
		if present {
			out = append(out, name)
		}
	}
	add(p.name != nil, fund.FieldName)
	add(p.strategies != nil, fund.FieldStrategies)
	add(p.geographies != nil, fund.FieldGeographies)
	add(p.currency != nil, fund.FieldCurrency)
	add(p.fundSize != nil, fund.FieldFundSize)
	add(p.vintage != nil, fund.FieldVintage)
	add(p.managers != nil, fund.FieldManagers)
	add(p.description != nil, fund.FieldDescription)
	return out
}

package fund

import (
	"encoding/json"
	"fmt"

	"github.com/kailas-cloud/fundex/internal/domain"
	domfund "github.com/kailas-cloud/fundex/internal/domain/fund"
)

// fundDTO is the persisted JSON shape of one record, in canonical field order.
type fundDTO struct {
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

func toDTO(f domfund.Fund) fundDTO {
	return fundDTO{
		ID:          f.ID(),
		Name:        f.Name(),
		Strategies:  nonNil(f.Strategies()),
		Geographies: nonNil(f.Geographies()),
		Currency:    f.Currency(),
		FundSize:    f.FundSize(),
		Vintage:     f.Vintage(),
		Managers:    nonNil(f.Managers()),
		Description: f.Description(),
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// encodeCollection renders the collection as a 2-space indented JSON array.
func encodeCollection(funds []domfund.Fund) ([]byte, error) {
	dtos := make([]fundDTO, len(funds))
	for i, f := range funds {
		dtos[i] = toDTO(f)
	}
	data, err := json.MarshalIndent(dtos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal collection: %w", err)
	}
	return append(data, '\n'), nil
}

// rawRecord is one decoded stored record before coercion, with its id
// resolved ("" when absent).
type rawRecord struct {
	id     string
	fields domfund.Fields
}

// decodeCollection parses stored bytes leniently. The top level must be a JSON
// array; each element is coerced field by field and never rejected.
func decodeCollection(data []byte) ([]rawRecord, error) {
	var top any
	if err := json.Unmarshal(data, &top); err != nil {
		return nil, fmt.Errorf("parse collection: %w: %w", err, domain.ErrStorage)
	}
	items, ok := top.([]any)
	if !ok {
		return nil, fmt.Errorf("collection is %s, not an array: %w", kind(top), domain.ErrStorage)
	}

	out := make([]rawRecord, len(items))
	for i, item := range items {
		m, _ := item.(map[string]any)
		out[i] = coerceRecord(m)
	}
	return out, nil
}

func coerceRecord(m map[string]any) rawRecord {
	return rawRecord{
		id: coerceID(m[domfund.FieldID]),
		fields: domfund.Fields{
			Name:        domfund.String(m[domfund.FieldName]),
			Strategies:  domfund.Tags(m[domfund.FieldStrategies]),
			Geographies: domfund.Tags(m[domfund.FieldGeographies]),
			Currency:    domfund.String(m[domfund.FieldCurrency]),
			FundSize:    domfund.FiniteOr(domfund.Number(m[domfund.FieldFundSize]), 0),
			Vintage:     domfund.FiniteOr(domfund.Number(m[domfund.FieldVintage]), 0),
			Managers:    domfund.Tags(m[domfund.FieldManagers]),
			Description: domfund.String(m[domfund.FieldDescription]),
		},
	}
}

// coerceID treats falsy values (missing, null, "", 0, false) as absent and
// stringifies anything else.
func coerceID(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case bool:
		if !x {
			return ""
		}
	case float64:
		if x == 0 || !domfund.IsFinite(x) {
			return ""
		}
	}
	return domfund.String(v)
}

func kind(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case map[string]any:
		return "an object"
	case string:
		return "a string"
	case float64:
		return "a number"
	case bool:
		return "a boolean"
	default:
		return fmt.Sprintf("%T", v)
	}
}

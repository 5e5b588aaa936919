package fund

import (
	"errors"
	"math"
	"testing"

	"github.com/kailas-cloud/fundex/internal/domain"
)

func validFields() Fields {
	return Fields{
		Name:        "Alpha",
		Strategies:  []string{"Buyout"},
		Geographies: []string{"Europe"},
		Currency:    "USD",
		FundSize:    100,
		Vintage:     2020,
		Managers:    []string{"Jane"},
		Description: "first fund",
	}
}

func TestNew_Valid(t *testing.T) {
	f, err := New("fund-1", validFields())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.ID() != "fund-1" {
		t.Errorf("ID() = %q", f.ID())
	}
	if f.Name() != "Alpha" || f.Currency() != "USD" {
		t.Errorf("Name/Currency = %q/%q", f.Name(), f.Currency())
	}
	if f.FundSize() != 100 || f.Vintage() != 2020 {
		t.Errorf("FundSize/Vintage = %v/%v", f.FundSize(), f.Vintage())
	}
}

func TestNew_Normalizes(t *testing.T) {
	in := validFields()
	in.Name = "  Alpha  "
	in.Currency = " USD "
	in.Strategies = []string{" Buyout ", "", "  ", "Growth"}

	f, err := New("fund-1", in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.Name() != "Alpha" {
		t.Errorf("Name() = %q", f.Name())
	}
	if f.Currency() != "USD" {
		t.Errorf("Currency() = %q", f.Currency())
	}
	if len(f.Strategies()) != 2 || f.Strategies()[0] != "Buyout" || f.Strategies()[1] != "Growth" {
		t.Errorf("Strategies() = %v", f.Strategies())
	}
}

func TestNew_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		id     string
		mutate func(*Fields)
	}{
		{"empty id", "", func(*Fields) {}},
		{"empty name", "f", func(f *Fields) { f.Name = "   " }},
		{"empty currency", "f", func(f *Fields) { f.Currency = "" }},
		{"NaN fund size", "f", func(f *Fields) { f.FundSize = math.NaN() }},
		{"infinite vintage", "f", func(f *Fields) { f.Vintage = math.Inf(1) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validFields()
			tt.mutate(&in)
			_, err := New(tt.id, in)
			if !errors.Is(err, domain.ErrValidation) {
				t.Fatalf("expected ErrValidation, got %v", err)
			}
		})
	}
}

func TestNew_NegativeFundSizeAllowed(t *testing.T) {
	in := validFields()
	in.FundSize = -1
	if _, err := New("f", in); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestFields_ReturnsCopy(t *testing.T) {
	f, _ := New("f", validFields())
	fields := f.Fields()
	fields.Strategies[0] = "mutated"

	if f.Strategies()[0] != "Buyout" {
		t.Error("Fields() mutation leaked into fund")
	}
}

func TestReconstruct_NilTagsBecomeEmpty(t *testing.T) {
	f := Reconstruct("f", Fields{Name: "x"})
	if f.Strategies() == nil || f.Geographies() == nil || f.Managers() == nil {
		t.Error("tag lists should never be nil")
	}
}

func TestEqual(t *testing.T) {
	a, _ := New("f", validFields())
	b, _ := New("f", validFields())
	if !a.Equal(b) {
		t.Error("identical funds should be equal")
	}
	if a.Equal(b.WithID("g")) {
		t.Error("funds with different ids should differ")
	}

	other := validFields()
	other.Managers = []string{"Jane", "John"}
	c, _ := New("f", other)
	if a.Equal(c) {
		t.Error("funds with different managers should differ")
	}
}

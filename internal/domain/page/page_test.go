package page

import (
	"reflect"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name       string
		total      int
		size       int
		requested  int
		wantNumber int
		wantPages  int
		wantStart  int
		wantEnd    int
	}{
		{"first page", 23, 10, 1, 1, 3, 0, 10},
		{"last partial page", 23, 10, 3, 3, 3, 20, 23},
		{"clamped above", 23, 10, 10, 3, 3, 20, 23},
		{"clamped below", 23, 10, 0, 1, 3, 0, 10},
		{"negative page", 23, 10, -4, 1, 3, 0, 10},
		{"empty list has one page", 0, 10, 5, 1, 1, 0, 0},
		{"exact multiple", 20, 10, 2, 2, 2, 10, 20},
		{"default size", 23, 0, 2, 2, 3, 10, 20},
		{"size larger than total", 3, 50, 1, 1, 1, 0, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New(tt.total, tt.size, tt.requested)
			if p.Number() != tt.wantNumber {
				t.Errorf("Number = %d, want %d", p.Number(), tt.wantNumber)
			}
			if p.TotalPages() != tt.wantPages {
				t.Errorf("TotalPages = %d, want %d", p.TotalPages(), tt.wantPages)
			}
			start, end := p.Bounds()
			if start != tt.wantStart || end != tt.wantEnd {
				t.Errorf("Bounds = [%d,%d), want [%d,%d)", start, end, tt.wantStart, tt.wantEnd)
			}
		})
	}
}

func TestPrevNext(t *testing.T) {
	p := New(23, 10, 1)
	if p.HasPrev() || !p.HasNext() {
		t.Errorf("page 1: HasPrev=%v HasNext=%v", p.HasPrev(), p.HasNext())
	}
	p = New(23, 10, 3)
	if !p.HasPrev() || p.HasNext() {
		t.Errorf("page 3: HasPrev=%v HasNext=%v", p.HasPrev(), p.HasNext())
	}
}

func TestRange(t *testing.T) {
	tests := []struct {
		name           string
		total, current int
		want           []int
	}{
		{"single page", 5, 1, []int{1}},
		{"few pages", 30, 2, []int{1, 2, 3}},
		{"middle of many", 200, 10, []int{1, 8, 9, 10, 11, 12, 20}},
		{"near start", 200, 2, []int{1, 2, 3, 4, 20}},
		{"near end", 200, 19, []int{1, 17, 18, 19, 20}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := New(tt.total, 10, tt.current).Range()
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Range = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSlice(t *testing.T) {
	items := make([]int, 23)
	for i := range items {
		items[i] = i
	}

	got := Slice(items, New(len(items), 10, 10))
	if !reflect.DeepEqual(got, []int{20, 21, 22}) {
		t.Errorf("Slice = %v", got)
	}

	if got := Slice([]int{}, New(0, 10, 1)); len(got) != 0 {
		t.Errorf("Slice of empty = %v", got)
	}
}

func TestValidSize(t *testing.T) {
	for _, n := range SizeOptions {
		if !ValidSize(n) {
			t.Errorf("ValidSize(%d) = false", n)
		}
	}
	if ValidSize(7) {
		t.Error("ValidSize(7) = true")
	}
}

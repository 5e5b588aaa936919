package fund

import (
	"context"
	"errors"
	"net/url"
	"reflect"
	"testing"

	"github.com/kailas-cloud/fundex/internal/domain"
	domfund "github.com/kailas-cloud/fundex/internal/domain/fund"
	"github.com/kailas-cloud/fundex/internal/domain/fund/patch"
	"github.com/kailas-cloud/fundex/internal/domain/fund/query"
)

// --- Mocks ---

type mockRepo struct {
	funds      []domfund.Fund
	listErr    error
	replaceErr error
	writes     int
}

func (m *mockRepo) List(_ context.Context) ([]domfund.Fund, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	out := make([]domfund.Fund, len(m.funds))
	copy(out, m.funds)
	return out, nil
}

func (m *mockRepo) Get(ctx context.Context, id string) (domfund.Fund, error) {
	funds, err := m.List(ctx)
	if err != nil {
		return domfund.Fund{}, err
	}
	for _, f := range funds {
		if f.ID() == id {
			return f, nil
		}
	}
	return domfund.Fund{}, domain.ErrNotFound
}

func (m *mockRepo) ReplaceAll(_ context.Context, funds []domfund.Fund) error {
	if m.replaceErr != nil {
		return m.replaceErr
	}
	m.writes++
	m.funds = funds
	return nil
}

func makeFund(t *testing.T, id string, f domfund.Fields) domfund.Fund {
	t.Helper()
	out, err := domfund.New(id, f)
	if err != nil {
		t.Fatalf("domfund.New: %v", err)
	}
	return out
}

func scenarioRepo(t *testing.T) *mockRepo {
	t.Helper()
	return &mockRepo{funds: []domfund.Fund{
		makeFund(t, "A", domfund.Fields{Name: "Alpha", Currency: "USD", FundSize: 100, Vintage: 2020}),
		makeFund(t, "B", domfund.Fields{Name: "Beta", Currency: "EUR", FundSize: 50, Vintage: 2018}),
		makeFund(t, "C", domfund.Fields{Name: "Gamma", Currency: "USD", FundSize: 200, Vintage: 2022}),
	}}
}

func ids(funds []domfund.Fund) []string {
	out := make([]string, len(funds))
	for i, f := range funds {
		out[i] = f.ID()
	}
	return out
}

// --- List ---

func TestList_FilterAndSort(t *testing.T) {
	svc := New(scenarioRepo(t))
	q := query.FromValues(url.Values{"currency": {"USD"}, "sortBy": {"fundSize"}, "sortDir": {"desc"}})

	got, err := svc.List(context.Background(), q)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if !reflect.DeepEqual(ids(got), []string{"C", "A"}) {
		t.Errorf("List = %v, want [C A]", ids(got))
	}
}

func TestList_EmptyQuery(t *testing.T) {
	svc := New(scenarioRepo(t))
	got, err := svc.List(context.Background(), query.Query{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if !reflect.DeepEqual(ids(got), []string{"A", "B", "C"}) {
		t.Errorf("List = %v", ids(got))
	}
}

func TestList_RepoError(t *testing.T) {
	svc := New(&mockRepo{listErr: domain.ErrStorage})
	if _, err := svc.List(context.Background(), query.Query{}); !errors.Is(err, domain.ErrStorage) {
		t.Errorf("err = %v", err)
	}
}

// --- Get / Count ---

func TestGet(t *testing.T) {
	svc := New(scenarioRepo(t))
	f, err := svc.Get(context.Background(), "B")
	if err != nil || f.Name() != "Beta" {
		t.Errorf("Get = %v, %v", f.Name(), err)
	}
	if _, err := svc.Get(context.Background(), "Z"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("Get missing err = %v", err)
	}
}

func TestCount(t *testing.T) {
	n, err := New(scenarioRepo(t)).Count(context.Background())
	if err != nil || n != 3 {
		t.Errorf("Count = %d, %v", n, err)
	}
}

// --- Update ---

func TestUpdate_MergesAndPersists(t *testing.T) {
	repo := scenarioRepo(t)
	svc := New(repo)

	p := patch.FromMap(map[string]any{"fundSize": -1, "strategies": "Credit, Growth", "id": "hijack"})
	got, err := svc.Update(context.Background(), "B", p)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got.ID() != "B" || got.FundSize() != -1 || got.Name() != "Beta" {
		t.Errorf("updated = %s %v %s", got.ID(), got.FundSize(), got.Name())
	}
	if !reflect.DeepEqual(got.Strategies(), []string{"Credit", "Growth"}) {
		t.Errorf("strategies = %v", got.Strategies())
	}
	if repo.writes != 1 {
		t.Errorf("writes = %d", repo.writes)
	}
	if !repo.funds[1].Equal(got) {
		t.Error("stored record differs from returned record")
	}
	if !reflect.DeepEqual(ids(repo.funds), []string{"A", "B", "C"}) {
		t.Errorf("order changed: %v", ids(repo.funds))
	}
}

func TestUpdate_ValidationFailureWritesNothing(t *testing.T) {
	tests := []struct {
		name  string
		patch map[string]any
	}{
		{"non-numeric fund size", map[string]any{"fundSize": "not-a-number"}},
		{"blank name", map[string]any{"name": "   "}},
		{"null currency", map[string]any{"currency": nil}},
		{"array vintage", map[string]any{"vintage": []any{1.0, 2.0}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := scenarioRepo(t)
			before := repo.funds[1]

			_, err := New(repo).Update(context.Background(), "B", patch.FromMap(tt.patch))
			if !errors.Is(err, domain.ErrValidation) {
				t.Fatalf("err = %v, want ErrValidation", err)
			}
			if repo.writes != 0 {
				t.Errorf("writes = %d, want 0", repo.writes)
			}
			if !repo.funds[1].Equal(before) {
				t.Error("record changed after failed update")
			}
		})
	}
}

func TestUpdate_EmptyPatchNoWrite(t *testing.T) {
	repo := scenarioRepo(t)
	got, err := New(repo).Update(context.Background(), "A", patch.FromMap(map[string]any{"unknown": 1}))
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if !got.Equal(repo.funds[0]) {
		t.Error("empty patch changed the record")
	}
	if repo.writes != 0 {
		t.Errorf("writes = %d, want 0", repo.writes)
	}
}

func TestUpdate_NotFound(t *testing.T) {
	repo := scenarioRepo(t)
	_, err := New(repo).Update(context.Background(), "Z", patch.Patch{}.WithName("x"))
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("err = %v", err)
	}
	if repo.writes != 0 {
		t.Errorf("writes = %d", repo.writes)
	}
}

func TestUpdate_WriteError(t *testing.T) {
	repo := scenarioRepo(t)
	repo.replaceErr = domain.ErrStorage
	_, err := New(repo).Update(context.Background(), "A", patch.Patch{}.WithName("x"))
	if !errors.Is(err, domain.ErrStorage) {
		t.Errorf("err = %v", err)
	}
}

// --- Delete ---

func TestDelete(t *testing.T) {
	repo := scenarioRepo(t)
	if err := New(repo).Delete(context.Background(), "B"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if !reflect.DeepEqual(ids(repo.funds), []string{"A", "C"}) {
		t.Errorf("remaining = %v", ids(repo.funds))
	}
}

func TestDelete_NotFound(t *testing.T) {
	repo := scenarioRepo(t)
	err := New(repo).Delete(context.Background(), "Z")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("err = %v", err)
	}
	if repo.writes != 0 || len(repo.funds) != 3 {
		t.Errorf("writes = %d, size = %d", repo.writes, len(repo.funds))
	}
}

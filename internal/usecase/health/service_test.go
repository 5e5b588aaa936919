package health

import (
	"context"
	"errors"
	"testing"
)

// --- Mocks ---

type mockPinger struct {
	err error
}

func (m *mockPinger) Ping(_ context.Context) error { return m.err }

type mockCounter struct {
	n   int
	err error
}

func (m *mockCounter) Count(_ context.Context) (int, error) { return m.n, m.err }

// --- Tests ---

func TestCheck(t *testing.T) {
	tests := []struct {
		name       string
		pingErr    error
		counter    CollectionCounter
		wantStatus Status
		wantChecks map[string]CheckResult
		wantFunds  int
	}{
		{
			name:       "all healthy",
			counter:    &mockCounter{n: 12},
			wantStatus: Healthy,
			wantChecks: map[string]CheckResult{CheckStorage: CheckOK, CheckCollection: CheckOK},
			wantFunds:  12,
		},
		{
			name:       "malformed collection",
			counter:    &mockCounter{err: errors.New("not an array")},
			wantStatus: Degraded,
			wantChecks: map[string]CheckResult{CheckStorage: CheckOK, CheckCollection: CheckError},
		},
		{
			name:       "storage down",
			pingErr:    errors.New("conn refused"),
			counter:    &mockCounter{err: errors.New("conn refused")},
			wantStatus: Unhealthy,
			wantChecks: map[string]CheckResult{CheckStorage: CheckError, CheckCollection: CheckError},
		},
		{
			name:       "no collection check",
			wantStatus: Healthy,
			wantChecks: map[string]CheckResult{CheckStorage: CheckOK},
		},
		{
			name:       "no collection check, storage down",
			pingErr:    errors.New("fail"),
			wantStatus: Unhealthy,
			wantChecks: map[string]CheckResult{CheckStorage: CheckError},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := New(&mockPinger{err: tt.pingErr}, tt.counter)
			r := svc.Check(context.Background())

			if r.Status != tt.wantStatus {
				t.Errorf("Status = %q, want %q", r.Status, tt.wantStatus)
			}
			if len(r.Checks) != len(tt.wantChecks) {
				t.Errorf("Checks = %v, want %v", r.Checks, tt.wantChecks)
			}
			for k, v := range tt.wantChecks {
				if r.Checks[k] != v {
					t.Errorf("Checks[%s] = %q, want %q", k, r.Checks[k], v)
				}
			}
			if r.Funds != tt.wantFunds {
				t.Errorf("Funds = %d, want %d", r.Funds, tt.wantFunds)
			}
		})
	}
}

package health

import "context"

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates partial failure.
	Degraded Status = "degraded"
	// Unhealthy indicates total failure.
	Unhealthy Status = "error"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

// Check names.
const (
	CheckStorage    = "storage"
	CheckCollection = "collection"
)

// Report aggregates health check results.
type Report struct {
	Status Status
	Checks map[string]CheckResult
	// Funds is the collection size; zero when the collection check failed.
	Funds int
}

// Service coordinates health checks.
type Service struct {
	storage    StoragePinger
	collection CollectionCounter
}

// New creates a Service. collection can be nil.
func New(storage StoragePinger, collection CollectionCounter) *Service {
	return &Service{storage: storage, collection: collection}
}

// Check pings storage and, when configured, loads the collection.
// A readable store holding a malformed collection reports Degraded.
func (s *Service) Check(ctx context.Context) Report {
	r := Report{Checks: make(map[string]CheckResult)}

	if err := s.storage.Ping(ctx); err != nil {
		r.Checks[CheckStorage] = CheckError
	} else {
		r.Checks[CheckStorage] = CheckOK
	}

	if s.collection != nil {
		if n, err := s.collection.Count(ctx); err != nil {
			r.Checks[CheckCollection] = CheckError
		} else {
			r.Checks[CheckCollection] = CheckOK
			r.Funds = n
		}
	}

	failed := 0
	for _, v := range r.Checks {
		if v == CheckError {
			failed++
		}
	}
	switch {
	case failed == 0:
		r.Status = Healthy
	case failed == len(r.Checks):
		r.Status = Unhealthy
	default:
		r.Status = Degraded
	}
	return r
}

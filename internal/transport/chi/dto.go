package chi

import domfund "github.com/kailas-cloud/fundex/internal/domain/fund"

// FundResponse is the JSON representation of a fund.
type FundResponse struct {
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

// DeleteResponse acknowledges a delete.
type DeleteResponse struct {
	Success bool `json:"success"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
	Funds  int               `json:"funds"`
}

func fundToResponse(f domfund.Fund) FundResponse {
	return FundResponse{
		ID:          f.ID(),
		Name:        f.Name(),
		Strategies:  orEmpty(f.Strategies()),
		Geographies: orEmpty(f.Geographies()),
		Currency:    f.Currency(),
		FundSize:    f.FundSize(),
		Vintage:     f.Vintage(),
		Managers:    orEmpty(f.Managers()),
		Description: f.Description(),
	}
}

func fundsToResponse(funds []domfund.Fund) []FundResponse {
	out := make([]FundResponse, len(funds))
	for i, f := range funds {
		out[i] = fundToResponse(f)
	}
	return out
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

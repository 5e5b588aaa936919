package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kailas-cloud/fundex/internal/domain/fund/query"
	"github.com/kailas-cloud/fundex/internal/domain/page"
	"github.com/kailas-cloud/fundex/pkg/client"
)

// filterFlags maps CLI flag names to API query parameters.
var filterFlags = []struct {
	flag, param, usage string
}{
	{"name", query.ParamName, "name contains (case-insensitive)"},
	{"description", query.ParamDescription, "description contains (case-insensitive)"},
	{"currency", query.ParamCurrency, "exact currency code"},
	{"strategy", query.ParamStrategy, "has strategy tag"},
	{"geography", query.ParamGeography, "has geography tag"},
	{"manager", query.ParamManager, "has manager"},
	{"fund-size-min", query.ParamFundSizeMin, "minimum fund size (inclusive)"},
	{"fund-size-max", query.ParamFundSizeMax, "maximum fund size (inclusive)"},
	{"vintage-min", query.ParamVintageMin, "earliest vintage (inclusive)"},
	{"vintage-max", query.ParamVintageMax, "latest vintage (inclusive)"},
	{"sort-by", query.ParamSortBy, "sort field: name, strategies, geographies, currency, fundSize, vintage, managers, description"},
	{"sort-dir", query.ParamSortDir, "sort direction: asc or desc"},
}

func newListCmd(a *app) *cobra.Command {
	var (
		pageNum  int
		pageSize int
		asJSON   bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List funds with filters, sorting and paging",
		Long: `List fetches the filtered, sorted fund list from the server and shows
one page of it. Paging happens locally; a page past the end shows the last page.

Example:
  fundctl list --currency USD --strategy Buyout --sort-by vintage --sort-dir desc
  fundctl list --vintage-min 2019 --page 2 --page-size 20`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			raw := make(map[string]string, len(filterFlags))
			for _, f := range filterFlags {
				if v, _ := cmd.Flags().GetString(f.flag); v != "" {
					raw[f.param] = v
				}
			}
			q := query.FromMap(raw)
			if q.SortBy != "" && !query.Sortable(q.SortBy) {
				return fmt.Errorf("unknown sort field %q", q.SortBy)
			}
			if d := raw[query.ParamSortDir]; d != "" && q.SortDir == "" {
				return fmt.Errorf("sort direction must be asc or desc, got %q", d)
			}

			if !cmd.Flags().Changed("page-size") {
				pageSize = a.cfg.GetInt(cfgKeyPageSize)
			}
			if !page.ValidSize(pageSize) {
				return fmt.Errorf("page size must be one of %s", sizeOptions())
			}

			funds, err := a.api.List(cmd.Context(), toListQuery(q))
			if err != nil {
				return err
			}

			p := page.New(len(funds), pageSize, pageNum)
			visible := page.Slice(funds, p)
			if asJSON {
				return renderJSON(cmd.OutOrStdout(), visible)
			}
			return renderTable(cmd.OutOrStdout(), visible, p)
		},
	}

	for _, f := range filterFlags {
		cmd.Flags().String(f.flag, "", f.usage)
	}
	cmd.Flags().IntVar(&pageNum, "page", 1, "page number (1-based)")
	cmd.Flags().IntVar(&pageSize, "page-size", page.DefaultSize, "rows per page: "+sizeOptions())
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the page as JSON")
	return cmd
}

func toListQuery(q query.Query) client.ListQuery {
	return client.ListQuery{
		Name:        q.Name,
		Currency:    q.Currency,
		Description: q.Description,
		Strategy:    q.Strategy,
		Geography:   q.Geography,
		Manager:     q.Manager,
		FundSizeMin: q.FundSizeMin,
		FundSizeMax: q.FundSizeMax,
		VintageMin:  q.VintageMin,
		VintageMax:  q.VintageMax,
		SortBy:      q.SortBy,
		SortDir:     q.SortDir,
	}
}

func sizeOptions() string {
	s := make([]string, len(page.SizeOptions))
	for i, n := range page.SizeOptions {
		s[i] = fmt.Sprint(n)
	}
	return strings.Join(s, ", ")
}

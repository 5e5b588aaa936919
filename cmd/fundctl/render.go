package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/kailas-cloud/fundex/internal/domain/page"
	"github.com/kailas-cloud/fundex/pkg/client"
)

var (
	colorPrimary = lipgloss.Color("#7C3AED")
	colorMuted   = lipgloss.Color("#6C7086")
	colorBorder  = lipgloss.Color("#45475A")
	colorSuccess = lipgloss.Color("#A6E3A1")

	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).Padding(0, 1)
	cellStyle    = lipgloss.NewStyle().Padding(0, 1)
	mutedStyle   = lipgloss.NewStyle().Foreground(colorMuted)
	labelStyle   = lipgloss.NewStyle().Bold(true).Width(13)
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).MarginBottom(1)
	successStyle = lipgloss.NewStyle().Foreground(colorSuccess)
	currentStyle = lipgloss.NewStyle().Bold(true).Foreground(colorPrimary)
)

var listColumns = []string{"ID", "Name", "Strategies", "Geographies", "Currency", "Fund size", "Vintage", "Managers"}

func fundRow(f client.Fund) []string {
	return []string{
		f.ID,
		f.Name,
		strings.Join(f.Strategies, ", "),
		strings.Join(f.Geographies, ", "),
		f.Currency,
		formatNumber(f.FundSize),
		formatNumber(f.Vintage),
		strings.Join(f.Managers, ", "),
	}
}

func formatNumber(n float64) string {
	return strconv.FormatFloat(n, 'f', -1, 64)
}

// renderTable writes one page of funds followed by a pager line.
func renderTable(w io.Writer, funds []client.Fund, p page.Page) error {
	if p.Total() == 0 {
		_, err := fmt.Fprintln(w, mutedStyle.Render("No funds match the current filters."))
		return err
	}

	rows := make([][]string, len(funds))
	for i, f := range funds {
		rows[i] = fundRow(f)
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorBorder)).
		Headers(listColumns...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})

	if _, err := fmt.Fprintln(w, t.Render()); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, pagerLine(p))
	return err
}

// pagerLine renders e.g. "Page 2 of 20 (200 funds)  1 … [2] 3 4 … 20".
func pagerLine(p page.Page) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Page %d of %d (%d funds) ", p.Number(), p.TotalPages(), p.Total())

	prev := 0
	for _, n := range p.Range() {
		if prev != 0 && n > prev+1 {
			b.WriteString(" …")
		}
		if n == p.Number() {
			b.WriteString(" " + currentStyle.Render("["+strconv.Itoa(n)+"]"))
		} else {
			b.WriteString(" " + strconv.Itoa(n))
		}
		prev = n
	}
	return mutedStyle.Render(b.String())
}

// renderFund writes a detail view of one fund.
func renderFund(w io.Writer, f client.Fund) error {
	lines := []string{titleStyle.Render(f.Name)}
	add := func(label, value string) {
		if value == "" {
			value = mutedStyle.Render("-")
		}
		lines = append(lines, labelStyle.Render(label)+value)
	}
	add("ID", f.ID)
	add("Currency", f.Currency)
	add("Fund size", formatNumber(f.FundSize))
	add("Vintage", formatNumber(f.Vintage))
	add("Strategies", strings.Join(f.Strategies, ", "))
	add("Geographies", strings.Join(f.Geographies, ", "))
	add("Managers", strings.Join(f.Managers, ", "))
	add("Description", f.Description)

	_, err := fmt.Fprintln(w, strings.Join(lines, "\n"))
	return err
}

func renderJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func renderSuccess(w io.Writer, format string, args ...any) error {
	_, err := fmt.Fprintln(w, successStyle.Render(fmt.Sprintf(format, args...)))
	return err
}

// Package components provides reusable TUI components.
package components

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/comparador/quote-aggregator/business/quoting/domain"
	"github.com/comparador/quote-aggregator/internal/money"
)

// QuoteRow is one ranked quote ready for display.
type QuoteRow struct {
	Rank       int
	Provider   string
	Price      string
	Discounted string
	Cheapest   bool
}

// QuotesComponent renders the ranked quote table.
type QuotesComponent struct {
	rows     []QuoteRow
	campaign bool
}

// NewQuotesComponent creates a new quotes component.
func NewQuotesComponent() *QuotesComponent {
	return &QuotesComponent{}
}

// Update replaces the rows with the quotes of result, keeping its order.
func (q *QuotesComponent) Update(result domain.AggregationResult) {
	q.campaign = result.CampaignActive
	q.rows = make([]QuoteRow, 0, len(result.Quotes))

	for i, quote := range result.Quotes {
		row := QuoteRow{
			Rank:     i + 1,
			Provider: quote.ProviderID,
			Price:    money.Format(quote.Price, quote.Currency),
			Cheapest: quote.IsCheapest,
		}
		if quote.HasDiscount() {
			row.Price = money.Format(*quote.OriginalPrice, quote.Currency)
			row.Discounted = money.Format(*quote.DiscountedPrice, quote.Currency)
		}
		q.rows = append(q.rows, row)
	}
}

// Rows returns the current rows.
func (q *QuotesComponent) Rows() []QuoteRow {
	return q.rows
}

// View renders the quotes component.
func (q *QuotesComponent) View() string {
	if len(q.rows) == 0 {
		return lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444")).Render("No quotes available")
	}

	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED")).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)
	cheapestStyle := cellStyle.Foreground(lipgloss.Color("#10B981")).Bold(true)

	headers := []string{"#", "Provider", "Price"}
	if q.campaign {
		headers = []string{"#", "Provider", "Original", "Discounted"}
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("#374151"))).
		Headers(headers...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case row >= 0 && row < len(q.rows) && q.rows[row].Cheapest:
				return cheapestStyle
			default:
				return cellStyle
			}
		})

	for _, row := range q.rows {
		provider := row.Provider
		if row.Cheapest {
			provider = "★ " + provider
		}
		rank := strconv.Itoa(row.Rank)
		if q.campaign {
			discounted := row.Discounted
			if discounted == "" {
				discounted = "-"
			}
			t.Row(rank, provider, row.Price, discounted)
			continue
		}
		t.Row(rank, provider, row.Price)
	}

	return t.Render()
}

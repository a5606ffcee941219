package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/comparador/quote-aggregator/business/quoting/domain"
)

// ErrorsComponent lists providers that returned no quote.
type ErrorsComponent struct {
	errors []domain.ProviderError
}

// NewErrorsComponent creates a new errors component.
func NewErrorsComponent() *ErrorsComponent {
	return &ErrorsComponent{}
}

// Update replaces the listed errors.
func (e *ErrorsComponent) Update(errs []domain.ProviderError) {
	e.errors = append(e.errors[:0], errs...)
}

// View renders the errors component. It is empty when every provider answered.
func (e *ErrorsComponent) View() string {
	if len(e.errors) == 0 {
		return ""
	}

	titleStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	nameStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444")).Bold(true)

	var b strings.Builder
	b.WriteString(titleStyle.Render("PROVIDER ERRORS"))
	for _, pe := range e.errors {
		fmt.Fprintf(&b, "\n├─ %s: %s", nameStyle.Render(pe.ProviderID), pe.Message)
	}
	return b.String()
}

package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/comparador/quote-aggregator/business/quoting/domain"
	"github.com/comparador/quote-aggregator/internal/money"
	"github.com/comparador/quote-aggregator/pkg/ui/components"
)

// Phase represents the current UI phase.
type Phase string

const (
	PhaseFetching Phase = "fetching"
	PhaseDone     Phase = "done"
	PhaseFailed   Phase = "failed"
)

// QuoteFunc runs one aggregation.
type QuoteFunc func(ctx context.Context) (domain.AggregationResult, error)

// Model is the main Bubble Tea model for the TUI.
type Model struct {
	// Components
	quotes *components.QuotesComponent
	errors *components.ErrorsComponent

	keys    KeyMap
	help    help.Model
	spinner spinner.Model

	ctx     context.Context
	quote   QuoteFunc
	request domain.QuoteRequest

	// State
	phase    Phase
	result   domain.AggregationResult
	elapsed  time.Duration
	err      error
	quitting bool
	now      func() time.Time
}

// New creates a new TUI model that fetches quotes for request using quote.
func New(ctx context.Context, request domain.QuoteRequest, quote QuoteFunc) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = SpinnerStyle

	return Model{
		quotes:  components.NewQuotesComponent(),
		errors:  components.NewErrorsComponent(),
		keys:    DefaultKeyMap(),
		help:    help.New(),
		spinner: s,
		ctx:     ctx,
		quote:   quote,
		request: request,
		phase:   PhaseFetching,
		now:     time.Now,
	}
}

// Init starts the spinner and the first fetch.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.fetchCmd())
}

func (m Model) fetchCmd() tea.Cmd {
	ctx, quote, now := m.ctx, m.quote, m.now
	return func() tea.Msg {
		start := now()
		result, err := quote(ctx)
		if err != nil {
			return ErrorMsg{Error: err}
		}
		return ResultMsg{Result: result, Elapsed: now().Sub(start)}
	}
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.Retry):
			if m.phase == PhaseFetching {
				return m, nil
			}
			m.phase = PhaseFetching
			m.err = nil
			return m, tea.Batch(m.spinner.Tick, m.fetchCmd())
		}

	case tea.WindowSizeMsg:
		m.help.Width = msg.Width

	case ResultMsg:
		m.phase = PhaseDone
		m.result = msg.Result
		m.elapsed = msg.Elapsed
		m.quotes.Update(msg.Result)
		m.errors.Update(msg.Result.Errors)
		return m, nil

	case ErrorMsg:
		m.phase = PhaseFailed
		m.err = msg.Error
		return m, nil

	case spinner.TickMsg:
		if m.phase != PhaseFetching {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// Phase returns the current phase.
func (m Model) Phase() Phase {
	return m.phase
}

// Result returns the last aggregation shown.
func (m Model) Result() domain.AggregationResult {
	return m.result
}

// View renders the TUI.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(TitleStyle.Render("CAR INSURANCE QUOTES"))
	b.WriteString("\n")
	b.WriteString(MutedValue.Render(fmt.Sprintf("driver age %d · %s · %s",
		m.request.DriverAge, m.request.CarType, m.request.CarUse)))
	b.WriteString("\n\n")

	switch m.phase {
	case PhaseFetching:
		b.WriteString(m.spinner.View())
		b.WriteString(" Fetching quotes from providers...")

	case PhaseFailed:
		b.WriteString(ErrorStyle.Render("Failed to fetch quotes: "))
		b.WriteString(m.err.Error())

	case PhaseDone:
		b.WriteString(m.summaryView())
		b.WriteString("\n")
		b.WriteString(m.quotes.View())
		if errs := m.errors.View(); errs != "" {
			b.WriteString("\n\n")
			b.WriteString(errs)
		}
	}

	b.WriteString("\n")
	b.WriteString(HelpStyle.Render(m.help.View(m.keys)))
	b.WriteString("\n")
	return b.String()
}

func (m Model) summaryView() string {
	campaign := CampaignOff.Render("campaign off")
	if m.result.CampaignActive {
		campaign = CampaignOn.Render(fmt.Sprintf("campaign on (-%s%%)", m.result.DiscountPercentage.String()))
	}

	line := fmt.Sprintf("%s  │  %d quotes  │  %d errors  │  %s",
		campaign, len(m.result.Quotes), len(m.result.Errors), m.elapsed.Round(time.Millisecond))

	if cheapest, ok := m.result.Cheapest(); ok {
		price := cheapest.EffectivePrice(m.result.CampaignActive)
		line += "\n" + CampaignOn.Render(fmt.Sprintf("Best: %s at %s", cheapest.ProviderID, money.Format(price, cheapest.Currency)))
	}
	return BoxStyle.Render(line)
}

// Run shows the viewer until the user quits.
func Run(ctx context.Context, request domain.QuoteRequest, quote QuoteFunc) error {
	_, err := tea.NewProgram(New(ctx, request, quote), tea.WithContext(ctx)).Run()
	if err != nil && ctx.Err() != nil {
		return nil
	}
	return err
}

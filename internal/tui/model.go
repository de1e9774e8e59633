package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"

	"github.com/horizonfin/horizon/internal/calculation"
	"github.com/horizonfin/horizon/internal/domain"
)

var (
	returnRateStep = decimal.NewFromFloat(0.005)
	hundred        = decimal.NewFromInt(100)
)

// Model is the interactive projection explorer: a summary panel over the
// timeline table, with keys to nudge the expected return rate and target age
// and watch the projection react.
type Model struct {
	engine  *calculation.Engine
	profile domain.Profile
	opts    domain.ScenarioOptions
	base    domain.ScenarioOptions

	calc      *domain.RetirementCalculation
	readiness *domain.ReadinessResult
	table     table.Model

	width  int
	height int
}

// New builds the model and runs the initial projection.
func New(engine *calculation.Engine, profile domain.Profile, opts domain.ScenarioOptions) Model {
	m := Model{
		engine:  engine,
		profile: profile,
		opts:    opts.Normalized(),
		base:    opts.Normalized(),
	}
	m.recalculate()
	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m *Model) recalculate() {
	m.calc = m.engine.CalculateRetirement(m.profile, m.opts)
	m.readiness = m.engine.CalculateRetirementReadiness(m.profile, m.opts.ExpectedReturnRate, m.calc)
	m.rebuildTable()
}

func (m *Model) rebuildTable() {
	columns := []table.Column{
		{Title: "Year", Width: 5},
		{Title: "Age", Width: 4},
		{Title: "Period", Width: 18},
		{Title: "Invested", Width: 14},
		{Title: "Expenses", Width: 12},
		{Title: "Salary", Width: 12},
		{Title: "Pension", Width: 12},
		{Title: "Taxes", Width: 10},
		{Title: "Final", Width: 14},
	}

	rows := make([]table.Row, 0, len(m.calc.Assumptions.Timeline))
	for _, r := range m.calc.Assumptions.Timeline {
		rows = append(rows, table.Row{
			fmt.Sprint(r.Year),
			fmt.Sprint(r.Age),
			r.Period,
			r.ValueInvested.StringFixed(2),
			r.TotalExpenses.StringFixed(2),
			r.TotalIncomeSalary.StringFixed(2),
			r.TotalIncomeRetirement.StringFixed(2),
			r.TaxesOverInvestments.StringFixed(2),
			r.FinalValue.StringFixed(2),
		})
	}

	height := m.height - 14
	if height < 5 {
		height = 10
	}
	m.table = table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(height),
	)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.rebuildTable()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit

		case "+", "=":
			m.opts.ExpectedReturnRate = m.opts.ExpectedReturnRate.Add(returnRateStep)
			if m.opts.ExpectedReturnRate.GreaterThan(decimal.NewFromFloat(0.2)) {
				m.opts.ExpectedReturnRate = decimal.NewFromFloat(0.2)
			}
			m.recalculate()
			return m, nil

		case "-", "_":
			m.opts.ExpectedReturnRate = m.opts.ExpectedReturnRate.Sub(returnRateStep)
			if m.opts.ExpectedReturnRate.IsNegative() {
				m.opts.ExpectedReturnRate = decimal.Zero
			}
			m.recalculate()
			return m, nil

		case "]":
			if m.opts.TargetAge < 120 {
				m.opts.TargetAge++
				m.recalculate()
			}
			return m, nil

		case "[":
			if m.opts.TargetAge > 50 {
				m.opts.TargetAge--
				m.recalculate()
			}
			return m, nil

		case "r":
			m.opts = m.base
			m.recalculate()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/horizonfin/horizon/internal/calculation"
	"github.com/horizonfin/horizon/internal/domain"
)

func testModel(t *testing.T) Model {
	t.Helper()
	engine := calculation.NewEngine()
	engine.Now = func() time.Time { return time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC) }

	profile := domain.Profile{
		BaseAge:                        40,
		TotalAssets:                    decimal.NewFromInt(100000),
		FixedAssets:                    decimal.NewFromInt(20000),
		MonthlySalaryNet:               decimal.NewFromInt(5000),
		GovernmentRetirementIncome:     decimal.NewFromInt(1500),
		MonthlyReturnRate:              decimal.NewFromFloat(0.005),
		InvestmentTaxRate:              decimal.NewFromFloat(0.15),
		EndOfSalaryYears:               25,
		GovernmentRetirementStartYears: 20,
		MonthlyExpenseRecurring:        decimal.NewFromInt(2000),
		Rent:                           decimal.NewFromInt(500),
		AnnualInflation:                decimal.NewFromFloat(0.03),
	}
	return New(engine, profile, domain.DefaultScenarioOptions())
}

func keyPress(m Model, key string) Model {
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)})
	return updated.(Model)
}

func TestNewModelRunsProjection(t *testing.T) {
	m := testModel(t)
	require.NotNil(t, m.calc)
	require.NotNil(t, m.readiness)
	assert.Equal(t, 20, m.calc.YearsToRetirement)
	assert.NotEmpty(t, m.calc.Assumptions.Timeline)
}

func TestViewShowsSummary(t *testing.T) {
	view := testModel(t).View()
	assert.Contains(t, view, "Retirement Projection")
	assert.Contains(t, view, "Years to retirement")
	assert.Contains(t, view, "Readiness score")
	assert.Contains(t, view, "Funds last to age")
}

func TestReturnRateNudging(t *testing.T) {
	m := testModel(t)

	m = keyPress(m, "+")
	assert.True(t, m.opts.ExpectedReturnRate.Equal(decimal.NewFromFloat(0.075)))

	m = keyPress(m, "-")
	m = keyPress(m, "-")
	assert.True(t, m.opts.ExpectedReturnRate.Equal(decimal.NewFromFloat(0.065)))

	// Reset restores the opening scenario.
	m = keyPress(m, "r")
	assert.True(t, m.opts.ExpectedReturnRate.Equal(decimal.NewFromFloat(0.07)))
}

func TestReturnRateFloor(t *testing.T) {
	m := testModel(t)
	for i := 0; i < 20; i++ {
		m = keyPress(m, "-")
	}
	assert.False(t, m.opts.ExpectedReturnRate.IsNegative())
}

func TestTargetAgeBounds(t *testing.T) {
	m := testModel(t)

	m = keyPress(m, "]")
	assert.Equal(t, 101, m.opts.TargetAge)

	for i := 0; i < 60; i++ {
		m = keyPress(m, "[")
	}
	assert.Equal(t, 50, m.opts.TargetAge)
}

func TestQuitKeys(t *testing.T) {
	m := testModel(t)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestDepletionStatusLine(t *testing.T) {
	engine := calculation.NewEngine()
	engine.Now = func() time.Time { return time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC) }

	profile := domain.Profile{
		BaseAge:                 40,
		TotalAssets:             decimal.NewFromInt(80000),
		MonthlySalaryNet:        decimal.NewFromInt(1000),
		EndOfSalaryYears:        30,
		MonthlyExpenseRecurring: decimal.NewFromInt(7000),
		Rent:                    decimal.NewFromInt(500),
		AnnualInflation:         decimal.NewFromFloat(0.03),
	}
	m := New(engine, profile, domain.ScenarioOptions{RetirementDurationYears: 25, TargetAge: 100})

	assert.True(t, strings.Contains(m.statusLine(), "deplete"))
}

package output

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/horizonfin/horizon/internal/domain"
)

func sampleCalculation() *domain.RetirementCalculation {
	return &domain.RetirementCalculation{
		ProfileID:               1,
		MonthlySavings:          decimal.NewFromInt(2500),
		TotalRetirementFund:     decimal.NewFromInt(500000),
		MonthlyRetirementIncome: decimal.NewFromInt(1500),
		YearsToRetirement:       20,
		Assumptions: domain.Assumptions{
			RetirementStartDate: "2025-01-01",
			EndOfSalaryDate:     "2050-06-15",
			Timeline: []domain.TimelineRow{
				{
					Year: 1, Age: 60, Period: "01-2025 - 01-2026",
					ValueInvested: decimal.NewFromInt(500000),
					TotalExpenses: decimal.NewFromInt(31200),
					FinalValue:    decimal.NewFromInt(520000),
				},
				{
					Year: 2, Age: 61, Period: "01-2026 - 01-2027",
					ValueInvested: decimal.NewFromInt(520000),
					TotalExpenses: decimal.NewFromInt(32136),
					FinalValue:    decimal.NewFromInt(-1000),
				},
			},
		},
	}
}

func TestNewFormatter(t *testing.T) {
	for _, name := range []string{"console", "csv", "json"} {
		f, err := NewFormatter(name)
		require.NoError(t, err)
		assert.Equal(t, name, f.Name())
	}

	_, err := NewFormatter("xml")
	assert.Error(t, err)
}

func TestConsoleFormat(t *testing.T) {
	out, err := ConsoleFormatter{}.Format(sampleCalculation())
	require.NoError(t, err)

	text := string(out)
	assert.Contains(t, text, "RETIREMENT PROJECTION")
	assert.Contains(t, text, "01-2025 - 01-2026")
	assert.Contains(t, text, "WARNING: funds deplete at age 61")
}

func TestConsoleFormatEmptyTimeline(t *testing.T) {
	calc := sampleCalculation()
	calc.Assumptions.Timeline = nil

	out, err := ConsoleFormatter{}.Format(calc)
	require.NoError(t, err)
	assert.Contains(t, string(out), "No retirement years")
}

func TestCSVFormat(t *testing.T) {
	out, err := CSVFormatter{}.Format(sampleCalculation())
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	require.Len(t, lines, 3, "header plus two rows")
	assert.True(t, strings.HasPrefix(lines[0], "Year,Age,Period"))
	assert.Contains(t, lines[1], "01-2025 - 01-2026")
	assert.Contains(t, lines[2], "-1000.00")
}

func TestJSONFormat(t *testing.T) {
	out, err := JSONFormatter{}.Format(sampleCalculation())
	require.NoError(t, err)

	text := string(out)
	assert.Contains(t, text, `"years_to_retirement": 20`)
	assert.Contains(t, text, `"timeline"`)
}

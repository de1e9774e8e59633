package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/horizonfin/horizon/internal/domain"
)

const validProfileYAML = `
email: test@example.com
base_age: 40
total_assets: 100000
fixed_assets: 20000
monthly_salary_net: 5000
government_retirement_income: 1500
monthly_return_rate: 0.005
investment_tax_rate: 0.15
end_of_salary_years: 25
government_retirement_start_years: 20
government_retirement_adjustment: 0.02
monthly_expense_recurring: 2000
rent: 500
one_time_annual_expense: 1200
annual_inflation: 0.03
`

func writeTempFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "profile.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadProfileFromFile(t *testing.T) {
	parser := NewInputParser()
	profile, opts, err := parser.LoadProfileFromFile(writeTempFile(t, validProfileYAML))
	require.NoError(t, err)

	assert.Equal(t, "test@example.com", profile.Email)
	assert.Equal(t, 40, profile.BaseAge)
	assert.True(t, profile.MonthlyReturnRate.Equal(decimal.NewFromFloat(0.005)))
	assert.True(t, profile.TotalAssets.Equal(decimal.NewFromInt(100000)))

	// No scenario block falls back to the defaults.
	assert.True(t, opts.ExpectedReturnRate.Equal(decimal.NewFromFloat(0.07)))
	assert.Equal(t, 100, opts.TargetAge)
}

func TestLoadProfileWithScenario(t *testing.T) {
	parser := NewInputParser()
	content := validProfileYAML + `
scenario:
  expected_return_rate: 0.05
  retirement_duration_years: 30
  target_age: 90
`
	_, opts, err := parser.LoadProfileFromFile(writeTempFile(t, content))
	require.NoError(t, err)
	assert.True(t, opts.ExpectedReturnRate.Equal(decimal.NewFromFloat(0.05)))
	assert.Equal(t, 30, opts.RetirementDurationYears)
	assert.Equal(t, 90, opts.TargetAge)
}

func TestLoadProfileFileMissing(t *testing.T) {
	parser := NewInputParser()
	_, _, err := parser.LoadProfileFromFile("no/such/file.yaml")
	assert.Error(t, err)
}

func TestLoadProfileMalformedYAML(t *testing.T) {
	parser := NewInputParser()
	_, _, err := parser.LoadProfileFromFile(writeTempFile(t, "email: [unclosed"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestValidateProfile(t *testing.T) {
	base := func() domain.Profile {
		return domain.Profile{
			Email:                          "test@example.com",
			BaseAge:                        40,
			TotalAssets:                    decimal.NewFromInt(100000),
			FixedAssets:                    decimal.NewFromInt(20000),
			MonthlySalaryNet:               decimal.NewFromInt(5000),
			MonthlyReturnRate:              decimal.NewFromFloat(0.005),
			InvestmentTaxRate:              decimal.NewFromFloat(0.15),
			EndOfSalaryYears:               25,
			GovernmentRetirementStartYears: 20,
			AnnualInflation:                decimal.NewFromFloat(0.03),
		}
	}

	tests := []struct {
		name    string
		mutate  func(*domain.Profile)
		wantErr string
	}{
		{name: "valid", mutate: func(p *domain.Profile) {}},
		{
			name:    "age too low",
			mutate:  func(p *domain.Profile) { p.BaseAge = 17 },
			wantErr: "base age",
		},
		{
			name:    "bad email",
			mutate:  func(p *domain.Profile) { p.Email = "not-an-email" },
			wantErr: "email",
		},
		{
			name:    "bad start date",
			mutate:  func(p *domain.Profile) { p.StartDate = "someday" },
			wantErr: "start date",
		},
		{
			name:    "negative assets",
			mutate:  func(p *domain.Profile) { p.TotalAssets = decimal.NewFromInt(-1) },
			wantErr: "total assets",
		},
		{
			name:    "monthly return rate too high",
			mutate:  func(p *domain.Profile) { p.MonthlyReturnRate = decimal.NewFromFloat(0.06) },
			wantErr: "monthly return rate",
		},
		{
			name:    "tax rate above one",
			mutate:  func(p *domain.Profile) { p.InvestmentTaxRate = decimal.NewFromFloat(1.1) },
			wantErr: "investment tax rate",
		},
		{
			name:    "salary years out of range",
			mutate:  func(p *domain.Profile) { p.EndOfSalaryYears = 51 },
			wantErr: "end of salary years",
		},
		{
			name:    "fixed exceeds total",
			mutate:  func(p *domain.Profile) { p.FixedAssets = decimal.NewFromInt(200000) },
			wantErr: "fixed assets",
		},
		{
			name:    "inflation too high",
			mutate:  func(p *domain.Profile) { p.AnnualInflation = decimal.NewFromFloat(0.25) },
			wantErr: "annual inflation",
		},
	}

	parser := NewInputParser()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := base()
			tt.mutate(&p)
			err := parser.ValidateProfile(&p)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidateScenario(t *testing.T) {
	parser := NewInputParser()

	assert.NoError(t, parser.ValidateScenario(domain.DefaultScenarioOptions()))

	bad := domain.DefaultScenarioOptions()
	bad.ExpectedReturnRate = decimal.NewFromFloat(0.5)
	assert.Error(t, parser.ValidateScenario(bad))

	bad = domain.DefaultScenarioOptions()
	bad.RetirementDurationYears = 5
	assert.Error(t, parser.ValidateScenario(bad))

	bad = domain.DefaultScenarioOptions()
	bad.TargetAge = 130
	assert.Error(t, parser.ValidateScenario(bad))
}

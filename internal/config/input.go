package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/horizonfin/horizon/internal/domain"
)

// InputParser handles parsing and validation of profile input files.
type InputParser struct{}

// NewInputParser creates a new input parser.
func NewInputParser() *InputParser {
	return &InputParser{}
}

// profileInput is the on-disk shape of a profile file: the profile fields at
// the top level, with optional scenario settings alongside.
type profileInput struct {
	Profile  domain.Profile          `yaml:",inline"`
	Scenario *domain.ScenarioOptions `yaml:"scenario,omitempty"`
}

// LoadProfileFromFile loads and validates a profile from a YAML file. The
// returned scenario options are the file's, or the defaults when absent.
func (ip *InputParser) LoadProfileFromFile(filename string) (domain.Profile, domain.ScenarioOptions, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return domain.Profile{}, domain.ScenarioOptions{}, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var input profileInput
	if err := yaml.Unmarshal(data, &input); err != nil {
		return domain.Profile{}, domain.ScenarioOptions{}, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.ValidateProfile(&input.Profile); err != nil {
		return domain.Profile{}, domain.ScenarioOptions{}, fmt.Errorf("profile validation failed: %w", err)
	}

	opts := domain.DefaultScenarioOptions()
	if input.Scenario != nil {
		opts = input.Scenario.Normalized()
		if err := ip.ValidateScenario(opts); err != nil {
			return domain.Profile{}, domain.ScenarioOptions{}, fmt.Errorf("scenario validation failed: %w", err)
		}
	}

	return input.Profile, opts, nil
}

// ValidateProfile checks a profile against the documented field bounds.
func (ip *InputParser) ValidateProfile(p *domain.Profile) error {
	if p.Email != "" && !strings.Contains(p.Email, "@") {
		return fmt.Errorf("email %q is not a valid address", p.Email)
	}
	if p.BaseAge < 18 || p.BaseAge > 100 {
		return fmt.Errorf("base age must be between 18 and 100, got %d", p.BaseAge)
	}
	if p.StartDate != "" {
		if _, err := time.Parse("2006-01-02", p.StartDate); err != nil {
			return fmt.Errorf("start date must be YYYY-MM-DD, got %q", p.StartDate)
		}
	}

	nonNegative := []struct {
		name  string
		value decimal.Decimal
	}{
		{"total assets", p.TotalAssets},
		{"fixed assets", p.FixedAssets},
		{"monthly salary net", p.MonthlySalaryNet},
		{"government retirement income", p.GovernmentRetirementIncome},
		{"monthly expense recurring", p.MonthlyExpenseRecurring},
		{"rent", p.Rent},
		{"one-time annual expense", p.OneTimeAnnualExpense},
	}
	for _, f := range nonNegative {
		if f.value.IsNegative() {
			return fmt.Errorf("%s cannot be negative, got %s", f.name, f.value)
		}
	}

	bounded := []struct {
		name  string
		value decimal.Decimal
		max   decimal.Decimal
	}{
		{"monthly return rate", p.MonthlyReturnRate, decimal.NewFromFloat(0.05)},
		{"investment tax rate", p.InvestmentTaxRate, decimal.NewFromInt(1)},
		{"government retirement adjustment", p.GovernmentRetirementAdjustment, decimal.NewFromFloat(0.1)},
		{"annual inflation", p.AnnualInflation, decimal.NewFromFloat(0.2)},
	}
	if p.FixedAssetsGrowthRate != nil {
		bounded = append(bounded, struct {
			name  string
			value decimal.Decimal
			max   decimal.Decimal
		}{"fixed assets growth rate", *p.FixedAssetsGrowthRate, decimal.NewFromFloat(0.2)})
	}
	if p.InvestmentTaxablePercentage != nil {
		bounded = append(bounded, struct {
			name  string
			value decimal.Decimal
			max   decimal.Decimal
		}{"investment taxable percentage", *p.InvestmentTaxablePercentage, decimal.NewFromInt(1)})
	}
	for _, f := range bounded {
		if f.value.IsNegative() || f.value.GreaterThan(f.max) {
			return fmt.Errorf("%s must be between 0 and %s, got %s", f.name, f.max, f.value)
		}
	}

	if p.EndOfSalaryYears < 0 || p.EndOfSalaryYears > 50 {
		return fmt.Errorf("end of salary years must be between 0 and 50, got %d", p.EndOfSalaryYears)
	}
	if p.GovernmentRetirementStartYears < 0 || p.GovernmentRetirementStartYears > 100 {
		return fmt.Errorf("government retirement start years must be between 0 and 100, got %d", p.GovernmentRetirementStartYears)
	}
	if p.FixedAssets.GreaterThan(p.TotalAssets) {
		return fmt.Errorf("fixed assets (%s) cannot exceed total assets (%s)", p.FixedAssets, p.TotalAssets)
	}
	return nil
}

// ValidateScenario checks scenario options against the documented bounds.
func (ip *InputParser) ValidateScenario(o domain.ScenarioOptions) error {
	if o.ExpectedReturnRate.IsNegative() || o.ExpectedReturnRate.GreaterThan(decimal.NewFromFloat(0.2)) {
		return fmt.Errorf("expected return rate must be between 0 and 0.2, got %s", o.ExpectedReturnRate)
	}
	if o.RetirementDurationYears < 10 || o.RetirementDurationYears > 50 {
		return fmt.Errorf("retirement duration must be between 10 and 50 years, got %d", o.RetirementDurationYears)
	}
	if o.TargetAge < 50 || o.TargetAge > 120 {
		return fmt.Errorf("target age must be between 50 and 120, got %d", o.TargetAge)
	}
	return nil
}

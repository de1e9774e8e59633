package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Profile is an immutable snapshot of a person's financial situation. All
// monetary amounts are monthly net figures unless noted otherwise.
type Profile struct {
	ID        int64  `yaml:"id" json:"id"`
	Email     string `yaml:"email" json:"email"`
	BaseAge   int    `yaml:"base_age" json:"base_age"`
	StartDate string `yaml:"start_date,omitempty" json:"start_date,omitempty"` // ISO date, optional

	TotalAssets                decimal.Decimal `yaml:"total_assets" json:"total_assets"`
	FixedAssets                decimal.Decimal `yaml:"fixed_assets" json:"fixed_assets"`
	MonthlySalaryNet           decimal.Decimal `yaml:"monthly_salary_net" json:"monthly_salary_net"`
	GovernmentRetirementIncome decimal.Decimal `yaml:"government_retirement_income" json:"government_retirement_income"`

	MonthlyReturnRate           decimal.Decimal  `yaml:"monthly_return_rate" json:"monthly_return_rate"`
	FixedAssetsGrowthRate       *decimal.Decimal `yaml:"fixed_assets_growth_rate,omitempty" json:"fixed_assets_growth_rate,omitempty"` // annual, default 0.04
	InvestmentTaxRate           decimal.Decimal  `yaml:"investment_tax_rate" json:"investment_tax_rate"`
	InvestmentTaxablePercentage *decimal.Decimal `yaml:"investment_taxable_percentage,omitempty" json:"investment_taxable_percentage,omitempty"` // default 1.0

	EndOfSalaryYears               int             `yaml:"end_of_salary_years" json:"end_of_salary_years"`
	GovernmentRetirementStartYears int             `yaml:"government_retirement_start_years" json:"government_retirement_start_years"`
	GovernmentRetirementAdjustment decimal.Decimal `yaml:"government_retirement_adjustment" json:"government_retirement_adjustment"` // annual COLA

	MonthlyExpenseRecurring decimal.Decimal `yaml:"monthly_expense_recurring" json:"monthly_expense_recurring"`
	Rent                    decimal.Decimal `yaml:"rent" json:"rent"`
	OneTimeAnnualExpense    decimal.Decimal `yaml:"one_time_annual_expense" json:"one_time_annual_expense"`
	AnnualInflation         decimal.Decimal `yaml:"annual_inflation" json:"annual_inflation"`

	LastCalculation *time.Time `yaml:"last_calculation,omitempty" json:"last_calculation,omitempty"`
	CreatedAt       time.Time  `yaml:"created_at,omitempty" json:"created_at,omitempty"`
	UpdatedAt       time.Time  `yaml:"updated_at,omitempty" json:"updated_at,omitempty"`
}

var (
	defaultFixedAssetsGrowthRate = decimal.NewFromFloat(0.04)
	defaultTaxablePercentage     = decimal.NewFromInt(1)
)

// Normalized returns a copy with optional fields resolved to their defaults.
// Downstream code reads the resolved values directly and never falls back on
// its own.
func (p Profile) Normalized() Profile {
	if p.FixedAssetsGrowthRate == nil {
		v := defaultFixedAssetsGrowthRate
		p.FixedAssetsGrowthRate = &v
	}
	if p.InvestmentTaxablePercentage == nil {
		v := defaultTaxablePercentage
		p.InvestmentTaxablePercentage = &v
	}
	return p
}

// MonthlyExpensesBase returns the un-inflated recurring monthly outflow
// (recurring expenses plus rent, excluding the one-time annual expense).
func (p Profile) MonthlyExpensesBase() decimal.Decimal {
	return p.MonthlyExpenseRecurring.Add(p.Rent)
}

// LiquidAssets returns the investable portion of the portfolio, floored at
// zero.
func (p Profile) LiquidAssets() decimal.Decimal {
	liquid := p.TotalAssets.Sub(p.FixedAssets)
	if liquid.IsNegative() {
		return decimal.Zero
	}
	return liquid
}

// ScenarioOptions parameterize a single projection run.
type ScenarioOptions struct {
	ExpectedReturnRate      decimal.Decimal `yaml:"expected_return_rate" json:"expected_return_rate"` // annual
	RetirementDurationYears int             `yaml:"retirement_duration_years" json:"retirement_duration_years"`
	TargetAge               int             `yaml:"target_age" json:"target_age"`
}

// DefaultScenarioOptions mirrors the documented API defaults: 7% expected
// annual return, 25 years of retirement, simulate until age 100.
func DefaultScenarioOptions() ScenarioOptions {
	return ScenarioOptions{
		ExpectedReturnRate:      decimal.NewFromFloat(0.07),
		RetirementDurationYears: 25,
		TargetAge:               100,
	}
}

// Normalized fills unset fields with the documented defaults.
func (o ScenarioOptions) Normalized() ScenarioOptions {
	def := DefaultScenarioOptions()
	if o.ExpectedReturnRate.IsZero() && o.RetirementDurationYears == 0 && o.TargetAge == 0 {
		return def
	}
	if o.RetirementDurationYears == 0 {
		o.RetirementDurationYears = def.RetirementDurationYears
	}
	if o.TargetAge == 0 {
		o.TargetAge = def.TargetAge
	}
	return o
}

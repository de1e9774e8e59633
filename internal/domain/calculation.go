package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TimelineRow is one simulated retirement year. Rows are append-only and
// never mutated after emission; monetary fields are rounded to cents.
type TimelineRow struct {
	Year                  int             `json:"year"` // 1-based, relative to retirement start
	Age                   int             `json:"age"`
	Period                string          `json:"period"` // "MM-YYYY - MM-YYYY"
	ValueInvested         decimal.Decimal `json:"value_invested"`
	TotalExpenses         decimal.Decimal `json:"total_expenses"`
	TotalIncomeSalary     decimal.Decimal `json:"total_income_salary"`
	TotalIncomeRetirement decimal.Decimal `json:"total_income_retirement"`
	TotalToBeAdded        decimal.Decimal `json:"total_to_be_added"`
	TaxesOverInvestments  decimal.Decimal `json:"taxes_over_investments"`
	NetCashflow           decimal.Decimal `json:"net_cashflow"`
	FinalValue            decimal.Decimal `json:"final_value"`
}

// Depleted reports whether the row's post-tax balance fell below zero.
func (r TimelineRow) Depleted() bool {
	return r.FinalValue.IsNegative()
}

// Assumptions records the inputs and anchors a calculation was run with,
// alongside the full projected timeline.
type Assumptions struct {
	ExpectedReturnRate      decimal.Decimal `json:"expected_return_rate"`
	RetirementDurationYears int             `json:"retirement_duration_years"`
	InflationRate           decimal.Decimal `json:"inflation_rate"`
	MonthlyExpenses         decimal.Decimal `json:"monthly_expenses"`
	MonthlyGrowthUsed       decimal.Decimal `json:"monthly_growth_used"`
	RetirementStartDate     string          `json:"retirement_start_date"`
	EndOfSalaryDate         string          `json:"end_of_salary_date"`
	Timeline                []TimelineRow   `json:"timeline"`
	TargetAge               int             `json:"target_age"`
	FixedAssetsAtRetirement decimal.Decimal `json:"fixed_assets_at_retirement"`
	FixedAssetsGrowthRate   decimal.Decimal `json:"fixed_assets_growth_rate"`
}

// RetirementCalculation is the aggregate result of one projection run.
type RetirementCalculation struct {
	ProfileID               int64           `json:"profile_id"`
	MonthlySavings          decimal.Decimal `json:"monthly_savings"`           // baseline, un-inflated
	TotalRetirementFund     decimal.Decimal `json:"total_retirement_fund"`     // balance at retirement start
	MonthlyRetirementIncome decimal.Decimal `json:"monthly_retirement_income"` // government pension, verbatim
	YearsToRetirement       int             `json:"years_to_retirement"`
	CalculationDate         time.Time       `json:"calculation_date"`
	Assumptions             Assumptions     `json:"assumptions"`
}

// ReadinessResult is the derived readiness assessment. It is computed on
// demand and never persisted.
type ReadinessResult struct {
	ReadinessScore            decimal.Decimal        `json:"readiness_score"` // 0-100
	CurrentSavingsRate        decimal.Decimal        `json:"current_savings_rate"`
	RecommendedSavingsRate    decimal.Decimal        `json:"recommended_savings_rate"`
	MonthlySavings            decimal.Decimal        `json:"monthly_savings"`
	ProjectedRetirementIncome decimal.Decimal        `json:"projected_retirement_income"`
	CurrentMonthlyExpenses    decimal.Decimal        `json:"current_monthly_expenses"`
	Recommendations           []string               `json:"recommendations"`
	Calculation               *RetirementCalculation `json:"calculation"`
}

// SavingsAssumptions records the rates behind a required-savings estimate.
type SavingsAssumptions struct {
	ExpectedReturnRate decimal.Decimal `json:"expected_return_rate"`
	InflationRate      decimal.Decimal `json:"inflation_rate"`
	SafeWithdrawalRate decimal.Decimal `json:"safe_withdrawal_rate"`
}

// RequiredSavings is the closed-form answer to "how much must I put away each
// month to afford a target retirement income".
type RequiredSavings struct {
	RequiredMonthlySavings decimal.Decimal    `json:"required_monthly_savings"`
	RequiredRetirementFund decimal.Decimal    `json:"required_retirement_fund"`
	TargetMonthlyIncome    decimal.Decimal    `json:"target_monthly_income"`
	TargetAnnualIncome     decimal.Decimal    `json:"target_annual_income"`
	YearsToRetirement      int                `json:"years_to_retirement"`
	Assumptions            SavingsAssumptions `json:"assumptions"`
}

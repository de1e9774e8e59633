package calculation

import (
	"github.com/horizonfin/horizon/internal/domain"
	"github.com/shopspring/decimal"
)

// SafeWithdrawalRate is the classic 4% rule used to size the required fund.
var SafeWithdrawalRate = decimal.NewFromFloat(0.04)

// CalculateRequiredSavings back-solves the level monthly contribution needed
// to sustain a target monthly income in retirement: the target is inflated
// to future dollars, sized into a fund with the safe withdrawal rate, and
// amortized with the future-value-of-annuity formula. Independent of the
// projection loop; pure and stateless.
func CalculateRequiredSavings(targetMonthlyIncome decimal.Decimal, yearsToRetirement int, expectedReturnRate, inflationRate decimal.Decimal) *domain.RequiredSavings {
	inflationAdjustment := onePlus(inflationRate).Pow(decimal.NewFromInt(int64(yearsToRetirement)))
	targetAnnualIncome := targetMonthlyIncome.Mul(decimalTwelve).Mul(inflationAdjustment)

	requiredFund := targetAnnualIncome.Div(SafeWithdrawalRate)

	months := decimal.NewFromInt(int64(yearsToRetirement * 12))
	var requiredMonthly decimal.Decimal
	if expectedReturnRate.IsPositive() {
		monthlyRate := expectedReturnRate.Div(decimalTwelve)
		// FV of an annuity: ((1+r)^n - 1) / r.
		annuityFactor := onePlus(monthlyRate).Pow(months).Sub(decimalOne).Div(monthlyRate)
		requiredMonthly = requiredFund.Div(annuityFactor)
	} else {
		// Zero return degenerates to straight division over the months.
		requiredMonthly = requiredFund.Div(months)
	}

	return &domain.RequiredSavings{
		RequiredMonthlySavings: requiredMonthly,
		RequiredRetirementFund: requiredFund,
		TargetMonthlyIncome:    targetMonthlyIncome,
		TargetAnnualIncome:     targetAnnualIncome,
		YearsToRetirement:      yearsToRetirement,
		Assumptions: domain.SavingsAssumptions{
			ExpectedReturnRate: expectedReturnRate,
			InflationRate:      inflationRate,
			SafeWithdrawalRate: SafeWithdrawalRate,
		},
	}
}

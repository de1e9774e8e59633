package calculation

import (
	"github.com/horizonfin/horizon/internal/domain"
	"github.com/shopspring/decimal"
)

// RecommendedSavingsRate is the savings-discipline benchmark: 15% of net
// salary.
var RecommendedSavingsRate = decimal.NewFromFloat(0.15)

var (
	weightSavings   = decimal.NewFromInt(40)
	weightEmergency = decimal.NewFromInt(20)
	weightCoverage  = decimal.NewFromInt(30)
	weightLeftover  = decimal.NewFromInt(10)

	decimalSix     = decimal.NewFromInt(6)
	decimalTwo     = decimal.NewFromInt(2)
	decimalHundred = decimal.NewFromInt(100)
	pointEight     = decimal.NewFromFloat(0.8)
	pointFive      = decimal.NewFromFloat(0.5)
)

// Advisory strings, appended in a fixed order when their thresholds are
// breached.
const (
	adviceRaiseSavingsRate = "Increase your monthly savings rate to at least 15% of your income"
	adviceEmergencyFund    = "Build an emergency fund of 3-6 months of expenses"
	advicePensionShortfall = "Consider increasing your retirement savings or working longer"
	adviceCoverageGap      = "Funds may not last to age 100—consider reducing expenses, increasing savings, or delaying retirement"
	adviceThinBuffer       = "End-of-horizon reserves are low—aim for a larger buffer (e.g., 2 years of expenses)"
)

// CalculateRetirementReadiness scores how prepared the profile is for
// retirement on a 0-100 scale: savings discipline 40%, liquidity buffer 20%,
// longevity coverage 30%, terminal buffer 10%. When calc is nil a projection
// is run with default assumptions at the given expected return rate.
func (e *Engine) CalculateRetirementReadiness(profile domain.Profile, expectedReturnRate decimal.Decimal, calc *domain.RetirementCalculation) *domain.ReadinessResult {
	profile = profile.Normalized()
	if calc == nil {
		opts := domain.DefaultScenarioOptions()
		opts.ExpectedReturnRate = expectedReturnRate
		calc = e.CalculateRetirement(profile, opts)
	}

	monthlyExpenses := profile.MonthlyExpensesBase()
	monthlySavings := profile.MonthlySalaryNet.Sub(monthlyExpenses)

	savingsRate := decimal.Zero
	if profile.MonthlySalaryNet.IsPositive() {
		savingsRate = monthlySavings.Div(profile.MonthlySalaryNet)
	}

	// Emergency fund target: six months of expenses, floored at 1 to keep
	// the ratio defined for zero-expense profiles.
	emergencyTarget := decimal.Max(monthlyExpenses.Mul(decimalSix), decimalOne)
	emergencyRatio := clamp01(profile.TotalAssets.Div(emergencyTarget))

	timeline := calc.Assumptions.Timeline
	depletionIndex := -1
	for i, row := range timeline {
		if row.Depleted() {
			depletionIndex = i
			break
		}
	}

	ageAtHorizon := profile.BaseAge
	switch {
	case depletionIndex >= 0:
		ageAtHorizon = timeline[depletionIndex].Age
	case len(timeline) > 0:
		ageAtHorizon = timeline[len(timeline)-1].Age
	}

	neededYears := 100 - profile.BaseAge
	if neededYears < 1 {
		neededYears = 1
	}
	coveredYears := ageAtHorizon - profile.BaseAge
	if coveredYears < 0 {
		coveredYears = 0
	}
	coverageRatio := clamp01(decimal.NewFromInt(int64(coveredYears)).Div(decimal.NewFromInt(int64(neededYears))))

	// Terminal buffer: leftover funds against two years of current
	// expenses; zero when the projection depletes.
	leftover := decimal.Zero
	if depletionIndex < 0 && len(timeline) > 0 {
		leftover = timeline[len(timeline)-1].FinalValue
	}
	bufferTarget := decimal.Max(monthlyExpenses.Mul(decimalTwelve).Mul(decimalTwo), decimalOne)
	leftoverRatio := clamp01(leftover.Div(bufferTarget))

	score := clamp01(savingsRate.Div(RecommendedSavingsRate)).Mul(weightSavings).
		Add(emergencyRatio.Mul(weightEmergency)).
		Add(coverageRatio.Mul(weightCoverage)).
		Add(leftoverRatio.Mul(weightLeftover))
	if score.GreaterThan(decimalHundred) {
		score = decimalHundred
	}
	if score.IsNegative() {
		score = decimal.Zero
	}

	var recommendations []string
	if savingsRate.LessThan(RecommendedSavingsRate) {
		recommendations = append(recommendations, adviceRaiseSavingsRate)
	}
	if profile.TotalAssets.LessThan(profile.MonthlySalaryNet.Mul(decimalSix)) {
		recommendations = append(recommendations, adviceEmergencyFund)
	}
	if calc.MonthlyRetirementIncome.LessThan(monthlyExpenses.Mul(pointEight)) {
		recommendations = append(recommendations, advicePensionShortfall)
	}
	if coverageRatio.LessThan(decimalOne) {
		recommendations = append(recommendations, adviceCoverageGap)
	}
	if leftoverRatio.LessThan(pointFive) && depletionIndex < 0 {
		recommendations = append(recommendations, adviceThinBuffer)
	}

	return &domain.ReadinessResult{
		ReadinessScore:            score,
		CurrentSavingsRate:        savingsRate,
		RecommendedSavingsRate:    RecommendedSavingsRate,
		MonthlySavings:            monthlySavings,
		ProjectedRetirementIncome: calc.MonthlyRetirementIncome,
		CurrentMonthlyExpenses:    monthlyExpenses,
		Recommendations:           recommendations,
		Calculation:               calc,
	}
}

func clamp01(v decimal.Decimal) decimal.Decimal {
	if v.IsNegative() {
		return decimal.Zero
	}
	if v.GreaterThan(decimalOne) {
		return decimalOne
	}
	return v
}

package calculation

import (
	"time"

	"github.com/horizonfin/horizon/internal/domain"
	"github.com/shopspring/decimal"
)

var (
	decimalOne    = decimal.NewFromInt(1)
	decimalTwelve = decimal.NewFromInt(12)
)

// maxSimulatedYears bounds the projection loop regardless of the other stop
// conditions, so pathological inputs terminate with a truncated timeline
// instead of spinning.
const maxSimulatedYears = 200

// Engine runs retirement projections. It is stateless and safe for
// concurrent use; every invocation allocates its own simulation state.
type Engine struct {
	// Now supplies the wall-clock date the anchors resolve against.
	// Injectable so results are reproducible under test.
	Now func() time.Time
}

// NewEngine creates an engine anchored to the real clock.
func NewEngine() *Engine {
	return &Engine{Now: time.Now}
}

func (e *Engine) today() time.Time {
	if e.Now != nil {
		return e.Now().UTC()
	}
	return time.Now().UTC()
}

// simParams are the per-run constants of the fold, resolved once up front.
type simParams struct {
	profile      domain.Profile
	anchors      Anchors
	growth       decimal.Decimal // monthly
	expensesBase decimal.Decimal // recurring + rent, un-inflated
}

// yearState is the running state of the fold. Each step takes a state by
// value and returns the successor, so a single transition can be tested in
// isolation.
type yearState struct {
	index            int
	balance          decimal.Decimal
	taxes            taxAccrual
	pension          decimal.Decimal
	fundAtRetirement *decimal.Decimal
}

// CalculateRetirement projects the profile's finances year by year until the
// target age, depletion, or the iteration cap, and assembles the aggregate
// result. The input is assumed validated upstream; within that domain the
// calculation never fails.
func (e *Engine) CalculateRetirement(profile domain.Profile, opts domain.ScenarioOptions) *domain.RetirementCalculation {
	profile = profile.Normalized()
	opts = opts.Normalized()
	now := e.today()

	anchors := ResolveAnchors(profile, now)
	params := simParams{
		profile:      profile,
		anchors:      anchors,
		growth:       MonthlyGrowthRate(profile, opts.ExpectedReturnRate),
		expensesBase: profile.MonthlyExpensesBase(),
	}

	st := yearState{
		balance: profile.LiquidAssets(),
		pension: profile.GovernmentRetirementIncome,
	}

	var timeline []domain.TimelineRow
	for st.index < maxSimulatedYears {
		if profile.BaseAge+st.index > opts.TargetAge {
			break
		}
		var row *domain.TimelineRow
		st, row = stepYear(params, st)
		if row != nil {
			timeline = append(timeline, *row)
		}
		// Depletion ends the projection; the depleted year's row, if in the
		// retirement phase, stays as the last row.
		if st.balance.IsNegative() {
			break
		}
	}

	totalRetirementFund := st.balance
	if st.fundAtRetirement != nil {
		totalRetirementFund = *st.fundAtRetirement
	}

	fixedGrowth := *profile.FixedAssetsGrowthRate
	fixedAssetsAtRetirement := profile.FixedAssets.Mul(
		onePlus(fixedGrowth).Pow(decimal.NewFromInt(int64(anchors.YearsToRetirement))))

	return &domain.RetirementCalculation{
		ProfileID:           profile.ID,
		MonthlySavings:      profile.MonthlySalaryNet.Sub(params.expensesBase),
		TotalRetirementFund: totalRetirementFund,
		// Deliberately the profile's government pension verbatim, not a
		// safe-withdrawal-rate estimate on the simulated fund.
		MonthlyRetirementIncome: profile.GovernmentRetirementIncome,
		YearsToRetirement:       anchors.YearsToRetirement,
		CalculationDate:         now,
		Assumptions: domain.Assumptions{
			ExpectedReturnRate:      opts.ExpectedReturnRate,
			RetirementDurationYears: opts.RetirementDurationYears,
			InflationRate:           profile.AnnualInflation,
			MonthlyExpenses:         params.expensesBase,
			MonthlyGrowthUsed:       params.growth,
			RetirementStartDate:     anchors.TimelineStart.Format("2006-01-02"),
			EndOfSalaryDate:         anchors.EndOfSalary.Format("2006-01-02"),
			Timeline:                timeline,
			TargetAge:               opts.TargetAge,
			FixedAssetsAtRetirement: fixedAssetsAtRetirement,
			FixedAssetsGrowthRate:   fixedGrowth,
		},
	}
}

// stepYear advances the fold by one simulated year: twelve months of
// inflation-scaled cashflows compounded into the balance, then tax
// settlement, row emission and the accrual of next year's liability.
func stepYear(params simParams, st yearState) (yearState, *domain.TimelineRow) {
	anchors := params.anchors
	profile := params.profile

	anchorMonth := anchors.TimelineStart.Month()
	currentYear := anchors.BaseYear + st.index
	startYear := anchors.TimelineStart.Year()
	yearStart := time.Date(currentYear, anchorMonth, 1, 0, 0, 0, 0, time.UTC)
	age := profile.BaseAge + st.index

	inRetirement := currentYear >= startYear
	yearsSinceRetirement := currentYear - startYear
	if yearsSinceRetirement < 0 {
		yearsSinceRetirement = 0
	}

	// Year 1 of retirement carries no extra inflation relative to the
	// anchor; pre-retirement years inflate from simulation start.
	inflationYears := st.index
	if inRetirement {
		inflationYears = yearsSinceRetirement
	}
	inflationFactor := onePlus(profile.AnnualInflation).Pow(decimal.NewFromInt(int64(inflationYears)))

	monthlyExpense := params.expensesBase.Mul(inflationFactor)
	monthlyOneTime := profile.OneTimeAnnualExpense.Mul(inflationFactor).Div(decimalTwelve)
	totalMonthlyExpense := monthlyExpense.Add(monthlyOneTime)

	// Salary end date is exclusive.
	monthlySalary := decimal.Zero
	if yearStart.Before(anchors.EndOfSalary) {
		monthlySalary = profile.MonthlySalaryNet.Mul(inflationFactor)
	}

	balance := st.balance
	var totalExpenses, totalSalary, totalPension decimal.Decimal
	for m := 0; m < 12; m++ {
		monthDate := yearStart.AddDate(0, m, 0)

		// The pension amount is flat within a year; whether it is received
		// depends on the government retirement start date, not the timeline
		// start.
		pensionReceived := decimal.Zero
		if !monthDate.Before(anchors.GovernmentRetirementStart) {
			pensionReceived = st.pension
		}

		net := monthlySalary.Add(pensionReceived).Sub(totalMonthlyExpense)
		if params.growth.IsPositive() {
			balance = balance.Mul(onePlus(params.growth)).Add(net)
		} else {
			balance = balance.Add(net)
		}

		totalExpenses = totalExpenses.Add(totalMonthlyExpense)
		totalSalary = totalSalary.Add(monthlySalary)
		totalPension = totalPension.Add(pensionReceived)
	}

	next := st
	finalBeforeTax := balance

	// Snapshot the pre-growth balance the year retirement starts, and drop
	// any carried liability so the first displayed tax figure is zero.
	if currentYear == startYear && next.fundAtRetirement == nil {
		fund := st.balance
		next.fundAtRetirement = &fund
		next.taxes.Reset()
	}

	taxesPaid := next.taxes.Settle()
	finalValue := finalBeforeTax.Sub(taxesPaid)
	totalToBeAdded := finalBeforeTax.Sub(st.balance)
	netCashflow := totalSalary.Add(totalPension).Sub(totalExpenses)

	var row *domain.TimelineRow
	if inRetirement {
		displayStart := time.Date(startYear+yearsSinceRetirement, anchorMonth, 1, 0, 0, 0, 0, time.UTC)
		displayEnd := displayStart.AddDate(1, 0, 0)
		row = &domain.TimelineRow{
			Year:                  yearsSinceRetirement + 1,
			Age:                   age,
			Period:                displayStart.Format("01-2006") + " - " + displayEnd.Format("01-2006"),
			ValueInvested:         st.balance.Round(2),
			TotalExpenses:         totalExpenses.Round(2),
			TotalIncomeSalary:     totalSalary.Round(2),
			TotalIncomeRetirement: totalPension.Round(2),
			TotalToBeAdded:        totalToBeAdded.Round(2),
			TaxesOverInvestments:  taxesPaid.Round(2),
			NetCashflow:           netCashflow.Round(2),
			FinalValue:            finalValue.Round(2),
		}
	}

	// Gain attributable to returns, excluding contributions, feeds next
	// year's liability.
	gain := finalBeforeTax.Sub(st.balance).Sub(netCashflow)
	next.taxes.Accrue(gain, profile.InvestmentTaxRate, *profile.InvestmentTaxablePercentage)

	next.balance = finalValue
	next.pension = st.pension.Mul(onePlus(profile.GovernmentRetirementAdjustment))
	next.index = st.index + 1
	return next, row
}

func onePlus(rate decimal.Decimal) decimal.Decimal {
	return decimalOne.Add(rate)
}

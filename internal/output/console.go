package output

import (
	"bytes"
	"fmt"
	"text/tabwriter"

	"github.com/horizonfin/horizon/internal/domain"
)

// ConsoleFormatter renders the projection as a plain-text report with an
// aligned timeline table.
type ConsoleFormatter struct{}

func (ConsoleFormatter) Name() string { return "console" }

func (ConsoleFormatter) Format(calc *domain.RetirementCalculation) ([]byte, error) {
	buf := &bytes.Buffer{}

	fmt.Fprintln(buf, "==============================================================================")
	fmt.Fprintln(buf, "RETIREMENT PROJECTION")
	fmt.Fprintln(buf, "==============================================================================")
	fmt.Fprintln(buf)
	fmt.Fprintf(buf, "Years to retirement:       %d\n", calc.YearsToRetirement)
	fmt.Fprintf(buf, "Retirement starts:         %s\n", calc.Assumptions.RetirementStartDate)
	fmt.Fprintf(buf, "Salary ends:               %s\n", calc.Assumptions.EndOfSalaryDate)
	fmt.Fprintf(buf, "Monthly savings:           %s\n", calc.MonthlySavings.StringFixed(2))
	fmt.Fprintf(buf, "Fund at retirement:        %s\n", calc.TotalRetirementFund.StringFixed(2))
	fmt.Fprintf(buf, "Fixed assets at retirement: %s\n", calc.Assumptions.FixedAssetsAtRetirement.StringFixed(2))
	fmt.Fprintf(buf, "Monthly retirement income: %s\n", calc.MonthlyRetirementIncome.StringFixed(2))
	fmt.Fprintf(buf, "Monthly growth used:       %s\n", calc.Assumptions.MonthlyGrowthUsed.String())
	fmt.Fprintln(buf)

	if len(calc.Assumptions.Timeline) == 0 {
		fmt.Fprintln(buf, "No retirement years fall within the simulated horizon.")
		return buf.Bytes(), nil
	}

	w := tabwriter.NewWriter(buf, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(w, "Year\tAge\tPeriod\tInvested\tExpenses\tSalary\tPension\tTaxes\tNet Flow\tFinal\t")
	for _, row := range calc.Assumptions.Timeline {
		fmt.Fprintf(w, "%d\t%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t\n",
			row.Year, row.Age, row.Period,
			row.ValueInvested.StringFixed(2),
			row.TotalExpenses.StringFixed(2),
			row.TotalIncomeSalary.StringFixed(2),
			row.TotalIncomeRetirement.StringFixed(2),
			row.TaxesOverInvestments.StringFixed(2),
			row.NetCashflow.StringFixed(2),
			row.FinalValue.StringFixed(2))
	}
	if err := w.Flush(); err != nil {
		return nil, err
	}

	if last := calc.Assumptions.Timeline[len(calc.Assumptions.Timeline)-1]; last.Depleted() {
		fmt.Fprintf(buf, "\nWARNING: funds deplete at age %d.\n", last.Age)
	}
	return buf.Bytes(), nil
}

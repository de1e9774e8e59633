package output

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/horizonfin/horizon/internal/domain"
)

// CSVFormatter writes the timeline as CSV, one row per simulated year.
type CSVFormatter struct{}

func (CSVFormatter) Name() string { return "csv" }

func (CSVFormatter) Format(calc *domain.RetirementCalculation) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)

	header := []string{
		"Year", "Age", "Period", "ValueInvested", "TotalExpenses",
		"TotalIncomeSalary", "TotalIncomeRetirement", "TotalToBeAdded",
		"TaxesOverInvestments", "NetCashflow", "FinalValue",
	}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	for _, row := range calc.Assumptions.Timeline {
		record := []string{
			strconv.Itoa(row.Year),
			strconv.Itoa(row.Age),
			row.Period,
			row.ValueInvested.StringFixed(2),
			row.TotalExpenses.StringFixed(2),
			row.TotalIncomeSalary.StringFixed(2),
			row.TotalIncomeRetirement.StringFixed(2),
			row.TotalToBeAdded.StringFixed(2),
			row.TaxesOverInvestments.StringFixed(2),
			row.NetCashflow.StringFixed(2),
			row.FinalValue.StringFixed(2),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	w.Flush()
	return buf.Bytes(), w.Error()
}

package tui

import (
	"fmt"
	"strings"
)

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Retirement Projection"))
	b.WriteString("\n\n")

	metric := func(label, value string) {
		b.WriteString(metricLabelStyle.Render(label))
		b.WriteString(metricValueStyle.Render(value))
		b.WriteByte('\n')
	}

	metric("Expected annual return", m.opts.ExpectedReturnRate.Mul(hundred).StringFixed(1)+"%")
	metric("Target age", fmt.Sprint(m.opts.TargetAge))
	metric("Years to retirement", fmt.Sprint(m.calc.YearsToRetirement))
	metric("Fund at retirement", m.calc.TotalRetirementFund.StringFixed(2))
	metric("Monthly savings", m.calc.MonthlySavings.StringFixed(2))
	metric("Monthly pension", m.calc.MonthlyRetirementIncome.StringFixed(2))
	metric("Readiness score", m.readiness.ReadinessScore.StringFixed(1)+" / 100")

	b.WriteByte('\n')
	b.WriteString(m.statusLine())
	b.WriteString("\n\n")
	b.WriteString(m.table.View())

	b.WriteString(helpStyle.Render("+/- return rate  [/] target age  r reset  q quit"))
	return appStyle.Render(b.String())
}

func (m Model) statusLine() string {
	timeline := m.calc.Assumptions.Timeline
	if len(timeline) == 0 {
		return depletedStyle.Render("No retirement years within the simulated horizon.")
	}
	last := timeline[len(timeline)-1]
	if last.Depleted() {
		return depletedStyle.Render(fmt.Sprintf("Funds deplete at age %d.", last.Age))
	}
	return healthyStyle.Render(fmt.Sprintf("Funds last to age %d.", last.Age))
}

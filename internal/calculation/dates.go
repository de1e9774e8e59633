package calculation

import (
	"time"

	"github.com/horizonfin/horizon/internal/domain"
	"github.com/shopspring/decimal"
)

// startDateLayout is the accepted wire format for a profile's start date.
const startDateLayout = "2006-01-02"

// Anchors are the resolved calendar dates a projection runs against. They are
// computed once per run from the profile and the current date, so the
// simulation loop itself never touches the clock.
type Anchors struct {
	// TimelineStart is when self-funded retirement begins and the timeline
	// display starts. Not the government pension start.
	TimelineStart time.Time

	// GovernmentRetirementStart is when the government pension is first
	// received.
	GovernmentRetirementStart time.Time

	// EndOfSalary is the first date salary is no longer earned, measured
	// from today rather than the timeline anchor.
	EndOfSalary time.Time

	// BaseYear is the calendar year of simulation index zero.
	BaseYear int

	YearsToRetirement int
}

// YearsToRetirement resolves the whole years until retirement. An explicit
// start date takes precedence; a malformed one falls through to the year
// offset, and a positive year offset falls through to zero.
func YearsToRetirement(p domain.Profile, today time.Time) int {
	if p.StartDate != "" {
		if start, err := time.Parse(startDateLayout, p.StartDate); err == nil {
			years := start.Year() - today.Year()
			if years < 0 {
				years = 0
			}
			return years
		}
	}
	if p.GovernmentRetirementStartYears > 0 {
		return p.GovernmentRetirementStartYears
	}
	return 0
}

// MonthlyGrowthRate resolves the monthly compounding rate: the profile's own
// monthly rate when positive, otherwise the scenario's annual rate divided by
// twelve. The two are never blended.
func MonthlyGrowthRate(p domain.Profile, expectedAnnualReturn decimal.Decimal) decimal.Decimal {
	if p.MonthlyReturnRate.IsPositive() {
		return p.MonthlyReturnRate
	}
	if expectedAnnualReturn.IsPositive() {
		return expectedAnnualReturn.Div(decimalTwelve)
	}
	return decimal.Zero
}

// ResolveAnchors fixes the projection's calendar frame. It never fails: a
// malformed start date degrades to January 1 of the current year.
func ResolveAnchors(p domain.Profile, today time.Time) Anchors {
	years := YearsToRetirement(p, today)

	timelineStart := time.Date(today.Year(), 1, 1, 0, 0, 0, 0, time.UTC)
	explicitStart := false
	if p.StartDate != "" {
		if start, err := time.Parse(startDateLayout, p.StartDate); err == nil {
			timelineStart = start.UTC()
			explicitStart = true
		}
	}

	// Nominal anchoring: iteration YearsToRetirement lands on the timeline
	// start year. An explicit start date can disagree with the nominal year
	// count (mid-year dates, dates already past); when the elapsed time
	// differs by more than half a year, anchor to the elapsed time instead.
	baseYear := timelineStart.Year() - years
	if explicitStart {
		actualYears := timelineStart.Sub(today).Hours() / 24 / 365.25
		if abs(actualYears-float64(years)) > 0.5 {
			baseYear = timelineStart.Year() - int(actualYears)
		}
	}

	return Anchors{
		TimelineStart: timelineStart,
		GovernmentRetirementStart: time.Date(
			timelineStart.Year()+p.GovernmentRetirementStartYears,
			timelineStart.Month(), timelineStart.Day(), 0, 0, 0, 0, time.UTC),
		EndOfSalary:       today.AddDate(p.EndOfSalaryYears, 0, 0),
		BaseYear:          baseYear,
		YearsToRetirement: years,
	}
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

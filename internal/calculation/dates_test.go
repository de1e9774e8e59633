package calculation

import (
	"testing"
	"time"

	"github.com/horizonfin/horizon/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

var testToday = time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

func TestYearsToRetirementPrecedence(t *testing.T) {
	tests := []struct {
		name     string
		profile  domain.Profile
		expected int
	}{
		{
			name:     "explicit start date wins over year offset",
			profile:  domain.Profile{StartDate: "2035-01-01", GovernmentRetirementStartYears: 3},
			expected: 10,
		},
		{
			name:     "start date in the past clamps to zero",
			profile:  domain.Profile{StartDate: "2020-01-01", GovernmentRetirementStartYears: 3},
			expected: 0,
		},
		{
			name:     "malformed start date falls through to year offset",
			profile:  domain.Profile{StartDate: "not-a-date", GovernmentRetirementStartYears: 7},
			expected: 7,
		},
		{
			name:     "year offset when no start date",
			profile:  domain.Profile{GovernmentRetirementStartYears: 20},
			expected: 20,
		},
		{
			name:     "zero when nothing set",
			profile:  domain.Profile{},
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, YearsToRetirement(tt.profile, testToday))
		})
	}
}

func TestMonthlyGrowthRatePrecedence(t *testing.T) {
	tests := []struct {
		name           string
		monthlyRate    decimal.Decimal
		expectedAnnual decimal.Decimal
		want           decimal.Decimal
	}{
		{
			name:           "explicit monthly rate wins",
			monthlyRate:    decimal.NewFromFloat(0.005),
			expectedAnnual: decimal.NewFromFloat(0.07),
			want:           decimal.NewFromFloat(0.005),
		},
		{
			name:           "annual rate divided by twelve when monthly is zero",
			monthlyRate:    decimal.Zero,
			expectedAnnual: decimal.NewFromFloat(0.12),
			want:           decimal.NewFromFloat(0.01),
		},
		{
			name:           "zero when both are zero",
			monthlyRate:    decimal.Zero,
			expectedAnnual: decimal.Zero,
			want:           decimal.Zero,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := domain.Profile{MonthlyReturnRate: tt.monthlyRate}
			got := MonthlyGrowthRate(p, tt.expectedAnnual)
			assert.True(t, got.Equal(tt.want), "expected %s, got %s", tt.want, got)
		})
	}
}

func TestResolveAnchorsDefaults(t *testing.T) {
	p := domain.Profile{
		GovernmentRetirementStartYears: 20,
		EndOfSalaryYears:               25,
	}
	anchors := ResolveAnchors(p, testToday)

	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), anchors.TimelineStart)
	assert.Equal(t, time.Date(2045, 1, 1, 0, 0, 0, 0, time.UTC), anchors.GovernmentRetirementStart)
	assert.Equal(t, time.Date(2050, 6, 15, 0, 0, 0, 0, time.UTC), anchors.EndOfSalary)
	assert.Equal(t, 20, anchors.YearsToRetirement)
	// Nominal anchoring: iteration 20 lands on the timeline start year.
	assert.Equal(t, 2005, anchors.BaseYear)
}

func TestResolveAnchorsExplicitStartDate(t *testing.T) {
	p := domain.Profile{
		StartDate:                      "2030-09-01",
		GovernmentRetirementStartYears: 10,
		EndOfSalaryYears:               5,
	}
	anchors := ResolveAnchors(p, testToday)

	assert.Equal(t, time.Date(2030, 9, 1, 0, 0, 0, 0, time.UTC), anchors.TimelineStart)
	// Same month and day, shifted whole years.
	assert.Equal(t, time.Date(2040, 9, 1, 0, 0, 0, 0, time.UTC), anchors.GovernmentRetirementStart)
	assert.Equal(t, 5, anchors.YearsToRetirement)
	// Actual elapsed time (~5.2y) is within half a year of the nominal 5.
	assert.Equal(t, 2025, anchors.BaseYear)
}

func TestResolveAnchorsDriftCorrection(t *testing.T) {
	// A start date two years in the past: nominal years clamp to 0 while the
	// elapsed time is about -2.3 years, so the base year anchors to the
	// elapsed time instead.
	p := domain.Profile{StartDate: "2023-03-01"}
	anchors := ResolveAnchors(p, testToday)

	assert.Equal(t, 0, anchors.YearsToRetirement)
	assert.Equal(t, 2025, anchors.BaseYear)
}

func TestResolveAnchorsMalformedStartDate(t *testing.T) {
	p := domain.Profile{StartDate: "2035/01/01", GovernmentRetirementStartYears: 4}
	anchors := ResolveAnchors(p, testToday)

	// Degrades to January 1 of the current year, never errors.
	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), anchors.TimelineStart)
	assert.Equal(t, 4, anchors.YearsToRetirement)
	assert.Equal(t, 2021, anchors.BaseYear)
}

package server

import (
	"fmt"

	json "github.com/goccy/go-json"
	"github.com/shopspring/decimal"

	"github.com/horizonfin/horizon/internal/advisory"
	"github.com/horizonfin/horizon/internal/domain"
)

// calculationRequest selects a stored profile and the scenario parameters to
// project it with. Omitted parameters take the documented defaults.
type calculationRequest struct {
	ProfileID               int64            `json:"profile_id"`
	ExpectedReturnRate      *decimal.Decimal `json:"expected_return_rate,omitempty"`
	RetirementDurationYears *int             `json:"retirement_duration_years,omitempty"`
	TargetAge               *int             `json:"target_age,omitempty"`
}

func (req calculationRequest) options() domain.ScenarioOptions {
	opts := domain.DefaultScenarioOptions()
	if req.ExpectedReturnRate != nil {
		opts.ExpectedReturnRate = *req.ExpectedReturnRate
	}
	if req.RetirementDurationYears != nil {
		opts.RetirementDurationYears = *req.RetirementDurationYears
	}
	if req.TargetAge != nil {
		opts.TargetAge = *req.TargetAge
	}
	return opts
}

// scenarioRequest is a calculation request plus transient profile overrides.
// Overrides apply to the projection only; the stored profile is not touched.
type scenarioRequest struct {
	calculationRequest
	Overrides map[string]any `json:"-"`
}

// scenarioParamKeys are the request's own fields; everything else in the
// body is treated as a profile override.
var scenarioParamKeys = map[string]bool{
	"profile_id":                true,
	"expected_return_rate":      true,
	"retirement_duration_years": true,
	"target_age":                true,
}

// overridableKeys are the profile fields a scenario may replace.
var overridableKeys = map[string]bool{
	"total_assets":                      true,
	"fixed_assets":                      true,
	"monthly_salary_net":                true,
	"government_retirement_income":      true,
	"monthly_return_rate":               true,
	"fixed_assets_growth_rate":          true,
	"investment_tax_rate":               true,
	"investment_taxable_percentage":     true,
	"end_of_salary_years":               true,
	"government_retirement_start_years": true,
	"government_retirement_adjustment":  true,
	"monthly_expense_recurring":         true,
	"rent":                              true,
	"one_time_annual_expense":           true,
	"annual_inflation":                  true,
}

func (req *scenarioRequest) UnmarshalJSON(data []byte) error {
	if err := json.Unmarshal(data, &req.calculationRequest); err != nil {
		return err
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	req.Overrides = make(map[string]any)
	for k, v := range raw {
		if scenarioParamKeys[k] || v == nil {
			continue
		}
		if !overridableKeys[k] {
			return fmt.Errorf("unknown override field %q", k)
		}
		req.Overrides[k] = v
	}
	return nil
}

// apply overlays the overrides onto the profile at the document level, so a
// scenario can replace any subset of numeric fields.
func (req scenarioRequest) apply(p domain.Profile) (domain.Profile, error) {
	if len(req.Overrides) == 0 {
		return p, nil
	}
	raw, err := json.Marshal(p)
	if err != nil {
		return domain.Profile{}, fmt.Errorf("failed to encode profile for scenario: %w", err)
	}
	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return domain.Profile{}, fmt.Errorf("failed to decode profile for scenario: %w", err)
	}
	for k, v := range req.Overrides {
		doc[k] = v
	}
	merged, err := json.Marshal(doc)
	if err != nil {
		return domain.Profile{}, fmt.Errorf("failed to encode scenario profile: %w", err)
	}
	var out domain.Profile
	if err := json.Unmarshal(merged, &out); err != nil {
		return domain.Profile{}, fmt.Errorf("failed to decode scenario profile: %w", err)
	}
	return out, nil
}

// requiredSavingsRequest asks for the closed-form savings estimate. The year
// count must be positive; the formula is undefined at zero.
type requiredSavingsRequest struct {
	TargetMonthlyIncome decimal.Decimal  `json:"target_monthly_income"`
	YearsToRetirement   int              `json:"years_to_retirement"`
	ExpectedReturnRate  *decimal.Decimal `json:"expected_return_rate,omitempty"`
	InflationRate       *decimal.Decimal `json:"inflation_rate,omitempty"`
}

func (req requiredSavingsRequest) validate() error {
	if !req.TargetMonthlyIncome.IsPositive() {
		return fmt.Errorf("target monthly income must be positive, got %s", req.TargetMonthlyIncome)
	}
	if req.YearsToRetirement < 1 || req.YearsToRetirement > 100 {
		return fmt.Errorf("years to retirement must be between 1 and 100, got %d", req.YearsToRetirement)
	}
	if req.ExpectedReturnRate != nil &&
		(req.ExpectedReturnRate.IsNegative() || req.ExpectedReturnRate.GreaterThan(decimal.NewFromFloat(0.2))) {
		return fmt.Errorf("expected return rate must be between 0 and 0.2, got %s", req.ExpectedReturnRate)
	}
	if req.InflationRate != nil &&
		(req.InflationRate.IsNegative() || req.InflationRate.GreaterThan(decimal.NewFromFloat(0.2))) {
		return fmt.Errorf("inflation rate must be between 0 and 0.2, got %s", req.InflationRate)
	}
	return nil
}

// assistRequest carries one turn of an advisory conversation.
type assistRequest struct {
	ProfileID          int64              `json:"profile_id"`
	Question           string             `json:"question"`
	ExpectedReturnRate *decimal.Decimal   `json:"expected_return_rate,omitempty"`
	History            []advisory.Message `json:"history,omitempty"`
}

package output

import (
	json "github.com/goccy/go-json"

	"github.com/horizonfin/horizon/internal/domain"
)

// JSONFormatter emits the full calculation, indented for reading.
type JSONFormatter struct{}

func (JSONFormatter) Name() string { return "json" }

func (JSONFormatter) Format(calc *domain.RetirementCalculation) ([]byte, error) {
	return json.MarshalIndent(calc, "", "  ")
}

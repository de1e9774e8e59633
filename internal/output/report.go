package output

import (
	"fmt"

	"github.com/horizonfin/horizon/internal/domain"
)

// Formatter renders a retirement calculation for one output medium.
type Formatter interface {
	Name() string
	Format(calc *domain.RetirementCalculation) ([]byte, error)
}

// NewFormatter returns the formatter for the given format name.
func NewFormatter(format string) (Formatter, error) {
	switch format {
	case "console":
		return ConsoleFormatter{}, nil
	case "csv":
		return CSVFormatter{}, nil
	case "json":
		return JSONFormatter{}, nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

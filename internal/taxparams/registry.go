package taxparams

import (
	"errors"
	"fmt"
	"sort"

	"github.com/rgehrsitz/isoamt/internal/domain"
)

// DefaultYear is used when a plan does not name a tax year
const DefaultYear = 2025

var (
	// ErrUnsupportedYear is returned for a year without a parameter table
	ErrUnsupportedYear = errors.New("unsupported tax year")
	// ErrInvalidTable is returned when a parameter table fails validation
	ErrInvalidTable = errors.New("invalid tax parameter table")
)

var builtin = map[int]func() *domain.TaxParameters{
	2024: TaxYear2024,
	2025: TaxYear2025,
}

// ForYear returns a fresh copy of the built-in table for year
func ForYear(year int) (*domain.TaxParameters, error) {
	build, ok := builtin[year]
	if !ok {
		return nil, fmt.Errorf("%w: %d (supported: %v)", ErrUnsupportedYear, year, SupportedYears())
	}
	return build(), nil
}

// SupportedYears lists the built-in tax years in ascending order
func SupportedYears() []int {
	years := make([]int, 0, len(builtin))
	for y := range builtin {
		years = append(years, y)
	}
	sort.Ints(years)
	return years
}

// Resolve picks the table for a plan: an override file wins over the built-in year
func Resolve(year int, overridePath string) (*domain.TaxParameters, error) {
	if overridePath != "" {
		params, err := LoadFromFile(overridePath)
		if err != nil {
			return nil, err
		}
		if year != 0 && params.Year != year {
			return nil, fmt.Errorf("parameter file %s is for tax year %d, plan requests %d", overridePath, params.Year, year)
		}
		return params, nil
	}
	if year == 0 {
		year = DefaultYear
	}
	return ForYear(year)
}

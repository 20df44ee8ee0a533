package optimizer

import (
	"errors"
	"fmt"

	"github.com/rgehrsitz/isoamt/internal/domain"
	"github.com/shopspring/decimal"
)

// Precondition failures. Match with errors.Is.
var (
	ErrInvalidExercise   = errors.New("invalid exercise economics")
	ErrInvalidBudget     = errors.New("invalid AMT budget")
	ErrInvalidShareCount = errors.New("invalid share count")
	ErrInvalidPercentage = errors.New("invalid tile percentage")
)

// OptimizationError represents a rejected optimization request
type OptimizationError struct {
	Operation string
	Message   string
	Kind      error
}

func (e *OptimizationError) Error() string {
	return e.Message
}

// Unwrap returns the sentinel describing the failure
func (e *OptimizationError) Unwrap() error {
	return e.Kind
}

func newError(kind error, format string, args ...any) *OptimizationError {
	return &OptimizationError{
		Operation: "find_max_shares",
		Message:   fmt.Sprintf(format, args...),
		Kind:      kind,
	}
}

// SharesFromDecimal converts an externally supplied share count,
// rejecting negative and fractional values.
func SharesFromDecimal(d decimal.Decimal) (int64, error) {
	if d.IsNegative() {
		return 0, newError(ErrInvalidShareCount, "Total shares available cannot be negative")
	}
	if !d.Equal(d.Truncate(0)) {
		return 0, newError(ErrInvalidShareCount, "Total shares must be a whole number")
	}
	return d.IntPart(), nil
}

func validate(input domain.OptimizationInput) error {
	if input.ISOStrike.GreaterThanOrEqual(input.ISOFMV) {
		return newError(ErrInvalidExercise, "Strike price must be less than FMV for ISO exercise")
	}
	if input.TargetAMTBudget.IsNegative() {
		return newError(ErrInvalidBudget, "AMT budget cannot be negative")
	}
	if input.TotalSharesAvailable < 0 {
		return newError(ErrInvalidShareCount, "Total shares available cannot be negative")
	}
	return nil
}

package analytics

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidPeriod is returned for an unrecognized window token
	ErrInvalidPeriod = errors.New("invalid period")
	// ErrInvalidSortKey is returned for an unknown channel performance sort key
	ErrInvalidSortKey = errors.New("invalid sort key")
	// ErrDataLoad marks a record source that could not produce usable data
	ErrDataLoad = errors.New("failed to load records")
)

// CalculationError wraps any failure raised while computing a KPI
type CalculationError struct {
	Op  string
	Err error
}

func (e *CalculationError) Error() string {
	return fmt.Sprintf("failed to calculate %s: %v", e.Op, e.Err)
}

func (e *CalculationError) Unwrap() error {
	return e.Err
}

// NewCalculationError wraps err for the named calculation. A nil err stays nil.
func NewCalculationError(op string, err error) error {
	if err == nil {
		return nil
	}
	var calcErr *CalculationError
	if errors.As(err, &calcErr) {
		return err
	}
	return &CalculationError{Op: op, Err: err}
}

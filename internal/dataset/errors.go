package dataset

import (
	"errors"
	"fmt"
)

var (
	ErrDuplicateName = errors.New("duplicate name")
	ErrInvalidGrade  = errors.New("grade must be a non-negative finite number")
	ErrNoAdmission   = errors.New("admission series is empty")
	ErrMissingColumn = errors.New("missing column")
)

// LoadError reports a malformed or missing tabular source. It is fatal at startup.
type LoadError struct {
	Source string
	Row    int // 1-based data row, 0 when the failure is not row specific
	Err    error
}

func (e *LoadError) Error() string {
	if e.Row > 0 {
		return fmt.Sprintf("load %s row %d: %v", e.Source, e.Row, e.Err)
	}
	return fmt.Sprintf("load %s: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

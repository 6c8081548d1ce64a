// Package apperror defines the error taxonomy shared by every store and workflow.
//
// Callers classify failures with errors.Is against the sentinels below; the
// concrete messages carry the details a user needs to correct the input.
package apperror

import (
	"errors"
	"fmt"
)

var (
	ErrValidation        = errors.New("validation failed")
	ErrNotFound          = errors.New("not found")
	ErrAmbiguous         = errors.New("ambiguous name")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrStorage           = errors.New("storage failure")
)

type classified struct {
	kind error
	msg  string
	err  error
}

func (e *classified) Error() string {
	if e.err != nil {
		return e.msg + ": " + e.err.Error()
	}
	return e.msg
}

func (e *classified) Is(target error) bool {
	return target == e.kind
}

func (e *classified) Unwrap() error {
	return e.err
}

func Validation(format string, args ...any) error {
	return &classified{kind: ErrValidation, msg: fmt.Sprintf(format, args...)}
}

func NotFound(entity string, key any) error {
	return &classified{kind: ErrNotFound, msg: fmt.Sprintf("%s %v not found", entity, key)}
}

func Ambiguous(entity, name string, matches int) error {
	return &classified{
		kind: ErrAmbiguous,
		msg:  fmt.Sprintf("%s name %q matches %d records, use the id instead", entity, name, matches),
	}
}

// Storage wraps a driver error. A nil err yields nil so repositories can wrap unconditionally.
func Storage(op string, err error) error {
	if err == nil {
		return nil
	}
	var c *classified
	if errors.As(err, &c) {
		return err
	}
	var ise *InsufficientStockError
	if errors.As(err, &ise) {
		return err
	}
	return &classified{kind: ErrStorage, msg: op, err: err}
}

type InsufficientStockError struct {
	ProductID int64
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("Not enough stock. Available: %d", e.Available)
}

func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock
}

// Code returns a stable machine-readable name for err's class.
func Code(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrValidation):
		return "validation"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrAmbiguous):
		return "ambiguous"
	case errors.Is(err, ErrInsufficientStock):
		return "insufficient_stock"
	default:
		return "storage"
	}
}

package service

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidArgument marks input rejected before touching the store.
	// Callers must not retry.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrStoreUnavailable marks a failed or timed-out store statement.
	// Nothing is retried internally; the caller may retry.
	ErrStoreUnavailable = errors.New("store unavailable")
)

// InvalidArgumentError carries a caller-facing message and matches
// ErrInvalidArgument under errors.Is.
type InvalidArgumentError struct {
	Msg string
}

func (e *InvalidArgumentError) Error() string {
	return e.Msg
}

func (e *InvalidArgumentError) Is(target error) bool {
	return target == ErrInvalidArgument
}

func invalid(format string, args ...any) error {
	return &InvalidArgumentError{Msg: fmt.Sprintf(format, args...)}
}

func unavailable(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrStoreUnavailable, err)
}

// countryKey validates and normalizes a country key.
func countryKey(name string) (string, error) {
	key := strings.TrimSpace(name)
	if key == "" {
		return "", invalid("country_name is required")
	}
	return key, nil
}

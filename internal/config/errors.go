package config

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMissingKey is matched by every MissingKeyError.
var ErrMissingKey = errors.New("missing connection setting")

// MissingKeyError names the required settings a source did not provide.
type MissingKeyError struct {
	Keys   []string
	Source string
}

func (e *MissingKeyError) Error() string {
	keys := strings.Join(e.Keys, ", ")
	if e.Source == "" {
		return fmt.Sprintf("missing connection settings: %s", keys)
	}
	return fmt.Sprintf("missing connection settings in %s: %s", e.Source, keys)
}

func (e *MissingKeyError) Is(target error) bool {
	return target == ErrMissingKey
}

// IsMissingKey reports whether err is or wraps a MissingKeyError.
func IsMissingKey(err error) bool {
	return errors.Is(err, ErrMissingKey)
}

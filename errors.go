package saver

import (
	"errors"
	"fmt"
)

// Sentinel errors for the saver package.
var (
	// ErrNotFound is returned when no effect matches a requested name.
	ErrNotFound = errors.New("saver: effect not found")

	// ErrFrozen is returned when registering into a frozen registry.
	ErrFrozen = errors.New("saver: registry is frozen")

	// ErrInvalidName is returned for empty effect names.
	ErrInvalidName = errors.New("saver: invalid effect name")

	// ErrNilEffect is returned when registering an entry without an effect.
	ErrNilEffect = errors.New("saver: nil effect")
)

// LoadError reports a custom effect that could not be loaded. The effect
// is not registered and any built-in of the same name stays in place.
type LoadError struct {
	Name string // effect name derived from the file name
	Path string // offending file
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("saver: load effect %q from %s: %v", e.Name, e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

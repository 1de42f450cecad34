package field

import "errors"

var (
	// ErrMissingSurface indicates the host could not provide a drawing surface.
	ErrMissingSurface = errors.New("field: drawing surface unavailable")

	// ErrMissingScheduler indicates the host provided no frame scheduler.
	ErrMissingScheduler = errors.New("field: frame scheduler unavailable")

	// ErrPointCount indicates a restored point set of the wrong size.
	ErrPointCount = errors.New("field: point count mismatch")

	// ErrBadDimensions indicates a non-positive or non-finite surface size.
	ErrBadDimensions = errors.New("field: invalid surface dimensions")
)

// SetupError wraps an initialization failure with the component that hit it.
type SetupError struct {
	Component string
	Wrapped   error
}

func (e *SetupError) Error() string {
	return e.Component + ": " + e.Wrapped.Error()
}

func (e *SetupError) Unwrap() error {
	return e.Wrapped
}

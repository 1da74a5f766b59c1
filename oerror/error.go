// Package oerror defines the sentinel error kinds used across the
// locomotion engine so callers can distinguish them with errors.Is.
package oerror

import "errors"

var (
	// ErrDuplicateHandle is returned when AddEnvironment is called with a
	// handle that is already tracked by the registry.
	ErrDuplicateHandle = errors.New("oerror: duplicate environment handle")
	// ErrUnknownHandle is returned when an operation names a handle the
	// registry has never seen (or has since removed).
	ErrUnknownHandle = errors.New("oerror: unknown environment handle")
	// ErrInvalidMatrix is returned by Registry.Add when a world transform
	// has a NaN or infinite element or is singular. Registry.UpdateTransform
	// does not validate its matrix, and no check is made that a matrix is
	// affine.
	ErrInvalidMatrix = errors.New("oerror: invalid world matrix")
	// ErrInvalidGeometry is returned when vertex/index data cannot describe
	// a valid triangle soup (too few vertices, mismatched indices).
	ErrInvalidGeometry = errors.New("oerror: invalid geometry")
	// ErrInvariant is the panic value used by assert.IsTrue for conditions
	// that should be impossible in a correct build.
	ErrInvariant = errors.New("oerror: invariant violated")
)

// Wrap annotates err with a message while preserving errors.Is matching
// against the sentinel.
func Wrap(err error, message string) error {
	return &wrapped{msg: message, err: err}
}

type wrapped struct {
	msg string
	err error
}

func (w *wrapped) Error() string { return w.msg + ": " + w.err.Error() }
func (w *wrapped) Unwrap() error { return w.err }

package tessera

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrInvalidInput is returned when an operation receives arguments it cannot work with,
	// like a grid with fewer than three points or a malformed bounding box.
	ErrInvalidInput = errors.New("invalid input")
	// ErrOutOfBounds signals a sampling offset outside of the source buffer.
	// It always indicates a clamping defect upstream.
	ErrOutOfBounds = errors.New("sample out of bounds")
	// ErrDegenerateGeometry is returned for a cell with fewer than three vertices.
	ErrDegenerateGeometry = errors.New("degenerate geometry")
	// ErrDecode wraps failures of the image decoder.
	ErrDecode = errors.New("image decode failed")
)

// CellError identifies the cell which made an operation fail.
type CellError struct {
	Index int
	Err   error
}

func (e *CellError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("cell %d: %v", e.Index, e.Err)
}

func (e *CellError) Unwrap() error { return e.Err }

func invalidf(format string, args ...interface{}) error {
	return errors.Wrapf(ErrInvalidInput, format, args...)
}

// DecodeError carries the cause of a failed image decoding. It matches ErrDecode.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%v: %v", ErrDecode, e.Err)
	}
	return fmt.Sprintf("%v: %s: %v", ErrDecode, e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Is reports whether target is ErrDecode.
func (e *DecodeError) Is(target error) bool { return target == ErrDecode }

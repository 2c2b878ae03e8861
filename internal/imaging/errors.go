package imaging

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidGeometry reports malformed crop, resize or shape bounds.
	ErrInvalidGeometry = errors.New("invalid geometry")

	// ErrUnknownFilter reports a filter name outside the supported set.
	ErrUnknownFilter = errors.New("unknown filter")

	// ErrUnsupportedMode reports a colour mode outside the supported set.
	ErrUnsupportedMode = errors.New("unsupported mode")

	// ErrUnsupportedFormat reports a file extension no encoder handles.
	ErrUnsupportedFormat = errors.New("unsupported format")

	// ErrInvalidAxis reports a flip direction other than horizontal/vertical.
	ErrInvalidAxis = errors.New("invalid direction, use 'horizontal' or 'vertical'")

	// ErrInvalidFactor reports a negative enhancement factor.
	ErrInvalidFactor = errors.New("enhancement factor must be non-negative")

	// ErrPaletteMode reports a filter or enhancement requested on a
	// palette-based (P or 1) image.
	ErrPaletteMode = errors.New("cannot filter palette images, convert to L or RGB first")
)

// DecodeError is returned when a file cannot be read or decoded.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode image %s: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// EncodeError is returned when an image cannot be encoded or written.
type EncodeError struct {
	Path string
	Err  error
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("failed to save image %s: %v", e.Path, e.Err)
}

func (e *EncodeError) Unwrap() error { return e.Err }

// UnknownFilterError names the rejected filter and lists the valid ones.
type UnknownFilterError struct {
	Name string
}

func (e *UnknownFilterError) Error() string {
	return fmt.Sprintf("filter %q not found, available filters: %s", e.Name, strings.Join(FilterNames(), ", "))
}

func (e *UnknownFilterError) Is(target error) bool { return target == ErrUnknownFilter }

// UnsupportedModeError names the rejected mode and lists the valid ones.
type UnsupportedModeError struct {
	Name string
}

func (e *UnsupportedModeError) Error() string {
	names := make([]string, len(Modes))
	for i, m := range Modes {
		names[i] = string(m)
	}
	return fmt.Sprintf("mode %q not supported, available modes: %s", e.Name, strings.Join(names, ", "))
}

func (e *UnsupportedModeError) Is(target error) bool { return target == ErrUnsupportedMode }

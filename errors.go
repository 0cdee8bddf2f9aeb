package texturepacker

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind classifies the failures reported by a Packer. Packing validation
// failures are reported separately as *grid.Error.
type Kind string

const (
	// DirectoryUnreadable means the target directory could not be listed
	DirectoryUnreadable Kind = "DIRECTORY_UNREADABLE"
	// UndecodableImage means a file could not be opened or decoded
	UndecodableImage Kind = "UNDECODABLE_IMAGE"
	// UnsupportedPixelFormat means a file decoded to something other than
	// 8-bit RGBA
	UnsupportedPixelFormat Kind = "UNSUPPORTED_PIXEL_FORMAT"
	// WriteFailure means an output file could not be written
	WriteFailure Kind = "WRITE_FAILURE"
)

// Error is a failure tied to a file or directory.
type Error struct {
	Kind   Kind
	Path   string
	Format string // Actual pixel format, UnsupportedPixelFormat only
	Err    error  // Underlying cause, may be nil
}

func (e *Error) Error() string {
	switch {
	case e.Kind == UnsupportedPixelFormat:
		return fmt.Sprintf("%q is not a valid image (RGBA8), got %s", e.Path, e.Format)
	case e.Err != nil:
		return fmt.Sprintf("%s: %q: %v", e.Kind, e.Path, e.Err)
	default:
		return fmt.Sprintf("%s: %q", e.Kind, e.Path)
	}
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the Kind carried by err, or an empty Kind if err is not an
// *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// IsKind reports whether err is an *Error of the given Kind.
func IsKind(err error, k Kind) bool {
	return err != nil && KindOf(err) == k
}

package grid

import (
	"errors"
	"fmt"
	"image"
)

// Reason identifies why a collection could not be packed.
type Reason string

const (
	// InsufficientImages means fewer than two images were given
	InsufficientImages Reason = "INSUFFICIENT_IMAGES"
	// DimensionMismatch means an image differs in size from the first one
	DimensionMismatch Reason = "DIMENSION_MISMATCH"
)

// Error is returned by Pack when validation fails.
type Error struct {
	Reason Reason
	Count  int         // Number of images given
	Index  int         // Position of the offending image, DimensionMismatch only
	Got    image.Point // Size of the offending image, DimensionMismatch only
	Want   image.Point // Size of the first image, DimensionMismatch only
}

func (e *Error) Error() string {
	switch e.Reason {
	case InsufficientImages:
		return fmt.Sprintf("grid: at least %d images are expected, got %d", minImages, e.Count)
	case DimensionMismatch:
		return fmt.Sprintf("grid: image %d dimension %dx%d is not equal to expected %dx%d", e.Index, e.Got.X, e.Got.Y, e.Want.X, e.Want.Y)
	default:
		return fmt.Sprintf("grid: %s", e.Reason)
	}
}

// ReasonOf returns the Reason carried by err, or an empty Reason if err is
// not an *Error.
func ReasonOf(err error) Reason {
	var e *Error
	if errors.As(err, &e) {
		return e.Reason
	}
	return ""
}

// IsReason reports whether err is an *Error with the given Reason.
func IsReason(err error, r Reason) bool {
	return err != nil && ReasonOf(err) == r
}

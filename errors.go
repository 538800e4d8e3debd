package gridimg

import "errors"

var (
	// ErrDecode is returned when an input cannot be interpreted as an image
	ErrDecode = errors.New("failed to decode image")
	// ErrInvalidImage is returned for images with a zero or negative dimension
	ErrInvalidImage = errors.New("invalid image dimensions")
	// ErrInvalidParameter marks a render parameter that was out of range and has been clamped
	ErrInvalidParameter = errors.New("invalid render parameter")
	// ErrSurfaceUnavailable is returned when there is no surface to draw on
	ErrSurfaceUnavailable = errors.New("drawing surface unavailable")
	// ErrExport is returned when encoding or printing a surface fails
	ErrExport = errors.New("export failed")
)

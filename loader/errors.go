package loader

import "errors"

var (
	// ErrNoFilename is returned when no filename is provided for format
	// detection.
	ErrNoFilename = errors.New("no filename provided")

	// ErrUnsupportedFormat is returned for file extensions outside the
	// supported set.
	ErrUnsupportedFormat = errors.New("unsupported file format")
)

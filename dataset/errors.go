package dataset

import "errors"

var (
	// ErrInvalidSplit is returned for split names outside the recognized
	// train/val/test aliases.
	ErrInvalidSplit = errors.New("invalid split")

	// ErrIndexOutOfRange is returned when a sample index falls outside
	// [0, Len()).
	ErrIndexOutOfRange = errors.New("sample index out of range")

	// ErrNotSupported is returned by placeholder operations a dataset
	// adapter declares but does not implement.
	ErrNotSupported = errors.New("operation not supported")

	// ErrNotRegistered is returned when opening a dataset name with no
	// registered builder.
	ErrNotRegistered = errors.New("dataset not registered")
)

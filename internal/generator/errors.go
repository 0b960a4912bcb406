package generator

import "errors"

var (
	// ErrUnknownAlgorithm indicates a lookup of an unregistered algorithm.
	ErrUnknownAlgorithm = errors.New("generator: unknown algorithm")

	// ErrInvalidParam indicates a parameter that does not match its schema.
	ErrInvalidParam = errors.New("generator: invalid parameter")

	// ErrInvalidData indicates a data array with items of the wrong type.
	ErrInvalidData = errors.New("generator: invalid data")
)

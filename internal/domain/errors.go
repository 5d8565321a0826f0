package domain

import "errors"

// Sentinel errors for the shape parameter schema.
var (
	ErrUnsupportedShape = errors.New("domain: unsupported shape kind")
	ErrBadVectorLen     = errors.New("domain: parameter vector must have 9 slots")
)

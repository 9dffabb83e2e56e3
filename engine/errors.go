package engine

import "errors"

// Construction errors.
var (
	ErrNilNode           = errors.New("replica requires a fabric node")
	ErrNilApp            = errors.New("replica requires an application hook")
	ErrInvalidFaultBound = errors.New("fault bound f must be at least 1")
)

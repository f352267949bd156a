package enrich

import "errors"

var (
	ErrTransformFailure = errors.New("enrichment transform failed")
	ErrInFlight         = errors.New("enrichment still in flight")
)

package lang

import "github.com/ardnew/flagset/pkg"

// Position identifies a location in invocation source text.
type Position = pkg.Position

// Errors reported by the parser and the pipeline. They are aliases of the
// [pkg] sentinels so callers need not import both packages.
var (
	ErrEmptyPath         = pkg.ErrEmptyPath
	ErrMalformedPath     = pkg.ErrMalformedPath
	ErrMalformedList     = pkg.ErrMalformedList
	ErrTrailingInput     = pkg.ErrTrailingInput
	ErrUnresolvedElement = pkg.ErrUnresolvedElement
	ErrIncompatibleType  = pkg.ErrIncompatibleType
	ErrReadInput         = pkg.ErrReadInput
	ErrInvalidFormat     = pkg.ErrInvalidFormat
)

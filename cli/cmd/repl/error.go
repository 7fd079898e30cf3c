package repl

import "github.com/ardnew/flagset/pkg"

// Sentinel errors.
var (
	ErrOutOfBounds = pkg.NewError("index out of range")
	ErrNoTable     = pkg.NewError("no definitions loaded")
)

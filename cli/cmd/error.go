package cmd

import "github.com/ardnew/flagset/pkg"

var (
	ErrWriteOutput = pkg.NewError("write output")
	ErrWriteConfig = pkg.NewError("write configuration file")
	ErrFileExists  = pkg.NewError("file exists (use --force to overwrite)")
	ErrInvalidBase = pkg.NewError("invalid numeric base")
)

var (
	errNoKongContext = pkg.NewError("command context unavailable")
	errNoConfigPath  = pkg.NewError("configuration path undefined")
)

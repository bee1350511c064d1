package cutter

import "errors"

var (
	// ErrInputNotFound marks a cut request whose input file does not exist.
	ErrInputNotFound = errors.New("input file not found")
	// ErrAlreadyExists marks a destination output or manifest path that is
	// already occupied. The pipeline never overwrites existing files.
	ErrAlreadyExists = errors.New("destination already exists")
)

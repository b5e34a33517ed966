// Package qerr holds the sentinel errors shared between the root quant
// package and its internal components, so an internal package can signal a
// failure kind (out of memory, invalid argument, internal bug) without
// importing the root package and creating an import cycle. The root
// package re-exports these values directly (spec §7's error taxonomy).
package qerr

import "github.com/pkg/errors"

var (
	// ErrOutOfMemory signals a resource bound was exceeded: the priority
	// queue (internal/boxqueue) outgrew the range this implementation can
	// address, mirroring the original's calloc/realloc failure paths. The
	// pixel hash never returns it.
	ErrOutOfMemory = errors.New("quant: out of memory")

	// ErrInvalidArgument signals a caller-supplied argument violates a
	// documented precondition (e.g. nColors <= 0, empty pixel buffer).
	ErrInvalidArgument = errors.New("quant: invalid argument")

	// ErrInternal signals an invariant the implementation itself should
	// have maintained was violated; its presence indicates a bug here,
	// not bad caller input.
	ErrInternal = errors.New("quant: internal error")
)

package quant

import "github.com/pixelquant/quant/internal/qerr"

// Sentinel errors matching spec §7's taxonomy. Every error Quantize
// returns wraps one of these via github.com/pkg/errors, so callers can
// branch with errors.Is regardless of the added context.
var (
	ErrOutOfMemory     = qerr.ErrOutOfMemory
	ErrInvalidArgument = qerr.ErrInvalidArgument
	ErrInternal        = qerr.ErrInternal
)

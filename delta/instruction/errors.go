package instruction

import "errors"

var (
	// ErrContentOverflow reports a Push past capacity. The diff engine seals
	// and reopens instructions at capacity, so only direct Push callers can
	// hit it.
	ErrContentOverflow = errors.New("instruction: content overflow")

	ErrInvalidSign    = errors.New("instruction: invalid sign")
	ErrMissingSign    = errors.New("instruction: missing sign")
	ErrMissingLength  = errors.New("instruction: missing length")
	ErrInvalidLength  = errors.New("instruction: invalid length")
	ErrMissingContent = errors.New("instruction: missing content")

	// Replay errors: the stream is inconsistent with the supplied source.
	ErrSourceUnderrun  = errors.New("instruction: source underrun")
	ErrContentMismatch = errors.New("instruction: copy content mismatch")
)

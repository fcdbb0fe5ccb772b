package trace

import "errors"

// Configuration errors. They are returned synchronously by Build, New and
// Play and are never retried.
var (
	ErrUnknownPolicy   = errors.New("trace: unknown animation type")
	ErrUnknownStart    = errors.New("trace: unknown start option")
	ErrUnknownEasing   = errors.New("trace: unknown timing function")
	ErrInvalidDuration = errors.New("trace: duration must be a positive number of frames")
	ErrInvalidDelay    = errors.New("trace: delay must be shorter than duration")
	ErrEmptyWindow     = errors.New("trace: segment window has no duration")
	ErrInvalidSpeed    = errors.New("trace: invalid speed")
)

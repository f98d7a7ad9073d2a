package circadian

import "errors"

// Configuration errors on the input profile. Both are deterministic: retrying
// with the same input fails the same way, so callers should surface them as
// client errors rather than retry.
var (
	ErrInvalidTimezone    = errors.New("invalid timezone")
	ErrInvalidCoordinates = errors.New("invalid coordinates")
)

package fragment

import "errors"

var (
	// ErrMalformedCount is returned when a fragment count falls outside [MinCount, MaxCount].
	ErrMalformedCount = errors.New("malformed fragment count")
	// ErrMissingFragment is returned when the recovered indices have gaps.
	ErrMissingFragment = errors.New("missing fragment")
	// ErrDuplicateFragment is returned when two names carry the same index.
	ErrDuplicateFragment = errors.New("duplicate fragment")
	// ErrUnrecognizedName is returned when a name does not follow the fragment naming scheme.
	ErrUnrecognizedName = errors.New("unrecognized fragment name")
)

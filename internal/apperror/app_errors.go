package apperror

import "errors"

var (
	// ErrNetwork marks a failure to reach an external service at all.
	ErrNetwork = errors.New("network failure")
	// ErrService marks a reply from an external service that cannot be used.
	ErrService = errors.New("service failure")
	// ErrEmptyResult marks a well-formed reply carrying no usable candidates.
	ErrEmptyResult = errors.New("no usable word candidates")
	// ErrInvalidArgument marks a request rejected by validation; it maps to the
	// invalid-argument status on the wire.
	ErrInvalidArgument = errors.New("invalid argument")
)

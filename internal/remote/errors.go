package remote

import "errors"

var (
	ErrUnavailable = errors.New("remote store unavailable")
)

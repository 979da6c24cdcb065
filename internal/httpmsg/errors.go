package httpmsg

import "errors"

// ParseError sentinels. A header-block ErrUnterminatedHeader bubbling up
// from headers.Parse is re-exported as ErrUnterminatedHeader so callers of
// this package never need to import internal/headers directly to check it.
var (
	ErrUnterminatedHeader = errors.New("unterminated header block")
	ErrInvalidMethod      = errors.New("invalid method")
	ErrInvalidVersion     = errors.New("invalid version")
	ErrInvalidHeader      = errors.New("invalid header")
	ErrInvalidPath        = errors.New("invalid path")
	ErrInvalidStatusCode  = errors.New("invalid status code")
)

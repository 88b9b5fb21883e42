package typed

import "errors"

var (
	ErrBadConfig   = errors.New("bad config")
	ErrBadFormat   = errors.New("bad format")
	ErrNotValid    = errors.New("invalid")
	ErrUnexpected  = errors.New("unexpected")
	ErrUnsupported = errors.New("unsupported")
)

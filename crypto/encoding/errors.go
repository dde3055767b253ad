package encoding

import "errors"

var (
	ErrInvalidEncoding = errors.New("invalid encoding")
	ErrInvalidFormat   = errors.New("invalid format")
)

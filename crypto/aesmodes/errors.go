package aesmodes

import "errors"

var (
	ErrInvalidKeyLength        = errors.New("invalid key length, want 16, 24 or 32 bytes")
	ErrInvalidIVLength         = errors.New("invalid IV length, want 16 bytes")
	ErrInvalidCiphertextLength = errors.New("ciphertext length invalid")
	ErrInvalidMode             = errors.New("invalid mode")
	ErrPadding                 = errors.New("invalid padding")
	ErrDecode                  = errors.New("decrypted data is not valid UTF-8")
)

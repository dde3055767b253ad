package crypto

import "crypto/sha256"

var (
	DefaultHashFunc = sha256.New
)

const (
	// FingerprintIterations is how many times a key is rehashed for its safety code.
	FingerprintIterations = 5200
)

package fingerprint

import (
	"crypto/sha512"
	"errors"
	"fmt"
	"strings"

	"aes-tool/crypto"
)

const (
	groups      = 6
	groupDigits = 5
	groupBytes  = 5
	groupMod    = 100000
)

var (
	ErrEmptyKey = errors.New("empty key")
)

// Fingerprint derives a 30-digit comparison code from an AES key, so two
// people can check they hold the same key by reading digits aloud instead of
// the key itself. The key is rehashed crypto.FingerprintIterations times so a
// code cannot be cheaply searched back to the key.
func Fingerprint(key []byte) (*[30]int, error) {
	if len(key) == 0 {
		return nil, ErrEmptyKey
	}

	sum := sha512.Sum512(key)
	for i := 1; i < crypto.FingerprintIterations; i++ {
		sum = sha512.Sum512(sum[:])
	}

	var code [groups * groupDigits]int
	for g := 0; g < groups; g++ {
		var n uint64
		for _, b := range sum[g*groupBytes : (g+1)*groupBytes] {
			n = n<<8 | uint64(b)
		}
		n %= groupMod
		for d := groupDigits - 1; d >= 0; d-- {
			code[g*groupDigits+d] = int(n % 10)
			n /= 10
		}
	}
	return &code, nil
}

// String renders the code as six space-separated groups of five digits.
func String(code *[30]int) string {
	parts := make([]string, 0, groups)
	for g := 0; g < groups; g++ {
		var sb strings.Builder
		for _, d := range code[g*groupDigits : (g+1)*groupDigits] {
			fmt.Fprintf(&sb, "%d", d)
		}
		parts = append(parts, sb.String())
	}
	return strings.Join(parts, " ")
}

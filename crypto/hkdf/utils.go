package hkdf

import (
	"errors"
	"fmt"
	"hash"
	"io"

	"aes-tool/configs"
	"aes-tool/crypto"
	"aes-tool/crypto/aesmodes"

	"golang.org/x/crypto/hkdf"
)

var (
	ErrEmptyPassphrase = errors.New("passphrase is empty")
)

// DeriveKey derives a size-byte AES key from a passphrase using HKDF-SHA256
func DeriveKey(passphrase string, size int) ([]byte, error) {
	if passphrase == "" {
		return nil, ErrEmptyPassphrase
	}
	if !aesmodes.ValidKeySize(size) {
		return nil, fmt.Errorf("%w: got %d", aesmodes.ErrInvalidKeyLength, size)
	}

	key := make([]byte, size)
	if _, err := KDF(crypto.DefaultHashFunc, []byte(passphrase), nil, configs.HKDFInfo, key); err != nil {
		return nil, err
	}
	return key, nil
}

// KDF fills buffer from an HKDF reader over keyMaterial
func KDF(hash func() hash.Hash, keyMaterial []byte, salt []byte, info []byte, buffer []byte) (int, error) {
	hkdfReader := hkdf.New(hash, keyMaterial, salt, info)
	return io.ReadFull(hkdfReader, buffer)
}

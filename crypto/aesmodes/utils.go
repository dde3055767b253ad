package aesmodes

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"fmt"
	"io"
	"unicode/utf8"
)

const (
	BlockSize = aes.BlockSize
	IVSize    = aes.BlockSize
)

// KeySizes are the key lengths in bytes for AES-128, AES-192 and AES-256.
var KeySizes = []int{16, 24, 32}

// ValidKeySize reports whether n is one of KeySizes.
func ValidKeySize(n int) bool {
	for _, size := range KeySizes {
		if n == size {
			return true
		}
	}
	return false
}

// NewKey returns size fresh random bytes.
func NewKey(size int) ([]byte, error) {
	if !ValidKeySize(size) {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidKeyLength, size)
	}
	key := make([]byte, size)
	if _, err := io.ReadFull(rand.Reader, key); err != nil {
		return nil, err
	}
	return key, nil
}

// NewIV returns a fresh random 16-byte IV.
func NewIV() ([]byte, error) {
	iv := make([]byte, IVSize)
	if _, err := io.ReadFull(rand.Reader, iv); err != nil {
		return nil, err
	}
	return iv, nil
}

// Encrypt pads the UTF-8 plaintext with PKCS#7 and encrypts it with AES in
// the given mode. An empty iv in CBC mode means one is generated and
// prepended to the result; a caller-supplied iv is never prepended.
// The iv is ignored in ECB mode.
func Encrypt(plaintext string, key []byte, mode Mode, iv []byte) ([]byte, error) {
	block, err := newBlock(key)
	if err != nil {
		return nil, err
	}

	padded := pkcs7Padding([]byte(plaintext), BlockSize)

	switch mode {
	case ECB:
		ciphertext := make([]byte, len(padded))
		newECBEncrypter(block).CryptBlocks(ciphertext, padded)
		return ciphertext, nil

	case CBC:
		generated := len(iv) == 0
		if generated {
			if iv, err = NewIV(); err != nil {
				return nil, err
			}
		} else if len(iv) != IVSize {
			return nil, fmt.Errorf("%w: got %d", ErrInvalidIVLength, len(iv))
		}

		offset := 0
		if generated {
			offset = IVSize
		}
		out := make([]byte, offset+len(padded))
		copy(out, iv[:offset])
		cipher.NewCBCEncrypter(block, iv).CryptBlocks(out[offset:], padded)
		return out, nil

	default:
		return nil, fmt.Errorf("%w: %d", ErrInvalidMode, int(mode))
	}
}

// Decrypt reverses Encrypt. In CBC mode with an empty iv the first block of
// ciphertext is taken as the IV.
func Decrypt(ciphertext []byte, key []byte, mode Mode, iv []byte) (string, error) {
	block, err := newBlock(key)
	if err != nil {
		return "", err
	}

	var decrypter cipher.BlockMode
	switch mode {
	case ECB:
		decrypter = newECBDecrypter(block)

	case CBC:
		if len(iv) == 0 {
			if len(ciphertext) < IVSize {
				return "", fmt.Errorf("%w: %d bytes is shorter than the IV", ErrInvalidCiphertextLength, len(ciphertext))
			}
			iv, ciphertext = ciphertext[:IVSize], ciphertext[IVSize:]
		} else if len(iv) != IVSize {
			return "", fmt.Errorf("%w: got %d", ErrInvalidIVLength, len(iv))
		}
		decrypter = cipher.NewCBCDecrypter(block, iv)

	default:
		return "", fmt.Errorf("%w: %d", ErrInvalidMode, int(mode))
	}

	if len(ciphertext) == 0 || len(ciphertext)%BlockSize != 0 {
		return "", fmt.Errorf("%w: %d bytes", ErrInvalidCiphertextLength, len(ciphertext))
	}

	padded := make([]byte, len(ciphertext))
	decrypter.CryptBlocks(padded, ciphertext)

	plaintext, err := pkcs7Unpadding(padded, BlockSize)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(plaintext) {
		return "", ErrDecode
	}
	return string(plaintext), nil
}

// CiphertextLen is the ciphertext size for n plaintext bytes, without any prepended IV.
func CiphertextLen(n int) int {
	return (n/BlockSize + 1) * BlockSize
}

func newBlock(key []byte) (cipher.Block, error) {
	if !ValidKeySize(len(key)) {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidKeyLength, len(key))
	}
	return aes.NewCipher(key)
}

func pkcs7Padding(data []byte, blockSize int) []byte {
	padding := blockSize - len(data)%blockSize
	padtext := bytes.Repeat([]byte{byte(padding)}, padding)
	out := make([]byte, 0, len(data)+padding)
	out = append(out, data...)
	return append(out, padtext...)
}

// pkcs7Unpadding checks every padding byte, not just the last one.
func pkcs7Unpadding(data []byte, blockSize int) ([]byte, error) {
	length := len(data)
	if length == 0 || length%blockSize != 0 {
		return nil, ErrPadding
	}
	unpadding := int(data[length-1])
	if unpadding == 0 || unpadding > blockSize {
		return nil, ErrPadding
	}
	for _, b := range data[length-unpadding:] {
		if int(b) != unpadding {
			return nil, ErrPadding
		}
	}
	return data[:length-unpadding], nil
}

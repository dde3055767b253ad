package session

import (
	"fmt"
	"strconv"
	"strings"

	"aes-tool/crypto/aesmodes"
	"aes-tool/crypto/encoding"
	"aes-tool/crypto/fingerprint"
	"aes-tool/crypto/hkdf"
)

// Every handler returns the input state unchanged alongside a non-nil error.

// Encrypt encrypts Input with the current key, IV and mode, and writes the
// ciphertext to Output in the selected format.
func Encrypt(s State) (State, error) {
	key, iv, err := s.keyAndIV()
	if err != nil {
		return s, err
	}
	ciphertext, err := aesmodes.Encrypt(s.Input, key, s.Mode, iv)
	if err != nil {
		return s, fmt.Errorf("encryption failed: %w", err)
	}
	out, err := encoding.Encode(ciphertext, s.Format)
	if err != nil {
		return s, fmt.Errorf("encryption failed: %w", err)
	}
	s.Output = out
	return s, nil
}

// Decrypt decodes Output in the selected format, decrypts it and replaces
// Output with the plaintext.
func Decrypt(s State) (State, error) {
	key, iv, err := s.keyAndIV()
	if err != nil {
		return s, err
	}
	ciphertext, err := encoding.Decode(s.Output, s.Format)
	if err != nil {
		return s, fmt.Errorf("decryption failed: %w", err)
	}
	plaintext, err := aesmodes.Decrypt(ciphertext, key, s.Mode, iv)
	if err != nil {
		return s, fmt.Errorf("decryption failed: %w", err)
	}
	s.Output = plaintext
	return s, nil
}

// Clear empties the text fields. Key size, mode and format stay selected.
func Clear(s State) (State, error) {
	s.Input = ""
	s.Key = ""
	s.IV = ""
	s.Output = ""
	return s, nil
}

func GenerateKey(s State) (State, error) {
	key, err := aesmodes.NewKey(s.KeySize)
	if err != nil {
		return s, err
	}
	s.Key = encoding.EncodeBase64(key)
	return s, nil
}

func GenerateIV(s State) (State, error) {
	iv, err := aesmodes.NewIV()
	if err != nil {
		return s, err
	}
	s.IV = encoding.EncodeBase64(iv)
	return s, nil
}

// SetKeySize only changes what GenerateKey and DeriveKey produce; the
// current key is left alone.
func SetKeySize(s State, size int) (State, error) {
	if !aesmodes.ValidKeySize(size) {
		return s, fmt.Errorf("%w: got %d", aesmodes.ErrInvalidKeyLength, size)
	}
	s.KeySize = size
	return s, nil
}

func SetMode(s State, name string) (State, error) {
	mode, err := aesmodes.ParseMode(name)
	if err != nil {
		return s, err
	}
	s.Mode = mode
	return s, nil
}

func SetFormat(s State, name string) (State, error) {
	format, err := encoding.ParseFormat(name)
	if err != nil {
		return s, err
	}
	s.Format = format
	return s, nil
}

// DeriveKey replaces Key with one derived from passphrase at the current key size.
func DeriveKey(s State, passphrase string) (State, error) {
	key, err := hkdf.DeriveKey(passphrase, s.KeySize)
	if err != nil {
		return s, err
	}
	s.Key = encoding.EncodeBase64(key)
	return s, nil
}

// Fingerprint returns the safety code of the current key.
func Fingerprint(s State) (string, error) {
	key, err := encoding.DecodeBase64(s.Key)
	if err != nil {
		return "", fmt.Errorf("key: %w", err)
	}
	fp, err := fingerprint.Fingerprint(key)
	if err != nil {
		return "", err
	}
	return fingerprint.String(fp), nil
}

// keyAndIV decodes the Base64 key and, in CBC mode, the IV. A key that does
// not decode is an error, never a reason to fall back to a fresh one. ECB
// never looks at the IV text.
func (s State) keyAndIV() (key, iv []byte, err error) {
	key, err = encoding.DecodeBase64(s.Key)
	if err != nil {
		return nil, nil, fmt.Errorf("key: %w", err)
	}
	if s.Mode.NeedsIV() && strings.TrimSpace(s.IV) != "" {
		iv, err = encoding.DecodeBase64(s.IV)
		if err != nil {
			return nil, nil, fmt.Errorf("iv: %w", err)
		}
	}
	return key, iv, nil
}

// Action names a form button or selector.
type Action string

const (
	ActionEncrypt     Action = "encrypt"
	ActionDecrypt     Action = "decrypt"
	ActionClear       Action = "clear"
	ActionGenerateKey Action = "generate-key"
	ActionGenerateIV  Action = "generate-iv"
	ActionSetKeySize  Action = "set-key-size"
	ActionSetMode     Action = "set-mode"
	ActionSetFormat   Action = "set-format"
	ActionDeriveKey   Action = "derive-key"
)

// Apply runs the handler behind action. arg carries the selector value or
// passphrase for actions that take one.
func Apply(s State, action Action, arg string) (State, error) {
	switch action {
	case ActionEncrypt:
		return Encrypt(s)
	case ActionDecrypt:
		return Decrypt(s)
	case ActionClear:
		return Clear(s)
	case ActionGenerateKey:
		return GenerateKey(s)
	case ActionGenerateIV:
		return GenerateIV(s)
	case ActionSetKeySize:
		size, err := strconv.Atoi(strings.TrimSpace(arg))
		if err != nil {
			return s, fmt.Errorf("%w: %q", aesmodes.ErrInvalidKeyLength, arg)
		}
		return SetKeySize(s, size)
	case ActionSetMode:
		return SetMode(s, arg)
	case ActionSetFormat:
		return SetFormat(s, arg)
	case ActionDeriveKey:
		return DeriveKey(s, arg)
	default:
		return s, fmt.Errorf("%w: %q", ErrUnknownAction, action)
	}
}

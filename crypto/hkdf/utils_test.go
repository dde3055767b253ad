package hkdf

import (
	"testing"

	"aes-tool/crypto/aesmodes"

	"github.com/stretchr/testify/assert"
)

func TestDeriveKey(t *testing.T) {
	tests := []struct {
		name       string
		passphrase string
		size       int
		wantErr    error
	}{
		{"AES-128", "correct horse battery staple", 16, nil},
		{"AES-192", "correct horse battery staple", 24, nil},
		{"AES-256", "correct horse battery staple", 32, nil},
		{"Empty passphrase", "", 32, ErrEmptyPassphrase},
		{"Bad size", "correct horse battery staple", 20, aesmodes.ErrInvalidKeyLength},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, err := DeriveKey(tt.passphrase, tt.size)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
			assert.Len(t, key, tt.size)

			// Derivation is deterministic
			again, err := DeriveKey(tt.passphrase, tt.size)
			assert.NoError(t, err)
			assert.Equal(t, key, again)

			// A different passphrase gives a different key
			other, err := DeriveKey(tt.passphrase+"!", tt.size)
			assert.NoError(t, err)
			assert.NotEqual(t, key, other)
		})
	}
}

func TestDerivedKeyEncrypts(t *testing.T) {
	key, err := DeriveKey("hunter2", 24)
	assert.NoError(t, err)

	ciphertext, err := aesmodes.Encrypt("HELLO", key, aesmodes.CBC, nil)
	assert.NoError(t, err)

	again, err := DeriveKey("hunter2", 24)
	assert.NoError(t, err)
	plaintext, err := aesmodes.Decrypt(ciphertext, again, aesmodes.CBC, nil)
	assert.NoError(t, err)
	assert.Equal(t, "HELLO", plaintext)
}

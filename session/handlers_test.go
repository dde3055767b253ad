package session

import (
	"errors"
	"testing"

	"aes-tool/crypto/aesmodes"
	"aes-tool/crypto/encoding"
	"aes-tool/crypto/hkdf"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestState(t *testing.T, mode aesmodes.Mode, format encoding.Format) State {
	s, err := New(Defaults{Input: "HELLO", KeySize: 16, Mode: mode, Format: format})
	require.NoError(t, err)
	return s
}

func TestNew(t *testing.T) {
	s := newTestState(t, aesmodes.CBC, encoding.Base64)

	key, err := encoding.DecodeBase64(s.Key)
	require.NoError(t, err)
	assert.Len(t, key, 16)
	assert.Empty(t, s.IV)
	assert.Empty(t, s.Output)
	assert.Equal(t, "HELLO", s.Input)
}

func TestEncryptThenDecrypt(t *testing.T) {
	tests := []struct {
		name      string
		mode      aesmodes.Mode
		format    encoding.Format
		withIV    bool
		outputLen int
	}{
		{"ECB Base64", aesmodes.ECB, encoding.Base64, false, 24},
		{"ECB Hex", aesmodes.ECB, encoding.Hex, false, 32},
		{"CBC Base64 generated IV", aesmodes.CBC, encoding.Base64, false, 44},
		{"CBC Hex generated IV", aesmodes.CBC, encoding.Hex, false, 64},
		{"CBC Base64 explicit IV", aesmodes.CBC, encoding.Base64, true, 24},
		{"CBC Hex explicit IV", aesmodes.CBC, encoding.Hex, true, 32},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestState(t, tt.mode, tt.format)
			if tt.withIV {
				var err error
				s, err = GenerateIV(s)
				require.NoError(t, err)
			}

			encrypted, err := Encrypt(s)
			require.NoError(t, err)
			assert.Len(t, encrypted.Output, tt.outputLen)
			assert.Equal(t, "HELLO", encrypted.Input)

			decrypted, err := Decrypt(encrypted)
			require.NoError(t, err)
			assert.Equal(t, "HELLO", decrypted.Output)
		})
	}
}

func TestInvalidKeyTextIsAnError(t *testing.T) {
	s := newTestState(t, aesmodes.CBC, encoding.Base64)
	s.Key = "not base64!"

	got, err := Encrypt(s)
	assert.ErrorIs(t, err, encoding.ErrInvalidEncoding)
	assert.Equal(t, s, got)

	got, err = Decrypt(s)
	assert.ErrorIs(t, err, encoding.ErrInvalidEncoding)
	assert.Equal(t, s, got)
}

func TestInvalidIVTextIsAnError(t *testing.T) {
	s := newTestState(t, aesmodes.CBC, encoding.Base64)
	s.IV = "%%%"

	_, err := Encrypt(s)
	assert.ErrorIs(t, err, encoding.ErrInvalidEncoding)
}

func TestECBIgnoresIVText(t *testing.T) {
	tests := []struct {
		name string
		iv   string
	}{
		{"malformed Base64", "not base64!"},
		{"wrong length", "AQIDBAU="},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestState(t, aesmodes.ECB, encoding.Base64)
			s.IV = tt.iv

			encrypted, err := Encrypt(s)
			require.NoError(t, err)
			assert.Len(t, encrypted.Output, 24)

			decrypted, err := Decrypt(encrypted)
			require.NoError(t, err)
			assert.Equal(t, "HELLO", decrypted.Output)
			assert.Equal(t, tt.iv, decrypted.IV)
		})
	}
}

func TestHandlersDoNotMutateOnError(t *testing.T) {
	s := newTestState(t, aesmodes.ECB, encoding.Base64)
	s.Output = "Zm9v=="

	tests := []struct {
		name    string
		run     func(State) (State, error)
		wantErr error
	}{
		{"decrypt malformed output", Decrypt, encoding.ErrInvalidEncoding},
		{"bad key size", func(s State) (State, error) { return SetKeySize(s, 20) }, aesmodes.ErrInvalidKeyLength},
		{"bad mode", func(s State) (State, error) { return SetMode(s, "CTR") }, aesmodes.ErrInvalidMode},
		{"bad format", func(s State) (State, error) { return SetFormat(s, "ascii85") }, encoding.ErrInvalidFormat},
		{"empty passphrase", func(s State) (State, error) { return DeriveKey(s, "") }, hkdf.ErrEmptyPassphrase},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.run(s)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, s, got)
		})
	}
}

func TestDecryptWrongKey(t *testing.T) {
	s := newTestState(t, aesmodes.CBC, encoding.Base64)
	encrypted, err := Encrypt(s)
	require.NoError(t, err)

	encrypted, err = GenerateKey(encrypted)
	require.NoError(t, err)

	_, err = Decrypt(encrypted)
	require.Error(t, err)
	assert.True(t, errors.Is(err, aesmodes.ErrPadding) || errors.Is(err, aesmodes.ErrDecode), "unexpected error: %v", err)
}

func TestClear(t *testing.T) {
	s := newTestState(t, aesmodes.ECB, encoding.Hex)
	s, err := GenerateIV(s)
	require.NoError(t, err)
	s, err = Encrypt(s)
	require.NoError(t, err)

	cleared, err := Clear(s)
	require.NoError(t, err)
	assert.Equal(t, State{KeySize: 16, Mode: aesmodes.ECB, Format: encoding.Hex}, cleared)

	_, err = Encrypt(cleared)
	assert.ErrorIs(t, err, aesmodes.ErrInvalidKeyLength)
}

func TestGenerateKeyUsesKeySize(t *testing.T) {
	s := newTestState(t, aesmodes.ECB, encoding.Base64)
	before := s.Key

	s, err := SetKeySize(s, 32)
	require.NoError(t, err)
	assert.Equal(t, before, s.Key, "changing the size must not regenerate the key")

	s, err = GenerateKey(s)
	require.NoError(t, err)
	key, err := encoding.DecodeBase64(s.Key)
	require.NoError(t, err)
	assert.Len(t, key, 32)
}

func TestDeriveKey(t *testing.T) {
	s := newTestState(t, aesmodes.CBC, encoding.Base64)
	s, err := SetKeySize(s, 24)
	require.NoError(t, err)

	a, err := DeriveKey(s, "open sesame")
	require.NoError(t, err)
	b, err := DeriveKey(s, "open sesame")
	require.NoError(t, err)
	assert.Equal(t, a.Key, b.Key)

	key, err := encoding.DecodeBase64(a.Key)
	require.NoError(t, err)
	assert.Len(t, key, 24)
}

func TestFingerprint(t *testing.T) {
	s := newTestState(t, aesmodes.CBC, encoding.Base64)
	fp, err := Fingerprint(s)
	require.NoError(t, err)
	assert.Len(t, fp, 35)

	s.Key = ""
	_, err = Fingerprint(s)
	assert.Error(t, err)
}

func TestApply(t *testing.T) {
	s := newTestState(t, aesmodes.ECB, encoding.Base64)

	s, err := Apply(s, ActionSetMode, "cbc")
	require.NoError(t, err)
	assert.Equal(t, aesmodes.CBC, s.Mode)

	s, err = Apply(s, ActionSetFormat, "Hexadecimal")
	require.NoError(t, err)
	assert.Equal(t, encoding.Hex, s.Format)

	s, err = Apply(s, ActionSetKeySize, "32")
	require.NoError(t, err)
	assert.Equal(t, 32, s.KeySize)

	_, err = Apply(s, ActionSetKeySize, "big")
	assert.ErrorIs(t, err, aesmodes.ErrInvalidKeyLength)

	s, err = Apply(s, ActionGenerateIV, "")
	require.NoError(t, err)
	assert.NotEmpty(t, s.IV)

	s, err = Apply(s, ActionEncrypt, "")
	require.NoError(t, err)
	s, err = Apply(s, ActionDecrypt, "")
	require.NoError(t, err)
	assert.Equal(t, "HELLO", s.Output)

	_, err = Apply(s, Action("explode"), "")
	assert.ErrorIs(t, err, ErrUnknownAction)
}

package encoding

import (
	"bytes"
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	for _, format := range Formats {
		for n := 0; n < 70; n++ {
			data := make([]byte, n)
			_, err := rand.Read(data)
			require.NoError(t, err)

			text, err := Encode(data, format)
			require.NoError(t, err)

			got, err := Decode(text, format)
			require.NoError(t, err)
			// bytes.Equal treats nil and empty alike, so n == 0 is checked too
			assert.True(t, bytes.Equal(data, got), "%s round trip of %d bytes: got %x", format, n, got)
			if n == 0 {
				assert.Empty(t, text)
			}
		}
	}
}

func TestEncodeKnownValues(t *testing.T) {
	text, err := Encode([]byte("foo"), Base64)
	require.NoError(t, err)
	assert.Equal(t, "Zm9v", text)

	text, err = Encode([]byte{0xde, 0xad, 0xBE, 0xef}, Hex)
	require.NoError(t, err)
	assert.Equal(t, "deadbeef", text)
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		format  Format
		want    []byte
		wantErr bool
	}{
		{"base64", "Zm9v", Base64, []byte("foo"), false},
		{"base64 padded", "Zm8=", Base64, []byte("fo"), false},
		{"base64 trailing newline", "Zm9v\n", Base64, []byte("foo"), false},
		{"base64 malformed padding", "Zm9v==", Base64, nil, true},
		{"base64 bad alphabet", "Zm9v!!!!", Base64, nil, true},
		{"base64 missing padding", "Zm8", Base64, nil, true},
		{"hex lower", "deadbeef", Hex, []byte{0xde, 0xad, 0xbe, 0xef}, false},
		{"hex upper", "DEADBEEF", Hex, []byte{0xde, 0xad, 0xbe, 0xef}, false},
		{"hex odd length", "abc", Hex, nil, true},
		{"hex bad digit", "zz", Hex, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode(tt.text, tt.format)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidEncoding)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"Base64", Base64, false},
		{"base64", Base64, false},
		{"Hex", Hex, false},
		{"Hexadecimal", Hex, false},
		{"binary", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidFormat)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestUnknownFormat(t *testing.T) {
	_, err := Encode([]byte("x"), Format(9))
	assert.ErrorIs(t, err, ErrInvalidFormat)

	_, err = Decode("x", Format(9))
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

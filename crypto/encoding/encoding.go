package encoding

import (
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"
)

// Format is the text representation used to display binary data.
type Format int

const (
	Base64 Format = iota
	Hex
)

// Formats lists the supported formats in display order.
var Formats = []Format{Base64, Hex}

var strictBase64 = base64.StdEncoding.Strict()

func (f Format) String() string {
	switch f {
	case Base64:
		return "Base64"
	case Hex:
		return "Hex"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// ParseFormat accepts "Base64", "Hex" or "Hexadecimal" in any case.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "base64":
		return Base64, nil
	case "hex", "hexadecimal":
		return Hex, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidFormat, s)
	}
}

func (f Format) MarshalText() ([]byte, error) {
	if f != Base64 && f != Hex {
		return nil, fmt.Errorf("%w: %d", ErrInvalidFormat, int(f))
	}
	return []byte(f.String()), nil
}

func (f *Format) UnmarshalText(text []byte) error {
	parsed, err := ParseFormat(string(text))
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

// Encode renders data as text. Hex output is lowercase.
func Encode(data []byte, format Format) (string, error) {
	switch format {
	case Base64:
		return strictBase64.EncodeToString(data), nil
	case Hex:
		return hex.EncodeToString(data), nil
	default:
		return "", fmt.Errorf("%w: %d", ErrInvalidFormat, int(format))
	}
}

// Decode is the inverse of Encode. Surrounding whitespace is ignored.
func Decode(text string, format Format) ([]byte, error) {
	text = strings.TrimSpace(text)

	var (
		data []byte
		err  error
	)
	switch format {
	case Base64:
		data, err = strictBase64.DecodeString(text)
	case Hex:
		data, err = hex.DecodeString(text)
	default:
		return nil, fmt.Errorf("%w: %d", ErrInvalidFormat, int(format))
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidEncoding, format, err)
	}
	return data, nil
}

// EncodeBase64 and DecodeBase64 handle key and IV text, which is always Base64.
func EncodeBase64(data []byte) string {
	return strictBase64.EncodeToString(data)
}

func DecodeBase64(text string) ([]byte, error) {
	return Decode(text, Base64)
}

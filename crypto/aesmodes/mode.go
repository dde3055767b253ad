package aesmodes

import (
	"fmt"
	"strings"
)

type Mode int

const (
	ECB Mode = iota
	CBC
)

// Modes lists the supported modes in display order.
var Modes = []Mode{ECB, CBC}

func (m Mode) String() string {
	switch m {
	case ECB:
		return "ECB"
	case CBC:
		return "CBC"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// NeedsIV reports whether the mode chains blocks from an initialization vector.
func (m Mode) NeedsIV() bool {
	return m == CBC
}

// ParseMode accepts "ECB" or "CBC" in any case.
func ParseMode(s string) (Mode, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "ECB":
		return ECB, nil
	case "CBC":
		return CBC, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidMode, s)
	}
}

func (m Mode) MarshalText() ([]byte, error) {
	if m != ECB && m != CBC {
		return nil, fmt.Errorf("%w: %d", ErrInvalidMode, int(m))
	}
	return []byte(m.String()), nil
}

func (m *Mode) UnmarshalText(text []byte) error {
	parsed, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

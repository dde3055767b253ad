package session

import (
	"fmt"
	"strconv"

	"aes-tool/configs"
	"aes-tool/crypto/aesmodes"
	"aes-tool/crypto/encoding"
)

// State is everything the form shows. Handlers take a State and return the
// next one; the UI layer decides where it lives between interactions.
type State struct {
	Input   string          `json:"input"`
	KeySize int             `json:"key_size"`
	Key     string          `json:"key"` // Base64
	IV      string          `json:"iv"`  // Base64, empty when absent
	Mode    aesmodes.Mode   `json:"mode"`
	Format  encoding.Format `json:"format"`
	Output  string          `json:"output"`
}

// Defaults seed a new State.
type Defaults struct {
	Input   string
	KeySize int
	Mode    aesmodes.Mode
	Format  encoding.Format
}

// DefaultsFromConfig reads the form defaults from configs.
func DefaultsFromConfig() (Defaults, error) {
	if !aesmodes.ValidKeySize(configs.DefaultKeySize) {
		return Defaults{}, fmt.Errorf("default key size: %w: got %d", aesmodes.ErrInvalidKeyLength, configs.DefaultKeySize)
	}
	mode, err := aesmodes.ParseMode(configs.DefaultMode)
	if err != nil {
		return Defaults{}, fmt.Errorf("default mode: %w", err)
	}
	format, err := encoding.ParseFormat(configs.DefaultFormat)
	if err != nil {
		return Defaults{}, fmt.Errorf("default format: %w", err)
	}
	return Defaults{
		Input:   configs.DefaultInput,
		KeySize: configs.DefaultKeySize,
		Mode:    mode,
		Format:  format,
	}, nil
}

// New builds the first State of a session, with a freshly generated key.
func New(d Defaults) (State, error) {
	s := State{
		Input:   d.Input,
		KeySize: d.KeySize,
		Mode:    d.Mode,
		Format:  d.Format,
	}
	return GenerateKey(s)
}

// KeySizeLabel renders a key size the way the form selector shows it.
func KeySizeLabel(size int) string {
	return strconv.Itoa(size) + " bytes (AES-" + strconv.Itoa(size*8) + ")"
}

package client

import (
	"fmt"
	"strconv"

	"aes-tool/crypto/aesmodes"
	"aes-tool/crypto/encoding"
	"aes-tool/session"

	"github.com/jroimartin/gocui"
	"github.com/sirupsen/logrus"
)

type FormApp struct {
	Gui    *gocui.Gui
	logger *logrus.Logger

	state       session.State
	fingerprint string
	status      string
	statusIsErr bool
}

// NewFormApp initializes a FormApp showing state
func NewFormApp(state session.State, logger *logrus.Logger) *FormApp {
	app := &FormApp{state: state, logger: logger}
	app.refreshFingerprint()
	app.status = "Ready"
	return app
}

// State returns the current form state
func (app *FormApp) State() session.State {
	return app.state
}

// apply runs a form action on the current state and records the outcome in the status line.
// On failure the state is left as it was.
func (app *FormApp) apply(action session.Action, arg string) {
	next, err := session.Apply(app.state, action, arg)
	if err != nil {
		app.logger.Infof("%s failed: %v", action, err)
		app.status = err.Error()
		app.statusIsErr = true
		return
	}
	app.state = next
	app.refreshFingerprint()
	app.status = statusMessage(action, next)
	app.statusIsErr = false
	app.logger.Debugf("%s done", action)
}

func statusMessage(action session.Action, s session.State) string {
	switch action {
	case session.ActionEncrypt:
		return fmt.Sprintf("Encrypted with AES-%s", s.Mode)
	case session.ActionDecrypt:
		return "Decrypted"
	case session.ActionClear:
		return "Cleared"
	case session.ActionGenerateKey:
		return fmt.Sprintf("Generated %d-byte key", s.KeySize)
	case session.ActionGenerateIV:
		return "Generated IV"
	case session.ActionDeriveKey:
		return fmt.Sprintf("Derived %d-byte key from passphrase", s.KeySize)
	case session.ActionSetKeySize:
		return "Key size: " + session.KeySizeLabel(s.KeySize)
	case session.ActionSetMode:
		return "Mode: " + s.Mode.String()
	case session.ActionSetFormat:
		return "Format: " + s.Format.String()
	default:
		return string(action)
	}
}

func (app *FormApp) refreshFingerprint() {
	fp, err := session.Fingerprint(app.state)
	if err != nil {
		app.fingerprint = "-"
		return
	}
	app.fingerprint = fp
}

// nextKeySize cycles 16 -> 24 -> 32 -> 16
func nextKeySize(current int) int {
	for i, size := range aesmodes.KeySizes {
		if size == current {
			return aesmodes.KeySizes[(i+1)%len(aesmodes.KeySizes)]
		}
	}
	return aesmodes.KeySizes[0]
}

func (app *FormApp) cycleKeySize() {
	app.apply(session.ActionSetKeySize, strconv.Itoa(nextKeySize(app.state.KeySize)))
}

func (app *FormApp) toggleMode() {
	next := aesmodes.CBC
	if app.state.Mode == aesmodes.CBC {
		next = aesmodes.ECB
	}
	app.apply(session.ActionSetMode, next.String())
}

func (app *FormApp) toggleFormat() {
	next := encoding.Hex
	if app.state.Format == encoding.Hex {
		next = encoding.Base64
	}
	app.apply(session.ActionSetFormat, next.String())
}

// optionsLine is the read-only summary row of the form
func (app *FormApp) optionsLine() string {
	return fmt.Sprintf("Key size: %s | Mode: %s | Format: %s | Fingerprint: %s",
		session.KeySizeLabel(app.state.KeySize), app.state.Mode, app.state.Format, app.fingerprint)
}

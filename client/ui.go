package client

import (
	"errors"
	"fmt"
	"strings"

	"aes-tool/session"

	"github.com/jroimartin/gocui"
)

const (
	viewInput   = "input"
	viewKey     = "key"
	viewIV      = "iv"
	viewOptions = "options"
	viewOutput  = "output"
	viewStatus  = "status"

	helpLine = "F2 Encrypt  F3 Decrypt  F4 Clear  F5 Key  F6 IV  F7 Size  F8 Mode  F9 Format  F10 Derive  Tab Next  ^C Quit"
)

// editableViews is the Tab order
var editableViews = []string{viewInput, viewKey, viewIV, viewOutput}

// InitGui initializes the gocui screen and key bindings
func (app *FormApp) InitGui() error {
	g, err := gocui.NewGui(gocui.OutputNormal)
	if err != nil {
		return fmt.Errorf("failed to initialize gocui: %w", err)
	}
	app.Gui = g
	g.Cursor = true
	g.SetManagerFunc(app.layout)

	if err := app.setKeybindings(g); err != nil {
		g.Close()
		return fmt.Errorf("failed to set keybindings: %w", err)
	}
	return nil
}

func (app *FormApp) setKeybindings(g *gocui.Gui) error {
	actions := []struct {
		key gocui.Key
		run func(v *gocui.View)
	}{
		{gocui.KeyF2, func(_ *gocui.View) { app.apply(session.ActionEncrypt, "") }},
		{gocui.KeyF3, func(_ *gocui.View) { app.apply(session.ActionDecrypt, "") }},
		{gocui.KeyF4, func(_ *gocui.View) { app.apply(session.ActionClear, "") }},
		{gocui.KeyF5, func(_ *gocui.View) { app.apply(session.ActionGenerateKey, "") }},
		{gocui.KeyF6, func(_ *gocui.View) { app.apply(session.ActionGenerateIV, "") }},
		{gocui.KeyF7, func(_ *gocui.View) { app.cycleKeySize() }},
		{gocui.KeyF8, func(_ *gocui.View) { app.toggleMode() }},
		{gocui.KeyF9, func(_ *gocui.View) { app.toggleFormat() }},
		// the key view holds the passphrase when deriving
		{gocui.KeyF10, func(_ *gocui.View) { app.apply(session.ActionDeriveKey, app.state.Key) }},
	}

	for _, a := range actions {
		run := a.run
		if err := g.SetKeybinding("", a.key, gocui.ModNone, func(g *gocui.Gui, v *gocui.View) error {
			app.readViews(g)
			run(v)
			return app.render(g)
		}); err != nil {
			return err
		}
	}

	if err := g.SetKeybinding("", gocui.KeyTab, gocui.ModNone, app.nextView); err != nil {
		return err
	}
	return g.SetKeybinding("", gocui.KeyCtrlC, gocui.ModNone, app.quit)
}

// Layout function for the UI
func (app *FormApp) layout(g *gocui.Gui) error {
	maxX, maxY := g.Size()
	inputBottom := maxY / 4
	keyTop := inputBottom + 1
	ivTop := keyTop + 3
	optionsTop := ivTop + 3
	outputTop := optionsTop + 3
	statusTop := maxY - 4

	created := false
	views := []struct {
		name           string
		title          string
		x0, y0, x1, y1 int
		editable       bool
	}{
		{viewInput, "Input Text", 0, 0, maxX - 1, inputBottom, true},
		{viewKey, "Secret Key (Base64) / passphrase for F10", 0, keyTop, maxX - 1, keyTop + 2, true},
		{viewIV, "IV (Base64), empty for a random IV", 0, ivTop, maxX - 1, ivTop + 2, true},
		{viewOptions, "Options", 0, optionsTop, maxX - 1, optionsTop + 2, false},
		{viewOutput, "Output", 0, outputTop, maxX - 1, statusTop - 1, true},
		{viewStatus, helpLine, 0, statusTop, maxX - 1, maxY - 2, false},
	}

	for _, vc := range views {
		v, err := g.SetView(vc.name, vc.x0, vc.y0, vc.x1, vc.y1)
		if err != nil {
			if !errors.Is(err, gocui.ErrUnknownView) {
				return err
			}
			v.Title = vc.title
			v.Editable = vc.editable
			v.Wrap = true
			created = true
		}
	}

	if created {
		if _, err := g.SetCurrentView(viewInput); err != nil {
			return err
		}
		return app.render(g)
	}
	return nil
}

// readViews copies what the user typed back into the state
func (app *FormApp) readViews(g *gocui.Gui) {
	read := func(name string, trim func(string) string) string {
		v, err := g.View(name)
		if err != nil {
			return ""
		}
		return trim(v.Buffer())
	}
	trimNewlines := func(s string) string { return strings.TrimRight(s, "\n") }

	app.state.Input = read(viewInput, trimNewlines)
	app.state.Key = read(viewKey, strings.TrimSpace)
	app.state.IV = read(viewIV, strings.TrimSpace)
	app.state.Output = read(viewOutput, trimNewlines)
	app.refreshFingerprint()
}

// render writes the state into every view
func (app *FormApp) render(g *gocui.Gui) error {
	// cells keep the colour they were written with, so set it first
	status, err := g.View(viewStatus)
	if err != nil {
		return err
	}
	if app.statusIsErr {
		status.FgColor = gocui.ColorRed
	} else {
		status.FgColor = gocui.ColorGreen
	}

	contents := map[string]string{
		viewInput:   app.state.Input,
		viewKey:     app.state.Key,
		viewIV:      app.state.IV,
		viewOptions: app.optionsLine(),
		viewOutput:  app.state.Output,
		viewStatus:  app.status,
	}
	for name, text := range contents {
		v, err := g.View(name)
		if err != nil {
			return err
		}
		v.Clear()
		v.SetCursor(0, 0)
		v.SetOrigin(0, 0)
		fmt.Fprint(v, text)
	}
	return nil
}

// nextView moves focus along the Tab order
func (app *FormApp) nextView(g *gocui.Gui, v *gocui.View) error {
	next := editableViews[0]
	if v != nil {
		for i, name := range editableViews {
			if name == v.Name() {
				next = editableViews[(i+1)%len(editableViews)]
				break
			}
		}
	}
	_, err := g.SetCurrentView(next)
	return err
}

// quit handles quitting the application
func (app *FormApp) quit(_ *gocui.Gui, _ *gocui.View) error {
	app.logger.Info("Shutting down gracefully...")
	return gocui.ErrQuit
}

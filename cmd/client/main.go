package main

import (
	"errors"
	"os"

	"aes-tool/client"
	"aes-tool/configs"
	"aes-tool/session"

	"github.com/jroimartin/gocui"
	"github.com/sirupsen/logrus"
)

var logger = logrus.New()

func main() {
	configs.Load(logger)

	// The terminal belongs to gocui, so logs go to a file
	logFile, err := os.OpenFile(configs.ClientLogPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		logger.Fatalf("Error opening log file %s: %v", configs.ClientLogPath, err)
	}
	defer logFile.Close()
	logger.SetOutput(logFile)

	defaults, err := session.DefaultsFromConfig()
	if err != nil {
		logger.Fatalf("Invalid form defaults: %v", err)
	}
	state, err := session.New(defaults)
	if err != nil {
		logger.Fatalf("Error creating form state: %v", err)
	}

	formApp := client.NewFormApp(state, logger)
	if err := formApp.InitGui(); err != nil {
		logger.Fatalf("Error initializing gocui interface: %v", err)
	}
	defer formApp.Gui.Close()

	if err := formApp.Gui.MainLoop(); err != nil && !errors.Is(err, gocui.ErrQuit) {
		logger.Errorf("Error in gocui main loop: %v", err)
		return
	}

	logger.Info("Application exited.")
}

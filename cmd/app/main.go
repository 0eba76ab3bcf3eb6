// Simple Image Editor
// Loads a raster image, applies simple pixel transformations and exports
// the result.

package main

import (
	"fmt"
	"os"

	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/theme"
	"github.com/alecthomas/kong"
	"github.com/sirupsen/logrus"

	"simple-image-editor/internal/config"
	"simple-image-editor/internal/core"
	"simple-image-editor/internal/editor"
	"simple-image-editor/internal/gui"
	"simple-image-editor/internal/io"
)

const (
	AppName    = "Simple Image Editor"
	AppID      = "com.example.simple-image-editor"
	AppVersion = "1.0.0"
)

type CLI struct {
	Debug   bool             `help:"Enable debug mode with verbose logging"`
	Config  string           `help:"YAML file with editor defaults" type:"existingfile"`
	Version kong.VersionFlag `help:"Print version and exit"`
	Image   string           `arg:"" optional:"" help:"Image to open at launch" type:"path"`
}

func (c *CLI) Validate(kctx *kong.Context) error {
	if c.Image != "" && !io.IsSupported(c.Image) {
		return fmt.Errorf("unsupported image format %q (want one of %v)", c.Image, io.SupportedExtensions())
	}
	return nil
}

func main() {
	var cli CLI
	kong.Parse(&cli,
		kong.Name("simple-image-editor"),
		kong.Description(AppName),
		kong.Vars{"version": AppVersion},
	)

	cfg := config.Default()
	if cli.Config != "" {
		var err error
		if cfg, err = config.Load(cli.Config); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}

	logger := initLogger(cli.Debug, cfg.Log.Level)
	logger.WithFields(logrus.Fields{
		"version":    AppVersion,
		"debug_mode": cli.Debug,
		"config":     cli.Config,
	}).Info("Starting Simple Image Editor")

	myApp := app.NewWithID(AppID)
	myApp.SetIcon(theme.DocumentIcon())
	myApp.Settings().SetTheme(theme.DefaultTheme())

	session := core.NewSession()
	ed := editor.New(session, io.NewImageLoader(logger), logger)
	ed.SetPreviewBounds(cfg.Preview.MaxWidth, cfg.Preview.MaxHeight)

	mainApp := gui.NewApplication(myApp, ed, session, cfg, logger)
	if cli.Image != "" {
		mainApp.OpenPath(cli.Image)
	}
	mainApp.ShowAndRun()

	logger.Info("Application shutting down gracefully")
	os.Exit(0)
}

// initLogger initializes the logger with appropriate level. A level from
// the config file overrides the one selected by --debug.
func initLogger(debugMode bool, level string) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)

	if debugMode {
		logger.SetLevel(logrus.DebugLevel)
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
			ForceColors:   true,
		})
	} else {
		logger.SetLevel(logrus.InfoLevel)
		logger.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02 15:04:05",
		})
	}

	if level != "" {
		if lvl, err := logrus.ParseLevel(level); err == nil {
			logger.SetLevel(lvl)
		}
	}

	logger.Debug("Debug logging enabled")
	return logger
}

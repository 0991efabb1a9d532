package main

import (
	"os"

	"github.com/alecthomas/kong"
	"github.com/mgmeyers/pdfannotator/config"
	"github.com/mgmeyers/pdfannotator/ui"
	"github.com/sirupsen/logrus"
)

var args struct {
	Folder       string `short:"f" type:"existingdir" help:"Folder to open instead of the last used one"`
	LastFolder   string `short:"c" type:"path" help:"File that remembers the last opened folder"`
	SettingsPath string `short:"s" name:"settings" type:"path" help:"YAML settings file"`
	LogLevel     string `short:"l" enum:"debug,info,warn,error" default:"warn" help:"Log level. One of debug, info, warn, error"`
}

func endIfErr(log *logrus.Entry, e error) {
	if e != nil {
		log.WithError(e).Fatal("pdfannotator failed")
	}
}

func main() {
	kong.Parse(&args, kong.Description("View PDFs in a folder and annotate them with highlights and text."))

	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	level, err := logrus.ParseLevel(args.LogLevel)
	if err == nil {
		logger.SetLevel(level)
	}

	log := logrus.NewEntry(logger).WithField("component", "main")

	if args.LastFolder == "" {
		args.LastFolder = config.DefaultLastFolderPath()
	}
	if args.SettingsPath == "" {
		args.SettingsPath = config.DefaultSettingsPath()
	}

	settings, err := config.InitSettings(args.SettingsPath)
	if err != nil {
		log.WithError(err).Warn("using default settings")
	}

	err = ui.Run(ui.Options{
		Folder:     args.Folder,
		LastFolder: config.LastFolder{Path: args.LastFolder},
		Settings:   settings,
		Log:        log.WithField("component", "ui"),
	})
	endIfErr(log, err)
}

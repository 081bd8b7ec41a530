package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/faiface/mainthread"
	"github.com/memmaker/glsandbox/engine/glyph"
	"github.com/memmaker/glsandbox/engine/util"
)

func main() {
	configPath := flag.String("config", "", "JSON config file")
	fontPath := flag.String("font", "", "TrueType/OpenType font file (default: Go Regular)")
	fontSize := flag.Int("size", 0, "font pixel size")
	text := flag.String("text", "", "overlay text")
	flag.Parse()

	cfg, err := LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "font":
			cfg.FontPath = *fontPath
		case "size":
			cfg.FontSize = *fontSize
		case "text":
			cfg.Text = *text
		}
	})
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	level, _ := util.ParseLogLevel(cfg.LogLevel)
	util.GLOBAL_LOG_LEVEL = level
	if level == util.LogLevelDebug {
		util.GLOBAL_LOG_CATEGORIES |= util.LogInput
		glyph.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	mainthread.Run(func() {
		run(cfg)
	})
}

func run(cfg Config) {
	var sandbox *Sandbox
	mainthread.Call(func() {
		var err error
		sandbox, err = NewSandbox(cfg)
		if err != nil {
			util.LogGlError(err.Error())
			panic(err)
		}
	})
	mainthread.Call(sandbox.Run)
}

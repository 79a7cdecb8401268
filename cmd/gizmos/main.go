package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"gizmo-overlay/internal/commands"
	"gizmo-overlay/internal/config"
	"gizmo-overlay/internal/gizmo"
	"gizmo-overlay/internal/logger"
)

func main() {
	var (
		configPath string
		ticks      int
		producers  int
		noLine     bool
	)
	common := func(fs *flag.FlagSet) {
		fs.StringVar(&configPath, "config", config.DefaultPath, "YAML config file")
		fs.BoolVar(&noLine, "no-line", false, "do not join the demo shapes with a line")
	}

	reg := commands.NewRegistry("window")

	windowFlags := flag.NewFlagSet("window", flag.ExitOnError)
	common(windowFlags)
	reg.Register("window", "open the interactive demo window (default)", windowFlags, func() error {
		cfg, sink, log := setup(configPath, false)
		return runWindow(cfg, sink, log, !noLine)
	})

	headlessFlags := flag.NewFlagSet("headless", flag.ExitOnError)
	common(headlessFlags)
	headlessFlags.IntVar(&ticks, "ticks", 120, "ticks to run")
	headlessFlags.IntVar(&producers, "producers", 4, "goroutines submitting markers each tick")
	reg.Register("headless", "run the demo against the in-memory host and print stats", headlessFlags, func() error {
		cfg, _, log := setup(configPath, true)
		return runHeadless(cfg, log, ticks, producers, !noLine)
	})

	configFlags := flag.NewFlagSet("config", flag.ExitOnError)
	common(configFlags)
	reg.Register("config", "write the default config file", configFlags, func() error {
		if err := config.Save(configPath, config.Default()); err != nil {
			return err
		}
		fmt.Println("wrote", configPath)
		return nil
	})

	if len(os.Args) > 1 && (os.Args[1] == "help" || os.Args[1] == "-h" || os.Args[1] == "--help") {
		reg.Usage(os.Stdout)
		return
	}
	if err := reg.Execute(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "gizmos:", err)
		reg.Usage(os.Stderr)
		os.Exit(1)
	}
}

// setup loads the config and installs the process logger. Headless runs also log to stderr.
func setup(path string, stderr bool) (config.Config, *logger.Logger, *slog.Logger) {
	cfg, cfgErr := config.Load(path)
	sink := logger.New(cfg.Log.File, logger.DefaultTail)
	var w io.Writer = sink
	if stderr {
		w = io.MultiWriter(sink, os.Stderr)
	}
	level, _ := config.ParseLevel(cfg.Log.Level)
	log := logger.NewSlog(w, level)
	slog.SetDefault(log)
	gizmo.SetLogger(log)
	if cfgErr != nil {
		log.Warn("config: falling back to defaults", "err", cfgErr)
	}
	return cfg, sink, log
}

func overlayOptions(cfg config.Config, log *slog.Logger) []gizmo.Option {
	return []gizmo.Option{
		gizmo.WithLogger(log),
		gizmo.WithMaxRegistrationAge(cfg.Interaction.MaxRegistrationAge),
		gizmo.WithNearestOnly(cfg.Interaction.NearestOnly),
	}
}

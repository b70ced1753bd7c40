package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/googoolist/lightshow-2/internal/analyzer"
	"github.com/googoolist/lightshow-2/internal/audio"
	"github.com/googoolist/lightshow-2/internal/config"
	"github.com/googoolist/lightshow-2/internal/dmx"
	"github.com/googoolist/lightshow-2/internal/engine"
	"github.com/googoolist/lightshow-2/internal/program"
	"github.com/googoolist/lightshow-2/internal/ui"
)

func main() {
	var (
		configPath = flag.String("config", "", "YAML config file (fixtures, Art-Net target)")
		filePath   = flag.String("file", "", "run the show from an audio file instead of live capture")
		monitor    = flag.Bool("monitor", false, "play the file through the default output while analyzing")
		target     = flag.String("target", "", "Art-Net node address (host:port), overrides config")
		simple     = flag.Bool("simple", false, "start in program mode instead of the layered pipeline")
		programArg = flag.String("program", "", "initial preset program for program mode")
		logPath    = flag.String("log", "", "append diagnostics to this file (default: discard)")
		headless   = flag.Bool("headless", false, "run without the terminal UI")
	)
	flag.Parse()

	logger, closeLog, err := openLogger(*logPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	cfg := config.Default()
	if *configPath != "" {
		cfg, err = config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}
	if *target != "" {
		cfg.Target = *target
	}

	// Audio source: a file when requested, the default input device
	// otherwise.
	var src audio.Source
	title := "live input"
	if *filePath != "" {
		fs, err := audio.NewFileSource(*filePath, config.SampleRate, *monitor)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		src = fs
		title = audio.TrackTitle(*filePath)
	} else {
		capture, err := audio.NewCapture(config.SampleRate, config.BlockSize)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		src = capture
	}
	defer src.Close()

	var sink dmx.Sink
	sink, err = dmx.NewArtNet(cfg.Target, uint16(cfg.Universe), logger)
	if err != nil {
		logger.Printf("art-net unavailable (%v), running dark", err)
		sink = dmx.Null{}
	}
	defer sink.Close()

	beats := analyzer.NewQueue()
	anz := analyzer.New(beats, logger)

	params := engine.NewParams()
	if *simple {
		params.SetMode(engine.ModeProgram)
	}
	if *programArg != "" {
		kind, ok := program.ParseKind(*programArg)
		if !ok {
			fmt.Fprintf(os.Stderr, "Error: unknown program %q\n", *programArg)
			os.Exit(1)
		}
		params.SetMode(engine.ModeProgram)
		params.SetProgram(kind)
	}

	eng := engine.New(cfg, anz, beats, sink, params, logger)

	stop := make(chan struct{})
	analyzerDone := make(chan struct{})
	engineDone := make(chan struct{})
	go func() {
		defer close(analyzerDone)
		anz.Run(src, stop)
	}()
	go func() {
		defer close(engineDone)
		eng.Run(stop)
	}()

	if *headless {
		runHeadless(stop)
	} else {
		model := ui.New(params, anz, title)
		p := tea.NewProgram(model, tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		close(stop)
	}

	// Unblock the analyzer if it is waiting on a read, then give both
	// loops a bounded window to finish.
	src.Close()
	waitOrTimeout(engineDone, 2*time.Second)
	waitOrTimeout(analyzerDone, 2*time.Second)
}

// runHeadless blocks until SIGINT or SIGTERM, then signals shutdown.
func runHeadless(stop chan struct{}) {
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig
	close(stop)
}

func waitOrTimeout(done <-chan struct{}, d time.Duration) {
	select {
	case <-done:
	case <-time.After(d):
	}
}

// openLogger returns a logger writing to path, or one that discards
// everything when no path is given. The terminal belongs to the UI.
func openLogger(path string) (*log.Logger, func(), error) {
	if path == "" {
		null, err := os.OpenFile(os.DevNull, os.O_WRONLY, 0)
		if err != nil {
			return nil, nil, err
		}
		return log.New(null, "", log.LstdFlags), func() { null.Close() }, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, err
	}
	return log.New(f, "", log.LstdFlags), func() { f.Close() }, nil
}

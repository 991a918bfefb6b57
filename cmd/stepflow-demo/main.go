// Command stepflow-demo drives a small stepflow App, either interactively
// in the terminal or headless with log output only.
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/b97tsk/stepflow"
	"github.com/b97tsk/stepflow/internal/config"
)

func main() {
	var (
		configPath = flag.String("config", "", "path to a YAML configuration file")
		headless   = flag.Bool("headless", false, "run without the terminal UI")
		logPath    = flag.String("log", "", "write logs to this file in interactive mode")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	var out io.Writer = os.Stderr
	if !*headless {
		out = io.Discard
		if *logPath != "" {
			f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error opening log file: %v\n", err)
				os.Exit(1)
			}
			defer f.Close()
			out = f
		}
	}
	log := slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: cfg.Level()}))
	stepflow.SetLogger(log)

	d := newDemo(cfg, log)
	defer d.app.Close()

	if *headless {
		runHeadless(d)
		return
	}

	if _, err := tea.NewProgram(newModel(d), tea.WithAltScreen()).Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		os.Exit(1)
	}
}

// runHeadless steps the demo at the configured rate until it is done.
// Pending undo requests are issued once the countdown finishes so that the
// editor reactor can drain its record.
func runHeadless(d *demo) {
	ticker := time.NewTicker(d.cfg.TickInterval)
	defer ticker.Stop()

	for !d.done() {
		d.step()
		if s := d.snapshot(); s.finished && !s.replaying && s.undoable > 0 && s.undoQueue == 0 {
			d.requestUndo()
		}
		<-ticker.C
	}
	s := d.snapshot()
	d.log.Info("demo finished", "tick", s.tick, "counter", s.counter.value, "cursor", s.cursor)
}

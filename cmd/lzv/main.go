package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vanderheijden86/lizardview/pkg/config"
	"github.com/vanderheijden86/lizardview/pkg/ui"
	"github.com/vanderheijden86/lizardview/pkg/version"
)

func main() {
	help := flag.Bool("help", false, "Show help")
	versionFlag := flag.Bool("version", false, "Show version")
	configPath := flag.String("config", "", "Config file (default: ~/.config/lzv/config.yaml)")
	binary := flag.String("lizard", "", "Analyzer executable (default: lizard on PATH)")
	watch := flag.Bool("watch", false, "Re-run analysis when sources change")
	flag.Parse()

	if *help {
		fmt.Println("Usage: lzv [options] [path]")
		fmt.Println("\nAn interactive viewer for lizard cyclomatic complexity reports.")
		fmt.Println("Analyzes the given path (default: current directory).")
		flag.PrintDefaults()
		os.Exit(0)
	}

	if *versionFlag {
		fmt.Printf("lzv %s\n", version.Version)
		os.Exit(0)
	}

	root := "."
	if flag.NArg() > 0 {
		root = flag.Arg(0)
	}

	var (
		cfg    config.Config
		cfgErr error
	)
	if *configPath != "" {
		cfg, cfgErr = config.LoadFrom(*configPath)
	} else {
		cfg, cfgErr = config.Load()
	}
	if cfgErr != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", cfgErr)
		os.Exit(1)
	}
	if *binary != "" {
		cfg.Analyzer.Binary = *binary
	}
	if *watch {
		cfg.AutoRefresh = true
	}

	m := ui.NewModel(root, cfg)
	defer m.Close()

	if err := runTUIProgram(m); err != nil {
		fmt.Fprintf(os.Stderr, "Error running lzv: %v\n", err)
		os.Exit(1)
	}
}

func runTUIProgram(m ui.Model) error {
	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithoutSignalHandler(),
	)

	runDone := make(chan struct{})
	defer close(runDone)

	// Graceful shutdown on SIGINT/SIGTERM.
	sigCh := make(chan os.Signal, 2)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-runDone:
			return
		case <-sigCh:
		}

		p.Quit()

		select {
		case <-runDone:
			return
		case <-sigCh:
		case <-time.After(5 * time.Second):
		}

		p.Kill()
	}()

	// Optional auto-quit for automated tests: set LZV_TUI_AUTOCLOSE_MS.
	if v := os.Getenv("LZV_TUI_AUTOCLOSE_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms > 0 {
			go func() {
				timer := time.NewTimer(time.Duration(ms) * time.Millisecond)
				defer timer.Stop()

				select {
				case <-runDone:
					return
				case <-timer.C:
				}

				p.Quit()

				select {
				case <-runDone:
					return
				case <-time.After(2 * time.Second):
				}

				p.Kill()
			}()
		}
	}

	_, err := p.Run()
	return err
}

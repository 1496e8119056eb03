package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"iconset/common"
	"iconset/config"
	"iconset/watcher"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		log.Fatalf("Error: %v", err)
	}
}

// run executes the CLI: iconset [-config file] [-watch] [source]
func run(args []string, stdout io.Writer) error {
	flags := flag.NewFlagSet("iconset", flag.ContinueOnError)
	configPath := flags.String("config", "", "config file (default: "+config.DefaultFile+" if present)")
	watch := flags.Bool("watch", false, "keep running and regenerate icons when the source changes")
	flags.Usage = func() {
		fmt.Fprintf(flags.Output(), "Usage: iconset [-config file] [-watch] [source]\n")
		flags.PrintDefaults()
	}
	if err := flags.Parse(args); err != nil {
		return err
	}
	if flags.NArg() > 1 {
		flags.Usage()
		return flag.ErrHelp
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	source := cfg.Source
	if flags.NArg() == 1 {
		source = flags.Arg(0)
	}

	opts, err := cfg.Options()
	if err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	generator := common.NewGenerator(common.NewFileStore())
	generator.SetReporter(func(f common.IconFile) {
		fmt.Fprintf(stdout, "Created %s\n", filepath.Base(f.Path))
	})

	generate := func() error {
		if _, err := generator.Generate(source, opts); err != nil {
			return err
		}
		fmt.Fprintln(stdout, "All icons created successfully!")
		return nil
	}

	if err := generate(); err != nil {
		if !*watch {
			return err
		}
		log.Printf("Initial generation failed: %v", err)
	}

	if !*watch {
		return nil
	}
	return watchSource(source, cfg, generate)
}

// loadConfig loads an explicit config file, else iconset.yaml from the
// working directory, else the built-in defaults
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.Load(path)
	}
	if _, err := os.Stat(config.DefaultFile); err == nil {
		return config.Load(config.DefaultFile)
	}
	return config.Default(), nil
}

// watchSource regenerates on every source change until SIGINT/SIGTERM
func watchSource(source string, cfg *config.Config, generate func() error) error {
	w, err := watcher.NewWatcher(source, cfg.Debounce(), generate)
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}

	if err := w.Start(); err != nil {
		w.Stop()
		return fmt.Errorf("failed to start watcher: %w", err)
	}

	log.Println("Press Ctrl+C to stop")

	// The watcher logs every event itself
	go func() {
		for range w.Events() {
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	log.Println("Shutting down...")
	return w.Stop()
}

package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/mmcdole/reel/internal/config"
	"github.com/mmcdole/reel/internal/log"
	"github.com/mmcdole/reel/internal/store"
	"github.com/mmcdole/reel/internal/tmdb"
	"golang.org/x/term"
)

// Version is set at build time via -ldflags
var Version = "dev"

// errReported means the failure was already shown by the interactive view
var errReported = errors.New("reported")

const usage = `usage: reel [-v] [-config path] <command> [flags] [args]

commands:
  list   [-kind tv|movie] [-page N] <type>    refresh a listing (popular, top_rated, ...)
  detail [-kind tv|movie] <id>                refresh one title with reviews, videos and credits
  search [-kind tv|movie] [-page N] <query>   search the catalog
  find   [-kind tv|movie] [-limit N] <query>  search the local cache only
  warm   [-kind tv|movie] [-pages N] <type>   prefetch listing pages for offline use
  clear                                       wipe the local cache
`

func main() {
	// Handle version flag
	var showVersion bool
	var configPath string
	flag.BoolVar(&showVersion, "v", false, "print version")
	flag.BoolVar(&showVersion, "version", false, "print version")
	flag.StringVar(&configPath, "config", "", "path to config.yaml")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()

	if showVersion {
		fmt.Printf("reel %s\n", Version)
		return
	}

	if err := run(configPath, flag.Args()); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

func run(configPath string, args []string) error {
	if len(args) == 0 {
		flag.Usage()
		return errors.New("no command given")
	}

	// Load configuration
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Setup logger
	logger, closer, err := log.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger, closer = log.NullLogger(), nil
	}
	if closer != nil {
		defer closer.Close()
	}
	slog.SetDefault(logger)

	logger.Info("starting reel", "version", Version, "command", args[0])

	interactive := !cfg.UI.Plain && term.IsTerminal(int(os.Stdout.Fd()))

	// Check if configured
	if !cfg.IsConfigured() && args[0] != "find" && args[0] != "clear" {
		if !term.IsTerminal(int(os.Stdin.Fd())) {
			return errors.New("no API key configured; set server.api_key or REEL_SERVER_API_KEY")
		}
		if err := runSetupFlow(cfg, configPath); err != nil {
			return err
		}
	}

	st, err := store.Open(cfg.Cache.Dir, cfg.Server.URL)
	if err != nil {
		return fmt.Errorf("failed to open cache: %w", err)
	}
	defer st.Close()

	client := tmdb.NewClient(cfg.Server.URL, cfg.Server.APIKey, cfg.Server.Language, cfg.Server.Timeout, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	a := &app{
		cfg:         cfg,
		logger:      logger,
		store:       st,
		client:      client,
		interactive: interactive,
	}
	err = a.dispatch(ctx, args[0], args[1:])

	logger.Info("shutting down", "error", err)
	return err
}

// runSetupFlow asks for the API key on first use and saves it
func runSetupFlow(cfg *config.Config, configPath string) error {
	fmt.Println()
	fmt.Println("Welcome to Reel!")
	fmt.Println()

	reader := bufio.NewReader(os.Stdin)
	for cfg.Server.APIKey == "" {
		fmt.Printf("Enter your API key for %s: ", cfg.Server.URL)
		input, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}
		cfg.Server.APIKey = strings.TrimSpace(input)
		if cfg.Server.APIKey == "" {
			fmt.Println("API key cannot be empty. Please try again.")
		}
	}

	if err := config.SaveConfig(cfg, configPath); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Println()
	fmt.Println("✓ Configuration saved!")
	fmt.Println()
	return nil
}

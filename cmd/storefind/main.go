package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"storefind/internal/cli"
	"storefind/internal/logger"
	"storefind/internal/utils"
	"storefind/pkg/config"
	"storefind/pkg/server"
	"storefind/pkg/store"
	"storefind/pkg/suggest"
	"storefind/pkg/view"
)

// Version is set at build time via -ldflags.
var Version = "0.3.0"

func printVersion() {
	banner := logger.New("")

	styles := log.DefaultStyles()
	styles.Values["version"] = lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	banner.SetStyles(styles)

	banner.Print("")
	banner.Print("[ storefind ] store search and opening status over msgpack IPC")
	banner.Print("", "version", Version)
	banner.Print("")
	banner.Print("use -h or --help to see available options")
}

func sigHandler() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		fmt.Fprintf(os.Stderr, "\nExiting...\n")
		os.Exit(0)
	}()
}

func main() {
	sigHandler()
	dataPath := flag.String("data", "", "Dataset file or directory containing stores.json / stores.bin")
	dataURL := flag.String("url", "", "Fetch the dataset from this URL instead of a local file")
	configPath := flag.String("config", "", "Path to a config.toml (default: ~/.config/storefind/config.toml)")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	cliMode := flag.Bool("c", false, "Run the interactive CLI instead of the IPC server")
	limit := flag.Int("limit", 0, "Number of suggestions to return (default: from config)")
	pageSize := flag.Int("page-size", 0, "Stores per page (default: from config)")
	noFilter := flag.Bool("no-filter", false, "Disable input filtering (shows results for any query)")
	convert := flag.String("convert", "", "Write the loaded dataset as msgpack to this path and exit")
	showVersion := flag.Bool("version", false, "Show current version")

	flag.Parse()

	if *showVersion {
		printVersion()
		return
	}

	if *debugMode {
		log.SetLevel(log.DebugLevel)
		log.SetReportTimestamp(false)
	} else {
		log.SetLevel(log.ErrorLevel)
	}

	cfg, activePath, _ := config.LoadWithPriority(*configPath)
	if activePath != "" {
		log.Debugf("Active config: %s", activePath)
	}
	if *pageSize > 0 {
		cfg.View.PageSize = *pageSize
	}
	if *limit < 1 {
		*limit = cfg.Server.MaxLimit
	}

	source, err := resolveSource(cfg, *dataPath, *dataURL)
	if err != nil {
		log.Fatalf("No dataset found: %v", err)
	}

	session := view.New(source, cfg.View.PageSize, cfg.View.PopularCities)
	stores, err := session.FetchAllStores(context.Background())
	if err != nil {
		log.Fatalf("Failed to load stores: %v", err)
	}
	log.Debugf("Loaded %d stores", len(stores))

	if *convert != "" {
		if err := store.WriteBinary(&store.Data{Stores: stores}, *convert); err != nil {
			log.Fatalf("Failed to write binary dataset: %v", err)
		}
		log.Printf("Wrote %s", *convert)
		return
	}

	index := suggest.NewFacetIndex(stores)
	log.Debugf("Facet index holds %d distinct values", index.Len())

	if *cliMode {
		handler := cli.NewInputHandler(session, index, cfg, *limit, *noFilter)
		if err := handler.Start(); err != nil {
			log.Fatalf("CLI input handler error: %v", err)
		}
		return
	}

	log.Debug("spawning IPC processor")
	srv := server.NewServer(session, index, cfg.Server)
	if err := srv.Start(); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// resolveSource picks the dataset source: -url flag, then config URL, then
// the local file resolved from -data / config path.
func resolveSource(cfg *config.Config, dataPath, dataURL string) (store.Source, error) {
	url := dataURL
	if url == "" {
		url = cfg.Data.URL
	}
	if url != "" {
		timeout := time.Duration(cfg.Data.TimeoutMs) * time.Millisecond
		return store.NewHTTPSource(url, timeout), nil
	}

	path := dataPath
	if path == "" {
		path = cfg.Data.Path
	}
	resolved, err := utils.ResolveDataFile(path)
	if err != nil {
		return nil, fmt.Errorf("no dataset at %q: %w", path, err)
	}
	return store.FileSource{Path: resolved}, nil
}

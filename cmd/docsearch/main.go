package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/altinukshini/docsearch/internal/cache"
	"github.com/altinukshini/docsearch/internal/config"
	"github.com/altinukshini/docsearch/internal/document"
	"github.com/altinukshini/docsearch/internal/logging"
	"github.com/altinukshini/docsearch/internal/model"
	"github.com/altinukshini/docsearch/internal/report"
	"github.com/altinukshini/docsearch/internal/search"
	"github.com/altinukshini/docsearch/internal/tui"
)

var version = "dev"

func init() {
	if version != "dev" {
		return
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		version = info.Main.Version
	}
}

func main() {
	cfg, err := config.Load(os.Args[1:], os.Stderr)
	if errors.Is(err, pflag.ErrHelp) {
		os.Exit(0)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if cfg.ShowVersion {
		fmt.Println("docsearch", version)
		os.Exit(0)
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	log, err := logging.New(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Log error: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	formatter, err := report.NewFormatter(cfg.Display, cfg.ShowMissing)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	loader := document.NewLoader()
	var store tui.CacheStore
	if cfg.Cache.Enabled {
		textCache, err := cache.NewTextCache(cfg.CacheDir(), cfg.Cache.SizeMB, cfg.Cache.TTL)
		if err != nil {
			log.Warn("text cache disabled", zap.Error(err))
		} else {
			if err := textCache.Evict(); err != nil {
				log.Warn("text cache eviction failed", zap.Error(err))
			}
			loader.UseCache(textCache)
			store = textCache
		}
	}
	engine := search.New(loader, log)

	if cfg.Print {
		if err := printSearch(context.Background(), os.Stdout, engine, formatter, cfg); err != nil {
			log.Error("print search failed", zap.Error(err))
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	app := tui.NewApp(cfg, engine, formatter, store, log)
	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// printSearch runs one search from the configuration and writes the
// unique count followed by the breakdown.
func printSearch(ctx context.Context, w io.Writer, engine *search.Engine, formatter report.Formatter, cfg config.Config) error {
	summary, err := engine.Run(ctx, model.SearchQuery{
		Path:          cfg.File,
		Terms:         cfg.Terms,
		CaseSensitive: cfg.CaseSensitive,
		Delimiters:    cfg.DelimiterSet(),
	})
	if err != nil {
		return err
	}

	if _, err := fmt.Fprintf(w, "Unique terms found: %s\n", report.UniqueFoundLabel(summary)); err != nil {
		return fmt.Errorf("write summary: %w", err)
	}
	body := formatter.Format(summary)
	if !strings.HasSuffix(body, "\n") {
		body += "\n"
	}
	if _, err := io.WriteString(w, body); err != nil {
		return fmt.Errorf("write summary: %w", err)
	}
	return nil
}

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/lessonforge/internal/config"
	"git.home.luguber.info/inful/lessonforge/internal/metrics"
	"git.home.luguber.info/inful/lessonforge/internal/site"
	"git.home.luguber.info/inful/lessonforge/internal/watch"
)

var CLI struct {
	Config  string `short:"c" help:"Configuration file path" default:"lessonforge.yaml"`
	Verbose bool   `short:"v" help:"Enable verbose logging"`

	Build struct {
		Content string `help:"Content directory" default:"./content"`
		Output  string `short:"o" help:"Output directory for generated site" default:"./site"`
	} `cmd:"" help:"Build the lesson site from the content directory"`

	Init struct {
		Force bool `help:"Overwrite existing configuration file"`
	} `cmd:"" help:"Initialize a new configuration file"`

	Check struct{} `cmd:"" help:"Validate the configuration without building"`

	Preview struct {
		Content string `help:"Content directory" default:"./content"`
		Output  string `short:"o" help:"Output directory for generated site" default:"./site"`
		Addr    string `help:"Listen address" default:":8080"`
	} `cmd:"" help:"Build, serve, and rebuild on content changes"`
}

func main() {
	ctx := kong.Parse(&CLI)

	logLevel := slog.LevelInfo
	if CLI.Verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	switch ctx.Command() {
	case "build":
		cfg := loadConfig()
		if err := runBuild(cfg, CLI.Build.Content, CLI.Build.Output); err != nil {
			slog.Error("Build failed", "error", err)
			os.Exit(1)
		}

	case "init":
		if err := config.Init(CLI.Config, CLI.Init.Force); err != nil {
			slog.Error("Failed to initialize configuration", "error", err)
			os.Exit(1)
		}
		fmt.Printf("Configuration written to %s\n", CLI.Config)

	case "check":
		cfg := loadConfig()
		issues := cfg.Validate()
		for _, issue := range issues {
			fmt.Println(issue)
		}
		if config.HasErrors(issues) {
			os.Exit(1)
		}
		fmt.Println("Configuration OK")

	case "preview":
		cfg := loadConfig()
		if err := runPreview(cfg, CLI.Preview.Content, CLI.Preview.Output, CLI.Preview.Addr); err != nil {
			slog.Error("Preview failed", "error", err)
			os.Exit(1)
		}

	default:
		slog.Error("Unknown command", "command", ctx.Command())
		os.Exit(1)
	}
}

func loadConfig() *config.Config {
	cfg, err := config.Load(CLI.Config)
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	if issues := cfg.Validate(); config.HasErrors(issues) {
		for _, issue := range issues {
			fmt.Fprintln(os.Stderr, issue)
		}
		slog.Error("Configuration is invalid")
		os.Exit(1)
	}
	return cfg
}

func runBuild(cfg *config.Config, contentDir, outputDir string) error {
	recorder := metrics.NewPrometheusRecorder(prom.NewRegistry())
	g := site.New(cfg, contentDir, outputDir, site.WithRecorder(recorder))

	report, err := g.Run(context.Background())
	if err != nil {
		return err
	}
	fmt.Printf("Built %d pages (%d assets) in %s -> %s\n",
		report.PagesRendered, report.AssetsCopied, report.Duration().Round(time.Millisecond), outputDir)
	return nil
}

func runPreview(cfg *config.Config, contentDir, outputDir, addr string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rebuild := func(ctx context.Context) error {
		// Pick up config edits between rebuilds.
		if fresh, err := config.Load(CLI.Config); err == nil && !config.HasErrors(fresh.Validate()) {
			cfg = fresh
		}
		_, err := site.New(cfg, contentDir, outputDir).Run(ctx)
		return err
	}
	if err := rebuild(ctx); err != nil {
		return err
	}

	watcher, err := watch.New(contentDir, rebuild)
	if err != nil {
		return err
	}
	defer watcher.Stop()
	if err := watcher.Start(ctx); err != nil {
		return err
	}
	if err := watcher.AddPath(CLI.Config); err != nil {
		slog.Warn("Configuration file not watched", "error", err)
	}

	server, err := watch.NewPreviewServer(addr, outputDir)
	if err != nil {
		return err
	}
	go func() {
		<-ctx.Done()
		_ = server.Shutdown(context.Background())
	}()
	return server.Serve()
}

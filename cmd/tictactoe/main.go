package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"ctchen222/tictactoe/internal/cli"
	"ctchen222/tictactoe/internal/config"
	"ctchen222/tictactoe/internal/events"
	"ctchen222/tictactoe/internal/game"
	"ctchen222/tictactoe/internal/logger"
	"ctchen222/tictactoe/internal/render"
	"ctchen222/tictactoe/internal/room"
	"ctchen222/tictactoe/internal/telemetry"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file (environment only when empty)")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Initialize telemetry
	shutdown, err := telemetry.Init(ctx, cfg.Telemetry)
	if err != nil {
		log.Fatalf("failed to initialize telemetry: %v", err)
	}
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			log.Printf("Error shutting down telemetry: %v", err)
		}
	}()

	logger.Init(os.Stderr, cfg.SlogLevel())

	engine, err := game.NewEngine(cfg.EngineOptions()...)
	if err != nil {
		log.Fatalf("failed to create game: %v", err)
	}

	bus := events.NewBus()

	var presenterOpts []render.Option
	presenterOpts = append(presenterOpts, render.WithColor(cfg.Display.Color))
	if cfg.Display.JSON {
		presenterOpts = append(presenterOpts, render.WithJSON())
	}
	presenter := render.NewPresenter(os.Stdout, presenterOpts...)
	presenter.Attach(bus)
	defer presenter.Detach()

	r := room.NewRoom("", engine, bus)
	r.Start()
	defer r.Close()

	rl, err := cli.NewReadline(cfg.Display.HistoryFile, cfg.Display.Color)
	if err != nil {
		log.Fatalf("failed to open terminal: %v", err)
	}
	defer rl.Close()

	if err := r.SendInitialState(ctx); err != nil {
		log.Fatalf("failed to draw board: %v", err)
	}

	if err := cli.New(rl, rl.Stdout(), r, engine.Next, cfg.Display.Color).Run(ctx); err != nil {
		slog.ErrorContext(ctx, "input loop stopped", "error", err)
	}
}

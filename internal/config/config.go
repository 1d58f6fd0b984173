package config

import (
	"fmt"
	"log/slog"
	"strings"

	"ctchen222/tictactoe/internal/game"
	"ctchen222/tictactoe/internal/validator"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	LogLevel  string    `yaml:"log-level" env:"TICTACTOE_LOG_LEVEL" env-default:"info" validate:"oneof=debug info warn error"`
	Board     Board     `yaml:"board"`
	Players   Players   `yaml:"players"`
	Display   Display   `yaml:"display"`
	Telemetry Telemetry `yaml:"telemetry"`
}

type Board struct {
	Size int `yaml:"size" env:"TICTACTOE_BOARD_SIZE" env-default:"3" validate:"min=3,max=9"`
	// FirstMark is X, O or random.
	FirstMark string `yaml:"first-mark" env:"TICTACTOE_FIRST_MARK" env-default:"X" validate:"oneof=X O x o random"`
}

type Players struct {
	XName string `yaml:"x-name" env:"TICTACTOE_X_NAME" env-default:"Player 1" validate:"max=32"`
	OName string `yaml:"o-name" env:"TICTACTOE_O_NAME" env-default:"Player 2" validate:"max=32"`
}

type Display struct {
	Color       bool   `yaml:"color" env:"TICTACTOE_COLOR" env-default:"false"`
	JSON        bool   `yaml:"json" env:"TICTACTOE_JSON" env-default:"false"`
	HistoryFile string `yaml:"history-file" env:"TICTACTOE_HISTORY_FILE" env-default:".tictactoe_history"`
}

type Telemetry struct {
	Exporter     string `yaml:"exporter" env:"TICTACTOE_TELEMETRY_EXPORTER" env-default:"none" validate:"oneof=none stdout otlp"`
	OTLPEndpoint string `yaml:"otlp-endpoint" env:"OTEL_EXPORTER_OTLP_ENDPOINT" env-default:"localhost:4317" validate:"required_if=Exporter otlp"`
	ServiceName  string `yaml:"service-name" env:"OTEL_SERVICE_NAME" env-default:"tic-tac-toe" validate:"required"`
}

// Load reads the YAML file at path, applies environment overrides and
// validates the result. An empty path reads the environment only.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	var err error
	if path == "" {
		err = cleanenv.ReadEnv(cfg)
	} else {
		err = cleanenv.ReadConfig(path, cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("unable to load config: %w", err)
	}

	if err := validator.GetValidator().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// MustLoad is Load that panics on error.
func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		panic(err)
	}
	return cfg
}

func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

// Opener returns the mark that opens each game, or None for random.
func (b Board) Opener() game.Mark {
	if strings.EqualFold(b.FirstMark, "random") {
		return game.None
	}
	m, _ := game.ParseMark(b.FirstMark)
	return m
}

// EngineOptions translates the board and player settings for game.NewEngine.
func (c *Config) EngineOptions() []game.Option {
	return []game.Option{
		game.WithSize(c.Board.Size),
		game.WithFirstMark(c.Board.Opener()),
		game.WithDefaultNames(c.Players.XName, c.Players.OName),
	}
}

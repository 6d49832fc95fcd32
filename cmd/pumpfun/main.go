// ====================================
// File: cmd/pumpfun/main.go
// ====================================
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mattn/go-isatty"
	flag "github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/rovshanmuradov/pumpfun-trader/internal/bot"
	"github.com/rovshanmuradov/pumpfun-trader/internal/config"
	"github.com/rovshanmuradov/pumpfun-trader/internal/logger"
	"github.com/rovshanmuradov/pumpfun-trader/internal/ui/prompt"
)

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

func main() {
	os.Exit(run())
}

func run() int {
	flags := flag.NewFlagSet("pumpfun", flag.ContinueOnError)
	configPath := flags.StringP("config", "c", "", "path to a config file (yaml, json or toml)")
	envFile := flags.String("env-file", ".env", "dotenv file to load before reading the environment")
	debug := flags.BoolP("debug", "d", false, "enable debug logging")
	flags.Usage = func() {
		fmt.Fprintln(os.Stderr, bot.Usage)
		fmt.Fprintln(os.Stderr, "\nflags:")
		flags.PrintDefaults()
	}
	if err := flags.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}

	cmd, err := bot.ParseCommand(flags.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n\n%s\n", err, bot.Usage)
		return exitUsage
	}

	if err := config.LoadDotEnv(*envFile); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return exitError
	}
	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return exitError
	}

	// Initialize logger
	logCfg := logger.DefaultConfig()
	logCfg.LogFile = cfg.LogFile
	logCfg.Development = cfg.DebugLogging || *debug
	logCfg.Color = isatty.IsTerminal(os.Stderr.Fd())
	appLogger, err := logger.New(logCfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to initialize logger: %v\n", err)
		return exitError
	}
	defer appLogger.Close()

	log := appLogger.WithOperation(cmd.GetType())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runner, err := bot.Setup(cfg, log)
	if err != nil {
		log.Error("Failed to initialize", zap.Error(err))
		return exitError
	}
	defer func() {
		if err := runner.Close(); err != nil {
			log.Warn("Failed to close runner", zap.Error(err))
		}
	}()

	done := appLogger.TrackPerformance(cmd.GetType())
	execErr := runner.Execute(ctx, cmd)
	done()

	// Метрики отправляются и после неудачной сделки
	pushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := runner.PushMetrics(pushCtx); err != nil {
		log.Warn("Failed to push metrics", zap.Error(err))
	}

	switch {
	case execErr == nil:
		return exitOK
	case errors.Is(execErr, prompt.ErrCancelled), errors.Is(execErr, context.Canceled):
		log.Info("Cancelled")
		return exitError
	case errors.Is(execErr, bot.ErrUsage):
		fmt.Fprintf(os.Stderr, "error: %v\n\n%s\n", execErr, bot.Usage)
		return exitUsage
	default:
		log.Error("Command failed", zap.String("command", cmd.GetType()), zap.Error(execErr))
		return exitError
	}
}

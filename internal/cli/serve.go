package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"govorun/internal/config"
	"govorun/internal/gate"
	"govorun/internal/gpt"
	"govorun/internal/store"
	"govorun/internal/webhook"
)

// serveWebhook is a test seam for running the webhook server.
var serveWebhook = webhook.Serve

// runServe builds the handler for the serve command.
func runServe(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		flags := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		flags.SetOutput(stderr)
		configPath := flags.String("config", "", "Path to config file (default: search for .govorun/config.yml)")
		if err := flags.Parse(args); err != nil {
			if err == flag.ErrHelp {
				printCommandUsage(cmd, stdout)
				return ExitOK
			}
			fmt.Fprintf(stderr, "invalid arguments: %v\n", err)
			printCommandUsage(cmd, stderr)
			return ExitUsage
		}
		if flags.NArg() > 0 {
			fmt.Fprintf(stderr, "unexpected arguments: %s\n", strings.Join(flags.Args(), " "))
			printCommandUsage(cmd, stderr)
			return ExitUsage
		}

		resolved, err := resolveConfigPath(*configPath)
		if err != nil {
			fmt.Fprintf(stderr, "Serve failed: %v\n", err)
			return ExitError
		}
		cfg, err := config.Load(resolved)
		if err != nil {
			fmt.Fprintf(stderr, "Serve failed:\n%s\n", err.Error())
			return ExitError
		}
		runtimeCfg, err := gptConfig(cfg)
		if err != nil {
			fmt.Fprintf(stderr, "Serve failed: %v\n", err)
			return ExitError
		}

		logger := slog.New(slog.NewTextHandler(stderr, nil))

		admission, err := gate.Build(cfg)
		if err != nil {
			fmt.Fprintf(stderr, "Serve failed: %v\n", err)
			return ExitError
		}

		var callStore *store.Store
		var debugToken string
		if cfg.Debug.Enabled {
			debugToken = strings.TrimSpace(os.Getenv(cfg.Debug.AuthTokenEnv))
			if debugToken == "" {
				logger.Warn("debug enabled but token env is empty, endpoints stay off",
					"env", cfg.Debug.AuthTokenEnv)
			}
			storePath := resolveStorePath(resolved, cfg.Debug.StorePath)
			callStore, err = store.Open(storePath)
			if err != nil {
				fmt.Fprintf(stderr, "Serve failed: %v\n", err)
				return ExitError
			}
			defer callStore.Close()
		}

		orchestrator := gpt.New(runtimeCfg, nil, logger)
		handler, err := webhook.NewHandler(webhook.Config{
			WebhookPath:  cfg.Server.WebhookPath,
			HardBudget:   runtimeCfg.HardBudget,
			Orchestrator: orchestrator,
			Gate:         admission,
			Store:        callStore,
			DebugToken:   debugToken,
			Logger:       logger,
		})
		if err != nil {
			fmt.Fprintf(stderr, "Serve failed: %v\n", err)
			return ExitError
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		logger.Info("serving webhook",
			"addr", cfg.Server.Addr,
			"path", cfg.Server.WebhookPath,
			"model", cfg.OpenAI.Model,
			"budget", time.Duration(cfg.OpenAI.BudgetSeconds*float64(time.Second)),
		)
		if err := serveWebhook(ctx, webhook.ServerConfig{Addr: cfg.Server.Addr, Handler: handler}); err != nil {
			fmt.Fprintf(stderr, "Server error: %v\n", err)
			return ExitError
		}
		return ExitOK
	}
}

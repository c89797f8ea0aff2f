package cli

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"govorun/internal/config"
	"govorun/internal/gpt"
)

// runAsk builds the handler for the ask command.
func runAsk(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		flags := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		flags.SetOutput(stderr)
		configPath := flags.String("config", "", "Path to config file (default: search for .govorun/config.yml)")
		verbose := flags.Bool("verbose", false, "Log attempt details to stderr")
		asJSON := flags.Bool("json", false, "Print the full call result as JSON")
		if err := flags.Parse(args); err != nil {
			if err == flag.ErrHelp {
				printCommandUsage(cmd, stdout)
				return ExitOK
			}
			fmt.Fprintf(stderr, "invalid arguments: %v\n", err)
			printCommandUsage(cmd, stderr)
			return ExitUsage
		}
		utterance := strings.TrimSpace(strings.Join(flags.Args(), " "))
		if utterance == "" {
			fmt.Fprintln(stderr, "Missing <utterance>")
			printCommandUsage(cmd, stderr)
			return ExitUsage
		}

		resolved, err := resolveConfigPath(*configPath)
		if err != nil {
			fmt.Fprintf(stderr, "Ask failed: %v\n", err)
			return ExitError
		}
		cfg, err := config.Load(resolved)
		if err != nil {
			fmt.Fprintf(stderr, "Ask failed:\n%s\n", err.Error())
			return ExitError
		}
		runtimeCfg, err := gptConfig(cfg)
		if err != nil {
			fmt.Fprintf(stderr, "Ask failed: %v\n", err)
			return ExitError
		}

		var logger *slog.Logger
		if *verbose {
			logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
		}

		orchestrator := gpt.New(runtimeCfg, nil, logger)
		result := orchestrator.Run(context.Background(), utterance)

		if *asJSON {
			encoder := json.NewEncoder(stdout)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(result); err != nil {
				fmt.Fprintf(stderr, "Ask failed: encode result: %v\n", err)
				return ExitError
			}
		} else {
			fmt.Fprintln(stdout, result.Reply)
		}
		if *verbose {
			fmt.Fprintf(stderr, "outcome=%s attempts=%d status=%d duration=%s\n",
				result.Outcome, result.Attempts, result.Status, result.Duration)
		}
		if result.Outcome != gpt.OutcomeSuccess {
			return ExitError
		}
		return ExitOK
	}
}

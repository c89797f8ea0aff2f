package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"govorun/internal/config"
	"govorun/internal/ui/live"
)

// runLiveProgram is a test seam for launching the Bubble Tea program.
var runLiveProgram = func(model tea.Model, stdout io.Writer) error {
	program := tea.NewProgram(model, tea.WithOutput(stdout))
	_, err := program.Run()
	return err
}

// runMonitor builds the handler for the monitor command.
func runMonitor(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		flags := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		flags.SetOutput(stderr)
		baseURL := flags.String("url", "http://127.0.0.1:8080", "Base URL of the running server")
		token := flags.String("token", "", "Debug bearer token (default: $"+config.DefaultAuthTokenEnv+")")
		limit := flags.Int("limit", 50, "How many recent calls to show")
		interval := flags.Duration("interval", 2*time.Second, "Poll interval")
		uiMode := flags.String("ui", "auto", "UI mode: auto, live, or plain")
		noColor := flags.Bool("no-color", false, "Disable colors in the live UI")
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

		authToken := strings.TrimSpace(*token)
		if authToken == "" {
			authToken = strings.TrimSpace(os.Getenv(config.DefaultAuthTokenEnv))
		}
		if authToken == "" {
			fmt.Fprintf(stderr, "Missing token: pass --token or set %s\n", config.DefaultAuthTokenEnv)
			return ExitUsage
		}

		decision, err := resolveUIMode(*uiMode, stdout)
		if err != nil {
			fmt.Fprintf(stderr, "%v\n", err)
			return ExitUsage
		}
		if decision.warning != "" {
			fmt.Fprintln(stderr, decision.warning)
		}

		client := live.NewClient(*baseURL, authToken)
		if !decision.useLive {
			return printCallsOnce(client, *limit, stdout, stderr)
		}

		model := live.NewModel(client, live.Options{
			Endpoint:     *baseURL,
			Limit:        *limit,
			PollInterval: *interval,
			NoColor:      *noColor,
		})
		if err := runLiveProgram(model, stdout); err != nil {
			fmt.Fprintf(stderr, "Monitor error: %v\n", err)
			return ExitError
		}
		return ExitOK
	}
}

// printCallsOnce fetches the listing once and prints a plain table.
func printCallsOnce(client *live.Client, limit int, stdout, stderr io.Writer) int {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	calls, err := client.FetchRecent(ctx, limit)
	if err != nil {
		fmt.Fprintf(stderr, "Monitor error: %v\n", err)
		return ExitError
	}
	if len(calls) == 0 {
		fmt.Fprintln(stdout, "No calls recorded yet.")
		return ExitOK
	}
	fmt.Fprintf(stdout, "%-20s %-12s %3s %5s %7s %s\n", "TIME", "OUTCOME", "ATT", "HTTP", "DUR", "UTTERANCE")
	for _, call := range calls {
		fmt.Fprintf(stdout, "%-20s %-12s %3d %5d %6.1fs %s\n",
			call.CreatedAt.Local().Format("2006-01-02 15:04:05"),
			call.Outcome,
			call.Attempts,
			call.Status,
			float64(call.DurationMs)/1000,
			call.Utterance,
		)
	}
	return ExitOK
}

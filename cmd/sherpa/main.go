// Sherpa - chat shopping assistant over pluggable LLM backends.
//
// Modes:
//
//	sherpa            interactive console (default)
//	sherpa -serve     HTTP API
//	sherpa -mcp       Model Context Protocol server over stdio
package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	domainchat "github.com/nverdier/sherpa/internal/domain/chat"
	"github.com/nverdier/sherpa/internal/infra/config"
	"github.com/nverdier/sherpa/internal/infra/eventbus"
	"github.com/nverdier/sherpa/internal/infra/llm"
	"github.com/nverdier/sherpa/internal/infra/sqlite"
	"github.com/nverdier/sherpa/internal/mcp"
	"github.com/nverdier/sherpa/internal/repl"
	"github.com/nverdier/sherpa/internal/server"
	"github.com/nverdier/sherpa/internal/version"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout))
}

func run(args []string, out io.Writer) int {
	fs := flag.NewFlagSet("sherpa", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	showVersion := fs.Bool("version", false, "Show version information")
	showHelp := fs.Bool("help", false, "Show help")
	serveHTTP := fs.Bool("serve", false, "Start the HTTP API server")
	serveMCP := fs.Bool("mcp", false, "Serve the Model Context Protocol over stdio")
	provider := fs.String("provider", "", "Force a backend: gemini | openai | mock")

	if err := fs.Parse(args); err != nil {
		return 2
	}

	if *showVersion {
		fmt.Fprintln(out, version.String()) //nolint:errcheck
		return 0
	}

	if *showHelp {
		printHelp(out)
		return 0
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(out, "configuration error: %v\n", err) //nolint:errcheck
		return 1
	}
	if *provider != "" {
		cfg.Provider = *provider
	}

	client := llm.Select(cfg)

	switch {
	case *serveMCP:
		if err := mcp.Run(context.Background(), client); err != nil {
			fmt.Fprintf(out, "mcp error: %v\n", err) //nolint:errcheck
			return 1
		}
		return 0

	case *serveHTTP:
		return runServer(cfg, client, out)

	default:
		r := repl.New(client, os.Stdin, out)
		if err := r.Run(context.Background()); err != nil {
			fmt.Fprintf(out, "console error: %v\n", err) //nolint:errcheck
			return 1
		}
		return 0
	}
}

// runServer opens the database, wires the chat service and serves HTTP until
// SIGINT/SIGTERM, then drains with a shutdown deadline.
func runServer(cfg config.Config, client llm.Client, out io.Writer) int {
	db, err := openDatabase(cfg.DBPath)
	if err != nil {
		fmt.Fprintf(out, "database error: %v\n", err) //nolint:errcheck
		return 1
	}

	bus := eventbus.New()
	go logExchanges(bus.Subscribe(eventbus.TopicExchange))
	chatService := domainchat.NewService(client, domainchat.NewStore(db), bus)

	srvCfg := server.DefaultConfig()
	srvCfg.Host = cfg.HTTPHost
	srvCfg.Port = cfg.HTTPPort
	srv := server.NewServer(db, chatService, srvCfg)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start(context.Background())
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		fmt.Fprintf(out, "server error: %v\n", err) //nolint:errcheck
		return 1
	case <-stop:
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		fmt.Fprintf(out, "shutdown error: %v\n", err) //nolint:errcheck
		return 1
	}
	return 0
}

// logExchanges drains the exchange topic and logs one line per round-trip.
func logExchanges(events <-chan eventbus.Event) {
	for evt := range events {
		if ex, ok := evt.Payload.(domainchat.Exchange); ok {
			log.Printf("exchange %s user=%s kind=%s provider=%s/%s", ex.ID, ex.UserID, ex.Kind, ex.Provider, ex.Model)
		}
	}
}

func openDatabase(path string) (*sql.DB, error) {
	db, err := sqlite.NewDB(path)
	if err != nil {
		return nil, err
	}
	if err := sqlite.MigrateUp(db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func printHelp(out io.Writer) {
	helpText := `Sherpa - chat shopping assistant

Usage:
  sherpa [options]

Options:
  --version    Show version information
  --help       Show this help message
  --serve      Start the HTTP API server
  --mcp        Serve the Model Context Protocol over stdio
  --provider   Force a backend: gemini | openai | mock

Environment:
  SHERPA_PROVIDER     Force a backend: gemini | openai | mock
  GOOGLE_API_KEY      Enables the Gemini backend
  OPENAI_API_KEY      Enables the OpenAI backend
  SHERPA_CONFIG       Path to an optional YAML config file
  SHERPA_DB_PATH      SQLite path for --serve (default sherpa.db)
  JWT_SECRET          Required for --serve (token signing)

Without credentials the assistant falls back to a local echo backend.

Examples:
  sherpa
  sherpa --serve
  sherpa --mcp
  sherpa --version`
	fmt.Fprintln(out, helpText) //nolint:errcheck
}

// inventory es el cliente de terminal del portal: sesión persistida, navegación por rol,
// productos y solicitudes de stock contra la API.
//
// Uso: inventory [--api URL] [--session-backend file|sqlite|redis|memory] <comando> [flags]
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/jhoicas/inventario-portal/pkg/config"
	"github.com/jhoicas/inventario-portal/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Output: os.Stderr})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = execute(ctx, os.Args[1:], environment{
		cfg:    cfg.Client,
		log:    log,
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
		width:  terminalWidth,
	})
	if err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		os.Exit(1)
	}
}

// execute interpreta los flags globales y corre un comando con una app recién armada.
func execute(ctx context.Context, args []string, env environment) error {
	fs := pflag.NewFlagSet("inventory", pflag.ContinueOnError)
	fs.SetInterspersed(false)
	fs.SetOutput(env.stderr)
	apiURL := fs.String("api", env.cfg.APIBaseURL, "API base URL")
	backend := fs.String("session-backend", env.cfg.SessionBackend, "file, sqlite, redis or memory")
	sessionPath := fs.String("session-path", env.cfg.SessionPath, "session file or SQLite database")
	fs.BoolP("help", "h", false, "show help")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			printUsage(env.stdout, fs)
			return nil
		}
		return err
	}
	rest := fs.Args()
	if help, _ := fs.GetBool("help"); help || len(rest) == 0 || rest[0] == "help" {
		printUsage(env.stdout, fs)
		return nil
	}

	cmd, ok := commandTable()[rest[0]]
	if !ok {
		return fmt.Errorf("comando desconocido %q (ver inventory help)", rest[0])
	}

	env.cfg.APIBaseURL = strings.TrimRight(*apiURL, "/")
	env.cfg.SessionBackend = strings.ToLower(*backend)
	env.cfg.SessionPath = *sessionPath
	if fs.Changed("session-backend") && !fs.Changed("session-path") {
		env.cfg.SessionPath = config.DefaultSessionPath(env.cfg.SessionBackend)
	}
	if env.log == nil {
		env.log = logger.Nop()
	}

	a, err := newApp(ctx, env)
	if err != nil {
		return err
	}
	defer a.Close()
	return cmd.run(ctx, a, rest[1:])
}

func printUsage(w io.Writer, fs *pflag.FlagSet) {
	fmt.Fprintln(w, "Usage: inventory [flags] <command> [command flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	table := commandTable()
	for _, name := range commandNames() {
		fmt.Fprintf(w, "  %-10s %s\n", name, table[name].summary)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprint(w, fs.FlagUsages())
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/MKhiriev/go-tenant-vault/internal/adapter"
	"github.com/MKhiriev/go-tenant-vault/internal/config"
	"github.com/MKhiriev/go-tenant-vault/internal/logger"
	"github.com/MKhiriev/go-tenant-vault/models"
	"github.com/spf13/cobra"
)

// App is the vaultctl command tree together with its dependencies.
type App struct {
	buildInfo models.AppBuildInfo

	openBackend BackendOpener
	newAdapter  AdapterFactory
	prompter    Prompter

	in     io.Reader
	out    io.Writer
	errOut io.Writer

	flags  globalFlags
	cfg    *config.StructuredConfig
	stdin  *linePrompter
	logger *logger.Logger
}

type globalFlags struct {
	configPath    string
	driver        string
	dsn           string
	server        string
	hashKey       string
	timeout       time.Duration
	passwordStdin bool
	verbose       bool
}

// Option customises an [App].
type Option func(*App)

// WithBackend replaces the store opener used by the administrative commands.
func WithBackend(open BackendOpener) Option {
	return func(a *App) { a.openBackend = open }
}

// WithAdapter replaces the factory of the remote adapter.
func WithAdapter(factory AdapterFactory) Option {
	return func(a *App) { a.newAdapter = factory }
}

// WithPrompter replaces the secret prompter.
func WithPrompter(p Prompter) Option {
	return func(a *App) { a.prompter = p }
}

// WithIO replaces the standard streams.
func WithIO(in io.Reader, out, errOut io.Writer) Option {
	return func(a *App) {
		a.in, a.out, a.errOut = in, out, errOut
	}
}

// NewApp creates vaultctl with the store backend, the HTTP adapter and the
// process' standard streams.
func NewApp(buildInfo models.AppBuildInfo, opts ...Option) *App {
	a := &App{
		buildInfo:   buildInfo,
		openBackend: OpenStoreBackend,
		newAdapter:  adapter.NewHTTPServerAdapter,
		in:          os.Stdin,
		out:         os.Stdout,
		errOut:      os.Stderr,
		logger:      logger.Nop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Execute runs the command named by args.
func (a *App) Execute(ctx context.Context, args []string) error {
	root := a.rootCommand()
	root.SetArgs(args)
	root.SetIn(a.in)
	root.SetOut(a.out)
	root.SetErr(a.errOut)

	return root.ExecuteContext(ctx)
}

func (a *App) rootCommand() *cobra.Command {
	a.flags = globalFlags{}

	root := &cobra.Command{
		Use:               "vaultctl",
		Short:             "Manage a multi-tenant secret vault",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.loadConfig,
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&a.flags.configPath, "config", "c", "", "JSON config file path")
	pf.StringVar(&a.flags.driver, "driver", "", "database driver (sqlite3 or pgx)")
	pf.StringVarP(&a.flags.dsn, "dsn", "d", "", "database DSN")
	pf.StringVarP(&a.flags.server, "server", "s", "", "vault server address")
	pf.StringVar(&a.flags.hashKey, "hash-key", "", "request integrity hash key")
	pf.DurationVar(&a.flags.timeout, "timeout", 0, "request timeout")
	pf.BoolVar(&a.flags.passwordStdin, "password-stdin", false, "read secrets from stdin, one per line")
	pf.BoolVarP(&a.flags.verbose, "verbose", "v", false, "log debug output")

	root.AddCommand(
		a.initCommand(),
		a.tenantCommand(),
		a.superuserCommand(),
		a.userCommand(),
		a.entryCommand(),
		a.versionCommand(),
	)

	return root
}

// loadConfig layers the global flags over defaults, environment and the JSON
// file.
func (a *App) loadConfig(cmd *cobra.Command, _ []string) error {
	overrides := &config.StructuredConfig{
		App: config.App{HashKey: a.flags.hashKey},
		Storage: config.Storage{DB: config.DB{
			Driver: a.flags.driver,
			DSN:    a.flags.dsn,
		}},
		Adapter: config.Adapter{
			HTTPAddress:    a.flags.server,
			RequestTimeout: a.flags.timeout,
		},
		JSONFilePath: a.flags.configPath,
	}

	cfg, err := config.GetCLIConfig(overrides)
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.logger = logger.NewCLILogger(cmd.ErrOrStderr(), a.flags.verbose)
	a.stdin = nil

	return nil
}

func (a *App) secret(prompt string) (string, error) {
	switch {
	case a.prompter != nil:
		return a.prompter.Secret(prompt)
	case a.flags.passwordStdin:
		if a.stdin == nil {
			a.stdin = newLinePrompter(a.in)
		}
		return a.stdin.Secret(prompt)
	default:
		return terminalPrompter{in: a.in, out: a.errOut}.Secret(prompt)
	}
}

// newPassword asks for a password twice unless it comes from stdin.
func (a *App) newPassword() (string, error) {
	password, err := a.secret("Password: ")
	if err != nil {
		return "", err
	}
	if a.flags.passwordStdin {
		return password, nil
	}

	confirm, err := a.secret("Confirm password: ")
	if err != nil {
		return "", err
	}
	if password != confirm {
		return "", ErrPasswordsDoNotMatch
	}

	return password, nil
}

func (a *App) withBackend(ctx context.Context, fn func(Backend) error) error {
	backend, err := a.openBackend(ctx, a.cfg.Storage.DB, a.logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := backend.Close(); err != nil {
			a.logger.Warn().Err(err).Msg("failed to close store")
		}
	}()

	return fn(backend)
}

func printf(cmd *cobra.Command, format string, args ...any) {
	fmt.Fprintf(cmd.OutOrStdout(), format, args...)
}

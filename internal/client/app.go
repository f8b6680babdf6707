// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-note-vault/internal/app"
	"github.com/MKhiriev/go-note-vault/internal/config"
	"github.com/MKhiriev/go-note-vault/internal/crypto"
	"github.com/MKhiriev/go-note-vault/internal/logger"
	"github.com/MKhiriev/go-note-vault/internal/service"
	"github.com/MKhiriev/go-note-vault/internal/session"
	"github.com/MKhiriev/go-note-vault/internal/store"
	"github.com/MKhiriev/go-note-vault/models"
)

const appName = "notevault"

// App is the note vault command line. Configuration is resolved once the
// flags are parsed; the database is opened only by commands that need it.
type App struct {
	root  *cobra.Command
	flags *config.StructuredConfig
	build models.AppBuildInfo

	in     io.Reader
	out    io.Writer
	errOut io.Writer
	prompt *termPrompter
	print  printer

	copyToClipboard func(string) error
	keychainOpts    []crypto.Option

	cfg          *config.StructuredConfig
	log          *logger.Logger
	keychain     crypto.KeyChainService
	sessionStore session.Store
	envStore     *session.EnvStore
	cache        *session.Cache

	storages *store.Storages
	services *service.Services
}

var _ Client = (*App)(nil)

// Option tunes an [App].
type Option func(*App)

// WithIO replaces stdin, stdout and stderr.
func WithIO(in io.Reader, out, errOut io.Writer) Option {
	return func(a *App) {
		a.in, a.out, a.errOut = in, out, errOut
	}
}

// WithSessionStore pins the session store instead of choosing one from
// configuration.
func WithSessionStore(s session.Store) Option {
	return func(a *App) {
		a.sessionStore = s
	}
}

// WithKeyChainOptions passes opts to the keychain.
func WithKeyChainOptions(opts ...crypto.Option) Option {
	return func(a *App) {
		a.keychainOpts = append(a.keychainOpts, opts...)
	}
}

// WithClipboard replaces the system clipboard writer.
func WithClipboard(write func(string) error) Option {
	return func(a *App) {
		a.copyToClipboard = write
	}
}

// NewApp builds the command tree.
func NewApp(build models.AppBuildInfo, opts ...Option) *App {
	a := &App{
		build:           build,
		in:              os.Stdin,
		out:             os.Stdout,
		errOut:          os.Stderr,
		copyToClipboard: clipboard.WriteAll,
	}
	for _, opt := range opts {
		opt(a)
	}
	a.prompt = newPrompter(a.in, a.errOut)
	a.print = printer{w: a.errOut}

	a.root = &cobra.Command{
		Use:   appName,
		Short: "End-to-end encrypted notes from the terminal",
		Long: `notevault keeps notes encrypted with a key derived from a random vault
passphrase. The passphrase is stored wrapped under your login password, so
changing the password never re-encrypts a note.

Start a session with:
  eval "$(notevault signin -l <login>)"`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.bootstrap,
	}
	a.root.SetIn(a.in)
	a.root.SetOut(a.out)
	a.root.SetErr(a.errOut)
	a.flags = config.RegisterFlags(a.root.PersistentFlags())

	a.root.AddCommand(
		a.newSignUpCmd(),
		a.newSignInCmd(),
		a.newSignOutCmd(),
		a.newStatusCmd(),
		a.newPasswdCmd(),
		a.newPassphraseCmd(),
		a.newNoteCmd(),
		a.newVersionCmd(),
	)
	return a
}

// Run executes args and reports a failure on stderr.
func (a *App) Run(ctx context.Context, args []string) error {
	defer a.closeStorages()

	a.root.SetArgs(args)
	err := a.root.ExecuteContext(ctx)
	if err != nil {
		a.print.failure(userError(err))
		if a.log != nil {
			a.log.Debug().Err(err).Msg("command failed")
		}
	}
	return err
}

// bootstrap resolves configuration and builds everything that does not
// touch the database.
func (a *App) bootstrap(cmd *cobra.Command, _ []string) error {
	cfg, err := config.GetStructuredConfig(a.flags)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.log = logger.NewClientLogger(appName, cfg.Log.Level, cfg.Log.File)

	provider := crypto.NewSystemProvider()
	if cfg.App.CryptoMode == config.CryptoModeDisabled {
		provider = crypto.NewDisabledProvider()
	}
	a.keychain = crypto.NewKeyChain(provider, a.log, a.keychainOpts...)

	if a.sessionStore == nil {
		switch cfg.Session.Backend {
		case config.SessionBackendMemory:
			a.sessionStore = session.NewMemoryStore()
		default:
			a.envStore = session.NewEnvStore(cfg.Session.EnvPrefix, a.log)
			a.sessionStore = a.envStore
		}
	}
	a.cache = session.NewCache(a.sessionStore)

	cmd.SetContext(a.log.WithContext(cmd.Context()))
	return nil
}

// svc opens the note store on first use.
func (a *App) svc(ctx context.Context) (*service.Services, error) {
	if a.services != nil {
		return a.services, nil
	}

	storages, err := store.NewStorages(ctx, a.cfg.Storage.DB, a.log)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", app.MsgStoreUnavailable, err)
	}
	a.storages = storages
	a.services = service.NewServices(storages, a.keychain, a.cache, a.cfg.App, a.log)
	return a.services, nil
}

func (a *App) closeStorages() {
	if a.storages != nil {
		if err := a.storages.Close(); err != nil && a.log != nil {
			a.log.Warn().Err(err).Msg("error closing note store")
		}
	}
	a.storages = nil
	a.services = nil
}

// login returns the configured login or asks for one.
func (a *App) login() (string, error) {
	if a.cfg.App.Login != "" {
		return a.cfg.App.Login, nil
	}
	login, err := a.prompt.Line("Login: ")
	if err != nil {
		return "", err
	}
	login = strings.TrimSpace(login)
	if login == "" {
		return "", service.ErrNoLogin
	}
	return login, nil
}

// exportSession prints the shell statements that carry the session into the
// calling shell. Only the env backend needs them.
func (a *App) exportSession() {
	if a.envStore == nil {
		return
	}
	for _, line := range a.envStore.ExportLines() {
		fmt.Fprintln(a.out, line)
	}
}

// userError rewrites service errors into the messages shown to the user.
func userError(err error) error {
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		return errors.New(app.MsgInvalidLoginPassword)
	case errors.Is(err, service.ErrInvalidDataProvided):
		return errors.New(app.MsgInvalidDataProvided)
	case errors.Is(err, service.ErrVaultLocked):
		return errors.New(app.MsgVaultLocked)
	case errors.Is(err, service.ErrCryptoUnavailable):
		return errors.New(app.MsgCryptoUnavailable)
	case errors.Is(err, service.ErrLoginTaken):
		return errors.New(app.MsgLoginTaken)
	case errors.Is(err, store.ErrNoteNotFound):
		return errors.New(app.MsgNoteNotFound)
	case errors.Is(err, service.ErrNoteInaccessible):
		return errors.New(app.MsgNoteInaccessible)
	case errors.Is(err, service.ErrNoLogin):
		return errors.New(app.MsgNoLogin)
	}
	return err
}

package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-file-vault/internal/adapter"
	"github.com/MKhiriev/go-file-vault/internal/config"
	"github.com/MKhiriev/go-file-vault/internal/logger"
	"github.com/MKhiriev/go-file-vault/internal/service"
	"github.com/MKhiriev/go-file-vault/internal/store"
)

// rootOptions are the persistent flags shared by every command. They are
// handed to the config loader in its own flag syntax, so env vars, .env and
// config files keep working as for the TUI client.
type rootOptions struct {
	server     string
	sessionDB  string
	configPath string
	logLevel   string
	logFile    string
	quiet      bool
}

func (o rootOptions) configArgs() []string {
	var args []string
	add := func(name, value string) {
		if value != "" {
			args = append(args, "-"+name, value)
		}
	}
	add("server", o.server)
	add("session-db", o.sessionDB)
	add("config", o.configPath)
	add("log-level", o.logLevel)
	add("log-file", o.logFile)
	return args
}

// vaultClient is what the commands need from the client services.
type vaultClient struct {
	vaults   service.ClientVaultService
	sessions service.ClientSessionService
	close    func() error
}

type clientOpener func(ctx context.Context, opts rootOptions) (*vaultClient, error)

func openClient(ctx context.Context, opts rootOptions) (*vaultClient, error) {
	cfg, err := config.GetClientConfig(opts.configArgs())
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	log := logger.NewClientLogger("vaultctl", cfg.Log.File)
	logger.SetLevel(cfg.Log.Level)

	api, err := adapter.NewHTTPVaultAPI(cfg.Adapter, log)
	if err != nil {
		return nil, fmt.Errorf("create server adapter: %w", err)
	}

	storages, err := store.NewClientStorages(ctx, cfg.Session, log)
	if err != nil {
		return nil, fmt.Errorf("open session database: %w", err)
	}

	services := service.NewClientServices(storages, api, log)
	return &vaultClient{
		vaults:   services.VaultService,
		sessions: services.SessionService,
		close:    storages.Close,
	}, nil
}

func newRootCmd(open clientOpener) *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "vaultctl",
		Short:         "Scripted access to a secure file vault",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.server, "server", "", "vault API base URL (default http://127.0.0.1:8000)")
	flags.StringVar(&opts.sessionDB, "session-db", "", "client session database path")
	flags.StringVarP(&opts.configPath, "config", "c", "", "config file path")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	flags.StringVar(&opts.logFile, "log-file", "", "log file path")
	flags.BoolVarP(&opts.quiet, "quiet", "q", false, "no spinner, plain output")

	// withClient opens the client for one command run and closes it after.
	withClient := func(run func(cmd *cobra.Command, args []string, c *vaultClient) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			c, err := open(cmd.Context(), *opts)
			if err != nil {
				return reportError(cmd.ErrOrStderr(), err)
			}
			if c.close != nil {
				defer c.close()
			}
			if err := run(cmd, args, c); err != nil {
				return reportError(cmd.ErrOrStderr(), err)
			}
			return nil
		}
	}

	root.AddCommand(
		newStatusCmd(opts, withClient),
		newRegisterCmd(opts, withClient),
		newLoginCmd(opts, withClient),
		newRecoverCmd(opts, withClient),
		newListCmd(opts, withClient),
		newUploadCmd(opts, withClient),
		newDownloadCmd(opts, withClient),
		newDestroyCmd(opts, withClient),
		newLogoutCmd(withClient),
		newWhoamiCmd(withClient),
		newVersionCmd(),
	)

	return root
}

type clientRunner = func(run func(cmd *cobra.Command, args []string, c *vaultClient) error) func(*cobra.Command, []string) error

// reportedError marks an error already printed by reportError.
type reportedError struct{ err error }

func (e reportedError) Error() string { return e.err.Error() }
func (e reportedError) Unwrap() error { return e.err }

func reportError(w io.Writer, err error) error {
	fmt.Fprintln(w, failMark()+" "+humanizeError(err))
	return reportedError{err: err}
}

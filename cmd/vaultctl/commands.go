package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-file-vault/internal/service"
	"github.com/MKhiriev/go-file-vault/models"
)

// Environment fallbacks for secrets, so they stay out of shell history.
const (
	envPassword = "VAULT_PASSWORD"
	envVaultKey = "VAULT_KEY"
)

func secretOrEnv(flagValue, env string) string {
	if flagValue != "" {
		return flagValue
	}
	return os.Getenv(env)
}

func newStatusCmd(opts *rootOptions, withClient clientRunner) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check that the vault server is online",
		Args:  cobra.NoArgs,
		RunE: withClient(func(cmd *cobra.Command, _ []string, c *vaultClient) error {
			stop := startSpinner(cmd.ErrOrStderr(), "Contacting server...", opts.quiet)
			status, err := c.vaults.ServerStatus(cmd.Context())
			stop()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s (%s)\n", okMark(), status.Message, status.Status)
			return nil
		}),
	}
}

func newRegisterCmd(opts *rootOptions, withClient clientRunner) *cobra.Command {
	var req models.CreateVaultRequest
	var question int

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a vault and print its vault key",
		Args:  cobra.NoArgs,
		RunE: withClient(func(cmd *cobra.Command, _ []string, c *vaultClient) error {
			if question < 1 || question > len(models.SecurityQuestions) {
				return fmt.Errorf("%w: --question must be between 1 and %d", service.ErrInvalidDataProvided, len(models.SecurityQuestions))
			}
			req.SecurityQuestion = models.SecurityQuestions[question-1]
			req.Password = secretOrEnv(req.Password, envPassword)

			stop := startSpinner(cmd.ErrOrStderr(), "Creating vault...", opts.quiet)
			vaultKey, err := c.vaults.Register(cmd.Context(), req)
			stop()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s Vault created for %s\n", okMark(), req.Email)
			fmt.Fprintf(out, "Vault key: %s\n", color.YellowString(vaultKey))
			fmt.Fprintf(out, "%s This key is shown only once. Store it somewhere safe.\n", hintMark())
			return nil
		}),
	}

	questions := make([]string, len(models.SecurityQuestions))
	for i, q := range models.SecurityQuestions {
		questions[i] = fmt.Sprintf("%d=%q", i+1, q)
	}

	f := cmd.Flags()
	f.StringVar(&req.Email, "email", "", "vault owner email")
	f.StringVar(&req.Password, "password", "", "master password (or $"+envPassword+")")
	f.IntVar(&question, "question", 1, "security question: "+strings.Join(questions, ", "))
	f.StringVar(&req.SecurityAnswer, "answer", "", "answer to the security question")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("answer")

	return cmd
}

func newLoginCmd(opts *rootOptions, withClient clientRunner) *cobra.Command {
	var req models.LoginVaultRequest

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and save the session",
		Args:  cobra.NoArgs,
		RunE: withClient(func(cmd *cobra.Command, _ []string, c *vaultClient) error {
			req.Password = secretOrEnv(req.Password, envPassword)
			req.PrivateKey = secretOrEnv(req.PrivateKey, envVaultKey)

			stop := startSpinner(cmd.ErrOrStderr(), "Unlocking vault...", opts.quiet)
			session, err := c.vaults.Login(cmd.Context(), req)
			stop()
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s Logged in as %s\n", okMark(), session.Email)
			return nil
		}),
	}

	f := cmd.Flags()
	f.StringVar(&req.Email, "email", "", "vault owner email")
	f.StringVar(&req.Password, "password", "", "master password (or $"+envPassword+")")
	f.StringVar(&req.PrivateKey, "key", "", "vault key (or $"+envVaultKey+")")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}

func newRecoverCmd(opts *rootOptions, withClient clientRunner) *cobra.Command {
	var req models.VerifyIdentityRequest

	cmd := &cobra.Command{
		Use:   "recover",
		Short: "Unlock a locked vault by answering its security question",
		Long: "Unlock a locked vault by answering its security question.\n\n" +
			"A wrong answer destroys the vault: its files are moved to deep storage\n" +
			"and a recovery token is printed.",
		Args: cobra.NoArgs,
		RunE: withClient(func(cmd *cobra.Command, _ []string, c *vaultClient) error {
			req.PrivateKey = secretOrEnv(req.PrivateKey, envVaultKey)

			stop := startSpinner(cmd.ErrOrStderr(), "Verifying identity...", opts.quiet)
			tempPassword, err := c.vaults.Recover(cmd.Context(), req)
			stop()

			var destroyed *service.VaultDestroyedError
			if errors.As(err, &destroyed) {
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "%s Identity verification failed. Vault destroyed.\n", failMark())
				if destroyed.RecoveryToken != "" {
					fmt.Fprintf(out, "Recovery token: %s\n", color.YellowString(destroyed.RecoveryToken))
				}
				return err
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s Identity verified. The vault is unlocked.\n", okMark())
			fmt.Fprintf(out, "Temporary password: %s\n", color.YellowString(tempPassword))
			return nil
		}),
	}

	f := cmd.Flags()
	f.StringVar(&req.Email, "email", "", "vault owner email")
	f.StringVar(&req.SecurityAnswer, "answer", "", "answer to the security question")
	f.StringVar(&req.PrivateKey, "key", "", "vault key, used for the recovery token (or $"+envVaultKey+")")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("answer")

	return cmd
}

func newListCmd(opts *rootOptions, withClient clientRunner) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List the files in the vault",
		Args:    cobra.NoArgs,
		RunE: withClient(func(cmd *cobra.Command, _ []string, c *vaultClient) error {
			stop := startSpinner(cmd.ErrOrStderr(), "Fetching files...", opts.quiet)
			files, err := c.vaults.ListFiles(cmd.Context())
			stop()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(files) == 0 {
				fmt.Fprintln(out, "No files in the vault")
				return nil
			}

			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tSIZE\tUPLOADED")
			for _, f := range files {
				fmt.Fprintf(tw, "%s\t%d\t%s\n", f.Name, f.Size, f.CreatedAt().UTC().Format("2006-01-02T15:04:05Z"))
			}
			return tw.Flush()
		}),
	}
}

func newUploadCmd(opts *rootOptions, withClient clientRunner) *cobra.Command {
	return &cobra.Command{
		Use:   "upload <path>...",
		Short: "Encrypt and upload files",
		Args:  cobra.MinimumNArgs(1),
		RunE: withClient(func(cmd *cobra.Command, args []string, c *vaultClient) error {
			for _, path := range args {
				stop := startSpinner(cmd.ErrOrStderr(), "Uploading "+path+"...", opts.quiet)
				resp, err := c.vaults.Upload(cmd.Context(), path)
				stop()
				if err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s stored as %s\n", okMark(), path, resp.Filename)
			}
			return nil
		}),
	}
}

func newDownloadCmd(opts *rootOptions, withClient clientRunner) *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "download <name>...",
		Short: "Download and decrypt files",
		Args:  cobra.MinimumNArgs(1),
		RunE: withClient(func(cmd *cobra.Command, args []string, c *vaultClient) error {
			for _, name := range args {
				stop := startSpinner(cmd.ErrOrStderr(), "Downloading "+name+"...", opts.quiet)
				path, err := c.vaults.Download(cmd.Context(), name, dir)
				stop()
				if err != nil {
					return fmt.Errorf("%s: %w", name, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s saved to %s\n", okMark(), name, path)
			}
			return nil
		}),
	}

	cmd.Flags().StringVarP(&dir, "dir", "o", ".", "directory to write files into")
	return cmd
}

func newDestroyCmd(opts *rootOptions, withClient clientRunner) *cobra.Command {
	var confirmed bool

	cmd := &cobra.Command{
		Use:   "destroy",
		Short: "Destroy the logged-in vault",
		Args:  cobra.NoArgs,
		RunE: withClient(func(cmd *cobra.Command, _ []string, c *vaultClient) error {
			if !confirmed {
				return fmt.Errorf("%w: refusing to destroy the vault without --yes", service.ErrInvalidDataProvided)
			}

			stop := startSpinner(cmd.ErrOrStderr(), "Destroying vault...", opts.quiet)
			resp, err := c.vaults.Destroy(cmd.Context())
			stop()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %s\n", okMark(), resp.Message)
			fmt.Fprintf(out, "Files affected: %d\n", resp.FilesAffected)
			fmt.Fprintf(out, "Recovery token: %s\n", color.YellowString(resp.RecoveryToken))
			return nil
		}),
	}

	cmd.Flags().BoolVar(&confirmed, "yes", false, "confirm the destruction")
	return cmd
}

func newLogoutCmd(withClient clientRunner) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the saved session",
		Args:  cobra.NoArgs,
		RunE: withClient(func(cmd *cobra.Command, _ []string, c *vaultClient) error {
			if err := c.vaults.Logout(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Logged out\n", okMark())
			return nil
		}),
	}
}

func newWhoamiCmd(withClient clientRunner) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the saved session",
		Args:  cobra.NoArgs,
		RunE: withClient(func(cmd *cobra.Command, _ []string, c *vaultClient) error {
			session, err := c.sessions.Current(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s (logged in %s)\n", session.Email, session.CreatedAt.Local().Format("2006-01-02 15:04"))
			return nil
		}),
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprint(cmd.OutOrStdout(), models.NewAppBuildInfo(buildVersion, buildDate, buildCommit).String())
		},
	}
}

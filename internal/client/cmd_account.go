package client

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-note-vault/internal/service"
)

func (a *App) newSignUpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "signup",
		Short: "Create an account and a new vault",
		Long: `Creates an account for --login, generates a random vault passphrase and
stores it wrapped under your password. The passphrase is shown once; keep it
somewhere safe, it is the only way to open your notes without the password.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			login, err := a.login()
			if err != nil {
				return err
			}
			password, err := askNewSecret(a.prompt, "Password")
			if err != nil {
				return err
			}
			services, err := a.svc(ctx)
			if err != nil {
				return err
			}

			stop := startSpinner(a.errOut, "Deriving vault key...")
			result, err := services.AccountService.SignUp(ctx, login, password)
			stop()
			if err != nil {
				return err
			}

			a.print.success("Account %s created", result.Profile.Login)
			a.print.warn("Vault passphrase (shown once): %s", result.Passphrase)
			if !result.Encrypted {
				a.print.warn("Encryption is unavailable; notes will be stored in clear")
			}
			a.exportSession()
			return nil
		},
	}
}

func (a *App) newSignInCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "signin",
		Short: "Unlock the vault for this shell",
		Long: `Checks your password, unwraps the vault passphrase and derives the vault
key. With the env session backend the key is printed as export statements:

  eval "$(notevault signin -l alice)"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			login, err := a.login()
			if err != nil {
				return err
			}
			password, err := a.prompt.Secret("Password: ")
			if err != nil {
				return err
			}
			services, err := a.svc(ctx)
			if err != nil {
				return err
			}

			stop := startSpinner(a.errOut, "Unlocking vault...")
			result, err := services.AccountService.SignIn(ctx, login, password)
			stop()
			if err != nil {
				return err
			}

			if !result.Encrypted {
				a.print.warn("Signed in as %s; the vault is not encrypted", result.Profile.Login)
				a.exportSession()
				return nil
			}
			a.print.success("Vault unlocked for %s", result.Profile.Login)
			a.exportSession()
			return nil
		},
	}
}

func (a *App) newSignOutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "signout",
		Short: "Forget the cached vault key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			services, err := a.svc(ctx)
			if err != nil {
				return err
			}
			services.AccountService.SignOut(ctx)
			a.exportSession()
			a.print.success("Signed out")
			return nil
		},
	}
}

func (a *App) newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show whether the vault is unlocked",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			services, err := a.svc(ctx)
			if err != nil {
				return err
			}
			status := services.AccountService.Status(ctx)

			fmt.Fprintf(a.out, "crypto: %s\n", onOff(status.CryptoAvailable, "available", "unavailable"))
			fmt.Fprintf(a.out, "vault:  %s\n", onOff(status.Unlocked, "unlocked", "locked"))
			if status.KeySalt != "" {
				fmt.Fprintf(a.out, "salt:   %s\n", status.KeySalt)
			}
			return nil
		},
	}
}

func (a *App) newPasswdCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "passwd",
		Short: "Change the login password",
		Long: `Re-wraps the vault passphrase under a new password. Notes are not
re-encrypted and the current session stays unlocked.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			login, err := a.login()
			if err != nil {
				return err
			}
			oldPassword, err := a.prompt.Secret("Current password: ")
			if err != nil {
				return err
			}
			newPassword, err := askNewSecret(a.prompt, "New password")
			if err != nil {
				return err
			}
			services, err := a.svc(ctx)
			if err != nil {
				return err
			}

			stop := startSpinner(a.errOut, "Re-wrapping vault passphrase...")
			err = services.AccountService.ChangePassword(ctx, login, oldPassword, newPassword)
			stop()
			if err != nil {
				return err
			}

			a.print.success("Password changed")
			return nil
		},
	}
}

func onOff(v bool, on, off string) string {
	if v {
		return on
	}
	return off
}

// requireUnlocked fails early when the vault is locked while encryption is
// available, so write commands do not prompt for input they cannot store.
func requireUnlocked(status service.Status) error {
	if status.CryptoAvailable && !status.Unlocked {
		return service.ErrVaultLocked
	}
	return nil
}

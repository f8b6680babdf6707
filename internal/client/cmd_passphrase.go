package client

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (a *App) newPassphraseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "passphrase",
		Short: "Manage the vault passphrase",
	}
	cmd.AddCommand(a.newPassphraseSetCmd(), a.newPassphraseRevealCmd())
	return cmd
}

func (a *App) newPassphraseSetCmd() *cobra.Command {
	var salt string

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Unlock this session with a passphrase you type",
		Long: `Derives the session key from the given passphrase and a salt. The stored
account is not changed.

Without --salt a fresh salt is drawn and printed. Notes written afterwards
can only be opened again with the same passphrase and that salt:

  notevault passphrase set --salt <salt>`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			passphrase, err := askNewSecret(a.prompt, "Passphrase")
			if err != nil {
				return err
			}
			services, err := a.svc(ctx)
			if err != nil {
				return err
			}

			stop := startSpinner(a.errOut, "Deriving session key...")
			used, err := services.AccountService.SetPassphrase(ctx, passphrase, salt)
			stop()
			if err != nil {
				return err
			}

			a.print.success("Session key replaced")
			if salt == "" {
				a.print.warn("Key salt: %s", used)
				a.print.hint("Keep the salt; notes written now open only with this passphrase and --salt %s", used)
			}
			a.exportSession()
			return nil
		},
	}
	cmd.Flags().StringVar(&salt, "salt", "", "Base64 salt of an earlier key (default: a fresh salt)")
	return cmd
}

func (a *App) newPassphraseRevealCmd() *cobra.Command {
	var copyIt bool

	cmd := &cobra.Command{
		Use:   "reveal",
		Short: "Print the vault passphrase",
		Args:  cobra.NoArgs,
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

			stop := startSpinner(a.errOut, "Unwrapping vault passphrase...")
			passphrase, err := services.AccountService.RevealPassphrase(ctx, login, password)
			stop()
			if err != nil {
				return err
			}

			if copyIt {
				if err = a.copyToClipboard(passphrase); err != nil {
					return fmt.Errorf("cannot copy to clipboard: %w", err)
				}
				a.print.success("Vault passphrase copied to the clipboard")
				return nil
			}
			fmt.Fprintln(a.out, passphrase)
			return nil
		},
	}
	cmd.Flags().BoolVar(&copyIt, "copy", false, "Copy to the clipboard instead of printing")
	return cmd
}

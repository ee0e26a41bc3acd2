package cli

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nhle/meeting-tracker/internal/credential"
)

func newAuthCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage the REST data service key in the system keyring",
	}
	cmd.AddCommand(newSetKeyCmd())
	cmd.AddCommand(newClearKeyCmd())
	return cmd
}

func newSetKeyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set-key [key]",
		Short: "Store the service key (read from stdin when omitted)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var key string
			if len(args) == 1 {
				key = args[0]
			} else {
				fmt.Fprint(cmd.ErrOrStderr(), "Service key: ")
				line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil && line == "" {
					return fmt.Errorf("reading service key: %w", err)
				}
				key = line
			}
			key = strings.TrimSpace(key)
			if key == "" {
				return errors.New("service key must not be empty")
			}

			store, err := openCredentials()
			if err != nil {
				return err
			}
			if err := store.Set(credential.ServiceKeyName, key); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Service key saved.")
			return nil
		},
	}
}

func newClearKeyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear-key",
		Short: "Remove the stored service key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openCredentials()
			if err != nil {
				return err
			}
			if err := store.Delete(credential.ServiceKeyName); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Service key removed.")
			return nil
		},
	}
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"playconsole/internal/cliconfig"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Drop the cached access token",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := cliconfig.Load()
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if !cfg.IsLoggedIn() {
			fmt.Println("Not logged in.")
			return nil
		}
		cfg.ClearAuth()
		if err := cfg.Save(); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
		fmt.Println("Logged out.")
		return nil
	},
}

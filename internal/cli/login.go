package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"playconsole/internal/cliconfig"
	"playconsole/internal/identity"
)

var (
	loginUsername string
	loginPassword string
	loginClientID string
	loginRegion   string
	loginAPIURL   string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Authenticate and cache an access token",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := cliconfig.Load()
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if cfg.IsLoggedIn() {
			fmt.Printf("Already logged in as %s. Use 'playctl logout' first.\n", cfg.Username)
			return nil
		}

		if loginClientID != "" {
			cfg.CognitoClientID = loginClientID
		}
		if loginRegion != "" {
			cfg.CognitoRegion = loginRegion
		}
		if loginAPIURL != "" {
			cfg.APIBaseURL = loginAPIURL
		}
		if cfg.CognitoClientID == "" {
			return fmt.Errorf("no app client configured, pass --client-id once; it is remembered afterwards")
		}

		username := loginUsername
		if username == "" {
			username = prompt("Username: ")
		}
		password := loginPassword
		if password == "" {
			password = prompt("Password: ")
		}

		issuer, err := identity.NewCognitoAuthenticator(cmd.Context(), cfg.CognitoRegion, cfg.CognitoClientID)
		if err != nil {
			return err
		}
		token, err := issuer.Authenticate(cmd.Context(), username, password)
		if err != nil {
			return fmt.Errorf("login failed: %w", err)
		}

		cfg.AccessToken = token
		cfg.Username = username
		if err := cfg.Save(); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
		fmt.Printf("Logged in as %s\n", username)
		return nil
	},
}

func prompt(label string) string {
	fmt.Print(label)
	reader := bufio.NewReader(os.Stdin)
	line, _ := reader.ReadString('\n')
	return strings.TrimSpace(line)
}

func init() {
	loginCmd.Flags().StringVarP(&loginUsername, "username", "u", "", "account username")
	loginCmd.Flags().StringVarP(&loginPassword, "password", "p", "", "account password (prompted when omitted)")
	loginCmd.Flags().StringVar(&loginClientID, "client-id", "", "identity app client id")
	loginCmd.Flags().StringVar(&loginRegion, "region", "", "identity region")
	loginCmd.Flags().StringVar(&loginAPIURL, "api-url", "", "studio API base URL")
}

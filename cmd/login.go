package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/MrJinPro/SVOD/internal/auth"
	"github.com/MrJinPro/SVOD/internal/config"
	"github.com/MrJinPro/SVOD/internal/output"
	"github.com/MrJinPro/SVOD/internal/pages"
)

// Variables to hold flag values
var (
	user     string
	pass     string
	email    string
	register bool
)

// loginCmd represents the login command
var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Authenticate with the command center API",
	Long: `Exchanges credentials for an access token and stores it locally so
subsequent commands are authenticated.

Example:
  svod-cli login --origin 10.0.0.5 -u operator1 -p secret
  svod-cli login --register -u operator2 -p secret --email op2@example.com`,
	Run: func(cmd *cobra.Command, args []string) {
		s := newSession()

		p := pages.NewLoginPage(s.api, s.tokens)
		if register {
			p.ToggleMode()
		}
		p.Username, p.Password, p.Email = user, pass, email

		fmt.Printf("Authenticating against %s as user '%s'...\n", s.api.BaseURL, user)

		res, err := p.Submit(cmd.Context())
		if err != nil {
			output.Error("%s: %s", p.Title(true), pages.ErrorText(err))
			os.Exit(1)
		}

		// --- JSON OUTPUT ---
		if jsonOutput {
			printJSON(res.User)
			return
		}

		output.Success("%s: %s (%s)", p.Title(false), res.User.Username, output.RoleLabels[res.User.Role])

		// We save the API address so subsequent commands know where to connect.
		for flag, key := range map[string]string{"api-url": config.KeyAPIBaseURL, "origin": config.KeyOrigin} {
			if !cmd.Flags().Changed(flag) {
				continue
			}
			if err := config.SaveValue(key, viper.GetString(key)); err != nil {
				output.Warning("Failed to save configuration file: %v", err)
			}
		}
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the stored access token",
	Run: func(cmd *cobra.Command, args []string) {
		s := newSession()
		pages.Logout(s.tokens)
		output.Success("Logged out.")
	},
}

var whoamiCmd = &cobra.Command{
	Use:     "whoami",
	Aliases: []string{"status"},
	Short:   "Show the account the stored token belongs to",
	Run: func(cmd *cobra.Command, args []string) {
		s := newSession()

		tok, ok := s.tokens.Get()
		if !ok {
			fmt.Println("Not logged in. Please run 'svod-cli login' first.")
			os.Exit(1)
		}

		info, infoErr := auth.Inspect(tok)
		if infoErr == nil && info.Expired(time.Now()) {
			output.Warning("Stored token expired at %s", info.ExpiresAt.Local().Format(time.DateTime))
		}

		me, err := s.api.Me(cmd.Context())
		if err != nil {
			fail("Error fetching current user", err)
		}

		// --- JSON OUTPUT ---
		if jsonOutput {
			printJSON(me)
			return
		}

		output.Header("Current user")
		output.KeyValue("API", s.api.BaseURL)
		output.KeyValue("ID", me.ID)
		output.KeyValue("Username", me.Username)
		if me.Email != nil {
			output.KeyValue("Email", *me.Email)
		}
		output.KeyValue("Role", output.RoleLabels[me.Role])
		if infoErr == nil && !info.ExpiresAt.IsZero() {
			output.KeyValue("Token expires", info.ExpiresAt.Local().Format(time.DateTime))
		}
	},
}

func init() {
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)

	// Define Flags
	loginCmd.Flags().StringVarP(&user, "username", "u", "", "Username")
	loginCmd.Flags().StringVarP(&pass, "password", "p", "", "Password")
	loginCmd.Flags().StringVar(&email, "email", "", "Email (registration only)")
	loginCmd.Flags().BoolVar(&register, "register", false, "Create a new operator account instead of logging in")

	_ = loginCmd.MarkFlagRequired("username")
	_ = loginCmd.MarkFlagRequired("password")
}

package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/MrJinPro/SVOD/internal/config"
	"github.com/MrJinPro/SVOD/internal/output"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change client preferences",
	Long: `Client preferences are stored in the state directory and read at startup.
Unreadable values fall back to defaults.`,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the current preferences",
	Run: func(cmd *cobra.Command, args []string) {
		s := newSession()

		// --- JSON OUTPUT ---
		if jsonOutput {
			printJSON(s.settings)
			return
		}

		enc := yaml.NewEncoder(output.Out)
		enc.SetIndent(2)
		if err := enc.Encode(s.settings); err != nil {
			fmt.Printf("Error encoding YAML: %v\n", err)
			os.Exit(1)
		}
		_ = enc.Close()
		fmt.Fprintf(output.Out, "\nsidebarCollapsed: %t\n", config.SidebarCollapsed(s.storage))
		fmt.Fprintf(output.Out, "api: %s\n", s.api.BaseURL)
	},
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change one preference",
	Example: `  svod-cli settings set apiUrl http://10.0.0.5:8000/api/v1
  svod-cli settings set refreshInterval 15
  svod-cli settings set sidebarCollapsed true`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		s := newSession()

		if args[0] == "sidebarCollapsed" {
			v, err := strconv.ParseBool(args[1])
			if err != nil {
				fmt.Printf("Error: %s expects true or false\n", args[0])
				os.Exit(1)
			}
			config.SetSidebarCollapsed(s.storage, v)
			output.Success("sidebarCollapsed = %t", v)
			return
		}

		updated, err := applySetting(s.settings, args[0], args[1])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		config.SaveSettings(s.storage, updated)
		output.Success("%s = %s", args[0], args[1])
	},
}

// applySetting sets key on a copy of s, parsing value to the field's type.
func applySetting(s config.Settings, key, value string) (config.Settings, error) {
	parseInt := func() (int, error) {
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return 0, fmt.Errorf("%s expects a non-negative number", key)
		}
		return n, nil
	}
	parseBool := func() (bool, error) {
		b, err := strconv.ParseBool(value)
		if err != nil {
			return false, fmt.Errorf("%s expects true or false", key)
		}
		return b, nil
	}

	var err error
	switch key {
	case "apiUrl":
		s.APIURL = strings.TrimSpace(value)
	case "timeout":
		s.Timeout, err = parseInt()
	case "sessionTimeout":
		s.SessionTimeout, err = parseInt()
	case "refreshInterval":
		s.RefreshInterval, err = parseInt()
	case "pushNotifications":
		s.PushNotifications, err = parseBool()
	case "soundAlerts":
		s.SoundAlerts, err = parseBool()
	case "emailNotifications":
		s.EmailNotifications, err = parseBool()
	case "autoLogout":
		s.AutoLogout, err = parseBool()
	case "autoRefresh":
		s.AutoRefresh, err = parseBool()
	default:
		return s, fmt.Errorf("unknown setting %q", key)
	}
	return s, err
}

var settingsResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore default preferences",
	Run: func(cmd *cobra.Command, args []string) {
		s := newSession()
		config.SaveSettings(s.storage, config.DefaultSettings())
		output.Success("Settings restored to defaults.")
	},
}

func init() {
	rootCmd.AddCommand(settingsCmd)
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsResetCmd)
}

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/MrJinPro/SVOD/internal/output"
	"github.com/MrJinPro/SVOD/internal/tui"
)

var consoleCmd = &cobra.Command{
	Use:   "console",
	Short: "Open the interactive command center console",
	Long: `Opens a full-screen console with the dashboard, event journal, objects,
reports, notifications and search. Listings refresh automatically when
autoRefresh is enabled in settings.`,
	Run: func(cmd *cobra.Command, args []string) {
		s := newSession()
		if _, ok := s.tokens.Get(); !ok {
			output.Warning("Not logged in; requests may be rejected. Run 'svod-cli login' first.")
		}

		err := tui.Run(cmd.Context(), tui.Options{
			Client:   s.api,
			Storage:  s.storage,
			Settings: s.settings,
		})
		if err != nil {
			fail("Console error", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(consoleCmd)
}

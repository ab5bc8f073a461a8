package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MrJinPro/SVOD/internal/output"
	"github.com/MrJinPro/SVOD/internal/pages"
)

var notificationsCmd = &cobra.Command{
	Use:     "notifications",
	Aliases: []string{"notif"},
	Short:   "List and acknowledge notifications",
}

var notificationsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List notifications, newest first",
	Run: func(cmd *cobra.Command, args []string) {
		p := pages.NewNotificationsPage(cmd.Context(), getClient())
		defer p.Close()
		p.Wait()

		st := p.State()
		if st.Err != nil {
			fail("Error fetching notifications", st.Err)
		}

		// --- JSON OUTPUT ---
		if jsonOutput {
			printJSON(st.Data)
			return
		}

		if len(st.Data) == 0 {
			fmt.Println("Нет уведомлений")
			return
		}
		output.Header(fmt.Sprintf("Уведомления (непрочитанных: %d)", p.Unread()))
		output.Table(output.NotificationHeaders, output.NotificationRows(st.Data))
	},
}

var notificationsReadCmd = &cobra.Command{
	Use:   "read-all",
	Short: "Mark every notification as read",
	Run: func(cmd *cobra.Command, args []string) {
		p := pages.NewNotificationsPage(cmd.Context(), getClient())
		defer p.Close()

		res, err := p.MarkAllRead(cmd.Context())
		if err != nil {
			fail("Error marking notifications", err)
		}
		p.Wait()

		// --- JSON OUTPUT ---
		if jsonOutput {
			printJSON(res)
			return
		}
		output.Success("Marked %d notifications as read.", res.Marked)
	},
}

var notificationsClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Hide all notifications up to now",
	Run: func(cmd *cobra.Command, args []string) {
		p := pages.NewNotificationsPage(cmd.Context(), getClient())
		defer p.Close()

		if err := p.Clear(cmd.Context()); err != nil {
			fail("Error clearing notifications", err)
		}
		p.Wait()
		output.Success("Notifications cleared.")
	},
}

func init() {
	rootCmd.AddCommand(notificationsCmd)
	notificationsCmd.AddCommand(notificationsListCmd)
	notificationsCmd.AddCommand(notificationsReadCmd)
	notificationsCmd.AddCommand(notificationsClearCmd)
}

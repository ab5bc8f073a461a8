package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MrJinPro/SVOD/internal/output"
	"github.com/MrJinPro/SVOD/internal/pages"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show today's counters, timeline and latest events",
	Run: func(cmd *cobra.Command, args []string) {
		api := getClient()

		snap, err := pages.LoadDashboard(cmd.Context(), api)
		if err != nil {
			// Widgets that loaded are still shown.
			output.Warning("Some dashboard data is unavailable: %s", pages.ErrorText(err))
		}

		// --- JSON OUTPUT ---
		if jsonOutput {
			printJSON(snap)
			return
		}

		output.Header("Сводка за сегодня")
		output.KeyValue("Событий сегодня", snap.Stats.TotalEvents)
		output.KeyValue("Критических", snap.Stats.CriticalEvents)
		output.KeyValue("Объектов под охраной", snap.Stats.ActiveObjects)
		output.KeyValue("Отчётов", snap.Stats.ReportsGenerated)
		output.KeyValue("Динамика к вчера", output.Trend(snap.Stats.EventsTrend))

		if len(snap.Timeline) > 0 {
			fmt.Fprintln(output.Out)
			output.Header("События по времени")
			top := 0
			for _, p := range snap.Timeline {
				top = max(top, p.Events)
			}
			for _, p := range snap.Timeline {
				fmt.Fprintf(output.Out, "  %5s %-30s %d (крит. %d)\n", p.Time, output.Bar(p.Events, top, 30), p.Events, p.Critical)
			}
		}

		if len(snap.ByType) > 0 {
			fmt.Fprintln(output.Out)
			output.Header("По типам за 24 часа")
			rows := make([][]string, len(snap.ByType))
			for i, s := range snap.ByType {
				rows[i] = []string{s.Name, fmt.Sprint(s.Value)}
			}
			output.Table([]string{"ТИП", "СОБЫТИЙ"}, rows)
		}

		fmt.Fprintln(output.Out)
		output.Header("Последние события")
		if len(snap.Recent) == 0 {
			fmt.Fprintln(output.Out, "Нет событий")
			return
		}
		output.Table(output.EventHeaders, output.EventRows(snap.Recent))
	},
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
}

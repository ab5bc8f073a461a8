package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/MrJinPro/SVOD/internal/client"
	"github.com/MrJinPro/SVOD/internal/fetch"
	"github.com/MrJinPro/SVOD/internal/output"
	"github.com/MrJinPro/SVOD/internal/pages"
	"github.com/MrJinPro/SVOD/pkg/models"
)

var (
	eventFilters  pages.EventFilters
	eventPage     int
	exportFile    string
	exportURLOnly bool
)

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Browse the event journal",
	Long:  `List, inspect and export events registered by the monitoring system.`,
}

var eventsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List one page of events",
	Example: `  svod-cli events list --severity critical --today
  svod-cli events list --search "склад" --page 2`,
	Run: func(cmd *cobra.Command, args []string) {
		api := getClient()

		eventPage = max(eventPage, 1)
		path := pages.EventsPath(eventFilters, eventPage, time.Now())
		st := fetch.Load(cmd.Context(), api.ListEvents, path, models.Empty[models.Event](pages.PageSize))
		if st.Err != nil {
			fail("Error fetching events", st.Err)
		}

		// --- JSON OUTPUT ---
		if jsonOutput {
			printJSON(st.Data)
			return
		}

		if len(st.Data.Data) == 0 {
			fmt.Println("No events found.")
			return
		}

		output.Table(output.EventHeaders, output.EventRows(st.Data.Data))
		p := pages.PagerFor(eventPage, st.Data)
		fmt.Fprintln(output.Out)
		fmt.Fprintln(output.Out, output.PagerLine(p.Summary(false), p.Page, p.TotalPages, p.HasPrev, p.HasNext))
	},
}

var eventsGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show a single event",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		api := getClient()

		evt, err := api.GetEvent(cmd.Context(), args[0])
		if err != nil {
			fail("Error fetching event", err)
		}

		// --- JSON OUTPUT ---
		if jsonOutput {
			printJSON(evt)
			return
		}

		output.Header(fmt.Sprintf("Event %s", evt.ID))
		output.KeyValue("Время", output.Timestamp(evt.Timestamp))
		output.KeyValue("Тип", output.TypeLabels[evt.Type])
		output.KeyValue("Важность", output.Severity(evt.Severity))
		output.KeyValue("Статус", output.StatusLabels[evt.Status])
		output.KeyValue("Объект", evt.ObjectName)
		output.KeyValue("Клиент", evt.ClientName)
		output.KeyValue("Описание", evt.Description)
		if evt.Code != "" {
			output.KeyValue("Код", evt.Code+" "+evt.CodeText)
		}
		if evt.Location != "" {
			output.KeyValue("Адрес", evt.Location)
		}
		if evt.StateName != "" {
			output.KeyValue("Состояние", evt.StateName)
		}
	},
}

var eventsExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Download the filtered journal as CSV",
	Example: `  svod-cli events export --today -o today.csv
  svod-cli events export --type alarm > alarms.csv`,
	Run: func(cmd *cobra.Command, args []string) {
		api := getClient()
		path := pages.EventsExportPath(eventFilters, time.Now())
		download(cmd, api, path)
	},
}

// download streams an export to --output, or stdout when unset. With
// --url it only prints the address, for a browser or curl.
func download(cmd *cobra.Command, api *client.SvodClient, path string) {
	if exportURLOnly {
		fmt.Println(api.ExportURL(path))
		return
	}

	var w io.Writer = os.Stdout
	if exportFile != "" {
		f, err := os.Create(exportFile)
		if err != nil {
			fmt.Printf("Error creating %s: %v\n", exportFile, err)
			os.Exit(1)
		}
		defer f.Close()
		w = f
	}

	n, err := api.Download(cmd.Context(), path, w)
	if err != nil {
		fail("Error downloading export", err)
	}
	if exportFile != "" {
		output.Success("Saved %d bytes to %s", n, exportFile)
	}
}

func addEventFilterFlags(c *cobra.Command) {
	c.Flags().StringVar(&eventFilters.Search, "search", "", "Free text filter")
	c.Flags().StringVar(&eventFilters.Type, "type", pages.FilterAll, "Event type (intrusion, alarm, access, patrol, incident, maintenance)")
	c.Flags().StringVar(&eventFilters.Severity, "severity", pages.FilterAll, "Severity (critical, warning, info, success)")
	c.Flags().StringVar(&eventFilters.Status, "status", pages.FilterAll, "Status (active, pending, resolved)")
	c.Flags().BoolVar(&eventFilters.TodayOnly, "today", false, "Only events of the current local day")
}

func init() {
	rootCmd.AddCommand(eventsCmd)
	eventsCmd.AddCommand(eventsListCmd)
	eventsCmd.AddCommand(eventsGetCmd)
	eventsCmd.AddCommand(eventsExportCmd)

	addEventFilterFlags(eventsListCmd)
	eventsListCmd.Flags().IntVar(&eventPage, "page", 1, "Page number (50 events per page)")

	addEventFilterFlags(eventsExportCmd)
	eventsExportCmd.Flags().StringVarP(&exportFile, "output", "o", "", "Write the CSV to a file instead of stdout")
	eventsExportCmd.Flags().BoolVar(&exportURLOnly, "url", false, "Print the download URL instead of downloading")
}

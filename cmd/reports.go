package cmd

import (
	"fmt"
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
	reportFilters pages.ReportFilters
	reportDate    string
	phrasesFrom   string
	phrasesTo     string
)

var reportsCmd = &cobra.Command{
	Use:   "reports",
	Short: "List and export reports",
}

var reportsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List generated and scheduled reports",
	Run: func(cmd *cobra.Command, args []string) {
		api := getClient()

		st := fetch.Load(cmd.Context(), api.ListReports, pages.ReportsPath(reportFilters), []models.Report{})
		if st.Err != nil {
			fail("Error fetching reports", st.Err)
		}

		// --- JSON OUTPUT ---
		if jsonOutput {
			printJSON(st.Data)
			return
		}

		if len(st.Data) == 0 {
			fmt.Println("No reports found.")
			return
		}
		output.Table(output.ReportHeaders, output.ReportRows(st.Data))
	},
}

var reportsExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Download report CSV files",
}

var reportsDailyCmd = &cobra.Command{
	Use:     "daily",
	Short:   "Download the daily events CSV",
	Example: `  svod-cli reports export daily --date 2024-04-30 -o daily.csv`,
	Run: func(cmd *cobra.Command, args []string) {
		if reportDate != "" {
			if _, err := time.Parse(client.DateLayout, reportDate); err != nil {
				fmt.Printf("Error: --date must be YYYY-MM-DD, got %q\n", reportDate)
				os.Exit(1)
			}
		} else {
			reportDate = time.Now().Format(client.DateLayout)
		}
		api := getClient()
		download(cmd, api, client.DailyReportPath(reportDate))
	},
}

var reportsPhrasesCmd = &cobra.Command{
	Use:     "phrases",
	Short:   "Download the phrase frequency CSV",
	Example: `  svod-cli reports export phrases --from 2024-04-01 --to 2024-04-30 -o phrases.csv`,
	Run: func(cmd *cobra.Command, args []string) {
		api := getClient()
		download(cmd, api, client.PhraseCountsPath(phrasesFrom, phrasesTo))
	},
}

func init() {
	rootCmd.AddCommand(reportsCmd)

	reportsCmd.AddCommand(reportsListCmd)
	reportsListCmd.Flags().StringVar(&reportFilters.Type, "type", pages.FilterAll, "Report type (daily, weekly, monthly); servers without report filtering ignore it")
	reportsListCmd.Flags().StringVar(&reportFilters.Status, "status", pages.FilterAll, "Report status (generated, sent, pending, failed); servers without report filtering ignore it")

	reportsCmd.AddCommand(reportsExportCmd)
	reportsExportCmd.PersistentFlags().StringVarP(&exportFile, "output", "o", "", "Write the CSV to a file instead of stdout")
	reportsExportCmd.PersistentFlags().BoolVar(&exportURLOnly, "url", false, "Print the download URL instead of downloading")

	reportsExportCmd.AddCommand(reportsDailyCmd)
	reportsDailyCmd.Flags().StringVar(&reportDate, "date", "", "Day to export, YYYY-MM-DD (default today)")

	reportsExportCmd.AddCommand(reportsPhrasesCmd)
	reportsPhrasesCmd.Flags().StringVar(&phrasesFrom, "from", "", "First day, YYYY-MM-DD")
	reportsPhrasesCmd.Flags().StringVar(&phrasesTo, "to", "", "Last day, YYYY-MM-DD")
}

package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/MrJinPro/SVOD/internal/jobs"
	"github.com/MrJinPro/SVOD/internal/output"
	"github.com/MrJinPro/SVOD/internal/pages"
)

var (
	syncLimit   string
	syncTimeout time.Duration
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Import data from the agency database",
	Long: `Runs the imports of objects (with groups and responsibles) and archived events
from the agency database into the command center.`,
}

func newIntegration() *pages.IntegrationPage {
	poller := jobs.NewPoller(getClient())
	if syncTimeout > 0 {
		poller.Timeout = syncTimeout
	}
	return pages.NewIntegrationPage(poller)
}

func printSyncResult(p *pages.IntegrationPage, msg string) {
	// --- JSON OUTPUT ---
	if jsonOutput {
		printJSON(p.LastResult())
		return
	}
	output.Success("%s", msg)
	fmt.Fprintln(output.Out, p.LastResultJSON())
}

var syncObjectsCmd = &cobra.Command{
	Use:   "objects",
	Short: "Import objects, groups and responsibles",
	Run: func(cmd *cobra.Command, args []string) {
		p := newIntegration()

		fmt.Println("Starting objects sync...")
		msg, err := p.SyncObjects(cmd.Context(), func(jobID string) {
			fmt.Printf("Job %s queued, waiting for completion...\n", jobID)
		})
		if err != nil {
			fail("Error syncing objects", err)
		}
		printSyncResult(p, msg)
	},
}

var syncEventsCmd = &cobra.Command{
	Use:     "events",
	Short:   "Import archived events",
	Example: `  svod-cli sync events --limit 2000`,
	Run: func(cmd *cobra.Command, args []string) {
		p := newIntegration()
		p.EventsLimit = syncLimit

		fmt.Printf("Importing up to %d events...\n", pages.ParseLimit(syncLimit))
		msg, err := p.SyncEvents(cmd.Context())
		if err != nil {
			fail("Error syncing events", err)
		}
		printSyncResult(p, msg)
	},
}

var syncJobCmd = &cobra.Command{
	Use:   "job <id>",
	Short: "Wait for a background job and print its result",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		poller := jobs.NewPoller(getClient())
		if syncTimeout > 0 {
			poller.Timeout = syncTimeout
		}

		job, err := poller.Wait(cmd.Context(), args[0])
		if err != nil {
			fail("Error waiting for job", err)
		}

		// --- JSON OUTPUT ---
		if jsonOutput {
			printJSON(job)
			return
		}
		output.Success("Job %s: %s", job.ID, job.Status)
		printJSON(jobs.Result(job))
	},
}

func init() {
	rootCmd.AddCommand(syncCmd)
	syncCmd.PersistentFlags().DurationVar(&syncTimeout, "timeout", jobs.DefaultTimeout, "Give up waiting for a job after this long")

	syncCmd.AddCommand(syncObjectsCmd)

	syncCmd.AddCommand(syncEventsCmd)
	syncEventsCmd.Flags().StringVar(&syncLimit, "limit", fmt.Sprint(jobs.DefaultEventsLimit), "Maximum number of events (1-5000)")

	syncCmd.AddCommand(syncJobCmd)
}

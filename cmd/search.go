package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/MrJinPro/SVOD/internal/output"
	"github.com/MrJinPro/SVOD/internal/pages"
)

var searchCmd = &cobra.Command{
	Use:     "search <query>",
	Short:   "Full-text search over events",
	Long:    `Searches event descriptions, object and client names and locations.`,
	Args:    cobra.MinimumNArgs(1),
	Example: `  svod-cli search тревога склад`,
	Run: func(cmd *cobra.Command, args []string) {
		p := pages.NewSearchPage(cmd.Context(), getClient())
		defer p.Close()

		p.Draft = strings.Join(args, " ")
		p.Submit()
		p.Wait()

		if !p.Searched {
			fmt.Println("Empty query, nothing to search.")
			return
		}

		st := p.State()
		if st.Err != nil {
			fail("Error searching events", st.Err)
		}

		// --- JSON OUTPUT ---
		if jsonOutput {
			printJSON(st.Data)
			return
		}

		if len(st.Data) == 0 {
			fmt.Printf("По запросу %q ничего не найдено\n", p.Query)
			return
		}
		output.Table(output.EventHeaders, output.EventRows(st.Data))
		fmt.Fprintf(output.Out, "\nНайдено: %d\n", len(st.Data))
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)
}

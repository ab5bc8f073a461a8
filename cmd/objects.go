package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/MrJinPro/SVOD/internal/fetch"
	"github.com/MrJinPro/SVOD/internal/output"
	"github.com/MrJinPro/SVOD/internal/pages"
	"github.com/MrJinPro/SVOD/pkg/models"
)

var (
	objectFilters    pages.ObjectFilters
	objectPage       int
	objectEventsPage int
)

// Parent Command
var objectsCmd = &cobra.Command{
	Use:   "objects",
	Short: "Browse guarded objects",
	Long:  `List guarded objects and show an object card with its groups, responsibles and events.`,
}

// List Command
var objectsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List one page of objects",
	Run: func(cmd *cobra.Command, args []string) {
		api := getClient()

		objectPage = max(objectPage, 1)
		path := pages.ObjectsPath(objectFilters, objectPage)
		st := fetch.Load(cmd.Context(), api.ListObjects, path, models.Empty[models.ObjectListItem](pages.PageSize))
		if st.Err != nil {
			fail("Error fetching objects", st.Err)
		}

		// --- JSON OUTPUT ---
		if jsonOutput {
			printJSON(st.Data)
			return
		}

		if len(st.Data.Data) == 0 {
			fmt.Println("No objects found.")
			return
		}

		output.Table(output.ObjectHeaders, output.ObjectRows(st.Data.Data))
		p := pages.PagerFor(objectPage, st.Data)
		fmt.Fprintln(output.Out)
		fmt.Fprintln(output.Out, output.PagerLine(p.Summary(false), p.Page, p.TotalPages, p.HasPrev, p.HasNext))
	},
}

// Get Command
var objectsGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show an object card and its events",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		api := getClient()

		p := pages.NewObjectDetailsPage(cmd.Context(), api, args[0])
		defer p.Close()
		p.Wait()

		card := p.Object()
		if card.Err != nil {
			fail("Error fetching object", card.Err)
		}

		events := p.Events()
		pager := p.EventsPager()
		if objectEventsPage > 1 {
			events = fetch.Load(cmd.Context(), api.ListEvents, pages.ObjectEventsPath(p.ID, objectEventsPage), models.Empty[models.Event](pages.PageSize))
			pager = pages.PagerFor(objectEventsPage, events.Data)
		}

		// --- JSON OUTPUT ---
		if jsonOutput {
			printJSON(struct {
				Object models.ObjectDetails                   `json:"object"`
				Events models.PaginatedResponse[models.Event] `json:"events"`
			}{card.Data, events.Data})
			return
		}

		obj := card.Data
		output.Header(p.Title())
		output.KeyValue("ID", obj.ID)
		output.KeyValue("Адрес", obj.Address)
		output.KeyValue("Клиент", obj.ClientName)
		state := "Активен"
		if obj.Disabled {
			state = "Отключён"
		}
		output.KeyValue("Состояние", state)
		if obj.Remarks != nil && *obj.Remarks != "" {
			output.KeyValue("Примечания", *obj.Remarks)
		}
		if obj.AdditionalInfo != nil && *obj.AdditionalInfo != "" {
			output.KeyValue("Доп. информация", *obj.AdditionalInfo)
		}
		if obj.Latitude != nil && obj.Longitude != nil {
			output.KeyValue("Координаты", fmt.Sprintf("%.6f, %.6f", *obj.Latitude, *obj.Longitude))
		}
		if obj.Stats != nil {
			output.KeyValue("Событий всего", obj.Stats.EventsTotal)
			output.KeyValue("Событий сегодня", obj.Stats.EventsToday)
		}

		if len(obj.Groups) > 0 {
			fmt.Fprintln(output.Out)
			output.Header("Группы")
			output.Table(output.GroupHeaders, output.GroupRows(obj.Groups))
		}

		shown, more := p.Responsibles()
		if len(shown) > 0 {
			fmt.Fprintln(output.Out)
			output.Header("Ответственные")
			output.Table(output.ResponsibleHeaders, output.ResponsibleRows(shown))
			if more > 0 {
				fmt.Fprintf(output.Out, "… и ещё %s\n", strconv.Itoa(more))
			}
		}

		fmt.Fprintln(output.Out)
		output.Header("События объекта")
		if events.Err != nil {
			output.Error("%s", pages.ErrorText(events.Err))
			return
		}
		if len(events.Data.Data) == 0 {
			fmt.Fprintln(output.Out, "Нет событий")
			return
		}
		output.Table(output.EventHeaders, output.EventRows(events.Data.Data))
		fmt.Fprintln(output.Out, output.PagerLine(pager.Summary(false), pager.Page, pager.TotalPages, pager.HasPrev, pager.HasNext))
	},
}

func init() {
	rootCmd.AddCommand(objectsCmd)

	objectsCmd.AddCommand(objectsListCmd)
	objectsListCmd.Flags().StringVar(&objectFilters.Search, "search", "", "Filter by name, address or client")
	objectsListCmd.Flags().BoolVar(&objectFilters.IncludeDisabled, "include-disabled", false, "Include disabled objects")
	objectsListCmd.Flags().IntVar(&objectPage, "page", 1, "Page number (50 objects per page)")

	objectsCmd.AddCommand(objectsGetCmd)
	objectsGetCmd.Flags().IntVar(&objectEventsPage, "events-page", 1, "Page of the object's events")
}

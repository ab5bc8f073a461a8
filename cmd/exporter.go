package cmd

import (
	"fmt"
	"os"
	"slices"

	"github.com/kardianos/service"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/MrJinPro/SVOD/internal/auth"
	"github.com/MrJinPro/SVOD/internal/client"
	"github.com/MrJinPro/SVOD/internal/exporter"
)

// Variables to hold flag values
var (
	expURL        string
	expOrigin     string
	expUser       string
	expPass       string
	expPort       string
	serviceAction string
)

var exporterCmd = &cobra.Command{
	Use:   "exporter",
	Short: "Start Prometheus Exporter service",
	Long: `Starts a long-running HTTP server that exposes command center metrics.
Can be installed as a system service.`,
	Run: func(cmd *cobra.Command, args []string) {
		// 1. Setup Client Config. The exporter keeps its token in memory and
		// logs in with its own account.
		tokens := auth.NewMemoryStore("")
		api := client.New(client.ClientConfig{
			BaseURL: expURL,
			Origin:  expOrigin,
			Tokens:  tokens,
		})
		collector := exporter.NewCollector(api, tokens, exporter.Credentials{Username: expUser, Password: expPass})

		// 2. Define Service Configuration
		svcArgs := []string{
			"exporter",
			"--username", expUser,
			"--password", expPass,
			"--port", expPort,
		}
		if expURL != "" {
			svcArgs = append(svcArgs, "--url", expURL)
		}
		if expOrigin != "" {
			svcArgs = append(svcArgs, "--origin-host", expOrigin)
		}
		if logFile != "" {
			svcArgs = append(svcArgs, "--log-file", logFile)
		}

		prg := exporter.NewProgram(fmt.Sprintf(":%s", expPort), collector)

		s, err := service.New(prg, exporter.ServiceConfig(svcArgs))
		if err != nil {
			logrus.WithError(err).Fatal("cannot create service")
		}

		// 3. Handle Service Control Actions (Install, Start, Stop, Uninstall)
		if serviceAction != "" {
			if !slices.Contains(exporter.Actions, serviceAction) {
				fmt.Printf("Error: unknown service action '%s' (valid: %v)\n", serviceAction, exporter.Actions)
				os.Exit(1)
			}
			if serviceAction == "install" && (expUser == "" || expPass == "") {
				fmt.Println("Error: You must provide credentials (--username, --password) to install the service.")
				os.Exit(1)
			}

			if err := service.Control(s, serviceAction); err != nil {
				fmt.Printf("Failed to %s service: %v\n", serviceAction, err)
				os.Exit(1)
			}
			fmt.Printf("Service action '%s' completed successfully.\n", serviceAction)
			return
		}

		// 4. Run the Service (Blocking)
		// This happens when the Service Manager starts the binary, OR when run interactively without flags
		logger, err := s.Logger(nil)
		if err != nil {
			logrus.WithError(err).Fatal("cannot open service logger")
		}
		if err = s.Run(); err != nil {
			_ = logger.Error(err)
		}
	},
}

func init() {
	rootCmd.AddCommand(exporterCmd)
	exporterCmd.Flags().StringVar(&expURL, "url", "", "API base URL (default derived from --origin-host)")
	exporterCmd.Flags().StringVar(&expOrigin, "origin-host", "", "Command center host the API runs on")
	exporterCmd.Flags().StringVar(&expUser, "username", "", "Account used to read metrics")
	exporterCmd.Flags().StringVar(&expPass, "password", "", "Password of that account")
	exporterCmd.Flags().StringVar(&expPort, "port", "9110", "Port to listen on")

	exporterCmd.Flags().StringVar(&serviceAction, "service", "", "Service action: install, uninstall, start, stop, restart")
}

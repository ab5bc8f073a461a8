package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/MrJinPro/SVOD/internal/auth"
	"github.com/MrJinPro/SVOD/internal/client"
	"github.com/MrJinPro/SVOD/internal/config"
	"github.com/MrJinPro/SVOD/internal/logging"
	"github.com/MrJinPro/SVOD/internal/output"
)

var cfgFile string
var jsonOutput bool

var (
	logFile string
	logJSON bool
	logSink io.Closer
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "svod-cli",
	Short: "A CLI for the S.V.O.D security monitoring command center",
	Long: `Browse events, guarded objects and reports, manage users and notifications,
and run database imports against the S.V.O.D command center API.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		closer, err := logging.Setup(logging.Options{
			Level: viper.GetString(config.KeyLogLevel),
			File:  logFile,
			JSON:  logJSON,
		})
		if err != nil {
			return err
		}
		logSink = closer
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logSink != nil {
			_ = logSink.Close()
		}
	},
	SilenceUsage: true,
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(func() { config.InitConfig(cfgFile) })

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.svod-cli.yaml)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output results as JSON")

	rootCmd.PersistentFlags().String("api-url", "", "API base URL (default derived from --origin, port 8000, /api/v1)")
	rootCmd.PersistentFlags().String("origin", "", "Address of the command center host")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Write logs to a rotated file instead of stderr")
	rootCmd.PersistentFlags().BoolVar(&logJSON, "log-json", false, "Log as JSON")

	_ = viper.BindPFlag(config.KeyAPIBaseURL, rootCmd.PersistentFlags().Lookup("api-url"))
	_ = viper.BindPFlag(config.KeyOrigin, rootCmd.PersistentFlags().Lookup("origin"))
	_ = viper.BindPFlag(config.KeyLogLevel, rootCmd.PersistentFlags().Lookup("log-level"))
}

// session is everything a command needs to talk to the API.
type session struct {
	api      *client.SvodClient
	tokens   auth.TokenStore
	storage  *config.LocalStorage
	settings config.Settings
}

// newSession builds the API client from config, settings and the stored token.
// The base URL override comes from --api-url/SVOD_API_BASE_URL, then from
// the apiUrl setting.
func newSession() *session {
	storage := config.NewLocalStorage(config.StateDir())
	settings := config.LoadSettings(storage)
	tokens := auth.NewFileStore(storage)

	override := viper.GetString(config.KeyAPIBaseURL)
	if override == "" {
		override = settings.APIURL
	}

	api := client.New(client.ClientConfig{
		BaseURL:       override,
		Origin:        viper.GetString(config.KeyOrigin),
		FallbackToken: viper.GetString(config.KeyAPIToken),
		Timeout:       settings.RequestTimeout(),
		Tokens:        tokens,
	})
	return &session{api: api, tokens: tokens, storage: storage, settings: settings}
}

// getClient is the shorthand for commands that only need the API.
func getClient() *client.SvodClient {
	return newSession().api
}

// fail prints an inline error and exits. Auth failures get a login hint.
func fail(what string, err error) {
	output.Error("%s: %v", what, err)
	if client.IsAuthError(err) {
		output.Warning("Not logged in or session expired. Run 'svod-cli login' first.")
	}
	os.Exit(1)
}

// printJSON writes v for --json and exits on encoding failure.
func printJSON(v any) {
	if err := output.JSON(v); err != nil {
		fmt.Printf("Error encoding JSON: %v\n", err)
		os.Exit(1)
	}
}

package commands

import (
	"fmt"

	"salesboard/internal/config"
	"salesboard/internal/httpapi"
	"salesboard/internal/logging"
	"salesboard/internal/sheets"

	"github.com/pkg/browser"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	// Version, Commit, and BuildDate are set at build time via ldflags.
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"

	verbose  bool
	openURL  bool
	cfg      *config.AppConfig
	sheetsCl sheets.Client
)

var rootCmd = &cobra.Command{
	Use:   "salesboard",
	Short: "Salesboard serves the weekly sales-pipeline tracking report",
	Long: `A report server that reconciles weekly pipeline snapshots against monthly
sales targets and serves KPIs, per-client breakdowns and detail rows to the
dashboard frontend.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Init(verbose)

		// Load configuration
		var err error
		cfg, err = config.Load()
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to load configuration")
		}

		// Initialize worksheet client
		sheetsCl = sheets.NewClient(cfg.Sheets)

		log.Info().
			Str("version", Version).
			Str("commit", Commit).
			Str("buildDate", BuildDate).
			Msg("Salesboard starting")
	},
	Run: func(cmd *cobra.Command, args []string) {
		server, err := httpapi.NewServer(cfg, sheetsCl)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to build HTTP server")
		}

		if openURL {
			url := fmt.Sprintf("http://localhost%s", cfg.HTTPAddr)
			if err := browser.OpenURL(url); err != nil {
				log.Warn().Err(err).Str("url", url).Msg("Failed to open dashboard in browser")
			}
		}

		if err := server.Start(); err != nil {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.Flags().BoolVar(&openURL, "open", false, "open the dashboard URL in the default browser")
}

package commands

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"cis-mcp/internal/config"
	"cis-mcp/internal/logging"
	"cis-mcp/internal/mcp"
	"cis-mcp/internal/recorder"
	"cis-mcp/internal/scenario"
)

var (
	// Version, Commit, and BuildDate are set at build time via ldflags.
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"

	verbose bool
	cfg     *config.AppConfig
)

var rootCmd = &cobra.Command{
	Use:   "cis-mcp",
	Short: "CIS-MCP is a complaint-backlog aging simulator served over MCP",
	Long: `An MCP Server that projects how an open-complaints backlog ages week over week
under configurable intake, closure and policy settings, and answers the inverse
question: what closure rate does it take to hit the aging target in time.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		var err error
		cfg, err = config.Load()
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to load configuration")
		}
		logging.Init(verbose, cfg.LogDir)

		log.Info().
			Str("version", Version).
			Str("commit", Commit).
			Str("buildDate", BuildDate).
			Msg("CIS-MCP starting")
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := scenario.NewStore(cfg.ScenarioDir)
		if err != nil {
			return err
		}

		rec, err := openRecorder()
		if err != nil {
			return err
		}
		defer rec.Close()

		log.Info().Msg("MCP Server starting Stdio loop")
		server := mcp.NewServer(cfg, store, rec)
		return server.Serve()
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func openRecorder() (recorder.Recorder, error) {
	if cfg.HistoryDBPath == "" {
		return recorder.NewNoopRecorder(), nil
	}
	return recorder.NewSQLiteRecorder(cfg.HistoryDBPath)
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}

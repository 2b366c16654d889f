package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"citadels-engine/internal/config"
	"citadels-engine/internal/engine"
	"citadels-engine/internal/lobby"
	"citadels-engine/internal/server"
	"citadels-engine/internal/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the game server",
	Long: `Serves the HTTP API and WebSocket hub. Settings come from CITADELS_*
environment variables; flags override them.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("port") {
			cfg.Port, _ = cmd.Flags().GetInt("port")
		}
		if cmd.Flags().Changed("preset") {
			cfg.Preset, _ = cmd.Flags().GetString("preset")
		}
		if cmd.Flags().Changed("db") {
			cfg.DBPath, _ = cmd.Flags().GetString("db")
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		logger, err := cfg.Logger()
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()

		defaults := engine.DefaultConfig()
		if cfg.Preset != "" {
			defaults, err = lobby.LoadPreset(cfg.Preset)
			if err != nil {
				return err
			}
			logger.Info("preset loaded", zap.String("path", cfg.Preset))
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		st, err := store.Open(ctx, cfg.DBPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		return server.New(cfg, logger, st, defaults).ListenAndServe(ctx)
	},
}

func init() {
	serveCmd.Flags().Int("port", 8080, "server port")
	serveCmd.Flags().String("preset", "", "YAML file with the default lobby configuration")
	serveCmd.Flags().String("db", "", "SQLite database path")
	rootCmd.AddCommand(serveCmd)
}

// commandContext returns cmd's context, or a background one outside Execute.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

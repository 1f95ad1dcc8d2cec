package cli

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vampirenirmal/roteiro/internal/analyzer"
	"github.com/vampirenirmal/roteiro/internal/generator"
	"github.com/vampirenirmal/roteiro/internal/server"
	"github.com/vampirenirmal/roteiro/internal/storage"
	"github.com/vampirenirmal/roteiro/internal/techniques"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		if port, _ := cmd.Flags().GetInt("port"); port != 0 {
			cfg.Server.Port = port
		}

		db := techniques.NewDatabase(techniques.WithLogger(log))
		srv := server.New(
			cfg,
			db,
			generator.New(db, generator.WithLogger(log)),
			analyzer.New(analyzer.WithLogger(log)),
			storage.NewFileSystem(cfg.Paths.DataDir),
			log,
		)

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		return srv.Run(ctx)
	},
}

func init() {
	serveCmd.Flags().Int("port", 0, "listen port (overrides the configured port)")
	rootCmd.AddCommand(serveCmd)
}

package cmd

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/cellgraph/sheet/internal/config"
	"github.com/cellgraph/sheet/internal/server"
	"github.com/cellgraph/sheet/spreadsheet"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run a live-view HTTP/WebSocket server over a fresh sheet",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}

		logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

		sheet := spreadsheet.CreateSheetWithLimits(cfg.Grid.MaxRows, cfg.Grid.MaxCols)
		logger.Info("sheet created", "session", sheet.SessionID)

		hub := server.New(sheet, cfg.ErrorTokens)
		stop := make(chan struct{})
		go hub.Run(stop)
		defer close(stop)

		logger.Info("serving", "addr", cfg.Server.Addr)
		return http.ListenAndServe(cfg.Server.Addr, hub.Mux())
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

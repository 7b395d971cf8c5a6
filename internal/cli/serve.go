package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web interface",
	Long: `Start the trial register and report viewer.

Each browser session works on its own table, kept until the session has been
idle for ISOVISOR_SESSION_TTL.

Examples:
  isovisor serve              # Port from ISOVISOR_PORT (default 8080)
  isovisor serve --port 3000  # Start on port 3000`,
	RunE: runServe,
}

var servePort int

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 8080, "Port to listen on (overrides ISOVISOR_PORT)")
}

func runServe(cmd *cobra.Command, args []string) error {
	port := application.Config.Port
	if cmd.Flags().Changed("port") {
		port = servePort
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)
	go func() {
		select {
		case <-sigChan:
			logger.Info("shutting down")
			cancel()
		case <-ctx.Done():
		}
	}()

	if err := application.Serve(ctx, port); err != nil {
		logger.Error("server stopped", zap.Error(err))
		return err
	}
	return nil
}

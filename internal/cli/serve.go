package cli

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"vecserve/internal/server"
	"vecserve/internal/usecase"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve similarity queries over HTTP",
	Long: `Load the artifact set and serve similarity queries on the configured
address. The artifacts are validated against the build manifest before the
server starts; a mismatch is fatal.

Example:
  vecserve serve
  vecserve serve --addr :9000`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()

	embedder, err := newEmbedder(cfg)
	if err != nil {
		return err
	}

	retriever, err := usecase.Open(embedder, artifactSet(GetRootDir()))
	if err != nil {
		return fmt.Errorf("failed to load artifacts: %w", err)
	}
	defer retriever.Close()

	addr := cfg.Server.Addr
	if serveAddr != "" {
		addr = serveAddr
	}

	fmt.Printf("Serving %d chunks (model %s) on %s\n", retriever.Count(), embedder.ModelName(), addr)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := server.New(retriever, addr, cfg.Server.DefaultTopK)
	return srv.Start(ctx)
}

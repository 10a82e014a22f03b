package cli

import (
	"fmt"
	"path/filepath"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"vecserve/config"
	"vecserve/internal/adapter/chunker"
	"vecserve/internal/adapter/fs"
	"vecserve/internal/usecase"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [path]",
	Short: "Build the index artifacts from a corpus",
	Long: `Ingest a corpus and build the artifact set: vector index, chunk
metadata store, and build manifest. The artifacts are stored in .vecserve/
within the root directory.

Examples:
  vecserve ingest book.txt        # Ingest a single file
  vecserve ingest ./documents     # Ingest all matching files in a directory`,
	Args: cobra.ExactArgs(1),
	RunE: runIngest,
}

func init() {
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	path, err := filepath.Abs(args[0])
	if err != nil {
		return fmt.Errorf("invalid path: %w", err)
	}

	cfg := GetConfig()

	loader := fs.NewCorpusLoader(cfg.Ingest.Includes, cfg.Ingest.Excludes)
	text, err := loader.Load(path)
	if err != nil {
		return err
	}

	embedder, err := newEmbedder(cfg)
	if err != nil {
		return err
	}

	if err := config.EnsureDataDir(GetRootDir()); err != nil {
		return fmt.Errorf("failed to create artifact directory: %w", err)
	}

	ingestUC := usecase.NewIngestUseCase(
		chunker.NewWordChunker(cfg.Ingest.ChunkWords),
		embedder,
		artifactSet(GetRootDir()),
		cfg.Embedding.BatchSize,
	)

	fmt.Printf("Ingesting %s (model %s)...\n", path, embedder.ModelName())

	var bar *progressbar.ProgressBar
	progress := func(done, total int) {
		if bar == nil {
			bar = progressbar.NewOptions(total,
				progressbar.OptionEnableColorCodes(true),
				progressbar.OptionShowBytes(false),
				progressbar.OptionSetWidth(40),
				progressbar.OptionShowCount(),
				progressbar.OptionSetDescription("[cyan]Embedding[reset]"),
				progressbar.OptionOnCompletion(func() {
					fmt.Println()
				}),
			)
		}
		bar.Set(done)
	}

	result, err := ingestUC.Ingest(text, progress)
	if err != nil {
		return fmt.Errorf("ingestion failed: %w", err)
	}

	fmt.Printf("\nIngestion complete:\n")
	fmt.Printf("  Chunks:    %d\n", result.Chunks)
	fmt.Printf("  Dimension: %d\n", result.Dimension)
	fmt.Printf("  Model:     %s\n", result.Model)
	fmt.Printf("\nArtifacts stored in: %s\n", config.DataDir(GetRootDir()))
	return nil
}

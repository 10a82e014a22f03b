package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"vecserve/internal/usecase"
)

var (
	searchText string
	searchTopK int
	searchJSON bool
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Query the index locally",
	Long: `Run a one-shot similarity query against the local artifact set,
without starting the HTTP server.

Examples:
  vecserve search -q "vitamin d deficiency"
  vecserve search -q "iron absorption" -k 10 --json`,
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)
	searchCmd.Flags().StringVarP(&searchText, "query", "q", "", "query text (required)")
	searchCmd.Flags().IntVarP(&searchTopK, "top-k", "k", 0, "number of results (default from config)")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output as JSON")
	searchCmd.MarkFlagRequired("query")
}

func runSearch(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()

	embedder, err := newEmbedder(cfg)
	if err != nil {
		return err
	}

	retriever, err := usecase.Open(embedder, artifactSet(GetRootDir()))
	if err != nil {
		return fmt.Errorf("failed to load artifacts: %w. Run 'vecserve ingest' first", err)
	}
	defer retriever.Close()

	topK := cfg.Server.DefaultTopK
	if searchTopK > 0 {
		topK = searchTopK
	}

	results, err := retriever.Search(searchText, topK)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		output, _ := json.MarshalIndent(results, "", "  ")
		fmt.Println(string(output))
		return nil
	}

	if len(results) == 0 {
		fmt.Println("No results found.")
		return nil
	}
	fmt.Printf("Found %d results for: %s\n\n", len(results), searchText)
	for i, r := range results {
		fmt.Printf("--- [%d] %s (distance: %.4f) ---\n", i+1, r.ChunkID, r.Score)
		text := r.Text
		if len(text) > 500 {
			text = text[:500] + "..."
		}
		fmt.Println(text)
		fmt.Println()
	}

	return nil
}

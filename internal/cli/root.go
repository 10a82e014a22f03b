package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"vecserve/config"
)

var (
	cfgFile string
	cfg     *config.Config
	rootDir string
)

var rootCmd = &cobra.Command{
	Use:   "vecserve",
	Short: "vecserve - semantic retrieval over a text corpus",
	Long: `vecserve ingests a text corpus, embeds it into a flat vector index,
and serves nearest-neighbor similarity queries over HTTP.

Example usage:
  vecserve ingest book.txt          # Build the index artifacts
  vecserve search -q "vitamin d"    # One-shot local query
  vecserve serve                    # Start the query endpoint`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error

		if rootDir == "" {
			rootDir, err = os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to get working directory: %w", err)
			}
		}

		if cfgFile != "" {
			cfg, err = config.Load(cfgFile)
		} else {
			cfg, err = config.LoadFromDir(rootDir)
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./vecserve.yaml)")
	rootCmd.PersistentFlags().StringVarP(&rootDir, "dir", "d", "", "artifact directory root (default is current directory)")
}

func GetConfig() *config.Config {
	return cfg
}

func GetRootDir() string {
	return rootDir
}

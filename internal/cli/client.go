package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"vecserve/internal/server"
)

var (
	clientText string
	clientTopK int
	clientURL  string
)

var clientCmd = &cobra.Command{
	Use:   "client",
	Short: "Query a running server",
	Long: `Send a similarity query to a running vecserve instance and print the
response.

Example:
  vecserve client -q "vitamin d deficiency" -k 5 --url http://localhost:8000/mcp`,
	RunE: runClient,
}

func init() {
	rootCmd.AddCommand(clientCmd)
	clientCmd.Flags().StringVarP(&clientText, "query", "q", "", "query text (required)")
	clientCmd.Flags().IntVarP(&clientTopK, "top-k", "k", 0, "number of results (server default if omitted)")
	clientCmd.Flags().StringVar(&clientURL, "url", "http://localhost:8000/mcp", "server endpoint")
	clientCmd.MarkFlagRequired("query")
}

func runClient(cmd *cobra.Command, args []string) error {
	req := server.Request{
		Name: "query",
		ID:   uuid.NewString(),
	}
	req.Input.Query = clientText
	if clientTopK > 0 {
		req.Input.TopK = &clientTopK
	}

	body, err := json.Marshal(req)
	if err != nil {
		return err
	}

	httpClient := &http.Client{Timeout: 60 * time.Second}
	httpResp, err := httpClient.Post(clientURL, "application/json", bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("could not reach server at %s: %w", clientURL, err)
	}
	defer httpResp.Body.Close()

	var resp server.Response
	if err := json.NewDecoder(httpResp.Body).Decode(&resp); err != nil {
		return fmt.Errorf("could not decode response: %w", err)
	}

	if resp.Error != "" {
		return fmt.Errorf("server error: %s", resp.Error)
	}
	if resp.Content == nil {
		return fmt.Errorf("server returned empty response")
	}

	output, _ := json.MarshalIndent(resp.Content, "", "  ")
	fmt.Println(string(output))
	return nil
}

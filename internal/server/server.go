// Package server exposes the retriever over an HTTP request/response
// boundary. The core stays indifferent to transport: this package only
// decodes requests into Search calls and encodes the results.
package server

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"vecserve/internal/domain"
	"vecserve/internal/port"
)

// Server serves similarity queries over HTTP. The retriever is read-only,
// so concurrent requests need no coordination beyond what the embedder
// itself requires.
type Server struct {
	retriever   port.Retriever
	addr        string
	defaultTopK int
}

// New creates a query server. defaultTopK is used when a request omits
// top_k.
func New(retriever port.Retriever, addr string, defaultTopK int) *Server {
	if defaultTopK <= 0 {
		defaultTopK = 3
	}
	return &Server{
		retriever:   retriever,
		addr:        addr,
		defaultTopK: defaultTopK,
	}
}

// Request is the wire format of a query call.
type Request struct {
	Name  string     `json:"name"`
	Input QueryInput `json:"input"`
	ID    string     `json:"id"`
}

// QueryInput carries the query payload. TopK is a pointer so that an
// omitted field can fall back to the server default while an explicit
// zero is still rejected as invalid.
type QueryInput struct {
	Query string `json:"query"`
	TopK  *int   `json:"top_k"`
}

// Response is the wire format of a query result. Exactly one of Content
// and Error is set.
type Response struct {
	ID      string        `json:"id"`
	Content *QueryContent `json:"content,omitempty"`
	Error   string        `json:"error,omitempty"`
}

// QueryContent holds the ranked results plus an echo of the query text.
type QueryContent struct {
	Results       []domain.Result `json:"results"`
	QueryReceived string          `json:"query_received"`
}

// Handler returns the HTTP handler tree.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/mcp", s.handleQuery)
	mux.HandleFunc("/api/health", s.handleHealth)
	return loggingMiddleware(mux)
}

// Start runs the server until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.addr,
		Handler:      s.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	log.Printf("[INFO] query server listening on %s", s.addr)
	err := srv.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, Response{Error: "bad request: invalid JSON: " + err.Error()})
		return
	}
	if req.ID == "" {
		req.ID = uuid.NewString()
	}

	if req.Name != "query" {
		writeJSON(w, http.StatusOK, Response{ID: req.ID, Error: "invalid handler: " + req.Name})
		return
	}

	query := domain.Query{
		Text:      req.Input.Query,
		TopK:      s.defaultTopK,
		RequestID: req.ID,
	}
	if req.Input.TopK != nil {
		query.TopK = *req.Input.TopK
	}

	// Per-query failures are reported on this response only; the server
	// keeps serving.
	results, err := s.retriever.Search(query.Text, query.TopK)
	if err != nil {
		writeJSON(w, http.StatusOK, Response{ID: query.RequestID, Error: err.Error()})
		return
	}
	if results == nil {
		results = []domain.Result{}
	}

	writeJSON(w, http.StatusOK, Response{
		ID: req.ID,
		Content: &QueryContent{
			Results:       results,
			QueryReceived: req.Input.Query,
		},
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[WARN] failed to encode response: %v", err)
	}
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s %v", r.Method, r.URL.Path, time.Since(start))
	})
}

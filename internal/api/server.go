package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"faqrag/config"
	"faqrag/internal/adapter/faq"
	"faqrag/internal/adapter/vectorstore"
	"faqrag/internal/usecase"
)

// Server exposes the retrieval facade over HTTP.
type Server struct {
	cfg     *config.Config
	service *usecase.Service
	asker   *usecase.Asker
	router  *gin.Engine
}

// SearchResult is one entry of a search response.
type SearchResult struct {
	ID       string  `json:"id"`
	Question string  `json:"question"`
	Answer   string  `json:"answer"`
	Category string  `json:"category"`
	Score    float64 `json:"score"`
}

// NewServer creates the API server over the given facade.
func NewServer(cfg *config.Config, service *usecase.Service, asker *usecase.Asker) *Server {
	gin.SetMode(gin.ReleaseMode)

	s := &Server{
		cfg:     cfg,
		service: service,
		asker:   asker,
		router:  gin.New(),
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.Use(gin.Recovery())

	s.router.GET("/health", s.handleHealth)

	api := s.router.Group("/api/faq")
	{
		api.GET("/search", s.handleSearch)
		api.GET("/ask", s.handleAsk)
	}
}

// Run starts the server.
func (s *Server) Run() error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Server.Host, s.cfg.Server.Port)
	fmt.Printf("Starting FAQ API server on %s\n", addr)
	return s.router.Run(addr)
}

// Router returns the underlying handler, used by tests.
func (s *Server) Router() http.Handler {
	return s.router
}

func (s *Server) handleHealth(c *gin.Context) {
	collections := gin.H{}
	for _, name := range s.service.Collections() {
		count, err := s.service.Count(name)
		if err != nil {
			continue
		}
		collections[name] = count
	}

	c.JSON(http.StatusOK, gin.H{
		"status":      "ok",
		"collections": collections,
	})
}

// handleSearch answers GET /api/faq/search?query=...&topK=5&collection=faq
func (s *Server) handleSearch(c *gin.Context) {
	query := c.Query("query")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query is required"})
		return
	}

	topK, ok := s.topKParam(c, s.cfg.Search.TopK)
	if !ok {
		return
	}
	collection, ok := s.collectionParam(c)
	if !ok {
		return
	}

	results, err := s.service.Query(collection, query, topK, s.cfg.Search.SimilarityThreshold)
	if err != nil {
		s.writeError(c, err)
		return
	}

	out := make([]SearchResult, 0, len(results))
	for _, r := range results {
		item := faq.ItemFromDocument(r.Document)
		out = append(out, SearchResult{
			ID:       r.Document.ID,
			Question: item.Question,
			Answer:   item.Answer,
			Category: item.Category,
			Score:    r.Score,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"query":   query,
		"results": out,
	})
}

// handleAsk answers GET /api/faq/ask?query=...&topK=3&collection=faq
func (s *Server) handleAsk(c *gin.Context) {
	query := c.Query("query")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query is required"})
		return
	}

	topK, ok := s.topKParam(c, s.cfg.Search.AskTopK)
	if !ok {
		return
	}
	collection, ok := s.collectionParam(c)
	if !ok {
		return
	}

	answer, err := s.asker.Ask(collection, query, topK, s.cfg.Search.SimilarityThreshold)
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, answer)
}

// topKParam parses the optional topK query parameter, writing a 400
// response and returning false when it is malformed.
func (s *Server) topKParam(c *gin.Context, fallback int) (int, bool) {
	raw := c.Query("topK")
	if raw == "" {
		return fallback, true
	}
	topK, err := strconv.Atoi(raw)
	if err != nil || topK <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "topK must be a positive integer"})
		return 0, false
	}
	return topK, true
}

// collectionParam resolves the optional collection query parameter to a
// configured collection name.
func (s *Server) collectionParam(c *gin.Context) (string, bool) {
	col, ok := s.cfg.Collection(c.Query("collection"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown collection"})
		return "", false
	}
	return col.Name, true
}

// writeError maps facade errors to HTTP status codes. Search errors are
// never turned into empty result lists.
func (s *Server) writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	if errors.Is(err, vectorstore.ErrInvalidArgument) {
		status = http.StatusBadRequest
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package server

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/poiesic/gridsense"
	"github.com/poiesic/gridsense/loader"
)

// maxUploadBytes caps spreadsheet uploads at 50MB.
const maxUploadBytes = 50 << 20

// defaultMaxResults bounds search responses when the request leaves
// max_results unset.
const defaultMaxResults = 10

// Server exposes the search engine over HTTP.
type Server struct {
	engine *gridsense.Engine
	router *gin.Engine
	logger *slog.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New builds a server around an engine and registers all routes.
func New(engine *gridsense.Engine, opts ...Option) *Server {
	gin.SetMode(gin.ReleaseMode)

	s := &Server{
		engine: engine,
		router: gin.New(),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.router.Use(gin.Recovery())
	s.setupRoutes()
	return s
}

// Router returns the underlying gin engine, primarily for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Run serves HTTP on the given address until the listener fails.
func (s *Server) Run(addr string) error {
	s.logger.Info("http server listening", "addr", addr)
	return s.router.Run(addr)
}

func (s *Server) setupRoutes() {
	s.router.POST("/load_file", s.handleLoadFile)
	s.router.POST("/load_test_data", s.handleLoadTestData)
	s.router.POST("/search", s.handleSearch)
	s.router.GET("/health", s.handleHealth)
	s.router.GET("/concepts", s.handleConcepts)
}

// searchRequest mirrors the public search API contract.
type searchRequest struct {
	Query      string `json:"query" binding:"required"`
	MaxResults int    `json:"max_results"`
}

func (s *Server) handleLoadFile(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "No file provided"})
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !supportedExtension(ext) {
		c.JSON(http.StatusBadRequest, gin.H{
			"detail": "Unsupported file type. Supported formats: " + strings.Join(loader.SupportedExtensions, ", "),
		})
		return
	}

	if header.Size > maxUploadBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"detail": "File too large. Maximum size is 50MB"})
		return
	}
	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes+1))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Error reading upload: " + err.Error()})
		return
	}
	if len(data) > maxUploadBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"detail": "File too large. Maximum size is 50MB"})
		return
	}

	grid, err := loader.LoadBytes(data, header.Filename)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Error loading file: " + err.Error()})
		return
	}

	snap, err := s.engine.Load(c.Request.Context(), grid)
	if err != nil {
		s.logger.Error("error loading grid", "file", header.Filename, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Error loading file: " + err.Error()})
		return
	}

	summary := grid.Summarize()
	summary.LoadedAt = snap.LoadedAt
	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("File '%s' loaded successfully! You can now perform semantic searches.", header.Filename),
		"summary": gin.H{
			"filename":     header.Filename,
			"total_sheets": summary.TotalSheets,
			"sheet_names":  summary.SheetNames,
			"total_rows":   summary.TotalRows,
			"total_cells":  summary.TotalCells,
			"loaded_at":    summary.LoadedAt,
		},
	})
}

func (s *Server) handleLoadTestData(c *gin.Context) {
	if _, err := s.engine.Load(c.Request.Context(), gridsense.SampleGrid()); err != nil {
		s.logger.Error("error loading sample grid", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Error loading test data: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Sample financial data loaded successfully! You can now perform semantic searches.",
	})
}

func (s *Server) handleSearch(c *gin.Context) {
	var req searchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid search request: " + err.Error()})
		return
	}
	if req.MaxResults <= 0 {
		req.MaxResults = defaultMaxResults
	}

	if !s.engine.HasData() {
		c.JSON(http.StatusBadRequest, gin.H{
			"detail": "No spreadsheet data loaded. Please load a file or sample data first.",
		})
		return
	}

	resp, err := s.engine.Search(c.Request.Context(), req.Query, req.MaxResults)
	if err != nil {
		s.logger.Error("error executing search", "query", req.Query, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Search error: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"message": "Spreadsheet Semantic Search API is running",
	})
}

func (s *Server) handleConcepts(c *gin.Context) {
	catalog := s.engine.Catalog()
	categories := gin.H{}
	for _, category := range catalog.Categories() {
		categories[category] = catalog.ConceptsInCategory(category)
	}
	c.JSON(http.StatusOK, gin.H{
		"total_concepts": catalog.Len(),
		"categories":     categories,
	})
}

func supportedExtension(ext string) bool {
	for _, supported := range loader.SupportedExtensions {
		if ext == supported {
			return true
		}
	}
	return false
}

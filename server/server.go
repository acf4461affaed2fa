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
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/poiesic/datagen/core"
	"github.com/poiesic/datagen/workflow"
)

// Pipeline is the subset of the workflow dispatcher the server needs.
type Pipeline interface {
	Generate(ctx context.Context, topic string, numRows int) (*workflow.GenerateResult, error)
	Search(ctx context.Context, topic, queryText string, topK int) ([]*core.SearchHit, error)
}

// Server exposes the generate and search pipelines over HTTP.
type Server struct {
	pipeline Pipeline
	router   chi.Router
	logger   *slog.Logger
}

// NewServer creates an HTTP server around the given pipeline.
func NewServer(pipeline Pipeline, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		pipeline: pipeline,
		logger:   logger.With("component", "server"),
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/", s.handleRoot)
	r.Get("/health", s.handleHealth)
	r.Post("/generate", s.handleGenerate)
	r.Post("/search", s.handleSearch)

	s.router = r
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

type generateRequest struct {
	Topic   string `json:"topic"`
	NumRows int    `json:"num_rows"`
}

type generatedReview struct {
	Id          uint64 `json:"id"`
	ProductName string `json:"product_name"`
	ReviewText  string `json:"review_text"`
	Sentiment   string `json:"sentiment"`
}

type generateResponse struct {
	Status        string            `json:"status"`
	Topic         string            `json:"topic"`
	Count         int               `json:"count"`
	GeneratedData []generatedReview `json:"generated_data"`
}

type searchRequest struct {
	Topic     string `json:"topic"`
	QueryText string `json:"query_text"`
	TopK      int    `json:"top_k"`
}

type searchResult struct {
	Document    string  `json:"document"`
	ProductName string  `json:"product_name"`
	Sentiment   string  `json:"sentiment"`
	Distance    float32 `json:"distance"`
}

type searchResponse struct {
	Topic   string         `json:"topic"`
	Results []searchResult `json:"results"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "Welcome to Datagen API"})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "malformed request body"})
		return
	}

	result, err := s.pipeline.Generate(r.Context(), req.Topic, req.NumRows)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	data := make([]generatedReview, len(result.Reviews))
	for i, review := range result.Reviews {
		data[i] = generatedReview{
			Id:          uint64(review.Id),
			ProductName: review.ProductName,
			ReviewText:  review.ReviewText,
			Sentiment:   string(review.Sentiment),
		}
	}

	writeJSON(w, http.StatusOK, generateResponse{
		Status:        "success",
		Topic:         core.NormalizeTopic(req.Topic),
		Count:         result.Count,
		GeneratedData: data,
	})
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "malformed request body"})
		return
	}

	hits, err := s.pipeline.Search(r.Context(), req.Topic, req.QueryText, req.TopK)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	results := make([]searchResult, len(hits))
	for i, hit := range hits {
		results[i] = searchResult{
			Document:    hit.Document,
			ProductName: hit.ProductName,
			Sentiment:   string(hit.Sentiment),
			Distance:    hit.Distance,
		}
	}

	writeJSON(w, http.StatusOK, searchResponse{
		Topic:   core.NormalizeTopic(req.Topic),
		Results: results,
	})
}

// writeError maps pipeline errors onto HTTP status codes. Invalid input is the
// caller's fault, upstream model failures are a bad gateway, everything else
// is internal.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var status int
	switch {
	case errors.Is(err, workflow.ErrInvalidInput):
		status = http.StatusBadRequest
	case errors.Is(err, workflow.ErrGeneration), errors.Is(err, workflow.ErrEmbedding):
		status = http.StatusBadGateway
	default:
		status = http.StatusInternalServerError
	}

	if status >= 500 {
		s.logger.Error("request failed", "path", r.URL.Path, "status", status, "err", err)
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
		)
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

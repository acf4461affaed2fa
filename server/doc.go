// Package server exposes the generation and search pipelines as a JSON HTTP
// API with three routes: POST /generate, POST /search, and GET /health.
package server

package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"github.com/CTAG07/charchain/pkg/markov"
)

const (
	// maxGenerateLength bounds the length a single request may ask for.
	maxGenerateLength = 100_000
	// maxRequestBodyBytes bounds every JSON request body, seed included.
	maxRequestBodyBytes = 1 << 20
)

// ModelAPI serves a single trained model over HTTP. The model is not safe
// for concurrent use, so every handler holds mu while touching it.
type ModelAPI struct {
	mu       sync.Mutex
	model    *markov.LanguageModel
	defaults GenerationConfig
	logger   *slog.Logger
}

// VersionInfo defines the structure for build/version information.
type VersionInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildDate string `json:"build_date"`
}

type GenerateRequest struct {
	Seed        *string  `json:"seed"`
	Length      int      `json:"length"`
	Temperature *float64 `json:"temperature,omitempty"`
	TopK        *int     `json:"top_k,omitempty"`
}

type GenerateResponse struct {
	Text string `json:"text"`
}

type PruneRequest struct {
	MinCount int `json:"min_count"`
}

type PruneResponse struct {
	Removed int `json:"removed"`
}

// NewModelAPI creates a new instance of the ModelAPI.
func NewModelAPI(model *markov.LanguageModel, defaults *GenerationConfig, logger *slog.Logger) *ModelAPI {
	api := &ModelAPI{
		model:  model,
		logger: logger,
	}
	if defaults != nil {
		api.defaults = *defaults
	} else {
		api.defaults = *DefaultConfig().Generation
	}
	return api
}

// RegisterRoutes sets up the routing for all /api endpoints.
func (a *ModelAPI) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/model", a.handleStats)
	mux.HandleFunc("/api/model/dump", a.handleDump)
	mux.HandleFunc("/api/model/prune", a.handlePrune)
	mux.HandleFunc("/api/generate", a.handleGenerate)
	mux.HandleFunc("/api/version", a.handleVersion)
}

// handleStats returns the model statistics.
func (a *ModelAPI) handleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		respondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	a.mu.Lock()
	stats := a.model.Stats()
	a.mu.Unlock()
	respondWithJSON(w, http.StatusOK, stats)
}

// handleDump writes the textual model dump.
func (a *ModelAPI) handleDump(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		respondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	a.mu.Lock()
	dump := a.model.String()
	a.mu.Unlock()
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(dump))
}

// handleGenerate continues the requested seed.
func (a *ModelAPI) handleGenerate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		respondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	var req GenerateRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}
	if req.Seed == nil {
		respondWithError(w, http.StatusBadRequest, "A seed is required")
		return
	}
	if req.Length > maxGenerateLength {
		respondWithError(w, http.StatusBadRequest, fmt.Sprintf("Length may not exceed %d", maxGenerateLength))
		return
	}

	temperature, topK := a.defaults.Temperature, a.defaults.TopK
	if req.Temperature != nil {
		temperature = *req.Temperature
	}
	if req.TopK != nil {
		topK = *req.TopK
	}

	a.mu.Lock()
	text := a.model.Generate(*req.Seed, req.Length, markov.WithTemperature(temperature), markov.WithTopK(topK))
	a.mu.Unlock()

	a.logger.Debug("Generated text via API", "seed_length", len(*req.Seed), "length", req.Length)
	respondWithJSON(w, http.StatusOK, GenerateResponse{Text: text})
}

// handlePrune removes rare transitions from the model.
func (a *ModelAPI) handlePrune(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		respondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	var req PruneRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}
	a.mu.Lock()
	removed := a.model.Prune(req.MinCount)
	a.mu.Unlock()
	respondWithJSON(w, http.StatusOK, PruneResponse{Removed: removed})
}

// handleVersion returns the application's build information.
func (a *ModelAPI) handleVersion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		respondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	respondWithJSON(w, http.StatusOK, VersionInfo{
		Version:   Version,
		Commit:    Commit,
		BuildDate: BuildDate,
	})
}

// decodeJSONBody decodes a size-limited request body into dst, writing the
// error response itself and reporting false when decoding fails.
func decodeJSONBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodyBytes)
	err := json.NewDecoder(r.Body).Decode(dst)
	if err == nil {
		return true
	}
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		respondWithError(w, http.StatusRequestEntityTooLarge, fmt.Sprintf("Request body may not exceed %d bytes", maxRequestBodyBytes))
		return false
	}
	respondWithError(w, http.StatusBadRequest, "Invalid JSON request body")
	return false
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, map[string]string{"error": message})
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if payload != nil {
		err := json.NewEncoder(w).Encode(payload)
		if err != nil {
			fmt.Printf("ERROR: Failed to encode JSON response: %v\n", err)
		}
	}
}

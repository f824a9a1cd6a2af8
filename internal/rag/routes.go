package rag

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/locle27/Koyeb-Booking-sub000/internal/interactions"
	"github.com/locle27/Koyeb-Booking-sub000/internal/knowledge"
)

const maxHistoryPage = 100

// API groups what the concierge HTTP handlers need.
type API struct {
	Engine  Engine
	Core    *CoreEngine
	History InteractionLog
}

// RegisterRoutes mounts the concierge API routes.
func RegisterRoutes(r chi.Router, api API) {
	r.Route("/api/concierge", func(r chi.Router) {
		r.Post("/ask", handleAsk(api))
		r.Post("/context", handleContext(api))
	})
	r.Get("/api/knowledge", handleListKnowledge(api))
	r.Post("/api/knowledge/seed", handleSeedKnowledge(api))
	r.Get("/api/guests/{name}/interactions", handleGuestInteractions(api))
}

type askRequest struct {
	Query     string `json:"query"`
	GuestName string `json:"guest_name"`
	TopK      int    `json:"top_k,omitempty"`
}

func decodeAsk(w http.ResponseWriter, r *http.Request) (*askRequest, bool) {
	var req askRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return nil, false
	}
	req.GuestName = strings.TrimSpace(req.GuestName)
	if strings.TrimSpace(req.Query) == "" {
		writeError(w, http.StatusBadRequest, "query is required")
		return nil, false
	}
	return &req, true
}

func handleAsk(api API) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, ok := decodeAsk(w, r)
		if !ok {
			return
		}
		writeJSON(w, http.StatusOK, api.Engine.GenerateAnswer(r.Context(), req.Query, req.GuestName))
	}
}

func handleContext(api API) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, ok := decodeAsk(w, r)
		if !ok {
			return
		}
		writeJSON(w, http.StatusOK, api.Core.RetrieveTopK(r.Context(), req.Query, req.GuestName, req.TopK))
	}
}

func handleListKnowledge(api API) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entries := api.Core.Catalog()
		if category := r.URL.Query().Get("category"); category != "" {
			filtered := entries[:0]
			for _, e := range entries {
				if e.Category == category {
					filtered = append(filtered, e)
				}
			}
			entries = filtered
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"entries": entries,
			"count":   len(entries),
		})
	}
}

func handleSeedKnowledge(api API) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var entries []knowledge.Entry
		if err := json.NewDecoder(r.Body).Decode(&entries); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if len(entries) == 0 {
			writeError(w, http.StatusBadRequest, "at least one entry is required")
			return
		}

		n, err := api.Core.SeedKnowledge(r.Context(), entries)
		if err != nil {
			if errors.Is(err, knowledge.ErrEmptyContent) || errors.Is(err, knowledge.ErrEmptyCategory) {
				writeError(w, http.StatusBadRequest, err.Error())
				return
			}
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, map[string]int{"seeded": n})
	}
}

func handleGuestInteractions(api API) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := chi.URLParam(r, "name")
		limit := 5
		if s := r.URL.Query().Get("limit"); s != "" {
			n, err := strconv.Atoi(s)
			if err != nil || n <= 0 {
				writeError(w, http.StatusBadRequest, "limit must be a positive integer")
				return
			}
			limit = n
		}
		if limit > maxHistoryPage {
			limit = maxHistoryPage
		}
		records := []interactions.Record{}
		if api.History != nil {
			got, err := api.History.Recent(r.Context(), name, limit)
			if err != nil {
				writeError(w, http.StatusInternalServerError, err.Error())
				return
			}
			if got != nil {
				records = got
			}
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"interactions": records,
			"count":        len(records),
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

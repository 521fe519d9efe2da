package main

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"net/url"

	"TrafficLens/internal/config"
	"TrafficLens/internal/core/model"
	"TrafficLens/internal/filter"
	"TrafficLens/internal/stats"
	"TrafficLens/internal/store"
)

// allProtocols is the dropdown sentinel for the protocol parameter, meaning
// "no protocol constraint". UIs driving the API prepend it to the
// /api/protocols labels.
const allProtocols = "All"

// APIHandler holds the dependencies for API handlers. Every request loads the
// dataset from disk independently; the core returns typed errors and this
// layer maps them to HTTP statuses.
type APIHandler struct {
	cfg *config.Config
}

// loadFiltered loads the dataset and applies the filter criteria carried in
// the request's query parameters. Every parameter maps to a criteria field, so
// an unknown parameter surfaces as UnknownFieldError rather than an empty
// result.
func (h *APIHandler) loadFiltered(query url.Values) ([]model.TrafficRecord, error) {
	ds, err := store.Load(h.cfg.Dataset.Path)
	if err != nil {
		return nil, err
	}

	criteria := filter.Criteria{}
	for field, values := range query {
		if len(values) == 0 {
			continue
		}
		if field == model.FieldProtocol && values[0] == allProtocols {
			continue
		}
		criteria[field] = values[0]
	}
	return filter.Apply(ds.Records, criteria)
}

// protocolsHandler lists the distinct protocol labels of the full dataset.
func (h *APIHandler) protocolsHandler(w http.ResponseWriter, r *http.Request) {
	ds, err := store.Load(h.cfg.Dataset.Path)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, stats.Protocols(ds.Records))
}

// protocolPlotHandler serves the protocol frequency table of the filtered set.
func (h *APIHandler) protocolPlotHandler(w http.ResponseWriter, r *http.Request) {
	records, err := h.loadFiltered(r.URL.Query())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, stats.ProtocolCounts(records))
}

// topIPsHandler serves the top-N destination ranking of the filtered set.
func (h *APIHandler) topIPsHandler(w http.ResponseWriter, r *http.Request) {
	records, err := h.loadFiltered(r.URL.Query())
	if err != nil {
		writeError(w, err)
		return
	}
	top, err := stats.TopDestinations(records, h.cfg.API.TopN)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, top)
}

// dataHandler serves the filtered records, capped at the configured row limit.
func (h *APIHandler) dataHandler(w http.ResponseWriter, r *http.Request) {
	records, err := h.loadFiltered(r.URL.Query())
	if err != nil {
		writeError(w, err)
		return
	}
	if len(records) > h.cfg.API.MaxRows {
		records = records[:h.cfg.API.MaxRows]
	}
	if records == nil {
		records = []model.TrafficRecord{}
	}
	writeJSON(w, records)
}

// statsHandler serves the key metrics of the filtered set.
func (h *APIHandler) statsHandler(w http.ResponseWriter, r *http.Request) {
	records, err := h.loadFiltered(r.URL.Query())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, stats.Summarize(records))
}

func writeJSON(w http.ResponseWriter, payload any) {
	jsonBytes, err := json.Marshal(payload)
	if err != nil {
		http.Error(w, "failed to marshal response", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(jsonBytes)
}

// writeError maps core errors to HTTP statuses: caller-input mistakes are 400,
// a missing or empty dataset is 404, everything else is 500.
func writeError(w http.ResponseWriter, err error) {
	var unknownField *filter.UnknownFieldError
	switch {
	case errors.As(err, &unknownField), errors.Is(err, stats.ErrInvalidLimit):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, store.ErrDatasetNotFound), errors.Is(err, store.ErrEmptyDataset):
		http.Error(w, err.Error(), http.StatusNotFound)
	default:
		log.Printf("request failed: %v", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

package main

import (
	"NetGlance/internal/model"
	"NetGlance/internal/telemetry"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
)

// APIHandler holds the dependencies for API handlers.
type APIHandler struct {
	source        model.PacketSource
	defaultWindow int
}

// summarizeRequest is the body of the pass-through summary endpoint,
// for dashboards that fetch their own packet batches.
type summarizeRequest struct {
	WindowSeconds int            `json:"window_seconds"`
	Packets       []model.Packet `json:"packets"`
}

// summaryHandler fetches the trailing-window packet batch from the
// configured source and returns its summary.
func (h *APIHandler) summaryHandler(w http.ResponseWriter, r *http.Request) {
	window := h.defaultWindow
	if raw := r.URL.Query().Get("window"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			http.Error(w, fmt.Sprintf("invalid window parameter: %v", err), http.StatusBadRequest)
			return
		}
		window = parsed
	}

	if window <= 0 {
		http.Error(w, telemetry.ErrInvalidWindow.Error(), http.StatusBadRequest)
		return
	}

	packets, err := h.source.FetchNetworkData(r.Context(), window)
	if err != nil {
		http.Error(w, fmt.Sprintf("failed to fetch packets: %v", err), http.StatusBadGateway)
		return
	}

	summary, err := telemetry.Summarize(packets, window)
	if err != nil {
		http.Error(w, fmt.Sprintf("failed to summarize packets: %v", err), http.StatusInternalServerError)
		return
	}

	writeJSON(w, summary)
}

// summarizeBatchHandler summarizes a packet batch supplied by the caller.
func (h *APIHandler) summarizeBatchHandler(w http.ResponseWriter, r *http.Request) {
	var req summarizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("failed to decode request: %v", err), http.StatusBadRequest)
		return
	}

	summary, err := telemetry.Summarize(req.Packets, req.WindowSeconds)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, telemetry.ErrInvalidWindow) {
			status = http.StatusBadRequest
		}
		http.Error(w, fmt.Sprintf("failed to summarize packets: %v", err), status)
		return
	}

	writeJSON(w, summary)
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	jsonBytes, err := json.Marshal(v)
	if err != nil {
		http.Error(w, fmt.Sprintf("failed to marshal response: %v", err), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(jsonBytes)
}

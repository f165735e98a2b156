package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gocarina/gocsv"

	"github.com/ZiggyLiu/clinical-study-visual/internal/config"
	"github.com/ZiggyLiu/clinical-study-visual/internal/registry"
	"github.com/ZiggyLiu/clinical-study-visual/internal/trials"
	"github.com/ZiggyLiu/clinical-study-visual/pkg/logger"
)

// Version is reported by the health endpoint.
const Version = "0.1.0"

// Handler contains the API handlers
type Handler struct {
	trials    *trials.Service
	config    *config.Config
	logger    *logger.Logger
	startedAt time.Time
}

// NewHandler creates a new API handler
func NewHandler(trialsService *trials.Service, config *config.Config, logger *logger.Logger) *Handler {
	return &Handler{
		trials:    trialsService,
		config:    config,
		logger:    logger.Named("api-handler"),
		startedAt: time.Now(),
	}
}

// trialsQuery is the parsed query surface shared by the trial endpoints.
type trialsQuery struct {
	condition  string
	maxRecords int
	filter     trials.Filter
}

// parseTrialsQuery validates the condition/limit/status/sponsor parameters.
// The error text is safe to return to the client.
func (h *Handler) parseTrialsQuery(r *http.Request) (trialsQuery, error) {
	q := r.URL.Query()

	condition := strings.TrimSpace(q.Get("condition"))
	if condition == "" {
		return trialsQuery{}, errors.New("condition parameter is required")
	}

	maxRecords := h.config.Registry.DefaultMaxRecords
	if raw := q.Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			return trialsQuery{}, fmt.Errorf("invalid limit %q: must be a non-negative integer", raw)
		}
		maxRecords = parsed
	}
	if maxRecords > h.config.Registry.MaxRecordsLimit {
		maxRecords = h.config.Registry.MaxRecordsLimit
	}

	return trialsQuery{
		condition:  condition,
		maxRecords: maxRecords,
		filter:     trials.Filter{Statuses: q["status"], Sponsors: q["sponsor"]},
	}, nil
}

// fetchFiltered runs the cached acquisition for a parsed query and applies
// its filters.
func (h *Handler) fetchFiltered(ctx context.Context, query trialsQuery) (trials.TrialTable, error) {
	table, err := h.trials.CachedFetch(ctx, query.condition, query.maxRecords)
	if err != nil {
		return nil, err
	}
	return query.filter.Apply(table), nil
}

// GetTrials returns the trial table for a condition, filtered by any
// status/sponsor parameters.
func (h *Handler) GetTrials(w http.ResponseWriter, r *http.Request) {
	query, err := h.parseTrialsQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	table, err := h.fetchFiltered(r.Context(), query)
	if err != nil {
		h.writeFetchError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, trials.TrialsResponse{
		Timestamp: time.Now().UTC(),
		Condition: query.condition,
		Count:     len(table),
		Trials:    table,
	})
}

// GetTrialsSummary returns the dashboard summary for a condition, computed
// over the filtered table so metrics and charts track the active filters.
func (h *Handler) GetTrialsSummary(w http.ResponseWriter, r *http.Request) {
	query, err := h.parseTrialsQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	table, err := h.fetchFiltered(r.Context(), query)
	if err != nil {
		h.writeFetchError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, trials.SummaryResponse{
		Timestamp: time.Now().UTC(),
		Condition: query.condition,
		Summary:   trials.Summarize(table),
	})
}

// ExportTrials streams the filtered trial table as a CSV download.
func (h *Handler) ExportTrials(w http.ResponseWriter, r *http.Request) {
	query, err := h.parseTrialsQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	table, err := h.fetchFiltered(r.Context(), query)
	if err != nil {
		h.writeFetchError(w, r, err)
		return
	}

	filename := fmt.Sprintf("trials_%s.csv", sanitizeFilename(query.condition))
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	if err := gocsv.Marshal(table, w); err != nil {
		// Headers are already on the wire; all we can do is log.
		h.logger.Error("CSV export failed",
			logger.String("condition", query.condition),
			logger.Error(err),
		)
	}
}

// GetHealth returns the health status of the API
func (h *Handler) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":         "ok",
		"version":        Version,
		"uptime_seconds": int(time.Since(h.startedAt).Seconds()),
		"timestamp":      time.Now().UTC(),
	})
}

// GetConfig returns the client-relevant configuration subset
func (h *Handler) GetConfig(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"registry": map[string]interface{}{
			"base_url":            h.config.Registry.BaseURL,
			"default_max_records": h.config.Registry.DefaultMaxRecords,
			"max_records_limit":   h.config.Registry.MaxRecordsLimit,
		},
		"cache": map[string]interface{}{
			"ttl_minutes": h.config.Cache.TTLMinutes,
		},
	})
}

// writeFetchError maps an acquisition failure to a response. Registry
// failures surface as 502 so the client can tell upstream trouble from a
// bad request.
func (h *Handler) writeFetchError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, context.Canceled) {
		// Client went away mid-fetch; nothing to write.
		return
	}

	h.logger.Error("Trial fetch failed",
		logger.String("path", r.URL.Path),
		logger.String("query", r.URL.RawQuery),
		logger.Error(err),
	)

	var requestErr *registry.RequestError
	var responseErr *registry.ResponseError
	var transportErr *registry.TransportError
	switch {
	case errors.As(err, &requestErr), errors.As(err, &responseErr), errors.As(err, &transportErr):
		writeError(w, http.StatusBadGateway, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

// sanitizeFilename reduces a condition string to a safe filename fragment.
func sanitizeFilename(condition string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(condition) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return strings.Trim(b.String(), "_")
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

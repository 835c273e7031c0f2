package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/eugenenazirov/barplanner/internal/email"
	"github.com/eugenenazirov/barplanner/internal/engine"
	"github.com/eugenenazirov/barplanner/internal/metrics"
	"github.com/eugenenazirov/barplanner/internal/storage"
)

type contextKey string

const requestIDContextKey contextKey = "requestID"

// Handler wires engine and catalog-store dependencies into HTTP handlers.
type Handler struct {
	engine  engine.Engine
	storage storage.CatalogStore
	metrics *metrics.Collector

	clock func() time.Time

	mu               sync.RWMutex
	catalogUpdatedAt time.Time
}

// HandlerOption configures Handler behaviour.
type HandlerOption func(*Handler)

// WithClock overrides the time source, primarily for tests.
func WithClock(clock func() time.Time) HandlerOption {
	return func(h *Handler) {
		h.clock = clock
	}
}

// WithMetrics attaches a metrics collector for engine-level counters.
func WithMetrics(collector *metrics.Collector) HandlerOption {
	return func(h *Handler) {
		h.metrics = collector
	}
}

// NewHandler constructs a Handler with the provided dependencies.
func NewHandler(eng engine.Engine, store storage.CatalogStore, opts ...HandlerOption) *Handler {
	h := &Handler{
		engine:  eng,
		storage: store,
		clock: func() time.Time {
			return time.Now().UTC()
		},
	}
	for _, opt := range opts {
		opt(h)
	}
	h.catalogUpdatedAt = h.clock()
	return h
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	_ = r
	resp := healthResponse{
		Status:    "ok",
		Timestamp: h.clock(),
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleGetCatalog(w http.ResponseWriter, r *http.Request) {
	_ = r
	catalogs, err := h.storage.Snapshot()
	if err != nil {
		writeInternalError(w, err)
		return
	}

	resp := catalogResponse{
		Catalogs:  catalogs,
		UpdatedAt: h.currentCatalogUpdatedAt(),
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handlePutCatalog(w http.ResponseWriter, r *http.Request) {
	var req catalogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request", "unable to parse JSON payload")
		return
	}

	if len(req.Catalogs) == 0 {
		writeError(w, http.StatusBadRequest, "Invalid catalog", "catalogs must contain at least one ingredient")
		return
	}

	catalogs := make(map[string][]engine.PackOption, len(req.Catalogs))
	for id, options := range req.Catalogs {
		catalogs[id] = options
	}

	if err := h.storage.ReplaceAll(catalogs); err != nil {
		if errors.Is(err, storage.ErrInvalidOptions) {
			writeError(w, http.StatusBadRequest, "Invalid catalog", err.Error())
			return
		}
		writeInternalError(w, err)
		return
	}

	h.markCatalogUpdated()

	stored, err := h.storage.Snapshot()
	if err != nil {
		writeInternalError(w, err)
		return
	}

	resp := catalogResponse{
		Catalogs:  stored,
		UpdatedAt: h.currentCatalogUpdatedAt(),
		Message:   "Catalog updated successfully",
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleShoppingList(w http.ResponseWriter, r *http.Request) {
	totals, elapsed, ok := h.buildFromRequest(w, r, nil)
	if !ok {
		return
	}

	cost := 0.0
	for _, item := range totals {
		cost += item.TotalCost
	}

	resp := shoppingListResponse{
		Items:             totals,
		TotalCost:         cost,
		CalculationTimeMs: elapsed.Milliseconds(),
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleOrderEmail(w http.ResponseWriter, r *http.Request) {
	var event string
	totals, _, ok := h.buildFromRequest(w, r, &event)
	if !ok {
		return
	}

	rendered, err := email.RenderOrderList(event, totals)
	if err != nil {
		writeInternalError(w, err)
		return
	}

	resp := orderEmailResponse{
		Event: event,
		HTML:  rendered.HTML,
		Text:  rendered.Text,
	}
	writeJSON(w, http.StatusOK, resp)
}

// buildFromRequest decodes a selections payload, flattens it, attaches
// stored catalogs and runs the engine. It writes the error response itself
// and reports ok=false when the request was rejected.
func (h *Handler) buildFromRequest(w http.ResponseWriter, r *http.Request, event *string) ([]engine.IngredientTotal, time.Duration, bool) {
	var req shoppingListRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request", "unable to parse JSON payload")
		return nil, 0, false
	}
	if event != nil {
		*event = req.Event
	}

	for _, sel := range req.Selections {
		if sel.Servings < 0 {
			writeError(w, http.StatusBadRequest, "Invalid request", "servings must be a non-negative integer")
			return nil, 0, false
		}
	}

	lines := flattenSelections(req.Selections)
	if err := h.attachStoredCatalogs(lines); err != nil {
		writeInternalError(w, err)
		return nil, 0, false
	}

	start := time.Now()
	totals := h.engine.BuildShoppingList(lines)
	elapsed := time.Since(start)

	if h.metrics != nil {
		h.metrics.ObserveShoppingList(len(totals))
	}
	return totals, elapsed, true
}

// attachStoredCatalogs fills in pack options from the store for lines that
// did not bring their own.
func (h *Handler) attachStoredCatalogs(lines []engine.UsageLine) error {
	for i := range lines {
		if len(lines[i].PackOptions) > 0 {
			continue
		}
		options, err := h.storage.GetOptions(lines[i].IngredientID)
		if err != nil {
			return err
		}
		if len(options) > 0 {
			lines[i].PackOptions = options
		}
	}
	return nil
}

func (h *Handler) currentCatalogUpdatedAt() time.Time {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.catalogUpdatedAt
}

func (h *Handler) markCatalogUpdated() {
	h.mu.Lock()
	h.catalogUpdatedAt = h.clock()
	h.mu.Unlock()
}

func requestIDFromContext(ctx context.Context) string {
	if v := ctx.Value(requestIDContextKey); v != nil {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}

type shoppingListRequest struct {
	Event      string                      `json:"event,omitempty"`
	Selections oneOrMany[selectionPayload] `json:"selections"`
}

type shoppingListResponse struct {
	Items             []engine.IngredientTotal `json:"items"`
	TotalCost         float64                  `json:"totalCost"`
	CalculationTimeMs int64                    `json:"calculationTimeMs"`
}

type orderEmailResponse struct {
	Event string `json:"event,omitempty"`
	HTML  string `json:"html"`
	Text  string `json:"text"`
}

type catalogRequest struct {
	Catalogs map[string]oneOrMany[engine.PackOption] `json:"catalogs"`
}

type catalogResponse struct {
	Catalogs  map[string][]engine.PackOption `json:"catalogs"`
	UpdatedAt time.Time                      `json:"updatedAt"`
	Message   string                         `json:"message,omitempty"`
}

type healthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

type errorResponse struct {
	Error      string `json:"error"`
	Details    string `json:"details,omitempty"`
	Suggestion string `json:"suggestion,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if status != 0 {
		w.WriteHeader(status)
	}
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message, details string, suggestion ...string) {
	resp := errorResponse{
		Error:   message,
		Details: details,
	}
	if len(suggestion) > 0 {
		resp.Suggestion = suggestion[0]
	}
	writeJSON(w, status, resp)
}

func writeInternalError(w http.ResponseWriter, err error) {
	writeError(w, http.StatusInternalServerError, "Internal error", err.Error())
}

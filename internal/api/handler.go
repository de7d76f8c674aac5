// Package api exposes the dashboard store over HTTP/JSON. Reads go straight
// to the store; every mutation is posted as an intent and applied by the
// engine.
package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/gyaneshwarpardhi/opsdash/internal/config"
	"github.com/gyaneshwarpardhi/opsdash/internal/engine"
	"github.com/gyaneshwarpardhi/opsdash/internal/intent"
	"github.com/gyaneshwarpardhi/opsdash/internal/layout"
	"github.com/gyaneshwarpardhi/opsdash/internal/metrics"
)

const maxBatchSize = 100

// Handler holds all HTTP handler dependencies.
type Handler struct {
	eng     *engine.Engine
	layouts *layout.Engine
	loader  *config.Loader
	mux     *http.ServeMux
}

// New creates an HTTP handler and registers all routes. loader may be nil,
// in which case config reload is unavailable.
func New(eng *engine.Engine, layouts *layout.Engine, loader *config.Loader) http.Handler {
	h := &Handler{eng: eng, layouts: layouts, loader: loader, mux: http.NewServeMux()}

	h.mux.HandleFunc("POST /v1/intents", h.postIntent)
	h.mux.HandleFunc("POST /v1/intents/batch", h.postBatch)
	h.mux.HandleFunc("GET /v1/intents/kinds", h.listKinds)

	h.mux.HandleFunc("GET /v1/records", h.listRecords)
	h.mux.HandleFunc("GET /v1/records/departments", h.listDepartments)
	h.mux.HandleFunc("GET /v1/records/{id}", h.getRecord)
	h.mux.HandleFunc("GET /v1/stats/employees", h.employeeStats)
	h.mux.HandleFunc("GET /v1/tasks", h.listTasks)
	h.mux.HandleFunc("GET /v1/timeline", h.timeline)
	h.mux.HandleFunc("GET /v1/kanban", h.listColumns)
	h.mux.HandleFunc("GET /v1/forms", h.listForms)
	h.mux.HandleFunc("GET /v1/forms/{id}", h.getForm)
	h.mux.HandleFunc("GET /v1/forms/{id}/submissions.csv", h.exportSubmissions)
	h.mux.HandleFunc("GET /v1/emails", h.listEmails)
	h.mux.HandleFunc("GET /v1/emails/folders", h.folderCounts)
	h.mux.HandleFunc("GET /v1/emails/{id}", h.getEmail)
	h.mux.HandleFunc("GET /v1/chat/conversations", h.listConversations)
	h.mux.HandleFunc("GET /v1/chat/conversations/{id}/messages", h.listMessages)
	h.mux.HandleFunc("GET /v1/org/{view}", h.orgNodes)
	h.mux.HandleFunc("GET /v1/layouts/{view}", h.computeLayout)

	h.mux.HandleFunc("GET /v1/config", h.getConfig)
	h.mux.HandleFunc("POST /v1/config/reload", h.reloadConfig)
	h.mux.HandleFunc("GET /healthz", h.healthz)
	h.mux.HandleFunc("GET /readyz", h.readyz)
	h.mux.Handle("GET /metrics", promhttp.Handler())

	var origins []string
	if loader != nil {
		origins = loader.Config().Server.CORSOrigins
	}
	return wrap(h.mux, origins)
}

// POST /v1/intents: synchronous single-intent dispatch.
func (h *Handler) postIntent(w http.ResponseWriter, r *http.Request) {
	var in intent.Intent
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid JSON: %s", err))
		return
	}
	if err := in.Prepare(time.Now()); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	res, err := h.eng.ProcessSync(r.Context(), &in)
	if err != nil {
		writeError(w, dispatchStatus(err), err.Error())
		return
	}
	writeJSON(w, resultStatus(res), res)
}

type batchItem struct {
	IntentID string `json:"intent_id"`
	Kind     string `json:"kind"`
	Error    string `json:"error,omitempty"`
	Result   any    `json:"result,omitempty"`
}

// POST /v1/intents/batch: up to 100 intents. By default they are queued
// independently and the call returns 202; with ?wait=true they are applied
// back to back and every outcome is returned. A timed-out batch answers 504
// with the outcomes finished before the deadline.
func (h *Handler) postBatch(w http.ResponseWriter, r *http.Request) {
	var ins []*intent.Intent
	if err := json.NewDecoder(r.Body).Decode(&ins); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid JSON: %s", err))
		return
	}
	if len(ins) == 0 {
		writeError(w, http.StatusBadRequest, "batch must contain at least one intent")
		return
	}
	if len(ins) > maxBatchSize {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("batch size %d exceeds max %d", len(ins), maxBatchSize))
		return
	}
	now := time.Now()
	for i, in := range ins {
		if in == nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("intents[%d]: null intent", i))
			return
		}
		if err := in.Prepare(now); err != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("intents[%d]: %s", i, err))
			return
		}
	}

	if wait, _ := strconv.ParseBool(r.URL.Query().Get("wait")); wait {
		out, err := h.eng.ProcessBatch(r.Context(), ins)
		if err != nil && len(out) == 0 {
			writeError(w, dispatchStatus(err), err.Error())
			return
		}
		items := make([]batchItem, len(out))
		for i, o := range out {
			items[i] = batchItem{IntentID: ins[i].ID, Kind: ins[i].Kind}
			if o.Err != nil {
				items[i].Error = o.Err.Error()
			} else {
				items[i].Result = o.Result
			}
		}
		if err != nil {
			// Partial: the listed intents were applied before the deadline.
			writeJSON(w, dispatchStatus(err), map[string]any{"error": err.Error(), "results": items})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"results": items})
		return
	}

	jobID := uuid.New().String()
	queued := 0
	for _, in := range ins {
		if h.eng.ProcessAsync(in) == nil {
			queued++
		}
	}
	writeJSON(w, http.StatusAccepted, map[string]any{
		"job_id":   jobID,
		"total":    len(ins),
		"queued":   queued,
		"rejected": len(ins) - queued,
	})
}

// GET /v1/intents/kinds: every dispatchable intent kind.
func (h *Handler) listKinds(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"kinds": h.eng.Registry().Kinds()})
}

// GET /v1/config: the configuration currently in effect.
func (h *Handler) getConfig(w http.ResponseWriter, r *http.Request) {
	if h.loader == nil {
		writeError(w, http.StatusServiceUnavailable, "config loader not configured")
		return
	}
	cfg := h.loader.Config()
	writeJSON(w, http.StatusOK, map[string]any{
		"version":   cfg.Version,
		"log_level": cfg.LogLevel,
		"engine":    cfg.Engine,
		"layout":    h.layouts.Settings(),
	})
}

// POST /v1/config/reload: re-read the config file and swap layout profiles.
func (h *Handler) reloadConfig(w http.ResponseWriter, r *http.Request) {
	if h.loader == nil {
		writeError(w, http.StatusServiceUnavailable, "config loader not configured")
		return
	}
	cfg, err := h.loader.Reload()
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	h.layouts.Swap(cfg.Layout.Settings())
	writeJSON(w, http.StatusOK, map[string]any{
		"reloaded":           true,
		"version":            cfg.Version,
		"on_dangling_parent": cfg.Layout.OnDanglingParent,
	})
}

// GET /healthz: always 200 (liveness probe).
func (h *Handler) healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GET /readyz: 503 if the intent queue is >80% full.
func (h *Handler) readyz(w http.ResponseWriter, r *http.Request) {
	util := h.eng.QueueUtilization()
	metrics.QueueUtilization.Set(util)
	if util > 0.8 {
		writeJSON(w, http.StatusServiceUnavailable, map[string]any{
			"status":            "overloaded",
			"queue_utilization": util,
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":            "ready",
		"queue_utilization": util,
	})
}

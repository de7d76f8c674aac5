package api

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gyaneshwarpardhi/opsdash/internal/form"
	"github.com/gyaneshwarpardhi/opsdash/internal/gantt"
	"github.com/gyaneshwarpardhi/opsdash/internal/hierarchy"
	"github.com/gyaneshwarpardhi/opsdash/internal/layout"
	"github.com/gyaneshwarpardhi/opsdash/internal/stats"
	"github.com/gyaneshwarpardhi/opsdash/internal/store"
)

// GET /v1/records?department=HR
func (h *Handler) listRecords(w http.ResponseWriter, r *http.Request) {
	dept := r.URL.Query().Get("department")
	if dept == "" {
		writeJSON(w, http.StatusOK, h.eng.Store().Records())
		return
	}
	if !store.IsDepartment(dept) {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown department %q (want one of: %s)", dept, strings.Join(store.Departments, ", ")))
		return
	}
	out := []store.Employee{}
	for _, e := range h.eng.Store().Records() {
		if e.Department == dept {
			out = append(out, e)
		}
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) listDepartments(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, store.Departments)
}

func (h *Handler) getRecord(w http.ResponseWriter, r *http.Request) {
	e, ok := h.eng.Store().Record(r.PathValue("id"))
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Sprintf("record %q not found", r.PathValue("id")))
		return
	}
	writeJSON(w, http.StatusOK, e)
}

func (h *Handler) employeeStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, stats.Build(h.eng.Store().Records()))
}

func (h *Handler) listTasks(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.eng.Store().Tasks())
}

// GET /v1/timeline?mode=month|week
func (h *Handler) timeline(w http.ResponseWriter, r *http.Request) {
	mode, err := gantt.ParseMode(r.URL.Query().Get("mode"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s := h.eng.Store()
	writeJSON(w, http.StatusOK, gantt.Build(s.Tasks(), mode, s.Now()))
}

func (h *Handler) listColumns(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.eng.Store().Columns())
}

func (h *Handler) listForms(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.eng.Store().Forms())
}

func (h *Handler) getForm(w http.ResponseWriter, r *http.Request) {
	f, ok := h.eng.Store().Form(r.PathValue("id"))
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Sprintf("form %q not found", r.PathValue("id")))
		return
	}
	writeJSON(w, http.StatusOK, f)
}

// GET /v1/forms/{id}/submissions.csv
func (h *Handler) exportSubmissions(w http.ResponseWriter, r *http.Request) {
	f, ok := h.eng.Store().Form(r.PathValue("id"))
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Sprintf("form %q not found", r.PathValue("id")))
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", form.ExportFilename(f.Title)))
	w.WriteHeader(http.StatusOK)
	if err := form.WriteCSV(w, f.Fields, f.Submissions); err != nil {
		slog.Error("csv export failed", "form_id", f.ID, "err", err, "request_id", RequestID(r.Context()))
	}
}

// GET /v1/emails?folder=inbox&q=planning
func (h *Handler) listEmails(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	folder := q.Get("folder")
	if folder != "" && !store.IsFolder(folder) {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown folder %q (want one of: %s)", folder, strings.Join(store.Folders, ", ")))
		return
	}
	writeJSON(w, http.StatusOK, h.eng.Store().Emails(folder, q.Get("q")))
}

func (h *Handler) folderCounts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.eng.Store().FolderCounts())
}

func (h *Handler) getEmail(w http.ResponseWriter, r *http.Request) {
	e, ok := h.eng.Store().Email(r.PathValue("id"))
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Sprintf("email %q not found", r.PathValue("id")))
		return
	}
	writeJSON(w, http.StatusOK, e)
}

func (h *Handler) listConversations(w http.ResponseWriter, r *http.Request) {
	s := h.eng.Store()
	writeJSON(w, http.StatusOK, map[string]any{
		"currentUser":   s.CurrentUser(),
		"active":        s.ActiveConversation(),
		"conversations": s.Conversations(),
	})
}

func (h *Handler) listMessages(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.eng.Store().Messages(r.PathValue("id")))
}

// ViewNodes returns the org collection behind view, both as resolver input
// and in its typed form.
func ViewNodes(s *store.Store, view string) (nodes []hierarchy.Node, raw any, ok bool) {
	switch view {
	case layout.ViewTeams:
		ns := s.Teams()
		return hierarchy.Of(ns), ns, true
	case layout.ViewJobs:
		ns := s.Jobs()
		return hierarchy.Of(ns), ns, true
	case layout.ViewForms:
		ns := s.FormNodes()
		return hierarchy.Of(ns), ns, true
	}
	return nil, nil, false
}

// GET /v1/org/{view}: the raw nodes of an org view.
func (h *Handler) orgNodes(w http.ResponseWriter, r *http.Request) {
	_, raw, ok := ViewNodes(h.eng.Store(), r.PathValue("view"))
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Sprintf("unknown view %q", r.PathValue("view")))
		return
	}
	writeJSON(w, http.StatusOK, raw)
}

// GET /v1/layouts/{view}: positioned nodes and edges for an org view.
func (h *Handler) computeLayout(w http.ResponseWriter, r *http.Request) {
	view := r.PathValue("view")
	nodes, _, ok := ViewNodes(h.eng.Store(), view)
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Sprintf("unknown view %q", view))
		return
	}
	l, err := h.layouts.Compute(view, nodes)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, hierarchy.ErrMalformedHierarchy) || errors.Is(err, hierarchy.ErrDanglingParent) {
			status = http.StatusUnprocessableEntity
		}
		writeError(w, status, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, l)
}

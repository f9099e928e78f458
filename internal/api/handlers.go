// Package api is the front-end HTTP service: CRUD over FEM contact records
// and the forwarding endpoint that asks the mesh microservice for numbers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/onlinefem/onlinefem/internal/store"
	"github.com/onlinefem/onlinefem/internal/web"
)

// RecordStore is what the handlers need from the persistence layer.
type RecordStore interface {
	Create(ctx context.Context, f *store.FEM) error
	Get(ctx context.Context, id int64) (*store.FEM, error)
	Update(ctx context.Context, f *store.FEM) error
	List(ctx context.Context, params store.ListParams) ([]*store.FEM, int64, error)
}

// NumbersClient is what the forwarding endpoint needs from the solver.
type NumbersClient interface {
	Numbers(ctx context.Context) ([]int, error)
}

// Handlers contains the HTTP handlers of the front-end service.
type Handlers struct {
	records RecordStore
	solver  NumbersClient
	logger  *slog.Logger
}

// NewHandlers creates a new handlers instance.
func NewHandlers(records RecordStore, solver NumbersClient, logger *slog.Logger) *Handlers {
	return &Handlers{records: records, solver: solver, logger: logger}
}

// Router mounts all routes with the shared middleware.
func (h *Handlers) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(web.WithRequestID)
	r.Use(web.WithLogging(h.logger))
	r.Use(web.WithRecovery(h.logger))

	r.Get("/healthz", h.handleHealth)
	r.Get("/fem/", h.handleDolfin)

	r.Route("/api/fem", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Post("/", h.handleCreate)
		r.Get("/template", h.handleTemplate)
		r.Get("/{id}", h.handleGet)
		r.Put("/{id}", h.handlePut)
		r.Patch("/{id}", h.handlePatch)
	})
	return r
}

func (h *Handlers) handleHealth(w http.ResponseWriter, r *http.Request) {
	web.RespondJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// handleDolfin forwards name=numbers to the solver service and folds the
// reply into {"out": n[1]+n[2]}, or {"out":"nothing"} when the solver has
// nothing for us.
func (h *Handlers) handleDolfin(w http.ResponseWriter, r *http.Request) {
	numbers, err := h.solver.Numbers(r.Context())
	if err != nil {
		h.logger.Error("solver call failed", "error", err)
		web.RespondError(w, http.StatusBadGateway, "solver unavailable", "SOLVER_UNAVAILABLE")
		return
	}
	if numbers == nil {
		web.RespondJSON(w, http.StatusOK, OutResponse{Out: "nothing"})
		return
	}
	if len(numbers) < 3 {
		h.logger.Error("solver reply too short", "len", len(numbers))
		web.RespondError(w, http.StatusBadGateway, "malformed solver reply", "SOLVER_REPLY")
		return
	}
	web.RespondJSON(w, http.StatusOK, OutResponse{Out: numbers[1] + numbers[2]})
}

func (h *Handlers) handleList(w http.ResponseWriter, r *http.Request) {
	params := store.ListParams{WithTotalCount: true, PageSize: 50, Page: 1}
	q := r.URL.Query()
	if v := q.Get("page"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil || n < 1 {
			web.RespondError(w, http.StatusBadRequest, "bad page", "INVALID_REQUEST")
			return
		}
		params.Page = n
	}
	if v := q.Get("page_size"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil || n < 1 || n > 500 {
			web.RespondError(w, http.StatusBadRequest, "bad page_size", "INVALID_REQUEST")
			return
		}
		params.PageSize = n
	}
	if v := q.Get("sort"); v != "" {
		for _, col := range strings.Split(v, ",") {
			if !validSortColumn(col) {
				web.RespondError(w, http.StatusBadRequest, "bad sort column", "INVALID_REQUEST")
				return
			}
			params.Sort = append(params.Sort, col)
		}
	}

	items, total, err := h.records.List(r.Context(), params)
	if err != nil {
		h.serverError(w, err)
		return
	}
	resp := ListRecordsResponse{Items: make([]FEMRecord, 0, len(items)), Total: total}
	for _, f := range items {
		resp.Items = append(resp.Items, recordFromModel(f))
	}
	web.RespondJSON(w, http.StatusOK, resp)
}

func validSortColumn(col string) bool {
	col = strings.TrimPrefix(col, "-")
	switch col {
	case "id", "name", "email", "created_at", "updated_at":
		return true
	}
	return false
}

func (h *Handlers) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req UpsertRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		web.RespondError(w, http.StatusBadRequest, "bad request body", "INVALID_REQUEST")
		return
	}
	if req.Name == nil || *req.Name == "" {
		web.RespondError(w, http.StatusBadRequest, "name is required", "INVALID_REQUEST")
		return
	}
	f := &store.FEM{Name: *req.Name}
	if req.Email != nil {
		if !validEmail(*req.Email) {
			web.RespondError(w, http.StatusBadRequest, "bad email", "INVALID_REQUEST")
			return
		}
		f.Email = *req.Email
	}
	if req.Message != nil {
		f.Message = *req.Message
	}
	if err := h.records.Create(r.Context(), f); err != nil {
		h.serverError(w, err)
		return
	}
	web.RespondJSON(w, http.StatusCreated, recordFromModel(f))
}

func validEmail(s string) bool {
	if s == "" {
		return true
	}
	at := strings.Index(s, "@")
	return at > 0 && at < len(s)-1 && !strings.Contains(s, " ")
}

// handleTemplate returns an empty record skeleton for form clients.
func (h *Handlers) handleTemplate(w http.ResponseWriter, r *http.Request) {
	web.RespondJSON(w, http.StatusOK, FEMRecord{})
}

func (h *Handlers) recordID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id < 1 {
		web.RespondError(w, http.StatusBadRequest, "bad record id", "INVALID_REQUEST")
		return 0, false
	}
	return id, true
}

func (h *Handlers) handleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := h.recordID(w, r)
	if !ok {
		return
	}
	f, err := h.records.Get(r.Context(), id)
	if err != nil {
		h.storeError(w, err)
		return
	}
	web.RespondJSON(w, http.StatusOK, recordFromModel(f))
}

// handlePut replaces every mutable field of the record.
func (h *Handlers) handlePut(w http.ResponseWriter, r *http.Request) {
	id, ok := h.recordID(w, r)
	if !ok {
		return
	}
	var req UpsertRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		web.RespondError(w, http.StatusBadRequest, "bad request body", "INVALID_REQUEST")
		return
	}
	if req.Name == nil || *req.Name == "" {
		web.RespondError(w, http.StatusBadRequest, "name is required", "INVALID_REQUEST")
		return
	}
	f := &store.FEM{ID: id, Name: *req.Name}
	if req.Email != nil {
		if !validEmail(*req.Email) {
			web.RespondError(w, http.StatusBadRequest, "bad email", "INVALID_REQUEST")
			return
		}
		f.Email = *req.Email
	}
	if req.Message != nil {
		f.Message = *req.Message
	}
	if err := h.records.Update(r.Context(), f); err != nil {
		h.storeError(w, err)
		return
	}
	web.RespondJSON(w, http.StatusOK, recordFromModel(f))
}

// handlePatch updates only the fields present in the payload.
func (h *Handlers) handlePatch(w http.ResponseWriter, r *http.Request) {
	id, ok := h.recordID(w, r)
	if !ok {
		return
	}
	var req UpsertRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		web.RespondError(w, http.StatusBadRequest, "bad request body", "INVALID_REQUEST")
		return
	}

	f, err := h.records.Get(r.Context(), id)
	if err != nil {
		h.storeError(w, err)
		return
	}
	if req.Name != nil {
		if *req.Name == "" {
			web.RespondError(w, http.StatusBadRequest, "name cannot be empty", "INVALID_REQUEST")
			return
		}
		f.Name = *req.Name
	}
	if req.Email != nil {
		if !validEmail(*req.Email) {
			web.RespondError(w, http.StatusBadRequest, "bad email", "INVALID_REQUEST")
			return
		}
		f.Email = *req.Email
	}
	if req.Message != nil {
		f.Message = *req.Message
	}
	if err := h.records.Update(r.Context(), f); err != nil {
		h.storeError(w, err)
		return
	}
	web.RespondJSON(w, http.StatusOK, recordFromModel(f))
}

func (h *Handlers) storeError(w http.ResponseWriter, err error) {
	if errors.Is(err, store.ErrNotFound) {
		web.RespondError(w, http.StatusNotFound, "record not found", "NOT_FOUND")
		return
	}
	h.serverError(w, err)
}

func (h *Handlers) serverError(w http.ResponseWriter, err error) {
	h.logger.Error("request failed", "error", err)
	web.RespondError(w, http.StatusInternalServerError, "internal server error", "INTERNAL")
}

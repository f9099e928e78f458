package solver

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/onlinefem/onlinefem/internal/web"
)

// Handlers contains the HTTP handlers of the mesh microservice.
type Handlers struct {
	logger *slog.Logger
}

// NewHandlers creates a new handlers instance.
func NewHandlers(logger *slog.Logger) *Handlers {
	return &Handlers{logger: logger}
}

// Router mounts the service routes with the shared middleware.
func (h *Handlers) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(web.WithRequestID)
	r.Use(web.WithLogging(h.logger))
	r.Use(web.WithRecovery(h.logger))

	r.Get("/healthz", h.handleHealth)
	r.Get("/", h.handleRoot)
	r.Post("/", h.handleRoot)
	r.Post("/mesh", h.handleMesh)
	return r
}

func (h *Handlers) handleHealth(w http.ResponseWriter, r *http.Request) {
	web.RespondJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// handleRoot answers the numbers probe. GET always gets the numbers; POST
// only when the form names them, anything else gets JSON null.
func (h *Handlers) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodPost {
		if err := r.ParseForm(); err != nil {
			web.RespondError(w, http.StatusBadRequest, "bad form body", "INVALID_REQUEST")
			return
		}
		if r.PostForm.Get("name") != "numbers" {
			web.RespondJSON(w, http.StatusOK, nil)
			return
		}
	}

	reply, err := Numbers(r.Method)
	if err != nil {
		h.logger.Error("numbers failed", "error", err)
		web.RespondError(w, http.StatusInternalServerError, "internal server error", "INTERNAL")
		return
	}
	web.RespondJSON(w, http.StatusOK, reply)
}

func (h *Handlers) handleMesh(w http.ResponseWriter, r *http.Request) {
	var req MeshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		web.RespondError(w, http.StatusBadRequest, "bad request body", "INVALID_REQUEST")
		return
	}

	reply, err := MeshTemplate(req)
	if err != nil {
		h.logger.Error("mesh failed", "geometry", req.Geometry, "error", err)
		web.RespondError(w, http.StatusUnprocessableEntity, err.Error(), "MESH_FAILED")
		return
	}
	web.RespondJSON(w, http.StatusOK, reply)
}

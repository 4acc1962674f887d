package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"forcegraph/internal/domain"
	"forcegraph/internal/repository"
	"forcegraph/internal/service"
	"forcegraph/internal/simulation"
)

// LayoutHandler handles session and layout API requests
type LayoutHandler struct {
	svc *service.LayoutService
}

// NewLayoutHandler creates a new layout handler
func NewLayoutHandler(svc *service.LayoutService) *LayoutHandler {
	return &LayoutHandler{svc: svc}
}

// Register binds every API route to mux
func (h *LayoutHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/sessions", h.CreateSession)
	mux.HandleFunc("GET /api/sessions", h.ListSessions)
	mux.HandleFunc("GET /api/sessions/{id}", h.GetSession)
	mux.HandleFunc("DELETE /api/sessions/{id}", h.DeleteSession)

	mux.HandleFunc("POST /api/sessions/{id}/step", h.Step)
	mux.HandleFunc("POST /api/sessions/{id}/run", h.Run)
	mux.HandleFunc("POST /api/sessions/{id}/start", h.Start)
	mux.HandleFunc("POST /api/sessions/{id}/stop", h.Stop)

	mux.HandleFunc("POST /api/sessions/{id}/drag/start", h.StartDrag)
	mux.HandleFunc("POST /api/sessions/{id}/drag/move", h.MoveDrag)
	mux.HandleFunc("POST /api/sessions/{id}/drag/end", h.EndDrag)
	mux.HandleFunc("POST /api/sessions/{id}/unpin", h.Unpin)

	mux.HandleFunc("PUT /api/sessions/{id}/active", h.SetActive)
	mux.HandleFunc("PUT /api/sessions/{id}/max-degree", h.SetMaxDegree)

	mux.HandleFunc("POST /api/sessions/{id}/freeze", h.Freeze)
	mux.HandleFunc("GET /api/layouts", h.ListLayouts)
	mux.HandleFunc("GET /api/layouts/{id}", h.GetLayout)
	mux.HandleFunc("DELETE /api/layouts/{id}", h.DeleteLayout)
	mux.HandleFunc("POST /api/layouts/{id}/thaw", h.Thaw)
	mux.HandleFunc("GET /api/layouts/{id}/export", h.ExportLayout)

	mux.HandleFunc("GET /api/export/{id}", h.ExportFrame)
}

// ErrorResponse is the body of every error reply
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// SessionResponse is returned when a session is created or thawed
type SessionResponse struct {
	ID      string              `json:"id"`
	Session service.SessionInfo `json:"session"`
	Frame   domain.Frame        `json:"frame"`
}

// RunRequest is the body of POST /run. Omitted ticks use the batch default.
type RunRequest struct {
	Ticks *int `json:"ticks"`
}

// DragRequest is the body of drag and unpin requests. drag/move requires
// both x and y.
type DragRequest struct {
	NodeID string   `json:"node_id"`
	X      *float64 `json:"x"`
	Y      *float64 `json:"y"`
}

func (r DragRequest) pointer() domain.Vector {
	var p domain.Vector
	if r.X != nil {
		p.X = *r.X
	}
	if r.Y != nil {
		p.Y = *r.Y
	}
	return p
}

// ActiveRequest selects the visibility focus. A null node_id clears it.
type ActiveRequest struct {
	NodeID *string `json:"node_id"`
}

// MaxDegreeRequest sets the visibility hop bound
type MaxDegreeRequest struct {
	MaxDegree *int `json:"max_degree"`
}

// FreezeRequest names a frozen layout
type FreezeRequest struct {
	Name string `json:"name"`
}

// CreateSession builds a session from the request body.
// ?format=csv|json|yaml selects the decoder, ?settle=true pre-settles it.
func (h *LayoutHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = "json"
	}

	fragment, err := h.svc.ParseGraph(format, r.Body)
	if err != nil {
		h.writeServiceError(w, "Invalid graph", err)
		return
	}

	presettle := r.URL.Query().Get("settle") == "true"
	info, frame, err := h.svc.CreateSession(r.Context(), fragment, presettle)
	if err != nil {
		h.writeServiceError(w, "Failed to create session", err)
		return
	}

	h.writeJSON(w, SessionResponse{ID: info.ID, Session: info, Frame: frame}, http.StatusCreated)
}

// ListSessions returns all live sessions
func (h *LayoutHandler) ListSessions(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, h.svc.ListSessions(), http.StatusOK)
}

// GetSession returns the current frame of a session
func (h *LayoutHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	frame, err := h.svc.Frame(r.PathValue("id"))
	if err != nil {
		h.writeServiceError(w, "Failed to get session", err)
		return
	}
	h.writeJSON(w, frame, http.StatusOK)
}

// DeleteSession removes a session
func (h *LayoutHandler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteSession(r.PathValue("id")); err != nil {
		h.writeServiceError(w, "Failed to delete session", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Step advances a session by one tick
func (h *LayoutHandler) Step(w http.ResponseWriter, r *http.Request) {
	frame, err := h.svc.Step(r.PathValue("id"))
	if err != nil {
		h.writeServiceError(w, "Failed to step session", err)
		return
	}
	h.writeJSON(w, frame, http.StatusOK)
}

// Run executes a batch of ticks
func (h *LayoutHandler) Run(w http.ResponseWriter, r *http.Request) {
	var req RunRequest
	if !h.decodeOptional(w, r, &req) {
		return
	}

	ticks := h.svc.Config().BatchTicks
	if req.Ticks != nil {
		ticks = *req.Ticks
	}

	frame, err := h.svc.Run(r.Context(), r.PathValue("id"), ticks)
	if err != nil {
		h.writeServiceError(w, "Failed to run session", err)
		return
	}
	h.writeJSON(w, frame, http.StatusOK)
}

// Start resumes continuous mode
func (h *LayoutHandler) Start(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Start(r.PathValue("id")); err != nil {
		h.writeServiceError(w, "Failed to start session", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Stop pauses continuous mode
func (h *LayoutHandler) Stop(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Stop(r.PathValue("id")); err != nil {
		h.writeServiceError(w, "Failed to stop session", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// StartDrag begins a drag gesture
func (h *LayoutHandler) StartDrag(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeDrag(w, r)
	if !ok {
		return
	}
	if err := h.svc.StartDrag(r.PathValue("id"), req.NodeID, req.pointer()); err != nil {
		h.writeServiceError(w, "Failed to start drag", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// MoveDrag moves the dragged node to the pointer
func (h *LayoutHandler) MoveDrag(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeDrag(w, r)
	if !ok {
		return
	}
	if req.X == nil || req.Y == nil {
		h.writeError(w, "Invalid request body", "x and y are required", http.StatusBadRequest)
		return
	}
	if err := h.svc.MoveDrag(r.PathValue("id"), req.NodeID, req.pointer()); err != nil {
		h.writeServiceError(w, "Failed to move drag", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// EndDrag finishes a drag gesture
func (h *LayoutHandler) EndDrag(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeDrag(w, r)
	if !ok {
		return
	}
	if err := h.svc.EndDrag(r.PathValue("id"), req.NodeID); err != nil {
		h.writeServiceError(w, "Failed to end drag", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Unpin releases a node's fixed position
func (h *LayoutHandler) Unpin(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeDrag(w, r)
	if !ok {
		return
	}
	if err := h.svc.Unpin(r.PathValue("id"), req.NodeID); err != nil {
		h.writeServiceError(w, "Failed to unpin node", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SetActive sets or clears the visibility focus
func (h *LayoutHandler) SetActive(w http.ResponseWriter, r *http.Request) {
	var req ActiveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, "Invalid request body", err.Error(), http.StatusBadRequest)
		return
	}

	frame, err := h.svc.SetActiveNode(r.PathValue("id"), req.NodeID)
	if err != nil {
		h.writeServiceError(w, "Failed to set active node", err)
		return
	}
	h.writeJSON(w, frame, http.StatusOK)
}

// SetMaxDegree changes the visibility hop bound
func (h *LayoutHandler) SetMaxDegree(w http.ResponseWriter, r *http.Request) {
	var req MaxDegreeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, "Invalid request body", err.Error(), http.StatusBadRequest)
		return
	}
	if req.MaxDegree == nil {
		h.writeError(w, "Invalid request body", "max_degree is required", http.StatusBadRequest)
		return
	}

	frame, err := h.svc.SetMaxDegree(r.PathValue("id"), *req.MaxDegree)
	if err != nil {
		h.writeServiceError(w, "Failed to set max degree", err)
		return
	}
	h.writeJSON(w, frame, http.StatusOK)
}

// Freeze stores a session as a named layout
func (h *LayoutHandler) Freeze(w http.ResponseWriter, r *http.Request) {
	var req FreezeRequest
	if !h.decodeOptional(w, r, &req) {
		return
	}

	summary, err := h.svc.Freeze(r.Context(), r.PathValue("id"), req.Name)
	if err != nil {
		h.writeServiceError(w, "Failed to freeze session", err)
		return
	}
	h.writeJSON(w, summary, http.StatusCreated)
}

// ListLayouts returns all stored layouts
func (h *LayoutHandler) ListLayouts(w http.ResponseWriter, r *http.Request) {
	layouts, err := h.svc.ListLayouts(r.Context())
	if err != nil {
		h.writeServiceError(w, "Failed to list layouts", err)
		return
	}
	h.writeJSON(w, layouts, http.StatusOK)
}

// GetLayout returns a stored layout with positions and links
func (h *LayoutHandler) GetLayout(w http.ResponseWriter, r *http.Request) {
	layout, err := h.svc.GetLayout(r.Context(), r.PathValue("id"))
	if err != nil {
		h.writeServiceError(w, "Failed to get layout", err)
		return
	}
	h.writeJSON(w, layout, http.StatusOK)
}

// DeleteLayout removes a stored layout
func (h *LayoutHandler) DeleteLayout(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteLayout(r.Context(), r.PathValue("id")); err != nil {
		h.writeServiceError(w, "Failed to delete layout", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Thaw hosts a new session from a stored layout
func (h *LayoutHandler) Thaw(w http.ResponseWriter, r *http.Request) {
	info, frame, err := h.svc.Thaw(r.Context(), r.PathValue("id"))
	if err != nil {
		h.writeServiceError(w, "Failed to thaw layout", err)
		return
	}
	h.writeJSON(w, SessionResponse{ID: info.ID, Session: info, Frame: frame}, http.StatusCreated)
}

// ExportFrame writes a session's current frame as a json or yaml document
func (h *LayoutHandler) ExportFrame(w http.ResponseWriter, r *http.Request) {
	format := strings.ToLower(r.URL.Query().Get("format"))
	if format == "" {
		format = "json"
	}

	var buf bytes.Buffer
	if err := h.svc.ExportFrame(r.PathValue("id"), format, &buf); err != nil {
		h.writeServiceError(w, "Failed to export frame", err)
		return
	}
	h.writeDocument(w, format, buf.Bytes())
}

// ExportLayout writes a stored layout as a json or yaml document
func (h *LayoutHandler) ExportLayout(w http.ResponseWriter, r *http.Request) {
	format := strings.ToLower(r.URL.Query().Get("format"))
	if format == "" {
		format = "json"
	}

	var buf bytes.Buffer
	if err := h.svc.ExportLayout(r.Context(), r.PathValue("id"), format, &buf); err != nil {
		h.writeServiceError(w, "Failed to export layout", err)
		return
	}
	h.writeDocument(w, format, buf.Bytes())
}

func (h *LayoutHandler) writeDocument(w http.ResponseWriter, format string, data []byte) {
	contentType := "application/json"
	if format == "yaml" || format == "yml" {
		contentType = "application/x-yaml"
	}
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		log.Printf("Failed to write export: %v", err)
	}
}

func (h *LayoutHandler) decodeDrag(w http.ResponseWriter, r *http.Request) (DragRequest, bool) {
	var req DragRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, "Invalid request body", err.Error(), http.StatusBadRequest)
		return req, false
	}
	if req.NodeID == "" {
		h.writeError(w, "Invalid request body", "node_id is required", http.StatusBadRequest)
		return req, false
	}
	return req, true
}

// decodeOptional decodes a JSON body that may be empty
func (h *LayoutHandler) decodeOptional(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if r.Body == nil || r.ContentLength == 0 {
		return true
	}
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		h.writeError(w, "Invalid request body", err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}

// statusFor maps service and engine errors to HTTP status codes
func statusFor(err error) int {
	switch {
	case domain.IsInputError(err), domain.IsConfigurationError(err), errors.Is(err, simulation.ErrNotDragging):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrSessionNotFound), errors.Is(err, domain.ErrNodeNotFound), errors.Is(err, repository.ErrLayoutNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrSessionLimit):
		return http.StatusTooManyRequests
	case errors.Is(err, service.ErrNoRepository):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func (h *LayoutHandler) writeServiceError(w http.ResponseWriter, msg string, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		log.Printf("%s: %v", msg, err)
	}
	h.writeError(w, msg, err.Error(), status)
}

func (h *LayoutHandler) writeJSON(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Failed to encode JSON: %v", err)
	}
}

func (h *LayoutHandler) writeError(w http.ResponseWriter, error, details string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(ErrorResponse{
		Error:   error,
		Details: details,
	}); err != nil {
		log.Printf("Failed to encode error response: %v", err)
	}
}

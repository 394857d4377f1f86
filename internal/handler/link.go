package handler

import (
	"log/slog"
	"net/http"

	"github.com/sakif/personal-site/internal/service"
)

type LinkHandler struct {
	links  *service.LinkService
	logger *slog.Logger
}

func NewLinkHandler(links *service.LinkService, logger *slog.Logger) *LinkHandler {
	return &LinkHandler{links: links, logger: logger}
}

type linkRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	Icon        string `json:"icon"`
	SortOrder   *int   `json:"sort_order"`
}

func (req linkRequest) input() service.LinkInput {
	return service.LinkInput{
		Title:       req.Title,
		Description: req.Description,
		URL:         req.URL,
		Icon:        req.Icon,
		SortOrder:   req.SortOrder,
	}
}

// HandleList returns all links in display order.
//
// HTTP: GET /api/links
func (h *LinkHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	links, err := h.links.List(r.Context())
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, links)
}

// HandleCreate adds a link.
//
// HTTP: POST /api/links (bearer)
// REQUEST BODY: {"title": "...", "description": "...", "url": "https://...", "icon": "🔗", "sort_order": 3}
// RESPONSE: {"id": 6, "success": true}
func (h *LinkHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req linkRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	link, err := h.links.Create(r.Context(), req.input())
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, CreatedResponse{ID: link.ID, Success: true})
}

// HandleUpdate replaces a link's fields.
//
// HTTP: PUT /api/links/{id} (bearer)
func (h *LinkHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	var req linkRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	if err := h.links.Update(r.Context(), id, req.input()); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, SuccessResponse{Success: true})
}

// HandleDelete removes a link. Deleting the same id twice yields 404 the
// second time.
//
// HTTP: DELETE /api/links/{id} (bearer)
func (h *LinkHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	if err := h.links.Delete(r.Context(), id); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, SuccessResponse{Success: true})
}

package handler

import (
	"log/slog"
	"net/http"

	"github.com/sakif/personal-site/internal/service"
	"github.com/sakif/personal-site/internal/upload"
)

// MediaHandler serves the media gallery API. Uploads are streamed to disk
// by the upload store before the service records them.
type MediaHandler struct {
	media   *service.MediaService
	uploads *upload.Store
	logger  *slog.Logger
}

func NewMediaHandler(media *service.MediaService, uploads *upload.Store, logger *slog.Logger) *MediaHandler {
	return &MediaHandler{media: media, uploads: uploads, logger: logger}
}

type updateMediaRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Date        string `json:"date"`
}

// HandleList returns every media item, newest first.
//
// HTTP: GET /api/media
func (h *MediaHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	items, err := h.media.List(r.Context())
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, items)
}

// HandleCreate accepts a multipart upload and records it.
//
// HTTP: POST /api/media (bearer)
// FORM FIELDS: file (required), title (required), description, date (YYYY-MM-DD)
// RESPONSE: {"id": 7, "filename": "1718000000000-<xid>.mp4", "success": true}
func (h *MediaHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	sub, err := h.uploads.Receive(w, r)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	item, err := h.media.Create(r.Context(), sub.Filename, service.MediaInput{
		Title:       sub.Title,
		Description: sub.Description,
		Date:        sub.Date,
	})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, CreatedResponse{ID: item.ID, Filename: item.Filename, Success: true})
}

// HandleUpdate edits a media item's metadata.
//
// HTTP: PUT /api/media/{id} (bearer)
// REQUEST BODY: {"title": "...", "description": "...", "date": "2024-01-15"}
func (h *MediaHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	var req updateMediaRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	if err := h.media.Update(r.Context(), id, service.MediaInput{
		Title:       req.Title,
		Description: req.Description,
		Date:        req.Date,
	}); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, SuccessResponse{Success: true})
}

// HandleDelete removes a media item and its file.
//
// HTTP: DELETE /api/media/{id} (bearer)
func (h *MediaHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	if err := h.media.Delete(r.Context(), id); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, SuccessResponse{Success: true})
}

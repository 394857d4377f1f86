package handler

import (
	"log/slog"
	"net/http"

	"github.com/sakif/personal-site/internal/apperror"
	"github.com/sakif/personal-site/internal/service"
)

type AboutHandler struct {
	about  *service.AboutService
	logger *slog.Logger
}

func NewAboutHandler(about *service.AboutService, logger *slog.Logger) *AboutHandler {
	return &AboutHandler{about: about, logger: logger}
}

type AboutResponse struct {
	Text string `json:"text"`
}

// Text is a pointer so a missing field can be told apart from "".
type updateAboutRequest struct {
	Text *string `json:"text"`
}

// HandleGet returns the about text.
//
// HTTP: GET /api/about
func (h *AboutHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	about, err := h.about.Get(r.Context())
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, AboutResponse{Text: about.Text})
}

// HandleUpdate replaces the about text.
//
// HTTP: PUT /api/about (bearer)
// REQUEST BODY: {"text": "..."}
func (h *AboutHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req updateAboutRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	if req.Text == nil {
		writeError(w, r, h.logger, apperror.ValidationFailed("text", "Text is required"))
		return
	}

	if err := h.about.Update(r.Context(), *req.Text); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, SuccessResponse{Success: true})
}

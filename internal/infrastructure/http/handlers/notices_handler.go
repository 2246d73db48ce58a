package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/amirhosseinghanipour/folio/internal/application/notice"
)

// NoticesHandler serves GET /admin/notices/{section}: the section's banner while it is visible,
// 204 otherwise.
type NoticesHandler struct {
	notices *notice.Board
}

func NewNoticesHandler(notices *notice.Board) *NoticesHandler {
	return &NoticesHandler{notices: notices}
}

func (h *NoticesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	n, ok := h.notices.Current(chi.URLParam(r, "section"))
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, http.StatusOK, n)
}

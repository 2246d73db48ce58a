package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/amirhosseinghanipour/folio/internal/application/listing"
	"github.com/amirhosseinghanipour/folio/internal/application/notice"
	"github.com/amirhosseinghanipour/folio/internal/application/store"
	"github.com/amirhosseinghanipour/folio/internal/domain"
)

// MessagesHandler handles the admin inbox.
type MessagesHandler struct {
	store   *store.Store
	notices *notice.Board
	log     zerolog.Logger
}

func NewMessagesHandler(s *store.Store, notices *notice.Board, log zerolog.Logger) *MessagesHandler {
	return &MessagesHandler{store: s, notices: notices, log: log}
}

type messagesView struct {
	Messages []domain.Message `json:"messages"`
	Filter   string           `json:"filter"`
	Query    string           `json:"q,omitempty"`
	Total    int              `json:"total"`
	Error    string           `json:"error,omitempty"`
}

// List handles GET /admin/messages?filter=all|read|unread&q=.
func (h *MessagesHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := r.URL.Query().Get("filter")
	switch filter {
	case "":
		filter = listing.MessagesAll
	case listing.MessagesAll, listing.MessagesRead, listing.MessagesUnread:
	default:
		writeErr(w, http.StatusBadRequest, "", "filter must be all, read or unread")
		return
	}
	q := r.URL.Query().Get("q")
	st := h.store.Snapshot()
	writeJSON(w, http.StatusOK, messagesView{
		Messages: listing.FilterMessages(st.Messages, filter, q),
		Filter:   filter,
		Query:    q,
		Total:    len(st.Messages),
		Error:    st.Error,
	})
}

// Delete handles DELETE /admin/messages/{id}.
func (h *MessagesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	res := h.store.DeleteMessage(r.Context(), id)
	AuditLog(h.log, r, "message.delete", id, res.Success, res.Error)
	if !res.Success {
		h.notices.Show(SectionMessages, notice.Error, res.Error)
		writeResult(w, res)
		return
	}
	h.notices.Show(SectionMessages, notice.Success, "Message deleted")
	writeJSON(w, http.StatusOK, res)
}

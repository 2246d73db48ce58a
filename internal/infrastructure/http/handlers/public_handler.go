package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/amirhosseinghanipour/folio/internal/application/forms"
	"github.com/amirhosseinghanipour/folio/internal/application/listing"
	"github.com/amirhosseinghanipour/folio/internal/application/ports"
	"github.com/amirhosseinghanipour/folio/internal/application/store"
	"github.com/amirhosseinghanipour/folio/internal/domain"
)

// PublicHandler serves the visitor pages under /api. Page content is read through an
// anonymous gateway; projects come from the shared store.
type PublicHandler struct {
	store    *store.Store
	content  ports.ContentGateway
	validate *validator.Validate
	log      zerolog.Logger
}

func NewPublicHandler(s *store.Store, content ports.ContentGateway, validate *validator.Validate, log zerolog.Logger) *PublicHandler {
	return &PublicHandler{store: s, content: content, validate: validate, log: log}
}

// projectsView is the project grid: the filtered list plus what the filter bar needs.
type projectsView struct {
	Projects   []domain.Project `json:"projects"`
	Categories []string         `json:"categories"`
	Category   string           `json:"category"`
	Query      string           `json:"q,omitempty"`
	Loading    bool             `json:"loading"`
	Error      string           `json:"error,omitempty"`
}

func buildProjectsView(st store.State, r *http.Request) projectsView {
	category := r.URL.Query().Get("category")
	if category == "" {
		category = listing.AllCategories
	}
	q := r.URL.Query().Get("q")
	return projectsView{
		Projects:   listing.FilterProjects(st.Projects, category, q),
		Categories: listing.Categories(st.Projects),
		Category:   category,
		Query:      q,
		Loading:    st.Loading,
		Error:      st.Error,
	}
}

// Home handles GET /api/home.
func (h *PublicHandler) Home(w http.ResponseWriter, r *http.Request) {
	home, err := h.content.GetHome(r.Context())
	if err != nil {
		writeFailure(w, h.log, err, "get home failed")
		return
	}
	if home.Skills == nil {
		home.Skills = []string{}
	}
	writeJSON(w, http.StatusOK, home)
}

// About handles GET /api/about.
func (h *PublicHandler) About(w http.ResponseWriter, r *http.Request) {
	about, err := h.content.GetAbout(r.Context())
	if err != nil {
		writeFailure(w, h.log, err, "get about failed")
		return
	}
	writeJSON(w, http.StatusOK, about)
}

// Skills handles GET /api/skills.
func (h *PublicHandler) Skills(w http.ResponseWriter, r *http.Request) {
	skills, err := h.content.ListSkills(r.Context())
	if err != nil {
		writeFailure(w, h.log, err, "list skills failed")
		return
	}
	writeJSON(w, http.StatusOK, skills)
}

// Projects handles GET /api/projects?category=&q=.
func (h *PublicHandler) Projects(w http.ResponseWriter, r *http.Request) {
	st := h.store.Snapshot()
	view := buildProjectsView(st, r)
	view.Error = st.ProjectsError()
	writeJSON(w, http.StatusOK, view)
}

// Project handles GET /api/projects/{id}.
func (h *PublicHandler) Project(w http.ResponseWriter, r *http.Request) {
	p, ok := listing.FindProject(h.store.Snapshot().Projects, chi.URLParam(r, "id"))
	if !ok {
		writeErr(w, http.StatusNotFound, "", "project not found")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// RateProject handles POST /api/projects/{id}/rate. Body: { "rating": 1..5 }.
func (h *PublicHandler) RateProject(w http.ResponseWriter, r *http.Request) {
	if _, ok := rateProject(w, r, h.store, h.validate); ok {
		AuditLog(h.log, r, "project.rate", chi.URLParam(r, "id"), true, "")
	}
}

// rateProject validates the rating, sends it through the store and responds with the
// recomputed project. It reports whether the rating was accepted.
func rateProject(w http.ResponseWriter, r *http.Request, s *store.Store, validate *validator.Validate) (store.Result, bool) {
	id := chi.URLParam(r, "id")
	var body ratingInput
	if err := decodeJSON(r, &body); err != nil {
		writeErr(w, http.StatusBadRequest, "", "invalid body")
		return store.Result{}, false
	}
	if err := forms.Check(validate, body); err != nil {
		writeErr(w, http.StatusUnprocessableEntity, "", err.Error())
		return store.Result{}, false
	}
	res := s.RateProject(r.Context(), id, body.Rating)
	if !res.Success {
		writeResult(w, res)
		return res, false
	}
	if p, ok := listing.FindProject(s.Snapshot().Projects, id); ok {
		writeJSON(w, http.StatusOK, p)
	} else {
		writeJSON(w, http.StatusOK, res)
	}
	return res, true
}

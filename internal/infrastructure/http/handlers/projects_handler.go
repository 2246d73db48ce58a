package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/amirhosseinghanipour/folio/internal/application/forms"
	"github.com/amirhosseinghanipour/folio/internal/application/notice"
	"github.com/amirhosseinghanipour/folio/internal/application/store"
	"github.com/amirhosseinghanipour/folio/internal/domain"
)

// Admin sections that carry a notice banner.
const (
	SectionProjects = "projects"
	SectionMessages = "messages"
	SectionHome     = "home"
	SectionAbout    = "about"
	SectionSkills   = "skills"
)

// ProjectsHandler handles /admin/projects and /admin/refresh.
type ProjectsHandler struct {
	store    *store.Store
	notices  *notice.Board
	validate *validator.Validate
	log      zerolog.Logger
}

func NewProjectsHandler(s *store.Store, notices *notice.Board, validate *validator.Validate, log zerolog.Logger) *ProjectsHandler {
	return &ProjectsHandler{store: s, notices: notices, validate: validate, log: log}
}

// List handles GET /admin/projects?category=&q=.
func (h *ProjectsHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, buildProjectsView(h.store.Snapshot(), r))
}

// Create handles POST /admin/projects (multipart: title, description, technologies, github, liveDemo, image).
func (h *ProjectsHandler) Create(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(r); err != nil {
		writeErr(w, http.StatusBadRequest, "", "invalid form")
		return
	}
	image, err := formUpload(r, "image")
	if err != nil {
		writeFailure(w, h.log, err, "read project image failed")
		return
	}
	input := domain.NewProject{
		Title:        r.FormValue("title"),
		Description:  r.FormValue("description"),
		Technologies: r.FormValue("technologies"),
		GitHub:       r.FormValue("github"),
		LiveDemo:     r.FormValue("liveDemo"),
		Image:        image,
	}
	if err := forms.Check(h.validate, input); err != nil {
		h.notices.Show(SectionProjects, notice.Error, err.Error())
		writeErr(w, http.StatusUnprocessableEntity, "", err.Error())
		return
	}
	res := h.store.AddProject(r.Context(), input)
	AuditLog(h.log, r, "project.create", input.Title, res.Success, res.Error)
	if !res.Success {
		h.notices.Show(SectionProjects, notice.Error, res.Error)
		writeResult(w, res)
		return
	}
	h.notices.Show(SectionProjects, notice.Success, "Project added")
	writeJSON(w, http.StatusCreated, res)
}

// Delete handles DELETE /admin/projects/{id}.
func (h *ProjectsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	res := h.store.DeleteProject(r.Context(), id)
	AuditLog(h.log, r, "project.delete", id, res.Success, res.Error)
	if !res.Success {
		h.notices.Show(SectionProjects, notice.Error, res.Error)
		writeResult(w, res)
		return
	}
	h.notices.Show(SectionProjects, notice.Success, "Project deleted")
	writeJSON(w, http.StatusOK, res)
}

// Rate handles POST /admin/projects/{id}/rate. Body: { "rating": 1..5 }.
func (h *ProjectsHandler) Rate(w http.ResponseWriter, r *http.Request) {
	res, ok := rateProject(w, r, h.store, h.validate)
	if ok {
		h.notices.Show(SectionProjects, notice.Success, "Rating recorded")
	} else if res.Error != "" {
		h.notices.Show(SectionProjects, notice.Error, res.Error)
	}
}

// Refresh handles POST /admin/refresh: re-runs both collection fetches and returns the new state.
func (h *ProjectsHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var projects, messages store.Result
	var g errgroup.Group
	g.Go(func() error {
		projects = h.store.FetchProjects(r.Context())
		return nil
	})
	g.Go(func() error {
		messages = h.store.FetchMessages(r.Context())
		return nil
	})
	_ = g.Wait()
	switch {
	case !projects.Success:
		writeResult(w, projects)
	case !messages.Success:
		writeResult(w, messages)
	default:
		writeJSON(w, http.StatusOK, h.store.Snapshot())
	}
}

// DismissError handles DELETE /admin/error.
func (h *ProjectsHandler) DismissError(w http.ResponseWriter, r *http.Request) {
	h.store.ClearError()
	writeJSON(w, http.StatusOK, h.store.Snapshot())
}

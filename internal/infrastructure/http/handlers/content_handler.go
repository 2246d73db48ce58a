package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/amirhosseinghanipour/folio/internal/application/content"
	"github.com/amirhosseinghanipour/folio/internal/application/notice"
	"github.com/amirhosseinghanipour/folio/internal/application/ports"
	"github.com/amirhosseinghanipour/folio/internal/domain"
)

// ContentHandler handles the admin home, about and skills sections.
type ContentHandler struct {
	content  ports.ContentGateway
	saveHome *content.SaveHome
	about    *content.AboutEditor
	addSkill *content.AddSkill
	uploadCV *content.UploadCV
	notices  *notice.Board
	log      zerolog.Logger
}

func NewContentHandler(gateway ports.ContentGateway, saveHome *content.SaveHome, about *content.AboutEditor, addSkill *content.AddSkill, uploadCV *content.UploadCV, notices *notice.Board, log zerolog.Logger) *ContentHandler {
	return &ContentHandler{
		content:  gateway,
		saveHome: saveHome,
		about:    about,
		addSkill: addSkill,
		uploadCV: uploadCV,
		notices:  notices,
		log:      log,
	}
}

// finish records the outcome on the section banner and audit log, then responds.
func (h *ContentHandler) finish(w http.ResponseWriter, r *http.Request, section, event, okMsg string, err error, v interface{}) {
	if err != nil {
		AuditLog(h.log, r, event, "", false, err.Error())
		h.notices.Show(section, notice.Error, err.Error())
		writeFailure(w, h.log, err, event+" failed")
		return
	}
	AuditLog(h.log, r, event, "", true, "")
	h.notices.Show(section, notice.Success, okMsg)
	writeJSON(w, http.StatusOK, v)
}

// GetHome handles GET /admin/home.
func (h *ContentHandler) GetHome(w http.ResponseWriter, r *http.Request) {
	home, err := h.content.GetHome(r.Context())
	if err != nil {
		writeFailure(w, h.log, err, "get home failed")
		return
	}
	writeJSON(w, http.StatusOK, home)
}

// SaveHome handles POST /admin/home (multipart: title, subtitle, description, skills, image).
func (h *ContentHandler) SaveHome(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(r); err != nil {
		writeErr(w, http.StatusBadRequest, "", "invalid form")
		return
	}
	image, err := formUpload(r, "image")
	if err != nil {
		writeFailure(w, h.log, err, "read home image failed")
		return
	}
	err = h.saveHome.Execute(r.Context(), domain.HomeForm{
		Title:       r.FormValue("title"),
		Subtitle:    r.FormValue("subtitle"),
		Description: r.FormValue("description"),
		Skills:      r.FormValue("skills"),
		Image:       image,
	})
	h.finish(w, r, SectionHome, "home.save", "Home content saved", err, map[string]bool{"success": true})
}

// GetAbout handles GET /admin/about: reloads the stored document into the draft.
func (h *ContentHandler) GetAbout(w http.ResponseWriter, r *http.Request) {
	about, err := h.about.Load(r.Context())
	if err != nil {
		writeFailure(w, h.log, err, "load about failed")
		return
	}
	writeJSON(w, http.StatusOK, about)
}

// AboutDraft handles GET /admin/about/draft.
func (h *ContentHandler) AboutDraft(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.about.Draft())
}

// SetAboutText handles PUT /admin/about/draft. Body: { title, intro, details, contact }.
func (h *ContentHandler) SetAboutText(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Title   string         `json:"title"`
		Intro   string         `json:"intro"`
		Details string         `json:"details"`
		Contact domain.Contact `json:"contact"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeErr(w, http.StatusBadRequest, "", "invalid body")
		return
	}
	writeJSON(w, http.StatusOK, h.about.SetText(body.Title, body.Intro, body.Details, body.Contact))
}

// AddExperience handles POST /admin/about/experiences.
func (h *ContentHandler) AddExperience(w http.ResponseWriter, r *http.Request) {
	h.putExperience(w, r, -1)
}

// UpdateExperience handles PUT /admin/about/experiences/{index}.
func (h *ContentHandler) UpdateExperience(w http.ResponseWriter, r *http.Request) {
	index, err := pathIndex(chi.URLParam(r, "index"))
	if err != nil {
		writeFailure(w, h.log, err, "")
		return
	}
	h.putExperience(w, r, index)
}

func (h *ContentHandler) putExperience(w http.ResponseWriter, r *http.Request, index int) {
	var exp domain.Experience
	if err := decodeJSON(r, &exp); err != nil {
		writeErr(w, http.StatusBadRequest, "", "invalid body")
		return
	}
	draft, err := h.about.PutExperience(exp, index)
	if err != nil {
		writeFailure(w, h.log, err, "put experience failed")
		return
	}
	writeJSON(w, http.StatusOK, draft)
}

// RemoveExperience handles DELETE /admin/about/experiences/{index}.
func (h *ContentHandler) RemoveExperience(w http.ResponseWriter, r *http.Request) {
	index, err := pathIndex(chi.URLParam(r, "index"))
	if err != nil {
		writeFailure(w, h.log, err, "")
		return
	}
	draft, err := h.about.RemoveExperience(index)
	if err != nil {
		writeFailure(w, h.log, err, "remove experience failed")
		return
	}
	writeJSON(w, http.StatusOK, draft)
}

// AddAboutSkill handles POST /admin/about/skills/{group}. Body: { "skill": "React" }.
func (h *ContentHandler) AddAboutSkill(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Skill string `json:"skill"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeErr(w, http.StatusBadRequest, "", "invalid body")
		return
	}
	draft, err := h.about.AddSkill(chi.URLParam(r, "group"), body.Skill)
	if err != nil {
		writeFailure(w, h.log, err, "add about skill failed")
		return
	}
	writeJSON(w, http.StatusOK, draft)
}

// RemoveAboutSkill handles DELETE /admin/about/skills/{group}/{index}.
func (h *ContentHandler) RemoveAboutSkill(w http.ResponseWriter, r *http.Request) {
	index, err := pathIndex(chi.URLParam(r, "index"))
	if err != nil {
		writeFailure(w, h.log, err, "")
		return
	}
	draft, err := h.about.RemoveSkill(chi.URLParam(r, "group"), index)
	if err != nil {
		writeFailure(w, h.log, err, "remove about skill failed")
		return
	}
	writeJSON(w, http.StatusOK, draft)
}

// SaveAbout handles POST /admin/about: creates or updates the stored document from the draft.
func (h *ContentHandler) SaveAbout(w http.ResponseWriter, r *http.Request) {
	saved, err := h.about.Save(r.Context())
	h.finish(w, r, SectionAbout, "about.save", "About page saved", err, saved)
}

// ListSkills handles GET /admin/skills.
func (h *ContentHandler) ListSkills(w http.ResponseWriter, r *http.Request) {
	skills, err := h.content.ListSkills(r.Context())
	if err != nil {
		writeFailure(w, h.log, err, "list skills failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"skills": skills, "icons": domain.SkillIcons})
}

// AddSkill handles POST /admin/skills. Body: { "name", "icon" }.
func (h *ContentHandler) AddSkill(w http.ResponseWriter, r *http.Request) {
	var skill domain.Skill
	if err := decodeJSON(r, &skill); err != nil {
		writeErr(w, http.StatusBadRequest, "", "invalid body")
		return
	}
	err := h.addSkill.Execute(r.Context(), skill)
	h.finish(w, r, SectionSkills, "skill.add", "Skill added", err, map[string]bool{"success": true})
}

// UploadCV handles POST /admin/skills/cv (multipart: cv).
func (h *ContentHandler) UploadCV(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(r); err != nil {
		writeErr(w, http.StatusBadRequest, "", "invalid form")
		return
	}
	cv, err := formUpload(r, "cv")
	if err != nil {
		writeFailure(w, h.log, err, "read cv failed")
		return
	}
	if cv == nil {
		cv = &domain.Upload{}
	}
	err = h.uploadCV.Execute(r.Context(), *cv)
	h.finish(w, r, SectionSkills, "cv.upload", "CV uploaded", err, map[string]bool{"success": true})
}

package content

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/amirhosseinghanipour/folio/internal/application/forms"
	"github.com/amirhosseinghanipour/folio/internal/application/ports"
	"github.com/amirhosseinghanipour/folio/internal/domain"
)

// Skill groups on the about page.
const (
	FrontendSkills = "frontend"
	BackendSkills  = "backend"
)

// AboutEditor holds the admin's working copy of the about page. Experience and skill edits
// change only the draft; Save sends the whole document and adopts the server's reply.
type AboutEditor struct {
	content  ports.ContentGateway
	validate *validator.Validate

	mu    sync.Mutex
	draft domain.About
}

func NewAboutEditor(content ports.ContentGateway, validate *validator.Validate) *AboutEditor {
	return &AboutEditor{content: content, validate: validate, draft: emptyAbout()}
}

func emptyAbout() domain.About {
	return domain.About{FrontendSkills: []string{}, BackendSkills: []string{}, Experiences: []domain.Experience{}}
}

// Load replaces the draft with the stored document.
func (e *AboutEditor) Load(ctx context.Context) (domain.About, error) {
	about, err := e.content.GetAbout(ctx)
	if err != nil {
		return domain.About{}, fmt.Errorf("load about: %w", err)
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.draft = normalize(*about)
	return e.copyDraft(), nil
}

// Draft returns a copy of the working document.
func (e *AboutEditor) Draft() domain.About {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.copyDraft()
}

// SetText replaces the free-text fields and contact details, keeping lists and id.
func (e *AboutEditor) SetText(title, intro, details string, contact domain.Contact) domain.About {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.draft.Title = title
	e.draft.Intro = intro
	e.draft.Details = details
	e.draft.Contact = contact
	return e.copyDraft()
}

// PutExperience appends exp, or replaces the entry at index when index >= 0.
func (e *AboutEditor) PutExperience(exp domain.Experience, index int) (domain.About, error) {
	exp.Company = strings.TrimSpace(exp.Company)
	exp.Role = strings.TrimSpace(exp.Role)
	if err := forms.Check(e.validate, exp); err != nil {
		return domain.About{}, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if index >= 0 {
		if index >= len(e.draft.Experiences) {
			return domain.About{}, forms.Invalid("experience index out of range")
		}
		e.draft.Experiences[index] = exp
	} else {
		e.draft.Experiences = append(e.draft.Experiences, exp)
	}
	return e.copyDraft(), nil
}

func (e *AboutEditor) RemoveExperience(index int) (domain.About, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if index < 0 || index >= len(e.draft.Experiences) {
		return domain.About{}, forms.Invalid("experience index out of range")
	}
	e.draft.Experiences = append(e.draft.Experiences[:index:index], e.draft.Experiences[index+1:]...)
	return e.copyDraft(), nil
}

// AddSkill appends a trimmed skill to the frontend or backend group. Blank skills are ignored.
func (e *AboutEditor) AddSkill(group, skill string) (domain.About, error) {
	skill = strings.TrimSpace(skill)
	e.mu.Lock()
	defer e.mu.Unlock()
	list, err := e.group(group)
	if err != nil {
		return domain.About{}, err
	}
	if skill != "" {
		*list = append(*list, skill)
	}
	return e.copyDraft(), nil
}

func (e *AboutEditor) RemoveSkill(group string, index int) (domain.About, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	list, err := e.group(group)
	if err != nil {
		return domain.About{}, err
	}
	if index < 0 || index >= len(*list) {
		return domain.About{}, forms.Invalid("skill index out of range")
	}
	*list = append((*list)[:index:index], (*list)[index+1:]...)
	return e.copyDraft(), nil
}

// Save creates or updates the document and replaces the draft with the saved version.
func (e *AboutEditor) Save(ctx context.Context) (domain.About, error) {
	draft := e.Draft()
	saved, err := e.content.SaveAbout(ctx, draft)
	if err != nil {
		return domain.About{}, fmt.Errorf("save about: %w", err)
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.draft = normalize(*saved)
	return e.copyDraft(), nil
}

func (e *AboutEditor) group(name string) (*[]string, error) {
	switch name {
	case FrontendSkills:
		return &e.draft.FrontendSkills, nil
	case BackendSkills:
		return &e.draft.BackendSkills, nil
	}
	return nil, forms.Invalid("unknown skill group " + name)
}

func (e *AboutEditor) copyDraft() domain.About {
	out := e.draft
	out.FrontendSkills = append([]string{}, e.draft.FrontendSkills...)
	out.BackendSkills = append([]string{}, e.draft.BackendSkills...)
	out.Experiences = append([]domain.Experience{}, e.draft.Experiences...)
	return out
}

func normalize(a domain.About) domain.About {
	if a.FrontendSkills == nil {
		a.FrontendSkills = []string{}
	}
	if a.BackendSkills == nil {
		a.BackendSkills = []string{}
	}
	if a.Experiences == nil {
		a.Experiences = []domain.Experience{}
	}
	return a
}

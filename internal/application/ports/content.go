package ports

import (
	"context"

	"github.com/amirhosseinghanipour/folio/internal/domain"
)

// ProjectGateway defines the project endpoints of the content API.
type ProjectGateway interface {
	ListProjects(ctx context.Context) ([]domain.Project, error)
	CreateProject(ctx context.Context, input domain.NewProject) (*domain.Project, error)
	DeleteProject(ctx context.Context, id string) error
	// RateProject submits one vote and returns the server-recomputed project.
	RateProject(ctx context.Context, id string, rating float64) (*domain.Project, error)
}

// MessageGateway defines the authenticated message endpoints.
type MessageGateway interface {
	ListMessages(ctx context.Context) ([]domain.Message, error)
	DeleteMessage(ctx context.Context, id string) error
}

// ContentGateway defines the page-content endpoints (home, about, skills, CV).
type ContentGateway interface {
	GetHome(ctx context.Context) (*domain.Home, error)
	SaveHome(ctx context.Context, form domain.HomeForm) error
	GetAbout(ctx context.Context) (*domain.About, error)
	// SaveAbout creates the document when about.ID is empty and updates it otherwise.
	SaveAbout(ctx context.Context, about domain.About) (*domain.About, error)
	ListSkills(ctx context.Context) ([]domain.Skill, error)
	AddSkill(ctx context.Context, skill domain.Skill) error
	UploadCV(ctx context.Context, cv domain.Upload) error
}

// AuthGateway defines the registration and login endpoints. Both return a bearer token.
type AuthGateway interface {
	Register(ctx context.Context, creds domain.Credentials) (string, error)
	Login(ctx context.Context, creds domain.Credentials) (string, error)
}

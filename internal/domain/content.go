package domain

import "time"

// Home is the landing-page hero block.
type Home struct {
	Title       string   `json:"title"`
	Subtitle    string   `json:"subtitle"`
	Description string   `json:"description"`
	Skills      []string `json:"skills"`
	ImageURL    string   `json:"imageUrl,omitempty"`
}

// HomeForm is the admin edit form for Home. Skills is comma-separated.
type HomeForm struct {
	Title       string  `validate:"required"`
	Subtitle    string  `validate:"required"`
	Description string
	Skills      string
	Image       *Upload `validate:"-"`
}

// Experience is one entry on the about page timeline.
type Experience struct {
	Company     string `json:"company" validate:"required"`
	Role        string `json:"role" validate:"required"`
	Period      string `json:"period"`
	Description string `json:"description"`
}

// Contact holds the public contact details shown on the about page.
type Contact struct {
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
}

// About is the about page document. ID is empty until the document has been created.
type About struct {
	ID             string       `json:"_id,omitempty"`
	Title          string       `json:"title"`
	Intro          string       `json:"intro"`
	Details        string       `json:"details"`
	FrontendSkills []string     `json:"frontendSkills"`
	BackendSkills  []string     `json:"backendSkills"`
	Experiences    []Experience `json:"experiences"`
	Contact        Contact      `json:"contact"`
}

// Skill is a named skill with an icon key from the icon set.
type Skill struct {
	ID   string `json:"_id,omitempty"`
	Name string `json:"name" validate:"required"`
	Icon string `json:"icon" validate:"required,skillicon"`
}

// SkillIcons lists the icon keys the admin skill form offers.
var SkillIcons = []string{
	"FaReact", "FaPython", "SiJavascript", "SiTypescript", "SiNodedotjs",
	"SiExpress", "SiMongodb", "SiMysql", "SiHtml5", "SiCss3",
}

// Session describes the stored bearer token as far as it can be read without verification.
type Session struct {
	Subject   string     `json:"subject,omitempty"`
	Username  string     `json:"username,omitempty"`
	Role      string     `json:"role,omitempty"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
}

// Expired reports whether the session carries an expiry that has passed.
func (s Session) Expired(now time.Time) bool {
	return s.ExpiresAt != nil && !now.Before(*s.ExpiresAt)
}

// Credentials are the username/password pair sent to the auth endpoints.
type Credentials struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required,min=6"`
}

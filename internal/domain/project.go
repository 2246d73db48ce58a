package domain

// Project is a portfolio entry as served by the content API. ID, Rating and Votes are server-owned.
type Project struct {
	ID           string   `json:"_id"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Technologies []string `json:"technologies"`
	GitHub       string   `json:"github,omitempty"`
	LiveDemo     string   `json:"liveDemo,omitempty"`
	Image        string   `json:"image,omitempty"`
	Rating       float64  `json:"rating"`
	Votes        int      `json:"votes"`
	Category     string   `json:"category,omitempty"`
}

// Upload is a binary file attached to a multipart submission.
type Upload struct {
	Filename string
	Data     []byte
}

// NewProject is the create-project form payload. Technologies stays comma-separated as typed.
type NewProject struct {
	Title        string `validate:"required"`
	Description  string `validate:"required"`
	Technologies string
	GitHub       string
	LiveDemo     string
	Image        *Upload `validate:"-"`
}

package activities

// Activity is one marketing campaign. Ids are backend-assigned UUID strings
// and dates travel as ISO strings, date-only or with a time part.
type Activity struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Subtitle     string `json:"subtitle"`
	Description  string `json:"description"`
	CoverImage   string `json:"coverImage"`
	Poster       string `json:"poster"`
	StartDate    string `json:"startDate"`
	EndDate      string `json:"endDate"`
	Status       string `json:"status"`
	Type         string `json:"type"`
	Participants int    `json:"participants"`
	ClickCount   int    `json:"clickCount"`
}

// SaveActivityInput is the create/update payload. Participants and click
// counts are server-owned and never sent.
type SaveActivityInput struct {
	Title       string `json:"title" validate:"required"`
	Subtitle    string `json:"subtitle,omitempty"`
	Description string `json:"description,omitempty"`
	CoverImage  string `json:"coverImage,omitempty"`
	Poster      string `json:"poster,omitempty"`
	StartDate   string `json:"startDate" validate:"required"`
	EndDate     string `json:"endDate" validate:"required"`
	Status      string `json:"status,omitempty"`
	Type        string `json:"type,omitempty"`
}

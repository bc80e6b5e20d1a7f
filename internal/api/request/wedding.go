package request

// CreateWedding creates a wedding site. Slug is optional; when omitted one
// is derived from the couple names with a random suffix.
type CreateWedding struct {
	Slug        string `json:"slug" validate:"omitempty,slug"`
	CoupleNames string `json:"couple_names" validate:"required,max=200"`
}

package request

// AttachCustomDomain carries the raw domain the admin typed. Normalization
// and hostname validation happen in core, which tolerates schemes, paths,
// and trailing dots rather than rejecting them here.
type AttachCustomDomain struct {
	Domain string `json:"domain" validate:"required"`
}

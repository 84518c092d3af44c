package models

// ReplySection is one labeled block of a rich reply. Sections render in
// slice order; some listings carry one section per external sub-item and
// their order is the external API's return order.
type ReplySection struct {
	Label  string
	Body   string
	Inline bool
}

// ReplyPayload is the platform-agnostic rich reply. Everything is optional,
// but a payload with neither title nor description is not worth sending
// rich.
type ReplyPayload struct {
	Title        string
	Description  string
	URL          string
	ThumbnailURL string
	ImageURL     string
	Sections     []ReplySection
	Author       string
	AuthorIcon   string
	Footer       string
	Color        int
}

// IsRenderable reports whether the payload carries enough content for a
// non-degraded reply.
func (p *ReplyPayload) IsRenderable() bool {
	return p != nil && (p.Title != "" || p.Description != "")
}

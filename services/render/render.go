package render

import (
	"regexp"

	"mubot/models"
)

// fieldToken matches {field} references inside template strings.
var fieldToken = regexp.MustCompile(`\{([a-zA-Z0-9_]+)\}`)

// SectionTemplate describes one labeled section of a reply. Label and Body
// may reference record fields with {field} tokens; a missing field renders
// as the record's "not available" sentinel.
type SectionTemplate struct {
	Label  string
	Body   string
	Inline bool
}

// Template describes how one domain's DisplayRecord maps onto a reply
// payload. Text slots (Title, Description, section labels/bodies, Footer,
// Author) render missing fields as the sentinel; link slots (URL,
// Thumbnail, Image, AuthorIcon) are omitted entirely when any referenced
// field is missing, since a placeholder is not a usable link.
type Template struct {
	Title       string
	Description string
	URL         string
	Thumbnail   string
	Image       string
	Author      string
	AuthorIcon  string
	Footer      string
	Color       int
	Sections    []SectionTemplate
}

// Render is a pure transformation of a display record into a reply payload.
// Section order follows the template exactly.
func Render(record *models.DisplayRecord, tmpl Template) *models.ReplyPayload {
	payload := &models.ReplyPayload{
		Title:        expandText(record, tmpl.Title),
		Description:  expandText(record, tmpl.Description),
		URL:          expandLink(record, tmpl.URL),
		ThumbnailURL: expandLink(record, tmpl.Thumbnail),
		ImageURL:     expandLink(record, tmpl.Image),
		Author:       expandText(record, tmpl.Author),
		AuthorIcon:   expandLink(record, tmpl.AuthorIcon),
		Footer:       expandText(record, tmpl.Footer),
		Color:        tmpl.Color,
	}

	for _, section := range tmpl.Sections {
		payload.Sections = append(payload.Sections, models.ReplySection{
			Label:  expandText(record, section.Label),
			Body:   expandText(record, section.Body),
			Inline: section.Inline,
		})
	}

	return payload
}

// RenderItems renders a summary record through the template, then appends
// one section per item record, preserving item order. Listings like the
// near-earth-object feed depend on the external API's return order, so no
// sorting happens here.
func RenderItems(
	summary *models.DisplayRecord,
	items []*models.DisplayRecord,
	tmpl Template,
	item SectionTemplate,
) *models.ReplyPayload {
	payload := Render(summary, tmpl)

	for _, record := range items {
		payload.Sections = append(payload.Sections, models.ReplySection{
			Label:  expandText(record, item.Label),
			Body:   expandText(record, item.Body),
			Inline: item.Inline,
		})
	}

	return payload
}

// expandText replaces {field} tokens with record values; missing fields
// read as the sentinel.
func expandText(record *models.DisplayRecord, pattern string) string {
	if pattern == "" {
		return ""
	}
	return fieldToken.ReplaceAllStringFunc(pattern, func(token string) string {
		field := token[1 : len(token)-1]
		return record.Get(field)
	})
}

// expandLink replaces {field} tokens but yields "" when any referenced
// field is missing.
func expandLink(record *models.DisplayRecord, pattern string) string {
	if pattern == "" {
		return ""
	}
	complete := true
	expanded := fieldToken.ReplaceAllStringFunc(pattern, func(token string) string {
		field := token[1 : len(token)-1]
		if !record.Has(field) {
			complete = false
			return ""
		}
		return record.Get(field)
	})
	if !complete {
		return ""
	}
	return expanded
}

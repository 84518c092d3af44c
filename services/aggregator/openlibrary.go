package aggregator

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strings"

	"mubot/core"
	"mubot/models"
	"mubot/utils"
)

const openLibraryBase = "https://openlibrary.org"

// LookupBook searches Open Library for a book title and normalizes the
// best match.
func (s *AggregatorService) LookupBook(ctx context.Context, title string) (*models.DisplayRecord, error) {
	log.Printf("📋 Starting book lookup for: %s", title)

	query := strings.ReplaceAll(url.QueryEscape(title), "%20", "+")
	lookupURL := fmt.Sprintf(
		"%s/search.json?q=%s&fields=title,author_name,first_publish_year,number_of_pages_median,edition_count,cover_i,key&limit=1",
		openLibraryBase, query,
	)
	response, err := s.httpClient.GetJSON(ctx, lookupURL)
	if err != nil {
		return nil, fmt.Errorf("book lookup failed: %w", err)
	}

	maybeBook := firstResult(response, []any{"docs"})
	if !maybeBook.IsPresent() {
		return nil, fmt.Errorf("no book matched %q: %w", title, core.ErrNoMatch)
	}
	book := maybeBook.MustGet()

	fallback := models.NotAvailable
	record := models.NewDisplayRecord()
	record.Set("title", utils.Extract(book, []any{"title"}, fallback))
	record.Set("author", utils.Extract(book, []any{"author_name", 0}, fallback))
	record.Set("publish_year", utils.Extract(book, []any{"first_publish_year"}, fallback))
	record.Set("pages", utils.Extract(book, []any{"number_of_pages_median"}, fallback))
	record.Set("editions", utils.Extract(book, []any{"edition_count"}, fallback))

	if key := utils.Extract(book, []any{"key"}, ""); key != "" {
		record.Set("book_url", fmt.Sprintf("%s%s/", openLibraryBase, key))
	}
	if coverID := utils.Extract(book, []any{"cover_i"}, ""); coverID != "" {
		record.Set("cover_url", fmt.Sprintf("https://covers.openlibrary.org/b/ID/%s-L.jpg", coverID))
	}

	log.Printf("✅ Book lookup completed for %s", record.Get("title"))
	return record, nil
}

// LookupAuthor resolves an author through Open Library's author search,
// then fetches the author's profile. The dependent call happens only after
// the search resolves; a transport failure at either stage fails the
// invocation.
func (s *AggregatorService) LookupAuthor(ctx context.Context, name string) (*models.DisplayRecord, error) {
	log.Printf("📋 Starting author lookup for: %s", name)

	searchURL := fmt.Sprintf("%s/search/authors.json?q=%s", openLibraryBase, url.QueryEscape(name))
	searchResponse, err := s.httpClient.GetJSON(ctx, searchURL)
	if err != nil {
		return nil, fmt.Errorf("author search failed: %w", err)
	}

	maybeAuthor := firstResult(searchResponse, []any{"docs"})
	if !maybeAuthor.IsPresent() {
		return nil, fmt.Errorf("no author matched %q: %w", name, core.ErrNoMatch)
	}
	match := maybeAuthor.MustGet()

	key := utils.Extract(match, []any{"key"}, "")
	if key == "" {
		return nil, fmt.Errorf("author match for %q has no key: %w", name, core.ErrNoMatch)
	}

	profileURL := fmt.Sprintf("%s/authors/%s.json", openLibraryBase, url.PathEscape(key))
	profile, err := s.httpClient.GetJSON(ctx, profileURL)
	if err != nil {
		return nil, fmt.Errorf("author profile fetch failed: %w", err)
	}

	fallback := models.NotAvailable
	record := models.NewDisplayRecord()
	record.Set("name", utils.Extract(match, []any{"name"}, fallback))
	record.Set("birth_date", utils.Extract(profile, []any{"birth_date"}, fallback))
	record.Set("death_date", utils.Extract(profile, []any{"death_date"}, ""))
	record.Set("top_work", utils.Extract(match, []any{"top_work"}, fallback))
	record.Set("work_count", utils.Extract(match, []any{"work_count"}, fallback))

	// bio is either a bare string or a typed {type, value} object
	bio := utils.Extract(profile, []any{"bio"}, "")
	if bio == "" {
		bio = utils.Extract(profile, []any{"bio", "value"}, fallback)
	}
	record.Set("bio", bio)
	record.Set("author_url", fmt.Sprintf("%s/authors/%s/", openLibraryBase, key))

	log.Printf("✅ Author lookup completed for %s", record.Get("name"))
	return record, nil
}

// LookupSubject fetches Open Library's subject listing and returns a
// summary record plus one record per work, in the listing's return order.
func (s *AggregatorService) LookupSubject(
	ctx context.Context,
	name string,
) (*models.DisplayRecord, []*models.DisplayRecord, error) {
	log.Printf("📋 Starting subject lookup for: %s", name)

	slug := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(name), " ", "_"))
	lookupURL := fmt.Sprintf("%s/subjects/%s.json?limit=10", openLibraryBase, url.PathEscape(slug))
	response, err := s.httpClient.GetJSON(ctx, lookupURL)
	if err != nil {
		return nil, nil, fmt.Errorf("subject lookup failed: %w", err)
	}

	worksValue, ok := utils.Lookup(response, []any{"works"})
	works, isList := worksValue.([]any)
	if !ok || !isList || len(works) == 0 {
		return nil, nil, fmt.Errorf("no works found for subject %q: %w", name, core.ErrNoMatch)
	}

	fallback := models.NotAvailable
	summary := models.NewDisplayRecord()
	summary.Set("subject", utils.Extract(response, []any{"name"}, name))
	summary.Set("work_count", utils.Extract(response, []any{"work_count"}, fallback))
	summary.Set("subject_url", fmt.Sprintf("%s/subjects/%s", openLibraryBase, slug))

	var items []*models.DisplayRecord
	for _, work := range works {
		item := models.NewDisplayRecord()
		item.Set("work_title", utils.Extract(work, []any{"title"}, fallback))
		item.Set("work_author", utils.Extract(work, []any{"authors", 0, "name"}, fallback))
		item.Set("work_year", utils.Extract(work, []any{"first_publish_year"}, fallback))
		items = append(items, item)
	}

	log.Printf("✅ Subject lookup completed for %s with %d works", name, len(items))
	return summary, items, nil
}

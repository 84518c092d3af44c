package aggregator

import (
	"context"
	"fmt"
	"log"
	"net/url"

	"mubot/core"
	"mubot/models"
	"mubot/utils"
)

const imdbAPIBase = "https://imdb-api.com/en/API"

// LookupMovie resolves a movie through the IMDb search endpoint, then
// fetches its full title record. The dependent call happens only after the
// search resolves. The provider reports quota exhaustion with a null
// result list and an error message, which surfaces as a transport failure.
func (s *AggregatorService) LookupMovie(ctx context.Context, name string) (*models.DisplayRecord, error) {
	log.Printf("📋 Starting movie lookup for: %s", name)

	searchURL := fmt.Sprintf("%s/SearchMovie/%s/%s", imdbAPIBase, s.imdbAPIKey, url.PathEscape(name))
	searchResponse, err := s.httpClient.GetJSON(ctx, searchURL)
	if err != nil {
		return nil, fmt.Errorf("movie search failed: %w", err)
	}

	maybeMatch := firstResult(searchResponse, []any{"results"})
	if !maybeMatch.IsPresent() {
		if message := utils.Extract(searchResponse, []any{"errorMessage"}, ""); message != "" {
			return nil, fmt.Errorf("movie search rejected: %s: %w", message, core.ErrTransport)
		}
		return nil, fmt.Errorf("no movie matched %q: %w", name, core.ErrNoMatch)
	}
	match := maybeMatch.MustGet()

	movieID := utils.Extract(match, []any{"id"}, "")
	if movieID == "" {
		return nil, fmt.Errorf("movie match for %q has no id: %w", name, core.ErrNoMatch)
	}

	titleURL := fmt.Sprintf("%s/Title/%s/%s/Posters,Ratings,Wikipedia", imdbAPIBase, s.imdbAPIKey, movieID)
	titleResponse, err := s.httpClient.GetJSON(ctx, titleURL)
	if err != nil {
		return nil, fmt.Errorf("movie title fetch failed: %w", err)
	}

	title, err := asObject(titleResponse)
	if err != nil {
		return nil, fmt.Errorf("movie title fetch returned %w", err)
	}

	fallback := models.NotAvailable
	record := models.NewDisplayRecord()
	record.Set("full_title", utils.Extract(title, []any{"fullTitle"}, fallback))
	record.Set("plot", utils.Extract(title, []any{"plot"}, fallback))
	record.Set("movie_url", fmt.Sprintf("https://www.imdb.com/title/%s/", movieID))

	if posterURL := utils.Extract(title, []any{"posters", "posters", 0, "link"}, ""); posterURL != "" {
		record.Set("poster_url", posterURL)
	}

	record.Set("directors", utils.Extract(title, []any{"directors"}, fallback))
	record.Set("writers", utils.Extract(title, []any{"writers"}, fallback))
	record.Set("stars", utils.Extract(title, []any{"stars"}, fallback))
	record.Set("genres", utils.Extract(title, []any{"genres"}, fallback))

	record.Set("imdb_rating", utils.Extract(title, []any{"ratings", "imDb"}, fallback))
	record.Set("metacritic_rating", utils.Extract(title, []any{"ratings", "metacritic"}, fallback))
	record.Set("rotten_tomatoes_rating", utils.Extract(title, []any{"ratings", "rottenTomatoes"}, fallback))

	record.Set("budget", utils.Extract(title, []any{"boxOffice", "budget"}, fallback))
	record.Set("opening_weekend_usa", utils.Extract(title, []any{"boxOffice", "openingWeekendUSA"}, fallback))
	record.Set("gross_usa", utils.Extract(title, []any{"boxOffice", "grossUSA"}, fallback))
	record.Set("gross_worldwide", utils.Extract(title, []any{"boxOffice", "cumulativeWorldwideGross"}, fallback))

	log.Printf("✅ Movie lookup completed for %s", record.Get("full_title"))
	return record, nil
}

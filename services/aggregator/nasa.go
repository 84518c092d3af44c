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

const nasaAPIBase = "https://api.nasa.gov"

// FetchAPOD fetches NASA's astronomy picture of the day.
func (s *AggregatorService) FetchAPOD(ctx context.Context) (*models.DisplayRecord, error) {
	log.Printf("📋 Starting APOD fetch")

	lookupURL := fmt.Sprintf("%s/planetary/apod?api_key=%s", nasaAPIBase, url.QueryEscape(s.nasaAPIKey))
	response, err := s.httpClient.GetJSON(ctx, lookupURL)
	if err != nil {
		return nil, fmt.Errorf("APOD fetch failed: %w", err)
	}

	apod, err := asObject(response)
	if err != nil {
		return nil, fmt.Errorf("APOD fetch returned %w", err)
	}

	fallback := models.NotAvailable
	record := models.NewDisplayRecord()
	record.Set("title", utils.Extract(apod, []any{"title"}, fallback))
	record.Set("explanation", utils.Extract(apod, []any{"explanation"}, fallback))

	// prefer the high-definition image when the source provides one
	imageURL := utils.Extract(apod, []any{"hdurl"}, "")
	if imageURL == "" {
		imageURL = utils.Extract(apod, []any{"url"}, "")
	}
	if imageURL != "" {
		record.Set("image_url", imageURL)
	}

	record.Set("date", utils.Extract(apod, []any{"date"}, fallback))
	record.Set("copyright", utils.Extract(apod, []any{"copyright"}, ""))

	log.Printf("✅ APOD fetch completed: %s", record.Get("title"))
	return record, nil
}

// FetchNEOFeed fetches today's near-earth objects from NASA's NeoWs feed
// and returns a summary record plus one record per object, in the feed's
// return order. Diameter and velocity round to 2 decimals, miss distance
// to 3.
func (s *AggregatorService) FetchNEOFeed(ctx context.Context) (*models.DisplayRecord, []*models.DisplayRecord, error) {
	log.Printf("📋 Starting NEO feed fetch")

	today := s.now().UTC().Format("2006-01-02")
	lookupURL := fmt.Sprintf(
		"%s/neo/rest/v1/feed?start_date=%s&end_date=%s&api_key=%s",
		nasaAPIBase, today, today, url.QueryEscape(s.nasaAPIKey),
	)
	response, err := s.httpClient.GetJSON(ctx, lookupURL)
	if err != nil {
		return nil, nil, fmt.Errorf("NEO feed fetch failed: %w", err)
	}

	objectsValue, ok := utils.Lookup(response, []any{"near_earth_objects", today})
	objects, isList := objectsValue.([]any)
	if !ok || !isList || len(objects) == 0 {
		return nil, nil, fmt.Errorf("no near-earth objects listed for %s: %w", today, core.ErrNoMatch)
	}

	fallback := models.NotAvailable
	summary := models.NewDisplayRecord()
	summary.Set("date", today)
	summary.Set("count", utils.Extract(response, []any{"element_count"}, fallback))

	var items []*models.DisplayRecord
	for _, object := range objects {
		item := models.NewDisplayRecord()
		item.Set("neo_name", utils.Extract(object, []any{"name"}, fallback))
		item.Set("diameter_min", utils.ExtractDecimal(
			object, []any{"estimated_diameter", "meters", "estimated_diameter_min"}, 2, fallback))
		item.Set("diameter_max", utils.ExtractDecimal(
			object, []any{"estimated_diameter", "meters", "estimated_diameter_max"}, 2, fallback))
		item.Set("velocity", utils.ExtractDecimal(
			object, []any{"close_approach_data", 0, "relative_velocity", "kilometers_per_second"}, 2, fallback))
		item.Set("miss_distance", utils.ExtractDecimal(
			object, []any{"close_approach_data", 0, "miss_distance", "kilometers"}, 3, fallback))
		item.Set("hazardous", utils.ExtractYesNo(
			object, []any{"is_potentially_hazardous_asteroid"}, fallback))
		items = append(items, item)
	}

	log.Printf("✅ NEO feed fetch completed with %d objects", len(items))
	return summary, items, nil
}

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

// LookupCountry queries restcountries.com by name and normalizes the
// first match. Every field the country reply renders is present on the
// returned record, with the placeholder standing in for whatever the
// source omitted.
func (s *AggregatorService) LookupCountry(ctx context.Context, name string) (*models.DisplayRecord, error) {
	log.Printf("📋 Starting country lookup for: %s", name)

	lookupURL := fmt.Sprintf("https://restcountries.com/v3.1/name/%s", url.PathEscape(name))
	response, err := s.httpClient.GetJSON(ctx, lookupURL)
	if err != nil {
		return nil, fmt.Errorf("country lookup failed: %w", err)
	}

	maybeCountry := firstResult(response, []any{})
	if !maybeCountry.IsPresent() {
		return nil, fmt.Errorf("no country matched %q: %w", name, core.ErrNoMatch)
	}
	country := maybeCountry.MustGet()

	fallback := models.NotAvailable
	record := models.NewDisplayRecord()
	record.Set("name", utils.Extract(country, []any{"name", "common"}, fallback))
	record.Set("official_name", utils.Extract(country, []any{"name", "official"}, fallback))

	if mapsURL := utils.Extract(country, []any{"maps", "googleMaps"}, ""); mapsURL != "" {
		record.Set("maps_url", mapsURL)
	}
	if flagURL := utils.Extract(country, []any{"flags", "png"}, ""); flagURL != "" {
		record.Set("flag_url", flagURL)
	}

	record.Set("capital", utils.Extract(country, []any{"capital", 0}, fallback))
	record.Set("subregion", utils.Extract(country, []any{"subregion"}, fallback))

	if area := utils.Extract(country, []any{"area"}, ""); area != "" {
		record.Set("area", area+" km2")
	} else {
		record.Set("area", fallback)
	}

	record.Set("population", utils.Extract(country, []any{"population"}, fallback))
	record.Set("gini", utils.ExtractMapValue(country, []any{"gini"}, fallback))
	record.Set("languages", utils.ExtractJoined(country, []any{"languages"}, fallback))
	record.Set("continents", utils.ExtractJoined(country, []any{"continents"}, fallback))
	record.Set("start_of_week", utils.Extract(country, []any{"startOfWeek"}, fallback))
	record.Set("web_domain", utils.Extract(country, []any{"tld", 0}, fallback))
	record.Set("un_member", utils.ExtractYesNo(country, []any{"unMember"}, fallback))

	log.Printf("✅ Country lookup completed for %s", record.Get("name"))
	return record, nil
}

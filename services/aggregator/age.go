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

// GuessAge asks agify.io for an age estimate for the given first name.
// Names the provider does not recognize come back with a null age, which
// is a NoMatch.
func (s *AggregatorService) GuessAge(ctx context.Context, name string) (*models.DisplayRecord, error) {
	log.Printf("📋 Starting age lookup for name: %s", name)

	lookupURL := fmt.Sprintf("https://api.agify.io/?name=%s", url.QueryEscape(name))
	response, err := s.httpClient.GetJSON(ctx, lookupURL)
	if err != nil {
		return nil, fmt.Errorf("age lookup failed: %w", err)
	}

	ageValue, ok := utils.Lookup(response, []any{"age"})
	if !ok {
		return nil, fmt.Errorf("no age estimate for %q: %w", name, core.ErrNoMatch)
	}

	age, isNumber := ageValue.(float64)
	if !isNumber {
		return nil, fmt.Errorf("no age estimate for %q: %w", name, core.ErrNoMatch)
	}

	ageText := fmt.Sprintf("%d years old.", int(age))
	if int(age) == 1 {
		ageText = "1 year old."
	}

	record := models.NewDisplayRecord()
	record.Set("name", name)
	record.Set("age_text", ageText)

	log.Printf("✅ Age lookup completed for %s", name)
	return record, nil
}

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

// TakeScreenshot asks the screenshot provider to capture the given page
// and returns the capture's URLs.
func (s *AggregatorService) TakeScreenshot(ctx context.Context, pageURL string) (*models.DisplayRecord, error) {
	log.Printf("📋 Starting screenshot capture for: %s", pageURL)

	lookupURL := fmt.Sprintf(
		"https://shot.screenshotapi.net/screenshot?token=%s&url=%s",
		url.QueryEscape(s.screenshotToken), url.QueryEscape(pageURL),
	)
	response, err := s.httpClient.GetJSON(ctx, lookupURL)
	if err != nil {
		return nil, fmt.Errorf("screenshot capture failed: %w", err)
	}

	screenshotURL := utils.Extract(response, []any{"screenshot"}, "")
	if screenshotURL == "" {
		return nil, fmt.Errorf("no screenshot produced for %q: %w", pageURL, core.ErrNoMatch)
	}

	record := models.NewDisplayRecord()
	record.Set("page_url", utils.Extract(response, []any{"url"}, pageURL))
	record.Set("screenshot_url", screenshotURL)

	log.Printf("✅ Screenshot capture completed for %s", pageURL)
	return record, nil
}

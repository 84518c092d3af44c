package aggregator

import (
	"fmt"
	"time"

	"github.com/samber/mo"

	"mubot/clients"
	"mubot/core"
	"mubot/utils"
)

// AggregatorService issues external REST lookups and assembles normalized
// display records. Each record is fully determined by the response
// snapshot it was built from; the service holds no mutable state besides
// its configuration.
type AggregatorService struct {
	httpClient      clients.HTTPDoer
	nasaAPIKey      string
	imdbAPIKey      string
	screenshotToken string

	// now is injectable so date-windowed lookups are deterministic in tests
	now func() time.Time
}

func NewAggregatorService(
	httpClient clients.HTTPDoer,
	nasaAPIKey, imdbAPIKey, screenshotToken string,
) *AggregatorService {
	return &AggregatorService{
		httpClient:      httpClient,
		nasaAPIKey:      nasaAPIKey,
		imdbAPIKey:      imdbAPIKey,
		screenshotToken: screenshotToken,
		now:             time.Now,
	}
}

// firstResult selects the best match of a lookup: the first entry of the
// result list at path. None when the list is absent, empty, or not a list
// of objects.
func firstResult(source any, path []any) mo.Option[map[string]any] {
	value, ok := utils.Lookup(source, path)
	if !ok {
		return mo.None[map[string]any]()
	}
	list, isList := value.([]any)
	if !isList || len(list) == 0 {
		return mo.None[map[string]any]()
	}
	obj, isObj := list[0].(map[string]any)
	if !isObj {
		return mo.None[map[string]any]()
	}
	return mo.Some(obj)
}

// asObject coerces a decoded JSON value to an object; a wrong-shaped top
// level means the provider sent something we cannot extract from.
func asObject(value any) (map[string]any, error) {
	obj, ok := value.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("unexpected top-level response shape: %w", core.ErrTransport)
	}
	return obj, nil
}

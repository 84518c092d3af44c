package services

import (
	"context"

	"mubot/models"
)

// DeliveryService defines the interface for reply delivery with
// permission-based degradation
type DeliveryService interface {
	// Deliver attempts a rich send and degrades to plain text, then to a
	// direct message, on permission rejections. It returns an error only
	// for non-permission transport failures.
	Deliver(ctx context.Context, ev models.MessageEvent, reply *models.Reply) error
}

// RouterService defines the interface for inbound command routing
type RouterService interface {
	// Register adds a command spec to the registry. Registration happens
	// once at startup; duplicate names or aliases are an error.
	Register(spec *models.CommandSpec) error

	// Commands returns a defensive copy of the registered specs.
	Commands() []*models.CommandSpec

	// HandleMessage runs the full invocation pipeline for one inbound
	// event. All failures terminate in a user-facing reply or a logged
	// drop; nothing propagates to the caller.
	HandleMessage(ctx context.Context, ev models.MessageEvent)
}

// AggregatorService defines the interface for per-domain external lookups
// producing normalized display records
type AggregatorService interface {
	GuessAge(ctx context.Context, name string) (*models.DisplayRecord, error)
	LookupCountry(ctx context.Context, name string) (*models.DisplayRecord, error)
	LookupBook(ctx context.Context, title string) (*models.DisplayRecord, error)
	LookupAuthor(ctx context.Context, name string) (*models.DisplayRecord, error)
	// LookupSubject returns a summary record plus one record per work, in
	// the external API's return order.
	LookupSubject(ctx context.Context, name string) (*models.DisplayRecord, []*models.DisplayRecord, error)
	LookupMovie(ctx context.Context, name string) (*models.DisplayRecord, error)
	FetchAPOD(ctx context.Context) (*models.DisplayRecord, error)
	// FetchNEOFeed returns a summary record plus one record per near-earth
	// object, in the external API's return order.
	FetchNEOFeed(ctx context.Context) (*models.DisplayRecord, []*models.DisplayRecord, error)
	TakeScreenshot(ctx context.Context, pageURL string) (*models.DisplayRecord, error)
}

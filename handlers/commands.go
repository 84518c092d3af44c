package handlers

import (
	"context"
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"mubot/models"
	"mubot/services"
	"mubot/services/render"
)

const embedColor = 0xf0f0f0

const (
	maxRolls = 200
	maxSides = 100000000
)

// CommandsHandler owns the command surface: it builds every CommandSpec
// and registers them on a router. Aggregator-backed commands share one
// AggregatorService; local commands need nothing beyond the event.
type CommandsHandler struct {
	aggregator services.AggregatorService

	// randInt is injectable so roll and pick are deterministic in tests
	randInt func(n int) int
}

func NewCommandsHandler(aggregatorService services.AggregatorService) *CommandsHandler {
	return &CommandsHandler{
		aggregator: aggregatorService,
		randInt:    rand.Intn,
	}
}

// RegisterAll registers the full command surface on the given router.
func (h *CommandsHandler) RegisterAll(routerService services.RouterService) error {
	for _, spec := range h.specs() {
		if err := routerService.Register(spec); err != nil {
			return fmt.Errorf("failed to register command %s: %w", spec.Name, err)
		}
	}
	return nil
}

func (h *CommandsHandler) specs() []*models.CommandSpec {
	return []*models.CommandSpec{
		{
			Name:    "hello",
			Aliases: []string{"hi"},
			Brief:   "Greets you back",
			Handler: h.handleHello,
		},
		{
			Name:   "roll",
			Brief:  "Rolls dice",
			Usage:  "<rolls> <sides>",
			Params: []models.Param{{Name: "rolls", Kind: models.ParamInt}, {Name: "sides", Kind: models.ParamInt}},
			Cooldown: &models.CooldownPolicy{
				Max: 3, Window: 10 * time.Second, Scope: models.CooldownPerUser,
			},
			Handler: h.handleRoll,
		},
		{
			Name:   "pick",
			Brief:  "Picks one of the given items",
			Usage:  "<item> [item ...]",
			Params: []models.Param{{Name: "items", Kind: models.ParamRest, Optional: true}},
			Cooldown: &models.CooldownPolicy{
				Max: 3, Window: 10 * time.Second, Scope: models.CooldownPerUser,
			},
			Handler: h.handlePick,
		},
		{
			Name:    "avatar",
			Brief:   "Shows your avatar, or a mentioned user's",
			Usage:   "[user]",
			Params:  []models.Param{{Name: "user", Kind: models.ParamRest, Optional: true}},
			Handler: h.handleAvatar,
		},
		{
			Name:            "age",
			Brief:           "Guesses how old a name sounds",
			Usage:           "<name>",
			Params:          []models.Param{{Name: "name", Kind: models.ParamText}},
			NotFoundMessage: "Please use a name I can recognize :(",
			Cooldown: &models.CooldownPolicy{
				Max: 3, Window: 10 * time.Second, Scope: models.CooldownPerUser,
			},
			Handler: h.handleAge,
		},
		{
			Name:            "country",
			Brief:           "Looks up a country",
			Usage:           "<name>",
			Params:          []models.Param{{Name: "name", Kind: models.ParamRest}},
			NotFoundMessage: "{query} is not a country!",
			Cooldown: &models.CooldownPolicy{
				Max: 5, Window: time.Minute, Scope: models.CooldownPerGuild,
			},
			Handler: h.handleCountry,
		},
		{
			Name:   "book",
			Brief:  "Looks up a book",
			Usage:  "<title>",
			Params: []models.Param{{Name: "title", Kind: models.ParamRest}},
			Cooldown: &models.CooldownPolicy{
				Max: 5, Window: time.Minute, Scope: models.CooldownPerGuild,
			},
			Handler: h.handleBook,
		},
		{
			Name:   "author",
			Brief:  "Looks up an author",
			Usage:  "<name>",
			Params: []models.Param{{Name: "name", Kind: models.ParamRest}},
			Cooldown: &models.CooldownPolicy{
				Max: 5, Window: time.Minute, Scope: models.CooldownPerGuild,
			},
			Handler: h.handleAuthor,
		},
		{
			Name:   "subject",
			Brief:  "Lists notable works for a subject",
			Usage:  "<name>",
			Params: []models.Param{{Name: "name", Kind: models.ParamRest}},
			Cooldown: &models.CooldownPolicy{
				Max: 5, Window: time.Minute, Scope: models.CooldownPerGuild,
			},
			Handler: h.handleSubject,
		},
		{
			Name:   "movie",
			Brief:  "Looks up a movie",
			Usage:  "<name>",
			Params: []models.Param{{Name: "name", Kind: models.ParamRest}},
			Cooldown: &models.CooldownPolicy{
				Max: 5, Window: time.Minute, Scope: models.CooldownPerGuild,
			},
			Handler: h.handleMovie,
		},
		{
			Name:  "apod",
			Brief: "NASA's astronomy picture of the day",
			Cooldown: &models.CooldownPolicy{
				Max: 2, Window: 30 * time.Second, Scope: models.CooldownPerGuild,
			},
			Handler: h.handleAPOD,
		},
		{
			Name:  "neo",
			Brief: "Today's near-earth objects",
			Cooldown: &models.CooldownPolicy{
				Max: 2, Window: 30 * time.Second, Scope: models.CooldownPerGuild,
			},
			Handler: h.handleNEO,
		},
		{
			Name:   "screenshot",
			Brief:  "Captures a screenshot of a page",
			Usage:  "<url>",
			Params: []models.Param{{Name: "url", Kind: models.ParamText}},
			Cooldown: &models.CooldownPolicy{
				Max: 2, Window: 30 * time.Second, Scope: models.CooldownPerGuild,
			},
			Handler: h.handleScreenshot,
		},
	}
}

func (h *CommandsHandler) handleHello(ctx context.Context, inv *models.Invocation) (*models.Reply, error) {
	return &models.Reply{Text: fmt.Sprintf("Hello %s!", inv.Event.User.DisplayName)}, nil
}

func (h *CommandsHandler) handleRoll(ctx context.Context, inv *models.Invocation) (*models.Reply, error) {
	rolls := inv.Int("rolls")
	sides := inv.Int("sides")

	if rolls > maxRolls {
		return &models.Reply{Text: "Number of rolls must be 200 or less!"}, nil
	}
	if sides > maxSides {
		return &models.Reply{Text: "Number of sides must be 100000000 or less!"}, nil
	}
	if rolls < 1 || sides < 1 {
		return &models.Reply{Text: "Both rolls and sides must be at least 1!"}, nil
	}

	results := make([]string, rolls)
	for i := range results {
		results[i] = strconv.Itoa(h.randInt(sides) + 1)
	}
	return &models.Reply{Text: "Your roll: " + strings.Join(results, ", ")}, nil
}

func (h *CommandsHandler) handlePick(ctx context.Context, inv *models.Invocation) (*models.Reply, error) {
	items := strings.Fields(inv.Text("items"))
	if len(items) == 0 {
		return &models.Reply{Text: "Give me something to pick from!"}, nil
	}
	return &models.Reply{Text: fmt.Sprintf("I pick %s!", items[h.randInt(len(items))])}, nil
}

func (h *CommandsHandler) handleAvatar(ctx context.Context, inv *models.Invocation) (*models.Reply, error) {
	target := inv.Event.User
	if len(inv.Event.Mentions) > 0 {
		target = inv.Event.Mentions[0]
	}
	if target.AvatarURL == "" {
		return &models.Reply{Text: fmt.Sprintf("%s has no avatar I can show.", target.DisplayName)}, nil
	}

	return &models.Reply{
		Text: fmt.Sprintf("%s's avatar: %s", target.DisplayName, target.AvatarURL),
		Payload: &models.ReplyPayload{
			Title:    fmt.Sprintf("%s's avatar", target.DisplayName),
			ImageURL: target.AvatarURL,
			Color:    embedColor,
		},
	}, nil
}

func (h *CommandsHandler) handleAge(ctx context.Context, inv *models.Invocation) (*models.Reply, error) {
	record, err := h.aggregator.GuessAge(ctx, inv.Text("name"))
	if err != nil {
		return nil, err
	}
	return recordReply(record, render.Template{
		Title:       "{name}",
		Description: "{age_text}",
		Color:       embedColor,
	}), nil
}

func (h *CommandsHandler) handleCountry(ctx context.Context, inv *models.Invocation) (*models.Reply, error) {
	record, err := h.aggregator.LookupCountry(ctx, inv.Text("name"))
	if err != nil {
		return nil, err
	}
	return recordReply(record, render.Template{
		Title:       "{name}",
		Description: "{official_name}",
		URL:         "{maps_url}",
		Thumbnail:   "{flag_url}",
		Color:       embedColor,
		Sections: []render.SectionTemplate{
			{Label: "Capital", Body: "{capital}", Inline: true},
			{Label: "Region", Body: "{subregion}", Inline: true},
			{Label: "Area", Body: "{area}", Inline: true},
			{Label: "Population", Body: "{population}", Inline: true},
			{Label: "GINI index", Body: "{gini}", Inline: true},
			{Label: "Languages", Body: "{languages}", Inline: true},
			{Label: "Continents", Body: "{continents}", Inline: true},
			{Label: "Start of week", Body: "{start_of_week}", Inline: true},
			{Label: "Web domain", Body: "{web_domain}", Inline: true},
			{Label: "UN member", Body: "{un_member}", Inline: true},
		},
	}), nil
}

func (h *CommandsHandler) handleBook(ctx context.Context, inv *models.Invocation) (*models.Reply, error) {
	record, err := h.aggregator.LookupBook(ctx, inv.Text("title"))
	if err != nil {
		return nil, err
	}
	return recordReply(record, render.Template{
		Title:     "{title}",
		URL:       "{book_url}",
		Thumbnail: "{cover_url}",
		Color:     embedColor,
		Sections: []render.SectionTemplate{
			{Label: "Author", Body: "{author}", Inline: true},
			{Label: "First published", Body: "{publish_year}", Inline: true},
			{Label: "Pages", Body: "{pages}", Inline: true},
			{Label: "Editions", Body: "{editions}", Inline: true},
		},
	}), nil
}

func (h *CommandsHandler) handleAuthor(ctx context.Context, inv *models.Invocation) (*models.Reply, error) {
	record, err := h.aggregator.LookupAuthor(ctx, inv.Text("name"))
	if err != nil {
		return nil, err
	}
	return recordReply(record, render.Template{
		Title:       "{name}",
		Description: "{bio}",
		URL:         "{author_url}",
		Color:       embedColor,
		Sections: []render.SectionTemplate{
			{Label: "Born", Body: "{birth_date}", Inline: true},
			{Label: "Top work", Body: "{top_work}", Inline: true},
			{Label: "Works", Body: "{work_count}", Inline: true},
		},
	}), nil
}

func (h *CommandsHandler) handleSubject(ctx context.Context, inv *models.Invocation) (*models.Reply, error) {
	summary, items, err := h.aggregator.LookupSubject(ctx, inv.Text("name"))
	if err != nil {
		return nil, err
	}
	payload := render.RenderItems(summary, items, render.Template{
		Title:       "{subject}",
		Description: "{work_count} works on record. Here are some notable ones:",
		URL:         "{subject_url}",
		Color:       embedColor,
	}, render.SectionTemplate{
		Label: "{work_title}",
		Body:  "{work_author}, first published {work_year}",
	})
	return payloadReply(payload), nil
}

func (h *CommandsHandler) handleMovie(ctx context.Context, inv *models.Invocation) (*models.Reply, error) {
	record, err := h.aggregator.LookupMovie(ctx, inv.Text("name"))
	if err != nil {
		return nil, err
	}
	return recordReply(record, render.Template{
		Title:       "{full_title}",
		Description: "{plot}",
		URL:         "{movie_url}",
		Image:       "{poster_url}",
		Color:       embedColor,
		Sections: []render.SectionTemplate{
			{Label: "Directors", Body: "{directors}", Inline: true},
			{Label: "Writers", Body: "{writers}", Inline: true},
			{Label: "Stars", Body: "{stars}", Inline: true},
			{Label: "Genres", Body: "{genres}", Inline: true},
			{Label: "IMDb rating", Body: "{imdb_rating}", Inline: true},
			{Label: "Metacritic rating", Body: "{metacritic_rating}", Inline: true},
			{Label: "Rotten Tomatoes rating", Body: "{rotten_tomatoes_rating}", Inline: true},
			{Label: "Budget", Body: "{budget}", Inline: true},
			{Label: "Opening weekend USA", Body: "{opening_weekend_usa}", Inline: true},
			{Label: "Gross USA", Body: "{gross_usa}", Inline: true},
			{Label: "Gross worldwide", Body: "{gross_worldwide}", Inline: true},
		},
	}), nil
}

func (h *CommandsHandler) handleAPOD(ctx context.Context, inv *models.Invocation) (*models.Reply, error) {
	record, err := h.aggregator.FetchAPOD(ctx)
	if err != nil {
		return nil, err
	}
	return recordReply(record, render.Template{
		Title:       "{title}",
		Description: "{explanation}",
		Image:       "{image_url}",
		Footer:      "{date}",
		Color:       embedColor,
	}), nil
}

func (h *CommandsHandler) handleNEO(ctx context.Context, inv *models.Invocation) (*models.Reply, error) {
	summary, items, err := h.aggregator.FetchNEOFeed(ctx)
	if err != nil {
		return nil, err
	}
	payload := render.RenderItems(summary, items, render.Template{
		Title:       "Near-earth objects for {date}",
		Description: "{count} objects approach Earth today.",
		Color:       embedColor,
	}, render.SectionTemplate{
		Label: "{neo_name}",
		Body: "Diameter: {diameter_min} to {diameter_max} m\n" +
			"Velocity: {velocity} km/s\n" +
			"Miss distance: {miss_distance} km\n" +
			"Hazardous: {hazardous}",
	})
	return payloadReply(payload), nil
}

func (h *CommandsHandler) handleScreenshot(ctx context.Context, inv *models.Invocation) (*models.Reply, error) {
	record, err := h.aggregator.TakeScreenshot(ctx, inv.Text("url"))
	if err != nil {
		return nil, err
	}
	return recordReply(record, render.Template{
		Title: "{page_url}",
		URL:   "{page_url}",
		Image: "{screenshot_url}",
		Color: embedColor,
	}), nil
}

// recordReply renders a record through a template; the reply's plain text
// is the degraded form built from title and URL.
func recordReply(record *models.DisplayRecord, tmpl render.Template) *models.Reply {
	return payloadReply(render.Render(record, tmpl))
}

func payloadReply(payload *models.ReplyPayload) *models.Reply {
	text := payload.Title
	if text == "" {
		text = payload.Description
	}
	if payload.URL != "" {
		text = strings.TrimSpace(text + " " + payload.URL)
	}
	return &models.Reply{Text: text, Payload: payload}
}

package router

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"sync"

	"mubot/core"
	"mubot/models"
	"mubot/services"
	"mubot/services/cooldown"
	"mubot/utils"
)

const (
	defaultNotFoundMessage = "Sorry, I couldn't find anything for that :("
	transportApology       = "Seems like the service I need for this is having issues. Please try again later :("
	failureApology         = "Something went wrong while running that command :("
)

// commandEntry binds a registered spec to the tracker enforcing its
// cooldown policy.
type commandEntry struct {
	spec    *models.CommandSpec
	tracker *cooldown.Tracker
}

// RouterService routes inbound gateway messages through the invocation
// pipeline: detection, cooldown check, argument parse, dispatch, delivery.
// Every failure terminates in a user-facing reply or a logged drop.
type RouterService struct {
	prefix   string
	delivery services.DeliveryService

	mu       sync.RWMutex
	registry map[string]*commandEntry
	ordered  []*models.CommandSpec
}

func NewRouterService(prefix string, deliveryService services.DeliveryService) *RouterService {
	utils.AssertInvariant(prefix != "", "command prefix must not be empty")

	return &RouterService{
		prefix:   prefix,
		delivery: deliveryService,
		registry: make(map[string]*commandEntry),
	}
}

// Register adds a command spec to the registry. Duplicate names or
// aliases are an error.
func (r *RouterService) Register(spec *models.CommandSpec) error {
	if spec == nil || spec.Name == "" || spec.Handler == nil {
		return fmt.Errorf("command spec must have a name and a handler")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	entry := &commandEntry{spec: spec}
	if spec.Cooldown != nil {
		entry.tracker = cooldown.NewTracker(*spec.Cooldown)
	}

	names := append([]string{spec.Name}, spec.Aliases...)
	for _, name := range names {
		key := strings.ToLower(name)
		if _, exists := r.registry[key]; exists {
			return fmt.Errorf("command %q is already registered", key)
		}
		r.registry[key] = entry
	}

	r.ordered = append(r.ordered, spec)
	log.Printf("📋 Registered command: %s", spec.Name)
	return nil
}

// Commands returns a defensive copy of the registered specs in
// registration order.
func (r *RouterService) Commands() []*models.CommandSpec {
	r.mu.RLock()
	defer r.mu.RUnlock()

	specs := make([]*models.CommandSpec, len(r.ordered))
	copy(specs, r.ordered)
	return specs
}

// HandleMessage runs the full invocation pipeline for one inbound event.
func (r *RouterService) HandleMessage(ctx context.Context, ev models.MessageEvent) {
	defer func() {
		if recovered := recover(); recovered != nil {
			log.Printf("❌ Panic while handling message %s: %v", ev.MessageID, recovered)
			r.replyText(ctx, ev, failureApology)
		}
	}()

	detection := utils.DetectCommand(ev.Content, r.prefix)
	if !detection.IsCommand {
		return
	}

	tokens := strings.Fields(detection.CommandText)
	if len(tokens) == 0 {
		return
	}

	name := strings.ToLower(tokens[0])
	entry, ok := r.lookupCommand(name)
	if !ok {
		log.Printf("⚠️ Ignoring unknown command: %s", name)
		return
	}

	inv := &models.Invocation{
		ID:    core.NewID("inv"),
		Event: ev,
		Spec:  entry.spec,
	}
	log.Printf("📋 Starting invocation %s for command %s from user %s", inv.ID, entry.spec.Name, ev.User.ID)

	if entry.tracker != nil {
		retryAfter, allowed := entry.tracker.Reserve(entry.spec.Cooldown.Key(ev))
		if !allowed {
			cooldownErr := &core.OnCooldownError{RetryAfter: retryAfter}
			log.Printf("⚠️ Invocation %s rejected: %v", inv.ID, cooldownErr)
			r.replyText(ctx, ev, fmt.Sprintf(
				"This command is on cooldown. Try again in %.2fs.", retryAfter.Seconds()))
			return
		}
	}

	if err := parseArguments(inv, tokens[1:]); err != nil {
		log.Printf("⚠️ Invocation %s rejected: %v", inv.ID, err)
		r.replyText(ctx, ev, fmt.Sprintf(
			"That doesn't look right. Usage: %s", entry.spec.UsageLine(r.prefix)))
		return
	}

	reply, err := entry.spec.Handler(ctx, inv)
	if err != nil {
		r.replyFailure(ctx, inv, err)
		return
	}
	if reply == nil {
		log.Printf("✅ Completed invocation %s with no reply", inv.ID)
		return
	}

	if err := r.delivery.Deliver(ctx, ev, reply); err != nil {
		log.Printf("❌ Failed to deliver reply for invocation %s: %v", inv.ID, err)
		return
	}
	log.Printf("✅ Completed invocation %s", inv.ID)
}

func (r *RouterService) lookupCommand(name string) (*commandEntry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entry, ok := r.registry[name]
	return entry, ok
}

// replyFailure converts a handler-level failure into a user-facing reply.
func (r *RouterService) replyFailure(ctx context.Context, inv *models.Invocation, err error) {
	switch {
	case core.IsNoMatchError(err):
		log.Printf("⚠️ Invocation %s found no match: %v", inv.ID, err)
		r.replyText(ctx, inv.Event, notFoundMessage(inv))
	case core.IsTransportError(err):
		log.Printf("❌ Invocation %s hit a transport failure: %v", inv.ID, err)
		r.replyText(ctx, inv.Event, transportApology)
	default:
		log.Printf("❌ Invocation %s failed: %v", inv.ID, err)
		r.replyText(ctx, inv.Event, failureApology)
	}
}

func (r *RouterService) replyText(ctx context.Context, ev models.MessageEvent, text string) {
	if err := r.delivery.Deliver(ctx, ev, &models.Reply{Text: text}); err != nil {
		log.Printf("❌ Failed to deliver reply to channel %s: %v", ev.ChannelID, err)
	}
}

// notFoundMessage renders the spec's no-match reply, expanding {query}
// with the argument the lookup ran on.
func notFoundMessage(inv *models.Invocation) string {
	message := inv.Spec.NotFoundMessage
	if message == "" {
		return defaultNotFoundMessage
	}
	return strings.ReplaceAll(message, "{query}", primaryQuery(inv))
}

// primaryQuery is the first text-valued argument of the invocation.
func primaryQuery(inv *models.Invocation) string {
	for _, param := range inv.Spec.Params {
		if param.Kind == models.ParamInt {
			continue
		}
		if value, ok := inv.TextArgs[param.Name]; ok && value != "" {
			return value
		}
	}
	return ""
}

// parseArguments coerces positional tokens according to the spec's
// parameter kinds. A rest parameter consumes everything left.
func parseArguments(inv *models.Invocation, tokens []string) error {
	inv.IntArgs = make(map[string]int)
	inv.TextArgs = make(map[string]string)

	for i, param := range inv.Spec.Params {
		if param.Kind == models.ParamRest {
			rest := ""
			if i < len(tokens) {
				rest = strings.Join(tokens[i:], " ")
			}
			if rest == "" && !param.Optional {
				return &core.BadArgumentError{Param: param.Name, Reason: "missing"}
			}
			inv.TextArgs[param.Name] = rest
			return nil
		}

		if i >= len(tokens) {
			if param.Optional {
				continue
			}
			return &core.BadArgumentError{Param: param.Name, Reason: "missing"}
		}

		token := tokens[i]
		switch param.Kind {
		case models.ParamInt:
			n, err := strconv.Atoi(token)
			if err != nil {
				return &core.BadArgumentError{Param: param.Name, Value: token, Reason: "expected an integer"}
			}
			inv.IntArgs[param.Name] = n
		default:
			inv.TextArgs[param.Name] = token
		}
	}

	return nil
}

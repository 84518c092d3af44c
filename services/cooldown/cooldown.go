package cooldown

import (
	"sync"
	"time"

	"github.com/samber/mo"

	"mubot/models"
	"mubot/utils"
)

// entry tracks one scope-key's window: how many invocations remain and
// when the window resets.
type entry struct {
	remaining int
	resetAt   time.Time
}

// Tracker enforces one command's cooldown policy across scope-keys.
// Entries are created lazily on first invocation per key and kept for the
// tracker's lifetime; the table is bounded by the number of distinct
// users/guilds seen.
type Tracker struct {
	policy models.CooldownPolicy

	mu      sync.Mutex
	entries map[string]*entry
	now     func() time.Time
}

// NewTracker creates a tracker for the given policy.
func NewTracker(policy models.CooldownPolicy) *Tracker {
	utils.AssertInvariant(policy.Max > 0, "cooldown max must be positive")
	utils.AssertInvariant(policy.Window > 0, "cooldown window must be positive")

	return &Tracker{
		policy:  policy,
		entries: make(map[string]*entry),
		now:     time.Now,
	}
}

// Reserve atomically consumes one invocation for the scope-key. It returns
// (0, true) when the invocation may proceed, or (retryAfter, false) when
// the key has exhausted its window. Check and decrement happen under one
// lock so concurrent invocations from the same key cannot both pass a
// check meant to allow only one.
func (t *Tracker) Reserve(key string) (time.Duration, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()

	maybeEntry := t.lookup(key)
	if !maybeEntry.IsPresent() || !now.Before(maybeEntry.MustGet().resetAt) {
		// first invocation for this key, or an expired window: reset
		t.entries[key] = &entry{
			remaining: t.policy.Max - 1,
			resetAt:   now.Add(t.policy.Window),
		}
		return 0, true
	}

	e := maybeEntry.MustGet()
	if e.remaining > 0 {
		e.remaining--
		return 0, true
	}

	return e.resetAt.Sub(now), false
}

// Policy returns the policy this tracker enforces.
func (t *Tracker) Policy() models.CooldownPolicy {
	return t.policy
}

func (t *Tracker) lookup(key string) mo.Option[*entry] {
	if e, ok := t.entries[key]; ok {
		return mo.Some(e)
	}
	return mo.None[*entry]()
}

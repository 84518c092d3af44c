package cooldown

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"mubot/models"
)

func newTestTracker(max int, window time.Duration) (*Tracker, *time.Time) {
	tracker := NewTracker(models.CooldownPolicy{
		Max:    max,
		Window: window,
		Scope:  models.CooldownPerUser,
	})

	current := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	tracker.now = func() time.Time { return current }
	return tracker, &current
}

func TestTracker_AllowsUpToMaxWithinWindow(t *testing.T) {
	tracker, _ := newTestTracker(3, time.Minute)

	for i := 0; i < 3; i++ {
		retryAfter, ok := tracker.Reserve("u:alice")
		assert.True(t, ok, "invocation %d should be allowed", i+1)
		assert.Zero(t, retryAfter)
	}

	retryAfter, ok := tracker.Reserve("u:alice")
	assert.False(t, ok, "invocation past max should be rejected")
	assert.Equal(t, time.Minute, retryAfter)
}

func TestTracker_WindowResetRestoresCounter(t *testing.T) {
	tracker, current := newTestTracker(2, time.Minute)

	tracker.Reserve("u:alice")
	tracker.Reserve("u:alice")
	_, ok := tracker.Reserve("u:alice")
	assert.False(t, ok)

	*current = current.Add(time.Minute)

	for i := 0; i < 2; i++ {
		_, ok := tracker.Reserve("u:alice")
		assert.True(t, ok, "invocation %d after reset should be allowed", i+1)
	}
	_, ok = tracker.Reserve("u:alice")
	assert.False(t, ok)
}

func TestTracker_RetryAfterShrinksAsTimePasses(t *testing.T) {
	tracker, current := newTestTracker(1, time.Minute)

	tracker.Reserve("u:alice")

	*current = current.Add(45 * time.Second)
	retryAfter, ok := tracker.Reserve("u:alice")
	assert.False(t, ok)
	assert.Equal(t, 15*time.Second, retryAfter)
}

func TestTracker_KeysAreIndependent(t *testing.T) {
	tracker, _ := newTestTracker(1, time.Minute)

	_, ok := tracker.Reserve("u:alice")
	assert.True(t, ok)
	_, ok = tracker.Reserve("u:bob")
	assert.True(t, ok)
	_, ok = tracker.Reserve("u:alice")
	assert.False(t, ok)
}

func TestTracker_ConcurrentReservesNeverExceedMax(t *testing.T) {
	tracker := NewTracker(models.CooldownPolicy{
		Max:    5,
		Window: time.Minute,
		Scope:  models.CooldownPerUser,
	})

	var wg sync.WaitGroup
	var mu sync.Mutex
	allowed := 0

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, ok := tracker.Reserve("u:alice"); ok {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 5, allowed)
}

func TestCooldownPolicy_Key(t *testing.T) {
	ev := models.MessageEvent{
		GuildID: "guild1",
		User:    models.MessageUser{ID: "user1"},
	}

	perUser := &models.CooldownPolicy{Scope: models.CooldownPerUser}
	perGuild := &models.CooldownPolicy{Scope: models.CooldownPerGuild}

	assert.Equal(t, "u:user1", perUser.Key(ev))
	assert.Equal(t, "g:guild1", perGuild.Key(ev))
}

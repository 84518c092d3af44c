package models

import "time"

// CooldownScope determines which identity a cooldown window is tracked
// against.
type CooldownScope string

const (
	// CooldownPerUser tracks the window per invoking user.
	CooldownPerUser CooldownScope = "user"
	// CooldownPerGuild tracks the window per originating guild.
	CooldownPerGuild CooldownScope = "guild"
)

// CooldownPolicy limits a command to Max invocations per Window, tracked
// per scope-key.
type CooldownPolicy struct {
	Max    int           `json:"max"`
	Window time.Duration `json:"window"`
	Scope  CooldownScope `json:"scope"`
}

// Key resolves the scope-key for an inbound event under this policy.
func (p *CooldownPolicy) Key(ev MessageEvent) string {
	if p.Scope == CooldownPerGuild {
		return "g:" + ev.GuildID
	}
	return "u:" + ev.User.ID
}

package models

import "context"

// ParamKind describes how a positional token is coerced before the handler
// sees it.
type ParamKind string

const (
	// ParamInt coerces the token to an integer.
	ParamInt ParamKind = "int"
	// ParamText takes a single whitespace-delimited token as-is.
	ParamText ParamKind = "text"
	// ParamRest consumes the remainder of the message as one string.
	ParamRest ParamKind = "rest"
)

// Param is one positional parameter of a command.
type Param struct {
	Name     string    `json:"name"`
	Kind     ParamKind `json:"kind"`
	Optional bool      `json:"optional,omitempty"`
}

// HandlerFunc is the per-command function combining aggregation, rendering
// and delivery. It returns the reply to deliver, or an error from the
// command taxonomy which the router converts into a user-facing message.
type HandlerFunc func(ctx context.Context, inv *Invocation) (*Reply, error)

// CommandSpec is the immutable descriptor of one registered command.
// Specs are registered once at startup and never mutated afterwards.
type CommandSpec struct {
	Name     string          `json:"name"`
	Aliases  []string        `json:"aliases,omitempty"`
	Brief    string          `json:"brief"`
	Usage    string          `json:"usage,omitempty"`
	Params   []Param         `json:"params,omitempty"`
	Cooldown *CooldownPolicy `json:"cooldown,omitempty"`
	Handler  HandlerFunc     `json:"-"`

	// NotFoundMessage overrides the default no-match reply. A {query}
	// token expands to the argument the lookup ran on.
	NotFoundMessage string `json:"-"`
}

// UsageLine renders the canonical usage string shown on bad-argument replies.
func (s *CommandSpec) UsageLine(prefix string) string {
	if s.Usage != "" {
		return prefix + s.Name + " " + s.Usage
	}
	return prefix + s.Name
}

// Invocation is the ephemeral state of handling one inbound message. It
// lives for the duration of a single dispatch and is not retained.
type Invocation struct {
	ID       string
	Event    MessageEvent
	Spec     *CommandSpec
	IntArgs  map[string]int
	TextArgs map[string]string
}

// Int returns the parsed integer argument for the named parameter.
func (i *Invocation) Int(name string) int {
	return i.IntArgs[name]
}

// Text returns the parsed text argument for the named parameter.
func (i *Invocation) Text(name string) string {
	return i.TextArgs[name]
}

// Reply is what a handler hands back to the router: plain text, a rich
// payload, or both. When both are set the payload is preferred and the
// text is the degraded form.
type Reply struct {
	Text    string
	Payload *ReplyPayload
}

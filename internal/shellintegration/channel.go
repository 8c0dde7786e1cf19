// Package shellintegration implements the private OSC 1337 namespace that
// lets a shell decorate the byte stream with prompt, command, cwd, branch,
// and exit-status metadata (spec.md §4.5, Component E).
package shellintegration

import (
	"strconv"
	"strings"
)

// State names the channel's position in its prompt/command lifecycle.
type State int

const (
	Idle State = iota
	PromptActive
	CommandEntered
	Running
)

// Record is the shell-integration metadata snapshot readers consult
// (spec.md §3 "Shell-integration record"). All fields are nil/zero until
// set by a recognized OSC key; the channel is optional and the record is
// never force-populated.
type Record struct {
	Version               int
	CurrentWorkingDirectory *string
	GitBranch               *string
	PromptStartRow          *int
	PromptEndRow            *int
	CommandStartRow         *int
	CurrentCommand          string
	LastExitStatus          *int
	Enabled                 bool
}

// Channel tracks the Idle → PromptActive → CommandEntered → Running → Idle
// state machine and the Record it feeds.
type Channel struct {
	state  State
	record Record

	commandBuf strings.Builder
}

// New returns a Channel with Idle state and an empty record.
func New() *Channel {
	return &Channel{}
}

// State reports the current lifecycle state.
func (c *Channel) State() State { return c.state }

// Record returns a copy of the current metadata snapshot. While a command
// is still being typed (CommandEntered/Running) CurrentCommand reflects the
// in-progress buffer; once CommandEnd finalizes it, the finalized value in
// c.record stands until the next PromptStart resets it.
func (c *Channel) Record() Record {
	r := c.record
	if c.state == CommandEntered || c.state == Running {
		r.CurrentCommand = c.commandBuf.String()
	}
	return r
}

// HandlePayload processes one OSC 1337 payload ("key" or "key=value").
// Unknown keys are ignored to preserve forward compatibility (spec.md
// §4.5). row is the cursor row at the time the sequence arrived, used to
// mark prompt/command row bounds.
func (c *Channel) HandlePayload(payload string, row int) {
	key, value, hasValue := splitKV(payload)

	switch key {
	case "ShellIntegrationVersion":
		if hasValue {
			if n, err := strconv.Atoi(value); err == nil {
				c.record.Version = n
			}
		}
		c.record.Enabled = true
	case "CurrentDir":
		if hasValue {
			v := value
			c.record.CurrentWorkingDirectory = &v
		}
	case "GitBranch":
		if hasValue {
			v := value
			c.record.GitBranch = &v
		}
	case "PromptStart":
		c.state = PromptActive
		r := row
		c.record.PromptStartRow = &r
		c.record.PromptEndRow = nil
		c.commandBuf.Reset()
	case "PromptEnd":
		c.state = CommandEntered
		r := row
		c.record.PromptEndRow = &r
		c.commandBuf.Reset()
	case "CommandStart":
		c.state = Running
		r := row
		c.record.CommandStartRow = &r
	case "CommandEnd":
		c.finalizeCommand(value, hasValue)
	default:
		// Unknown key: ignored.
	}
}

func (c *Channel) finalizeCommand(value string, hasValue bool) {
	c.record.CurrentCommand = c.commandBuf.String()
	if hasValue {
		if n, err := strconv.Atoi(value); err == nil {
			c.record.LastExitStatus = &n
		}
	}
	c.commandBuf.Reset()
	c.state = Idle
}

// FeedRune accumulates printed text into the in-progress command while the
// channel is in CommandEntered state (the window between PromptEnd and
// CommandStart, spec.md §4.5).
func (c *Channel) FeedRune(r rune) {
	if c.state != CommandEntered {
		return
	}
	c.commandBuf.WriteRune(r)
}

func splitKV(payload string) (key, value string, hasValue bool) {
	idx := strings.IndexByte(payload, '=')
	if idx < 0 {
		return payload, "", false
	}
	return payload[:idx], payload[idx+1:], true
}

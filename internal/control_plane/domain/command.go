package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Target is the side effect a command produces. It is either a LocalTarget or
// a RemoteTarget.
type Target interface {
	Key() string
	isTarget()
}

// LocalTarget runs a shell invocation on the hub.
type LocalTarget struct {
	Invocation string
}

func (t LocalTarget) Key() string {
	return t.Invocation
}

func (LocalTarget) isTarget() {}

// RemoteTarget publishes Action to a peripheral attached to the device
// installed at Room/Position.
type RemoteTarget struct {
	Peripheral string
	Subtype    string
	Action     string
	Room       string
	Position   string
}

func (t RemoteTarget) Key() string {
	fields := []string{t.Peripheral, t.Subtype, t.Action, t.Room, t.Position}
	for i, f := range fields {
		fields[i] = strings.ToLower(strings.TrimSpace(f))
	}
	return strings.Join(fields, "|")
}

func (t RemoteTarget) Topic() string {
	return BuildTopic(t.Room, t.Position, t.Peripheral, t.Subtype)
}

func (RemoteTarget) isTarget() {}

// Command is an immutable snapshot resolved from the catalog.
type Command struct {
	Target        Target
	Description   string
	AgeRestricted bool
	Privileged    bool
	Response      string
}

func (c Command) Key() string {
	if c.Target == nil {
		return ""
	}
	return c.Target.Key()
}

func (c Command) IsLocal() bool {
	_, ok := c.Target.(LocalTarget)
	return ok
}

func (c Command) IsRemote() bool {
	_, ok := c.Target.(RemoteTarget)
	return ok
}

// IsUnrestricted reports whether the command bypasses authorization.
func (c Command) IsUnrestricted() bool {
	return !c.AgeRestricted && !c.Privileged
}

func (c Command) Kind() string {
	switch c.Target.(type) {
	case LocalTarget:
		return "local"
	case RemoteTarget:
		return "remote"
	default:
		return "unknown"
	}
}

func NewCommandBuilder() *commandBuilder {
	return &commandBuilder{}
}

type commandBuilder struct {
	actions []commandHandler
}

type commandHandler func(v *Command) error

func (b *commandBuilder) WithLocalTarget(invocation string) *commandBuilder {
	b.actions = append(b.actions, func(d *Command) error {
		if strings.TrimSpace(invocation) == "" {
			return errors.New("local invocation cannot be empty")
		}
		d.Target = LocalTarget{Invocation: strings.TrimSpace(invocation)}
		return nil
	})
	return b
}

func (b *commandBuilder) WithRemoteTarget(value RemoteTarget) *commandBuilder {
	b.actions = append(b.actions, func(d *Command) error {
		for name, segment := range map[string]string{
			"peripheral": value.Peripheral,
			"action":     value.Action,
			"room":       value.Room,
			"position":   value.Position,
		} {
			if strings.TrimSpace(segment) == "" {
				return fmt.Errorf("remote %s cannot be empty", name)
			}
		}
		d.Target = value
		return nil
	})
	return b
}

func (b *commandBuilder) WithDescription(value string) *commandBuilder {
	b.actions = append(b.actions, func(d *Command) error {
		d.Description = value
		return nil
	})
	return b
}

func (b *commandBuilder) WithAgeRestricted(value bool) *commandBuilder {
	b.actions = append(b.actions, func(d *Command) error {
		d.AgeRestricted = value
		return nil
	})
	return b
}

func (b *commandBuilder) WithPrivileged(value bool) *commandBuilder {
	b.actions = append(b.actions, func(d *Command) error {
		d.Privileged = value
		return nil
	})
	return b
}

func (b *commandBuilder) WithResponse(value string) *commandBuilder {
	b.actions = append(b.actions, func(d *Command) error {
		d.Response = value
		return nil
	})
	return b
}

func (b *commandBuilder) Build() (Command, error) {
	result := Command{}
	for _, a := range b.actions {
		if err := a(&result); err != nil {
			return Command{}, err
		}
	}

	if result.Target == nil {
		return Command{}, errors.New("command target is required")
	}

	return result, nil
}

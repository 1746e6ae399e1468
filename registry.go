package embsh

import (
	"fmt"
	"strings"
	"sync"
)

const (
	// MaxCommands is the registry capacity.
	MaxCommands = 64
	// MaxArgs bounds the argument count of a tokenized line.
	MaxArgs = 32
)

// Registry is a fixed-capacity command table. Registration is
// serialized; lookup and iteration are read-only after the
// registration phase completes and need no synchronization under that
// usage model.
type Registry struct {
	mu   sync.Mutex
	cmds []Command
}

// New returns a registry with the help built-in pre-registered.
func New() *Registry {
	r := &Registry{cmds: make([]Command, 0, MaxCommands)}
	_ = r.Register("help", helpCommand, r, "List all commands")
	return r
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// Default returns the process-wide registry shared by transports that
// are not given an explicit one.
func Default() *Registry {
	defaultOnce.Do(func() { defaultRegistry = New() })
	return defaultRegistry
}

// Register adds a command. Names are unique; data is handed back on
// every invocation.
func (r *Registry) Register(name string, fn Func, data any, desc string) error {
	if name == "" || fn == nil {
		return ErrInvalidArgument
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.cmds {
		if r.cmds[i].Name == name {
			return fmt.Errorf("%w: %s", ErrDuplicateName, name)
		}
	}
	if len(r.cmds) >= MaxCommands {
		return ErrRegistryFull
	}
	r.cmds = append(r.cmds, Command{Name: name, Desc: desc, Fn: fn, Data: data})
	return nil
}

// Find returns the command registered under name, or nil.
func (r *Registry) Find(name string) *Command {
	for i := range r.cmds {
		if r.cmds[i].Name == name {
			return &r.cmds[i]
		}
	}
	return nil
}

// ForEach visits every command in registration order.
func (r *Registry) ForEach(visit func(*Command)) {
	for i := range r.cmds {
		visit(&r.cmds[i])
	}
}

// Len reports the number of registered commands.
func (r *Registry) Len() int {
	return len(r.cmds)
}

// AutoComplete resolves a name prefix. With one match the returned
// completion is the full name; with several it is the longest common
// prefix of all matching names. The completion is truncated to max-1
// bytes; matches reports how many names matched.
func (r *Registry) AutoComplete(prefix string, max int) (completion string, matches int) {
	if max <= 0 {
		return "", 0
	}
	var first string
	common := 0
	for i := range r.cmds {
		name := r.cmds[i].Name
		if !strings.HasPrefix(name, prefix) {
			continue
		}
		matches++
		if matches == 1 {
			first = name
			common = len(name)
			continue
		}
		j := 0
		for j < common && j < len(name) && first[j] == name[j] {
			j++
		}
		common = j
	}
	if matches == 0 {
		return "", 0
	}
	if common > max-1 {
		common = max - 1
	}
	return first[:common], matches
}

// Register adds a command to the default registry.
func Register(name string, fn Func, data any, desc string) error {
	return Default().Register(name, fn, data, desc)
}

func helpCommand(inv *Invocation) int {
	reg, ok := inv.Data.(*Registry)
	if !ok || reg == nil {
		reg = Default()
	}
	reg.ForEach(func(c *Command) {
		inv.Printf("  %-16s - %s\r\n", c.Name, c.Desc)
	})
	return 0
}

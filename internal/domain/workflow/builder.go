package workflow

import "fmt"

// MachineBuilder builds a role-gated transition table
type MachineBuilder interface {
	// Configure returns a state configuration for the given status
	Configure(status Status) StateConfiguration

	// Build freezes the configured table into an immutable machine
	Build() *Machine
}

// StateConfiguration configures the transitions leaving a specific status
type StateConfiguration interface {
	// Permit allows the role to transition to the target status
	Permit(role Role, target Status) StateConfiguration
}

// stateConfig implements StateConfiguration
type stateConfig struct {
	from        Status
	transitions map[Role][]Status
}

// machineBuilder implements MachineBuilder
type machineBuilder struct {
	configurations map[Status]*stateConfig
}

// Machine is an immutable role-gated transition table. It carries no
// current-state cursor; callers ask it about a (status, role) pair.
type Machine struct {
	configurations map[Status]*stateConfig
}

// NewBuilder creates a new machine builder
func NewBuilder() MachineBuilder {
	return &machineBuilder{
		configurations: make(map[Status]*stateConfig),
	}
}

// Configure returns a state configuration for the given status
func (b *machineBuilder) Configure(status Status) StateConfiguration {
	if !status.IsValid() {
		panic(fmt.Sprintf("invalid status: %s", status))
	}

	config, exists := b.configurations[status]
	if !exists {
		config = &stateConfig{
			from:        status,
			transitions: make(map[Role][]Status),
		}
		b.configurations[status] = config
	}

	return config
}

// Permit allows the role to transition to the target status
func (c *stateConfig) Permit(role Role, target Status) StateConfiguration {
	if !role.IsValid() {
		panic(fmt.Sprintf("invalid role: %s", role))
	}
	if !target.IsValid() {
		panic(fmt.Sprintf("invalid target status: %s", target))
	}
	if c.from.IsTerminal() {
		panic(fmt.Sprintf("cannot configure transitions out of terminal status %s", c.from))
	}

	c.transitions[role] = append(c.transitions[role], target)
	return c
}

// Build freezes the configured table into an immutable machine
func (b *machineBuilder) Build() *Machine {
	configsCopy := make(map[Status]*stateConfig)
	for status, config := range b.configurations {
		transitionsCopy := make(map[Role][]Status)
		for role, targets := range config.transitions {
			transitionsCopy[role] = append([]Status{}, targets...)
		}
		configsCopy[status] = &stateConfig{
			from:        status,
			transitions: transitionsCopy,
		}
	}

	return &Machine{configurations: configsCopy}
}

// Permits reports whether the role may move a requisition from the current
// status to the target status
func (m *Machine) Permits(from Status, role Role, target Status) bool {
	config, exists := m.configurations[from]
	if !exists {
		return false
	}

	for _, t := range config.transitions[role] {
		if t == target {
			return true
		}
	}
	return false
}

// AllowedTargets returns the target statuses the role may reach from the
// given status, in declaration order. The presentation layer uses this to
// decide which actions to render.
func (m *Machine) AllowedTargets(from Status, role Role) []Status {
	config, exists := m.configurations[from]
	if !exists {
		return []Status{}
	}

	return append([]Status{}, config.transitions[role]...)
}

package trace

import "fmt"

// Policy decides how segment windows are laid out on the timeline.
type Policy int

const (
	// Delayed draws every segment for the same duration, staggering the
	// starts across the delay.
	Delayed Policy = iota
	// OneByOne draws segments one after the other, each for a share of the
	// duration proportional to its length.
	OneByOne
	// Sync starts and finishes every segment together.
	Sync
	// Async is an alias of Sync kept for configuration compatibility.
	Async
	// Scenario reads explicit start and duration annotations.
	Scenario
	// ScenarioSync chains segments with explicit delay, duration and async
	// annotations.
	ScenarioSync
)

var policyNames = [...]string{
	Delayed:      "delayed",
	OneByOne:     "oneByOne",
	Sync:         "sync",
	Async:        "async",
	Scenario:     "scenario",
	ScenarioSync: "scenario-sync",
}

func (p Policy) String() string {
	if p < 0 || int(p) >= len(policyNames) {
		return fmt.Sprintf("Policy(%d)", int(p))
	}
	return policyNames[p]
}

// ParsePolicy maps a configuration name to a Policy. The empty name selects
// Delayed.
func ParsePolicy(name string) (Policy, error) {
	if name == "" {
		return Delayed, nil
	}
	for p, n := range policyNames {
		if n == name {
			return Policy(p), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownPolicy, name)
}

// StartMode decides when a Player starts on its own.
type StartMode int

const (
	// InViewport plays the first time the drawing is reported visible.
	InViewport StartMode = iota
	// Manual waits for an explicit Play.
	Manual
	// Autostart plays as soon as the Player is created.
	Autostart
)

var startNames = [...]string{
	InViewport: "inViewport",
	Manual:     "manual",
	Autostart:  "autostart",
}

func (s StartMode) String() string {
	if s < 0 || int(s) >= len(startNames) {
		return fmt.Sprintf("StartMode(%d)", int(s))
	}
	return startNames[s]
}

// ParseStartMode maps a configuration name to a StartMode. The empty name
// selects InViewport.
func ParseStartMode(name string) (StartMode, error) {
	if name == "" {
		return InViewport, nil
	}
	for s, n := range startNames {
		if n == name {
			return StartMode(s), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownStart, name)
}

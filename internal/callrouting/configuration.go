package callrouting

import "errors"

// Configuration is an immutable call-routing setup.
//
// Every operation returns a new Configuration; the receiver is never modified.
// Operations outside their preconditions return an unchanged copy.
type Configuration struct {
	assignees                []string
	managers                 []string
	managersAllowedToGetCall bool
	callRecording            bool
	mode                     RoutingMode

	defaults Defaults
}

var (
	ErrConflictingModes         = errors.New("callrouting: more than one routing mode enabled")
	ErrTooManySequentialNumbers = errors.New("callrouting: too many sequential call numbers")
)

// New returns the default configuration for d: default people, managers
// allowed to get calls, no routing mode and no recording.
func New(d Defaults) Configuration {
	return Configuration{
		assignees:                cloneStrings(d.Assignees),
		managers:                 cloneStrings(d.Managers),
		managersAllowedToGetCall: true,
		mode:                     NoRouting(),
		defaults:                 d.clone(),
	}
}

func (c Configuration) Assignees() []string { return cloneStrings(c.assignees) }
func (c Configuration) Managers() []string { return cloneStrings(c.managers) }
func (c Configuration) HasAssignees() bool { return len(c.assignees) > 0 }
func (c Configuration) HasManagers() bool { return len(c.managers) > 0 }
func (c Configuration) ManagersAllowedToGetCall() bool { return c.managersAllowedToGetCall }
func (c Configuration) CallRecordingEnabled() bool { return c.callRecording }
func (c Configuration) Mode() RoutingMode { return copyMode(c.mode) }
func (c Configuration) Defaults() Defaults { return c.defaults.clone() }

// RoutingType reports the active mode, ModeNone when nothing is configured.
func (c Configuration) RoutingType() ModeKind { return c.mode.Kind() }

func (c Configuration) PhoneTreeEnabled() bool { return c.mode.Is(ModePhoneTree) }
func (c Configuration) CallForwardingEnabled() bool { return c.mode.Is(ModeCallForwarding) }
func (c Configuration) SequentialCallEnabled() bool { return c.mode.Is(ModeSequentialCall) }
func (c Configuration) SIPEnabled() bool { return c.mode.Is(ModeSIP) }
func (c Configuration) ForwardTo() string { return c.mode.ForwardTo() }

// SequentialCallNumbers is empty unless sequential call is active.
func (c Configuration) SequentialCallNumbers() []string {
	if !c.SequentialCallEnabled() {
		return []string{}
	}
	return c.mode.Numbers()
}

func (c Configuration) AddAssignees() Configuration {
	if c.HasAssignees() {
		return c.clone()
	}
	out := c.clone()
	out.assignees = cloneStrings(c.defaults.Assignees)
	return out
}

func (c Configuration) RemoveAssignees() Configuration {
	out := c.clone()
	out.assignees = []string{}
	return out
}

func (c Configuration) AddManagers() Configuration {
	if c.HasManagers() {
		return c.clone()
	}
	out := c.clone()
	out.managers = cloneStrings(c.defaults.Managers)
	return out
}

func (c Configuration) RemoveManagers() Configuration {
	out := c.clone()
	out.managers = []string{}
	return out
}

func (c Configuration) ToggleManagersAllowedToGetCall() Configuration {
	out := c.clone()
	out.managersAllowedToGetCall = !c.managersAllowedToGetCall
	return out
}

func (c Configuration) ToggleCallRecordingEnabled() Configuration {
	out := c.clone()
	out.callRecording = !c.callRecording
	return out
}

func (c Configuration) TogglePhoneTreeEnabled() Configuration {
	return c.toggleMode(ModePhoneTree, PhoneTree)
}

func (c Configuration) ToggleSipEnabled() Configuration {
	return c.toggleMode(ModeSIP, SIP)
}

// ToggleCallForwardingEnabled forwards to the default number on activation.
func (c Configuration) ToggleCallForwardingEnabled() Configuration {
	return c.toggleMode(ModeCallForwarding, func() RoutingMode {
		return CallForwarding(c.defaults.ForwardTo)
	})
}

// ToggleSequentialCallEnabled starts with the first pool number on activation.
// Deactivation drops the list along with the mode.
func (c Configuration) ToggleSequentialCallEnabled() Configuration {
	return c.toggleMode(ModeSequentialCall, func() RoutingMode {
		if len(c.defaults.SequentialNumbers) == 0 {
			return SequentialCall()
		}
		return SequentialCall(c.defaults.SequentialNumbers[0])
	})
}

func (c Configuration) RemoveCallRouting() Configuration {
	out := c.clone()
	out.mode = NoRouting()
	return out
}

func (c Configuration) AddSequentialCallNumber() Configuration {
	if !c.SequentialCallEnabled() {
		return c.clone()
	}
	n := len(c.mode.numbers)
	if n >= c.defaults.sequentialCapacity() {
		return c.clone()
	}
	out := c.clone()
	out.mode = SequentialCall(append(c.mode.Numbers(), c.defaults.SequentialNumbers[n])...)
	return out
}

func (c Configuration) RemoveSequentialCallNumber() Configuration {
	if !c.SequentialCallEnabled() || len(c.mode.numbers) == 0 {
		return c.clone()
	}
	nums := c.mode.Numbers()
	out := c.clone()
	out.mode = SequentialCall(nums[:len(nums)-1]...)
	return out
}

// SelectRouting mirrors the routing select list: "none" clears routing,
// re-selecting the active mode keeps it, any other mode is toggled on.
func (c Configuration) SelectRouting(kind ModeKind) Configuration {
	if kind == c.RoutingType() {
		return c.clone()
	}
	switch kind {
	case ModePhoneTree:
		return c.TogglePhoneTreeEnabled()
	case ModeCallForwarding:
		return c.ToggleCallForwardingEnabled()
	case ModeSequentialCall:
		return c.ToggleSequentialCallEnabled()
	case ModeSIP:
		return c.ToggleSipEnabled()
	default:
		return c.RemoveCallRouting()
	}
}

func (c Configuration) toggleMode(kind ModeKind, activate func() RoutingMode) Configuration {
	out := c.clone()
	if c.mode.Is(kind) {
		out.mode = NoRouting()
		return out
	}
	out.mode = activate()
	return out
}

func (c Configuration) clone() Configuration {
	return Configuration{
		assignees:                cloneStrings(c.assignees),
		managers:                 cloneStrings(c.managers),
		managersAllowedToGetCall: c.managersAllowedToGetCall,
		callRecording:            c.callRecording,
		mode:                     copyMode(c.mode),
		defaults:                 c.defaults.clone(),
	}
}

// copyMode detaches the number slice from m.
func copyMode(m RoutingMode) RoutingMode {
	out := RoutingMode{kind: m.Kind(), forwardTo: m.forwardTo}
	if m.kind == ModeSequentialCall {
		out.numbers = cloneStrings(m.numbers)
	}
	return out
}

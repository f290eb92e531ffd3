package callrouting

import "fmt"

// Snapshot is the flat, plain-data form of a Configuration as the form and
// storage layers see it. At most one Is*Enabled routing flag may be true.
type Snapshot struct {
	Assignees                   []string `json:"assignees" yaml:"assignees"`
	Managers                    []string `json:"managers" yaml:"managers"`
	AreManagersAllowedToGetCall bool     `json:"are_managers_allowed_to_get_call" yaml:"are_managers_allowed_to_get_call"`

	IsPhoneTreeEnabled      bool `json:"is_phone_tree_enabled" yaml:"is_phone_tree_enabled"`
	IsCallForwardingEnabled bool `json:"is_call_forwarding_enabled" yaml:"is_call_forwarding_enabled"`
	IsCallRecordingEnabled  bool `json:"is_call_recording_enabled" yaml:"is_call_recording_enabled"`
	IsSequentialCallEnabled bool `json:"is_sequential_call_enabled" yaml:"is_sequential_call_enabled"`
	IsSipEnabled            bool `json:"is_sip_enabled" yaml:"is_sip_enabled"`

	SequentialCallNumbers []string `json:"sequential_call_numbers" yaml:"sequential_call_numbers"`
	ForwardTo             string   `json:"forward_to" yaml:"forward_to"`
}

// DefaultSnapshot is the snapshot of New(d).
func DefaultSnapshot(d Defaults) Snapshot {
	return New(d).Snapshot()
}

// Validate checks the invariants a Configuration relies on. The number cap
// applies only while sequential calling is on; other payloads are dropped.
func (s Snapshot) Validate() error {
	enabled := 0
	for _, on := range []bool{s.IsPhoneTreeEnabled, s.IsCallForwardingEnabled, s.IsSequentialCallEnabled, s.IsSipEnabled} {
		if on {
			enabled++
		}
	}
	if enabled > 1 {
		return ErrConflictingModes
	}
	if s.IsSequentialCallEnabled && len(s.SequentialCallNumbers) > MaxSequentialNumbers {
		return fmt.Errorf("%w: got %d, max %d", ErrTooManySequentialNumbers, len(s.SequentialCallNumbers), MaxSequentialNumbers)
	}
	return nil
}

// FromSnapshot builds a Configuration from s, using d for later activations.
// Payload fields of inactive modes are dropped.
func FromSnapshot(s Snapshot, d Defaults) (Configuration, error) {
	if err := s.Validate(); err != nil {
		return Configuration{}, err
	}

	mode := NoRouting()
	switch {
	case s.IsPhoneTreeEnabled:
		mode = PhoneTree()
	case s.IsCallForwardingEnabled:
		mode = CallForwarding(s.ForwardTo)
	case s.IsSequentialCallEnabled:
		mode = SequentialCall(s.SequentialCallNumbers...)
	case s.IsSipEnabled:
		mode = SIP()
	}

	return Configuration{
		assignees:                cloneStrings(s.Assignees),
		managers:                 cloneStrings(s.Managers),
		managersAllowedToGetCall: s.AreManagersAllowedToGetCall,
		callRecording:            s.IsCallRecordingEnabled,
		mode:                     mode,
		defaults:                 d.clone(),
	}, nil
}

func (c Configuration) Snapshot() Snapshot {
	return Snapshot{
		Assignees:                   c.Assignees(),
		Managers:                    c.Managers(),
		AreManagersAllowedToGetCall: c.managersAllowedToGetCall,
		IsPhoneTreeEnabled:          c.PhoneTreeEnabled(),
		IsCallForwardingEnabled:     c.CallForwardingEnabled(),
		IsCallRecordingEnabled:      c.callRecording,
		IsSequentialCallEnabled:     c.SequentialCallEnabled(),
		IsSipEnabled:                c.SIPEnabled(),
		SequentialCallNumbers:       c.SequentialCallNumbers(),
		ForwardTo:                   c.ForwardTo(),
	}
}

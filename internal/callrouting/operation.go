package callrouting

import (
	"errors"
	"fmt"
)

// Operation names one user action on the configuration form.
type Operation string

const (
	OpAddAssignees                   Operation = "add-assignees"
	OpRemoveAssignees                Operation = "remove-assignees"
	OpAddManagers                    Operation = "add-managers"
	OpRemoveManagers                 Operation = "remove-managers"
	OpToggleManagersAllowedToGetCall Operation = "toggle-managers-allowed-to-get-call"
	OpToggleCallRecording            Operation = "toggle-call-recording"
	OpTogglePhoneTree                Operation = "toggle-phone-tree"
	OpToggleCallForwarding           Operation = "toggle-call-forwarding"
	OpToggleSequentialCall           Operation = "toggle-sequential-call"
	OpToggleSip                      Operation = "toggle-sip"
	OpRemoveCallRouting              Operation = "remove-call-routing"
	OpAddSequentialCallNumber        Operation = "add-sequential-call-number"
	OpRemoveSequentialCallNumber     Operation = "remove-sequential-call-number"
)

var ErrUnknownOperation = errors.New("callrouting: unknown operation")

var operations = map[Operation]func(Configuration) Configuration{
	OpAddAssignees:                   Configuration.AddAssignees,
	OpRemoveAssignees:                Configuration.RemoveAssignees,
	OpAddManagers:                    Configuration.AddManagers,
	OpRemoveManagers:                 Configuration.RemoveManagers,
	OpToggleManagersAllowedToGetCall: Configuration.ToggleManagersAllowedToGetCall,
	OpToggleCallRecording:            Configuration.ToggleCallRecordingEnabled,
	OpTogglePhoneTree:                Configuration.TogglePhoneTreeEnabled,
	OpToggleCallForwarding:           Configuration.ToggleCallForwardingEnabled,
	OpToggleSequentialCall:           Configuration.ToggleSequentialCallEnabled,
	OpToggleSip:                      Configuration.ToggleSipEnabled,
	OpRemoveCallRouting:              Configuration.RemoveCallRouting,
	OpAddSequentialCallNumber:        Configuration.AddSequentialCallNumber,
	OpRemoveSequentialCallNumber:     Configuration.RemoveSequentialCallNumber,
}

// Operations lists every supported operation in form order.
func Operations() []Operation {
	return []Operation{
		OpAddAssignees,
		OpRemoveAssignees,
		OpAddManagers,
		OpRemoveManagers,
		OpToggleManagersAllowedToGetCall,
		OpToggleCallRecording,
		OpTogglePhoneTree,
		OpToggleCallForwarding,
		OpToggleSequentialCall,
		OpToggleSip,
		OpRemoveCallRouting,
		OpAddSequentialCallNumber,
		OpRemoveSequentialCallNumber,
	}
}

// Known reports whether op names a supported operation.
func (op Operation) Known() bool {
	_, ok := operations[op]
	return ok
}

// Apply runs op by name. Unknown names return ErrUnknownOperation.
func (c Configuration) Apply(op Operation) (Configuration, error) {
	fn, ok := operations[op]
	if !ok {
		return Configuration{}, fmt.Errorf("%w: %q", ErrUnknownOperation, op)
	}
	return fn(c), nil
}

package callrouting

// ModeKind names the active call-handling strategy.
// Values match the select-list options of the configuration form.
type ModeKind string

const (
	ModeNone           ModeKind = "none"
	ModePhoneTree      ModeKind = "phone-tree"
	ModeCallForwarding ModeKind = "call-forwarding"
	ModeSequentialCall ModeKind = "sequential-call"
	ModeSIP            ModeKind = "sip"
)

// MaxSequentialNumbers caps the sequential-call list.
const MaxSequentialNumbers = 3

// RoutingMode is the single active routing strategy plus its payload.
//
// Only one mode can exist at a time; the zero value is ModeNone.
// forwardTo is meaningful for ModeCallForwarding, numbers for ModeSequentialCall.
type RoutingMode struct {
	kind      ModeKind
	forwardTo string
	numbers   []string
}

func NoRouting() RoutingMode { return RoutingMode{kind: ModeNone} }

func PhoneTree() RoutingMode { return RoutingMode{kind: ModePhoneTree} }

func SIP() RoutingMode { return RoutingMode{kind: ModeSIP} }

func CallForwarding(to string) RoutingMode {
	return RoutingMode{kind: ModeCallForwarding, forwardTo: to}
}

func SequentialCall(numbers ...string) RoutingMode {
	return RoutingMode{kind: ModeSequentialCall, numbers: cloneStrings(numbers)}
}

// Kind returns ModeNone for the zero value.
func (m RoutingMode) Kind() ModeKind {
	if m.kind == "" {
		return ModeNone
	}
	return m.kind
}

func (m RoutingMode) ForwardTo() string {
	if m.kind != ModeCallForwarding {
		return ""
	}
	return m.forwardTo
}

// Numbers returns a copy of the sequential-call numbers.
func (m RoutingMode) Numbers() []string {
	if m.kind != ModeSequentialCall {
		return nil
	}
	return cloneStrings(m.numbers)
}

func (m RoutingMode) Is(k ModeKind) bool { return m.Kind() == k }

// ParseModeKind accepts the form values; anything unknown maps to ModeNone
// with ok=false.
func ParseModeKind(s string) (ModeKind, bool) {
	switch ModeKind(s) {
	case ModeNone, ModePhoneTree, ModeCallForwarding, ModeSequentialCall, ModeSIP:
		return ModeKind(s), true
	case "":
		return ModeNone, true
	default:
		return ModeNone, false
	}
}

func cloneStrings(in []string) []string {
	if len(in) == 0 {
		return []string{}
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
